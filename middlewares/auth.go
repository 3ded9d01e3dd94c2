package middlewares

import (
	"strings"
	"sync"

	"dugun.site/configs/configslog"
	"dugun.site/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"
)

// Oturumda ve c.Locals içinde kullanılan anahtarlar.
const (
	SessionOperatorKey = "operator_email"
	LocalsOperator     = "operatorEmail"
	LocalsSessionID    = "sessionID"
)

// Auth panel oturumlarını doğrular. Süreç başladıktan sonra ilk kez görülen
// geçerli bir oturum için auth servisine Restore bildirilir.
type Auth struct {
	store *session.Store
	auth  services.IAuthService

	seen sync.Map
}

func NewAuth(store *session.Store, auth services.IAuthService) *Auth {
	return &Auth{store: store, auth: auth}
}

// CurrentUser oturumdaki operatör e-postasını döndürür; giriş yoksa "".
func (a *Auth) CurrentUser(c *fiber.Ctx) (email string, sessionID string) {
	sess, err := a.store.Get(c)
	if err != nil {
		configslog.Log.Warn("Oturum okunamadı", zap.Error(err))
		return "", ""
	}
	email, _ = sess.Get(SessionOperatorKey).(string)
	if email == "" || !strings.EqualFold(email, a.auth.OperatorEmail()) {
		return "", sess.ID()
	}
	if _, loaded := a.seen.LoadOrStore(sess.ID(), struct{}{}); !loaded {
		a.auth.Restore(sess.ID(), email)
	}
	return email, sess.ID()
}

// MarkSeen giriş sonrası oturumu tanınmış sayar; aynı oturum için Restore tetiklenmez.
func (a *Auth) MarkSeen(sessionID string) { a.seen.Store(sessionID, struct{}{}) }

// Forget çıkışta oturumu unutur.
func (a *Auth) Forget(sessionID string) { a.seen.Delete(sessionID) }

// Require giriş yapılmamışsa JSON isteklerine 401 döner, sayfa isteklerini girişe yönlendirir.
func (a *Auth) Require(c *fiber.Ctx) error {
	email, sessionID := a.CurrentUser(c)
	if email == "" {
		if c.Accepts("application/json", "text/html") == "text/html" && c.Method() == fiber.MethodGet {
			return c.Redirect("/#admin", fiber.StatusSeeOther)
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Oturum açmanız gerekiyor"})
	}
	c.Locals(LocalsOperator, email)
	c.Locals(LocalsSessionID, sessionID)
	return c.Next()
}
