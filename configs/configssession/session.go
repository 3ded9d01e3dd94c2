package configssession

import (
	"time"

	"dugun.site/configs/configslog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/fiber/v2/utils"
)

// CookieName panel oturum çerezinin adı.
const CookieName = "dugun_session"

// SetupSession oturum deposunu verilen kalıcı storage ile kurar; oturumlar
// süreç yeniden başlasa da korunur.
func SetupSession(storage fiber.Storage, expiry time.Duration, secure bool) *session.Store {
	if expiry <= 0 {
		expiry = 30 * 24 * time.Hour
	}
	store := session.New(session.Config{
		Storage:        storage,
		Expiration:     expiry,
		KeyLookup:      "cookie:" + CookieName,
		CookieHTTPOnly: true,
		CookieSecure:   secure,
		CookieSameSite: "Lax",
		KeyGenerator:   utils.UUIDv4,
	})
	configslog.SLog.Infof("Oturum deposu hazır (süre: %s)", expiry)
	return store
}
