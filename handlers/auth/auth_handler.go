package handlers

import (
	"errors"

	"dugun.site/configs/configslog"
	"dugun.site/middlewares"
	"dugun.site/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"
)

// AuthHandler panel girişi ve çıkışı.
type AuthHandler struct {
	auth    services.IAuthService
	store   *session.Store
	session *middlewares.Auth
}

func NewAuthHandler(auth services.IAuthService, store *session.Store, mw *middlewares.Auth) *AuthHandler {
	return &AuthHandler{auth: auth, store: store, session: mw}
}

type loginRequest struct {
	Password string `json:"password" form:"password"`
}

// Login POST /auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": services.LoginErrorMessage(services.ErrInvalidCredential)})
	}

	sess, err := h.store.Get(c)
	if err != nil {
		configslog.Log.Error("Login: oturum açılamadı", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": services.LoginErrorMessage(err)})
	}
	// Eski anahtar depodan silinir; önceki girişe bağlı süreç içi durum da bırakılır.
	if !sess.Fresh() {
		oldID := sess.ID()
		oldEmail, _ := sess.Get(middlewares.SessionOperatorKey).(string)
		if err := h.store.Delete(oldID); err != nil {
			configslog.Log.Warn("Login: eski oturum silinemedi", zap.Error(err))
		}
		h.session.Forget(oldID)
		if oldEmail != "" {
			h.auth.Logout(oldID, oldEmail)
		}
	}
	if err := sess.Regenerate(); err != nil {
		configslog.Log.Error("Login: oturum yenilenemedi", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": services.LoginErrorMessage(err)})
	}

	op, err := h.auth.Login(c.UserContext(), c.IP(), sess.ID(), req.Password)
	if err != nil {
		status := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, services.ErrInvalidCredential):
			status = fiber.StatusUnauthorized
		case errors.Is(err, services.ErrUserNotFound):
			status = fiber.StatusServiceUnavailable
		case errors.Is(err, services.ErrTooManyRequests):
			status = fiber.StatusTooManyRequests
		}
		return c.Status(status).JSON(fiber.Map{"error": services.LoginErrorMessage(err), "code": err.Error()})
	}

	sess.Set(middlewares.SessionOperatorKey, op.Email)
	if err := sess.Save(); err != nil {
		configslog.Log.Error("Login: oturum kaydedilemedi", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": services.LoginErrorMessage(err)})
	}
	h.session.MarkSeen(sess.ID())
	return c.JSON(fiber.Map{"authenticated": true, "email": op.Email})
}

// Logout POST /auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Oturum okunamadı"})
	}
	email, _ := sess.Get(middlewares.SessionOperatorKey).(string)
	id := sess.ID()
	if err := sess.Destroy(); err != nil {
		configslog.Log.Warn("Logout: oturum silinemedi", zap.Error(err))
	}
	h.session.Forget(id)
	if email != "" {
		h.auth.Logout(id, email)
	}
	return c.JSON(fiber.Map{"authenticated": false})
}

// Session GET /auth/session
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	email, _ := h.session.CurrentUser(c)
	if email == "" {
		return c.JSON(fiber.Map{"authenticated": false})
	}
	return c.JSON(fiber.Map{"authenticated": true, "email": email})
}
