package handlers

import (
	"context"
	"errors"

	"dugun.site/configs/configslog"
	"dugun.site/middlewares"
	"dugun.site/models"
	"dugun.site/pkg/feedstream"
	"dugun.site/pkg/realtime"
	"dugun.site/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PanelHandler yönetim panelinin durum ve akış uçları.
type PanelHandler struct {
	store  services.IAppStore
	remote services.IRemoteStore
}

func NewPanelHandler(store services.IAppStore, remote services.IRemoteStore) *PanelHandler {
	return &PanelHandler{store: store, remote: remote}
}

// State GET /panel/state
func (h *PanelHandler) State(c *fiber.Ctx) error {
	return c.JSON(h.store.GetState())
}

// Feed GET /panel/feeds/:collection: dört koleksiyonun ham görüntüleri.
func (h *PanelHandler) Feed(c *fiber.Ctx) error {
	collection := models.Collection(c.Params("collection"))
	if !collection.Valid() {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Kaynak bulunamadı"})
	}
	return feedstream.Stream(c, "panel:"+string(collection), func(fn realtime.Listener) (func(), error) {
		return h.remote.Subscribe(context.Background(), collection, fn)
	})
}

func sessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(middlewares.LocalsSessionID).(string)
	return id
}

// statusFor servis hatasını HTTP durum koduna çevirir.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrUnknownField),
		errors.Is(err, services.ErrNotArrayField),
		errors.Is(err, services.ErrInvalidFieldValue),
		errors.Is(err, services.ErrEmptyChecklistText),
		errors.Is(err, services.ErrNoGuestsSelected),
		errors.Is(err, services.ErrNoRecipients),
		errors.Is(err, services.ErrGuestHasNoEmail),
		errors.Is(err, services.ErrNoteEmpty),
		errors.Is(err, services.ErrNotAnImage),
		errors.Is(err, services.ErrRSVPNameRequired),
		errors.Is(err, services.ErrRSVPInvalidStatus):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrIndexOutOfRange),
		errors.Is(err, services.ErrChecklistItemAbsent),
		errors.Is(err, services.ErrGuestNotFound),
		errors.Is(err, services.ErrGuestbookEntryNotFound),
		errors.Is(err, services.ErrRSVPNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrNoPendingDeletion),
		errors.Is(err, services.ErrDeletionTokenDenied),
		errors.Is(err, services.ErrGalleryIndexStale):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrUploadFailed),
		errors.Is(err, services.ErrImageDeleteFailed):
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}

// fail hata yanıtını yazar; beklenmeyen hatalar loglanır.
func fail(c *fiber.Ctx, op string, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		configslog.Log.Error("Panel - "+op+" Error", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz istek"})
}
