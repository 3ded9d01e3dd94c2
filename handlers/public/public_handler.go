package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"dugun.site/configs/configslog"
	"dugun.site/models"
	"dugun.site/pkg/blobstore"
	"dugun.site/pkg/calendar"
	"dugun.site/pkg/feedstream"
	"dugun.site/pkg/realtime"
	"dugun.site/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// MediaStore indirme rotasının okuduğu nesne deposu.
type MediaStore interface {
	Bucket() string
	Open(objectPath string) (*os.File, error)
}

// PublicHandler misafirlere açık sayfa ve API uçları.
type PublicHandler struct {
	store     services.IAppStore
	remote    services.IRemoteStore
	rsvps     services.IRSVPService
	guestbook services.IGuestbookService
	media     MediaStore
}

func NewPublicHandler(
	store services.IAppStore,
	remote services.IRemoteStore,
	rsvps services.IRSVPService,
	guestbook services.IGuestbookService,
	media MediaStore,
) *PublicHandler {
	return &PublicHandler{store: store, remote: remote, rsvps: rsvps, guestbook: guestbook, media: media}
}

// Home GET /
func (h *PublicHandler) Home(c *fiber.Ctx) error {
	content := h.store.GetState().Content
	calendarLink, err := calendar.GoogleLink(content)
	if err != nil {
		configslog.Log.Debug("Ana sayfa: takvim bağlantısı yok", zap.Error(err))
	}
	countdown, _ := calendar.ParseCountdown(content.CountdownDate)
	return c.Render("public/index", fiber.Map{
		"Title":            content.CoupleNames,
		"Content":          content,
		"Guestbook":        h.guestbook.Approved(),
		"ShowGooglePhotos": content.ShowGooglePhotosLink() && content.GooglePhotosLink != "",
		"CalendarLink":     calendarLink,
		"Countdown":        countdown,
		"Year":             time.Now().Year(),
	}, "layouts/main")
}

// Content GET /api/content
func (h *PublicHandler) Content(c *fiber.Ctx) error {
	return c.JSON(h.store.GetState().Content)
}

// SubmitRSVP POST /api/rsvps
func (h *PublicHandler) SubmitRSVP(c *fiber.Ctx) error {
	var in services.RSVPInput
	if err := c.BodyParser(&in); err != nil {
		configslog.Log.Warn("SubmitRSVP: istek gövdesi okunamadı", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request."})
	}
	res, err := h.rsvps.Submit(c.UserContext(), in)
	if err != nil {
		var rsvpErr services.RSVPServiceError
		if errors.As(err, &rsvpErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		configslog.Log.Error("SubmitRSVP Error", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong. Please try again."})
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// Portal GET /api/portal?name=
func (h *PublicHandler) Portal(c *fiber.Ctx) error {
	view, err := h.rsvps.Portal(c.Query("name"))
	if err != nil {
		status := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, services.ErrRSVPNotFound):
			status = fiber.StatusNotFound
		case errors.Is(err, services.ErrRSVPLookupQueryMissing):
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(view)
}

type respondRequest struct {
	Status models.RSVPStatus `json:"status" form:"status"`
}

// Respond POST /api/portal/:id/respond
func (h *PublicHandler) Respond(c *fiber.Ctx) error {
	var req respondRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request."})
	}
	updated, err := h.rsvps.Respond(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		status := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, services.ErrRSVPNotFound):
			status = fiber.StatusNotFound
		case errors.Is(err, services.ErrRSVPTransitionDenied):
			status = fiber.StatusConflict
		case errors.Is(err, services.ErrRSVPInvalidTransition):
			status = fiber.StatusBadRequest
		case errors.Is(err, services.ErrRSVPUpdateFailed):
			status = fiber.StatusBadGateway
			configslog.Log.Error("Respond Error", zap.String("id", c.Params("id")), zap.Error(err))
			return c.Status(status).JSON(fiber.Map{"error": services.ErrRSVPUpdateFailed.Error()})
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"rsvp": updated, "statusNote": services.StatusNote(updated.Status)})
}

// Guestbook GET /api/guestbook
func (h *PublicHandler) Guestbook(c *fiber.Ctx) error {
	return c.JSON(h.guestbook.Approved())
}

type guestbookRequest struct {
	Name    string `json:"name" form:"name"`
	Message string `json:"message" form:"message"`
}

// SignGuestbook POST /api/guestbook
func (h *PublicHandler) SignGuestbook(c *fiber.Ctx) error {
	var req guestbookRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request."})
	}
	entry, err := h.guestbook.Submit(c.UserContext(), req.Name, req.Message)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// Feed GET /api/feeds/:collection: herkese açık akışlar: içerik ve onaylı misafir defteri.
func (h *PublicHandler) Feed(c *fiber.Ctx) error {
	ctx := context.Background()
	switch models.Collection(c.Params("collection")) {
	case models.CollectionContent:
		return feedstream.Stream(c, "public:content", func(fn realtime.Listener) (func(), error) {
			return h.remote.Subscribe(ctx, models.CollectionContent, fn)
		})
	case models.CollectionGuestbook:
		return feedstream.Stream(c, "public:guestbook", func(fn realtime.Listener) (func(), error) {
			return h.remote.SubscribeGuestbook(ctx, func(entries []models.GuestbookEntry, rev uint64) {
				approved := make([]models.GuestbookEntry, 0, len(entries))
				for _, e := range entries {
					if e.IsApproved {
						approved = append(approved, e)
					}
				}
				raw, err := json.Marshal(approved)
				if err != nil {
					configslog.Log.Error("Misafir defteri akışı serileştirilemedi", zap.Error(err))
					return
				}
				fn(realtime.Snapshot{Revision: rev, Data: raw})
			})
		})
	}
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Kaynak bulunamadı"})
}

// Media GET /v0/b/:bucket/o/*
func (h *PublicHandler) Media(c *fiber.Ctx) error {
	if c.Params("bucket") != h.media.Bucket() {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Kaynak bulunamadı"})
	}
	objectPath, err := url.PathUnescape(c.Params("*"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz yol"})
	}
	f, err := h.media.Open(objectPath)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) || errors.Is(err, blobstore.ErrInvalidPath) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Kaynak bulunamadı"})
		}
		configslog.Log.Error("Media: nesne açılamadı", zap.String("path", objectPath), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Nesne okunamadı"})
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Nesne okunamadı"})
	}
	c.Type(filepath.Ext(objectPath))
	c.Set(fiber.HeaderCacheControl, "public, max-age=31536000, immutable")
	return c.SendStream(f, int(info.Size()))
}
