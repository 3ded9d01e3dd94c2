package handlers

import (
	"encoding/json"
	"fmt"
	"io"

	"dugun.site/services"

	"github.com/gofiber/fiber/v2"
)

// PanelContentHandler içerik belgesi, kontrol listesi, galeri ve müzik düzenleme.
type PanelContentHandler struct {
	editor  services.IContentEditor
	gallery services.IGalleryService
}

func NewPanelContentHandler(editor services.IContentEditor, gallery services.IGalleryService) *PanelContentHandler {
	return &PanelContentHandler{editor: editor, gallery: gallery}
}

type valueRequest struct {
	SubField string          `json:"subField"`
	Value    json.RawMessage `json:"value"`
}

// SetField PUT /panel/content/fields/:field
func (h *PanelContentHandler) SetField(c *fiber.Ctx) error {
	var req valueRequest
	if err := c.BodyParser(&req); err != nil || len(req.Value) == 0 {
		return badRequest(c)
	}
	content, err := h.editor.SetField(c.UserContext(), c.Params("field"), req.Value)
	if err != nil {
		return fail(c, "SetField", err)
	}
	return c.JSON(content)
}

// UpdateArrayItem PUT /panel/content/arrays/:field/:index
func (h *PanelContentHandler) UpdateArrayItem(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return badRequest(c)
	}
	var req valueRequest
	if err := c.BodyParser(&req); err != nil || len(req.Value) == 0 {
		return badRequest(c)
	}
	content, err := h.editor.UpdateArrayItem(c.UserContext(), c.Params("field"), index, req.SubField, req.Value)
	if err != nil {
		return fail(c, "UpdateArrayItem", err)
	}
	return c.JSON(content)
}

type itemRequest struct {
	Item json.RawMessage `json:"item"`
}

// AddArrayItem POST /panel/content/arrays/:field
func (h *PanelContentHandler) AddArrayItem(c *fiber.Ctx) error {
	var req itemRequest
	if err := c.BodyParser(&req); err != nil || len(req.Item) == 0 {
		return badRequest(c)
	}
	content, err := h.editor.AddArrayItem(c.UserContext(), c.Params("field"), req.Item)
	if err != nil {
		return fail(c, "AddArrayItem", err)
	}
	return c.Status(fiber.StatusCreated).JSON(content)
}

type deleteRequest struct {
	Field    string `json:"field"`
	Index    int    `json:"index"`
	ItemName string `json:"itemName"`
}

// RequestDelete POST /panel/content/deletion
func (h *PanelContentHandler) RequestDelete(c *fiber.Ctx) error {
	var req deleteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	p, err := h.editor.RequestDelete(sessionID(c), req.Field, req.Index, req.ItemName)
	if err != nil {
		return fail(c, "RequestDelete", err)
	}
	return c.JSON(fiber.Map{
		"pending": p,
		"message": fmt.Sprintf("Are you sure you want to delete %q?", p.ItemName),
	})
}

// Deletion GET /panel/content/deletion
func (h *PanelContentHandler) Deletion(c *fiber.Ctx) error {
	return c.JSON(h.editor.Deletion(sessionID(c)))
}

type confirmRequest struct {
	Token string `json:"token"`
}

// ConfirmDelete POST /panel/content/deletion/confirm
func (h *PanelContentHandler) ConfirmDelete(c *fiber.Ctx) error {
	var req confirmRequest
	if err := c.BodyParser(&req); err != nil || req.Token == "" {
		return badRequest(c)
	}
	content, err := h.editor.ConfirmDelete(c.UserContext(), sessionID(c), req.Token)
	if err != nil {
		return fail(c, "ConfirmDelete", err)
	}
	return c.JSON(content)
}

// CancelDelete DELETE /panel/content/deletion
func (h *PanelContentHandler) CancelDelete(c *fiber.Ctx) error {
	h.editor.CancelDelete(sessionID(c))
	return c.SendStatus(fiber.StatusNoContent)
}

type textRequest struct {
	Text string `json:"text"`
}

// AddChecklistItem POST /panel/checklist
func (h *PanelContentHandler) AddChecklistItem(c *fiber.Ctx) error {
	var req textRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	item, err := h.editor.AddChecklistItem(c.UserContext(), req.Text)
	if err != nil {
		return fail(c, "AddChecklistItem", err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// ToggleChecklistItem POST /panel/checklist/:id/toggle
func (h *PanelContentHandler) ToggleChecklistItem(c *fiber.Ctx) error {
	content, err := h.editor.ToggleChecklistItem(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, "ToggleChecklistItem", err)
	}
	return c.JSON(content.Checklist)
}

// RemoveChecklistItem DELETE /panel/checklist/:id
func (h *PanelContentHandler) RemoveChecklistItem(c *fiber.Ctx) error {
	content, err := h.editor.RemoveChecklistItem(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, "RemoveChecklistItem", err)
	}
	return c.JSON(content.Checklist)
}

type urlRequest struct {
	URL   string `json:"url"`
	Index int    `json:"index"`
}

// SetMusic PUT /panel/music
func (h *PanelContentHandler) SetMusic(c *fiber.Ctx) error {
	var req urlRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	content, err := h.editor.SetMusic(c.UserContext(), req.URL)
	if err != nil {
		return fail(c, "SetMusic", err)
	}
	return c.JSON(fiber.Map{"musicUrl": content.MusicURL})
}

// UploadImages POST /panel/gallery (multipart, "files" alanı)
func (h *PanelContentHandler) UploadImages(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c)
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		return badRequest(c)
	}
	files := make([]services.UploadFile, 0, len(headers))
	for _, fh := range headers {
		fh := fh
		files = append(files, services.UploadFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get(fiber.HeaderContentType),
			Open:        func() (io.ReadCloser, error) { return fh.Open() },
		})
	}
	var progress []float64
	results, err := h.gallery.Upload(c.UserContext(), files, func(_, _ int, percent float64) {
		progress = append(progress, percent)
	})
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error(), "results": results, "progress": progress})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"results": results, "progress": progress})
}

// DeleteImage DELETE /panel/gallery
func (h *PanelContentHandler) DeleteImage(c *fiber.Ctx) error {
	var req urlRequest
	if err := c.BodyParser(&req); err != nil || req.URL == "" {
		return badRequest(c)
	}
	content, err := h.gallery.Delete(c.UserContext(), req.URL, req.Index)
	if err != nil {
		return fail(c, "DeleteImage", err)
	}
	return c.JSON(content.GalleryImages)
}

// ReplaceImage PUT /panel/gallery/:index
func (h *PanelContentHandler) ReplaceImage(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return badRequest(c)
	}
	var req urlRequest
	if err := c.BodyParser(&req); err != nil || req.URL == "" {
		return badRequest(c)
	}
	content, err := h.gallery.Replace(c.UserContext(), index, req.URL)
	if err != nil {
		return fail(c, "ReplaceImage", err)
	}
	return c.JSON(content.GalleryImages)
}

// StoredImages GET /panel/gallery/stored
func (h *PanelContentHandler) StoredImages(c *fiber.Ctx) error {
	urls, err := h.gallery.ListStored()
	if err != nil {
		return fail(c, "StoredImages", err)
	}
	return c.JSON(urls)
}
