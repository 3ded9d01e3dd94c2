package handlers

import (
	"dugun.site/services"

	"github.com/gofiber/fiber/v2"
)

// PanelNotesHandler toplantı notları ve misafir defteri moderasyonu.
type PanelNotesHandler struct {
	notes     services.INoteService
	guestbook services.IGuestbookService
}

func NewPanelNotesHandler(notes services.INoteService, guestbook services.IGuestbookService) *PanelNotesHandler {
	return &PanelNotesHandler{notes: notes, guestbook: guestbook}
}

// ListNotes GET /panel/notes
func (h *PanelNotesHandler) ListNotes(c *fiber.Ctx) error {
	return c.JSON(h.notes.List())
}

type noteRequest struct {
	Content string `json:"content"`
}

// AddNote POST /panel/notes
func (h *PanelNotesHandler) AddNote(c *fiber.Ctx) error {
	var req noteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	note, err := h.notes.Add(c.UserContext(), req.Content)
	if err != nil {
		return fail(c, "AddNote", err)
	}
	return c.Status(fiber.StatusCreated).JSON(note)
}

// DeleteNote DELETE /panel/notes/:id
func (h *PanelNotesHandler) DeleteNote(c *fiber.Ctx) error {
	if err := h.notes.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, "DeleteNote", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListGuestbook GET /panel/guestbook: onaylı olmayanlar dahil.
func (h *PanelNotesHandler) ListGuestbook(c *fiber.Ctx) error {
	return c.JSON(h.guestbook.All())
}

type moderationRequest struct {
	Reply    string `json:"reply"`
	Reaction string `json:"reaction"`
	Approved *bool  `json:"approved"`
}

// Reply POST /panel/guestbook/:id/reply
func (h *PanelNotesHandler) Reply(c *fiber.Ctx) error {
	var req moderationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	entry, err := h.guestbook.Reply(c.UserContext(), c.Params("id"), req.Reply)
	if err != nil {
		return fail(c, "Reply", err)
	}
	return c.JSON(entry)
}

// React POST /panel/guestbook/:id/reaction
func (h *PanelNotesHandler) React(c *fiber.Ctx) error {
	var req moderationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	entry, err := h.guestbook.React(c.UserContext(), c.Params("id"), req.Reaction)
	if err != nil {
		return fail(c, "React", err)
	}
	return c.JSON(entry)
}

// SetApproval POST /panel/guestbook/:id/approval
func (h *PanelNotesHandler) SetApproval(c *fiber.Ctx) error {
	var req moderationRequest
	if err := c.BodyParser(&req); err != nil || req.Approved == nil {
		return badRequest(c)
	}
	entry, err := h.guestbook.SetApproved(c.UserContext(), c.Params("id"), *req.Approved)
	if err != nil {
		return fail(c, "SetApproval", err)
	}
	return c.JSON(entry)
}

// DeleteEntry DELETE /panel/guestbook/:id
func (h *PanelNotesHandler) DeleteEntry(c *fiber.Ctx) error {
	if err := h.guestbook.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, "DeleteEntry", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
