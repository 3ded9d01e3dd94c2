package handlers

import (
	"sync"

	"dugun.site/models"
	"dugun.site/pkg/guestlist"
	"dugun.site/services"

	"github.com/gofiber/fiber/v2"
)

// PanelGuestHandler misafir listesi, seçim ve toplu işlemler.
type PanelGuestHandler struct {
	guests services.IGuestService
	rsvps  services.IRSVPService

	mu         sync.Mutex
	selections map[string]*guestlist.Selection
}

// NewPanelGuestHandler auth verilirse oturum kapanınca ya da yeniden açılınca
// o oturumun seçimi bırakılır.
func NewPanelGuestHandler(guests services.IGuestService, rsvps services.IRSVPService, auth services.IAuthService) *PanelGuestHandler {
	h := &PanelGuestHandler{guests: guests, rsvps: rsvps, selections: make(map[string]*guestlist.Selection)}
	if auth != nil {
		auth.OnSessionChange(func(ev services.SessionEvent) {
			if ev.Kind == services.SessionLogout || ev.Kind == services.SessionLogin {
				h.dropSelection(ev.SessionID)
			}
		})
	}
	return h
}

func (h *PanelGuestHandler) dropSelection(sessionID string) {
	h.mu.Lock()
	delete(h.selections, sessionID)
	h.mu.Unlock()
}

type listQuery struct {
	Filter guestlist.Filter
	Sort   guestlist.SortKey
}

// parseListQuery ?search=&status=&sort=
func parseListQuery(c *fiber.Ctx) listQuery {
	return listQuery{
		Filter: guestlist.Filter{Search: c.Query("search"), Status: c.Query("status", guestlist.StatusAll)},
		Sort:   guestlist.SortKey(c.Query("sort", string(guestlist.SortRecent))),
	}
}

// withSelection oturumun seçimini kilit altında fn'e verir ve son halini döndürür.
func (h *PanelGuestHandler) withSelection(c *fiber.Ctx, fn func(sel *guestlist.Selection)) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := sessionID(c)
	sel, ok := h.selections[id]
	if !ok {
		sel = guestlist.NewSelection()
		h.selections[id] = sel
	}
	if fn != nil {
		fn(sel)
	}
	return sel.IDs()
}

// idsOrSelection istekte kimlik yoksa oturumdaki seçimi kullanır.
func (h *PanelGuestHandler) idsOrSelection(c *fiber.Ctx, ids []string) []string {
	if len(ids) > 0 {
		return ids
	}
	return h.withSelection(c, nil)
}

// List GET /panel/guests
func (h *PanelGuestHandler) List(c *fiber.Ctx) error {
	q := parseListQuery(c)
	rows := h.guests.List(q.Filter, q.Sort)
	return c.JSON(fiber.Map{"guests": rows, "count": len(rows), "stats": h.guests.Stats()})
}

// Stats GET /panel/guests/stats
func (h *PanelGuestHandler) Stats(c *fiber.Ctx) error {
	return c.JSON(h.guests.Stats())
}

// Export GET /panel/guests/export
func (h *PanelGuestHandler) Export(c *fiber.Ctx) error {
	q := parseListQuery(c)
	out := h.guests.Export(q.Filter, q.Sort)
	c.Attachment(out.Filename)
	c.Set(fiber.HeaderContentType, "text/csv;charset=utf-8")
	return c.Send(out.Data)
}

// Create POST /panel/guests
func (h *PanelGuestHandler) Create(c *fiber.Ctx) error {
	var in services.RSVPInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c)
	}
	rsvp, err := h.rsvps.AdminSave(c.UserContext(), "", in)
	if err != nil {
		return fail(c, "CreateGuest", err)
	}
	return c.Status(fiber.StatusCreated).JSON(rsvp)
}

// Update PUT /panel/guests/:id
func (h *PanelGuestHandler) Update(c *fiber.Ctx) error {
	var in services.RSVPInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c)
	}
	rsvp, err := h.rsvps.AdminSave(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, "UpdateGuest", err)
	}
	return c.JSON(rsvp)
}

type statusRequest struct {
	Status models.RSVPStatus `json:"status"`
}

// SetStatus PUT /panel/guests/:id/status: yönetici her duruma geçirebilir.
func (h *PanelGuestHandler) SetStatus(c *fiber.Ctx) error {
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	var current *models.RSVP
	for _, r := range h.guests.List(guestlist.Filter{}, "") {
		if r.ID == c.Params("id") {
			found := r
			current = &found
			break
		}
	}
	if current == nil {
		return fail(c, "SetStatus", services.ErrRSVPNotFound)
	}
	rsvp, err := h.rsvps.AdminSave(c.UserContext(), current.ID, services.RSVPInput{
		Name: current.Name, Email: current.Email, Status: req.Status,
		PlusOne: current.PlusOne, PlusOneName: current.PlusOneName, Dietary: current.Dietary,
		SongRequest: current.SongRequest, Notes: current.Notes, FollowUpDate: current.FollowUpDate,
	})
	if err != nil {
		return fail(c, "SetStatus", err)
	}
	return c.JSON(rsvp)
}

// Delete DELETE /panel/guests/:id
func (h *PanelGuestHandler) Delete(c *fiber.Ctx) error {
	if err := h.guests.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, "DeleteGuest", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type idsRequest struct {
	IDs     []string `json:"ids"`
	Subject string   `json:"subject"`
	Message string   `json:"message"`
}

// BulkDelete POST /panel/guests/bulk-delete
func (h *PanelGuestHandler) BulkDelete(c *fiber.Ctx) error {
	var req idsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	ids := h.idsOrSelection(c, req.IDs)
	if err := h.guests.BulkDelete(c.UserContext(), ids); err != nil {
		return fail(c, "BulkDelete", err)
	}
	if len(req.IDs) > 0 {
		h.withSelection(c, func(sel *guestlist.Selection) { sel.Remove(req.IDs...) })
	} else {
		h.withSelection(c, (*guestlist.Selection).Clear)
	}
	return c.JSON(fiber.Map{"deleted": len(ids)})
}

// BulkRemind POST /panel/guests/bulk-remind
func (h *PanelGuestHandler) BulkRemind(c *fiber.Ctx) error {
	var req idsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	link, err := h.guests.BulkRemind(c.UserContext(), h.idsOrSelection(c, req.IDs))
	if err != nil {
		return fail(c, "BulkRemind", err)
	}
	return c.JSON(fiber.Map{"mailto": link})
}

// Remind POST /panel/guests/:id/remind
func (h *PanelGuestHandler) Remind(c *fiber.Ctx) error {
	link, err := h.guests.Remind(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, "Remind", err)
	}
	return c.JSON(fiber.Map{"mailto": link})
}

// Email POST /panel/guests/email
func (h *PanelGuestHandler) Email(c *fiber.Ctx) error {
	var req idsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	draft, err := h.guests.BulkEmail(h.idsOrSelection(c, req.IDs), req.Subject, req.Message)
	if err != nil {
		return fail(c, "Email", err)
	}
	return c.JSON(draft)
}

// UndecidedPreset GET /panel/guests/email/undecided
func (h *PanelGuestHandler) UndecidedPreset(c *fiber.Ctx) error {
	return c.JSON(h.guests.UndecidedPreset())
}

// Selection GET /panel/guests/selection
func (h *PanelGuestHandler) Selection(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ids": h.withSelection(c, nil)})
}

type toggleRequest struct {
	ID string `json:"id"`
}

// ToggleSelection POST /panel/guests/selection/toggle
func (h *PanelGuestHandler) ToggleSelection(c *fiber.Ctx) error {
	var req toggleRequest
	if err := c.BodyParser(&req); err != nil || req.ID == "" {
		return badRequest(c)
	}
	ids := h.withSelection(c, func(sel *guestlist.Selection) { sel.Toggle(req.ID) })
	return c.JSON(fiber.Map{"ids": ids})
}

// ToggleAllSelection POST /panel/guests/selection/all: görünen liste üzerinde.
func (h *PanelGuestHandler) ToggleAllSelection(c *fiber.Ctx) error {
	q := parseListQuery(c)
	visible := h.guests.List(q.Filter, q.Sort)
	ids := make([]string, 0, len(visible))
	for _, r := range visible {
		ids = append(ids, r.ID)
	}
	selected := h.withSelection(c, func(sel *guestlist.Selection) { sel.ToggleAll(ids) })
	return c.JSON(fiber.Map{"ids": selected})
}

// ClearSelection DELETE /panel/guests/selection
func (h *PanelGuestHandler) ClearSelection(c *fiber.Ctx) error {
	h.withSelection(c, (*guestlist.Selection).Clear)
	return c.SendStatus(fiber.StatusNoContent)
}
