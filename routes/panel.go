package routes

import (
	panel_handlers "dugun.site/handlers/panel"
	"dugun.site/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerPanelRoutes /panel altındaki rotaları tanımlar. Tümü oturum gerektirir.
func registerPanelRoutes(app *fiber.App, deps Dependencies, mw *middlewares.Auth) {
	panelHandler := panel_handlers.NewPanelHandler(deps.Store, deps.Remote)
	contentHandler := panel_handlers.NewPanelContentHandler(deps.Editor, deps.Gallery)
	guestHandler := panel_handlers.NewPanelGuestHandler(deps.Guests, deps.RSVPs, deps.Auth)
	notesHandler := panel_handlers.NewPanelNotesHandler(deps.Notes, deps.Guestbook)

	panelGroup := app.Group("/panel")
	panelGroup.Use(mw.Require)

	// --- Durum ve Akışlar ---
	panelGroup.Get("/state", panelHandler.State)
	panelGroup.Get("/feeds/:collection", panelHandler.Feed)

	// --- İçerik Düzenleme ---
	panelGroup.Put("/content/fields/:field", contentHandler.SetField)
	panelGroup.Post("/content/arrays/:field", contentHandler.AddArrayItem)
	panelGroup.Put("/content/arrays/:field/:index", contentHandler.UpdateArrayItem)
	panelGroup.Get("/content/deletion", contentHandler.Deletion)
	panelGroup.Post("/content/deletion", contentHandler.RequestDelete)
	panelGroup.Post("/content/deletion/confirm", contentHandler.ConfirmDelete)
	panelGroup.Delete("/content/deletion", contentHandler.CancelDelete)

	// --- Kontrol Listesi, Galeri, Müzik ---
	panelGroup.Post("/checklist", contentHandler.AddChecklistItem)
	panelGroup.Post("/checklist/:id/toggle", contentHandler.ToggleChecklistItem)
	panelGroup.Delete("/checklist/:id", contentHandler.RemoveChecklistItem)
	panelGroup.Get("/gallery/stored", contentHandler.StoredImages)
	panelGroup.Post("/gallery", contentHandler.UploadImages)
	panelGroup.Put("/gallery/:index", contentHandler.ReplaceImage)
	panelGroup.Delete("/gallery", contentHandler.DeleteImage)
	panelGroup.Put("/music", contentHandler.SetMusic)

	// --- Misafir Listesi ---
	panelGroup.Get("/guests", guestHandler.List)
	panelGroup.Get("/guests/stats", guestHandler.Stats)
	panelGroup.Get("/guests/export", guestHandler.Export)
	panelGroup.Get("/guests/selection", guestHandler.Selection)
	panelGroup.Post("/guests/selection/toggle", guestHandler.ToggleSelection)
	panelGroup.Post("/guests/selection/all", guestHandler.ToggleAllSelection)
	panelGroup.Delete("/guests/selection", guestHandler.ClearSelection)
	panelGroup.Post("/guests/bulk-delete", guestHandler.BulkDelete)
	panelGroup.Post("/guests/bulk-remind", guestHandler.BulkRemind)
	panelGroup.Get("/guests/email/undecided", guestHandler.UndecidedPreset)
	panelGroup.Post("/guests/email", guestHandler.Email)
	panelGroup.Post("/guests", guestHandler.Create)
	panelGroup.Put("/guests/:id", guestHandler.Update)
	panelGroup.Put("/guests/:id/status", guestHandler.SetStatus)
	panelGroup.Post("/guests/:id/remind", guestHandler.Remind)
	panelGroup.Delete("/guests/:id", guestHandler.Delete)

	// --- Notlar ve Misafir Defteri ---
	panelGroup.Get("/notes", notesHandler.ListNotes)
	panelGroup.Post("/notes", notesHandler.AddNote)
	panelGroup.Delete("/notes/:id", notesHandler.DeleteNote)
	panelGroup.Get("/guestbook", notesHandler.ListGuestbook)
	panelGroup.Post("/guestbook/:id/reply", notesHandler.Reply)
	panelGroup.Post("/guestbook/:id/reaction", notesHandler.React)
	panelGroup.Post("/guestbook/:id/approval", notesHandler.SetApproval)
	panelGroup.Delete("/guestbook/:id", notesHandler.DeleteEntry)
}
