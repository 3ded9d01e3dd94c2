package services

import (
	"context"

	"dugun.site/models"
)

// remoteOp eylemin yerel güncellemeden sonra uzak depoya yaptığı yazım.
type remoteOp func(ctx context.Context, store IRemoteStore) error

// Action AppStore.Dispatch ile uygulanan durum değişikliği.
type Action interface {
	Name() string
	// reduce durumu yerinde günceller; uzak yazımları ve değişen koleksiyonu döndürür.
	reduce(s *State) ([]remoteOp, models.Collection)
}

func writeOp(collection models.Collection, id string, record any) remoteOp {
	return func(ctx context.Context, store IRemoteStore) error {
		return store.Write(ctx, collection, id, record)
	}
}

func deleteOp(collection models.Collection, id string) remoteOp {
	return func(ctx context.Context, store IRemoteStore) error {
		return store.Delete(ctx, collection, id)
	}
}

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// SaveRSVP kaydı ekler ya da aynı kimlikli kaydın yerine koyar.
type SaveRSVP struct {
	RSVP models.RSVP
}

func (SaveRSVP) Name() string { return "save_rsvp" }

func (a SaveRSVP) reduce(s *State) ([]remoteOp, models.Collection) {
	replaced := false
	for i := range s.RSVPs {
		if s.RSVPs[i].ID == a.RSVP.ID {
			s.RSVPs[i] = a.RSVP
			replaced = true
			break
		}
	}
	if !replaced {
		s.RSVPs = append(s.RSVPs, a.RSVP)
	}
	return []remoteOp{writeOp(models.CollectionRSVPs, a.RSVP.ID, a.RSVP)}, models.CollectionRSVPs
}

// DeleteRSVPs kayıtları kalıcı olarak siler.
type DeleteRSVPs struct {
	IDs []string
}

func (DeleteRSVPs) Name() string { return "delete_rsvps" }

func (a DeleteRSVPs) reduce(s *State) ([]remoteOp, models.Collection) {
	drop := idSet(a.IDs)
	kept := make([]models.RSVP, 0, len(s.RSVPs))
	for _, r := range s.RSVPs {
		if _, ok := drop[r.ID]; !ok {
			kept = append(kept, r)
		}
	}
	s.RSVPs = kept
	ops := make([]remoteOp, 0, len(drop))
	for id := range drop {
		ops = append(ops, deleteOp(models.CollectionRSVPs, id))
	}
	return ops, models.CollectionRSVPs
}

// MarkReminded kayıtları hatırlatma gönderildi olarak işaretler.
type MarkReminded struct {
	IDs []string
}

func (MarkReminded) Name() string { return "mark_reminded" }

func (a MarkReminded) reduce(s *State) ([]remoteOp, models.Collection) {
	mark := idSet(a.IDs)
	var ops []remoteOp
	for i := range s.RSVPs {
		if _, ok := mark[s.RSVPs[i].ID]; !ok {
			continue
		}
		s.RSVPs[i].ReminderSent = true
		ops = append(ops, writeOp(models.CollectionRSVPs, s.RSVPs[i].ID, s.RSVPs[i]))
	}
	return ops, models.CollectionRSVPs
}

// UpdateContent içerik belgesini bütün olarak değiştirir.
type UpdateContent struct {
	Content models.SiteContent
}

func (UpdateContent) Name() string { return "update_content" }

func (a UpdateContent) reduce(s *State) ([]remoteOp, models.Collection) {
	s.Content = a.Content.Clone()
	doc := a.Content.Clone()
	return []remoteOp{func(ctx context.Context, store IRemoteStore) error {
		return store.WriteDocument(ctx, models.CollectionContent, doc)
	}}, models.CollectionContent
}

// AddNote notu listenin başına ekler.
type AddNote struct {
	Note models.MeetingNote
}

func (AddNote) Name() string { return "add_note" }

func (a AddNote) reduce(s *State) ([]remoteOp, models.Collection) {
	s.Notes = append([]models.MeetingNote{a.Note}, s.Notes...)
	return []remoteOp{writeOp(models.CollectionNotes, a.Note.ID, a.Note)}, models.CollectionNotes
}

type DeleteNote struct {
	ID string
}

func (DeleteNote) Name() string { return "delete_note" }

func (a DeleteNote) reduce(s *State) ([]remoteOp, models.Collection) {
	kept := make([]models.MeetingNote, 0, len(s.Notes))
	for _, n := range s.Notes {
		if n.ID != a.ID {
			kept = append(kept, n)
		}
	}
	s.Notes = kept
	return []remoteOp{deleteOp(models.CollectionNotes, a.ID)}, models.CollectionNotes
}

// SaveGuestbookEntry girdiyi ekler (en başa) ya da günceller.
type SaveGuestbookEntry struct {
	Entry models.GuestbookEntry
}

func (SaveGuestbookEntry) Name() string { return "save_guestbook_entry" }

func (a SaveGuestbookEntry) reduce(s *State) ([]remoteOp, models.Collection) {
	replaced := false
	for i := range s.Guestbook {
		if s.Guestbook[i].ID == a.Entry.ID {
			s.Guestbook[i] = a.Entry
			replaced = true
			break
		}
	}
	if !replaced {
		s.Guestbook = append([]models.GuestbookEntry{a.Entry}, s.Guestbook...)
	}
	return []remoteOp{writeOp(models.CollectionGuestbook, a.Entry.ID, a.Entry)}, models.CollectionGuestbook
}

type DeleteGuestbookEntry struct {
	ID string
}

func (DeleteGuestbookEntry) Name() string { return "delete_guestbook_entry" }

func (a DeleteGuestbookEntry) reduce(s *State) ([]remoteOp, models.Collection) {
	kept := make([]models.GuestbookEntry, 0, len(s.Guestbook))
	for _, e := range s.Guestbook {
		if e.ID != a.ID {
			kept = append(kept, e)
		}
	}
	s.Guestbook = kept
	return []remoteOp{deleteOp(models.CollectionGuestbook, a.ID)}, models.CollectionGuestbook
}
