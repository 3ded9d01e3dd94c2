package services

import (
	"context"
	"sort"
	"strings"

	"dugun.site/configs/configslog"
	"dugun.site/models"
	"dugun.site/pkg/clock"
	"dugun.site/pkg/idgen"

	"go.uber.org/zap"
)

// GuestbookServiceError misafir defteri hataları.
type GuestbookServiceError string

func (e GuestbookServiceError) Error() string { return string(e) }

const (
	ErrGuestbookNameRequired    GuestbookServiceError = "Please enter your name."
	ErrGuestbookMessageRequired GuestbookServiceError = "Please write a message."
	ErrGuestbookEntryNotFound   GuestbookServiceError = "mesaj bulunamadı"
)

// IGuestbookService misafir defteri işlemleri.
type IGuestbookService interface {
	Submit(ctx context.Context, name, message string) (*models.GuestbookEntry, error)
	Approved() []models.GuestbookEntry
	All() []models.GuestbookEntry
	Reply(ctx context.Context, id, reply string) (*models.GuestbookEntry, error)
	React(ctx context.Context, id, reaction string) (*models.GuestbookEntry, error)
	SetApproved(ctx context.Context, id string, approved bool) (*models.GuestbookEntry, error)
	Delete(ctx context.Context, id string) error
}

// GuestbookService IGuestbookService arayüzünü uygular.
type GuestbookService struct {
	store IAppStore
	ids   *idgen.Generator
	now   clock.NowFunc
}

func NewGuestbookService(store IAppStore, ids *idgen.Generator, now clock.NowFunc) *GuestbookService {
	if now == nil {
		now = clock.System()
	}
	return &GuestbookService{store: store, ids: ids, now: now}
}

// Submit yeni mesajı onaylı olarak ekler. Uzak yazım hatası yutulur.
func (s *GuestbookService) Submit(ctx context.Context, name, message string) (*models.GuestbookEntry, error) {
	name = strings.TrimSpace(name)
	message = strings.TrimSpace(message)
	if name == "" {
		return nil, ErrGuestbookNameRequired
	}
	if message == "" {
		return nil, ErrGuestbookMessageRequired
	}
	entry := models.GuestbookEntry{
		ID:         s.ids.Next(),
		Name:       name,
		Message:    message,
		Date:       models.ISOTime(s.now()),
		IsApproved: true,
	}
	if err := s.store.Dispatch(ctx, SaveGuestbookEntry{Entry: entry}); err != nil {
		configslog.Log.Warn("Misafir defteri mesajı yazılamadı", zap.String("id", entry.ID), zap.Error(err))
	}
	return &entry, nil
}

func newestFirst(entries []models.GuestbookEntry) []models.GuestbookEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		return models.ParseISOTime(entries[i].Date).After(models.ParseISOTime(entries[j].Date))
	})
	return entries
}

// Approved herkese açık liste: sadece onaylılar, en yeni önce.
func (s *GuestbookService) Approved() []models.GuestbookEntry {
	var out []models.GuestbookEntry
	for _, e := range s.store.GetState().Guestbook {
		if e.IsApproved {
			out = append(out, e)
		}
	}
	return newestFirst(out)
}

// All panel için tüm mesajlar, en yeni önce.
func (s *GuestbookService) All() []models.GuestbookEntry {
	return newestFirst(s.store.GetState().Guestbook)
}

func (s *GuestbookService) update(ctx context.Context, id string, fn func(e *models.GuestbookEntry)) (*models.GuestbookEntry, error) {
	for _, e := range s.store.GetState().Guestbook {
		if e.ID != id {
			continue
		}
		fn(&e)
		if err := s.store.Dispatch(ctx, SaveGuestbookEntry{Entry: e}); err != nil {
			configslog.Log.Warn("Misafir defteri güncellemesi yazılamadı", zap.String("id", id), zap.Error(err))
		}
		return &e, nil
	}
	return nil, ErrGuestbookEntryNotFound
}

// Reply tek cevabı yazar ya da değiştirir; boş cevap cevabı kaldırır.
func (s *GuestbookService) Reply(ctx context.Context, id, reply string) (*models.GuestbookEntry, error) {
	reply = strings.TrimSpace(reply)
	return s.update(ctx, id, func(e *models.GuestbookEntry) {
		e.Reply = reply
		if reply == "" {
			e.ReplyDate = ""
			return
		}
		e.ReplyDate = models.ISOTime(s.now())
	})
}

func (s *GuestbookService) React(ctx context.Context, id, reaction string) (*models.GuestbookEntry, error) {
	reaction = strings.TrimSpace(reaction)
	return s.update(ctx, id, func(e *models.GuestbookEntry) { e.Reaction = reaction })
}

func (s *GuestbookService) SetApproved(ctx context.Context, id string, approved bool) (*models.GuestbookEntry, error) {
	return s.update(ctx, id, func(e *models.GuestbookEntry) { e.IsApproved = approved })
}

func (s *GuestbookService) Delete(ctx context.Context, id string) error {
	if err := s.store.Dispatch(ctx, DeleteGuestbookEntry{ID: id}); err != nil {
		configslog.Log.Warn("Misafir defteri mesajı silinemedi", zap.String("id", id), zap.Error(err))
	}
	return nil
}

var _ IGuestbookService = (*GuestbookService)(nil)
