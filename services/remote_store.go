package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"dugun.site/configs/configslog"
	"dugun.site/models"
	"dugun.site/pkg/metrics"
	"dugun.site/pkg/realtime"
	"dugun.site/repositories"

	"go.uber.org/zap"
)

// RemoteStoreError uzak depo hataları.
type RemoteStoreError string

func (e RemoteStoreError) Error() string { return string(e) }

const (
	ErrUnknownCollection RemoteStoreError = "bilinmeyen koleksiyon"
	ErrRecordMismatch    RemoteStoreError = "kayıt tipi koleksiyonla uyuşmuyor"
	ErrEmptyRecordID     RemoteStoreError = "kayıt kimliği boş olamaz"
)

// IRemoteStore koleksiyonlara abone olma ve tam kayıt yazma işlemleri.
// Her yazımdan sonra koleksiyonun tamamı abonelere yeniden itilir.
type IRemoteStore interface {
	Subscribe(ctx context.Context, collection models.Collection, fn realtime.Listener) (func(), error)
	SubscribeContent(ctx context.Context, fn func(content models.SiteContent, rev uint64)) (func(), error)
	SubscribeRSVPs(ctx context.Context, fn func(rsvps []models.RSVP, rev uint64)) (func(), error)
	SubscribeNotes(ctx context.Context, fn func(notes []models.MeetingNote, rev uint64)) (func(), error)
	SubscribeGuestbook(ctx context.Context, fn func(entries []models.GuestbookEntry, rev uint64)) (func(), error)
	Write(ctx context.Context, collection models.Collection, id string, record any) error
	Delete(ctx context.Context, collection models.Collection, id string) error
	WriteDocument(ctx context.Context, name models.Collection, doc any) error
	Snapshot(ctx context.Context, collection models.Collection) ([]byte, error)
	// Revision koleksiyonun başarılı yazım sayısı; yayınlanan görüntüler bu sayıyı taşır.
	Revision(collection models.Collection) uint64
}

// RemoteStore IRemoteStore arayüzünü repository'ler ve realtime.Hub ile uygular.
type RemoteStore struct {
	rsvps     repositories.IRSVPRepository
	notes     repositories.IMeetingNoteRepository
	guestbook repositories.IGuestbookRepository
	documents repositories.IDocumentRepository
	hub       *realtime.Hub

	// Yazım, yeniden okuma ve yayın aynı kilit altında yapılır; abonelere
	// görüntüler yazım sırasıyla ulaşır.
	locks map[models.Collection]*sync.Mutex
	revs  map[models.Collection]*atomic.Uint64
}

// NewRemoteStore yeni bir RemoteStore örneği oluşturur.
func NewRemoteStore(
	rsvps repositories.IRSVPRepository,
	notes repositories.IMeetingNoteRepository,
	guestbook repositories.IGuestbookRepository,
	documents repositories.IDocumentRepository,
	hub *realtime.Hub,
) *RemoteStore {
	locks := make(map[models.Collection]*sync.Mutex)
	revs := make(map[models.Collection]*atomic.Uint64)
	for _, c := range []models.Collection{models.CollectionContent, models.CollectionRSVPs, models.CollectionNotes, models.CollectionGuestbook} {
		locks[c] = &sync.Mutex{}
		revs[c] = &atomic.Uint64{}
	}
	return &RemoteStore{rsvps: rsvps, notes: notes, guestbook: guestbook, documents: documents, hub: hub, locks: locks, revs: revs}
}

// Revision bilinmeyen koleksiyon için 0 döner.
func (s *RemoteStore) Revision(collection models.Collection) uint64 {
	if rev, ok := s.revs[collection]; ok {
		return rev.Load()
	}
	return 0
}

func (s *RemoteStore) lock(collection models.Collection) (func(), error) {
	mu, ok := s.locks[collection]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	mu.Lock()
	return mu.Unlock, nil
}

// Snapshot koleksiyonun o anki tam JSON görüntüsü. İçerik belgesi yoksa "null" döner.
func (s *RemoteStore) Snapshot(ctx context.Context, collection models.Collection) ([]byte, error) {
	switch collection {
	case models.CollectionContent:
		doc, err := s.documents.Get(ctx, string(models.CollectionContent))
		if errors.Is(err, repositories.ErrNotFound) {
			return []byte("null"), nil
		}
		if err != nil {
			return nil, err
		}
		return []byte(doc.Data), nil
	case models.CollectionRSVPs:
		return listJSON(s.rsvps.List(ctx))
	case models.CollectionNotes:
		return listJSON(s.notes.List(ctx))
	case models.CollectionGuestbook:
		return listJSON(s.guestbook.List(ctx))
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
}

func listJSON[T any](records []T, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	return json.Marshal(records)
}

// Subscribe fn'i koleksiyona bağlar; fn hemen o anki görüntüyle, sonra her değişiklikte çağrılır.
func (s *RemoteStore) Subscribe(ctx context.Context, collection models.Collection, fn realtime.Listener) (func(), error) {
	unlock, err := s.lock(collection)
	if err != nil {
		return nil, err
	}
	defer unlock()

	snap, err := s.Snapshot(ctx, collection)
	if err != nil {
		return nil, err
	}
	unsub := s.hub.Subscribe(string(collection), realtime.Snapshot{Revision: s.Revision(collection), Data: snap}, fn)
	metrics.FeedSubscribers.WithLabelValues(string(collection)).Inc()

	var once sync.Once
	return func() {
		once.Do(func() {
			unsub()
			metrics.FeedSubscribers.WithLabelValues(string(collection)).Dec()
		})
	}, nil
}

// SubscribeContent içerik belgesi yokken fn çağrılmaz.
func (s *RemoteStore) SubscribeContent(ctx context.Context, fn func(content models.SiteContent, rev uint64)) (func(), error) {
	return s.Subscribe(ctx, models.CollectionContent, func(snap realtime.Snapshot) {
		if len(snap.Data) == 0 || string(snap.Data) == "null" {
			return
		}
		var content models.SiteContent
		if err := json.Unmarshal(snap.Data, &content); err != nil {
			configslog.Log.Error("İçerik görüntüsü çözümlenemedi", zap.Error(err))
			return
		}
		fn(content, snap.Revision)
	})
}

func (s *RemoteStore) SubscribeRSVPs(ctx context.Context, fn func(rsvps []models.RSVP, rev uint64)) (func(), error) {
	return s.Subscribe(ctx, models.CollectionRSVPs, decodeList(models.CollectionRSVPs, fn))
}

func (s *RemoteStore) SubscribeNotes(ctx context.Context, fn func(notes []models.MeetingNote, rev uint64)) (func(), error) {
	return s.Subscribe(ctx, models.CollectionNotes, decodeList(models.CollectionNotes, fn))
}

// SubscribeGuestbook girdileri tarihe göre yeniden eskiye sıralanmış verir.
func (s *RemoteStore) SubscribeGuestbook(ctx context.Context, fn func(entries []models.GuestbookEntry, rev uint64)) (func(), error) {
	return s.Subscribe(ctx, models.CollectionGuestbook, decodeList(models.CollectionGuestbook, func(entries []models.GuestbookEntry, rev uint64) {
		SortGuestbookNewestFirst(entries)
		fn(entries, rev)
	}))
}

// SortGuestbookNewestFirst girdileri tarihe göre azalan sıralar.
func SortGuestbookNewestFirst(entries []models.GuestbookEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return models.ParseISOTime(entries[i].Date).After(models.ParseISOTime(entries[j].Date))
	})
}

func decodeList[T any](collection models.Collection, fn func([]T, uint64)) realtime.Listener {
	return func(snap realtime.Snapshot) {
		records := make([]T, 0)
		if err := json.Unmarshal(snap.Data, &records); err != nil {
			configslog.Log.Error("Koleksiyon görüntüsü çözümlenemedi", zap.String("collection", string(collection)), zap.Error(err))
			return
		}
		fn(records, snap.Revision)
	}
}

// Write tek bir kaydı bütün alanlarıyla yazar. record'un kimliği id ile değiştirilir.
func (s *RemoteStore) Write(ctx context.Context, collection models.Collection, id string, record any) error {
	if id == "" {
		return ErrEmptyRecordID
	}
	unlock, err := s.lock(collection)
	if err != nil {
		return err
	}
	defer unlock()

	switch collection {
	case models.CollectionRSVPs:
		r, ok := record.(models.RSVP)
		if !ok {
			return fmt.Errorf("%w: %T", ErrRecordMismatch, record)
		}
		r.ID = id
		err = s.rsvps.Upsert(ctx, &r)
	case models.CollectionNotes:
		n, ok := record.(models.MeetingNote)
		if !ok {
			return fmt.Errorf("%w: %T", ErrRecordMismatch, record)
		}
		n.ID = id
		err = s.notes.Upsert(ctx, &n)
	case models.CollectionGuestbook:
		e, ok := record.(models.GuestbookEntry)
		if !ok {
			return fmt.Errorf("%w: %T", ErrRecordMismatch, record)
		}
		e.ID = id
		err = s.guestbook.Upsert(ctx, &e)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	metrics.StoreOperations.WithLabelValues(string(collection), "write", metrics.Result(err)).Inc()
	if err != nil {
		configslog.Log.Error("Kayıt yazılamadı", zap.String("collection", string(collection)), zap.String("id", id), zap.Error(err))
		return err
	}
	s.publishLocked(ctx, collection)
	return nil
}

// Delete tek bir kaydı kalıcı olarak siler.
func (s *RemoteStore) Delete(ctx context.Context, collection models.Collection, id string) error {
	if id == "" {
		return ErrEmptyRecordID
	}
	unlock, err := s.lock(collection)
	if err != nil {
		return err
	}
	defer unlock()

	switch collection {
	case models.CollectionRSVPs:
		err = s.rsvps.Delete(ctx, id)
	case models.CollectionNotes:
		err = s.notes.Delete(ctx, id)
	case models.CollectionGuestbook:
		err = s.guestbook.Delete(ctx, id)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	metrics.StoreOperations.WithLabelValues(string(collection), "delete", metrics.Result(err)).Inc()
	if err != nil {
		configslog.Log.Error("Kayıt silinemedi", zap.String("collection", string(collection)), zap.String("id", id), zap.Error(err))
		return err
	}
	s.publishLocked(ctx, collection)
	return nil
}

// WriteDocument tekil belgeyi bütün olarak değiştirir. Sürüm kontrolü yoktur.
func (s *RemoteStore) WriteDocument(ctx context.Context, name models.Collection, doc any) error {
	if name != models.CollectionContent {
		return fmt.Errorf("%w: %s", ErrUnknownCollection, name)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("belge serileştirilemedi: %w", err)
	}
	unlock, err := s.lock(name)
	if err != nil {
		return err
	}
	defer unlock()

	err = s.documents.Put(ctx, string(name), raw)
	metrics.StoreOperations.WithLabelValues(string(name), "write_document", metrics.Result(err)).Inc()
	if err != nil {
		configslog.Log.Error("Belge yazılamadı", zap.String("name", string(name)), zap.Error(err))
		return err
	}
	rev := s.revs[name].Add(1)
	s.hub.Publish(string(name), realtime.Snapshot{Revision: rev, Data: raw})
	return nil
}

// publishLocked sayacı artırır, koleksiyonu yeniden okuyup yayınlar. Koleksiyon
// kilidi tutulurken çağrılır. Okuma başarısız olsa da sayaç artar; eski görüntüler
// yeni yazımın üstüne yazılamaz.
func (s *RemoteStore) publishLocked(ctx context.Context, collection models.Collection) {
	rev := s.revs[collection].Add(1)
	snap, err := s.Snapshot(ctx, collection)
	if err != nil {
		configslog.Log.Error("Yazım sonrası görüntü okunamadı", zap.String("collection", string(collection)), zap.Error(err))
		return
	}
	s.hub.Publish(string(collection), realtime.Snapshot{Revision: rev, Data: snap})
}

var _ IRemoteStore = (*RemoteStore)(nil)
