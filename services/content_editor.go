package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"dugun.site/configs/configslog"
	"dugun.site/models"
	"dugun.site/pkg/idgen"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContentEditorError içerik düzenleyici hataları.
type ContentEditorError string

func (e ContentEditorError) Error() string { return string(e) }

const (
	ErrUnknownField        ContentEditorError = "bilinmeyen içerik alanı"
	ErrNotArrayField       ContentEditorError = "alan bir dizi değil"
	ErrIndexOutOfRange     ContentEditorError = "dizi indeksi geçersiz"
	ErrInvalidFieldValue   ContentEditorError = "alan değeri geçersiz"
	ErrNoPendingDeletion   ContentEditorError = "onay bekleyen silme işlemi yok"
	ErrDeletionTokenDenied ContentEditorError = "silme onayı geçersiz"
	ErrChecklistItemAbsent ContentEditorError = "kontrol listesi maddesi bulunamadı"
	ErrEmptyChecklistText  ContentEditorError = "kontrol listesi metni boş olamaz"
)

// ArrayFields düzenleyicinin indeksle yönettiği dizi alanları.
var ArrayFields = map[string]bool{
	"venues":        true,
	"timelineItems": true,
	"galleryImages": true,
	"registryLinks": true,
	"socialLinks":   true,
	"bridalParty":   true,
	"menu":          true,
	"checklist":     true,
}

var contentFields = func() map[string]bool {
	raw, _ := json.Marshal(models.InitialContent())
	var m map[string]json.RawMessage
	_ = json.Unmarshal(raw, &m)
	fields := make(map[string]bool, len(m)+2)
	for k := range m {
		fields[k] = true
	}
	// omitempty alanlar boş değerle de bilinmeli.
	fields["googlePhotosLinkEnabled"] = true
	fields["footerText"] = true
	return fields
}()

// DeletionStatus iki aşamalı silmenin durumu.
type DeletionStatus string

const (
	DeletionIdle      DeletionStatus = "idle"
	DeletionPending   DeletionStatus = "pending"
	DeletionConfirmed DeletionStatus = "confirmed"
)

// PendingDeletion onay bekleyen dizi elemanı. Bellekte, düzenleyici oturumu başına tutulur.
type PendingDeletion struct {
	Status    DeletionStatus `json:"status"`
	Token     string         `json:"token,omitempty"`
	Field     string         `json:"field,omitempty"`
	Index     int            `json:"index"`
	ItemName  string         `json:"itemName,omitempty"`
	CreatedAt time.Time      `json:"createdAt,omitempty"`
}

// IContentEditor içerik belgesi üzerinde yapısal düzenleme.
type IContentEditor interface {
	Content() models.SiteContent
	SetField(ctx context.Context, field string, value json.RawMessage) (models.SiteContent, error)
	UpdateArrayItem(ctx context.Context, field string, index int, subField string, value json.RawMessage) (models.SiteContent, error)
	AddArrayItem(ctx context.Context, field string, item json.RawMessage) (models.SiteContent, error)
	RequestDelete(sessionID, field string, index int, itemName string) (PendingDeletion, error)
	ConfirmDelete(ctx context.Context, sessionID, token string) (models.SiteContent, error)
	CancelDelete(sessionID string)
	Deletion(sessionID string) PendingDeletion
	AddChecklistItem(ctx context.Context, text string) (models.ChecklistItem, error)
	ToggleChecklistItem(ctx context.Context, id string) (models.SiteContent, error)
	RemoveChecklistItem(ctx context.Context, id string) (models.SiteContent, error)
	SetMusic(ctx context.Context, url string) (models.SiteContent, error)
}

// ContentEditor IContentEditor arayüzünü uygular. Her değişiklik güncel belgeyi okur,
// tek değişiklikle yeni belge kurar ve belgenin tamamını yazar (son yazan kazanır).
type ContentEditor struct {
	store IAppStore
	ids   *idgen.Generator
	now   func() time.Time

	mu       sync.Mutex
	pending  map[string]PendingDeletion
	unsubAut func()
}

// NewContentEditor auth verilirse oturum kapanışında bekleyen silmeyi iptal eder.
func NewContentEditor(store IAppStore, auth IAuthService, ids *idgen.Generator) *ContentEditor {
	e := &ContentEditor{
		store:   store,
		ids:     ids,
		now:     time.Now,
		pending: make(map[string]PendingDeletion),
	}
	if auth != nil {
		e.unsubAut = auth.OnSessionChange(func(ev SessionEvent) {
			if ev.Kind == SessionLogout || ev.Kind == SessionLogin {
				e.CancelDelete(ev.SessionID)
			}
		})
	}
	return e
}

func (e *ContentEditor) Content() models.SiteContent {
	return e.store.GetState().Content
}

// mutate içeriği JSON alan haritası olarak değiştirir ve sonucu yazar.
func (e *ContentEditor) mutate(ctx context.Context, fn func(fields map[string]json.RawMessage) error) (models.SiteContent, error) {
	current := e.store.GetState().Content
	raw, err := json.Marshal(current)
	if err != nil {
		return current, err
	}
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(raw, &fields); err != nil {
		return current, err
	}
	if err := fn(fields); err != nil {
		return current, err
	}
	raw, err = json.Marshal(fields)
	if err != nil {
		return current, err
	}
	var next models.SiteContent
	if err := json.Unmarshal(raw, &next); err != nil {
		return current, fmt.Errorf("%w: %v", ErrInvalidFieldValue, err)
	}
	return e.write(ctx, next)
}

// write yerel durumu günceller; uzak yazım hatası loglanır ama düzenlemeyi geri almaz.
func (e *ContentEditor) write(ctx context.Context, next models.SiteContent) (models.SiteContent, error) {
	if err := e.store.Dispatch(ctx, UpdateContent{Content: next}); err != nil {
		configslog.Log.Warn("İçerik uzak depoya yazılamadı", zap.Error(err))
	}
	return next, nil
}

// SetField üst düzey bir alanı verilen JSON değerle değiştirir.
func (e *ContentEditor) SetField(ctx context.Context, field string, value json.RawMessage) (models.SiteContent, error) {
	if !contentFields[field] {
		return e.Content(), fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	if !json.Valid(value) {
		return e.Content(), ErrInvalidFieldValue
	}
	return e.mutate(ctx, func(fields map[string]json.RawMessage) error {
		fields[field] = value
		return nil
	})
}

func arrayOf(fields map[string]json.RawMessage, field string) ([]json.RawMessage, error) {
	if !ArrayFields[field] {
		return nil, fmt.Errorf("%w: %s", ErrNotArrayField, field)
	}
	items := make([]json.RawMessage, 0)
	if raw, ok := fields[field]; ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func setArray(fields map[string]json.RawMessage, field string, items []json.RawMessage) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	fields[field] = raw
	return nil
}

// UpdateArrayItem dizideki bir elemanın alt alanını değiştirir. subField boşsa
// elemanın tamamı değiştirilir (örn. galeri URL'si).
func (e *ContentEditor) UpdateArrayItem(ctx context.Context, field string, index int, subField string, value json.RawMessage) (models.SiteContent, error) {
	if !json.Valid(value) {
		return e.Content(), ErrInvalidFieldValue
	}
	return e.mutate(ctx, func(fields map[string]json.RawMessage) error {
		items, err := arrayOf(fields, field)
		if err != nil {
			return err
		}
		if index < 0 || index >= len(items) {
			return ErrIndexOutOfRange
		}
		if subField == "" {
			items[index] = value
			return setArray(fields, field, items)
		}
		obj := make(map[string]json.RawMessage)
		if err := json.Unmarshal(items[index], &obj); err != nil {
			return fmt.Errorf("%w: eleman nesne değil", ErrInvalidFieldValue)
		}
		obj[subField] = value
		updated, err := json.Marshal(obj)
		if err != nil {
			return err
		}
		items[index] = updated
		return setArray(fields, field, items)
	})
}

// AddArrayItem dizinin sonuna eleman ekler.
func (e *ContentEditor) AddArrayItem(ctx context.Context, field string, item json.RawMessage) (models.SiteContent, error) {
	if !json.Valid(item) {
		return e.Content(), ErrInvalidFieldValue
	}
	return e.mutate(ctx, func(fields map[string]json.RawMessage) error {
		items, err := arrayOf(fields, field)
		if err != nil {
			return err
		}
		return setArray(fields, field, append(items, item))
	})
}

func (e *ContentEditor) removeArrayItem(ctx context.Context, field string, index int) (models.SiteContent, error) {
	return e.mutate(ctx, func(fields map[string]json.RawMessage) error {
		items, err := arrayOf(fields, field)
		if err != nil {
			return err
		}
		if index < 0 || index >= len(items) {
			return ErrIndexOutOfRange
		}
		kept := make([]json.RawMessage, 0, len(items)-1)
		for i, it := range items {
			if i != index {
				kept = append(kept, it)
			}
		}
		return setArray(fields, field, kept)
	})
}

// RequestDelete silme onayı ister. Oturumda bekleyen başka bir silme varsa yerini alır.
func (e *ContentEditor) RequestDelete(sessionID, field string, index int, itemName string) (PendingDeletion, error) {
	if !ArrayFields[field] {
		return PendingDeletion{Status: DeletionIdle}, fmt.Errorf("%w: %s", ErrNotArrayField, field)
	}
	items, err := e.arrayLen(field)
	if err != nil {
		return PendingDeletion{Status: DeletionIdle}, err
	}
	if index < 0 || index >= items {
		return PendingDeletion{Status: DeletionIdle}, ErrIndexOutOfRange
	}
	p := PendingDeletion{
		Status:    DeletionPending,
		Token:     uuid.NewString(),
		Field:     field,
		Index:     index,
		ItemName:  itemName,
		CreatedAt: e.now().UTC(),
	}
	e.mu.Lock()
	e.pending[sessionID] = p
	e.mu.Unlock()
	return p, nil
}

func (e *ContentEditor) arrayLen(field string) (int, error) {
	raw, err := json.Marshal(e.Content())
	if err != nil {
		return 0, err
	}
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(raw, &fields); err != nil {
		return 0, err
	}
	items, err := arrayOf(fields, field)
	return len(items), err
}

// ConfirmDelete bekleyen silmeyi uygular. Token eşleşmezse hiçbir şey silinmez.
func (e *ContentEditor) ConfirmDelete(ctx context.Context, sessionID, token string) (models.SiteContent, error) {
	e.mu.Lock()
	p, ok := e.pending[sessionID]
	if !ok || p.Status != DeletionPending {
		e.mu.Unlock()
		return e.Content(), ErrNoPendingDeletion
	}
	if p.Token != token {
		e.mu.Unlock()
		return e.Content(), ErrDeletionTokenDenied
	}
	p.Status = DeletionConfirmed
	e.pending[sessionID] = p
	e.mu.Unlock()

	content, err := e.removeArrayItem(ctx, p.Field, p.Index)

	e.mu.Lock()
	if cur, ok := e.pending[sessionID]; ok && cur.Token == p.Token {
		delete(e.pending, sessionID)
	}
	e.mu.Unlock()
	return content, err
}

// CancelDelete bekleyen silmeyi sessizce iptal eder.
func (e *ContentEditor) CancelDelete(sessionID string) {
	e.mu.Lock()
	delete(e.pending, sessionID)
	e.mu.Unlock()
}

// Deletion oturumun silme durumunu döndürür.
func (e *ContentEditor) Deletion(sessionID string) PendingDeletion {
	e.mu.Lock()
	defer e.mu.Unlock()
	if p, ok := e.pending[sessionID]; ok {
		return p
	}
	return PendingDeletion{Status: DeletionIdle}
}

// AddChecklistItem zaman damgası kimlikli yeni madde ekler.
func (e *ContentEditor) AddChecklistItem(ctx context.Context, text string) (models.ChecklistItem, error) {
	if strings.TrimSpace(text) == "" {
		return models.ChecklistItem{}, ErrEmptyChecklistText
	}
	item := models.ChecklistItem{ID: e.ids.Next(), Text: text}
	content := e.Content()
	content.Checklist = append(content.Checklist, item)
	_, err := e.write(ctx, content)
	return item, err
}

func (e *ContentEditor) ToggleChecklistItem(ctx context.Context, id string) (models.SiteContent, error) {
	content := e.Content()
	found := false
	for i := range content.Checklist {
		if content.Checklist[i].ID == id {
			content.Checklist[i].Completed = !content.Checklist[i].Completed
			found = true
		}
	}
	if !found {
		return content, ErrChecklistItemAbsent
	}
	return e.write(ctx, content)
}

func (e *ContentEditor) RemoveChecklistItem(ctx context.Context, id string) (models.SiteContent, error) {
	content := e.Content()
	kept := make([]models.ChecklistItem, 0, len(content.Checklist))
	for _, it := range content.Checklist {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(content.Checklist) {
		return content, ErrChecklistItemAbsent
	}
	content.Checklist = kept
	return e.write(ctx, content)
}

// SetMusic arka plan müziğini ayarlar; boş url müziği kaldırır.
func (e *ContentEditor) SetMusic(ctx context.Context, url string) (models.SiteContent, error) {
	content := e.Content()
	content.MusicURL = strings.TrimSpace(url)
	return e.write(ctx, content)
}

// Close oturum dinleyicisini bırakır.
func (e *ContentEditor) Close() {
	if e.unsubAut != nil {
		e.unsubAut()
	}
}

var _ IContentEditor = (*ContentEditor)(nil)
