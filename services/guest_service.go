package services

import (
	"context"
	"strings"

	"dugun.site/configs/configslog"
	"dugun.site/models"
	"dugun.site/pkg/clock"
	"dugun.site/pkg/guestlist"
	"dugun.site/pkg/mailto"

	"go.uber.org/zap"
)

// GuestServiceError misafir listesi hataları.
type GuestServiceError string

func (e GuestServiceError) Error() string { return string(e) }

const (
	ErrNoGuestsSelected GuestServiceError = "hiç misafir seçilmedi"
	ErrGuestNotFound    GuestServiceError = "misafir bulunamadı"
	ErrGuestHasNoEmail  GuestServiceError = "misafirin e-posta adresi yok"
	ErrNoRecipients     GuestServiceError = "seçilen misafirlerin e-posta adresi yok"
)

// Toplu e-posta için hazır metinler.
const (
	DefaultBulkSubject = "Update: Louie & Florie's Wedding"
	DefaultBulkMessage = "Hi!\n\nWe're reaching out with some updates about our wedding...\n\nBest,\nLouie & Florie"

	UndecidedReminderSubject = "Quick Reminder: Louie & Florie's Wedding"
	UndecidedReminderMessage = "Hi!\n\nWe hope you're doing well. We're finalizing our wedding numbers and wanted to check if you'll be able to join us.\n\nPlease let us know by visiting our website.\n\nBest,\nLouie & Florie"
)

// EmailDraft panelde açılacak e-posta taslağı.
type EmailDraft struct {
	IDs     []string `json:"ids"`
	Subject string   `json:"subject"`
	Message string   `json:"message"`
	Mailto  string   `json:"mailto,omitempty"`
}

// CSVExport dışa aktarılan dosya.
type CSVExport struct {
	Filename string
	Data     []byte
}

// IGuestService yönetim panelindeki misafir listesi işlemleri.
type IGuestService interface {
	List(filter guestlist.Filter, sort guestlist.SortKey) []models.RSVP
	Stats() guestlist.Stats
	Export(filter guestlist.Filter, sort guestlist.SortKey) CSVExport
	Delete(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) error
	Remind(ctx context.Context, id string) (string, error)
	BulkRemind(ctx context.Context, ids []string) (string, error)
	BulkEmail(ids []string, subject, message string) (*EmailDraft, error)
	UndecidedPreset() EmailDraft
}

// GuestService IGuestService arayüzünü uygular.
type GuestService struct {
	store   IAppStore
	now     clock.NowFunc
	siteURL string
}

func NewGuestService(store IAppStore, now clock.NowFunc, siteURL string) *GuestService {
	if now == nil {
		now = clock.System()
	}
	return &GuestService{store: store, now: now, siteURL: siteURL}
}

func (s *GuestService) event(content models.SiteContent) mailto.Event {
	return mailto.EventFromContent(content, s.siteURL)
}

// List filtrelenmiş ve sıralanmış misafir listesi.
func (s *GuestService) List(filter guestlist.Filter, sort guestlist.SortKey) []models.RSVP {
	return guestlist.View(s.store.GetState().RSVPs, filter, sort)
}

// Stats her çağrıda güncel kayıtlardan hesaplanır.
func (s *GuestService) Stats() guestlist.Stats {
	return guestlist.ComputeStats(s.store.GetState().RSVPs)
}

// Export görünen listeyi CSV olarak döndürür.
func (s *GuestService) Export(filter guestlist.Filter, sort guestlist.SortKey) CSVExport {
	rows := s.List(filter, sort)
	configslog.SLog.Infof("Misafir listesi dışa aktarıldı: %d kayıt", len(rows))
	return CSVExport{Filename: guestlist.ExportFilename(s.now()), Data: guestlist.ExportCSV(rows)}
}

func (s *GuestService) Delete(ctx context.Context, id string) error {
	return s.BulkDelete(ctx, []string{id})
}

// BulkDelete seçilen kayıtları siler. Uzak yazım hatası loglanır ve yutulur.
func (s *GuestService) BulkDelete(ctx context.Context, ids []string) error {
	ids = compactIDs(ids)
	if len(ids) == 0 {
		return ErrNoGuestsSelected
	}
	if err := s.store.Dispatch(ctx, DeleteRSVPs{IDs: ids}); err != nil {
		configslog.Log.Warn("Misafirler uzak depodan silinemedi", zap.Strings("ids", ids), zap.Error(err))
	}
	return nil
}

func (s *GuestService) selected(ids []string) []models.RSVP {
	want := idSet(ids)
	var out []models.RSVP
	for _, r := range s.store.GetState().RSVPs {
		if _, ok := want[r.ID]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Remind tek misafir için hatırlatma e-postası hazırlar ve kaydı işaretler.
func (s *GuestService) Remind(ctx context.Context, id string) (string, error) {
	guests := s.selected([]string{id})
	if len(guests) == 0 {
		return "", ErrGuestNotFound
	}
	guest := guests[0]
	if strings.TrimSpace(guest.Email) == "" {
		return "", ErrGuestHasNoEmail
	}
	link := mailto.FollowUpReminder(guest, s.event(s.store.GetState().Content))
	if err := s.store.Dispatch(ctx, MarkReminded{IDs: []string{id}}); err != nil {
		configslog.Log.Warn("Hatırlatma işareti yazılamadı", zap.String("id", id), zap.Error(err))
	}
	return link, nil
}

// BulkRemind seçilenlere tek bir bcc hatırlatması hazırlar ve hepsini işaretler.
func (s *GuestService) BulkRemind(ctx context.Context, ids []string) (string, error) {
	ids = compactIDs(ids)
	if len(ids) == 0 {
		return "", ErrNoGuestsSelected
	}
	guests := s.selected(ids)
	if mailto.Recipients(guests) == "" {
		return "", ErrNoRecipients
	}
	link := mailto.BatchReminder(guests, s.event(s.store.GetState().Content))
	marked := make([]string, 0, len(guests))
	for _, g := range guests {
		marked = append(marked, g.ID)
	}
	if err := s.store.Dispatch(ctx, MarkReminded{IDs: marked}); err != nil {
		configslog.Log.Warn("Toplu hatırlatma işareti yazılamadı", zap.Int("count", len(marked)), zap.Error(err))
	}
	return link, nil
}

// BulkEmail serbest konu ve mesajla bcc e-postası; boş alanlar hazır metinle doldurulur.
func (s *GuestService) BulkEmail(ids []string, subject, message string) (*EmailDraft, error) {
	ids = compactIDs(ids)
	if len(ids) == 0 {
		return nil, ErrNoGuestsSelected
	}
	if strings.TrimSpace(subject) == "" {
		subject = DefaultBulkSubject
	}
	if strings.TrimSpace(message) == "" {
		message = DefaultBulkMessage
	}
	guests := s.selected(ids)
	if mailto.Recipients(guests) == "" {
		return nil, ErrNoRecipients
	}
	return &EmailDraft{IDs: ids, Subject: subject, Message: message, Mailto: mailto.Compose(guests, subject, message)}, nil
}

// UndecidedPreset kararsız misafirleri seçen hatırlatma taslağı.
func (s *GuestService) UndecidedPreset() EmailDraft {
	var ids []string
	for _, r := range s.store.GetState().RSVPs {
		if r.Status == models.RSVPStatusUndecided {
			ids = append(ids, r.ID)
		}
	}
	return EmailDraft{IDs: ids, Subject: UndecidedReminderSubject, Message: UndecidedReminderMessage}
}

func compactIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

var _ IGuestService = (*GuestService)(nil)

