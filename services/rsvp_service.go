package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"dugun.site/configs/configslog"
	"dugun.site/models"
	"dugun.site/pkg/calendar"
	"dugun.site/pkg/clock"
	"dugun.site/pkg/idgen"
	"dugun.site/pkg/mailto"
	"dugun.site/pkg/metrics"

	"go.uber.org/zap"
)

// RSVPServiceError LCV hataları; mesajlar misafire gösterilir.
type RSVPServiceError string

func (e RSVPServiceError) Error() string { return string(e) }

const (
	ErrRSVPNameRequired       RSVPServiceError = "Please enter your name."
	ErrRSVPInvalidStatus      RSVPServiceError = "Please choose whether you will attend."
	ErrRSVPEmailRequired      RSVPServiceError = "Please share your email so we can follow up."
	ErrRSVPNotFound           RSVPServiceError = "No RSVP found for that name. Have you responded yet?"
	ErrRSVPTransitionDenied   RSVPServiceError = "Your response has already been recorded."
	ErrRSVPInvalidTransition  RSVPServiceError = "You can only accept or decline."
	ErrRSVPUpdateFailed       RSVPServiceError = "We could not save your response. Please try again."
	ErrRSVPLookupQueryMissing RSVPServiceError = "Please enter your name as it appears on your invitation."
)

// Misafir portalındaki durum notları.
const (
	statusNoteUndecided    = "Your celebration status is still pending. We've reserved a tentative place for you and cannot wait to celebrate together."
	statusNoteAttending    = "We are delighted to confirm your presence. Our finest arrangements are being tailored for your arrival at the estate."
	statusNoteNotAttending = "We have received your regrets. While your presence will be missed, we remain deeply grateful for your warmth and well wishes."
)

// StatusNote durum için portal metni.
func StatusNote(s models.RSVPStatus) string {
	switch s {
	case models.RSVPStatusAttending:
		return statusNoteAttending
	case models.RSVPStatusNotAttending:
		return statusNoteNotAttending
	}
	return statusNoteUndecided
}

// RSVPInput form ya da panelden gelen LCV verisi.
type RSVPInput struct {
	Name         string            `json:"name" form:"name"`
	Email        string            `json:"email" form:"email"`
	Status       models.RSVPStatus `json:"status" form:"status"`
	PlusOne      bool              `json:"plusOne" form:"plusOne"`
	PlusOneName  string            `json:"plusOneName" form:"plusOneName"`
	Dietary      string            `json:"dietary" form:"dietary"`
	SongRequest  string            `json:"songRequest" form:"songRequest"`
	Notes        string            `json:"notes" form:"notes"`
	FollowUpDate string            `json:"followUpDate" form:"followUpDate"`
}

// SubmitResult gönderim sonucu; onay e-postası sadece e-posta varsa ve durum kararsız değilse dolu.
type SubmitResult struct {
	RSVP               models.RSVP `json:"rsvp"`
	ConfirmationMailto string      `json:"confirmationMailto,omitempty"`
}

// PortalView misafir self-servis ekranı.
type PortalView struct {
	RSVP         models.RSVP    `json:"rsvp"`
	StatusNote   string         `json:"statusNote"`
	CanRespond   bool           `json:"canRespond"`
	WeddingDate  string         `json:"weddingDate"`
	WeddingTime  string         `json:"weddingTime"`
	Venues       []models.Venue `json:"venues"`
	CalendarLink string         `json:"calendarLink,omitempty"`
}

// IRSVPService misafir LCV işlemleri.
type IRSVPService interface {
	Submit(ctx context.Context, in RSVPInput) (*SubmitResult, error)
	Lookup(query string) (*models.RSVP, error)
	Portal(query string) (*PortalView, error)
	Respond(ctx context.Context, id string, status models.RSVPStatus) (*models.RSVP, error)
	AdminSave(ctx context.Context, id string, in RSVPInput) (*models.RSVP, error)
}

// RSVPService IRSVPService arayüzünü uygular.
type RSVPService struct {
	store   IAppStore
	ids     *idgen.Generator
	now     clock.NowFunc
	siteURL string

	// respondMu durum kontrolü ile yazımı tek adım yapar; bir kayıt UNDECIDED
	// durumundan yalnızca bir kez çıkabilir.
	respondMu sync.Mutex
}

func NewRSVPService(store IAppStore, ids *idgen.Generator, now clock.NowFunc, siteURL string) *RSVPService {
	if now == nil {
		now = clock.System()
	}
	return &RSVPService{store: store, ids: ids, now: now, siteURL: siteURL}
}

func normalizeInput(in RSVPInput) RSVPInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.PlusOneName = strings.TrimSpace(in.PlusOneName)
	if !in.PlusOne {
		in.PlusOneName = ""
	}
	return in
}

// ValidateRSVPInput misafir formu kuralları.
func ValidateRSVPInput(in RSVPInput) error {
	if in.Name == "" {
		return ErrRSVPNameRequired
	}
	if !in.Status.Valid() {
		return ErrRSVPInvalidStatus
	}
	if in.Status == models.RSVPStatusUndecided && in.Email == "" {
		return ErrRSVPEmailRequired
	}
	return nil
}

func (s *RSVPService) fromInput(id string, in RSVPInput, stamp time.Time) models.RSVP {
	return models.RSVP{
		ID:           id,
		Name:         in.Name,
		Email:        in.Email,
		Status:       in.Status,
		PlusOne:      in.PlusOne,
		PlusOneName:  in.PlusOneName,
		FollowUpDate: in.FollowUpDate,
		Notes:        in.Notes,
		Dietary:      in.Dietary,
		SongRequest:  in.SongRequest,
		Timestamp:    models.ISOTime(stamp),
	}
}

// Submit yeni LCV kaydı oluşturur. Uzak yazım hatası misafire yansıtılmaz.
func (s *RSVPService) Submit(ctx context.Context, in RSVPInput) (*SubmitResult, error) {
	in = normalizeInput(in)
	if err := ValidateRSVPInput(in); err != nil {
		return nil, err
	}
	ms := s.ids.NextMillis()
	rsvp := s.fromInput(fmt.Sprint(ms), in, time.UnixMilli(ms))
	if err := s.store.Dispatch(ctx, SaveRSVP{RSVP: rsvp}); err != nil {
		configslog.Log.Warn("LCV uzak depoya yazılamadı", zap.String("id", rsvp.ID), zap.Error(err))
	}
	metrics.RSVPSubmissions.WithLabelValues("form", string(rsvp.Status)).Inc()
	configslog.SLog.Infof("Yeni LCV alındı: %s (%s)", rsvp.Name, rsvp.Status)

	res := &SubmitResult{RSVP: rsvp}
	if rsvp.Email != "" && rsvp.Status != models.RSVPStatusUndecided {
		res.ConfirmationMailto = mailto.Confirmation(rsvp, mailto.EventFromContent(s.store.GetState().Content, s.siteURL))
	}
	return res, nil
}

// Lookup adında sorguyu (büyük/küçük harf duyarsız) içeren ilk kaydı bulur.
func (s *RSVPService) Lookup(query string) (*models.RSVP, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, ErrRSVPLookupQueryMissing
	}
	for _, r := range s.store.GetState().RSVPs {
		if strings.Contains(strings.ToLower(r.Name), q) {
			found := r
			return &found, nil
		}
	}
	return nil, ErrRSVPNotFound
}

// Portal misafirin kaydını, durum notunu ve (katılıyorsa) takvim bağlantısını döndürür.
func (s *RSVPService) Portal(query string) (*PortalView, error) {
	rsvp, err := s.Lookup(query)
	if err != nil {
		return nil, err
	}
	content := s.store.GetState().Content
	view := &PortalView{
		RSVP:        *rsvp,
		StatusNote:  StatusNote(rsvp.Status),
		CanRespond:  rsvp.Status == models.RSVPStatusUndecided,
		WeddingDate: content.WeddingDate,
		WeddingTime: content.WeddingTime,
		Venues:      append([]models.Venue{}, content.Venues...),
	}
	if rsvp.Status == models.RSVPStatusAttending {
		link, err := calendar.GoogleLink(content)
		if err != nil {
			configslog.Log.Warn("Takvim bağlantısı üretilemedi", zap.Error(err))
		} else {
			view.CalendarLink = link
		}
	}
	return view, nil
}

// Respond misafirin kararsız yanıtını katılıyor/katılmıyor olarak günceller. Başka
// geçiş yoktur. Zaman damgası öncekinden kesin büyüktür; yazım hatası döndürülür.
func (s *RSVPService) Respond(ctx context.Context, id string, status models.RSVPStatus) (*models.RSVP, error) {
	if status != models.RSVPStatusAttending && status != models.RSVPStatusNotAttending {
		return nil, ErrRSVPInvalidTransition
	}
	s.respondMu.Lock()
	defer s.respondMu.Unlock()

	var current *models.RSVP
	for _, r := range s.store.GetState().RSVPs {
		if r.ID == id {
			found := r
			current = &found
			break
		}
	}
	if current == nil {
		return nil, ErrRSVPNotFound
	}
	if current.Status != models.RSVPStatusUndecided {
		return nil, ErrRSVPTransitionDenied
	}

	updated := *current
	updated.Status = status
	updated.Timestamp = models.ISOTime(idgen.After(s.now(), models.ParseISOTime(current.Timestamp)))
	if err := s.store.Dispatch(ctx, SaveRSVP{RSVP: updated}); err != nil {
		return &updated, fmt.Errorf("%w: %v", ErrRSVPUpdateFailed, err)
	}
	metrics.RSVPSubmissions.WithLabelValues("portal", string(status)).Inc()
	configslog.SLog.Infof("Misafir yanıtını güncelledi: %s -> %s", updated.Name, status)
	return &updated, nil
}

// AdminSave panelden kayıt ekler (id boşsa) ya da günceller. Durum kısıtı yoktur.
func (s *RSVPService) AdminSave(ctx context.Context, id string, in RSVPInput) (*models.RSVP, error) {
	in = normalizeInput(in)
	if in.Name == "" {
		return nil, ErrRSVPNameRequired
	}
	if !in.Status.Valid() {
		return nil, ErrRSVPInvalidStatus
	}

	var rsvp models.RSVP
	if id == "" {
		ms := s.ids.NextMillis()
		rsvp = s.fromInput(fmt.Sprint(ms), in, time.UnixMilli(ms))
	} else {
		var existing *models.RSVP
		for _, r := range s.store.GetState().RSVPs {
			if r.ID == id {
				found := r
				existing = &found
				break
			}
		}
		if existing == nil {
			return nil, ErrRSVPNotFound
		}
		rsvp = s.fromInput(id, in, s.now())
		rsvp.ReminderSent = existing.ReminderSent
		if existing.Status == in.Status {
			rsvp.Timestamp = existing.Timestamp
		}
	}
	if err := s.store.Dispatch(ctx, SaveRSVP{RSVP: rsvp}); err != nil {
		configslog.Log.Warn("LCV uzak depoya yazılamadı", zap.String("id", rsvp.ID), zap.Error(err))
	}
	return &rsvp, nil
}

var _ IRSVPService = (*RSVPService)(nil)
