package services

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"dugun.site/configs/configslog"
	"dugun.site/models"
	"dugun.site/pkg/clock"
	"dugun.site/pkg/idgen"

	"go.uber.org/zap"
)

type NoteServiceError string

func (e NoteServiceError) Error() string { return string(e) }

const ErrNoteEmpty NoteServiceError = "not boş olamaz"

// noteDateLayout notların gösterim tarihi (ay/gün/yıl).
const noteDateLayout = "1/2/2006"

// INoteService çiftin toplantı notları.
type INoteService interface {
	List() []models.MeetingNote
	Add(ctx context.Context, content string) (*models.MeetingNote, error)
	Delete(ctx context.Context, id string) error
}

type NoteService struct {
	store IAppStore
	ids   *idgen.Generator
	now   clock.NowFunc
}

func NewNoteService(store IAppStore, ids *idgen.Generator, now clock.NowFunc) *NoteService {
	if now == nil {
		now = clock.System()
	}
	return &NoteService{store: store, ids: ids, now: now}
}

// List en yeni not önce; kimlikler milisaniye zaman damgasıdır.
func (s *NoteService) List() []models.MeetingNote {
	notes := s.store.GetState().Notes
	sort.SliceStable(notes, func(i, j int) bool {
		a, errA := strconv.ParseInt(notes[i].ID, 10, 64)
		b, errB := strconv.ParseInt(notes[j].ID, 10, 64)
		if errA != nil || errB != nil {
			return notes[i].ID > notes[j].ID
		}
		return a > b
	})
	return notes
}

func (s *NoteService) Add(ctx context.Context, content string) (*models.MeetingNote, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrNoteEmpty
	}
	note := models.MeetingNote{ID: s.ids.Next(), Content: content, Date: s.now().Format(noteDateLayout)}
	if err := s.store.Dispatch(ctx, AddNote{Note: note}); err != nil {
		configslog.Log.Warn("Not yazılamadı", zap.String("id", note.ID), zap.Error(err))
	}
	return &note, nil
}

func (s *NoteService) Delete(ctx context.Context, id string) error {
	if err := s.store.Dispatch(ctx, DeleteNote{ID: id}); err != nil {
		configslog.Log.Warn("Not silinemedi", zap.String("id", id), zap.Error(err))
	}
	return nil
}

var _ INoteService = (*NoteService)(nil)
