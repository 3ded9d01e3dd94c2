package services

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"dugun.site/models"
	"dugun.site/pkg/realtime"
	"dugun.site/repositories"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// memStore eylemleri eşzamanlı uygulayan bellek içi IAppStore.
type memStore struct {
	mu         sync.Mutex
	state      State
	dispatched []Action
	failWith   error
}

func newMemStore() *memStore {
	return &memStore{state: State{
		Content:   models.InitialContent(),
		RSVPs:     []models.RSVP{},
		Notes:     []models.MeetingNote{},
		Guestbook: []models.GuestbookEntry{},
	}}
}

func (m *memStore) GetState() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

func (m *memStore) Dispatch(_ context.Context, action Action) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	action.reduce(&m.state)
	m.dispatched = append(m.dispatched, action)
	return m.failWith
}

func (m *memStore) Subscribe(Listener) func() { return func() {} }

func (m *memStore) actions() []Action {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Action{}, m.dispatched...)
}

var errRemoteDown = errors.New("remote unavailable")

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "services.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.RSVP{}, &models.MeetingNote{}, &models.GuestbookEntry{}, &models.Document{}, &models.Operator{}))
	return db
}

func newTestRemoteStore(t *testing.T, db *gorm.DB) (*RemoteStore, *realtime.Hub) {
	t.Helper()
	rsvps, err := repositories.NewRSVPRepository(db)
	require.NoError(t, err)
	notes, err := repositories.NewMeetingNoteRepository(db)
	require.NoError(t, err)
	guestbook, err := repositories.NewGuestbookRepository(db)
	require.NoError(t, err)
	hub := realtime.NewHub()
	t.Cleanup(hub.Close)
	return NewRemoteStore(rsvps, notes, guestbook, repositories.NewDocumentRepository(db), hub), hub
}
