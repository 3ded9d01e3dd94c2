package services

import (
	"context"
	"errors"
	"sync"

	"dugun.site/configs/configslog"
	"dugun.site/models"
	"dugun.site/pkg/metrics"

	"go.uber.org/zap"
)

// Yerel önbellek anahtarları. Misafir defteri önbelleğe alınmaz.
const (
	CacheKeyContent = "wedding_content"
	CacheKeyRSVPs   = "wedding_rsvps"
	CacheKeyNotes   = "wedding_notes"
)

// StateCache uygulama durumunun yerel aynası (pebble tabanlı localcache.Cache).
type StateCache interface {
	GetJSON(key string, v any) (bool, error)
	SetJSON(key string, v any) error
}

// State oturum boyunca tek doğruluk kaynağı olan uygulama durumu.
type State struct {
	Content   models.SiteContent      `json:"content"`
	RSVPs     []models.RSVP           `json:"rsvps"`
	Notes     []models.MeetingNote    `json:"notes"`
	Guestbook []models.GuestbookEntry `json:"guestbook"`
}

func (s State) clone() State {
	return State{
		Content:   s.Content.Clone(),
		RSVPs:     append([]models.RSVP{}, s.RSVPs...),
		Notes:     append([]models.MeetingNote{}, s.Notes...),
		Guestbook: append([]models.GuestbookEntry{}, s.Guestbook...),
	}
}

// Listener durum her değiştiğinde kopyasıyla çağrılır.
type Listener func(State)

// IAppStore durum kabı: GetState, Dispatch, Subscribe.
type IAppStore interface {
	GetState() State
	Dispatch(ctx context.Context, action Action) error
	Subscribe(listener Listener) func()
}

// stateUpdate a.mu tutulurken durumu değiştirir; dönen fonksiyon kilit bırakıldıktan sonra çalışır.
type stateUpdate func() (after func())

// feedGate bir koleksiyonun akış görüntülerini süzer. Bu süreçten bir yazım
// sürerken gelen görüntü bekletilir; floor'dan eski görüntüler uygulanmaz.
type feedGate struct {
	pending  int
	floor    uint64
	deferred stateUpdate
	deferRev uint64
}

// AppStore IAppStore arayüzünü uygular. Eylemler önce yerel durumu günceller,
// önbelleği ve dinleyicileri tazeler, en son uzak depoya yazar.
type AppStore struct {
	remote IRemoteStore
	cache  StateCache

	mu    sync.RWMutex
	state State
	gates map[models.Collection]*feedGate

	listenersMu sync.Mutex
	listeners   map[int]Listener
	nextID      int

	unsubs []func()
}

// NewAppStore başlangıç içeriğiyle boş bir durum kabı oluşturur. cache nil olabilir.
func NewAppStore(remote IRemoteStore, cache StateCache) *AppStore {
	return &AppStore{
		remote: remote,
		cache:  cache,
		state: State{
			Content:   models.InitialContent(),
			RSVPs:     []models.RSVP{},
			Notes:     []models.MeetingNote{},
			Guestbook: []models.GuestbookEntry{},
		},
		listeners: make(map[int]Listener),
		gates: map[models.Collection]*feedGate{
			models.CollectionContent:   {},
			models.CollectionRSVPs:     {},
			models.CollectionNotes:     {},
			models.CollectionGuestbook: {},
		},
	}
}

// Start önce yerel önbellekten tohumlar, sonra dört uzak akışa abone olur.
func (a *AppStore) Start(ctx context.Context) error {
	a.seedFromCache(ctx)

	subs := []func() (func(), error){
		func() (func(), error) { return a.remote.SubscribeContent(ctx, a.onContent) },
		func() (func(), error) { return a.remote.SubscribeRSVPs(ctx, a.onRSVPs) },
		func() (func(), error) { return a.remote.SubscribeNotes(ctx, a.onNotes) },
		func() (func(), error) { return a.remote.SubscribeGuestbook(ctx, a.onGuestbook) },
	}
	for _, sub := range subs {
		unsub, err := sub()
		if err != nil {
			a.Stop()
			return err
		}
		a.unsubs = append(a.unsubs, unsub)
	}
	configslog.SLog.Info("Uygulama durumu uzak akışlara abone oldu")
	return nil
}

// Stop abonelikleri kapatır; süren yazımları iptal etmez.
func (a *AppStore) Stop() {
	for _, unsub := range a.unsubs {
		unsub()
	}
	a.unsubs = nil
}

func (a *AppStore) seedFromCache(ctx context.Context) {
	if a.cache == nil {
		return
	}
	var (
		content models.SiteContent
		rsvps   []models.RSVP
		notes   []models.MeetingNote
	)
	hasContent := a.readCache(CacheKeyContent, &content)
	hasRSVPs := a.readCache(CacheKeyRSVPs, &rsvps)
	hasNotes := a.readCache(CacheKeyNotes, &notes)

	a.mu.Lock()
	if hasContent {
		a.state.Content = content
	}
	if hasRSVPs && rsvps != nil {
		a.state.RSVPs = rsvps
	}
	if hasNotes && notes != nil {
		a.state.Notes = notes
	}
	a.mu.Unlock()

	if hasContent {
		a.migrateIfLegacy(ctx, content)
	}
}

func (a *AppStore) readCache(key string, v any) bool {
	ok, err := a.cache.GetJSON(key, v)
	if err != nil {
		configslog.Log.Warn("Yerel önbellek okunamadı", zap.String("key", key), zap.Error(err))
		return false
	}
	return ok
}

func (a *AppStore) writeCache(key string, v any) {
	if a.cache == nil {
		return
	}
	if err := a.cache.SetJSON(key, v); err != nil {
		configslog.Log.Warn("Yerel önbellek yazılamadı", zap.String("key", key), zap.Error(err))
	}
}

// migrateIfLegacy eski marka adı varsa düzeltilmiş belgeyi duruma ve depoya yazar.
func (a *AppStore) migrateIfLegacy(ctx context.Context, content models.SiteContent) {
	migrated, changed := MigrateLegacyBranding(content)
	if !changed {
		return
	}
	configslog.SLog.Infof("Eski marka adı bulundu (%q), içerik düzeltiliyor", content.CoupleNames)
	if err := a.Dispatch(ctx, UpdateContent{Content: migrated}); err != nil {
		configslog.Log.Error("Marka düzeltmesi yazılamadı", zap.Error(err))
	}
}

// receive akıştan gelen görüntüyü revizyonuna göre uygular, bekletir ya da atar.
func (a *AppStore) receive(collection models.Collection, rev uint64, update stateUpdate) {
	a.mu.Lock()
	g := a.gates[collection]
	if rev < g.floor {
		a.mu.Unlock()
		metrics.StaleSnapshots.WithLabelValues(string(collection)).Inc()
		return
	}
	if g.pending > 0 {
		if g.deferred == nil || rev >= g.deferRev {
			g.deferred, g.deferRev = update, rev
		}
		a.mu.Unlock()
		return
	}
	g.floor = rev
	after := update()
	a.mu.Unlock()
	after()
}

// settle bir yazım bittiğinde a.mu tutulurken çağrılır. Bekletilen görüntü hâlâ
// güncelse uygulanır; dönen fonksiyon kilit dışında çalıştırılmalıdır.
func (a *AppStore) settle(collection models.Collection, rev uint64, ok bool) func() {
	g := a.gates[collection]
	g.pending--
	if ok && rev > g.floor {
		g.floor = rev
	}
	if g.pending > 0 || g.deferred == nil {
		return nil
	}
	update, deferRev := g.deferred, g.deferRev
	g.deferred, g.deferRev = nil, 0
	if deferRev < g.floor {
		metrics.StaleSnapshots.WithLabelValues(string(collection)).Inc()
		return nil
	}
	g.floor = deferRev
	return update()
}

func (a *AppStore) onContent(content models.SiteContent, rev uint64) {
	a.receive(models.CollectionContent, rev, func() func() {
		a.state.Content = content
		return func() {
			a.writeCache(CacheKeyContent, content)
			a.notify()
			a.migrateIfLegacy(context.Background(), content)
		}
	})
}

func (a *AppStore) onRSVPs(rsvps []models.RSVP, rev uint64) {
	a.receive(models.CollectionRSVPs, rev, func() func() {
		a.state.RSVPs = rsvps
		return func() {
			a.writeCache(CacheKeyRSVPs, rsvps)
			a.notify()
		}
	})
}

func (a *AppStore) onNotes(notes []models.MeetingNote, rev uint64) {
	a.receive(models.CollectionNotes, rev, func() func() {
		a.state.Notes = notes
		return func() {
			a.writeCache(CacheKeyNotes, notes)
			a.notify()
		}
	})
}

func (a *AppStore) onGuestbook(entries []models.GuestbookEntry, rev uint64) {
	a.receive(models.CollectionGuestbook, rev, func() func() {
		a.state.Guestbook = entries
		return a.notify
	})
}

// GetState durumun bağımsız bir kopyasını döndürür.
func (a *AppStore) GetState() State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state.clone()
}

// Dispatch eylemi yerel duruma uygular, önbelleği ve dinleyicileri tazeler, sonra
// uzak depoya yazar. Uzak hata loglanır, sayılır ve döndürülür; yerel güncelleme geri alınmaz.
// Yazım sürerken akıştan gelen görüntüler bekletilir, yazımdan eski olanlar atılır.
func (a *AppStore) Dispatch(ctx context.Context, action Action) error {
	a.mu.Lock()
	ops, touched := action.reduce(&a.state)
	snapshot := a.state.clone()
	_, gated := a.gates[touched]
	gated = gated && len(ops) > 0
	if gated {
		a.gates[touched].pending++
	}
	a.mu.Unlock()

	switch touched {
	case models.CollectionContent:
		a.writeCache(CacheKeyContent, snapshot.Content)
	case models.CollectionRSVPs:
		a.writeCache(CacheKeyRSVPs, snapshot.RSVPs)
	case models.CollectionNotes:
		a.writeCache(CacheKeyNotes, snapshot.Notes)
	}
	a.notifyWith(snapshot)

	var errs []error
	for _, op := range ops {
		if err := op(ctx, a.remote); err != nil {
			errs = append(errs, err)
		}
	}
	err := errors.Join(errs...)
	if gated {
		rev := a.remote.Revision(touched)
		a.mu.Lock()
		after := a.settle(touched, rev, err == nil)
		a.mu.Unlock()
		if after != nil {
			after()
		}
	}
	if err != nil {
		metrics.DispatchFailures.WithLabelValues(action.Name()).Inc()
		configslog.Log.Error("Eylem uzak depoya yazılamadı", zap.String("action", action.Name()), zap.Error(err))
		return err
	}
	return nil
}

// Subscribe dinleyiciyi kaydeder; dönen fonksiyon kaydı siler.
func (a *AppStore) Subscribe(listener Listener) func() {
	a.listenersMu.Lock()
	defer a.listenersMu.Unlock()
	id := a.nextID
	a.nextID++
	a.listeners[id] = listener
	return func() {
		a.listenersMu.Lock()
		delete(a.listeners, id)
		a.listenersMu.Unlock()
	}
}

func (a *AppStore) notify() {
	a.notifyWith(a.GetState())
}

func (a *AppStore) notifyWith(s State) {
	a.listenersMu.Lock()
	ls := make([]Listener, 0, len(a.listeners))
	for _, l := range a.listeners {
		ls = append(ls, l)
	}
	a.listenersMu.Unlock()
	for _, l := range ls {
		l(s)
	}
}

var _ IAppStore = (*AppStore)(nil)
