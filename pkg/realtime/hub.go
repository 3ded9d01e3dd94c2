// Package realtime koleksiyon anlık görüntülerini abonelere iten süreç içi yayın merkezidir.
//
// Her abonenin kendi goroutine'i ve tek elemanlı bir kuyruğu vardır. Yavaş bir abone
// ara görüntüleri kaçırabilir ama her zaman en son görüntüyü alır.
package realtime

import (
	"sync"
)

// Snapshot bir konunun tam anlık görüntüsü. Revision yayıncının yazım sayacıdır;
// aynı konuda sonraki görüntülerin Revision'ı daha küçük olamaz.
type Snapshot struct {
	Revision uint64
	Data     []byte
}

// Listener bir konunun tam anlık görüntüsünü alır.
type Listener func(snapshot Snapshot)

type subscriber struct {
	queue chan Snapshot
	done  chan struct{}
	once  sync.Once
}

func (s *subscriber) stop() {
	s.once.Do(func() { close(s.done) })
}

// offer kuyruktaki eski görüntüyü atıp yenisini koyar. Hub kilidi altında çağrılır.
func (s *subscriber) offer(snapshot Snapshot) {
	select {
	case s.queue <- snapshot:
		return
	default:
	}
	select {
	case <-s.queue:
	default:
	}
	select {
	case s.queue <- snapshot:
	default:
	}
}

func (s *subscriber) run(fn Listener) {
	for {
		select {
		case <-s.done:
			return
		case snap := <-s.queue:
			select {
			case <-s.done:
				return
			default:
			}
			fn(snap)
		}
	}
}

// Hub konu bazlı abonelikleri yönetir.
type Hub struct {
	mu     sync.Mutex
	topics map[string]map[uint64]*subscriber
	nextID uint64
	closed bool
}

func NewHub() *Hub {
	return &Hub{topics: make(map[string]map[uint64]*subscriber)}
}

// Subscribe fn'i konuya bağlar ve initial görüntüyü ilk teslimat olarak sıraya koyar.
// Dönen fonksiyon aboneliği sonlandırır; devam eden bir teslimatı iptal etmez.
// initial.Data nil ise ilk teslimat yapılmaz.
func (h *Hub) Subscribe(topic string, initial Snapshot, fn Listener) (unsubscribe func()) {
	sub := &subscriber{queue: make(chan Snapshot, 1), done: make(chan struct{})}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return func() {}
	}
	h.nextID++
	id := h.nextID
	if h.topics[topic] == nil {
		h.topics[topic] = make(map[uint64]*subscriber)
	}
	h.topics[topic][id] = sub
	if initial.Data != nil {
		sub.offer(initial)
	}
	h.mu.Unlock()

	go sub.run(fn)

	return func() {
		h.mu.Lock()
		if subs, ok := h.topics[topic]; ok {
			delete(subs, id)
			if len(subs) == 0 {
				delete(h.topics, topic)
			}
		}
		h.mu.Unlock()
		sub.stop()
	}
}

// Publish görüntüyü konunun tüm abonelerine iletir. Bloklamaz.
func (h *Hub) Publish(topic string, snapshot Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, sub := range h.topics[topic] {
		sub.offer(snapshot)
	}
}

// Subscribers konudaki aktif abone sayısı.
func (h *Hub) Subscribers(topic string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.topics[topic])
}

// Close tüm abonelikleri sonlandırır; sonraki Subscribe çağrıları etkisizdir.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for topic, subs := range h.topics {
		for _, sub := range subs {
			sub.stop()
		}
		delete(h.topics, topic)
	}
}
