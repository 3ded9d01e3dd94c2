package realtime

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu   sync.Mutex
	got  []string
	gate chan struct{}
}

func (r *recorder) listen(s Snapshot) {
	if r.gate != nil {
		<-r.gate
	}
	r.mu.Lock()
	r.got = append(r.got, string(s.Data))
	r.mu.Unlock()
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.got...)
}

func snap(s string) Snapshot { return Snapshot{Data: []byte(s)} }

func TestSubscribeReceivesInitialThenUpdates(t *testing.T) {
	h := NewHub()
	defer h.Close()

	rec := &recorder{}
	unsub := h.Subscribe("rsvps", snap("v0"), rec.listen)
	defer unsub()

	require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	h.Publish("rsvps", snap("v1"))
	require.Eventually(t, func() bool { return len(rec.snapshot()) == 2 }, time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{"v0", "v1"}, rec.snapshot())
}

func TestPublishOnlyReachesTopic(t *testing.T) {
	h := NewHub()
	defer h.Close()

	notes := &recorder{}
	h.Subscribe("notes", Snapshot{}, notes.listen)
	h.Publish("rsvps", snap("x"))
	h.Publish("notes", snap("n1"))

	require.Eventually(t, func() bool { return len(notes.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"n1"}, notes.snapshot())
}

func TestUnsubscribeStopsDeliveries(t *testing.T) {
	h := NewHub()
	defer h.Close()

	rec := &recorder{}
	unsub := h.Subscribe("content", snap("a"), rec.listen)
	require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, 5*time.Millisecond)

	unsub()
	unsub()
	assert.Equal(t, 0, h.Subscribers("content"))

	h.Publish("content", snap("b"))
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, []string{"a"}, rec.snapshot())
}

func TestSlowSubscriberSkipsToLatest(t *testing.T) {
	h := NewHub()
	defer h.Close()

	rec := &recorder{gate: make(chan struct{})}
	h.Subscribe("guestbook", snap("s0"), rec.listen)

	// s0 teslimatta takılı; ardından gelenlerden sadece sonuncusu kalmalı.
	time.Sleep(20 * time.Millisecond)
	for _, s := range []string{"s1", "s2", "s3"} {
		h.Publish("guestbook", snap(s))
	}
	close(rec.gate)

	require.Eventually(t, func() bool { return len(rec.snapshot()) == 2 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, []string{"s0", "s3"}, rec.snapshot())
}

func TestClosedHubIgnoresSubscribe(t *testing.T) {
	h := NewHub()
	h.Close()

	rec := &recorder{}
	unsub := h.Subscribe("content", snap("a"), rec.listen)
	unsub()
	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
}
