// Package clock servislere enjekte edilen zaman kaynağını tanımlar.
package clock

import (
	"sync"
	"time"
)

// NowFunc şimdiki zamanı döndüren fonksiyon.
type NowFunc func() time.Time

// System gerçek saat.
func System() NowFunc { return time.Now }

// Fake testlerde elle ilerletilen saat.
type Fake struct {
	mu      sync.Mutex
	current time.Time
}

// NewFake verilen zamanda durur; sıfır zaman verilirse 2026-01-01 UTC kullanılır.
func NewFake(start time.Time) *Fake {
	if start.IsZero() {
		start = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	}
	return &Fake{current: start}
}

func (c *Fake) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Advance saati ilerletir ve yeni zamanı döndürür.
func (c *Fake) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
	return c.current
}

func (c *Fake) Set(t time.Time) {
	c.mu.Lock()
	c.current = t
	c.mu.Unlock()
}
