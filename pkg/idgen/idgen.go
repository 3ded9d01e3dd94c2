// Package idgen zaman damgası tabanlı, süreç içinde kesin artan kimlikler üretir.
package idgen

import (
	"strconv"
	"sync"
	"time"

	"dugun.site/pkg/clock"
)

// Generator milisaniye cinsinden unix zamanını kimlik olarak verir. Aynı milisaniyede
// ikinci bir istek gelirse bir sonraki milisaniyeyi kullanır.
type Generator struct {
	mu   sync.Mutex
	last int64
	now  clock.NowFunc
}

func New(now clock.NowFunc) *Generator {
	if now == nil {
		now = clock.System()
	}
	return &Generator{now: now}
}

// NextMillis bir sonraki benzersiz milisaniyeyi döndürür.
func (g *Generator) NextMillis() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return ms
}

// Next yeni bir kimlik.
func (g *Generator) Next() string {
	return strconv.FormatInt(g.NextMillis(), 10)
}

// After prev'den kesin büyük bir zaman döndürür: şimdiki zaman ya da prev + 1ms.
func After(now, prev time.Time) time.Time {
	now = now.UTC().Truncate(time.Millisecond)
	if !prev.IsZero() && !now.After(prev) {
		return prev.UTC().Truncate(time.Millisecond).Add(time.Millisecond)
	}
	return now
}
