// Package localcache pebble üzerinde dayanıklı, süreç yeniden başlatmalarında korunan
// küçük bir anahtar-değer deposudur. Uygulama durumunun yedek aynası ve oturum deposu
// olarak kullanılır.
package localcache

import (
	"encoding/json"
	"errors"
	"fmt"

	"dugun.site/configs/configslog"

	"github.com/cockroachdb/pebble"
	"go.uber.org/zap"
)

// Cache pebble veritabanını sarar.
type Cache struct {
	db *pebble.DB
}

// Open dizindeki pebble veritabanını açar (yoksa oluşturur).
func Open(dir string) (*Cache, error) {
	configslog.Log.Info("opening_local_cache", zap.String("path", dir))
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		configslog.Log.Error("local_cache_open_failed", zap.String("path", dir), zap.Error(err))
		return nil, err
	}
	return &Cache{db: db}, nil
}

// Get anahtarın değerini döndürür; yoksa ok=false.
func (c *Cache) Get(key string) (value []byte, ok bool, err error) {
	v, closer, err := c.db.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer closer.Close()
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// Set değeri diske senkron yazar.
func (c *Cache) Set(key string, value []byte) error {
	return c.db.Set([]byte(key), value, pebble.Sync)
}

// Delete anahtarı siler.
func (c *Cache) Delete(key string) error {
	return c.db.Delete([]byte(key), pebble.Sync)
}

// DeletePrefix önekle başlayan tüm anahtarları siler.
func (c *Cache) DeletePrefix(prefix string) error {
	if prefix == "" {
		return errors.New("boş önek silinemez")
	}
	return c.db.DeleteRange([]byte(prefix), prefixEnd([]byte(prefix)), pebble.Sync)
}

// GetJSON anahtardaki JSON değeri v'ye çözer.
func (c *Cache) GetJSON(key string, v any) (bool, error) {
	raw, ok, err := c.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("%s çözümlenemedi: %w", key, err)
	}
	return true, nil
}

// SetJSON v'yi JSON olarak yazar.
func (c *Cache) SetJSON(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Set(key, raw)
}

// Close veritabanını kapatır.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}
