package localcache

import (
	"encoding/binary"
	"time"

	"github.com/gofiber/fiber/v2"
)

const sessionPrefix = "session:"

// SessionStorage fiber.Storage arayüzünü Cache üzerinde uygular; panel oturumları
// süreç yeniden başlasa da korunur. Değerin ilk 8 baytı bitiş zamanıdır (unix nano, 0 = süresiz).
type SessionStorage struct {
	cache *Cache
	now   func() time.Time
}

func NewSessionStorage(cache *Cache) *SessionStorage {
	return &SessionStorage{cache: cache, now: time.Now}
}

func (s *SessionStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	raw, ok, err := s.cache.Get(sessionPrefix + key)
	if err != nil || !ok || len(raw) < 8 {
		return nil, err
	}
	exp := int64(binary.BigEndian.Uint64(raw[:8]))
	if exp != 0 && s.now().UnixNano() >= exp {
		_ = s.cache.Delete(sessionPrefix + key)
		return nil, nil
	}
	return raw[8:], nil
}

func (s *SessionStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	var expiresAt int64
	if exp > 0 {
		expiresAt = s.now().Add(exp).UnixNano()
	}
	buf := make([]byte, 8+len(val))
	binary.BigEndian.PutUint64(buf[:8], uint64(expiresAt))
	copy(buf[8:], val)
	return s.cache.Set(sessionPrefix+key, buf)
}

func (s *SessionStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	return s.cache.Delete(sessionPrefix + key)
}

// Reset tüm oturumları siler.
func (s *SessionStorage) Reset() error {
	return s.cache.DeletePrefix(sessionPrefix)
}

// Close cache'i kapatmaz; sahibi kapatır.
func (s *SessionStorage) Close() error {
	return nil
}

var _ fiber.Storage = (*SessionStorage)(nil)
