// Package blobstore galeri görsellerini dosya sisteminde saklar ve kalıcı indirme
// URL'leri üretir. URL biçimi barındırılan nesne depolarının biçimini izler:
//
//	{baseURL}/v0/b/{bucket}/o/{yüzde-kodlu yol}?alt=media
package blobstore

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"dugun.site/configs/configslog"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// GalleryPrefix tüm galeri nesnelerinin önekidir.
const GalleryPrefix = "gallery/"

var (
	// ErrInvalidURL URL beklenen yol kodlamasına uymuyor.
	ErrInvalidURL = errors.New("blobstore: url does not match storage path scheme")
	// ErrInvalidPath nesne yolu depo kökünün dışına çıkıyor veya boş.
	ErrInvalidPath = errors.New("blobstore: invalid object path")
	ErrNotFound    = errors.New("blobstore: object not found")
)

var objectPathPattern = regexp.MustCompile(`/o/(.+?)\?`)

// Store dosya sistemi tabanlı nesne deposu.
type Store struct {
	root    string
	bucket  string
	baseURL string
	now     func() time.Time
}

// New kök dizini oluşturup depoyu döndürür.
func New(root, bucket, baseURL string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(root, GalleryPrefix), 0o755); err != nil {
		return nil, fmt.Errorf("medya dizini oluşturulamadı: %w", err)
	}
	return &Store{
		root:    root,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}, nil
}

// Bucket URL'lerde kullanılan kova adı.
func (s *Store) Bucket() string { return s.bucket }

// ObjectPath yükleme anındaki zamandan ve orijinal dosya adından nesne yolunu üretir.
func ObjectPath(uploadedAt time.Time, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	if name == "." || name == "/" || name == "" {
		name = "image"
	}
	return fmt.Sprintf("%s%d_%s", GalleryPrefix, uploadedAt.UnixMilli(), name)
}

// URL nesne yolunun indirme URL'sidir.
func (s *Store) URL(objectPath string) string {
	return fmt.Sprintf("%s/v0/b/%s/o/%s?alt=media", s.baseURL, s.bucket, url.PathEscape(objectPath))
}

// Upload r'nin içeriğini gallery/ altına yazar ve indirme URL'sini döndürür.
func (s *Store) Upload(filename string, r io.Reader) (string, int64, error) {
	objectPath := ObjectPath(s.now(), filename)
	full, err := s.resolve(objectPath)
	if err != nil {
		return "", 0, err
	}

	f, err := os.Create(full)
	if err != nil {
		return "", 0, err
	}
	n, copyErr := io.Copy(f, r)
	closeErr := f.Close()
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(full)
		return "", 0, errors.Join(copyErr, closeErr)
	}

	configslog.Log.Info("Görsel yüklendi",
		zap.String("path", objectPath),
		zap.String("size", humanize.Bytes(uint64(n))))
	return s.URL(objectPath), n, nil
}

// PathFromURL indirme URL'sinden nesne yolunu çıkarır.
func PathFromURL(rawURL string) (string, error) {
	decoded, err := url.PathUnescape(rawURL)
	if err != nil {
		decoded = rawURL
	}
	m := objectPathPattern.FindStringSubmatch(decoded)
	if m == nil {
		return "", ErrInvalidURL
	}
	return m[1], nil
}

// Delete URL'nin işaret ettiği nesneyi siler.
func (s *Store) Delete(rawURL string) error {
	objectPath, err := PathFromURL(rawURL)
	if err != nil {
		return err
	}
	full, err := s.resolve(objectPath)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}
	configslog.Log.Info("Görsel silindi", zap.String("path", objectPath))
	return nil
}

// List gallery/ altındaki tüm nesnelerin URL'lerini ad sırasıyla döndürür.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, GalleryPrefix))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	urls := make([]string, 0, len(names))
	for _, n := range names {
		urls = append(urls, s.URL(GalleryPrefix+n))
	}
	return urls, nil
}

// Open nesneyi okumak için açar.
func (s *Store) Open(objectPath string) (*os.File, error) {
	full, err := s.resolve(objectPath)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return f, err
}

func (s *Store) resolve(objectPath string) (string, error) {
	clean := path.Clean("/" + objectPath)[1:]
	if clean == "" || !strings.HasPrefix(clean, GalleryPrefix) || clean != objectPath {
		return "", ErrInvalidPath
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}
