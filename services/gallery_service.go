package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"dugun.site/configs/configslog"
	"dugun.site/models"
	"dugun.site/pkg/metrics"

	"go.uber.org/zap"
)

// GalleryServiceError galeri hataları. Yükleme ve silme hataları kullanıcıya gösterilir.
type GalleryServiceError string

func (e GalleryServiceError) Error() string { return string(e) }

const (
	ErrNotAnImage        GalleryServiceError = "dosya bir görsel değil"
	ErrUploadFailed      GalleryServiceError = "görsel yüklenemedi"
	ErrImageDeleteFailed GalleryServiceError = "görsel silinemedi"
	ErrGalleryIndexStale GalleryServiceError = "galeri indeksi görselle eşleşmiyor"
)

// BlobStore galeri görsellerinin saklandığı nesne deposu (pkg/blobstore.Store).
type BlobStore interface {
	Upload(filename string, r io.Reader) (url string, size int64, err error)
	Delete(url string) error
	List() ([]string, error)
}

// UploadFile tek bir yükleme girdisi.
type UploadFile struct {
	Name        string
	ContentType string
	Open        func() (io.ReadCloser, error)
}

// UploadResult dosya başına sonuç.
type UploadResult struct {
	Name  string `json:"name"`
	URL   string `json:"url,omitempty"`
	Error string `json:"error,omitempty"`
}

// UploadProgress her dosya bittiğinde yüzde ile çağrılır.
type UploadProgress func(done, total int, percent float64)

// IGalleryService galeri görselleri.
type IGalleryService interface {
	Upload(ctx context.Context, files []UploadFile, progress UploadProgress) ([]UploadResult, error)
	Delete(ctx context.Context, url string, index int) (models.SiteContent, error)
	Replace(ctx context.Context, index int, url string) (models.SiteContent, error)
	ListStored() ([]string, error)
}

// GalleryService IGalleryService arayüzünü uygular.
type GalleryService struct {
	blobs BlobStore
	store IAppStore
}

func NewGalleryService(blobs BlobStore, store IAppStore) *GalleryService {
	return &GalleryService{blobs: blobs, store: store}
}

// IsImage MIME türünün "image/" ile başlayıp başlamadığını kontrol eder.
func IsImage(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/")
}

// Upload görsel olmayanları atlar, kalanları sırayla yükler ve başarılı URL'leri
// tek bir içerik yazımıyla galerinin sonuna ekler.
func (s *GalleryService) Upload(ctx context.Context, files []UploadFile, progress UploadProgress) ([]UploadResult, error) {
	results := make([]UploadResult, 0, len(files))
	var urls []string
	for i, f := range files {
		res := UploadResult{Name: f.Name}
		if !IsImage(f.ContentType) {
			res.Error = fmt.Sprintf("%s is not an image file", f.Name)
			results = append(results, res)
			continue
		}
		url, err := s.uploadOne(f)
		if err != nil {
			configslog.Log.Error("Görsel yüklenemedi", zap.String("name", f.Name), zap.Error(err))
			return results, fmt.Errorf("%w: %s: %v", ErrUploadFailed, f.Name, err)
		}
		res.URL = url
		urls = append(urls, url)
		results = append(results, res)
		if progress != nil {
			progress(i+1, len(files), float64(i+1)/float64(len(files))*100)
		}
	}

	if len(urls) > 0 {
		content := s.store.GetState().Content
		content.GalleryImages = append(content.GalleryImages, urls...)
		if err := s.store.Dispatch(ctx, UpdateContent{Content: content}); err != nil {
			configslog.Log.Warn("Galeri içeriğe yazılamadı", zap.Error(err))
		}
	}
	return results, nil
}

func (s *GalleryService) uploadOne(f UploadFile) (string, error) {
	r, err := f.Open()
	if err != nil {
		return "", err
	}
	defer r.Close()
	url, size, err := s.blobs.Upload(f.Name, r)
	if err != nil {
		return "", err
	}
	metrics.UploadedBytes.Add(float64(size))
	return url, nil
}

// Delete önce nesneyi depodan siler, başarılı olursa galeriden çıkarır.
func (s *GalleryService) Delete(ctx context.Context, url string, index int) (models.SiteContent, error) {
	content := s.store.GetState().Content
	if index < 0 || index >= len(content.GalleryImages) {
		return content, ErrIndexOutOfRange
	}
	if content.GalleryImages[index] != url {
		return content, ErrGalleryIndexStale
	}
	if err := s.blobs.Delete(url); err != nil {
		configslog.Log.Error("Görsel depodan silinemedi", zap.String("url", url), zap.Error(err))
		return content, fmt.Errorf("%w: %v", ErrImageDeleteFailed, err)
	}
	kept := make([]string, 0, len(content.GalleryImages)-1)
	for i, u := range content.GalleryImages {
		if i != index {
			kept = append(kept, u)
		}
	}
	content.GalleryImages = kept
	if err := s.store.Dispatch(ctx, UpdateContent{Content: content}); err != nil {
		configslog.Log.Warn("Galeri içeriğe yazılamadı", zap.Error(err))
	}
	return content, nil
}

// Replace indeksteki URL'yi değiştirir.
func (s *GalleryService) Replace(ctx context.Context, index int, url string) (models.SiteContent, error) {
	content := s.store.GetState().Content
	if index < 0 || index >= len(content.GalleryImages) {
		return content, ErrIndexOutOfRange
	}
	content.GalleryImages[index] = strings.TrimSpace(url)
	if err := s.store.Dispatch(ctx, UpdateContent{Content: content}); err != nil {
		configslog.Log.Warn("Galeri içeriğe yazılamadı", zap.Error(err))
	}
	return content, nil
}

// ListStored depodaki tüm görsellerin URL'leri.
func (s *GalleryService) ListStored() ([]string, error) {
	return s.blobs.List()
}

var _ IGalleryService = (*GalleryService)(nil)
