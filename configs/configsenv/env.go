package configsenv

import (
	"os"
	"strconv"
	"strings"
	"time"

	"dugun.site/configs/configslog"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// AppConfig uygulamanın çalışma zamanı ayarlarını tutar.
type AppConfig struct {
	AppEnv  string
	AppHost string
	AppPort string

	DBDriver   string // postgres | sqlite
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string // sqlite dosyası

	// Tek operatör kimliği; şifre sadece seed sırasında okunur.
	AdminEmail    string
	AdminPassword string

	CacheDir      string
	MediaDir      string
	MediaBucket   string
	PublicBaseURL string

	SessionExpiry time.Duration
	LoginRPS      float64
	LoginBurst    int
	BodyLimitMB   int
}

var cfg *AppConfig

// Load .env dosyasını (varsa) yükler ve ayarları ortam değişkenlerinden okur.
func Load() *AppConfig {
	if err := godotenv.Load(); err != nil {
		configslog.SLog.Debug(".env dosyası bulunamadı, ortam değişkenleri kullanılacak")
	}

	c := &AppConfig{
		AppEnv:        getEnv("APP_ENV", "production"),
		AppHost:       getEnv("APP_HOST", "0.0.0.0"),
		AppPort:       getEnv("APP_PORT", "3000"),
		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", ""),
		DBName:        getEnv("DB_NAME", "wedding"),
		DBSSLMode:     getEnv("DB_SSL_MODE", "disable"),
		DBPath:        getEnv("DB_PATH", "data/wedding.db"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@simplylouie.com"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		CacheDir:      getEnv("CACHE_DIR", "data/cache"),
		MediaDir:      getEnv("MEDIA_DIR", "data/media"),
		MediaBucket:   getEnv("MEDIA_BUCKET", "wedding-media"),
		PublicBaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:3000"), "/"),
		SessionExpiry: getEnvDuration("SESSION_EXPIRY", 30*24*time.Hour),
		LoginRPS:      getEnvFloat("LOGIN_RPS", 0.2),
		LoginBurst:    getEnvInt("LOGIN_BURST", 5),
		BodyLimitMB:   getEnvInt("BODY_LIMIT_MB", 32),
	}
	cfg = c
	return c
}

// Get yüklenmiş ayarları döndürür; Load çağrılmadıysa yükler.
func Get() *AppConfig {
	if cfg == nil {
		return Load()
	}
	return cfg
}

// ListenAddr host:port biçiminde dinleme adresini verir.
func (c *AppConfig) ListenAddr() string {
	return c.AppHost + ":" + c.AppPort
}

// IsDevelopment geliştirme ortamında mıyız?
func (c *AppConfig) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		configslog.Log.Warn("Geçersiz tamsayı ayarı, varsayılan kullanılıyor", zap.String("key", key), zap.String("value", raw))
		return fallback
	}
	return v
}

func getEnvFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		configslog.Log.Warn("Geçersiz ondalık ayarı, varsayılan kullanılıyor", zap.String("key", key), zap.String("value", raw))
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		configslog.Log.Warn("Geçersiz süre ayarı, varsayılan kullanılıyor", zap.String("key", key), zap.String("value", raw))
		return fallback
	}
	return v
}
