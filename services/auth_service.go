package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"dugun.site/configs/configslog"
	"dugun.site/models"
	"dugun.site/pkg/metrics"
	"dugun.site/repositories"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

// AuthServiceError giriş hataları.
type AuthServiceError string

func (e AuthServiceError) Error() string { return string(e) }

const (
	ErrInvalidCredential AuthServiceError = "auth/invalid-credential"
	ErrUserNotFound      AuthServiceError = "auth/user-not-found"
	ErrTooManyRequests   AuthServiceError = "auth/too-many-requests"
	ErrAuthFailed        AuthServiceError = "auth/internal-error"
)

// LoginErrorMessage giriş hatasını kullanıcıya gösterilecek metne çevirir.
func LoginErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidCredential):
		return "Incorrect password"
	case errors.Is(err, ErrUserNotFound):
		return "Admin account not configured"
	case errors.Is(err, ErrTooManyRequests):
		return "Too many failed attempts. Try again later."
	}
	return "Authentication failed. Please try again."
}

// SessionEventKind oturum değişikliği türü.
type SessionEventKind string

const (
	SessionLogin   SessionEventKind = "login"
	SessionLogout  SessionEventKind = "logout"
	SessionRestore SessionEventKind = "restore"
)

// SessionEvent OnSessionChange dinleyicilerine iletilir.
type SessionEvent struct {
	Kind      SessionEventKind
	SessionID string
	Email     string
}

// IAuthService tek operatörlü panel girişi.
type IAuthService interface {
	Login(ctx context.Context, clientKey, sessionID, secret string) (*models.Operator, error)
	Logout(sessionID, email string)
	Restore(sessionID, email string)
	OperatorEmail() string
	OnSessionChange(cb func(SessionEvent)) func()
}

// limiterPool istemci anahtarı başına bir token bucket tutar.
type limiterPool struct {
	mu    sync.Mutex
	m     map[string]*rate.Limiter
	rps   float64
	burst int
}

func (p *limiterPool) get(key string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.m == nil {
		p.m = make(map[string]*rate.Limiter)
	}
	if l, ok := p.m[key]; ok {
		return l
	}
	rps := p.rps
	if rps <= 0 {
		rps = 0.2
	}
	burst := p.burst
	if burst <= 0 {
		burst = 5
	}
	l := rate.NewLimiter(rate.Limit(rps), burst)
	p.m[key] = l
	return l
}

func (p *limiterPool) Allow(key string) bool {
	return p.get(key).Allow()
}

// AuthService IAuthService arayüzünü uygular.
type AuthService struct {
	repo     repositories.IOperatorRepository
	email    string
	limiters *limiterPool

	mu        sync.Mutex
	listeners map[int]func(SessionEvent)
	nextID    int
}

// NewAuthService sabit operatör e-postası ve giriş hız sınırıyla servis oluşturur.
func NewAuthService(repo repositories.IOperatorRepository, operatorEmail string, loginRPS float64, loginBurst int) *AuthService {
	return &AuthService{
		repo:      repo,
		email:     strings.ToLower(strings.TrimSpace(operatorEmail)),
		limiters:  &limiterPool{rps: loginRPS, burst: loginBurst},
		listeners: make(map[int]func(SessionEvent)),
	}
}

func (s *AuthService) OperatorEmail() string { return s.email }

// Login şifreyi sabit operatör kimliğine karşı doğrular. Her deneme istemcinin
// hız sınırından bir token harcar.
func (s *AuthService) Login(ctx context.Context, clientKey, sessionID, secret string) (*models.Operator, error) {
	if !s.limiters.Allow(clientKey) {
		metrics.LoginAttempts.WithLabelValues("throttled").Inc()
		configslog.Log.Warn("Giriş denemesi sınırlandı", zap.String("client", clientKey))
		return nil, ErrTooManyRequests
	}

	op, err := s.repo.FindByEmail(ctx, s.email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			metrics.LoginAttempts.WithLabelValues("not_found").Inc()
			return nil, ErrUserNotFound
		}
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		configslog.Log.Error("Operatör okunamadı", zap.Error(err))
		return nil, ErrAuthFailed
	}

	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(secret)); err != nil {
		metrics.LoginAttempts.WithLabelValues("invalid").Inc()
		configslog.Log.Info("Hatalı şifre ile giriş denemesi", zap.String("client", clientKey))
		return nil, ErrInvalidCredential
	}

	metrics.LoginAttempts.WithLabelValues("ok").Inc()
	configslog.SLog.Infof("Operatör giriş yaptı: %s", op.Email)
	s.emit(SessionEvent{Kind: SessionLogin, SessionID: sessionID, Email: op.Email})
	return op, nil
}

// Logout oturum kapanışını dinleyicilere bildirir. Oturumun silinmesi çağıranın işidir.
func (s *AuthService) Logout(sessionID, email string) {
	s.emit(SessionEvent{Kind: SessionLogout, SessionID: sessionID, Email: email})
}

// Restore kalıcı depodan geri yüklenen bir oturumu bildirir.
func (s *AuthService) Restore(sessionID, email string) {
	s.emit(SessionEvent{Kind: SessionRestore, SessionID: sessionID, Email: email})
}

// OnSessionChange dinleyici kaydeder; dönen fonksiyon kaydı siler.
func (s *AuthService) OnSessionChange(cb func(SessionEvent)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = cb
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *AuthService) emit(ev SessionEvent) {
	s.mu.Lock()
	cbs := make([]func(SessionEvent), 0, len(s.listeners))
	for _, cb := range s.listeners {
		cbs = append(cbs, cb)
	}
	s.mu.Unlock()
	for _, cb := range cbs {
		cb(ev)
	}
}

// HashPassword seeder ve testler için bcrypt hash üretir.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

var _ IAuthService = (*AuthService)(nil)
