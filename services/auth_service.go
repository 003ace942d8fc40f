package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"planejaplus/config"
	"planejaplus/logger"
	"planejaplus/models"
	"planejaplus/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLoginBlocked       = errors.New("too many failed login attempts")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUnknownTestUser    = errors.New("unknown test user")
)

const (
	maxLoginAttempts = 5
	lockoutWindow    = 2 * time.Minute
	lockoutCooldown  = 2 * time.Minute
)

// loginAttempts is the persisted failed-login counter.
type loginAttempts struct {
	Count     int       `json:"count"`
	Timestamp time.Time `json:"timestamp"`
}

type account struct {
	user models.User
	hash []byte
}

// AuthService owns the current session identity. Credentials are a fixed
// demo allow-list plus a test-user roster sharing one password; nothing here
// is a real security model.
type AuthService struct {
	mu         sync.Mutex
	store      *storage.Store
	cfg        *config.Config
	accounts   []account
	registered []account
	current    *models.User

	now func() time.Time
}

func NewAuthService(store *storage.Store, cfg *config.Config) *AuthService {
	demoHash := mustHash("demo123")
	testHash := mustHash("teste123")

	accounts := []account{{user: models.DemoUser, hash: demoHash}}
	for _, u := range models.TestUsers {
		accounts = append(accounts, account{user: u, hash: testHash})
	}

	return &AuthService{
		store:    store,
		cfg:      cfg,
		accounts: accounts,
		now:      time.Now,
	}
}

func mustHash(password string) []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic("hash demo password: " + err.Error())
	}
	return hash
}

// Hydrate restores a remembered session from storage, if any.
func (s *AuthService) Hydrate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.store.Get(storage.CurrentUserKey(s.cfg.Namespace))
	if err != nil {
		logger.Warn("failed to read session: %v", err)
		return
	}
	if !ok {
		return
	}
	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		logger.Warn("corrupt session blob, ignoring: %v", err)
		return
	}
	s.current = &user
}

// Login validates the identifier/password pair against the demo roster.
// After maxLoginAttempts consecutive failures inside the rolling window any
// further call fails with ErrLoginBlocked until the cool-down elapses,
// credentials notwithstanding.
func (s *AuthService) Login(ctx context.Context, identifier, password string, rememberMe bool) (models.User, string, error) {
	if err := s.simulateLatency(ctx); err != nil {
		return models.User{}, "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	attempts := s.loadAttempts()
	if blocked(attempts, now) {
		return models.User{}, "", ErrLoginBlocked
	}

	acct, ok := s.findAccount(identifier)
	if !ok || bcrypt.CompareHashAndPassword(acct.hash, []byte(password)) != nil {
		s.recordFailure(attempts, now)
		return models.User{}, "", ErrInvalidCredentials
	}

	s.clearAttempts()
	user := acct.user
	s.current = &user

	if rememberMe {
		s.persistCurrent(user)
	} else if err := s.store.Delete(storage.CurrentUserKey(s.cfg.Namespace)); err != nil {
		logger.Warn("failed to clear remembered session: %v", err)
	}

	token, err := s.GenerateToken(user.ID)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// Register fabricates a new auto-verified identity and persists it as the
// current user. There is no verification flow.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (models.User, string, error) {
	if err := s.simulateLatency(ctx); err != nil {
		return models.User{}, "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.findAccount(email); exists {
		return models.User{}, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, "", err
	}

	user := models.User{
		ID:    uuid.New(),
		Name:  name,
		Email: strings.ToLower(strings.TrimSpace(email)),
		Role:  "member",
	}
	s.registered = append(s.registered, account{user: user, hash: hash})
	s.current = &user
	s.persistCurrent(user)

	token, err := s.GenerateToken(user.ID)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// SwitchToTestUser swaps the session to a roster identity with no
// credential check. Demo affordance only.
func (s *AuthService) SwitchToTestUser(userID uuid.UUID) (models.User, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range models.TestUsers {
		if u.ID != userID {
			continue
		}
		user := u
		s.current = &user
		s.persistCurrent(user)
		token, err := s.GenerateToken(user.ID)
		if err != nil {
			return models.User{}, "", err
		}
		return user, token, nil
	}
	return models.User{}, "", ErrUnknownTestUser
}

// Logout clears the session identity from memory and storage.
func (s *AuthService) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := s.store.Delete(storage.CurrentUserKey(s.cfg.Namespace)); err != nil {
		logger.Warn("failed to clear session: %v", err)
	}
}

// CurrentUser returns the active session identity, if any.
func (s *AuthService) CurrentUser() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return models.User{}, false
	}
	return *s.current, true
}

// User resolves any known identity (roster or registered) by id.
func (s *AuthService) User(userID uuid.UUID) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range append(s.accounts, s.registered...) {
		if a.user.ID == userID {
			return a.user, true
		}
	}
	return models.User{}, false
}

func (s *AuthService) TestUsers() []models.User {
	return append([]models.User(nil), models.TestUsers...)
}

// IsBlocked reports whether login is currently locked out.
func (s *AuthService) IsBlocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return blocked(s.loadAttempts(), s.now())
}

// BlockTimeRemaining returns how long the lockout still lasts, zero when
// not blocked.
func (s *AuthService) BlockTimeRemaining() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	attempts := s.loadAttempts()
	now := s.now()
	if !blocked(attempts, now) {
		return 0
	}
	return lockoutCooldown - now.Sub(attempts.Timestamp)
}

// GenerateToken issues the session JWT.
func (s *AuthService) GenerateToken(userID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"exp": s.now().Add(time.Hour * 24 * 7).Unix(), // 7 days token
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func blocked(a loginAttempts, now time.Time) bool {
	return a.Count >= maxLoginAttempts && now.Sub(a.Timestamp) < lockoutCooldown
}

func (s *AuthService) findAccount(identifier string) (account, bool) {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	for _, a := range s.accounts {
		if strings.ToLower(a.user.Email) == identifier {
			return a, true
		}
	}
	for _, a := range s.registered {
		if strings.ToLower(a.user.Email) == identifier {
			return a, true
		}
	}
	return account{}, false
}

func (s *AuthService) loadAttempts() loginAttempts {
	raw, ok, err := s.store.Get(storage.LoginAttemptsKey(s.cfg.Namespace))
	if err != nil {
		logger.Warn("failed to read login attempts: %v", err)
		return loginAttempts{}
	}
	if !ok {
		return loginAttempts{}
	}
	var a loginAttempts
	if err := json.Unmarshal(raw, &a); err != nil {
		return loginAttempts{}
	}
	return a
}

// recordFailure advances the persisted counter. Failures older than the
// rolling window do not accumulate.
func (s *AuthService) recordFailure(a loginAttempts, now time.Time) {
	if now.Sub(a.Timestamp) > lockoutWindow {
		a.Count = 0
	}
	a.Count++
	a.Timestamp = now

	raw, err := json.Marshal(a)
	if err != nil {
		return
	}
	if err := s.store.Put(storage.LoginAttemptsKey(s.cfg.Namespace), raw); err != nil {
		logger.Warn("failed to save login attempts: %v", err)
	}
}

func (s *AuthService) clearAttempts() {
	if err := s.store.Delete(storage.LoginAttemptsKey(s.cfg.Namespace)); err != nil {
		logger.Warn("failed to clear login attempts: %v", err)
	}
}

func (s *AuthService) persistCurrent(user models.User) {
	raw, err := json.Marshal(user)
	if err != nil {
		logger.Error("failed to serialize session: %v", err)
		return
	}
	if err := s.store.Put(storage.CurrentUserKey(s.cfg.Namespace), raw); err != nil {
		logger.Warn("failed to save session: %v", err)
	}
}

// simulateLatency models the original's fake network delay as a timer
// suspension that respects cancellation.
func (s *AuthService) simulateLatency(ctx context.Context) error {
	if s.cfg.SimulatedLatency <= 0 {
		return nil
	}
	select {
	case <-time.After(s.cfg.SimulatedLatency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
