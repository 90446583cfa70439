package session

import (
	"strings"
	"sync"
	"time"

	"go-sweet-storefront/internal/storage"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Navigator abstracts "where the user currently is" so that session
// invalidation can send them to the login entry point. Routes already
// reachable without authentication are exempt from the redirect.
type Navigator interface {
	CurrentRoute() string
	NavigateTo(route string)
}

const LoginRoute = "/login"

var unauthenticatedRoutes = []string{"/login", "/register"}

// Store owns the authenticated session (token + user profile). It is the
// single owner of that state: components read through it and never hold
// their own copy.
type Store struct {
	mu      sync.RWMutex
	token   string
	user    *User
	local   storage.Store
	nav     Navigator
	logger  *zap.Logger
	onClear []func()
}

type Deps struct {
	Local     storage.Store
	Navigator Navigator
	Logger    *zap.Logger
}

func NewStore(deps Deps) *Store {
	if deps.Local == nil {
		panic("local storage cannot be nil")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	s := &Store{
		local:  deps.Local,
		nav:    deps.Navigator,
		logger: deps.Logger,
	}
	s.restore()
	return s
}

// restore rehydrates the session from persisted state, mirroring the
// startup path of the storefront.
func (s *Store) restore() {
	var token string
	if err := storage.GetJSON(s.local, storage.KeyToken, &token); err != nil {
		return
	}

	var user User
	if err := storage.GetJSON(s.local, storage.KeyUser, &user); err != nil {
		return
	}

	s.token = token
	s.user = &user
}

func (s *Store) Login(token string, user User) error {
	if token == "" || token == "undefined" || token == "null" {
		s.logger.Warn("refusing to store unusable token")
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := storage.SetJSON(s.local, storage.KeyToken, token); err != nil {
		return err
	}
	if err := storage.SetJSON(s.local, storage.KeyUser, user); err != nil {
		return err
	}

	s.token = token
	s.user = &user
	return nil
}

// Logout clears both persisted and in-memory state. Calling it on an
// already-cleared session is a no-op.
func (s *Store) Logout() {
	s.mu.Lock()
	cleared := s.token != "" || s.user != nil
	_ = s.local.Delete(storage.KeyToken)
	_ = s.local.Delete(storage.KeyUser)
	s.token = ""
	s.user = nil
	callbacks := append([]func(){}, s.onClear...)
	s.mu.Unlock()

	if cleared {
		for _, cb := range callbacks {
			cb()
		}
	}
}

// OnLogout registers a callback run whenever a live session is cleared,
// by Logout or by Invalidate. The cart subscribes here.
func (s *Store) OnLogout(cb func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onClear = append(s.onClear, cb)
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) User() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

func (s *Store) IsAdmin() bool {
	u, ok := s.User()
	return ok && u.Role == RoleAdmin
}

// TokenExpiry peeks at the bearer token's exp claim without verifying the
// signature (the backend is the verifier; the client only needs a hint).
func (s *Store) TokenExpiry() (time.Time, bool) {
	token := s.Token()
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Invalidate is the authentication-failure path: the backend rejected the
// token, so the session is cleared and the user is sent to the login entry
// point unless they are already on an unauthenticated-entry route.
// Authorization failures must NOT come through here.
func (s *Store) Invalidate() {
	s.logger.Info("session invalidated by authentication failure")
	s.Logout()

	if s.nav == nil {
		return
	}
	current := s.nav.CurrentRoute()
	for _, r := range unauthenticatedRoutes {
		if strings.HasPrefix(current, r) {
			return
		}
	}
	s.nav.NavigateTo(LoginRoute)
}
