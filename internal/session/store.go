package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/Gajendran57/GoalGrid/internal/api"
	"github.com/Gajendran57/GoalGrid/internal/model"
)

type Status string

const (
	StatusUnauthenticated Status = "unauthenticated"
	StatusLoading         Status = "loading"
	StatusAuthenticated   Status = "authenticated"
)

// Backend is the slice of the API client the store needs.
type Backend interface {
	Register(ctx context.Context, name, email, password string) (*api.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*api.AuthResponse, error)
	Me(ctx context.Context) (*model.User, error)
}

// Store owns the authentication session: the token slot, the current
// identity and the status gate everything else waits on.
type Store struct {
	holder  *TokenHolder
	vault   TokenVault
	backend Backend
	logger  *zap.Logger

	mu     sync.RWMutex
	user   *model.User
	status Status
}

func NewStore(holder *TokenHolder, vault TokenVault, backend Backend, logger *zap.Logger) *Store {
	return &Store{
		holder:  holder,
		vault:   vault,
		backend: backend,
		logger:  logger,
		status:  StatusUnauthenticated,
	}
}

// Status returns the current session status.
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// User returns the authenticated identity, or nil.
func (s *Store) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Bootstrap restores the persisted session. It blocks until the session
// is settled one way or the other; gated content must not render before
// it returns. A token the backend rejects is purged and the store ends
// unauthenticated, which is a completed bootstrap, not an error.
func (s *Store) Bootstrap(ctx context.Context) error {
	token, err := s.vault.Load(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		s.setUnauthenticated()
		return nil
	}

	// An already-expired token is purged without a round-trip.
	if tokenExpired(token) {
		s.logger.Info("Stored session token already expired, purging")
		s.purge(ctx)
		return nil
	}

	s.holder.set(token)
	s.setStatus(StatusLoading)

	user, err := s.backend.Me(ctx)
	if err != nil {
		s.logger.Warn("Stored session token rejected", zap.Error(err))
		s.purge(ctx)
		return nil
	}

	s.mu.Lock()
	s.user = user
	s.status = StatusAuthenticated
	s.mu.Unlock()

	s.logger.Info("Session restored", zap.String("user_id", user.ID))
	return nil
}

// Login authenticates and persists the returned token. On failure the
// session is left fully unauthenticated; there is no partial state.
func (s *Store) Login(ctx context.Context, email, password string) (*model.User, error) {
	resp, err := s.backend.Login(ctx, email, password)
	if err != nil {
		s.setUnauthenticated()
		return nil, err
	}
	s.establish(ctx, resp)
	return &resp.User, nil
}

// Register creates an account and opens a session, same contract as Login.
func (s *Store) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	resp, err := s.backend.Register(ctx, name, email, password)
	if err != nil {
		s.setUnauthenticated()
		return nil, err
	}
	s.establish(ctx, resp)
	return &resp.User, nil
}

// Logout drops the session. In-flight requests are not cancelled, but no
// subsequent request will carry the cleared token.
func (s *Store) Logout() {
	s.purge(context.Background())
	s.logger.Info("Session cleared")
}

func (s *Store) establish(ctx context.Context, resp *api.AuthResponse) {
	s.holder.set(resp.AccessToken)
	if err := s.vault.Store(ctx, resp.AccessToken); err != nil {
		// The in-memory session still works; only restart persistence is lost.
		s.logger.Warn("Failed to persist session token", zap.Error(err))
	}

	user := resp.User
	s.mu.Lock()
	s.user = &user
	s.status = StatusAuthenticated
	s.mu.Unlock()

	s.logger.Info("Session established", zap.String("user_id", user.ID))
}

func (s *Store) purge(ctx context.Context) {
	s.holder.set("")
	if err := s.vault.Clear(ctx); err != nil {
		s.logger.Warn("Failed to clear token vault", zap.Error(err))
	}
	s.setUnauthenticated()
}

func (s *Store) setUnauthenticated() {
	s.mu.Lock()
	s.user = nil
	s.status = StatusUnauthenticated
	s.mu.Unlock()
}

func (s *Store) setStatus(status Status) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
}

// tokenExpired inspects the token's exp claim without verifying the
// signature; verification is the backend's job.
func tokenExpired(token string) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		// Unparseable tokens go to the backend, which will reject them
		// with a proper message.
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
