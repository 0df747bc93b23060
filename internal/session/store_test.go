package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/Gajendran57/GoalGrid/internal/api"
	"github.com/Gajendran57/GoalGrid/internal/apperr"
	"github.com/Gajendran57/GoalGrid/internal/model"
)

type memVault struct {
	token   string
	loadErr error
}

func (v *memVault) Load(ctx context.Context) (string, error) {
	return v.token, v.loadErr
}

func (v *memVault) Store(ctx context.Context, token string) error {
	v.token = token
	return nil
}

func (v *memVault) Clear(ctx context.Context) error {
	v.token = ""
	return nil
}

type fakeAuth struct {
	meUser   *model.User
	meErr    error
	loginErr error
	token    string
}

func (f *fakeAuth) Register(ctx context.Context, name, email, password string) (*api.AuthResponse, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &api.AuthResponse{
		AccessToken: f.token,
		User:        model.User{ID: "u1", Name: name, Email: email},
	}, nil
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (*api.AuthResponse, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &api.AuthResponse{
		AccessToken: f.token,
		User:        model.User{ID: "u1", Email: email},
	}, nil
}

func (f *fakeAuth) Me(ctx context.Context) (*model.User, error) {
	if f.meErr != nil {
		return nil, f.meErr
	}
	return f.meUser, nil
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": "u1", "exp": exp.Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func newTestStore(vault TokenVault, backend Backend) (*Store, *TokenHolder) {
	holder := NewTokenHolder()
	return NewStore(holder, vault, backend, zap.NewNop()), holder
}

func TestBootstrapNoStoredToken(t *testing.T) {
	store, holder := newTestStore(&memVault{}, &fakeAuth{})

	if err := store.Bootstrap(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Status() != StatusUnauthenticated {
		t.Errorf("status = %v, want unauthenticated", store.Status())
	}
	if holder.Token() != "" {
		t.Error("no token may be attached without a stored session")
	}
}

func TestBootstrapRestoresValidSession(t *testing.T) {
	token := signedToken(t, time.Now().Add(time.Hour))
	vault := &memVault{token: token}
	backend := &fakeAuth{meUser: &model.User{ID: "u1", Name: "Dana"}}
	store, holder := newTestStore(vault, backend)

	if err := store.Bootstrap(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Status() != StatusAuthenticated {
		t.Fatalf("status = %v, want authenticated", store.Status())
	}
	if holder.Token() != token {
		t.Error("token not attached for subsequent requests")
	}
	if user := store.User(); user == nil || user.ID != "u1" {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestBootstrapRejectedTokenIsPurged(t *testing.T) {
	token := signedToken(t, time.Now().Add(time.Hour))
	vault := &memVault{token: token}
	backend := &fakeAuth{meErr: &apperr.AuthenticationError{Message: "Invalid token"}}
	store, holder := newTestStore(vault, backend)

	if err := store.Bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap must complete, got %v", err)
	}
	if store.Status() != StatusUnauthenticated {
		t.Errorf("status = %v, want unauthenticated", store.Status())
	}
	if vault.token != "" {
		t.Error("rejected token must be purged from the vault")
	}
	if holder.Token() != "" {
		t.Error("rejected token must not remain attached")
	}
}

func TestBootstrapExpiredTokenSkipsRoundTrip(t *testing.T) {
	token := signedToken(t, time.Now().Add(-time.Hour))
	vault := &memVault{token: token}
	backend := &fakeAuth{meErr: errors.New("backend must not be called")}
	store, _ := newTestStore(vault, backend)

	if err := store.Bootstrap(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Status() != StatusUnauthenticated {
		t.Errorf("status = %v, want unauthenticated", store.Status())
	}
	if vault.token != "" {
		t.Error("expired token must be purged")
	}
}

func TestBootstrapVaultFailureSurfaced(t *testing.T) {
	vault := &memVault{loadErr: errors.New("storage down")}
	store, _ := newTestStore(vault, &fakeAuth{})

	if err := store.Bootstrap(context.Background()); err == nil {
		t.Fatal("expected vault error")
	}
}

func TestLoginEstablishesAndPersists(t *testing.T) {
	vault := &memVault{}
	backend := &fakeAuth{token: "tok-123"}
	store, holder := newTestStore(vault, backend)

	user, err := store.Login(context.Background(), "dana@example.com", "hunter2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "dana@example.com" {
		t.Errorf("unexpected user: %+v", user)
	}
	if store.Status() != StatusAuthenticated {
		t.Errorf("status = %v, want authenticated", store.Status())
	}
	if holder.Token() != "tok-123" {
		t.Error("token not attached after login")
	}
	if vault.token != "tok-123" {
		t.Error("token not persisted after login")
	}
}

func TestLoginFailureLeavesNoPartialState(t *testing.T) {
	vault := &memVault{}
	backend := &fakeAuth{loginErr: &apperr.AuthenticationError{Message: "Invalid email or password"}}
	store, holder := newTestStore(vault, backend)

	_, err := store.Login(context.Background(), "dana@example.com", "wrong")
	if !apperr.IsAuthentication(err) {
		t.Fatalf("expected authentication error, got %v", err)
	}
	if store.Status() != StatusUnauthenticated {
		t.Error("failed login must leave the session unauthenticated")
	}
	if holder.Token() != "" || vault.token != "" {
		t.Error("failed login must not leave a token anywhere")
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	vault := &memVault{}
	backend := &fakeAuth{token: "tok-123"}
	store, holder := newTestStore(vault, backend)

	if _, err := store.Login(context.Background(), "dana@example.com", "hunter2"); err != nil {
		t.Fatal(err)
	}
	store.Logout()

	if store.Status() != StatusUnauthenticated {
		t.Error("logout must reset status")
	}
	if store.User() != nil {
		t.Error("logout must clear the identity")
	}
	if holder.Token() != "" || vault.token != "" {
		t.Error("logout must purge the token")
	}
}
