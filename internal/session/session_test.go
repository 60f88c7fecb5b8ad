package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	apperrors "pennywise/internal/errors"
)

// fakeBackend is a minimal auth + protected-resource server for exercising
// the session manager and transport.
type fakeBackend struct {
	mu            sync.Mutex
	accessToken   string
	refreshToken  string
	loginCalls    atomic.Int64
	refreshCalls  atomic.Int64
	refreshDelay  time.Duration
	refreshFails  bool
	twoFactorUser string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{accessToken: "access-1", refreshToken: "refresh-1"}
}

func (f *fakeBackend) authPayload() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return map[string]any{
		"access_token":    f.accessToken,
		"refresh_token":   f.refreshToken,
		"analytics_token": "analytics-1",
		"expires_in":      3600,
		"token_type":      "Bearer",
		"user": map[string]any{
			"id":       "user-1",
			"username": "tuser",
			"email":    "tuser@example.com",
		},
	}
}

func (f *fakeBackend) rotate() {
	f.mu.Lock()
	f.accessToken = "access-2"
	f.refreshToken = "refresh-2"
	f.mu.Unlock()
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		f.loginCalls.Add(1)
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)

		if req["username"] == f.twoFactorUser && f.twoFactorUser != "" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{
					"code":    "TWO_FACTOR_REQUIRED",
					"message": "2FA is enabled, please provide a token",
				},
			})
			return
		}
		if req["password"] != "password123" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{
					"code":    "INVALID_CREDENTIALS",
					"message": "Invalid username or password",
				},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(f.authPayload())
	})

	mux.HandleFunc("/api/auth/verify-2fa", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["token"] != "123456" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{
					"code":    "INVALID_TWO_FACTOR",
					"message": "Invalid two-factor code",
				},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(f.authPayload())
	})

	mux.HandleFunc("/api/auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		f.refreshCalls.Add(1)
		if f.refreshDelay > 0 {
			time.Sleep(f.refreshDelay)
		}
		if f.refreshFails {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{"code": "INVALID_TOKEN", "message": "Invalid or expired token"},
			})
			return
		}
		f.rotate()
		_ = json.NewEncoder(w).Encode(f.authPayload())
	})

	mux.HandleFunc("/api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "user-2", "username": "newuser"})
	})

	mux.HandleFunc("/api/accounts", func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		f.mu.Lock()
		want := "Bearer " + f.accessToken
		f.mu.Unlock()
		if auth != want {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{"code": "UNAUTHORIZED", "message": "Authentication required"},
			})
			return
		}
		_ = json.NewEncoder(w).Encode([]map[string]any{})
	})

	return mux
}

func newTestManager(t *testing.T, backend *fakeBackend) (*Manager, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)
	return NewManager(srv.URL, srv.Client(), NewMemoryStore()), srv
}

func TestLoginSuccess(t *testing.T) {
	backend := newFakeBackend()
	m, srv := newTestManager(t, backend)

	if err := m.Login(context.Background(), "tuser", "password123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if !m.Authenticated() {
		t.Fatal("expected authenticated session after login")
	}
	if m.AccessToken() != "access-1" {
		t.Errorf("access token = %q", m.AccessToken())
	}
	if m.User() == nil || m.User().Username != "tuser" {
		t.Errorf("user = %+v", m.User())
	}

	// A protected request now carries the bearer token.
	hc := &http.Client{Transport: &Transport{Manager: m}}
	resp, err := hc.Get(srv.URL + "/api/accounts")
	if err != nil {
		t.Fatalf("protected request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("protected request status = %d", resp.StatusCode)
	}
}

func TestLoginFailure(t *testing.T) {
	backend := newFakeBackend()
	m, _ := newTestManager(t, backend)

	err := m.Login(context.Background(), "tuser", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	if m.Authenticated() {
		t.Error("session must stay unauthenticated")
	}
	if m.LastError() == "" {
		t.Error("expected a stored user-visible error message")
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != "INVALID_CREDENTIALS" {
		t.Errorf("expected typed INVALID_CREDENTIALS error, got %v", err)
	}
}

func TestLoginTwoFactorFlow(t *testing.T) {
	backend := newFakeBackend()
	backend.twoFactorUser = "tuser"
	m, _ := newTestManager(t, backend)

	err := m.Login(context.Background(), "tuser", "password123")
	if !errors.Is(err, apperrors.ErrTwoFactorRequired) {
		t.Fatalf("expected ErrTwoFactorRequired, got %v", err)
	}

	pending, username := m.PendingTwoFactor()
	if !pending || username != "tuser" {
		t.Fatalf("pending = %v, username = %q", pending, username)
	}
	if m.Authenticated() {
		t.Fatal("must not be authenticated yet")
	}
	if m.LastError() != "" {
		t.Errorf("2FA signal must not store an error, got %q", m.LastError())
	}

	// Wrong code keeps the pending state.
	if err := m.VerifyTwoFactor(context.Background(), "tuser", "000000"); err == nil {
		t.Fatal("expected error for wrong code")
	}
	if pending, _ := m.PendingTwoFactor(); !pending {
		t.Fatal("pending state must survive a failed verification")
	}

	// Correct code authenticates.
	if err := m.VerifyTwoFactor(context.Background(), "tuser", "123456"); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if !m.Authenticated() {
		t.Fatal("expected authenticated session")
	}
	if pending, _ := m.PendingTwoFactor(); pending {
		t.Error("pending state must be cleared")
	}
}

func TestRegisterDoesNotAuthenticate(t *testing.T) {
	backend := newFakeBackend()
	m, _ := newTestManager(t, backend)

	user, err := m.Register(context.Background(), RegisterRequest{
		Username: "newuser",
		Email:    "new@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Username != "newuser" {
		t.Errorf("user = %+v", user)
	}
	if m.Authenticated() {
		t.Error("register must not authenticate the session")
	}
}

func TestLogout(t *testing.T) {
	backend := newFakeBackend()
	m, srv := newTestManager(t, backend)

	if err := m.Login(context.Background(), "tuser", "password123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	m.Logout()
	if m.Authenticated() {
		t.Fatal("expected unauthenticated session after logout")
	}
	if m.AccessToken() != "" {
		t.Error("access token must be cleared")
	}

	// Idempotent.
	m.Logout()

	// No authorization header is attached anymore.
	hc := &http.Client{Transport: &Transport{Manager: m}}
	backend.refreshFails = true
	resp, err := hc.Get(srv.URL + "/api/accounts")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", resp.StatusCode)
	}
}

func TestRefreshSession(t *testing.T) {
	backend := newFakeBackend()
	m, _ := newTestManager(t, backend)

	// No refresh token yet.
	if m.RefreshSession(context.Background()) {
		t.Fatal("refresh without a token must fail")
	}

	if err := m.Login(context.Background(), "tuser", "password123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if !m.RefreshSession(context.Background()) {
		t.Fatal("refresh failed")
	}
	if m.AccessToken() != "access-2" {
		t.Errorf("access token not rotated: %q", m.AccessToken())
	}
	if !m.Authenticated() {
		t.Error("session must stay authenticated after refresh")
	}
}

func TestRefreshSingleFlight(t *testing.T) {
	backend := newFakeBackend()
	backend.refreshDelay = 200 * time.Millisecond
	m, _ := newTestManager(t, backend)

	if err := m.Login(context.Background(), "tuser", "password123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	firstDone := make(chan bool)
	go func() {
		firstDone <- m.RefreshSession(context.Background())
	}()

	// Give the first refresh time to take the in-flight guard.
	time.Sleep(50 * time.Millisecond)

	// An overlapping caller is rejected immediately, without queuing.
	start := time.Now()
	if m.RefreshSession(context.Background()) {
		t.Error("overlapping refresh must return false")
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("overlapping refresh blocked for %v", elapsed)
	}

	if !<-firstDone {
		t.Fatal("first refresh failed")
	}
	if got := backend.refreshCalls.Load(); got != 1 {
		t.Errorf("refresh network calls = %d, want 1", got)
	}

	// The rejected caller re-checks session state and finds it fresh.
	if m.AccessToken() != "access-2" {
		t.Errorf("access token = %q", m.AccessToken())
	}
}

func TestRefreshFailureDoesNotLogout(t *testing.T) {
	backend := newFakeBackend()
	m, _ := newTestManager(t, backend)

	if err := m.Login(context.Background(), "tuser", "password123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	backend.refreshFails = true
	if m.RefreshSession(context.Background()) {
		t.Fatal("expected refresh failure")
	}
	if !m.Authenticated() {
		t.Error("RefreshSession must not log out on its own")
	}
}

func TestSessionPersistsThroughStore(t *testing.T) {
	backend := newFakeBackend()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	store := NewMemoryStore()
	m := NewManager(srv.URL, srv.Client(), store)
	if err := m.Login(context.Background(), "tuser", "password123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// A new manager over the same store restores the session.
	restored := NewManager(srv.URL, srv.Client(), store)
	if !restored.Authenticated() {
		t.Fatal("expected restored session to be authenticated")
	}
	if restored.AccessToken() != m.AccessToken() {
		t.Error("restored access token differs")
	}

	restored.Logout()
	emptied := NewManager(srv.URL, srv.Client(), store)
	if emptied.Authenticated() {
		t.Error("logout must clear the persisted session")
	}
}
