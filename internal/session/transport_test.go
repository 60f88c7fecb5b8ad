package session

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// expiringBackend accepts only its current access token, forcing exactly the
// 401 → refresh → replay dance on stale tokens.
type expiringBackend struct {
	*fakeBackend
}

func newExpiringBackend() *expiringBackend {
	return &expiringBackend{fakeBackend: newFakeBackend()}
}

func (e *expiringBackend) expireAccessToken() {
	e.mu.Lock()
	e.accessToken = "access-2"
	e.refreshToken = "refresh-1" // refresh endpoint still honors the old pair
	e.mu.Unlock()
}

func TestTransportRetriesOnceAfterRefresh(t *testing.T) {
	backend := newExpiringBackend()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	m := NewManager(srv.URL, srv.Client(), NewMemoryStore())
	if err := m.Login(context.Background(), "tuser", "password123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// Invalidate the client's access token server-side.
	backend.expireAccessToken()

	hc := &http.Client{Transport: &Transport{Manager: m}}
	resp, err := hc.Get(srv.URL + "/api/accounts")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 200 after refresh+replay, got %d: %s", resp.StatusCode, body)
	}
	if got := backend.refreshCalls.Load(); got != 1 {
		t.Errorf("refresh calls = %d, want 1", got)
	}
	if m.AccessToken() != "access-2" {
		t.Errorf("access token = %q", m.AccessToken())
	}
}

func TestTransportRetriesAtMostOnce(t *testing.T) {
	// The resource keeps returning 401 even after a successful refresh;
	// the transport must not loop.
	var resourceCalls, refreshCalls atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "fresh",
			"refresh_token": "fresh-refresh",
			"user":          map[string]any{"id": "u1", "username": "tuser"},
		})
	})
	mux.HandleFunc("/api/accounts", func(w http.ResponseWriter, r *http.Request) {
		resourceCalls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	store := NewMemoryStore()
	_ = store.Save(State{AccessToken: "stale", RefreshToken: "stale-refresh"})
	m := NewManager(srv.URL, srv.Client(), store)

	hc := &http.Client{Transport: &Transport{Manager: m}}
	resp, err := hc.Get(srv.URL + "/api/accounts")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected the second 401 to propagate, got %d", resp.StatusCode)
	}
	if got := resourceCalls.Load(); got != 2 {
		t.Errorf("resource calls = %d, want 2 (original + one replay)", got)
	}
	if got := refreshCalls.Load(); got != 1 {
		t.Errorf("refresh calls = %d, want 1", got)
	}
}

func TestTransportConcurrent401SingleRefresh(t *testing.T) {
	backend := newExpiringBackend()
	backend.refreshDelay = 150 * time.Millisecond
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	m := NewManager(srv.URL, srv.Client(), NewMemoryStore())
	if err := m.Login(context.Background(), "tuser", "password123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	backend.expireAccessToken()

	hc := &http.Client{Transport: &Transport{Manager: m}}

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := hc.Get(srv.URL + "/api/accounts")
			if err != nil {
				t.Errorf("request failed: %v", err)
				return
			}
			defer resp.Body.Close()
			// One request wins the refresh and succeeds; the other may see
			// the original 401 and must re-check session state.
			_, _ = io.Copy(io.Discard, resp.Body)
		}()
	}
	wg.Wait()

	if got := backend.refreshCalls.Load(); got != 1 {
		t.Errorf("refresh calls = %d, want exactly 1", got)
	}
	if !m.Authenticated() {
		t.Error("session must remain authenticated")
	}
}

func TestTransportSkipsAuthEndpoints(t *testing.T) {
	var refreshCalls atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/api/auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	store := NewMemoryStore()
	_ = store.Save(State{AccessToken: "tok", RefreshToken: "refresh"})
	m := NewManager(srv.URL, srv.Client(), store)

	hc := &http.Client{Transport: &Transport{Manager: m}}
	resp, err := hc.Post(srv.URL+"/api/auth/login", "application/json", strings.NewReader("{}"))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if got := refreshCalls.Load(); got != 0 {
		t.Errorf("a 401 from an auth endpoint must not trigger refresh, got %d calls", got)
	}
}

func TestIsAuthEndpoint(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/api/auth/login", true},
		{"/api/auth/verify-2fa", true},
		{"/api/auth/refresh-token", true},
		{"/api/auth/logout", true},
		{"/api/profile", false},
		{"/api/accounts", false},
		{"/health", false},
	}
	for _, tt := range tests {
		if got := IsAuthEndpoint(tt.path); got != tt.want {
			t.Errorf("IsAuthEndpoint(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

// The profile resource must receive the bearer token like any other
// collection; only the token-issuing endpoints are exempt.
func TestTransportInjectsBearerOnProfile(t *testing.T) {
	var gotAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/profile", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("{}"))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	store := NewMemoryStore()
	_ = store.Save(State{AccessToken: "tok", RefreshToken: "refresh"})
	m := NewManager(srv.URL, srv.Client(), store)

	hc := &http.Client{Transport: &Transport{Manager: m}}
	resp, err := hc.Get(srv.URL + "/api/profile")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if gotAuth != "Bearer tok" {
		t.Errorf("Authorization = %q, want bearer token on the profile path", gotAuth)
	}
}

func TestTransportLogsOutWhenRefreshFails(t *testing.T) {
	backend := newExpiringBackend()
	backend.refreshFails = true
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	m := NewManager(srv.URL, srv.Client(), NewMemoryStore())
	if err := m.Login(context.Background(), "tuser", "password123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	backend.expireAccessToken()

	hc := &http.Client{Transport: &Transport{Manager: m}}
	resp, err := hc.Get(srv.URL + "/api/accounts")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected the 401 to propagate, got %d", resp.StatusCode)
	}
	if m.Authenticated() {
		t.Error("a failed refresh during retry must log the session out")
	}
}
