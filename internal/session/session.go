// Package session owns the authenticated/unauthenticated state machine of the
// client: it performs the auth endpoint calls, holds the token pair, persists
// it through a Store, and provides the HTTP transport that retries a request
// once after a 401 by refreshing the session.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/logger"
	"pennywise/internal/models"
)

// authPathPrefix marks the endpoints the transport must never intercept,
// so a failing refresh can not trigger another refresh.
const authPathPrefix = "/api/auth/"

// IsAuthEndpoint reports whether a request path is an auth endpoint.
func IsAuthEndpoint(path string) bool {
	return strings.HasPrefix(path, authPathPrefix)
}

// Manager owns a single session. All state transitions go through it, and
// access to the token slot is serialized by its mutex.
type Manager struct {
	baseURL string
	hc      *http.Client
	store   Store

	mu              sync.Mutex
	state           State
	pending         bool
	pendingUsername string
	lastError       string
	refreshing      bool
}

// refreshResult distinguishes a completed refresh from one that was rejected
// because another refresh was already in flight.
type refreshResult int

const (
	refreshOK refreshResult = iota
	refreshFailed
	refreshInFlight
)

// NewManager creates a session manager for the given API base URL, restoring
// any previously persisted session from the store.
func NewManager(baseURL string, hc *http.Client, store Store) *Manager {
	if hc == nil {
		hc = &http.Client{}
	}
	m := &Manager{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      hc,
		store:   store,
	}
	if store != nil {
		if state, err := store.Load(); err == nil {
			m.state = state
		}
	}
	return m
}

// AuthResponse is the payload returned by login, verify-2fa and refresh.
type AuthResponse struct {
	AccessToken    string       `json:"access_token"`
	RefreshToken   string       `json:"refresh_token"`
	AnalyticsToken string       `json:"analytics_token"`
	ExpiresIn      int64        `json:"expires_in"`
	TokenType      string       `json:"token_type"`
	User           *models.User `json:"user"`
}

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Login authenticates with username and password. On success the session
// becomes authenticated and subsequent requests carry the bearer token.
// If the server signals that a second factor is required, the session enters
// the pending two-factor state and ErrTwoFactorRequired is returned; call
// VerifyTwoFactor to complete the login. Any other error leaves the session
// unauthenticated with the message available via LastError.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	resp, err := m.postAuth(ctx, "/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		if isTwoFactorSignal(err) {
			m.mu.Lock()
			m.pending = true
			m.pendingUsername = username
			m.lastError = ""
			m.mu.Unlock()
			return apperrors.ErrTwoFactorRequired
		}
		m.setError(err)
		return err
	}

	m.adopt(resp)
	return nil
}

// VerifyTwoFactor completes a pending two-factor login. On failure the
// pending state is kept so the user can retry the code.
func (m *Manager) VerifyTwoFactor(ctx context.Context, username, code string) error {
	resp, err := m.postAuth(ctx, "/api/auth/verify-2fa", map[string]string{
		"username": username,
		"token":    code,
	})
	if err != nil {
		m.setError(err)
		return err
	}

	m.adopt(resp)
	return nil
}

// Register creates a new user account. It never authenticates the session.
func (m *Manager) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	data, status, err := m.roundTrip(ctx, "/api/auth/register", body)
	if err != nil {
		return nil, err
	}
	if status >= http.StatusBadRequest {
		appErr := apperrors.FromResponse(status, data)
		m.setError(appErr)
		return nil, appErr
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// RefreshSession exchanges the stored refresh token for a new token pair.
// Refresh is serialized by a single in-flight guard: a caller arriving while
// another refresh is outstanding gets false immediately without queuing, and
// must re-check the session state rather than treat false as invalid
// credentials. RefreshSession never logs the session out on failure; that
// decision belongs to the caller.
func (m *Manager) RefreshSession(ctx context.Context) bool {
	return m.refresh(ctx) == refreshOK
}

func (m *Manager) refresh(ctx context.Context) refreshResult {
	m.mu.Lock()
	if m.refreshing {
		m.mu.Unlock()
		return refreshInFlight
	}
	refreshToken := m.state.RefreshToken
	if refreshToken == "" {
		m.mu.Unlock()
		return refreshFailed
	}
	m.refreshing = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.refreshing = false
		m.mu.Unlock()
	}()

	resp, err := m.postAuth(ctx, "/api/auth/refresh-token", map[string]string{
		"refresh_token": refreshToken,
	})
	if err != nil {
		logger.Get().Debugw("session refresh failed", "error", err.Error())
		return refreshFailed
	}

	m.adopt(resp)
	return refreshOK
}

// Logout clears all session state, both in memory and in the store. It is
// idempotent.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.state = State{}
	m.pending = false
	m.pendingUsername = ""
	m.lastError = ""
	m.mu.Unlock()

	if m.store != nil {
		if err := m.store.Clear(); err != nil {
			logger.Get().Warnw("failed to clear session store", "error", err.Error())
		}
	}
}

// Authenticated reports whether the session holds both tokens and a user.
func (m *Manager) Authenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.AccessToken != "" && m.state.RefreshToken != "" && m.state.User != nil
}

// AccessToken returns the current access token, or "" when logged out.
func (m *Manager) AccessToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.AccessToken
}

// AnalyticsToken returns the token for the analytics API, or "".
func (m *Manager) AnalyticsToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.AnalyticsToken
}

// User returns the authenticated user, or nil.
func (m *Manager) User() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.User
}

// PendingTwoFactor reports whether the session awaits a second factor, and
// for which username.
func (m *Manager) PendingTwoFactor() (bool, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending, m.pendingUsername
}

// LastError returns the user-visible message of the last failed auth
// operation, or "".
func (m *Manager) LastError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastError
}

// adopt installs a successful auth response as the current session.
func (m *Manager) adopt(resp *AuthResponse) {
	m.mu.Lock()
	m.state = State{
		AccessToken:    resp.AccessToken,
		RefreshToken:   resp.RefreshToken,
		AnalyticsToken: resp.AnalyticsToken,
		User:           resp.User,
	}
	m.pending = false
	m.pendingUsername = ""
	m.lastError = ""
	state := m.state
	m.mu.Unlock()

	if m.store != nil {
		if err := m.store.Save(state); err != nil {
			logger.Get().Warnw("failed to persist session", "error", err.Error())
		}
	}
}

func (m *Manager) setError(err error) {
	m.mu.Lock()
	m.lastError = err.Error()
	m.mu.Unlock()
}

// postAuth posts JSON to an auth endpoint and decodes an AuthResponse.
func (m *Manager) postAuth(ctx context.Context, path string, payload any) (*AuthResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	data, status, err := m.roundTrip(ctx, path, body)
	if err != nil {
		return nil, err
	}
	if status >= http.StatusBadRequest {
		return nil, apperrors.FromResponse(status, data)
	}

	var resp AuthResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &resp, nil
}

func (m *Manager) roundTrip(ctx context.Context, path string, body []byte) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.hc.Do(req)
	if err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrNetwork, err)
	}
	return data, resp.StatusCode, nil
}

// isTwoFactorSignal recognizes the server's two-factor-required error, by
// code for the structured envelope and by message for older flat envelopes.
func isTwoFactorSignal(err error) bool {
	if errors.Is(err, apperrors.ErrTwoFactorRequired) {
		return true
	}
	var appErr *apperrors.AppError
	return errors.As(err, &appErr) && appErr.Message == apperrors.ErrTwoFactorRequired.Message
}
