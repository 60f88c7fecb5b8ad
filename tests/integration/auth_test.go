package integration

import (
	"context"
	"errors"
	"testing"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/prefs"
	"pennywise/internal/session"
	"pennywise/internal/testutil"
)

func TestLoginWithSeededDemoUser(t *testing.T) {
	client := setup(t)
	loginDemo(t, client)

	m := client.Session()
	if !m.Authenticated() {
		t.Fatal("session not authenticated after login")
	}
	if m.AccessToken() == "" || m.AnalyticsToken() == "" {
		t.Error("expected both access and analytics tokens")
	}
	if m.User().Username != "demo" {
		t.Errorf("user = %q, want demo", m.User().Username)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	client := setup(t)

	err := client.Session().Login(context.Background(), "demo", "wrong-password")
	testutil.AssertAppError(t, err, apperrors.ErrInvalidCredentials.Code)
	if client.Session().Authenticated() {
		t.Error("session authenticated after failed login")
	}
	if client.Session().LastError() == "" {
		t.Error("expected LastError to be set")
	}
}

func TestTwoFactorLoginFlow(t *testing.T) {
	client := setup(t)
	ctx := context.Background()
	m := client.Session()

	err := m.Login(ctx, "demo2fa", "password123")
	if !errors.Is(err, apperrors.ErrTwoFactorRequired) {
		t.Fatalf("expected two-factor challenge, got %v", err)
	}
	if pending, username := m.PendingTwoFactor(); !pending || username != "demo2fa" {
		t.Fatalf("pending = %v/%q, want true/demo2fa", pending, username)
	}

	// A wrong code keeps the pending state for a retry.
	err = m.VerifyTwoFactor(ctx, "demo2fa", "000000")
	testutil.AssertAppError(t, err, apperrors.ErrInvalidTwoFactor.Code)
	if pending, _ := m.PendingTwoFactor(); !pending {
		t.Fatal("pending state lost after wrong code")
	}

	testutil.AssertNoError(t, m.VerifyTwoFactor(ctx, "demo2fa", "123456"))
	if !m.Authenticated() {
		t.Fatal("session not authenticated after 2FA verification")
	}
}

func TestRefreshRotatesTokenPair(t *testing.T) {
	client := setup(t)
	loginDemo(t, client)
	m := client.Session()

	before := m.AccessToken()
	if !m.RefreshSession(context.Background()) {
		t.Fatal("refresh failed")
	}
	if m.AccessToken() == before {
		t.Error("access token not rotated")
	}

	// The rotated pair still works against the API.
	if _, err := client.Profile.Get(context.Background()); err != nil {
		t.Fatalf("profile fetch after refresh: %v", err)
	}
}

func TestProfileReachableWhenAuthenticated(t *testing.T) {
	client := setup(t)
	loginDemo(t, client)

	user, err := client.Profile.Get(context.Background())
	testutil.AssertNoError(t, err)
	if user.Username != "demo" {
		t.Errorf("username = %q, want demo", user.Username)
	}

	doc, err := client.Profile.Fetch(context.Background())
	testutil.AssertNoError(t, err)
	if doc["username"] != "demo" {
		t.Errorf("document username = %v, want demo", doc["username"])
	}
}

func TestRegisterDoesNotAuthenticate(t *testing.T) {
	client := setup(t)

	user, err := client.Session().Register(context.Background(), session.RegisterRequest{
		Username: "newuser",
		Email:    "newuser@test.local",
		Password: "password123",
	})
	testutil.AssertNoError(t, err)
	if user.Username != "newuser" {
		t.Errorf("username = %q, want newuser", user.Username)
	}
	if client.Session().Authenticated() {
		t.Error("register must not authenticate the session")
	}
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	client := setup(t)

	_, err := client.Session().Register(context.Background(), session.RegisterRequest{
		Username: "demo",
		Email:    "other@test.local",
		Password: "password123",
	})
	testutil.AssertAppError(t, err, apperrors.ErrDuplicateUsername.Code)
}

func TestProfilePreferencesRoundTrip(t *testing.T) {
	client := setup(t)
	loginDemo(t, client)
	ctx := context.Background()

	store := prefs.NewStore(client.Profile)
	testutil.AssertNoError(t, store.Load(ctx))
	if got := store.Get().Currency; got != "USD" {
		t.Fatalf("seed currency = %q, want USD", got)
	}

	currency := "EUR"
	dateFormat := "DD.MM.YYYY"
	testutil.AssertNoError(t, store.Set(ctx, prefs.Update{
		Currency:   &currency,
		DateFormat: &dateFormat,
	}))

	// A fresh store sees the persisted values.
	fresh := prefs.NewStore(client.Profile)
	testutil.AssertNoError(t, fresh.Load(ctx))
	if got := fresh.Get(); got.Currency != "EUR" || got.DateFormat != "DD.MM.YYYY" {
		t.Errorf("persisted prefs = %+v", got)
	}
}

func TestProfileUpdateRejectsUnknownCurrency(t *testing.T) {
	client := setup(t)
	loginDemo(t, client)

	store := prefs.NewStore(client.Profile)
	testutil.AssertNoError(t, store.Load(context.Background()))

	bogus := "ZZZ"
	err := store.Set(context.Background(), prefs.Update{Currency: &bogus})
	if err == nil {
		t.Fatal("expected the server to reject an unsupported currency")
	}
	// The optimistic value must have been rolled back.
	if got := store.Get().Currency; got != "USD" {
		t.Errorf("currency after rejected update = %q, want USD", got)
	}
}
