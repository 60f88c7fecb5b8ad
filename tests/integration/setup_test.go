package integration

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"pennywise/internal/api"
	"pennywise/internal/session"
	"pennywise/internal/testutil"
)

var userSeq atomic.Int64

// setup boots a seeded dev server and returns an SDK client wired to it.
func setup(t *testing.T) *api.Client {
	t.Helper()
	baseURL := testutil.StartServer(t)
	return testutil.NewClient(t, baseURL)
}

// loginDemo authenticates the client as the seeded demo user.
func loginDemo(t *testing.T, client *api.Client) {
	t.Helper()
	testutil.AssertNoError(t, client.Session().Login(context.Background(), "demo", "password123"))
}

// registerAndLogin creates a fresh user with no seed data and logs in.
func registerAndLogin(t *testing.T, client *api.Client) {
	t.Helper()
	ctx := context.Background()

	n := userSeq.Add(1)
	username := fmt.Sprintf("flow%d", n)
	_, err := client.Session().Register(ctx, session.RegisterRequest{
		Username: username,
		Email:    fmt.Sprintf("%s@test.local", username),
		Password: "password123",
	})
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, client.Session().Login(ctx, username, "password123"))
}
