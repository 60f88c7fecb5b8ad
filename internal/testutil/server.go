package testutil

import (
	"fmt"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"pennywise/internal/api"
	"pennywise/internal/config"
	"pennywise/internal/devserver"
	"pennywise/internal/devserver/store"
	"pennywise/internal/session"
)

var dbSeq atomic.Int64

// StartServer boots a seeded dev server on an isolated in-memory database
// and returns its base URL.
func StartServer(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// A unique shared-cache DSN keeps each test on its own database.
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSeq.Add(1))
	s, err := store.Open(dsn)
	AssertNoError(t, err)
	AssertNoError(t, s.Seed())

	srv := httptest.NewServer(devserver.New(s).Handler())
	t.Cleanup(srv.Close)
	return srv.URL
}

// NewClient wires an SDK client with an in-memory session against baseURL.
func NewClient(t *testing.T, baseURL string) *api.Client {
	t.Helper()

	cfg := &config.Config{
		APIBaseURL:   baseURL,
		AnalyticsURL: baseURL,
		HTTPTimeout:  5 * time.Second,
	}
	m := session.NewManager(baseURL, nil, session.NewMemoryStore())
	return api.New(cfg, m)
}
