package devserver

import (
	"time"

	"github.com/robfig/cron/v3"

	"pennywise/internal/devserver/store"
	"pennywise/internal/logger"
)

// Materializer periodically turns due recurring transaction templates into
// real transactions.
type Materializer struct {
	store *store.Store
	cron  *cron.Cron
}

// NewMaterializer creates a materializer that runs every minute.
func NewMaterializer(s *store.Store) *Materializer {
	m := &Materializer{
		store: s,
		cron:  cron.New(),
	}
	_, err := m.cron.AddFunc("@every 1m", m.runOnce)
	if err != nil {
		// The schedule expression is a constant; this cannot happen at runtime.
		panic(err)
	}
	return m
}

// Start begins the background schedule and runs one catch-up pass
// immediately.
func (m *Materializer) Start() {
	m.runOnce()
	m.cron.Start()
}

// Stop halts the schedule, waiting for a running pass to finish.
func (m *Materializer) Stop() {
	<-m.cron.Stop().Done()
}

func (m *Materializer) runOnce() {
	created, err := m.store.MaterializeDue(time.Now())
	if err != nil {
		logger.Get().Warnw("recurring materialization pass failed", "error", err.Error())
		return
	}
	if created > 0 {
		logger.Get().Infow("materialized recurring transactions", "created", created)
	}
}
