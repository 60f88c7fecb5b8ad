package devserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pennywise/internal/devserver/store"
)

// AnalyticsHandler serves the aggregate endpoints the analytics backend
// would in production. The dev server mounts them on the same port so a
// default config points both base URLs at one process.
type AnalyticsHandler struct {
	store *store.Store
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(s *store.Store) *AnalyticsHandler {
	return &AnalyticsHandler{store: s}
}

// GetOverview returns the current month's headline aggregates.
func (h *AnalyticsHandler) GetOverview(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	overview, err := h.store.GetAnalyticsOverview(userID, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// GetInsights returns derived spending observations.
func (h *AnalyticsHandler) GetInsights(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	insights, err := h.store.GetAnalyticsInsights(userID, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, insights)
}
