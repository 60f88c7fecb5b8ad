package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"pennywise/internal/casing"
	apperrors "pennywise/internal/errors"
)

// AnalyticsService calls the separate analytics backend. Analytics requests
// carry the analytics token rather than the access token, go straight to the
// analytics base URL, and never participate in the refresh cycle. Responses
// are untyped documents returned with camelCase keys.
type AnalyticsService struct {
	c *Client
}

func (s *AnalyticsService) Overview(ctx context.Context) (map[string]any, error) {
	return s.get(ctx, "/api/analytics/overview")
}

func (s *AnalyticsService) Insights(ctx context.Context) (map[string]any, error) {
	return s.get(ctx, "/api/analytics/insights")
}

func (s *AnalyticsService) get(ctx context.Context, path string) (map[string]any, error) {
	token := s.c.session.AnalyticsToken()
	if token == "" {
		return nil, apperrors.ErrUnauthorized
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.c.analyticsURL+path, nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.c.plain.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrNetwork, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, apperrors.FromResponse(resp.StatusCode, data)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	camel, ok := casing.KeysToCamel(doc).(map[string]any)
	if !ok {
		return nil, apperrors.WithMessage(apperrors.ErrInternalServer, "unexpected response shape")
	}
	return camel, nil
}
