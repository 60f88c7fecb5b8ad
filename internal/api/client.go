// Package api provides the typed REST client for the Pennywise backend.
// Requests go through the session transport, so protected calls carry the
// bearer token and get the single 401 refresh-and-retry. Untyped payloads
// cross the boundary through the key-casing transform: outgoing camelCase
// keys become snake_case, incoming snake_case becomes camelCase.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"

	"pennywise/internal/casing"
	"pennywise/internal/config"
	apperrors "pennywise/internal/errors"
	"pennywise/internal/session"
	pwvalidator "pennywise/internal/validator"
)

// Client is the entry point to the backend API.
type Client struct {
	baseURL      string
	analyticsURL string
	hc           *http.Client
	plain        *http.Client
	session      *session.Manager
	validate     *validator.Validate

	Accounts      *AccountsService
	Transactions  *TransactionsService
	Budgets       *BudgetsService
	Goals         *GoalsService
	Recurring     *RecurringService
	Notifications *NotificationsService
	Profile       *ProfileService
	Analytics     *AnalyticsService
}

// New creates a Client bound to a session manager. All non-auth requests are
// routed through the session transport.
func New(cfg *config.Config, m *session.Manager) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(cfg.APIBaseURL, "/"),
		analyticsURL: strings.TrimRight(cfg.AnalyticsURL, "/"),
		hc: &http.Client{
			Timeout:   cfg.HTTPTimeout,
			Transport: &session.Transport{Manager: m},
		},
		plain:    &http.Client{Timeout: cfg.HTTPTimeout},
		session:  m,
		validate: pwvalidator.New(),
	}

	c.Accounts = &AccountsService{c: c}
	c.Transactions = &TransactionsService{c: c}
	c.Budgets = &BudgetsService{c: c}
	c.Goals = &GoalsService{c: c}
	c.Recurring = &RecurringService{c: c}
	c.Notifications = &NotificationsService{c: c}
	c.Profile = &ProfileService{c: c}
	c.Analytics = &AnalyticsService{c: c}
	return c
}

// Session returns the session manager backing this client.
func (c *Client) Session() *session.Manager {
	return c.session
}

// Health checks the backend health endpoint.
func (c *Client) Health(ctx context.Context) error {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return err
	}
	if resp.Status != "ok" {
		return apperrors.WithMessage(apperrors.ErrInternalServer, fmt.Sprintf("unexpected health status %q", resp.Status))
	}
	return nil
}

// do performs a JSON request against the backend API. Map- and slice-typed
// bodies are rewritten camelCase→snake_case before marshaling; typed structs
// already carry snake_case tags.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		switch body.(type) {
		case map[string]any, []any:
			body = casing.KeysToSnake(body)
		}
		data, err := json.Marshal(body)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrNetwork, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return apperrors.FromResponse(resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return nil
}

// getDynamic fetches a JSON document and returns it with camelCase keys.
func (c *Client) getDynamic(ctx context.Context, path string) (map[string]any, error) {
	var doc any
	if err := c.do(ctx, http.MethodGet, path, nil, &doc); err != nil {
		return nil, err
	}
	camel, ok := casing.KeysToCamel(doc).(map[string]any)
	if !ok {
		return nil, apperrors.WithMessage(apperrors.ErrInternalServer, "unexpected response shape")
	}
	return camel, nil
}

// putDynamic sends a camelCase document, converting keys to snake_case.
func (c *Client) putDynamic(ctx context.Context, path string, doc map[string]any) error {
	return c.do(ctx, http.MethodPut, path, map[string]any(doc), nil)
}

// validateReq runs client-side validation, converting failures into a
// user-facing validation error before anything reaches the wire.
func (c *Client) validateReq(req any) error {
	if err := c.validate.Struct(req); err != nil {
		return apperrors.WithMessage(apperrors.ErrValidation, err.Error())
	}
	return nil
}

// query builds a query string from non-empty values.
func query(params map[string]string) string {
	values := url.Values{}
	for k, v := range params {
		if v != "" {
			values.Set(k, v)
		}
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}
