package session

import (
	"io"
	"net/http"
)

// Transport is an http.RoundTripper that injects the bearer token into every
// request and, on a 401 response, refreshes the session and replays the
// request exactly once with the new token.
//
// Auth endpoints bypass the transport's logic entirely: a failing login or
// refresh must never trigger another refresh.
type Transport struct {
	Manager *Manager

	// Base is the underlying transport; http.DefaultTransport when nil.
	Base http.RoundTripper
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if IsAuthEndpoint(req.URL.Path) {
		return t.base().RoundTrip(req)
	}

	attempt := req.Clone(req.Context())
	if token := t.Manager.AccessToken(); token != "" {
		attempt.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.base().RoundTrip(attempt)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	// A request with a non-rewindable body cannot be replayed.
	if req.Body != nil && req.GetBody == nil {
		return resp, nil
	}

	switch t.Manager.refresh(req.Context()) {
	case refreshOK:
		drain(resp)
		retry := req.Clone(req.Context())
		if req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, err
			}
			retry.Body = body
		}
		retry.Header.Set("Authorization", "Bearer "+t.Manager.AccessToken())
		return t.base().RoundTrip(retry)

	case refreshInFlight:
		// Another refresh is outstanding; its outcome is unknown here, so
		// the original 401 propagates and the caller re-checks the session.
		return resp, nil

	default:
		t.Manager.Logout()
		return resp, nil
	}
}

// drain consumes and closes a response body so the connection can be reused.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
}
