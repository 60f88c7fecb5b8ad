package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// errorEnvelope covers the two error shapes seen on the wire: the structured
// {"error":{"code","message"}} envelope and the flat {"error":"..."} form
// older backends return.
type errorEnvelope struct {
	Error json.RawMessage `json:"error"`
}

// FromResponse converts a non-2xx HTTP response body into an AppError.
// Unparseable bodies still produce an AppError carrying the status code.
func FromResponse(statusCode int, body []byte) *AppError {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && len(env.Error) > 0 {
		var detail struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(env.Error, &detail); err == nil && detail.Code != "" {
			return &AppError{Code: detail.Code, Message: detail.Message, StatusCode: statusCode}
		}

		var message string
		if err := json.Unmarshal(env.Error, &message); err == nil && message != "" {
			return &AppError{Code: codeForStatus(statusCode), Message: message, StatusCode: statusCode}
		}
	}

	return &AppError{
		Code:       codeForStatus(statusCode),
		Message:    fmt.Sprintf("Error: %d %s", statusCode, http.StatusText(statusCode)),
		StatusCode: statusCode,
	}
}

func codeForStatus(statusCode int) string {
	switch statusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized.Code
	case http.StatusForbidden:
		return ErrForbidden.Code
	case http.StatusNotFound:
		return ErrNotFound.Code
	case http.StatusBadRequest:
		return ErrInvalidInput.Code
	default:
		return ErrInternalServer.Code
	}
}
