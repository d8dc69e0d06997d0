package chat

import (
	"errors"
	"net/http"

	"github.com/rotisserie/eris"
)

// Relay failure taxonomy. The messages are safe to show to end users.
var (
	ErrRateLimited     = eris.New("Rate limit exceeded. Please try again later.")
	ErrPaymentRequired = eris.New("Payment required. Please add credits to continue.")
	ErrUpstream        = eris.New("AI service unavailable")
	ErrInvalidRequest  = eris.New("invalid chat request")
)

// ErrorForStatus maps a non-2xx upstream status onto the taxonomy.
func ErrorForStatus(status int) error {
	switch status {
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusPaymentRequired:
		return ErrPaymentRequired
	default:
		return ErrUpstream
	}
}

// HTTPStatus returns the response status and public message for a relay
// error. Anything outside the taxonomy is reported as ErrUpstream.
func HTTPStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, ErrRateLimited.Error()
	case errors.Is(err, ErrPaymentRequired):
		return http.StatusPaymentRequired, ErrPaymentRequired.Error()
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, ErrUpstream.Error()
	}
}

// upstream tags err as an upstream failure, keeping its text for logs.
func upstream(err error, op string) error {
	return eris.Wrapf(ErrUpstream, "chat: %s: %v", op, err)
}
