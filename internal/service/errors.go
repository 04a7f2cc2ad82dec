package service

import (
	"errors"
	"fmt"

	"github.com/five82/spaggo/internal/portal"
)

// ErrReloginLimit is returned when the portal keeps rejecting the session token
// after the configured number of re-logins.
var ErrReloginLimit = errors.New("session token still expired after re-login")

// LoginRejectedError reports credentials refused by the portal.
type LoginRejectedError struct {
	StatusCode int
	Info       string
	Message    string
}

func (e *LoginRejectedError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Info
	}
	return fmt.Sprintf("login failed: %s", msg)
}

// APIError is the notice a data endpoint still returned after the allowed
// re-logins. It unwraps to ErrReloginLimit.
type APIError struct {
	Path       string
	StatusCode int
	Err        string
	Message    string
	Relogins   int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("portal %s returned %d %s: %s (after %d re-logins)", e.Path, e.StatusCode, e.Err, e.Message, e.Relogins)
}

func (e *APIError) Unwrap() error {
	return ErrReloginLimit
}

// UnexpectedResponseError carries a body that did not classify as the variant
// the call site expects. Raw is kept for diagnostics.
type UnexpectedResponseError struct {
	Path string
	Want portal.Kind
	Got  portal.Kind
	Raw  []byte
	Err  error
}

func (e *UnexpectedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %s response from %s: %v: %s", e.Want, e.Path, e.Err, e.Raw)
	}
	return fmt.Sprintf("unexpected %s response from %s (want %s): %s", e.Got, e.Path, e.Want, e.Raw)
}

func (e *UnexpectedResponseError) Unwrap() error {
	return e.Err
}
