package services

import (
	"errors"
	"fmt"
)

var (
	// ErrAPIHostNotConfigured is returned when a lead is submitted without a CRM host.
	ErrAPIHostNotConfigured = errors.New("API host is not configured")
	// ErrSubmissionInFlight rejects a submit while another one is pending.
	ErrSubmissionInFlight = errors.New("submission already in progress")
	// ErrValidationFailed means the form has field errors and nothing was sent.
	ErrValidationFailed = errors.New("form validation failed")
	// ErrFormClosed is returned by operations on a torn-down form.
	ErrFormClosed = errors.New("form is closed")
	// ErrTrackingDisabled is reported when no tracking client id is configured.
	ErrTrackingDisabled = errors.New("click tracking is disabled")
	// ErrNoAddress is returned when a provider response carries no usable IP address.
	ErrNoAddress = errors.New("no valid IP address in response")
)

// RemoteError is a rejection reported by the CRM, either through a non-2xx
// status or an explicit status:false body.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("remote rejected submission (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("remote rejected submission (status %d)", e.StatusCode)
}
