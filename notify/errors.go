/*
errors.go - Notification failure taxonomy

Each failure mode gets a distinct, human-readable cause so the operator can
tell a missing template from a rejected login from a half-configured
transport. They are never conflated into a generic delivery failure.
*/
package notify

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrTemplateMissing is returned when the email template file cannot
	// be read.
	ErrTemplateMissing = errors.New("email template missing")

	// ErrAuthFailed is returned when the mail server rejects the login.
	ErrAuthFailed = errors.New("email authentication failed")

	// ErrTransportSetup is returned when the transport configuration is
	// incomplete (missing host, port or credentials).
	ErrTransportSetup = errors.New("email transport setup incomplete")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// TemplateError reports where the template was expected.
type TemplateError struct {
	Path string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("email template not found at %s", e.Path)
}

func (e *TemplateError) Unwrap() error { return ErrTemplateMissing }

// DeliveryError reports a failed send to one recipient.
type DeliveryError struct {
	Recipient string
	Cause     error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery to %s: %v", e.Recipient, e.Cause)
}

func (e *DeliveryError) Unwrap() error { return e.Cause }
