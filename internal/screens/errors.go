package screens

import (
	"errors"
	"fmt"

	"github.com/zscreen/zscreen/internal/urls"
)

// Error kinds for screen reconciliation operations

// ErrorKind represents the category of error that occurred
type ErrorKind int

const (
	// ErrKindConfig indicates an invalid screen definition (bad state, missing fields)
	ErrKindConfig ErrorKind = iota
	// ErrKindNotFound indicates a referenced remote object does not exist (host group, host)
	ErrKindNotFound
	// ErrKindRemote indicates a failed Zabbix API call
	ErrKindRemote
	// ErrKindUnsupportedVersion indicates the server no longer supports the screen API
	ErrKindUnsupportedVersion
)

// String returns a human-readable name for the error kind
func (k ErrorKind) String() string {
	switch k {
	case ErrKindConfig:
		return "Configuration Error"
	case ErrKindNotFound:
		return "Not Found"
	case ErrKindRemote:
		return "Remote API Error"
	case ErrKindUnsupportedVersion:
		return "Unsupported Version"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// ScreenError represents an error that occurred while reconciling a screen
type ScreenError struct {
	Kind    ErrorKind // Category of error
	Op      string    // Zabbix API method that failed (remote errors)
	Target  string    // Screen, host group, or host name the error relates to
	Message string    // Human-readable error message
	Err     error     // Underlying error (if any)
}

// Error implements the error interface
func (e *ScreenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *ScreenError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a screen definition error
func NewConfigError(message string) *ScreenError {
	return &ScreenError{
		Kind:    ErrKindConfig,
		Message: message,
	}
}

// NewNotFoundError creates an error for a missing remote object
func NewNotFoundError(target, message string) *ScreenError {
	return &ScreenError{
		Kind:    ErrKindNotFound,
		Target:  target,
		Message: message,
	}
}

// NewRemoteError creates an error wrapping a failed API call
func NewRemoteError(op, target string, err error) *ScreenError {
	return &ScreenError{
		Kind:    ErrKindRemote,
		Op:      op,
		Target:  target,
		Message: fmt.Sprintf("%s failed for %q", op, target),
		Err:     err,
	}
}

// NewUnsupportedVersionError creates an error for servers past the screen API removal
func NewUnsupportedVersionError(serverVersion string) *ScreenError {
	return &ScreenError{
		Kind:    ErrKindUnsupportedVersion,
		Target:  serverVersion,
		Message: fmt.Sprintf("Zabbix %s does not support screens (removed in 5.4), see %s", serverVersion, urls.APIChanges54),
	}
}

// IsConfigError checks if an error is a screen definition error
func IsConfigError(err error) bool {
	var serr *ScreenError
	return errors.As(err, &serr) && serr.Kind == ErrKindConfig
}

// IsNotFoundError checks if an error reports a missing remote object
func IsNotFoundError(err error) bool {
	var serr *ScreenError
	return errors.As(err, &serr) && serr.Kind == ErrKindNotFound
}

// IsRemoteError checks if an error wraps a failed API call
func IsRemoteError(err error) bool {
	var serr *ScreenError
	return errors.As(err, &serr) && serr.Kind == ErrKindRemote
}

// IsUnsupportedVersionError checks if an error reports a server past the screen API removal
func IsUnsupportedVersionError(err error) bool {
	var serr *ScreenError
	return errors.As(err, &serr) && serr.Kind == ErrKindUnsupportedVersion
}
