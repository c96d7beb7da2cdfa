package core

import (
	"github.com/pkg/errors"
)

type ErrorNotFound struct {
}

func (e ErrorNotFound) Error() string {
	return "Not Found"
}

func NewErrorNotFound() ErrorNotFound {
	return ErrorNotFound{}
}

type ErrorPermissionDenied struct {
}

func (e ErrorPermissionDenied) Error() string {
	return "Permission Denied"
}

func NewErrorPermissionDenied() ErrorPermissionDenied {
	return ErrorPermissionDenied{}
}

// ErrorNetworkFailure is transient. Re-invoking the same operation may succeed.
type ErrorNetworkFailure struct {
}

func (e ErrorNetworkFailure) Error() string {
	return "Network Failure"
}

func NewErrorNetworkFailure() ErrorNetworkFailure {
	return ErrorNetworkFailure{}
}

// ErrorValidation reports malformed local input, detected before anything is written.
type ErrorValidation struct {
	Reason string
}

func (e ErrorValidation) Error() string {
	if e.Reason == "" {
		return "Validation Failure"
	}
	return "Validation Failure: " + e.Reason
}

// Is matches any ErrorValidation regardless of reason.
func (e ErrorValidation) Is(target error) bool {
	_, ok := target.(ErrorValidation)
	return ok
}

func NewErrorValidation(reason string) ErrorValidation {
	return ErrorValidation{Reason: reason}
}

// IsRetryable reports whether err is worth retrying as is.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrorNetworkFailure{})
}

// IsTerminal reports whether err should be surfaced to the user without a retry.
func IsTerminal(err error) bool {
	return errors.Is(err, ErrorNotFound{}) ||
		errors.Is(err, ErrorPermissionDenied{}) ||
		errors.Is(err, ErrorValidation{})
}
