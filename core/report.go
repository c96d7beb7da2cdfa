package core

import (
	"fmt"
	"strings"
)

type DeletionStatus int

const (
	DeletionSucceeded DeletionStatus = iota
	DeletionPartiallySucceeded
	DeletionFailedBeforeStart
)

func (s DeletionStatus) String() string {
	switch s {
	case DeletionSucceeded:
		return "succeeded"
	case DeletionPartiallySucceeded:
		return "partially succeeded"
	case DeletionFailedBeforeStart:
		return "failed before start"
	default:
		return "unknown"
	}
}

// OperationFailure is one failed sub-operation of a multi-document operation.
type OperationFailure struct {
	Phase string
	Path  string
	Err   error
}

func (f OperationFailure) Error() string {
	return fmt.Sprintf("%s %s: %v", f.Phase, f.Path, f.Err)
}

func (f OperationFailure) Unwrap() error {
	return f.Err
}

// DeletionReport is the single result of a cascading deletion.
type DeletionReport struct {
	Status   DeletionStatus
	Detached []string
	Deleted  []string
	Failures []OperationFailure
}

// Err returns nil on full success and a *DeletionError otherwise.
func (r DeletionReport) Err() error {
	if r.Status == DeletionSucceeded {
		return nil
	}
	return &DeletionError{Status: r.Status, Failures: r.Failures}
}

// DeletionError aggregates every sub-operation failure. errors.Is and errors.As look through
// all of them.
type DeletionError struct {
	Status   DeletionStatus
	Failures []OperationFailure
}

func (e *DeletionError) Error() string {
	if len(e.Failures) == 0 {
		return "deletion " + e.Status.String()
	}
	messages := make([]string, 0, len(e.Failures))
	for _, failure := range e.Failures {
		messages = append(messages, failure.Error())
	}
	return fmt.Sprintf("deletion %s (%d failures): %s", e.Status.String(), len(e.Failures), strings.Join(messages, "; "))
}

func (e *DeletionError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, failure := range e.Failures {
		errs = append(errs, failure)
	}
	return errs
}
