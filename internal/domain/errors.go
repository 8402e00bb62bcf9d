package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidOffset      = errors.New("invalid time offset")
	ErrInvalidTransition  = errors.New("invalid transition")
	ErrInvalidValue       = errors.New("invalid value")
	ErrLogNotFound        = errors.New("arrest log not found")
	ErrPersistence        = errors.New("failed to persist arrest log")
	ErrUnknownAgeCategory = errors.New("unknown age category")
	ErrUnknownCause       = errors.New("unknown reversible cause")
)

// TransitionError is returned when an operation is invoked outside its valid phases
type TransitionError struct {
	Mode      InteractionMode
	Operation string
	Phase     ArrestPhase
}

func (e *TransitionError) Error() string {
	if e.Phase == PhaseActive {
		return fmt.Sprintf("%s not allowed in phase %s (mode %s)", e.Operation, e.Phase, e.Mode)
	}
	return fmt.Sprintf("%s not allowed in phase %s", e.Operation, e.Phase)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// PersistenceError reports a failed save. It is a warning: the snapshot is kept for retry.
type PersistenceError struct {
	Err   error
	LogID string
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to save arrest log %s: %v", e.LogID, e.Err)
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
