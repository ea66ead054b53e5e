package domain

import (
	"errors"
	"fmt"
	"time"
)

// Sentinels matched by errors.Is against the typed errors below.
var (
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
	ErrInvalidRange = errors.New("invalid range")
	ErrValidation   = errors.New("validation failed")
)

// ConflictError is returned when clocking in to an activity that already has
// an open session.
type ConflictError struct {
	Activity  string
	OpenSince time.Time
}

func (e *ConflictError) Error() string {
	if e.OpenSince.IsZero() {
		return fmt.Sprintf("activity %q already has an open session; clock out first", e.Activity)
	}
	return fmt.Sprintf("activity %q already has an open session since %s; clock out first",
		e.Activity, e.OpenSince.Local().Format("2006-01-02 15:04:05"))
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// NotFoundError is returned when no open session (or no record) matches.
type NotFoundError struct {
	Activity string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("session %s not found", e.ID)
	}
	return fmt.Sprintf("no active clock-in found for %s", e.Activity)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// InvalidRangeError is returned for malformed or inverted date ranges.
type InvalidRangeError struct {
	Input  string
	Reason string
}

func (e *InvalidRangeError) Error() string {
	if e.Input == "" {
		return "invalid date range: " + e.Reason
	}
	return fmt.Sprintf("invalid date range %q: %s", e.Input, e.Reason)
}

func (e *InvalidRangeError) Is(target error) bool { return target == ErrInvalidRange }

// ValidationError is returned when a required field is missing or malformed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
