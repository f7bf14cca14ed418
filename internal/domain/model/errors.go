package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNoMatch is returned when no dataset record carries the requested code.
	ErrNoMatch = errors.New("no matching entry found for the provided code")

	// ErrUnrecognizedPosition is returned when a record's position is outside
	// the known podium positions.
	ErrUnrecognizedPosition = errors.New("unrecognized certificate position")

	// ErrEventNotFound is returned when a path names no known event.
	ErrEventNotFound = errors.New("event not found")
)

// FetchError reports that an event dataset could not be retrieved.
type FetchError struct {
	Event  string
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch dataset for %s from %s: %v", e.Event, e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports that an event dataset is not a well-formed list of records.
type ParseError struct {
	Event  string
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse dataset for %s from %s: %v", e.Event, e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
