package domain

import "errors"

// ErrDataSourceUnavailable is returned when the character table cannot be opened or read.
var ErrDataSourceUnavailable = errors.New("data source unavailable")

// ErrMissingNameColumn is returned when the table has no character name column.
var ErrMissingNameColumn = errors.New("missing name column")

// ErrNoUsableTraits is returned when no numeric trait column survives coercion.
var ErrNoUsableTraits = errors.New("no usable numeric traits")

// ErrMalformedTree is returned when the decision tree cannot ask even one question.
var ErrMalformedTree = errors.New("malformed decision tree")

// ErrInvalidInput is returned when an answer is not one of the recognised phrases.
// It is always recovered locally with a clarifying prompt.
var ErrInvalidInput = errors.New("invalid input")

// ErrNoActiveSession is returned when an operation needs a running game and there is none.
var ErrNoActiveSession = errors.New("no active session")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")
