// SPDX-License-Identifier: Apache-2.0

package history

import (
	"errors"
	"fmt"
)

var (
	ErrParse      = errors.New("malformed benchmark data")
	ErrValidation = errors.New("invalid benchmark entry")

	ErrUnknownFormat = errors.New("unknown output format")
)

// ParseError is returned when persisted benchmark data cannot be read.
type ParseError struct {
	// Offset is the byte offset in the input at which the problem was
	// detected, or -1 when it is not known.
	Offset int64
	Err    error
}

func (e *ParseError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("parsing benchmark data at offset %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("parsing benchmark data: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ValidationError is returned when an entry is rejected by Append.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid entry: %s %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

type GroupNotFoundError struct {
	Name string
}

func (e GroupNotFoundError) Error() string {
	return fmt.Sprintf("benchmark group %q does not exist", e.Name)
}

type NotEnoughEntriesError struct {
	Group string
	Want  int
	Got   int
}

func (e NotEnoughEntriesError) Error() string {
	return fmt.Sprintf("benchmark group %q has %d entries, need at least %d", e.Group, e.Got, e.Want)
}
