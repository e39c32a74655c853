package ircode

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyCode     = errors.New("empty code")
	ErrOutOfRange    = errors.New("code exceeds 24 bits")
	ErrDuplicateKey  = errors.New("key defined more than once")
	ErrDuplicateCode = errors.New("code bound to more than one key")
	ErrNotComplement = errors.New("command and inverted command bytes disagree")
)

// Problem is a single integrity finding in a table.
type Problem struct {
	Err  error
	Key  Key
	Code Code
	// Other is the key that already holds Code for duplicate codes, or the
	// first declaration's code for duplicate keys.
	Other string
}

func (p Problem) Error() string {
	switch {
	case errors.Is(p.Err, ErrDuplicateCode):
		return fmt.Sprintf("%s: %s %s also bound to %s", p.Err, p.Key, p.Code, p.Other)
	case errors.Is(p.Err, ErrDuplicateKey):
		return fmt.Sprintf("%s: %s first bound to %s, again to %s", p.Err, p.Key, p.Other, p.Code)
	default:
		return fmt.Sprintf("%s: %s %s", p.Err, p.Key, p.Code)
	}
}

func (p Problem) Unwrap() error {
	return p.Err
}

// ValidationError collects every problem found in one table.
type ValidationError struct {
	Table    string
	Problems []Problem
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.Error()
	}
	return fmt.Sprintf("table %s: %d problem(s): %s", e.Table, len(e.Problems), strings.Join(msgs, "; "))
}

// Unwrap exposes the individual problems to errors.Is and errors.As.
func (e *ValidationError) Unwrap() []error {
	errs := make([]error, len(e.Problems))
	for i, p := range e.Problems {
		errs[i] = p
	}
	return errs
}
