package slip

import (
	"errors"
	"fmt"
	"strings"
)

var ErrNotFound = errors.New("slip not found")

// ValidationError lists every constraint a write violated. Nothing is persisted.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "invalid slip: " + strings.Join(e.Violations, "; ")
}

type NotFoundError struct {
	ID uint
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("slip %d not found", e.ID) }

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
