package render

import "fmt"

// Error reports a record that could not be laid out. Index is -1 when the
// failure is not tied to one record.
type Error struct {
	Index          int
	DocumentNumber string
	Err            error
}

func (e *Error) Error() string {
	if e.Index < 0 {
		return "render: " + e.Err.Error()
	}
	return fmt.Sprintf("render record %d (%s): %v", e.Index, e.DocumentNumber, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
