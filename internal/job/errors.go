package job

import (
	"errors"
	"fmt"
)

// panicError: a worker thread terminated abnormally. Surfaced from Join
// instead of propagating the panic or hanging.
type panicError struct {
	routine string
	value   any
}

func (e panicError) Error() string {
	return fmt.Sprintf("routine %s: worker panicked: %v", e.routine, e.value)
}

// IsPanicked reports whether err indicates an abnormally terminated worker.
func IsPanicked(err error) bool {
	var e panicError
	return errors.As(err, &e)
}
