package routine

import (
	"errors"
	"fmt"
)

// paramError: a declared parameter could not be resolved; the handler body
// was never called.
type paramError struct {
	routine string
	param   string
	err     error
}

func (e paramError) Error() string {
	return fmt.Sprintf("routine %s: resolve param %s: %v", e.routine, e.param, e.err)
}

func (e paramError) Unwrap() error { return e.err }

// IsParamRetrieval reports whether err came from parameter resolution.
func IsParamRetrieval(err error) bool {
	var e paramError
	return errors.As(err, &e)
}

// handlerError: the handler itself returned failure.
type handlerError struct {
	routine string
	err     error
}

func (e handlerError) Error() string {
	return fmt.Sprintf("routine %s: handler: %v", e.routine, e.err)
}

func (e handlerError) Unwrap() error { return e.err }

// IsHandlerFailure reports whether err came from the handler body.
func IsHandlerFailure(err error) bool {
	var e handlerError
	return errors.As(err, &e)
}

// outputError: the handler succeeded but applying its result to the
// context failed.
type outputError struct {
	routine string
	err     error
}

func (e outputError) Error() string {
	return fmt.Sprintf("routine %s: apply output: %v", e.routine, e.err)
}

func (e outputError) Unwrap() error { return e.err }

// IsOutputApplication reports whether err came from output application.
func IsOutputApplication(err error) bool {
	var e outputError
	return errors.As(err, &e)
}
