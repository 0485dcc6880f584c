package execctx

import "fmt"

// stateMissingError: no user state was supplied at setup.
type stateMissingError struct{}

func (stateMissingError) Error() string { return "no user state supplied" }

// IsStateMissing reports whether err indicates state was never supplied.
func IsStateMissing(err error) bool {
	_, ok := err.(stateMissingError)
	return ok
}

// stateTakenError: the take-once state was already consumed in this
// invocation.
type stateTakenError struct{}

func (stateTakenError) Error() string { return "user state already taken" }

// IsStateTaken reports whether err indicates a second take of the state.
func IsStateTaken(err error) bool {
	_, ok := err.(stateTakenError)
	return ok
}

// stateTypeError: the supplied state does not match the requested type.
type stateTypeError struct{ got string }

func (e stateTypeError) Error() string {
	return "user state has unexpected type " + e.got
}

// IsStateType reports whether err indicates a state type mismatch.
func IsStateType(err error) bool {
	_, ok := err.(stateTypeError)
	return ok
}

func typeName(v any) string { return fmt.Sprintf("%T", v) }
