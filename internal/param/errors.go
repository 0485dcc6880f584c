package param

import "fmt"

// notAvailableError: the context carries no capability of the declared kind.
type notAvailableError struct{ what string }

func (e notAvailableError) Error() string {
	return e.what + " not available in this context"
}

// IsNotAvailable reports whether err indicates a capability the context
// does not carry.
func IsNotAvailable(err error) bool {
	_, ok := err.(notAvailableError)
	return ok
}

// accessorTypeError: the hosted model does not match the declared type.
type accessorTypeError struct{ got string }

func (e accessorTypeError) Error() string {
	return "model accessor has unexpected type " + e.got
}

// IsAccessorType reports whether err indicates a model type mismatch.
func IsAccessorType(err error) bool {
	_, ok := err.(accessorTypeError)
	return ok
}

func typeName(v any) string { return fmt.Sprintf("%T", v) }
