// Package llm provides an optional local model backend the engine can host
// behind a model actor. The real llama.cpp binding is compiled only with
// the 'llama' build tag; default builds get a refusing stub so CI stays
// CGO-free.
package llm

// Options configure a local model at open time.
type Options struct {
	CtxSize int
	Threads int
}

// Model is the minimal surface the engine hosts. Generate streams tokens
// through onToken; returning an error from onToken halts generation.
// Implementations are not safe for concurrent use, which is exactly what
// the model actor exists for.
type Model interface {
	Generate(prompt string, maxTokens int, onToken func(string) error) (string, error)
	Close() error
}

// notBuiltError: the binary was compiled without the 'llama' tag.
type notBuiltError struct{}

func (notBuiltError) Error() string {
	return "llama support not compiled in (build with -tags=llama)"
}

// IsNotBuilt reports whether err indicates a missing llama build.
func IsNotBuilt(err error) bool {
	_, ok := err.(notBuiltError)
	return ok
}
