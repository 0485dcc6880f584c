//go:build !llama

package llm

// Open refuses without the 'llama' build tag. No mocked behavior in
// binaries built without CGO support.
func Open(path string, o Options) (Model, error) {
	return nil, notBuiltError{}
}
