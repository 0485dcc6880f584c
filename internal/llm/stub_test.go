//go:build !llama

package llm

import "testing"

func TestOpenWithoutLlamaTag(t *testing.T) {
	m, err := Open("/nonexistent.gguf", Options{})
	if m != nil {
		t.Fatalf("stub returned a model")
	}
	if !IsNotBuilt(err) {
		t.Fatalf("err = %v", err)
	}
}
