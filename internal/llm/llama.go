//go:build llama

package llm

import (
	"errors"
	"strings"

	llama "github.com/go-skynet/go-llama.cpp"
)

type llamaModel struct {
	m       *llama.LLama
	threads int
}

// Open loads a gguf model from disk.
func Open(path string, o Options) (Model, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("model path is empty")
	}
	ctxSize := o.CtxSize
	if ctxSize <= 0 {
		ctxSize = 2048
	}
	m, err := llama.New(path, llama.SetContext(ctxSize))
	if err != nil {
		return nil, err
	}
	threads := o.Threads
	if threads <= 0 {
		threads = 4
	}
	return &llamaModel{m: m, threads: threads}, nil
}

func (l *llamaModel) Generate(prompt string, maxTokens int, onToken func(string) error) (string, error) {
	if l.m == nil {
		return "", errors.New("llama model not initialized")
	}
	if maxTokens < 1 {
		maxTokens = 1
	}
	// Bridge token streaming to onToken; a callback error stops prediction.
	l.m.SetTokenCallback(func(tok string) bool {
		return onToken(tok) == nil
	})
	return l.m.Predict(prompt,
		llama.SetTokens(maxTokens),
		llama.SetThreads(l.threads),
	)
}

func (l *llamaModel) Close() error {
	if l.m != nil {
		l.m.Free()
		l.m = nil
	}
	return nil
}
