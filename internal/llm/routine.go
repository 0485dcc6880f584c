package llm

import (
	"errors"
	"strings"

	"routined/internal/actor"
	"routined/internal/cancel"
	"routined/internal/emitter"
	"routined/internal/output"
	"routined/internal/param"
	"routined/internal/routine"
)

// GenerateConfig is the documented default for llm.generate; per-invocation
// overrides are deep-merged onto it.
type GenerateConfig struct {
	Prompt    string `json:"prompt"`
	MaxTokens int    `json:"max_tokens"`
}

func DefaultGenerateConfig() GenerateConfig {
	return GenerateConfig{MaxTokens: 128}
}

// errStopped makes the token callback halt generation; it never escapes
// the handler.
var errStopped = errors.New("generation stopped")

// GenerateRoutine streams tokens from the actor-hosted model. Generation
// runs on the model's worker goroutine, so concurrent invocations are
// serialized by construction.
func GenerateRoutine() *routine.Routine[string] {
	return routine.New4("llm.generate",
		param.ModelAccessor[string, Model](),
		param.Config[string](DefaultGenerateConfig()),
		param.OutStream[string](),
		param.CancelToken[string](),
		func(acc actor.Accessor[Model], cfg GenerateConfig, out emitter.Emitter[string], tok cancel.Token) (output.Output[string], error) {
			if strings.TrimSpace(cfg.Prompt) == "" {
				return nil, errors.New("prompt is required")
			}
			genErr, callErr := actor.Call(acc, func(m *Model) error {
				_, err := (*m).Generate(cfg.Prompt, cfg.MaxTokens, func(t string) error {
					if tok.IsCancelled() {
						return errStopped
					}
					if sig, _ := out.Emit(t); sig == emitter.Stop {
						return errStopped
					}
					return nil
				})
				return err
			})
			if callErr != nil {
				return nil, callErr
			}
			// Stopping early (cancellation or backpressure) is not a failure.
			if genErr != nil && !errors.Is(genErr, errStopped) {
				return nil, genErr
			}
			return output.Unit[string](), nil
		})
}
