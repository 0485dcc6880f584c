package config

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Resolve produces a typed configuration value for one invocation: the
// default value is serialized to a structured document, the override
// document is deep-merged onto it, and the merged document is deserialized
// back. This is how free-form external configuration reaches a handler
// without the engine knowing its shape.
func Resolve[C any](def C, override []byte) (C, error) {
	out := def
	if len(bytes.TrimSpace(override)) == 0 {
		return out, nil
	}
	base, err := toDoc(def)
	if err != nil {
		return out, err
	}
	var over map[string]any
	if err := json.Unmarshal(override, &over); err != nil {
		return out, fmt.Errorf("config override: %w", err)
	}
	if err := MergeDocs(base, over); err != nil {
		return out, err
	}
	merged, err := json.Marshal(base)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(merged, &out); err != nil {
		return out, fmt.Errorf("config merge result: %w", err)
	}
	return out, nil
}

func toDoc(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("config default: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("config default is not an object: %w", err)
	}
	return doc, nil
}

// MergeDocs deep-merges override onto base in place. Override keys replace
// or extend matching base keys; an override whose value kind disagrees with
// the base value fails the merge.
func MergeDocs(base, override map[string]any) error {
	return mergeDocs(base, override, "")
}

func mergeDocs(base, override map[string]any, path string) error {
	for k, ov := range override {
		p := k
		if path != "" {
			p = path + "." + k
		}
		bv, exists := base[k]
		if !exists || bv == nil || ov == nil {
			base[k] = ov
			continue
		}
		bm, baseIsObj := bv.(map[string]any)
		om, overIsObj := ov.(map[string]any)
		if baseIsObj && overIsObj {
			if err := mergeDocs(bm, om, p); err != nil {
				return err
			}
			continue
		}
		bk, ovk := docKind(bv), docKind(ov)
		if bk != ovk {
			return mergeTypeError{path: p, base: bk, override: ovk}
		}
		base[k] = ov
	}
	return nil
}

func docKind(v any) string {
	switch v.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "bool"
	case float64:
		return "number"
	default:
		return "null"
	}
}

// mergeTypeError: an override value disagrees with the default's kind.
type mergeTypeError struct {
	path     string
	base     string
	override string
}

func (e mergeTypeError) Error() string {
	return fmt.Sprintf("config merge: type mismatch at %q: %s overridden with %s",
		e.path, e.base, e.override)
}

// IsMergeType reports whether err indicates a type-mismatched override.
func IsMergeType(err error) bool {
	_, ok := err.(mergeTypeError)
	return ok
}
