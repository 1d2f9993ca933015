package stage

import "context"

// Completer is the single capability every stage needs from the
// structured-completion gateway. *llm.Client satisfies it.
type Completer interface {
	CompleteJSON(ctx context.Context, instruction, content string) (map[string]any, error)
}

// Loose decoding helpers for untrusted JSON values.

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fallback
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

func asList(v any) ([]any, bool) {
	list, ok := v.([]any)
	return list, ok
}

func asStringSlice(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
