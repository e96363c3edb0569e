// File: services/assistant/args.go
package assistant

import (
	"encoding/json"
	"fmt"

	"calbot/services/intelligence"
)

// ArgumentError reports a structured output from the NLU capability that
// does not satisfy an action's schema. It is checked once at the dispatch
// boundary; callers downgrade it to the capability's plain-text reply.
type ArgumentError struct {
	Action string
	Field  string
	Reason string
}

func (e *ArgumentError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("assistant: action %q: %s", e.Action, e.Reason)
	}
	return fmt.Sprintf("assistant: action %q, argument %q: %s", e.Action, e.Field, e.Reason)
}

func stringArg(call intelligence.FunctionCall, key string) (string, error) {
	raw, ok := call.Args[key]
	if !ok {
		return "", &ArgumentError{Action: call.Name, Field: key, Reason: "missing"}
	}
	s, ok := raw.(string)
	if !ok || s == "" {
		return "", &ArgumentError{Action: call.Name, Field: key, Reason: "not a non-empty string"}
	}
	return s, nil
}

func optionalStringArg(call intelligence.FunctionCall, key string) string {
	if s, ok := call.Args[key].(string); ok {
		return s
	}
	return ""
}

// intArg tolerates the numeric encodings the model may emit for an integer
// parameter (float64 from JSON decoding, json.Number, or a digit string).
func intArg(call intelligence.FunctionCall, key string) (int64, error) {
	raw, ok := call.Args[key]
	if !ok {
		return 0, &ArgumentError{Action: call.Name, Field: key, Reason: "missing"}
	}
	switch v := raw.(type) {
	case float64:
		return int64(v), nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, &ArgumentError{Action: call.Name, Field: key, Reason: "not an integer"}
		}
		return n, nil
	case string:
		var n int64
		if _, err := fmt.Sscanf(v, "%d", &n); err != nil {
			return 0, &ArgumentError{Action: call.Name, Field: key, Reason: "not an integer"}
		}
		return n, nil
	default:
		return 0, &ArgumentError{Action: call.Name, Field: key, Reason: "not an integer"}
	}
}
