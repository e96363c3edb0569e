// File: services/intelligence/interface.go
package intelligence

import (
	"context"

	"calbot/models"
)

// FunctionCall is an action the capability selected from free text, with the
// arguments it extracted.
type FunctionCall struct {
	Name string
	Args map[string]any
}

// Outcome is the structured result of classifying one user message: either a
// selected action or plain text, never both.
type Outcome struct {
	Call *FunctionCall
	Text string
}

// Turn is one in-flight exchange with the capability. When the outcome is an
// action, Finalize feeds the performed action's result back into the same
// exchange to produce the final natural-language reply.
type Turn interface {
	Outcome() Outcome
	Finalize(ctx context.Context, result any) (string, error)
}

// Classifier is the narrow interface over the external NLU capability. The
// prior conversation history is caller-owned and threaded through each turn.
type Classifier interface {
	Classify(ctx context.Context, history []models.ChatMessage, text string) (Turn, error)
}
