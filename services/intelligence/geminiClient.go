// File: services/intelligence/geminiClient.go
package intelligence

import (
	"context"
	"fmt"
	"strings"

	"calbot/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClassifier backs the Classifier interface with a Gemini model
// carrying the booking tool declarations.
type GeminiClassifier struct {
	model *genai.GenerativeModel
}

func NewGeminiClassifier(apiKey, modelName string) *GeminiClassifier {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		panic(fmt.Sprintf("failed to create Gemini client: %v", err))
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0)
	model.Tools = []*genai.Tool{bookingTool()}
	return &GeminiClassifier{model: model}
}

// Classify starts a chat seeded with the threaded history and sends the
// user's message. A response carrying a function call becomes an action
// outcome; anything else, including a malformed or empty candidate, is
// downgraded to plain text.
func (g *GeminiClassifier) Classify(ctx context.Context, history []models.ChatMessage, text string) (Turn, error) {
	chat := g.model.StartChat()
	chat.History = toGenaiHistory(history)

	resp, err := chat.SendMessage(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("gemini generate error: %w", err)
	}

	turn := &geminiTurn{chat: chat}
	if len(resp.Candidates) == 0 {
		return turn, nil
	}

	cand := resp.Candidates[0]
	if calls := cand.FunctionCalls(); len(calls) > 0 {
		turn.outcome = Outcome{Call: &FunctionCall{Name: calls[0].Name, Args: calls[0].Args}}
		return turn, nil
	}
	turn.outcome = Outcome{Text: collectText(cand)}
	return turn, nil
}

type geminiTurn struct {
	chat    *genai.ChatSession
	outcome Outcome
}

func (t *geminiTurn) Outcome() Outcome { return t.outcome }

// Finalize sends the performed action's result back into the same chat as a
// function response and returns the model's natural-language reply.
func (t *geminiTurn) Finalize(ctx context.Context, result any) (string, error) {
	if t.outcome.Call == nil {
		return "", fmt.Errorf("gemini: finalize called on a plain-text turn")
	}
	resp, err := t.chat.SendMessage(ctx, genai.FunctionResponse{
		Name:     t.outcome.Call.Name,
		Response: map[string]any{"content": result},
	})
	if err != nil {
		return "", fmt.Errorf("gemini function response error: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("gemini: empty response to function result")
	}
	return collectText(resp.Candidates[0]), nil
}

func collectText(cand *genai.Candidate) string {
	if cand.Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String()
}

func toGenaiHistory(history []models.ChatMessage) []*genai.Content {
	out := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		out = append(out, &genai.Content{
			Role:  msg.Role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}
	return out
}
