package models

// Chat roles as expected by the Gemini chat history.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatMessage is one turn of a conversation transcript.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the payload coming from the frontend into /api/chat.
type ChatRequest struct {
	SessionID string `json:"session_id"` // omitted on the first turn; server mints one
	Message   string `json:"message" binding:"required"`
}

// ChatResponse is what the chat handler returns to the frontend.
type ChatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
	Action    string `json:"action,omitempty"` // booking action performed this turn, if any
}
