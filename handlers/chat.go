package handlers

import (
	"errors"
	"net/http"

	"calbot/models"
	"calbot/services/assistant"
	"calbot/services/calcom"
	"calbot/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChatHandler exposes the conversational booking front end.
type ChatHandler struct {
	Assistant *assistant.Service
	Store     *assistant.ContextStore
}

func NewChatHandler(svc *assistant.Service, store *assistant.ContextStore) *ChatHandler {
	return &ChatHandler{Assistant: svc, Store: store}
}

// HandleChat runs one conversational turn: load the session transcript,
// thread it through the assistant, append both sides, save.
func (h *ChatHandler) HandleChat(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid chat request", err.Error())
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	ctx := c.Request.Context()
	history, err := h.Store.Get(ctx, sessionID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load conversation", err.Error())
		return
	}

	result, err := h.Assistant.HandleTurn(ctx, history, req.Message)
	if err != nil {
		var apiErr *calcom.APIError
		if errors.As(err, &apiErr) {
			utils.JSONError(c, http.StatusBadGateway, "Scheduling provider error", apiErr.Body)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to process message", err.Error())
		return
	}

	history = append(history,
		models.ChatMessage{Role: models.RoleUser, Content: req.Message},
		models.ChatMessage{Role: models.RoleModel, Content: result.Reply},
	)
	if err := h.Store.Save(ctx, sessionID, history); err != nil {
		// The reply already exists; losing a transcript write is not worth failing the turn.
		logger.Warn("chat: failed to save transcript", zap.String("sessionID", sessionID), zap.Error(err))
	}

	c.JSON(http.StatusOK, models.ChatResponse{
		SessionID: sessionID,
		Reply:     result.Reply,
		Action:    result.Action,
	})
}

// ClearSession drops a session's transcript.
func (h *ChatHandler) ClearSession(c *gin.Context) {
	sessionID := c.Param("sessionID")
	if err := h.Store.Clear(c.Request.Context(), sessionID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to clear conversation", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cleared", "session_id": sessionID})
}
