package handlers

import (
	"net/http"

	"calbot/models"
	"calbot/services/loan"
	"calbot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PredictHandler exposes the dialog-platform loan-prediction webhook.
type PredictHandler struct {
	Predictor *loan.Predictor
}

func NewPredictHandler(predictor *loan.Predictor) *PredictHandler {
	return &PredictHandler{Predictor: predictor}
}

// HelloHandler answers the platform's liveness probe.
func (h *PredictHandler) HelloHandler(c *gin.Context) {
	c.String(http.StatusOK, "Hello, World")
}

// Predict assembles the webhook parameters into a feature vector and returns
// the model's verdict. Every failure on this path, whatever the cause,
// collapses into the one fixed retry message; the platform always gets a
// well-formed fulfillment response.
func (h *PredictHandler) Predict(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("predict: malformed webhook payload", zap.Error(err))
		c.JSON(http.StatusOK, models.WebhookResponse{FulfillmentText: loan.MsgError})
		return
	}

	verdict, err := h.Predictor.Verdict(req.QueryResult.Parameters)
	if err != nil {
		logger.Warn("predict: prediction failed", zap.Error(err))
		c.JSON(http.StatusOK, models.WebhookResponse{FulfillmentText: loan.MsgError})
		return
	}

	c.JSON(http.StatusOK, models.WebhookResponse{FulfillmentText: verdict})
}
