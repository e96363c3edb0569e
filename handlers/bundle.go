package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle collects every endpoint handler for route registration.
type HandlerBundle struct {
	// Chat endpoints.
	ChatHandler      gin.HandlerFunc
	ClearChatHandler gin.HandlerFunc

	// Loan webhook endpoints.
	PredictHandler gin.HandlerFunc
	HelloHandler   gin.HandlerFunc
}
