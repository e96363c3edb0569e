// File: calbot/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"calbot/config"
	"calbot/handlers"
	"calbot/middleware"
	"calbot/routes"
	"calbot/services/assistant"
	"calbot/services/calcom"
	ai "calbot/services/intelligence"
	"calbot/services/loan"
	"calbot/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitChatCache()

	// Model artifacts load once at process start; a missing artifact is fatal.
	artifacts, err := loan.LoadArtifacts(config.AppConfig.ModelArtifactsDir)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to load model artifacts: %v", err)
	}
	predictor := loan.NewPredictor(artifacts)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// External capabilities.
	calcomClient := calcom.NewClient(
		config.AppConfig.CalcomBaseURL,
		config.AppConfig.CalcomAPIKey,
		config.AppConfig.CalcomEventTypeID,
	)
	classifier := ai.NewGeminiClassifier(config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)

	// Services.
	assistantSvc := assistant.NewService(classifier, calcomClient)
	ctxStore := assistant.NewContextStore(utils.GetChatCacheClient(), 30*time.Minute)

	chatHandler := handlers.NewChatHandler(assistantSvc, ctxStore)
	predictHandler := handlers.NewPredictHandler(predictor)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		ChatHandler:      chatHandler.HandleChat,
		ClearChatHandler: chatHandler.ClearSession,
		PredictHandler:   predictHandler.Predict,
		HelloHandler:     predictHandler.HelloHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
