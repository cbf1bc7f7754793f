package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"review-bot-service/internal/config"
	"review-bot-service/internal/database"
	"review-bot-service/internal/domain"
	"review-bot-service/internal/draft"
	"review-bot-service/internal/handler"
	"review-bot-service/internal/jira"
	"review-bot-service/internal/repository"
	"review-bot-service/internal/slack"
	"review-bot-service/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	// Логгер
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Конфиг
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Warnf(".env not found: %v", err)
	}

	// Клиент трекера
	tracker := jira.NewClient(jira.Options{
		BaseURL:      cfg.JiraBaseURL,
		Project:      cfg.JiraProject,
		ReviewStatus: cfg.JiraReviewStatus,
		Email:        cfg.JiraEmail,
		Password:     cfg.JiraPassword,
	}, logger)

	// Источник агрегатов: живой пересчет либо кеш в PostgreSQL
	var source domain.TicketSource = tracker
	var cache domain.ReviewCache
	if cfg.AggregationSource == "cache" {
		db, err := database.NewPostgresDB(cfg)
		if err != nil {
			logger.Fatalf("Database connection failed: %v", err)
		}
		defer db.Close()
		logger.Info("Database connected")

		cache = repository.NewReviewRepository(db)
		source = cache
	}

	// Чат
	responder := slack.NewResponder(cfg.SlackBotToken, logger)

	// Use Cases
	drafts := draft.NewStore()
	workflowUC := usecase.NewWorkflowUseCase(drafts, tracker, source, cache, logger, cfg.JiraIssueURL, cfg.RequiredReviews)

	// Echo + Handlers
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(handler.LoggingMiddleware(logger))

	apiHandler := handler.NewAPIHandler(workflowUC, tracker, responder, logger)
	apiHandler.RegisterRoutes(e)

	// Запуск сервера
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil {
			logger.Infof("Server stopped: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatalf("Shutdown failed: %v", err)
	}

	logger.Info("Server exited")
}
