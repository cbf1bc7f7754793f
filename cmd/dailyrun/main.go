// Разовый запуск: публикует дайджест тикетов на ревью в канал
// и закрывает peer-review подзадачи тикетов, набравших порог.
// Предназначен для планировщика (cron).
package main

import (
	"context"
	"time"

	"review-bot-service/internal/config"
	"review-bot-service/internal/draft"
	"review-bot-service/internal/jira"
	"review-bot-service/internal/slack"
	"review-bot-service/internal/usecase"

	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Warnf(".env not found: %v", err)
	}

	tracker := jira.NewClient(jira.Options{
		BaseURL:      cfg.JiraBaseURL,
		Project:      cfg.JiraProject,
		ReviewStatus: cfg.JiraReviewStatus,
		Email:        cfg.JiraEmail,
		Password:     cfg.JiraPassword,
	}, logger)
	responder := slack.NewResponder(cfg.SlackBotToken, logger)

	workflowUC := usecase.NewWorkflowUseCase(draft.NewStore(), tracker, tracker, nil, logger, cfg.JiraIssueURL, cfg.RequiredReviews)
	subtaskUC := usecase.NewSubtaskUseCase(tracker, logger, cfg.PeerReviewSubtaskType)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// Дайджест в канал
	msg, err := workflowUC.ShowTickets(ctx, "all", "")
	if err != nil {
		logger.Fatalf("Digest aggregation failed: %v", err)
	}
	if err := responder.PostToChannel(cfg.SlackChannel, msg); err != nil {
		logger.Fatalf("Digest delivery failed: %v", err)
	}
	logger.Info("Digest posted")

	// Закрытие подзадач
	tickets, err := tracker.ListTicketsUnderReview(ctx)
	if err != nil {
		logger.Fatalf("Ticket aggregation failed: %v", err)
	}
	issued, err := subtaskUC.CloseEligible(ctx, tickets, cfg.RequiredReviews)
	if err != nil {
		logger.WithError(err).Error("Some subtask transitions failed")
	}
	logger.WithField("issued", issued).Info("Subtask closures issued")
}
