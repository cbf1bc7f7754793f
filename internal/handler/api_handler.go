package handler

import (
	"net/http"

	"review-bot-service/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type APIHandler struct {
	*CommandHandler
	*InteractionHandler
	*OptionsHandler
}

func NewAPIHandler(
	workflow domain.WorkflowUseCase,
	tracker domain.TrackerClient,
	responder domain.ChatResponder,
	logger *logrus.Logger,
) *APIHandler {

	return &APIHandler{
		CommandHandler:     NewCommandHandler(workflow, responder, logger),
		InteractionHandler: NewInteractionHandler(workflow, responder, logger),
		OptionsHandler:     NewOptionsHandler(tracker, logger),
	}
}

// RegisterRoutes привязывает эндпоинты слэш-команд и интеракций.
func (h *APIHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/commands/new-review", h.PostNewReview)
	e.POST("/commands/needs-review", h.PostNeedsReview)
	e.POST("/commands/my-tickets", h.PostMyTickets)
	e.POST("/interaction", h.PostInteraction)
	e.POST("/options", h.PostOptions)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}
