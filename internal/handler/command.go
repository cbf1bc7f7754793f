package handler

import (
	"net/http"

	"review-bot-service/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// CommandHandler обрабатывает слэш-команды платформы чата
type CommandHandler struct {
	*BaseHandler
	workflow  domain.WorkflowUseCase
	responder domain.ChatResponder
}

// NewCommandHandler создает новый экземпляр CommandHandler
func NewCommandHandler(workflow domain.WorkflowUseCase, responder domain.ChatResponder, logger *logrus.Logger) *CommandHandler {
	return &CommandHandler{
		BaseHandler: NewBaseHandler(logger),
		workflow:    workflow,
		responder:   responder,
	}
}

// PostNewReview обрабатывает слэш-команду начала нового ревью
func (h *CommandHandler) PostNewReview(c echo.Context) error {
	userID := c.FormValue("user_id")
	comment := c.FormValue("text")
	responseURL := c.FormValue("response_url")

	logEntry := h.logRequest(c, "new_review").WithField("user", userID)
	logEntry.Info("Starting review draft")

	msg, err := h.workflow.NewReview(c.Request().Context(), userID, comment)
	if err != nil {
		logEntry.WithError(err).Warn("Review draft not started")
		// Сообщение валидации уходит пользователю, состояние не меняется
		return c.JSON(http.StatusOK, map[string]string{"text": msg.Text})
	}

	if err := h.responder.Respond(responseURL, msg); err != nil {
		logEntry.WithError(err).Error("Failed to deliver ticket selection prompt")
		return c.JSON(getHTTPStatusCode(err), toErrorResponse("UPSTREAM_FAILURE", err.Error()))
	}

	return c.NoContent(http.StatusOK)
}

// PostNeedsReview обрабатывает слэш-команду списка всех тикетов на ревью
func (h *CommandHandler) PostNeedsReview(c echo.Context) error {
	return h.showTickets(c, domain.ScopeAll, "needs_review")
}

// PostMyTickets обрабатывает слэш-команду списка тикетов пользователя
func (h *CommandHandler) PostMyTickets(c echo.Context) error {
	return h.showTickets(c, domain.ScopeMine, "my_tickets")
}

func (h *CommandHandler) showTickets(c echo.Context, scope domain.ListScope, operation string) error {
	identity := c.FormValue("user_name")
	responseURL := c.FormValue("response_url")

	logEntry := h.logRequest(c, operation).WithFields(logrus.Fields{
		"user":  identity,
		"scope": scope,
	})
	logEntry.Info("Listing tickets under review")

	msg, err := h.workflow.ShowTickets(c.Request().Context(), scope, identity)
	if err != nil {
		logEntry.WithError(err).Error("Failed to list tickets")
		if httpErr, exists := domain.ToHTTPError(err); exists {
			return c.JSON(getHTTPStatusCode(err), domain.ErrorResponse{Error: httpErr})
		}
		return c.JSON(http.StatusInternalServerError, toErrorResponse("INTERNAL_ERROR", err.Error()))
	}

	if err := h.responder.Respond(responseURL, msg); err != nil {
		logEntry.WithError(err).Error("Failed to deliver ticket listing")
		return c.JSON(getHTTPStatusCode(err), toErrorResponse("UPSTREAM_FAILURE", err.Error()))
	}

	return c.NoContent(http.StatusOK)
}
