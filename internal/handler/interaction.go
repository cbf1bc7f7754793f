package handler

import (
	"net/http"

	"review-bot-service/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// InteractionHandler обрабатывает интерактивные колбэки платформы чата
type InteractionHandler struct {
	*BaseHandler
	workflow  domain.WorkflowUseCase
	responder domain.ChatResponder
}

// NewInteractionHandler создает новый экземпляр InteractionHandler
func NewInteractionHandler(workflow domain.WorkflowUseCase, responder domain.ChatResponder, logger *logrus.Logger) *InteractionHandler {
	return &InteractionHandler{
		BaseHandler: NewBaseHandler(logger),
		workflow:    workflow,
		responder:   responder,
	}
}

// PostInteraction обрабатывает отклик на интерактивное сообщение:
// выбор тикета, вердикт, отмену или нераспознанное действие
func (h *InteractionHandler) PostInteraction(c echo.Context) error {
	ev, err := parseInteraction(c.FormValue("payload"))
	if err != nil {
		h.logger.WithError(err).Warn("Failed to parse interaction payload")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}

	logEntry := h.logRequest(c, "interaction").WithFields(logrus.Fields{
		"user":   ev.UserID,
		"action": ev.ActionName,
	})
	logEntry.Info("Handling interaction")

	msg, reply, err := h.workflow.HandleInteraction(c.Request().Context(), ev)
	if err != nil {
		// Нераспознанное действие нефатально: диагностическое эхо уходит
		// пользователю, состояние черновика не тронуто
		logEntry.WithError(err).Warn("Interaction completed with error")
	}

	if reply {
		if err := h.responder.Respond(ev.ResponseURL, msg); err != nil {
			logEntry.WithError(err).Error("Failed to deliver interaction response")
			return c.JSON(getHTTPStatusCode(err), toErrorResponse("UPSTREAM_FAILURE", err.Error()))
		}
	}

	return c.NoContent(http.StatusOK)
}
