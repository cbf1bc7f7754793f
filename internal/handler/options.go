package handler

import (
	"encoding/json"
	"net/http"

	"review-bot-service/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// OptionsHandler отдает варианты выбора тикета для внешнего источника
// данных интерактивного меню
type OptionsHandler struct {
	*BaseHandler
	tracker domain.TrackerClient
}

// NewOptionsHandler создает новый экземпляр OptionsHandler
func NewOptionsHandler(tracker domain.TrackerClient, logger *logrus.Logger) *OptionsHandler {
	return &OptionsHandler{
		BaseHandler: NewBaseHandler(logger),
		tracker:     tracker,
	}
}

// optionsResponse — формат ответа внешнего источника данных меню.
type optionsResponse struct {
	Options []domain.TicketOption `json:"options"`
}

// PostOptions возвращает тикеты, доступные для выбора в активном ревью.
// Тикеты, назначенные на запрашивающего пользователя, исключаются.
func (h *OptionsHandler) PostOptions(c echo.Context) error {
	var payload struct {
		User struct {
			Name string `json:"name"`
		} `json:"user"`
	}
	if raw := c.FormValue("payload"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			h.logger.WithError(err).Warn("Failed to parse options payload")
			return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
		}
	}

	logEntry := h.logRequest(c, "ticket_options").WithField("user", payload.User.Name)
	logEntry.Info("Fetching ticket options")

	options, err := h.tracker.ListTicketOptions(c.Request().Context(), payload.User.Name)
	if err != nil {
		logEntry.WithError(err).Error("Failed to fetch ticket options")
		if httpErr, exists := domain.ToHTTPError(err); exists {
			return c.JSON(getHTTPStatusCode(err), domain.ErrorResponse{Error: httpErr})
		}
		return c.JSON(http.StatusInternalServerError, toErrorResponse("INTERNAL_ERROR", err.Error()))
	}

	logEntry.WithField("count", len(options)).Info("Ticket options fetched")
	return c.JSON(http.StatusOK, optionsResponse{Options: options})
}
