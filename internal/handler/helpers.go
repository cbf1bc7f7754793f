package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"review-bot-service/internal/domain"
)

// Вспомогательные типы и функции для разбора входящих событий чата
// и преобразования domain ошибок в HTTP ответы

// interactionPayload — тело интерактивного колбэка платформы чата
// (form-поле "payload" с JSON внутри).
type interactionPayload struct {
	Type        string          `json:"type"`
	User        payloadUser     `json:"user"`
	Actions     []payloadAction `json:"actions"`
	ResponseURL string          `json:"response_url"`
	CallbackID  string          `json:"callback_id"`
}

type payloadUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type payloadAction struct {
	Name            string           `json:"name"`
	Value           string           `json:"value"`
	SelectedOptions []selectedOption `json:"selected_options"`
}

type selectedOption struct {
	Value string `json:"value"`
}

// parseInteraction нормализует интерактивный колбэк в доменное событие.
func parseInteraction(raw string) (domain.InteractionEvent, error) {
	var payload interactionPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return domain.InteractionEvent{}, err
	}
	if len(payload.Actions) == 0 {
		return domain.InteractionEvent{}, errors.New("interaction payload has no actions")
	}

	action := payload.Actions[0]
	ev := domain.InteractionEvent{
		Kind:        domain.EventInteraction,
		UserID:      payload.User.ID,
		UserName:    payload.User.Name,
		ActionName:  action.Name,
		ResponseURL: payload.ResponseURL,
	}
	if len(action.SelectedOptions) > 0 {
		ev.SelectedValue = action.SelectedOptions[0].Value
	} else {
		ev.SelectedValue = action.Value
	}
	return ev, nil
}

func toErrorResponse(code, message string) domain.ErrorResponse {
	return domain.ErrorResponse{
		Error: domain.HTTPError{Code: code, Message: message},
	}
}

func getHTTPStatusCode(err error) int {
	switch {
	// Bad Request errors (400) - валидация
	case errors.Is(err, domain.ErrEmptyComment),
		errors.Is(err, domain.ErrUnknownScope),
		errors.Is(err, domain.ErrUnknownAction):
		return http.StatusBadRequest

	// Upstream errors (502)
	case errors.Is(err, domain.ErrUpstreamFailure),
		errors.Is(err, domain.ErrPartialAggregation):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}
