package domain

// EventKind — тип нормализованного входящего события чата.
type EventKind string

const (
	EventNewReview   EventKind = "NEW_REVIEW"
	EventNeedsReview EventKind = "NEEDS_REVIEW"
	EventMyTickets   EventKind = "MY_TICKETS"
	EventInteraction EventKind = "USER_RESPONSE"
)

// Имена интерактивных действий в сообщении нового ревью.
const (
	ActionTicket = "ticket"
	ActionPass   = "pass"
	ActionReject = "reject"
	ActionCancel = "cancel"
)

// InteractionEvent — нормализованное событие от платформы чата:
// слэш-команда или отклик на интерактивное сообщение.
type InteractionEvent struct {
	Kind          EventKind
	UserID        string
	UserName      string
	Text          string
	SelectedValue string
	ActionName    string
	ResponseURL   string
}
