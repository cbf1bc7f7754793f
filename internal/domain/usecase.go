package domain

import "context"

// ListScope — область выборки тикетов для слэш-команды списка.
type ListScope string

const (
	ScopeAll  ListScope = "all"
	ScopeMine ListScope = "mine"
)

// WorkflowUseCase определяет бизнес-логику диалога подачи ревью.
type WorkflowUseCase interface {
	// NewReview начинает черновик ревью и возвращает сообщение
	// с выбором тикета.
	NewReview(ctx context.Context, userID, comment string) (Message, error)
	// ShowTickets возвращает классифицированный список тикетов на ревью.
	ShowTickets(ctx context.Context, scope ListScope, identity string) (Message, error)
	// HandleInteraction обрабатывает отклик на интерактивное сообщение.
	// Пустое сообщение с ok=false означает «тихий ack» без ответа в чат.
	HandleInteraction(ctx context.Context, ev InteractionEvent) (Message, bool, error)
}

// SubtaskUseCase определяет бизнес-логику закрытия подзадач ревью.
type SubtaskUseCase interface {
	// CloseEligible выдает запросы на закрытие peer-review подзадач
	// тикетов, набравших порог принятых ревью, и возвращает число
	// выданных запросов.
	CloseEligible(ctx context.Context, tickets []*Ticket, requiredReviews int) (int, error)
}
