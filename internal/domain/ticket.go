package domain

import "context"

// Ticket представляет тикет, находящийся на ревью.
// Счетчики Accepted/Rejected — производные: пересчитываются из истории
// комментариев трекера при каждой агрегации и никогда не мутируются
// инкрементально.
type Ticket struct {
	Key      string
	Assignee string
	Accepted int
	Rejected int
	Subtasks []Subtask
}

// Subtask представляет связанную подзадачу тикета.
type Subtask struct {
	ID     string
	Type   string
	Status string
}

// TicketOption — вариант выбора тикета для интерактивного меню.
type TicketOption struct {
	Label string `json:"text"`
	Value string `json:"value"`
}

// TicketBuckets — результат классификации: каждый тикет попадает ровно
// в одну из трех корзин, порядок внутри корзины совпадает с входным.
type TicketBuckets struct {
	NeedsReview []*Ticket
	Passed      []*Ticket
	Rejected    []*Ticket
}

// TicketSource поставляет агрегированный список тикетов на ревью.
// Реализуется и живым клиентом трекера, и кешем агрегатов — ядро
// зависит только от формы []*Ticket.
type TicketSource interface {
	ListTicketsUnderReview(ctx context.Context) ([]*Ticket, error)
}

// TrackerClient определяет контракт для работы с внешним трекером задач.
type TrackerClient interface {
	TicketSource
	ListMyTickets(ctx context.Context, identity string) ([]*Ticket, error)
	ListTicketOptions(ctx context.Context, excludeIdentity string) ([]TicketOption, error)
	AddReviewComment(ctx context.Context, ticketKey string, verdict Verdict, comment, identity string) error
	TransitionSubtask(ctx context.Context, subtaskID string) error
}

// ReviewCache определяет контракт для опционального кеша агрегатов.
type ReviewCache interface {
	TicketSource
	RecordReview(ctx context.Context, entry ReviewEntry) error
}

// ReviewEntry — одна запись ревью в кеше агрегатов.
type ReviewEntry struct {
	TicketKey string
	Reviewer  string
	Passed    bool
	Comment   string
}
