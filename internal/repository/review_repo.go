package repository

import (
	"context"
	"database/sql"
	"fmt"

	"review-bot-service/internal/domain"
)

// ReviewRepository реализует кеш агрегатов ревью в PostgreSQL.
// Хранит журнал поданных ревью и отдает агрегаты по тикетам;
// используется вместо живого пересчета по трекеру, когда
// деплоймент выбирает кешированный источник.
type ReviewRepository struct {
	db *sql.DB
}

// NewReviewRepository создает новый экземпляр ReviewRepository.
func NewReviewRepository(db *sql.DB) domain.ReviewCache {
	return &ReviewRepository{db: db}
}

// RecordReview сохраняет одну запись ревью в журнал.
func (r *ReviewRepository) RecordReview(ctx context.Context, entry domain.ReviewEntry) error {
	const query = `
		INSERT INTO reviews (ticket_key, reviewer, passed, comment)
		VALUES ($1, $2, $3, $4)`

	if _, err := r.db.ExecContext(ctx, query, entry.TicketKey, entry.Reviewer, entry.Passed, entry.Comment); err != nil {
		return fmt.Errorf("failed to record review: %w", err)
	}
	return nil
}

// ListTicketsUnderReview возвращает агрегаты по тикетам: число принятых
// и отклоненных ревью на тикет. Порядок стабилен — по времени первого
// ревью тикета, чтобы повторные рендеры списка совпадали.
func (r *ReviewRepository) ListTicketsUnderReview(ctx context.Context) ([]*domain.Ticket, error) {
	const query = `
		SELECT ticket_key,
		       COUNT(*) FILTER (WHERE passed)     AS accepted,
		       COUNT(*) FILTER (WHERE NOT passed) AS rejected
		FROM reviews
		GROUP BY ticket_key
		ORDER BY MIN(created_at)`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate reviews: %w", err)
	}
	defer rows.Close()

	var tickets []*domain.Ticket
	for rows.Next() {
		t := &domain.Ticket{}
		if err := rows.Scan(&t.Key, &t.Accepted, &t.Rejected); err != nil {
			return nil, fmt.Errorf("failed to scan review aggregate: %w", err)
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read review aggregates: %w", err)
	}

	return tickets, nil
}
