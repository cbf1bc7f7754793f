package usecase

import "review-bot-service/internal/domain"

// Classify раскладывает тикеты по трем взаимоисключающим корзинам.
//
// Правила применяются к каждому тикету в порядке приоритета:
//  1. rejected — есть отклонения и ни одного принятия;
//  2. passed — принятий не меньше порога;
//  3. needs-review — все остальное, включая тикеты без активности
//     и «смешанные» (принятия и отклонения одновременно, порог не взят).
//
// Порядок тикетов внутри корзины совпадает со входным, чтобы повторные
// рендеры списка выглядели одинаково.
func Classify(tickets []*domain.Ticket, requiredReviews int) domain.TicketBuckets {
	var buckets domain.TicketBuckets
	for _, t := range tickets {
		switch {
		case t.Rejected > 0 && t.Accepted == 0:
			buckets.Rejected = append(buckets.Rejected, t)
		case t.Accepted >= requiredReviews:
			buckets.Passed = append(buckets.Passed, t)
		default:
			buckets.NeedsReview = append(buckets.NeedsReview, t)
		}
	}
	return buckets
}
