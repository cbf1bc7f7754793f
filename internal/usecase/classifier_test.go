package usecase_test

import (
	"testing"

	"review-bot-service/internal/domain"
	"review-bot-service/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestClassify_BucketRules(t *testing.T) {
	testCases := []struct {
		name     string
		ticket   *domain.Ticket
		required int
		bucket   string
	}{
		{"Meets threshold", &domain.Ticket{Key: "T-1", Accepted: 2, Rejected: 0}, 2, "passed"},
		{"Exceeds threshold", &domain.Ticket{Key: "T-2", Accepted: 5, Rejected: 0}, 2, "passed"},
		{"Rejected only", &domain.Ticket{Key: "T-3", Accepted: 0, Rejected: 1}, 2, "rejected"},
		{"Mixed collapses to needs review", &domain.Ticket{Key: "T-4", Accepted: 1, Rejected: 1}, 2, "needsReview"},
		{"No activity", &domain.Ticket{Key: "T-5", Accepted: 0, Rejected: 0}, 2, "needsReview"},
		{"Below threshold", &domain.Ticket{Key: "T-6", Accepted: 1, Rejected: 0}, 2, "needsReview"},
		{"Rejected beats threshold check", &domain.Ticket{Key: "T-7", Accepted: 0, Rejected: 3}, 2, "rejected"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buckets := usecase.Classify([]*domain.Ticket{tc.ticket}, tc.required)

			switch tc.bucket {
			case "passed":
				assert.Equal(t, []*domain.Ticket{tc.ticket}, buckets.Passed)
				assert.Empty(t, buckets.NeedsReview)
				assert.Empty(t, buckets.Rejected)
			case "rejected":
				assert.Equal(t, []*domain.Ticket{tc.ticket}, buckets.Rejected)
				assert.Empty(t, buckets.NeedsReview)
				assert.Empty(t, buckets.Passed)
			case "needsReview":
				assert.Equal(t, []*domain.Ticket{tc.ticket}, buckets.NeedsReview)
				assert.Empty(t, buckets.Passed)
				assert.Empty(t, buckets.Rejected)
			}
		})
	}
}

func TestClassify_Partition(t *testing.T) {
	// Every ticket lands in exactly one bucket
	tickets := []*domain.Ticket{
		{Key: "T-1", Accepted: 0, Rejected: 0},
		{Key: "T-2", Accepted: 2, Rejected: 0},
		{Key: "T-3", Accepted: 0, Rejected: 2},
		{Key: "T-4", Accepted: 1, Rejected: 1},
		{Key: "T-5", Accepted: 3, Rejected: 1},
	}

	buckets := usecase.Classify(tickets, 2)

	total := len(buckets.NeedsReview) + len(buckets.Passed) + len(buckets.Rejected)
	assert.Equal(t, len(tickets), total)

	seen := make(map[string]int)
	for _, bucket := range [][]*domain.Ticket{buckets.NeedsReview, buckets.Passed, buckets.Rejected} {
		for _, ticket := range bucket {
			seen[ticket.Key]++
		}
	}
	for _, ticket := range tickets {
		assert.Equal(t, 1, seen[ticket.Key], "ticket %s must appear in exactly one bucket", ticket.Key)
	}
}

func TestClassify_StableOrder(t *testing.T) {
	tickets := []*domain.Ticket{
		{Key: "T-9", Accepted: 0},
		{Key: "T-1", Accepted: 0},
		{Key: "T-5", Accepted: 0},
	}

	buckets := usecase.Classify(tickets, 2)

	keys := make([]string, len(buckets.NeedsReview))
	for i, ticket := range buckets.NeedsReview {
		keys[i] = ticket.Key
	}
	assert.Equal(t, []string{"T-9", "T-1", "T-5"}, keys)
}

func TestClassify_Empty(t *testing.T) {
	buckets := usecase.Classify(nil, 2)

	assert.Empty(t, buckets.NeedsReview)
	assert.Empty(t, buckets.Passed)
	assert.Empty(t, buckets.Rejected)
}
