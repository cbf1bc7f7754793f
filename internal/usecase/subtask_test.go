package usecase_test

import (
	"context"
	"errors"
	"testing"

	"review-bot-service/internal/domain"
	"review-bot-service/internal/mocks"
	"review-bot-service/internal/usecase"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSubtaskUC(tracker *mocks.TrackerClient) domain.SubtaskUseCase {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return usecase.NewSubtaskUseCase(tracker, logger, "Peer Review")
}

func TestSubtask_CloseEligible_IssuesTransitions(t *testing.T) {
	ctx := context.Background()
	tracker := &mocks.TrackerClient{}
	uc := newSubtaskUC(tracker)

	tickets := []*domain.Ticket{
		{
			Key:      "T-1",
			Accepted: 2,
			Subtasks: []domain.Subtask{
				{ID: "10001", Type: "Peer Review", Status: "Open"},
				{ID: "10002", Type: "Testing", Status: "Open"},
			},
		},
		{
			Key:      "T-2",
			Accepted: 1, // below threshold
			Subtasks: []domain.Subtask{
				{ID: "10003", Type: "Peer Review", Status: "Open"},
			},
		},
		{
			Key:      "T-3",
			Accepted: 3, // no subtasks
		},
	}

	tracker.On("TransitionSubtask", ctx, "10001").Return(nil)

	issued, err := uc.CloseEligible(ctx, tickets, 2)

	require.NoError(t, err)
	assert.Equal(t, 1, issued)
	tracker.AssertExpectations(t)
	tracker.AssertNotCalled(t, "TransitionSubtask", ctx, "10003")
}

func TestSubtask_CloseEligible_Idempotent(t *testing.T) {
	ctx := context.Background()
	tracker := &mocks.TrackerClient{}
	uc := newSubtaskUC(tracker)

	tickets := []*domain.Ticket{
		{
			Key:      "T-1",
			Accepted: 2,
			Subtasks: []domain.Subtask{
				{ID: "10001", Type: "Peer Review", Status: "Open"},
			},
		},
	}

	tracker.On("TransitionSubtask", ctx, "10001").Return(nil).Once()

	issued, err := uc.CloseEligible(ctx, tickets, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, issued)

	// After the transition the tracker reports the subtask closed;
	// a second sweep selects nothing
	tickets[0].Subtasks[0].Status = "Closed"

	issued, err = uc.CloseEligible(ctx, tickets, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, issued)
	tracker.AssertExpectations(t)
}

func TestSubtask_CloseEligible_CountsIssuedNotConfirmed(t *testing.T) {
	ctx := context.Background()
	tracker := &mocks.TrackerClient{}
	uc := newSubtaskUC(tracker)

	tickets := []*domain.Ticket{
		{
			Key:      "T-1",
			Accepted: 2,
			Subtasks: []domain.Subtask{
				{ID: "10001", Type: "Peer Review", Status: "Open"},
				{ID: "10002", Type: "Peer Review", Status: "Open"},
			},
		},
	}

	tracker.On("TransitionSubtask", ctx, "10001").Return(errors.New("transition denied"))
	tracker.On("TransitionSubtask", ctx, "10002").Return(nil)

	issued, err := uc.CloseEligible(ctx, tickets, 2)

	// Both requests were issued; the failure is reported, not swallowed
	assert.Equal(t, 2, issued)
	assert.Error(t, err)
	tracker.AssertExpectations(t)
}

func TestSubtask_CloseEligible_TypeMatchIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	tracker := &mocks.TrackerClient{}
	uc := newSubtaskUC(tracker)

	tickets := []*domain.Ticket{
		{
			Key:      "T-1",
			Accepted: 2,
			Subtasks: []domain.Subtask{
				{ID: "10001", Type: "peer review", Status: "In Progress"},
			},
		},
	}

	tracker.On("TransitionSubtask", ctx, "10001").Return(nil)

	issued, err := uc.CloseEligible(ctx, tickets, 2)

	require.NoError(t, err)
	assert.Equal(t, 1, issued)
}
