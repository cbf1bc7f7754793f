package usecase_test

import (
	"context"
	"errors"
	"testing"

	"review-bot-service/internal/domain"
	"review-bot-service/internal/draft"
	"review-bot-service/internal/mocks"
	"review-bot-service/internal/usecase"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const issueURL = "https://jira.example.com/browse"

func newWorkflow(drafts *draft.Store, tracker *mocks.TrackerClient, cache domain.ReviewCache) domain.WorkflowUseCase {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return usecase.NewWorkflowUseCase(drafts, tracker, tracker, cache, logger, issueURL, 2)
}

func TestWorkflow_NewReview_EmptyComment(t *testing.T) {
	drafts := draft.NewStore()
	tracker := &mocks.TrackerClient{}
	uc := newWorkflow(drafts, tracker, nil)

	msg, err := uc.NewReview(context.Background(), "u1", "   ")

	assert.ErrorIs(t, err, domain.ErrEmptyComment)
	assert.Equal(t, "Need a comment for the review!", msg.Text)
	_, ok := drafts.Get("u1")
	assert.False(t, ok, "validation failure must not create a draft")
}

func TestWorkflow_NewReview_StartsDraftAndPrompts(t *testing.T) {
	drafts := draft.NewStore()
	tracker := &mocks.TrackerClient{}
	uc := newWorkflow(drafts, tracker, nil)

	msg, err := uc.NewReview(context.Background(), "u1", "looks good")

	require.NoError(t, err)
	d, ok := drafts.Get("u1")
	require.True(t, ok)
	assert.Equal(t, "looks good", d.Comment)

	require.Len(t, msg.Sections, 1)
	actions := msg.Sections[0].Actions
	require.Len(t, actions, 4)
	assert.Equal(t, domain.ActionTicket, actions[0].Name)
	assert.Equal(t, "external", actions[0].DataSource)
	assert.Equal(t, domain.ActionPass, actions[1].Name)
	assert.Equal(t, domain.ActionReject, actions[2].Name)
	assert.Equal(t, domain.ActionCancel, actions[3].Name)
	assert.NotNil(t, actions[3].Confirm)
}

func TestWorkflow_ShowTickets_All(t *testing.T) {
	ctx := context.Background()
	drafts := draft.NewStore()
	tracker := &mocks.TrackerClient{}
	uc := newWorkflow(drafts, tracker, nil)

	tickets := []*domain.Ticket{
		{Key: "T-1", Accepted: 2},
		{Key: "T-2", Rejected: 1},
		{Key: "T-3"},
	}
	tracker.On("ListTicketsUnderReview", ctx).Return(tickets, nil)

	msg, err := uc.ShowTickets(ctx, domain.ScopeAll, "alice")

	require.NoError(t, err)
	assert.Equal(t, "Here are all tickets under review!", msg.Text)
	require.Len(t, msg.Sections, 3)
	assert.Equal(t, "Needs Review:", msg.Sections[0].Label)
	assert.Equal(t, "<https://jira.example.com/browse/T-3|T-3>", msg.Sections[0].TicketLinks)
	assert.Equal(t, "Passing:", msg.Sections[1].Label)
	assert.Equal(t, "<https://jira.example.com/browse/T-1|T-1>", msg.Sections[1].TicketLinks)
	assert.Equal(t, "Rejected:", msg.Sections[2].Label)
	assert.Equal(t, "<https://jira.example.com/browse/T-2|T-2>", msg.Sections[2].TicketLinks)
	tracker.AssertExpectations(t)
}

func TestWorkflow_ShowTickets_Mine(t *testing.T) {
	ctx := context.Background()
	drafts := draft.NewStore()
	tracker := &mocks.TrackerClient{}
	uc := newWorkflow(drafts, tracker, nil)

	tracker.On("ListMyTickets", ctx, "alice").Return([]*domain.Ticket{{Key: "T-1", Accepted: 1}}, nil)

	msg, err := uc.ShowTickets(ctx, domain.ScopeMine, "alice")

	require.NoError(t, err)
	assert.Equal(t, "Here are your tickets under review!", msg.Text)
	tracker.AssertExpectations(t)
}

func TestWorkflow_ShowTickets_AggregationFailureSurfaces(t *testing.T) {
	ctx := context.Background()
	drafts := draft.NewStore()
	tracker := &mocks.TrackerClient{}
	uc := newWorkflow(drafts, tracker, nil)

	tracker.On("ListTicketsUnderReview", ctx).Return(nil, domain.ErrPartialAggregation)

	_, err := uc.ShowTickets(ctx, domain.ScopeAll, "alice")

	assert.ErrorIs(t, err, domain.ErrPartialAggregation)
}

func TestWorkflow_ShowTickets_UnknownScope(t *testing.T) {
	uc := newWorkflow(draft.NewStore(), &mocks.TrackerClient{}, nil)

	_, err := uc.ShowTickets(context.Background(), "everything", "alice")

	assert.ErrorIs(t, err, domain.ErrUnknownScope)
}

func TestWorkflow_Interaction_TicketSelection_SilentAck(t *testing.T) {
	ctx := context.Background()
	drafts := draft.NewStore()
	tracker := &mocks.TrackerClient{}
	uc := newWorkflow(drafts, tracker, nil)

	require.NoError(t, drafts.Start("u1", "x"))

	_, reply, err := uc.HandleInteraction(ctx, domain.InteractionEvent{
		UserID:        "u1",
		ActionName:    domain.ActionTicket,
		SelectedValue: "T-1",
	})

	require.NoError(t, err)
	assert.False(t, reply)
	d, _ := drafts.Get("u1")
	assert.Equal(t, "T-1", d.TicketKey)
}

func TestWorkflow_Interaction_TicketSelection_LateCallback(t *testing.T) {
	uc := newWorkflow(draft.NewStore(), &mocks.TrackerClient{}, nil)

	// No draft: late callback is logged and ignored
	_, reply, err := uc.HandleInteraction(context.Background(), domain.InteractionEvent{
		UserID:        "u1",
		ActionName:    domain.ActionTicket,
		SelectedValue: "T-1",
	})

	require.NoError(t, err)
	assert.False(t, reply)
}

func TestWorkflow_Interaction_VerdictBeforeTicket_Noop(t *testing.T) {
	ctx := context.Background()
	drafts := draft.NewStore()
	tracker := &mocks.TrackerClient{}
	uc := newWorkflow(drafts, tracker, nil)

	require.NoError(t, drafts.Start("u1", "x"))

	_, reply, err := uc.HandleInteraction(ctx, domain.InteractionEvent{
		UserID:     "u1",
		ActionName: domain.ActionPass,
	})

	require.NoError(t, err)
	assert.False(t, reply)
	// Draft survives untouched
	d, ok := drafts.Get("u1")
	require.True(t, ok)
	assert.Equal(t, "x", d.Comment)
	tracker.AssertNotCalled(t, "AddReviewComment")
}

func TestWorkflow_Interaction_Submit_Pass(t *testing.T) {
	ctx := context.Background()
	drafts := draft.NewStore()
	tracker := &mocks.TrackerClient{}
	uc := newWorkflow(drafts, tracker, nil)

	require.NoError(t, drafts.Start("u1", "x"))
	require.True(t, drafts.SetTicket("u1", "T-1"))

	tracker.On("AddReviewComment", ctx, "T-1", domain.VerdictPass, "x", "alice").Return(nil)

	msg, reply, err := uc.HandleInteraction(ctx, domain.InteractionEvent{
		UserID:     "u1",
		UserName:   "alice",
		ActionName: domain.ActionPass,
	})

	require.NoError(t, err)
	assert.True(t, reply)
	assert.Equal(t, `Passing: T-1 - "x"`, msg.Text)
	assert.True(t, msg.ReplaceOriginal)

	// Draft is consumed
	_, ok := drafts.Get("u1")
	assert.False(t, ok)
	tracker.AssertExpectations(t)
}

func TestWorkflow_Interaction_Submit_RecordsToCache(t *testing.T) {
	ctx := context.Background()
	drafts := draft.NewStore()
	tracker := &mocks.TrackerClient{}
	cache := &mocks.ReviewCache{}
	uc := newWorkflow(drafts, tracker, cache)

	require.NoError(t, drafts.Start("u1", "nope"))
	require.True(t, drafts.SetTicket("u1", "T-2"))

	tracker.On("AddReviewComment", ctx, "T-2", domain.VerdictReject, "nope", "bob").Return(nil)
	cache.On("RecordReview", ctx, domain.ReviewEntry{
		TicketKey: "T-2",
		Reviewer:  "u1",
		Passed:    false,
		Comment:   "nope",
	}).Return(nil)

	msg, reply, err := uc.HandleInteraction(ctx, domain.InteractionEvent{
		UserID:     "u1",
		UserName:   "bob",
		ActionName: domain.ActionReject,
	})

	require.NoError(t, err)
	assert.True(t, reply)
	assert.Equal(t, `Rejecting: T-2 - "nope"`, msg.Text)
	tracker.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestWorkflow_Interaction_Submit_UpstreamFailureRestoresDraft(t *testing.T) {
	ctx := context.Background()
	drafts := draft.NewStore()
	tracker := &mocks.TrackerClient{}
	uc := newWorkflow(drafts, tracker, nil)

	require.NoError(t, drafts.Start("u1", "x"))
	require.True(t, drafts.SetTicket("u1", "T-1"))

	tracker.On("AddReviewComment", ctx, "T-1", domain.VerdictPass, "x", "alice").Return(errors.New("jira down")).Once()

	msg, reply, err := uc.HandleInteraction(ctx, domain.InteractionEvent{
		UserID:     "u1",
		UserName:   "alice",
		ActionName: domain.ActionPass,
	})

	assert.ErrorIs(t, err, domain.ErrUpstreamFailure)
	assert.True(t, reply)
	assert.Equal(t, "Could not submit your review, please try again.", msg.Text)

	// Draft restored with full progress so the user can retry
	d, ok := drafts.Get("u1")
	require.True(t, ok)
	assert.Equal(t, "x", d.Comment)
	assert.Equal(t, "T-1", d.TicketKey)
	assert.Equal(t, domain.VerdictPass, d.Verdict)

	// Retry succeeds
	tracker.On("AddReviewComment", ctx, "T-1", domain.VerdictPass, "x", "alice").Return(nil).Once()
	_, _, err = uc.HandleInteraction(ctx, domain.InteractionEvent{
		UserID:     "u1",
		UserName:   "alice",
		ActionName: domain.ActionPass,
	})
	require.NoError(t, err)
	tracker.AssertExpectations(t)
}

func TestWorkflow_Interaction_Cancel(t *testing.T) {
	ctx := context.Background()
	drafts := draft.NewStore()
	tracker := &mocks.TrackerClient{}
	uc := newWorkflow(drafts, tracker, nil)

	require.NoError(t, drafts.Start("u1", "x"))

	msg, reply, err := uc.HandleInteraction(ctx, domain.InteractionEvent{
		UserID:     "u1",
		ActionName: domain.ActionCancel,
	})

	require.NoError(t, err)
	assert.True(t, reply)
	assert.Equal(t, "No worries, I'll cancel that for you!", msg.Text)
	_, ok := drafts.Get("u1")
	assert.False(t, ok)
}

func TestWorkflow_Interaction_UnrecognizedAction_Echoes(t *testing.T) {
	drafts := draft.NewStore()
	uc := newWorkflow(drafts, &mocks.TrackerClient{}, nil)

	require.NoError(t, drafts.Start("u1", "x"))

	msg, reply, err := uc.HandleInteraction(context.Background(), domain.InteractionEvent{
		UserID:     "u1",
		UserName:   "alice",
		ActionName: "dance",
	})

	assert.ErrorIs(t, err, domain.ErrUnknownAction)
	assert.True(t, reply)
	assert.Equal(t, "alice clicked: dance", msg.Text)

	// Draft state untouched
	_, ok := drafts.Get("u1")
	assert.True(t, ok)
}
