// Package mocks содержит testify-моки коллабораторов для unit-тестов.
package mocks

import (
	"context"

	"review-bot-service/internal/domain"

	"github.com/stretchr/testify/mock"
)

type TrackerClient struct {
	mock.Mock
}

func (m *TrackerClient) ListTicketsUnderReview(ctx context.Context) ([]*domain.Ticket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Ticket), args.Error(1)
}

func (m *TrackerClient) ListMyTickets(ctx context.Context, identity string) ([]*domain.Ticket, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Ticket), args.Error(1)
}

func (m *TrackerClient) ListTicketOptions(ctx context.Context, excludeIdentity string) ([]domain.TicketOption, error) {
	args := m.Called(ctx, excludeIdentity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TicketOption), args.Error(1)
}

func (m *TrackerClient) AddReviewComment(ctx context.Context, ticketKey string, verdict domain.Verdict, comment, identity string) error {
	args := m.Called(ctx, ticketKey, verdict, comment, identity)
	return args.Error(0)
}

func (m *TrackerClient) TransitionSubtask(ctx context.Context, subtaskID string) error {
	args := m.Called(ctx, subtaskID)
	return args.Error(0)
}

type ChatResponder struct {
	mock.Mock
}

func (m *ChatResponder) Respond(responseURL string, msg domain.Message) error {
	args := m.Called(responseURL, msg)
	return args.Error(0)
}

func (m *ChatResponder) PostToChannel(channel string, msg domain.Message) error {
	args := m.Called(channel, msg)
	return args.Error(0)
}

type ReviewCache struct {
	mock.Mock
}

func (m *ReviewCache) ListTicketsUnderReview(ctx context.Context) ([]*domain.Ticket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Ticket), args.Error(1)
}

func (m *ReviewCache) RecordReview(ctx context.Context, entry domain.ReviewEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type WorkflowUseCase struct {
	mock.Mock
}

func (m *WorkflowUseCase) NewReview(ctx context.Context, userID, comment string) (domain.Message, error) {
	args := m.Called(ctx, userID, comment)
	return args.Get(0).(domain.Message), args.Error(1)
}

func (m *WorkflowUseCase) ShowTickets(ctx context.Context, scope domain.ListScope, identity string) (domain.Message, error) {
	args := m.Called(ctx, scope, identity)
	return args.Get(0).(domain.Message), args.Error(1)
}

func (m *WorkflowUseCase) HandleInteraction(ctx context.Context, ev domain.InteractionEvent) (domain.Message, bool, error) {
	args := m.Called(ctx, ev)
	return args.Get(0).(domain.Message), args.Bool(1), args.Error(2)
}
