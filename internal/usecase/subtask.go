package usecase

import (
	"context"
	"fmt"
	"strings"

	"review-bot-service/internal/domain"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// SubtaskUseCase реализует закрытие peer-review подзадач тикетов,
// набравших порог принятых ревью.
type SubtaskUseCase struct {
	tracker     domain.TrackerClient
	logger      *logrus.Logger
	subtaskType string
}

// NewSubtaskUseCase создает новый экземпляр SubtaskUseCase.
func NewSubtaskUseCase(tracker domain.TrackerClient, logger *logrus.Logger, subtaskType string) domain.SubtaskUseCase {
	return &SubtaskUseCase{
		tracker:     tracker,
		logger:      logger,
		subtaskType: subtaskType,
	}
}

// CloseEligible выдает по одному запросу перехода на каждую открытую
// peer-review подзадачу тикета с достаточным числом принятых ревью.
// Возвращает число выданных запросов; отказы отдельных переходов
// собираются в общую ошибку, не прерывая обход. Повторный запуск
// идемпотентен: уже закрытые подзадачи отфильтровываются по статусу.
func (uc *SubtaskUseCase) CloseEligible(ctx context.Context, tickets []*domain.Ticket, requiredReviews int) (int, error) {
	issued := 0
	var errs error

	for _, t := range tickets {
		if t.Accepted < requiredReviews || len(t.Subtasks) == 0 {
			continue
		}
		for _, st := range t.Subtasks {
			if !uc.eligible(st) {
				continue
			}
			issued++
			if err := uc.tracker.TransitionSubtask(ctx, st.ID); err != nil {
				uc.logger.WithFields(logrus.Fields{
					"ticket":  t.Key,
					"subtask": st.ID,
				}).WithError(err).Error("Subtask transition failed")
				errs = multierr.Append(errs, fmt.Errorf("%w: %s: %v", domain.ErrSubtaskTransitionFailed, st.ID, err))
				continue
			}
			uc.logger.WithFields(logrus.Fields{
				"ticket":  t.Key,
				"subtask": st.ID,
			}).Info("Subtask closure issued")
		}
	}

	return issued, errs
}

// eligible: подзадача нужного типа, еще не закрытая.
func (uc *SubtaskUseCase) eligible(st domain.Subtask) bool {
	return strings.EqualFold(st.Type, uc.subtaskType) && !strings.EqualFold(st.Status, "Closed")
}
