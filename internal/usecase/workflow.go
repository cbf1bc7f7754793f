package usecase

import (
	"context"
	"fmt"
	"strings"

	"review-bot-service/internal/domain"
	"review-bot-service/internal/draft"

	"github.com/sirupsen/logrus"
)

// WorkflowUseCase реализует диалог подачи ревью: слэш-команды,
// интерактивные отклики и рендер классифицированных списков.
type WorkflowUseCase struct {
	drafts          *draft.Store
	tracker         domain.TrackerClient
	source          domain.TicketSource
	cache           domain.ReviewCache
	logger          *logrus.Logger
	issueURL        string
	requiredReviews int
}

// NewWorkflowUseCase создает новый экземпляр WorkflowUseCase.
// source — источник агрегатов (живой трекер либо кеш); cache может быть
// nil, тогда принятые ревью в кеш не записываются.
func NewWorkflowUseCase(
	drafts *draft.Store,
	tracker domain.TrackerClient,
	source domain.TicketSource,
	cache domain.ReviewCache,
	logger *logrus.Logger,
	issueURL string,
	requiredReviews int,
) domain.WorkflowUseCase {
	return &WorkflowUseCase{
		drafts:          drafts,
		tracker:         tracker,
		source:          source,
		cache:           cache,
		logger:          logger,
		issueURL:        issueURL,
		requiredReviews: requiredReviews,
	}
}

// NewReview начинает черновик ревью и строит сообщение выбора тикета.
func (uc *WorkflowUseCase) NewReview(ctx context.Context, userID, comment string) (domain.Message, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return domain.Message{Text: "Need a comment for the review!"}, domain.ErrEmptyComment
	}

	// Перезапись предыдущего черновика — штатное поведение
	if err := uc.drafts.Start(userID, comment); err != nil {
		return domain.Message{}, err
	}

	uc.logger.WithFields(logrus.Fields{
		"user": userID,
	}).Info("Review draft started")

	return domain.Message{
		ReplaceOriginal: true,
		Sections: []domain.Section{
			{
				Label:      fmt.Sprintf("Choose a ticket to Review!\n - %q", comment),
				Color:      domain.ColorPrompt,
				CallbackID: string(domain.EventNewReview),
				Actions: []domain.MessageAction{
					{Name: domain.ActionTicket, Text: "Ticket", Type: "select", DataSource: "external"},
					{Name: domain.ActionPass, Text: "Pass", Type: "button", Value: "pass", Style: "primary"},
					{Name: domain.ActionReject, Text: "Reject", Type: "button", Value: "reject", Style: "danger"},
					{
						Name: domain.ActionCancel, Text: "Cancel", Type: "button", Value: "cancel",
						Confirm: &domain.ActionConfirm{
							Title:       "Abort this Review?",
							Text:        "Don't leave me.",
							OkText:      "Yes",
							DismissText: "No",
						},
					},
				},
			},
		},
	}, nil
}

// ShowTickets возвращает сообщение с тикетами на ревью, разложенными
// по корзинам классификации.
func (uc *WorkflowUseCase) ShowTickets(ctx context.Context, scope domain.ListScope, identity string) (domain.Message, error) {
	var (
		tickets []*domain.Ticket
		err     error
		label   string
	)

	switch scope {
	case domain.ScopeAll:
		tickets, err = uc.source.ListTicketsUnderReview(ctx)
		label = "all"
	case domain.ScopeMine:
		tickets, err = uc.tracker.ListMyTickets(ctx, identity)
		label = "your"
	default:
		return domain.Message{}, domain.ErrUnknownScope
	}
	if err != nil {
		uc.logger.WithError(err).Error("Failed to fetch tickets for listing")
		return domain.Message{}, fmt.Errorf("listing tickets: %w", err)
	}

	buckets := Classify(tickets, uc.requiredReviews)

	msg := domain.Message{
		Text: fmt.Sprintf("Here are %s tickets under review!", label),
		Sections: []domain.Section{
			{Label: "Needs Review:", TicketLinks: uc.ticketLinks(buckets.NeedsReview), Color: domain.ColorNeedsReview, CallbackID: string(domain.EventNeedsReview)},
			{Label: "Passing:", TicketLinks: uc.ticketLinks(buckets.Passed), Color: domain.ColorPassed, CallbackID: string(domain.EventNeedsReview)},
			{Label: "Rejected:", TicketLinks: uc.ticketLinks(buckets.Rejected), Color: domain.ColorRejected, CallbackID: string(domain.EventNeedsReview)},
		},
	}
	return msg, nil
}

// HandleInteraction обрабатывает отклик на интерактивное сообщение.
func (uc *WorkflowUseCase) HandleInteraction(ctx context.Context, ev domain.InteractionEvent) (domain.Message, bool, error) {
	switch ev.ActionName {
	case domain.ActionTicket:
		// Тихий ack: выбор тикета не требует ответа в чат. Отсутствие
		// черновика — поздний колбэк, логируем и игнорируем.
		if !uc.drafts.SetTicket(ev.UserID, ev.SelectedValue) {
			uc.logger.WithFields(logrus.Fields{
				"user":   ev.UserID,
				"ticket": ev.SelectedValue,
			}).Warn("Ticket selected without an active draft")
		}
		return domain.Message{}, false, nil

	case domain.ActionPass, domain.ActionReject:
		verdict, _ := domain.ParseVerdict(ev.ActionName)
		return uc.submitVerdict(ctx, ev, verdict)

	case domain.ActionCancel:
		uc.drafts.Cancel(ev.UserID)
		return domain.Message{
			Text:            "No worries, I'll cancel that for you!",
			ReplaceOriginal: true,
		}, true, nil

	default:
		return domain.Message{
			Text: fmt.Sprintf("%s clicked: %s", ev.UserName, ev.ActionName),
		}, true, domain.ErrUnknownAction
	}
}

// submitVerdict завершает черновик и отправляет вердикт в трекер.
func (uc *WorkflowUseCase) submitVerdict(ctx context.Context, ev domain.InteractionEvent, verdict domain.Verdict) (domain.Message, bool, error) {
	if !uc.drafts.SetVerdict(ev.UserID, verdict) {
		// Тикет еще не выбран либо черновика нет: no-op по контракту
		uc.logger.WithFields(logrus.Fields{
			"user":    ev.UserID,
			"verdict": verdict,
		}).Info("Verdict ignored: draft incomplete")
		return domain.Message{}, false, nil
	}

	sub, ok := uc.drafts.Complete(ev.UserID)
	if !ok {
		// Конкурирующий клик уже изъял черновик — безопасный no-op
		return domain.Message{}, false, nil
	}

	logEntry := uc.logger.WithFields(logrus.Fields{
		"user":    ev.UserID,
		"ticket":  sub.TicketKey,
		"verdict": sub.Verdict,
	})

	if err := uc.tracker.AddReviewComment(ctx, sub.TicketKey, sub.Verdict, sub.Comment, ev.UserName); err != nil {
		logEntry.WithError(err).Error("Failed to submit review to tracker")
		// Возвращаем черновик, чтобы пользователь мог повторить отправку
		uc.drafts.Restore(ev.UserID, sub)
		return domain.Message{Text: "Could not submit your review, please try again."},
			true, fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
	}

	if uc.cache != nil {
		entry := domain.ReviewEntry{
			TicketKey: sub.TicketKey,
			Reviewer:  ev.UserID,
			Passed:    sub.Verdict == domain.VerdictPass,
			Comment:   sub.Comment,
		}
		if err := uc.cache.RecordReview(ctx, entry); err != nil {
			// Кеш вторичен: трекер уже принял вердикт
			logEntry.WithError(err).Warn("Failed to record review in cache")
		}
	}

	logEntry.Info("Review submitted")

	verb := "Rejecting"
	if sub.Verdict == domain.VerdictPass {
		verb = "Passing"
	}
	return domain.Message{
		Text:            fmt.Sprintf("%s: %s - %q", verb, sub.TicketKey, sub.Comment),
		ReplaceOriginal: true,
	}, true, nil
}

// ticketLinks строит список ссылок формата {issueURL}/{key} через запятую.
func (uc *WorkflowUseCase) ticketLinks(tickets []*domain.Ticket) string {
	links := make([]string, len(tickets))
	for i, t := range tickets {
		links[i] = fmt.Sprintf("<%s/%s|%s>", uc.issueURL, t.Key, t.Key)
	}
	return strings.Join(links, ", ")
}
