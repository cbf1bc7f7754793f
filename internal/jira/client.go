// Package jira реализует клиент трекера поверх Jira REST API v2.
package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"review-bot-service/internal/domain"

	"github.com/sethvargo/go-retry"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ID перехода «Close Issue» в классическом workflow Jira.
const defaultCloseTransitionID = "2"

// Options — параметры клиента.
type Options struct {
	BaseURL           string
	Project           string
	ReviewStatus      string
	Email             string
	Password          string
	CloseTransitionID string
	HTTPClient        *http.Client
}

// Client — клиент трекера задач. Реализует domain.TrackerClient.
type Client struct {
	httpc             *http.Client
	baseURL           string
	project           string
	reviewStatus      string
	email             string
	password          string
	closeTransitionID string
	logger            *logrus.Logger
}

// NewClient создает новый экземпляр Client.
func NewClient(opts Options, logger *logrus.Logger) *Client {
	httpc := opts.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	closeID := opts.CloseTransitionID
	if closeID == "" {
		closeID = defaultCloseTransitionID
	}
	return &Client{
		httpc:             httpc,
		baseURL:           strings.TrimRight(opts.BaseURL, "/"),
		project:           opts.Project,
		reviewStatus:      opts.ReviewStatus,
		email:             opts.Email,
		password:          opts.Password,
		closeTransitionID: closeID,
		logger:            logger,
	}
}

// ListTicketsUnderReview возвращает агрегированный список тикетов
// в статусе ревью. Счетчики принятий и отклонений пересчитываются
// из комментариев каждого тикета при каждом вызове; комментарии
// запрашиваются параллельно, и отказ любого запроса проваливает
// всю агрегацию, чтобы не отдавать молча усеченный список.
func (c *Client) ListTicketsUnderReview(ctx context.Context) ([]*domain.Ticket, error) {
	issues, err := c.searchReviewIssues(ctx)
	if err != nil {
		return nil, err
	}

	tickets := make([]*domain.Ticket, len(issues))
	g, gctx := errgroup.WithContext(ctx)
	for i, issue := range issues {
		i, issue := i, issue
		g.Go(func() error {
			accepted, rejected, err := c.countReviewComments(gctx, issue.Key)
			if err != nil {
				return fmt.Errorf("ticket %s: %w", issue.Key, err)
			}
			tickets[i] = &domain.Ticket{
				Key:      issue.Key,
				Assignee: assigneeIdentity(issue.Fields.Assignee),
				Accepted: accepted,
				Rejected: rejected,
				Subtasks: toSubtasks(issue.Fields.Subtasks),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPartialAggregation, err)
	}
	return tickets, nil
}

// ListMyTickets возвращает тикеты на ревью, назначенные на identity.
func (c *Client) ListMyTickets(ctx context.Context, identity string) ([]*domain.Ticket, error) {
	tickets, err := c.ListTicketsUnderReview(ctx)
	if err != nil {
		return nil, err
	}
	mine := make([]*domain.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if t.Assignee == strings.ToLower(identity) {
			mine = append(mine, t)
		}
	}
	return mine, nil
}

// ListTicketOptions возвращает варианты выбора тикета для интерактивного
// меню, исключая тикеты, назначенные на запрашивающего пользователя.
func (c *Client) ListTicketOptions(ctx context.Context, excludeIdentity string) ([]domain.TicketOption, error) {
	tickets, err := c.ListTicketsUnderReview(ctx)
	if err != nil {
		return nil, err
	}
	options := make([]domain.TicketOption, 0, len(tickets))
	for _, t := range tickets {
		if t.Assignee == strings.ToLower(excludeIdentity) {
			continue
		}
		options = append(options, domain.TicketOption{Label: t.Key, Value: t.Key})
	}
	return options, nil
}

// AddReviewComment публикует вердикт ревью как комментарий тикета
// в фиксированном формате `{identity} {Accepted|Rejected} - "{comment}"`.
func (c *Client) AddReviewComment(ctx context.Context, ticketKey string, verdict domain.Verdict, comment, identity string) error {
	action := "Rejected"
	if verdict == domain.VerdictPass {
		action = "Accepted"
	}
	body := addCommentRequest{
		Body: fmt.Sprintf("%s %s - %q", identity, action, comment),
	}
	endpoint := fmt.Sprintf("%s/rest/api/2/issue/%s/comment", c.baseURL, ticketKey)
	return c.do(ctx, http.MethodPost, endpoint, body, nil)
}

// TransitionSubtask выдает запрос перехода закрытия подзадачи.
func (c *Client) TransitionSubtask(ctx context.Context, subtaskID string) error {
	body := transitionRequest{Transition: transitionRef{ID: c.closeTransitionID}}
	endpoint := fmt.Sprintf("%s/rest/api/2/issue/%s/transitions", c.baseURL, subtaskID)
	return c.do(ctx, http.MethodPost, endpoint, body, nil)
}

// searchReviewIssues выполняет JQL-поиск нерешенных тикетов проекта
// в настроенном статусе ревью.
func (c *Client) searchReviewIssues(ctx context.Context) ([]searchIssue, error) {
	jql := fmt.Sprintf("project = %s AND status = %q AND resolution = Unresolved", c.project, c.reviewStatus)
	endpoint := fmt.Sprintf("%s/rest/api/2/search?jql=%s&fields=key,assignee,subtasks",
		c.baseURL, url.QueryEscape(jql))

	var resp searchResponse
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Issues, nil
}

// countReviewComments считает принятия и отклонения по комментариям тикета.
// Комментарий со словом "accepted" — принятие, любой другой — отклонение.
func (c *Client) countReviewComments(ctx context.Context, ticketKey string) (accepted, rejected int, err error) {
	endpoint := fmt.Sprintf("%s/rest/api/2/issue/%s/comment", c.baseURL, ticketKey)

	var resp commentsResponse
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return 0, 0, err
	}
	for _, cm := range resp.Comments {
		if strings.Contains(strings.ToLower(cm.Body), "accepted") {
			accepted++
		} else {
			rejected++
		}
	}
	return accepted, rejected, nil
}

// do выполняет HTTP-запрос с basic auth и повторами на транзиентных
// отказах (сетевые ошибки и 5xx).
func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	backoff := retry.WithMaxRetries(3, retry.NewExponential(200*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
		if err != nil {
			return err
		}
		req.SetBasicAuth(c.email, c.password)
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpc.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			c.logger.WithFields(logrus.Fields{
				"method": method,
				"url":    endpoint,
				"status": resp.StatusCode,
			}).Warn("Jira request failed, retrying")
			return retry.RetryableError(fmt.Errorf("jira responded %d", resp.StatusCode))
		}
		if resp.StatusCode >= 400 {
			return fmt.Errorf("jira responded %d for %s %s", resp.StatusCode, method, endpoint)
		}

		if out != nil {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return fmt.Errorf("failed to decode jira response: %w", err)
			}
		}
		return nil
	})
}

func assigneeIdentity(a *assignee) string {
	if a == nil {
		return ""
	}
	if a.Key != "" {
		return strings.ToLower(a.Key)
	}
	return strings.ToLower(a.Name)
}

func toSubtasks(subtasks []subtaskIssue) []domain.Subtask {
	if len(subtasks) == 0 {
		return nil
	}
	result := make([]domain.Subtask, len(subtasks))
	for i, st := range subtasks {
		result[i] = domain.Subtask{
			ID:     st.ID,
			Type:   st.Fields.IssueType.Name,
			Status: st.Fields.Status.Name,
		}
	}
	return result
}
