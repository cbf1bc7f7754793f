// Package slack отправляет сообщения в рабочее пространство чата:
// ответы по response URL интерактивных событий и публикации в канал.
package slack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"review-bot-service/internal/domain"

	"github.com/sirupsen/logrus"
)

const defaultAPIURL = "https://slack.com/api/chat.postMessage"

// Responder реализует domain.ChatResponder поверх Slack Web API.
type Responder struct {
	httpc    *http.Client
	botToken string
	apiURL   string
	logger   *logrus.Logger
}

// NewResponder создает новый экземпляр Responder.
func NewResponder(botToken string, logger *logrus.Logger) *Responder {
	return &Responder{
		httpc:    &http.Client{Timeout: 10 * time.Second},
		botToken: botToken,
		apiURL:   defaultAPIURL,
		logger:   logger,
	}
}

// Respond отправляет сообщение по response URL интерактивного события.
func (r *Responder) Respond(responseURL string, msg domain.Message) error {
	return r.post(responseURL, toPayload(msg, ""))
}

// PostToChannel публикует сообщение в канал от имени бота.
func (r *Responder) PostToChannel(channel string, msg domain.Message) error {
	return r.post(r.apiURL, toPayload(msg, channel))
}

func (r *Responder) post(url string, payload messagePayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if r.botToken != "" {
		req.Header.Set("Authorization", "Bearer "+r.botToken)
	}

	resp, err := r.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		r.logger.WithFields(logrus.Fields{
			"url":    url,
			"status": resp.StatusCode,
		}).Error("Chat message delivery failed")
		return fmt.Errorf("%w: chat responded %d", domain.ErrUpstreamFailure, resp.StatusCode)
	}
	return nil
}

// messagePayload — формат сообщения Slack с attachments.
type messagePayload struct {
	Channel         string       `json:"channel,omitempty"`
	Text            string       `json:"text,omitempty"`
	ReplaceOriginal bool         `json:"replace_original,omitempty"`
	Attachments     []attachment `json:"attachments,omitempty"`
}

type attachment struct {
	Text       string   `json:"text"`
	Fallback   string   `json:"fallback,omitempty"`
	CallbackID string   `json:"callback_id,omitempty"`
	Color      string   `json:"color,omitempty"`
	Type       string   `json:"attachment_type,omitempty"`
	Actions    []action `json:"actions,omitempty"`
}

type action struct {
	Name       string         `json:"name"`
	Text       string         `json:"text"`
	Type       string         `json:"type"`
	Value      string         `json:"value,omitempty"`
	Style      string         `json:"style,omitempty"`
	DataSource string         `json:"data_source,omitempty"`
	Confirm    *actionConfirm `json:"confirm,omitempty"`
}

type actionConfirm struct {
	Title       string `json:"title"`
	Text        string `json:"text"`
	OkText      string `json:"ok_text"`
	DismissText string `json:"dismiss_text"`
}

// toPayload рендерит доменное сообщение в формат Slack: секция
// становится attachment, метка и ссылки склеиваются в текст.
func toPayload(msg domain.Message, channel string) messagePayload {
	payload := messagePayload{
		Channel:         channel,
		Text:            msg.Text,
		ReplaceOriginal: msg.ReplaceOriginal,
	}
	for _, s := range msg.Sections {
		text := s.Label
		if s.TicketLinks != "" {
			text = strings.TrimRight(text, "\n") + "\n" + s.TicketLinks
		}
		att := attachment{
			Text:       text,
			Fallback:   "No buttons for you!",
			CallbackID: s.CallbackID,
			Color:      s.Color,
		}
		if len(s.Actions) > 0 {
			att.Type = "default"
			for _, a := range s.Actions {
				act := action{
					Name:       a.Name,
					Text:       a.Text,
					Type:       a.Type,
					Value:      a.Value,
					Style:      a.Style,
					DataSource: a.DataSource,
				}
				if a.Confirm != nil {
					act.Confirm = &actionConfirm{
						Title:       a.Confirm.Title,
						Text:        a.Confirm.Text,
						OkText:      a.Confirm.OkText,
						DismissText: a.Confirm.DismissText,
					}
				}
				att.Actions = append(att.Actions, act)
			}
		}
		payload.Attachments = append(payload.Attachments, att)
	}
	return payload
}
