package domain

import "errors"

// Domain errors (для бизнес-логики)
var (
	// Validation errors
	ErrEmptyComment  = errors.New("review comment must not be empty")
	ErrUnknownScope  = errors.New("unknown ticket listing scope")
	ErrUnknownAction = errors.New("unrecognized interaction action")

	// Draft errors
	ErrNoActiveDraft   = errors.New("no active review draft")
	ErrDraftIncomplete = errors.New("review draft is incomplete")

	// Upstream errors
	ErrUpstreamFailure    = errors.New("upstream tracker or chat call failed")
	ErrPartialAggregation = errors.New("aggregation incomplete: one or more ticket fetches failed")

	// Subtask errors
	ErrSubtaskTransitionFailed = errors.New("subtask transition failed")
)

// HTTPError для ответов наружу
type HTTPError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error HTTPError `json:"error"`
}

// Маппинг domain ошибок в HTTP ошибки
var ErrorMapping = map[error]HTTPError{
	ErrEmptyComment:       {Code: "EMPTY_COMMENT", Message: "review comment is required"},
	ErrUnknownScope:       {Code: "UNKNOWN_SCOPE", Message: "listing scope must be all or mine"},
	ErrUnknownAction:      {Code: "UNKNOWN_ACTION", Message: "interaction action not recognized"},
	ErrNoActiveDraft:      {Code: "NO_DRAFT", Message: "no review in progress for this user"},
	ErrDraftIncomplete:    {Code: "DRAFT_INCOMPLETE", Message: "pick a ticket before submitting a verdict"},
	ErrUpstreamFailure:    {Code: "UPSTREAM_FAILURE", Message: "tracker or chat call failed, please retry"},
	ErrPartialAggregation: {Code: "PARTIAL_AGGREGATION", Message: "could not aggregate all tickets"},
}

// ToHTTPError преобразует domain ошибку в HTTP ошибку
func ToHTTPError(err error) (HTTPError, bool) {
	for domainErr, httpErr := range ErrorMapping {
		if errors.Is(err, domainErr) {
			return httpErr, true
		}
	}
	return HTTPError{}, false
}
