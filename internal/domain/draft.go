package domain

// Verdict — исход ревью: pass или reject.
type Verdict string

const (
	VerdictPass   Verdict = "pass"
	VerdictReject Verdict = "reject"
)

// ParseVerdict возвращает вердикт по имени действия из чата.
func ParseVerdict(s string) (Verdict, bool) {
	switch Verdict(s) {
	case VerdictPass, VerdictReject:
		return Verdict(s), true
	}
	return "", false
}

// ReviewDraft — незавершенное ревью одного пользователя.
// Поля заполняются в произвольном порядке: платформа чата не гарантирует
// очередность доставки интерактивных событий, поэтому готовность
// определяется наличием обоих полей, а не линейным конечным автоматом.
type ReviewDraft struct {
	Comment   string
	TicketKey string
	Verdict   Verdict
}

// Complete сообщает, заполнены ли все поля, необходимые для отправки.
func (d *ReviewDraft) Complete() bool {
	return d != nil && d.Comment != "" && d.TicketKey != "" && d.Verdict != ""
}

// Submission — финализированное ревью, атомарно изъятое из черновика.
type Submission struct {
	Comment   string
	TicketKey string
	Verdict   Verdict
}
