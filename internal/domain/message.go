package domain

// Цветовые метки секций в формате платформы чата.
const (
	ColorNeedsReview = "#0099ff"
	ColorPassed      = "good"
	ColorRejected    = "danger"
	ColorPrompt      = "#6699ff"
)

// MessageAction — интерактивный элемент секции (кнопка или меню выбора).
type MessageAction struct {
	Name       string
	Text       string
	Type       string
	Value      string
	Style      string
	DataSource string
	Confirm    *ActionConfirm
}

// ActionConfirm — диалог подтверждения для кнопки.
type ActionConfirm struct {
	Title       string
	Text        string
	OkText      string
	DismissText string
}

// Section — одна секция исходящего сообщения: метка, ссылки на тикеты
// через запятую и цветовая метка.
type Section struct {
	Label       string
	TicketLinks string
	Color       string
	CallbackID  string
	Actions     []MessageAction
}

// Message — исходящее сообщение для платформы чата.
type Message struct {
	Text            string
	ReplaceOriginal bool
	Sections        []Section
}

// ChatResponder определяет контракт для отправки сообщений в чат.
type ChatResponder interface {
	// Respond отправляет сообщение по response URL интерактивного события.
	Respond(responseURL string, msg Message) error
	// PostToChannel публикует сообщение в канал.
	PostToChannel(channel string, msg Message) error
}
