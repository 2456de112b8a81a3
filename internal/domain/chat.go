package domain

// Sender identifies who wrote a chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// ChatCorrection is optional guidance attached to a user message when the
// generator spotted a language mistake worth fixing.
type ChatCorrection struct {
	Original    string `json:"original"`
	Fixed       string `json:"fixed"`
	Explanation string `json:"explanation"`
}

// ChatMessage is one message of the open-ended conversation mode. Messages
// are appended in user/AI pairs per voice turn; Correction only ever appears
// on user messages.
type ChatMessage struct {
	ID         string          `json:"id"`
	Sender     Sender          `json:"sender"`
	Text       string          `json:"text"`
	Correction *ChatCorrection `json:"correction,omitempty"`
}
