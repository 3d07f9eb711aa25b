package domain

import "time"

// Sender identifies who authored an entry in a conversation
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// ChatMessage is a text question for the advisory bot
type ChatMessage struct {
	Content     string `json:"content" validate:"required,max=2000"`
	Language    string `json:"language" validate:"omitempty,oneof=hi en pa"`
	MessageType string `json:"message_type,omitempty" validate:"omitempty,oneof=text voice image"`
}

// VoiceMessage is a transcribed voice question
type VoiceMessage struct {
	AudioData       string `json:"audio_data,omitempty"`
	TranscribedText string `json:"transcribed_text" validate:"required,max=2000"`
	Language        string `json:"language" validate:"omitempty,oneof=hi en pa"`
	AudioFormat     string `json:"audio_format,omitempty"`
}

// ChatResponse is the bot's answer
type ChatResponse struct {
	Message          string    `json:"message"`
	AdvisoryType     string    `json:"advisory_type"`
	Confidence       float64   `json:"confidence"`
	Suggestions      []string  `json:"suggestions"`
	Language         string    `json:"language"`
	AudioResponseURL *string   `json:"audio_response_url,omitempty"`
	Timestamp        Timestamp `json:"timestamp"`
}

// ChatHistoryEntry is one stored advisory from earlier conversations
type ChatHistoryEntry struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Type      string    `json:"type"`
	CreatedAt Timestamp `json:"created_at"`
	IsRead    bool      `json:"is_read"`
}

// ChatHistory is the wire envelope of /chatbot/chat-history
type ChatHistory struct {
	Advisories []ChatHistoryEntry `json:"advisories"`
	Total      int                `json:"total"`
}

// ConversationEntry is one turn of an in-memory conversation. It is never
// sent to the backend.
type ConversationEntry struct {
	Sender      Sender
	Content     string
	Timestamp   time.Time
	Type        string
	Confidence  *float64
	Suggestions []string
	AudioURL    *string
}

// Conversation holds the turns of a single chat session
type Conversation struct {
	Entries []ConversationEntry
}

// AddQuestion records a user turn
func (c *Conversation) AddQuestion(content string, at time.Time) {
	c.Entries = append(c.Entries, ConversationEntry{
		Sender:    SenderUser,
		Content:   content,
		Timestamp: at,
	})
}

// AddAnswer records a bot turn from the backend response
func (c *Conversation) AddAnswer(resp *ChatResponse) {
	confidence := resp.Confidence
	at := resp.Timestamp.Time
	if at.IsZero() {
		at = time.Now()
	}
	c.Entries = append(c.Entries, ConversationEntry{
		Sender:      SenderBot,
		Content:     resp.Message,
		Timestamp:   at,
		Type:        resp.AdvisoryType,
		Confidence:  &confidence,
		Suggestions: resp.Suggestions,
		AudioURL:    resp.AudioResponseURL,
	})
}

// LastSuggestions returns the suggestions of the latest bot turn
func (c *Conversation) LastSuggestions() []string {
	for i := len(c.Entries) - 1; i >= 0; i-- {
		if c.Entries[i].Sender == SenderBot {
			return c.Entries[i].Suggestions
		}
	}
	return nil
}
