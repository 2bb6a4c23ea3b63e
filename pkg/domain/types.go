package domain

import "time"

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Session is the client's record of the currently authenticated user.
type Session struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Valid reports whether the session identifies a user.
func (s Session) Valid() bool {
	return s.UserID != ""
}

// Preferences are client-side flags persisted alongside the session.
type Preferences struct {
	DarkMode      bool `json:"dark_mode"`
	Notifications bool `json:"notifications"`
}

// DocumentRecord is the client's snapshot of one uploaded document.
// The authoritative copy lives on the backend; Timestamp is kept as the
// backend's ISO-8601 string because it carries no timezone offset.
type DocumentRecord struct {
	DocID         string   `json:"doc_id"`
	Filename      string   `json:"filename"`
	Timestamp     string   `json:"timestamp"`
	Status        string   `json:"status"`
	Summary       string   `json:"summary,omitempty"`
	Advantages    []string `json:"advantages,omitempty"`
	Disadvantages []string `json:"disadvantages,omitempty"`
	TextPreview   string   `json:"text_preview,omitempty"`
	UserID        string   `json:"user_id,omitempty"`
}

// Summary is a generated document summary with its assessment lists.
type Summary struct {
	Text          string   `json:"summary"`
	Advantages    []string `json:"advantages"`
	Disadvantages []string `json:"disadvantages"`
}

type ChatMessage struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	CreatedAt time.Time `json:"createdAt"`
}
