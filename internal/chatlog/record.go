package chatlog

import (
	"encoding/json"
	"time"

	"github.com/studio101-core/server/internal/auth"
	"github.com/studio101-core/server/internal/catalog"
)

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Record is one chat message as written to the log.
type Record struct {
	UserID    *string   `json:"user_id" db:"user_id"`
	SessionID string    `json:"session_id" db:"session_id"`
	Message   string    `json:"message" db:"message"`
	Sender    Sender    `json:"sender" db:"sender"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewRecord builds a record for text sent by sender. Search results, when
// present, are folded into Message with EncodeMessage.
func NewRecord(user *auth.User, sessionID string, sender Sender, text string, results []catalog.Product, now time.Time) Record {
	var userID *string
	if user != nil && user.ID != "" {
		id := user.ID
		userID = &id
	}
	return Record{
		UserID:    userID,
		SessionID: sessionID,
		Message:   EncodeMessage(text, results),
		Sender:    sender,
		CreatedAt: now.UTC(),
	}
}

// Text returns the human-readable part of the message.
func (r Record) Text() string {
	text, _ := DecodeMessage(r.Message)
	return text
}

// Attachment is the subset of a product kept with a logged search result.
type Attachment struct {
	ID       int              `json:"id"`
	Name     string           `json:"name"`
	Price    string           `json:"price"`
	Image    string           `json:"image"`
	Category catalog.Category `json:"category"`
}

type envelope struct {
	Message       string       `json:"message"`
	SearchResults []Attachment `json:"searchResults"`
}

// EncodeMessage returns text unchanged when there are no results. Otherwise it
// returns a JSON document carrying the text and the attached results. Text that
// already reads as such a document is wrapped too, with an empty result list,
// so DecodeMessage always returns the original text.
func EncodeMessage(text string, results []catalog.Product) string {
	if len(results) == 0 {
		if _, atts := DecodeMessage(text); atts == nil {
			return text
		}
	}
	env := envelope{
		Message:       text,
		SearchResults: make([]Attachment, 0, len(results)),
	}
	for _, p := range results {
		env.SearchResults = append(env.SearchResults, Attachment{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Image:    p.Image,
			Category: p.Category,
		})
	}
	b, err := json.Marshal(env)
	if err != nil {
		return text
	}
	return string(b)
}

// DecodeMessage reverses EncodeMessage. Plain messages come back with nil results.
func DecodeMessage(raw string) (string, []Attachment) {
	if len(raw) == 0 || raw[0] != '{' {
		return raw, nil
	}
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil || env.SearchResults == nil {
		return raw, nil
	}
	return env.Message, env.SearchResults
}
