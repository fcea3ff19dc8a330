package store

import "time"

// User is the root document for one diary user. Sub-documents are written
// with merge semantics, so a partial update never clobbers unrelated fields.
type User struct {
	ID        string      `bson:"_id" json:"id"`
	CreatedAt time.Time   `bson:"created_at" json:"created_at"`
	Profile   Profile     `bson:"profile,omitempty" json:"profile"`
	Riddle    RiddleState `bson:"riddle,omitempty" json:"riddle"`
}

// Profile holds the user's AI assistant settings.
type Profile struct {
	Name string `bson:"name" json:"name"`
	Pfp  string `bson:"pfp" json:"pfp"`
}

// RiddleState tracks one riddle-completion cycle. LastChatDate is set only
// after a correct answer to LastRiddle and is cleared whenever a new riddle
// is issued.
type RiddleState struct {
	LastRiddle   string `bson:"last_riddle,omitempty" json:"last_riddle,omitempty"`
	LastChatDate string `bson:"last_chat_date,omitempty" json:"last_chat_date,omitempty"`
}

// ChatDay is the append-only message log for one user and one calendar
// date. Date is a YYYY-MM-DD string, so lexicographic range queries match
// chronological order.
type ChatDay struct {
	ID       string    `bson:"_id" json:"id"`
	UserID   string    `bson:"user_id" json:"user_id"`
	Date     string    `bson:"date" json:"date"`
	Messages []Message `bson:"messages" json:"messages"`
}

// Message is immutable once stored.
type Message struct {
	Text      string    `bson:"text" json:"text"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}
