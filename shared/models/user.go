package models

import "time"

// User is a registered reader (a "porter" in the narrative's terms).
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}

// UserChoice is an append-only log entry recording that a user selected a
// choice for a story. Entries are never updated or deleted, and nothing
// deduplicates repeat submissions for the same (user, story).
type UserChoice struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ChoiceID  string    `json:"choiceId"`
	StoryID   string    `json:"storyId"`
	Timestamp time.Time `json:"timestamp"`
}
