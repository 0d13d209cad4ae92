package models

import "time"

// Story is one narrative chapter. Exactly one story is expected to be
// active at a time; readers always see the active one.
type Story struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	ChapterNumber int       `json:"chapterNumber"`
	Location      string    `json:"location"`
	Content       string    `json:"content"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ChoiceWithVotes is a Choice augmented with its community vote numbers
// for the story endpoint.
type ChoiceWithVotes struct {
	Choice
	VoteCount  int `json:"voteCount"`
	Percentage int `json:"percentage"`
}

// StoryDetail is the payload of GET /api/stories/current: the active story
// plus its choices, each carrying vote numbers.
type StoryDetail struct {
	Story
	Choices []ChoiceWithVotes `json:"choices"`
}
