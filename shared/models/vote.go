package models

// CommunityVote holds the aggregate vote numbers for one choice. The
// store keys these records by ChoiceID with replace-on-write semantics: a
// second update for the same choice fully replaces the prior record.
// Percentages across one story's choices are expected to sum to ~100;
// the seed data satisfies this, nothing enforces it.
type CommunityVote struct {
	ID         string `json:"id"`
	ChoiceID   string `json:"choiceId"`
	VoteCount  int    `json:"voteCount"`
	Percentage int    `json:"percentage"`
}
