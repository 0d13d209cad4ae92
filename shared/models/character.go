package models

// Character is read-only reference content about a crew member or other
// figure in the story.
type Character struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Title           string   `json:"title"`
	ImageURL        string   `json:"imageUrl,omitempty"`
	Background      string   `json:"background"`
	TrustLevel      int      `json:"trustLevel"`
	AppearanceCount int      `json:"appearanceCount"`
	KeyDecisions    []string `json:"keyDecisions"`
}
