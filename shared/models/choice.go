package models

// RiskLevel values accepted on a Choice.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// ConsequenceModifiers are the signed deltas a choice applies to the
// reader's three standing tracks. A nil ConsequenceModifiers on a Choice
// means an all-zero delta.
type ConsequenceModifiers struct {
	TrustNetwork    int `json:"trustNetwork,omitempty"`
	CouncilStanding int `json:"councilStanding,omitempty"`
	CrewLoyalty     int `json:"crewLoyalty,omitempty"`
}

// Choice is one branching option of a story chapter.
type Choice struct {
	ID                   string                `json:"id"`
	StoryID              string                `json:"storyId"`
	OptionLetter         string                `json:"optionLetter"` // A, B, C
	Title                string                `json:"title"`
	Description          string                `json:"description"`
	RiskLevel            string                `json:"riskLevel"` // low, medium, high
	Impact               string                `json:"impact"`
	Unlocks              string                `json:"unlocks"`
	ConsequenceModifiers *ConsequenceModifiers `json:"consequenceModifiers,omitempty"`
}

// Modifiers returns the choice's consequence deltas, treating an absent
// modifier block as all zeros.
func (c *Choice) Modifiers() ConsequenceModifiers {
	if c.ConsequenceModifiers == nil {
		return ConsequenceModifiers{}
	}
	return *c.ConsequenceModifiers
}
