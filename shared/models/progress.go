package models

// UserProgress tracks a reader's position and standing across the story.
// The three track values are unbounded signed integers; nothing clamps
// them on either side.
type UserProgress struct {
	ID               string   `json:"id"`
	UserID           string   `json:"userId"`
	CurrentChapter   int      `json:"currentChapter"`
	TotalChoices     int      `json:"totalChoices"`
	TrustNetwork     int      `json:"trustNetwork"`
	CouncilStanding  int      `json:"councilStanding"`
	CrewLoyalty      int      `json:"crewLoyalty"`
	CompletedStories []string `json:"completedStories"`
}

// UserProgressPatch is a partial update of UserProgress. Nil fields are
// left untouched by the merge; CompletedStories, when set, replaces the
// existing array wholesale.
type UserProgressPatch struct {
	CurrentChapter   *int     `json:"currentChapter,omitempty"`
	TotalChoices     *int     `json:"totalChoices,omitempty"`
	TrustNetwork     *int     `json:"trustNetwork,omitempty"`
	CouncilStanding  *int     `json:"councilStanding,omitempty"`
	CrewLoyalty      *int     `json:"crewLoyalty,omitempty"`
	CompletedStories []string `json:"completedStories,omitempty"`
}

// Merge shallow-merges the patch over the progress record. Fields absent
// from the patch are preserved.
func (p *UserProgress) Merge(patch UserProgressPatch) {
	if patch.CurrentChapter != nil {
		p.CurrentChapter = *patch.CurrentChapter
	}
	if patch.TotalChoices != nil {
		p.TotalChoices = *patch.TotalChoices
	}
	if patch.TrustNetwork != nil {
		p.TrustNetwork = *patch.TrustNetwork
	}
	if patch.CouncilStanding != nil {
		p.CouncilStanding = *patch.CouncilStanding
	}
	if patch.CrewLoyalty != nil {
		p.CrewLoyalty = *patch.CrewLoyalty
	}
	if patch.CompletedStories != nil {
		p.CompletedStories = patch.CompletedStories
	}
}

// ApplyConsequences folds one submitted choice into the progress totals.
// This is the single accumulation rule shared by the server and the
// static-mode client; both must produce identical results for the same
// starting totals and choice.
func (p *UserProgress) ApplyConsequences(mods ConsequenceModifiers) {
	p.TrustNetwork += mods.TrustNetwork
	p.CouncilStanding += mods.CouncilStanding
	p.CrewLoyalty += mods.CrewLoyalty
	p.TotalChoices++
}
