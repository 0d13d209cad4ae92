package repository

import (
	"time"

	"keystone-server/shared/constants"
	"keystone-server/shared/models"
)

// seed loads the fixed reference data: one active story, its three
// choices, the character roster, the community vote numbers and the demo
// reader's progress record. Everything here except the progress record is
// immutable for the life of the process; no endpoint mutates it.
func (s *MemoryStorage) seed() {
	story := models.Story{
		ID:            constants.SeedStoryID,
		Title:         "Chapter 3: The Signal",
		ChapterNumber: 3,
		Location:      "Aboard the Wanderer - Bridge",
		Content: `The bridge of the *Wanderer* hummed with tension as Captain Chen studied the decoded transmission. The holographic display cast an eerie blue glow across her weathered features, highlighting the concern etched in her eyes.

"This changes everything," she whispered, her voice barely audible over the ship's ambient systems. The data streams flowing across the screen told a story of conspiracy that reached the highest levels of the Galactic Council.

Navigator Torres approached cautiously. "Captain, if this intelligence is accurate, we're not just carrying cargo anymore. We're carrying the evidence that could expose the entire Keystone Project."`,
		ImageURL:  "https://images.unsplash.com/photo-1446776877081-d282a0f896e2?ixlib=rb-4.0.3&auto=format&fit=crop&w=1200&h=600",
		IsActive:  true,
		CreatedAt: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
	s.stories[story.ID] = story

	choices := []models.Choice{
		{
			ID:           "choice-1",
			StoryID:      story.ID,
			OptionLetter: "A",
			Title:        "Broadcast the Evidence Immediately",
			Description:  "Take immediate action. Transmit the Keystone files to every major news network and resistance cell simultaneously. The truth needs to be heard, regardless of the personal cost to your crew.",
			RiskLevel:    models.RiskHigh,
			Impact:       "Max Impact",
			Unlocks:      "Fugitive Path",
			ConsequenceModifiers: &models.ConsequenceModifiers{
				TrustNetwork:    50,
				CouncilStanding: -75,
				CrewLoyalty:     25,
			},
		},
		{
			ID:           "choice-2",
			StoryID:      story.ID,
			OptionLetter: "B",
			Title:        "Find a Trusted Ally First",
			Description:  "Seek out Admiral Reeves, an old friend who might still be trustworthy within the Council. This evidence needs to reach someone with the power and integrity to act on it properly.",
			RiskLevel:    models.RiskMedium,
			Impact:       "Diplomatic",
			Unlocks:      "Alliance Path",
			ConsequenceModifiers: &models.ConsequenceModifiers{
				TrustNetwork:    25,
				CouncilStanding: 10,
				CrewLoyalty:     15,
			},
		},
		{
			ID:           "choice-3",
			StoryID:      story.ID,
			OptionLetter: "C",
			Title:        "Destroy the Evidence",
			Description:  "Some secrets are too dangerous to reveal. Delete the files and continue your original mission. Sometimes ignorance truly is bliss, and your crew's safety comes first.",
			RiskLevel:    models.RiskLow,
			Impact:       "Maintain Cover",
			Unlocks:      "Shadow Path",
			ConsequenceModifiers: &models.ConsequenceModifiers{
				TrustNetwork:    -20,
				CouncilStanding: 0,
				CrewLoyalty:     35,
			},
		},
	}
	for _, choice := range choices {
		s.putChoiceLocked(choice)
	}

	characters := []models.Character{
		{
			ID:              "char-1",
			Name:            "Captain Elena Chen",
			Title:           "Commander, Starship Wanderer",
			ImageURL:        "/api/characters/images/captain-chen.png",
			Background:      "A veteran of the Titan Conflict, Captain Chen earned her command through exceptional service and an unwavering moral compass. Her decision to take on the mysterious cargo that started this journey was driven by both financial necessity and a growing suspicion about Council activities.",
			TrustLevel:      87,
			AppearanceCount: 8,
			KeyDecisions: []string{
				"Supported your plan to investigate the cargo",
				"Currently considering your alliance proposal",
			},
		},
		{
			ID:              "char-2",
			Name:            "Navigator Marisol Torres",
			Title:           "Chief Navigator, Starship Wanderer",
			ImageURL:        "/api/characters/images/torres.png",
			Background:      "Brilliant and unflappable, Torres can thread a gravity slingshot blindfolded. She keeps a close eye on shifting political currents—and on the ship's moral compass.",
			TrustLevel:      72,
			AppearanceCount: 6,
			KeyDecisions: []string{
				"Devised the stealth approach to scan the Keystone relay",
				"Warned against transmitting without a secure ally",
			},
		},
		{
			ID:              "char-3",
			Name:            "Admiral Janus Reeves",
			Title:           "Senior Liaison, Galactic Council Fleet",
			ImageURL:        "/api/characters/images/reeves.png",
			Background:      "A storied commander and former mentor to Chen. Reeves claims neutrality, but old loyalties and new revelations pull him toward a fateful choice.",
			TrustLevel:      41,
			AppearanceCount: 3,
			KeyDecisions: []string{
				"Provided backchannel access to a secure Council node",
				"Refused to authorize a full disclosure without verification",
			},
		},
		{
			ID:              "char-4",
			Name:            "DROID-7K \"Seven\"",
			Title:           "Logistics and Tactical Analysis Unit",
			ImageURL:        "/api/characters/images/droid-seven.png",
			Background:      "An adaptive-heuristic droid retrofitted for field operations. Seven excels at probability mapping, systems patching, and dry one-liners when morale dips.",
			TrustLevel:      64,
			AppearanceCount: 5,
			KeyDecisions: []string{
				"Projected a safe window for the relay infiltration",
				"Overrode a lockdown to extract critical data",
			},
		},
	}
	for _, character := range characters {
		s.putCharacterLocked(character)
	}

	// Vote percentages sum to 100 across the story's three choices.
	votes := []models.CommunityVote{
		{ID: "vote-1", ChoiceID: "choice-1", VoteCount: 967, Percentage: 34},
		{ID: "vote-2", ChoiceID: "choice-2", VoteCount: 1281, Percentage: 45},
		{ID: "vote-3", ChoiceID: "choice-3", VoteCount: 599, Percentage: 21},
	}
	for _, vote := range votes {
		s.votes[vote.ChoiceID] = vote
	}

	s.progress["demo-progress-1"] = models.UserProgress{
		ID:               "demo-progress-1",
		UserID:           s.demoUserID,
		CurrentChapter:   3,
		TotalChoices:     0,
		TrustNetwork:     0,
		CouncilStanding:  0,
		CrewLoyalty:      0,
		CompletedStories: []string{},
	}
}
