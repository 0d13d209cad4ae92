package handler

// submitChoiceRequest is the body of POST /api/choices.
type submitChoiceRequest struct {
	UserID   string `json:"userId" binding:"required"`
	ChoiceID string `json:"choiceId" binding:"required"`
	StoryID  string `json:"storyId" binding:"required"`
}

// registerRequest is the body of POST /api/users.
type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
