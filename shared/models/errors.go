package models

import "errors"

// Application-wide standard errors
var (
	// Common resource errors
	ErrNotFound = errors.New("resource not found") // General not found

	ErrStoryNotFound     = errors.New("story not found")
	ErrChoiceNotFound    = errors.New("choice not found")
	ErrProgressNotFound  = errors.New("user progress not found")
	ErrCharacterNotFound = errors.New("character not found")
	ErrUserNotFound      = errors.New("user not found")

	// User errors
	ErrUserAlreadyExists = errors.New("user with this username already exists")

	// General request/server errors
	ErrInternalServer = errors.New("internal server error")
	ErrInvalidInput   = errors.New("invalid input data")
)
