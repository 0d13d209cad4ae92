package models

// ErrorResponse is the standard JSON error body returned by every
// endpoint.
type ErrorResponse struct {
	Message string `json:"message"`
}
