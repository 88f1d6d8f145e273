package models

// Error is the JSON error envelope returned by the live API.
type Error struct {
	Message string `json:"message"`
}
