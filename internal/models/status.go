package models

// Status is a snapshot of a pairing session
type Status struct {
	SessionID string     `json:"session_id"`
	Current   string     `json:"current_repository,omitempty"`
	Known     []string   `json:"known_repositories"`
	Selected  []Identity `json:"selected"`
	Trailer   string     `json:"trailer,omitempty"`
}
