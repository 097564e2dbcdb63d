package models

import "strings"

// Identity is a collaborator rendered as "Name <email>". Identities compare
// by exact text; Name and Email are only derived for display.
type Identity struct {
	Raw   string `json:"identity"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// ParseIdentity splits "Name <email>" into its parts. Input without an
// angle-bracketed email keeps the whole trimmed text as the name.
func ParseIdentity(raw string) Identity {
	id := Identity{Raw: raw, Name: strings.TrimSpace(raw)}

	open := strings.LastIndex(raw, "<")
	end := strings.LastIndex(raw, ">")
	if open < 0 || end < open {
		return id
	}

	id.Name = strings.TrimSpace(raw[:open])
	id.Email = strings.TrimSpace(raw[open+1 : end])
	return id
}
