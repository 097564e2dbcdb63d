package models

import "testing"

func TestParseIdentity(t *testing.T) {
	tests := []struct {
		raw       string
		wantName  string
		wantEmail string
	}{
		{"Alice <a@x.com>", "Alice", "a@x.com"},
		{"Ada Lovelace <ada@example.org>", "Ada Lovelace", "ada@example.org"},
		{"  Bob   <b@x.com>  ", "Bob", "b@x.com"},
		{"no email here", "no email here", ""},
		{"broken > <order", "broken > <order", ""},
		{"<only@email>", "", "only@email"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := ParseIdentity(tt.raw)
			if got.Raw != tt.raw {
				t.Errorf("Raw = %q, want %q", got.Raw, tt.raw)
			}
			if got.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", got.Name, tt.wantName)
			}
			if got.Email != tt.wantEmail {
				t.Errorf("Email = %q, want %q", got.Email, tt.wantEmail)
			}
		})
	}
}
