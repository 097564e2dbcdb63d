package pairing

import "strings"

// TrailerPrefix starts every line of a trailer block
const TrailerPrefix = "Co-authored-by "

// Selection is the set of selected collaborator identities. Iteration
// follows insertion order; removing and re-adding an identity moves it to
// the end.
type Selection struct {
	members map[string]bool
	order   []string
}

// NewSelection creates an empty selection
func NewSelection() *Selection {
	return &Selection{members: make(map[string]bool)}
}

// Has reports whether identity is selected
func (s *Selection) Has(identity string) bool {
	return s.members[identity]
}

// Toggle adds identity when absent and removes it when present. It reports
// whether identity is selected afterwards.
func (s *Selection) Toggle(identity string) bool {
	if s.members[identity] {
		delete(s.members, identity)
		for i, id := range s.order {
			if id == identity {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		return false
	}

	s.members[identity] = true
	s.order = append(s.order, identity)
	return true
}

// Len returns the number of selected identities
func (s *Selection) Len() int {
	return len(s.order)
}

// Identities returns the selected identities in iteration order
func (s *Selection) Identities() []string {
	return append([]string(nil), s.order...)
}

// Clear removes every identity
func (s *Selection) Clear() {
	s.members = make(map[string]bool)
	s.order = nil
}

// TrailerBlock renders one "Co-authored-by <identity>" line per selected
// identity, newline-joined. An empty selection renders as "".
func (s *Selection) TrailerBlock() string {
	lines := make([]string, 0, len(s.order))
	for _, id := range s.order {
		lines = append(lines, TrailerPrefix+id)
	}
	return strings.Join(lines, "\n")
}

// OrderCandidates partitions candidates into selected then unselected,
// keeping input order inside each group, and prefixes selected labels
// with marker.
func OrderCandidates(candidates []string, selected *Selection, marker string) []string {
	labels := make([]string, 0, len(candidates))
	var rest []string
	for _, c := range candidates {
		if selected.Has(c) {
			labels = append(labels, marker+c)
		} else {
			rest = append(rest, c)
		}
	}
	return append(labels, rest...)
}
