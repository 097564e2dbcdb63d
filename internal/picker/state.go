package picker

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// state is the filterable option list behind the picker view. Options keep
// their given order until a query is typed; matches are then ranked.
type state struct {
	options  []string
	filtered []string
	query    string
	cursor   int
}

type scoredOption struct {
	label    string
	score    int
	distance int
	index    int
}

func newState(options []string) *state {
	s := &state{options: append([]string(nil), options...)}
	s.rebuildFiltered()
	return s
}

func (s *state) setQuery(q string) {
	s.query = q
	s.rebuildFiltered()
}

func (s *state) backspace() {
	if s.query == "" {
		return
	}
	r := []rune(s.query)
	s.setQuery(string(r[:len(r)-1]))
}

func (s *state) cursorUp() {
	if s.cursor > 0 {
		s.cursor--
	}
}

func (s *state) cursorDown() {
	if s.cursor < len(s.filtered)-1 {
		s.cursor++
	}
}

// current returns the option under the cursor
func (s *state) current() (string, bool) {
	if len(s.filtered) == 0 {
		return "", false
	}
	return s.filtered[s.cursor], true
}

func (s *state) rebuildFiltered() {
	q := strings.TrimSpace(s.query)
	if q == "" {
		s.filtered = append([]string(nil), s.options...)
		s.clampCursor()
		return
	}

	var scored []scoredOption
	for i, label := range s.options {
		matched, score := fuzzyMatchScore(label, q)
		if !matched {
			continue
		}
		scored = append(scored, scoredOption{
			label:    label,
			score:    score,
			distance: closestWordDistance(label, q),
			index:    i,
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		if scored[i].distance != scored[j].distance {
			return scored[i].distance < scored[j].distance
		}
		return scored[i].index < scored[j].index
	})

	s.filtered = s.filtered[:0]
	for _, so := range scored {
		s.filtered = append(s.filtered, so.label)
	}
	s.clampCursor()
}

func (s *state) clampCursor() {
	if s.cursor > len(s.filtered)-1 {
		s.cursor = len(s.filtered) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

// fuzzyMatchScore reports whether query is a case-insensitive subsequence
// of label and scores prefix, consecutive and exact matches higher.
func fuzzyMatchScore(label, query string) (bool, int) {
	if query == "" {
		return true, 0
	}
	labelLower := strings.ToLower(label)
	queryLower := strings.ToLower(query)

	matchIdx := make([]int, 0, len(queryLower))
	searchFrom := 0
	for i := 0; i < len(queryLower); i++ {
		ch := queryLower[i]
		found := false
		for j := searchFrom; j < len(labelLower); j++ {
			if labelLower[j] == ch {
				matchIdx = append(matchIdx, j)
				searchFrom = j + 1
				found = true
				break
			}
		}
		if !found {
			return false, 0
		}
	}

	score := len(queryLower)
	if len(matchIdx) > 0 && matchIdx[0] == 0 {
		score += 10
	}
	for i := 1; i < len(matchIdx); i++ {
		if matchIdx[i] == matchIdx[i-1]+1 {
			score += 3
		}
	}
	if strings.EqualFold(strings.TrimSpace(label), strings.TrimSpace(query)) {
		score += 20
	}
	return true, score
}

// closestWordDistance is the smallest edit distance between query and any
// word of label, ignoring case and angle brackets.
func closestWordDistance(label, query string) int {
	q := strings.ToLower(query)
	best := -1
	for _, word := range strings.Fields(strings.ToLower(label)) {
		word = strings.Trim(word, "<>")
		d := levenshtein.ComputeDistance(word, q)
		if best < 0 || d < best {
			best = d
		}
	}
	if best < 0 {
		return len(q)
	}
	return best
}
