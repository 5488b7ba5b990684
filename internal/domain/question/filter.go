package question

import "strings"

// ListFilter narrows a question list for the management views. Zero values
// match everything.
type ListFilter struct {
	Type       *Type
	CategoryID *int64
	Search     string
}

func (f ListFilter) Match(q *Question) bool {
	if f.Type != nil && q.Type != *f.Type {
		return false
	}
	if f.CategoryID != nil && (q.CategoryID == nil || *q.CategoryID != *f.CategoryID) {
		return false
	}
	if strings.TrimSpace(f.Search) != "" &&
		!strings.Contains(strings.ToLower(q.Text), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

// Apply returns the questions matching f, keeping their order.
func (f ListFilter) Apply(questions []*Question) []*Question {
	out := make([]*Question, 0, len(questions))
	for _, q := range questions {
		if f.Match(q) {
			out = append(out, q)
		}
	}
	return out
}
