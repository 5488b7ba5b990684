package question

// Outcome is how a question stands after the answers given so far.
type Outcome int

const (
	OutcomeNew     Outcome = iota // never answered
	OutcomeCorrect                // answered correctly more often than wrong
	OutcomeWrong                  // answered wrong at least as often as correctly
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "correct"
	case OutcomeWrong:
		return "wrong"
	default:
		return "new"
	}
}

// Totals aggregates statistics over all questions.
type Totals struct {
	Total   int
	Correct int
	Wrong   int
}

// CategoryStats aggregates statistics for a single category.
type CategoryStats struct {
	Category      string
	Count         int
	NeverAnswered int
	Correct       int
	Wrong         int
}

// Add counts q into the aggregate.
func (cs *CategoryStats) Add(q *Question) {
	cs.Count++
	if q.TimesCorrect+q.TimesWrong == 0 {
		cs.NeverAnswered++
	}
	switch q.Outcome() {
	case OutcomeCorrect:
		cs.Correct++
	case OutcomeWrong:
		cs.Wrong++
	}
}

// ComputeTotals derives the dashboard totals from a question list.
func ComputeTotals(questions []*Question) Totals {
	t := Totals{Total: len(questions)}
	for _, q := range questions {
		switch q.Outcome() {
		case OutcomeCorrect:
			t.Correct++
		case OutcomeWrong:
			t.Wrong++
		}
	}
	return t
}
