package cycle

// FactKind identifies the onboarding questions the cycle logic understands.
// Raw question text is mapped to a kind once, at the store boundary, so the
// calculator never depends on UI wording.
type FactKind int

const (
	FactUnknown FactKind = iota
	FactLastPeriodStart
	FactPeriodDuration
	FactRecentMood
	FactHealthConfidence
)

// Fact is a single typed answer from the user's question/answer profile.
type Fact struct {
	Kind   FactKind
	Answer string
}

// Answer returns the answer of the first fact of the given kind,
// or def when no such fact exists.
func Answer(facts []Fact, kind FactKind, def string) string {
	for _, f := range facts {
		if f.Kind == kind {
			return f.Answer
		}
	}
	return def
}
