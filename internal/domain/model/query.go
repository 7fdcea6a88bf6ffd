package model

type (
	// KeywordCategory tags a keyword with the lexicon category it came from.
	KeywordCategory string

	// Keyword is a single extracted search term. Negated keywords carry the
	// polarity of a preceding negation marker instead of being discarded.
	Keyword struct {
		Term     string
		Category KeywordCategory
		Negated  bool
	}

	// NormalizedQuery is the canonical form of a raw search phrase.
	// Produced once per raw query and never mutated afterwards.
	NormalizedQuery struct {
		CanonicalText string
		Keywords      []Keyword
	}
)

const (
	KeywordCategoryNone     KeywordCategory = ""
	KeywordCategoryColor    KeywordCategory = "color"
	KeywordCategoryGarment  KeywordCategory = "garment"
	KeywordCategorySeason   KeywordCategory = "season"
	KeywordCategoryOccasion KeywordCategory = "occasion"
)

// Terms returns the positive keyword terms in extraction order.
func (q NormalizedQuery) Terms() []string {
	terms := make([]string, 0, len(q.Keywords))
	for _, kw := range q.Keywords {
		if !kw.Negated {
			terms = append(terms, kw.Term)
		}
	}

	return terms
}

// ExcludedTerms returns the negated keyword terms in extraction order.
func (q NormalizedQuery) ExcludedTerms() []string {
	var terms []string
	for _, kw := range q.Keywords {
		if kw.Negated {
			terms = append(terms, kw.Term)
		}
	}

	return terms
}
