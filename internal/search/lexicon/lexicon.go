package lexicon

import (
	"sort"
	"strings"

	"github.com/modashop/catalog-gateway/internal/domain/model"
)

type (
	// Tables is the raw substitution and category data a Lexicon is built
	// from. It is owned by configuration; nothing in here is consulted at
	// runtime besides plain map lookups.
	Tables struct {
		// Substitutions maps dialect, synonym and typo variants to their
		// canonical form. Keys may span multiple words; the normalizer
		// scans them longest-match-first.
		Substitutions map[string]string

		// Categories tags canonical terms with their keyword category.
		Categories map[string]model.KeywordCategory

		// Fillers are purely grammatical words dropped during
		// normalization.
		Fillers []string

		// Negations are markers folded into keyword polarity. They all
		// canonicalize to "not".
		Negations []string
	}

	// Lexicon is the compiled, immutable lookup structure consumed by the
	// query normalizer.
	Lexicon struct {
		substitutions map[string]string
		categories    map[string]model.KeywordCategory
		fillers       map[string]struct{}
		negations     map[string]struct{}
		maxPhraseLen  int
	}
)

// CanonicalNegation is the single canonical negation marker.
const CanonicalNegation = "not"

// New compiles the given tables into a Lexicon.
func New(tables Tables) *Lexicon {
	lex := &Lexicon{
		substitutions: make(map[string]string, len(tables.Substitutions)),
		categories:    make(map[string]model.KeywordCategory, len(tables.Categories)),
		fillers:       make(map[string]struct{}, len(tables.Fillers)),
		negations:     make(map[string]struct{}, len(tables.Negations)),
		maxPhraseLen:  1,
	}

	for variant, canonical := range tables.Substitutions {
		key := strings.ToLower(strings.TrimSpace(variant))
		lex.substitutions[key] = strings.ToLower(strings.TrimSpace(canonical))

		if words := len(strings.Fields(key)); words > lex.maxPhraseLen {
			lex.maxPhraseLen = words
		}
	}

	for term, category := range tables.Categories {
		lex.categories[strings.ToLower(term)] = category
	}

	for _, filler := range tables.Fillers {
		lex.fillers[strings.ToLower(filler)] = struct{}{}
	}

	for _, negation := range tables.Negations {
		lex.negations[strings.ToLower(negation)] = struct{}{}
	}

	return lex
}

// Default returns a Lexicon compiled from the built-in tables.
func Default() *Lexicon {
	return New(DefaultTables())
}

// Canonical returns the canonical form for a variant phrase, if any.
func (l *Lexicon) Canonical(phrase string) (string, bool) {
	canonical, ok := l.substitutions[phrase]

	return canonical, ok
}

// MaxPhraseLen is the word count of the longest substitution key. The
// normalizer starts its scan window at this width.
func (l *Lexicon) MaxPhraseLen() int {
	return l.maxPhraseLen
}

// Category returns the keyword category of a canonical term.
func (l *Lexicon) Category(term string) model.KeywordCategory {
	return l.categories[term]
}

// IsFiller reports whether the word is grammatical filler.
func (l *Lexicon) IsFiller(word string) bool {
	_, ok := l.fillers[word]

	return ok
}

// IsNegation reports whether the word is a negation marker.
func (l *Lexicon) IsNegation(word string) bool {
	_, ok := l.negations[word]

	return ok
}

// Variants returns all substitution keys, longest first, alphabetical
// within equal length. Exposed for overlap property checks.
func (l *Lexicon) Variants() []string {
	variants := make([]string, 0, len(l.substitutions))
	for variant := range l.substitutions {
		variants = append(variants, variant)
	}

	sort.Slice(variants, func(i, j int) bool {
		li, lj := len(strings.Fields(variants[i])), len(strings.Fields(variants[j]))
		if li != lj {
			return li > lj
		}

		return variants[i] < variants[j]
	})

	return variants
}
