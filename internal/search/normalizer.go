package search

import (
	"strings"

	"github.com/modashop/catalog-gateway/internal/domain/model"
	"github.com/modashop/catalog-gateway/internal/search/lexicon"
)

// Normalizer rewrites a raw free-text query into its canonical form and
// extracts the keyword set, using the injected lexicon.
//
// Normalization is idempotent: canonical targets are fixpoints of the
// substitution scan, filler is already gone after one pass, and negation
// markers survive in the canonical text so polarity is preserved across
// repeated runs.
type Normalizer struct {
	lex *lexicon.Lexicon
}

func NewNormalizer(lex *lexicon.Lexicon) *Normalizer {
	return &Normalizer{lex: lex}
}

// Normalize produces the canonical text and deduplicated, order-preserving
// keyword set for a raw query.
func (n *Normalizer) Normalize(raw string) model.NormalizedQuery {
	tokens := tokenize(raw)
	canonical := n.substitute(tokens)

	var (
		out      []string
		keywords []model.Keyword
		seen     = make(map[string]struct{}, len(canonical))
		negate   bool
	)

	for _, token := range canonical {
		if n.lex.IsNegation(token) {
			// The marker stays in the canonical text; its polarity is
			// folded into the next keyword instead of being discarded.
			out = append(out, token)
			negate = true

			continue
		}

		if n.lex.IsFiller(token) {
			continue
		}

		out = append(out, token)

		if _, dup := seen[token]; !dup {
			seen[token] = struct{}{}
			keywords = append(keywords, model.Keyword{
				Term:     token,
				Category: n.lex.Category(token),
				Negated:  negate,
			})
		}

		negate = false
	}

	return model.NormalizedQuery{
		CanonicalText: strings.Join(out, " "),
		Keywords:      keywords,
	}
}

// substitute applies lexicon substitutions with a longest-match-first
// window so a multi-word canonical target is never corrupted by a shorter
// substring match.
func (n *Normalizer) substitute(tokens []string) []string {
	var out []string

	for i := 0; i < len(tokens); {
		matched := false

		window := n.lex.MaxPhraseLen()
		if remaining := len(tokens) - i; window > remaining {
			window = remaining
		}

		for size := window; size >= 1; size-- {
			phrase := strings.Join(tokens[i:i+size], " ")

			canonical, ok := n.lex.Canonical(phrase)
			if !ok {
				continue
			}

			out = append(out, strings.Fields(canonical)...)
			i += size
			matched = true

			break
		}

		if !matched {
			out = append(out, tokens[i])
			i++
		}
	}

	return out
}

// tokenize lowercases the input and splits it into words, keeping hyphens
// and slashes inside tokens so compounds like "t-shirt" and "w/o" survive.
func tokenize(raw string) []string {
	lowered := strings.ToLower(raw)

	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '/':
			return r
		default:
			return ' '
		}
	}, lowered)

	return strings.Fields(cleaned)
}
