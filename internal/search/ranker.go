package search

import (
	"sort"
	"strings"

	"github.com/modashop/catalog-gateway/internal/domain/model"
	"github.com/xrash/smetrics"
)

const (
	// jaroWinklerBoost and jaroWinklerPrefix are the standard parameters
	// for the Jaro-Winkler metric.
	jaroWinklerBoost  = 0.7
	jaroWinklerPrefix = 4

	// typoEditBudget is the number of character edits still considered a
	// match for a single token.
	typoEditBudget = 1

	// typoScore is the similarity credited to a within-budget edit match
	// when Jaro-Winkler under-scores it.
	typoScore = 0.92

	// minTokenScore is the floor below which a token contributes nothing.
	minTokenScore = 0.75
)

// Ranker scores catalog candidates against a normalized query, tolerant of
// residual spelling variation and word-order differences.
type Ranker struct{}

func NewRanker() *Ranker {
	return &Ranker{}
}

// Rank orders the candidates and returns at most limit matches.
// Ordering: exact substring match on a keyword first, then descending
// similarity, then descending business weight. The sort is stable so ties
// beyond limit truncate deterministically.
func (r *Ranker) Rank(query model.NormalizedQuery, items []model.CatalogItem, limit int) []model.ScoredMatch {
	if limit <= 0 || len(items) == 0 {
		return nil
	}

	matches := make([]model.ScoredMatch, 0, len(items))

	for _, item := range items {
		score, exact := r.scoreItem(query, item)
		if score <= 0 {
			continue
		}

		matches = append(matches, model.ScoredMatch{
			Item:       item,
			Score:      score,
			ExactMatch: exact,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].ExactMatch != matches[j].ExactMatch {
			return matches[i].ExactMatch
		}

		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}

		return matches[i].Item.BusinessWeight() > matches[j].Item.BusinessWeight()
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	for i := range matches {
		matches[i].Rank = i + 1
	}

	return matches
}

// scoreItem averages the best per-keyword similarity across the item's
// searchable fields. Negated keywords subtract instead of add.
func (r *Ranker) scoreItem(query model.NormalizedQuery, item model.CatalogItem) (float64, bool) {
	fields := make([]string, 0, 4)
	for _, field := range item.SearchableText() {
		if field != "" {
			fields = append(fields, strings.ToLower(field))
		}
	}

	if len(fields) == 0 || len(query.Keywords) == 0 {
		return 0, false
	}

	var (
		total    float64
		positive int
		exact    bool
	)

	for _, keyword := range query.Keywords {
		best, substring := bestFieldScore(keyword.Term, fields)

		if keyword.Negated {
			if substring {
				total -= 1
			}

			continue
		}

		positive++

		if substring {
			exact = true
		}

		if best >= minTokenScore {
			total += best
		}
	}

	if positive == 0 {
		return 0, false
	}

	score := total / float64(positive)
	if score < 0 {
		score = 0
	}

	return score, exact
}

// bestFieldScore returns the highest similarity between the term and any
// token of any field, and whether the term occurs verbatim.
func bestFieldScore(term string, fields []string) (float64, bool) {
	var best float64

	for _, field := range fields {
		if strings.Contains(field, term) {
			return 1, true
		}

		for _, token := range strings.FieldsFunc(field, func(r rune) bool {
			return r == ' ' || r == ',' || r == ';'
		}) {
			score := tokenSimilarity(term, token)
			if score > best {
				best = score
			}
		}
	}

	return best, false
}

// tokenSimilarity combines Jaro-Winkler with a one-edit Wagner-Fischer
// check so single-character typos always clear the match floor.
func tokenSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}

	score := smetrics.JaroWinkler(a, b, jaroWinklerBoost, jaroWinklerPrefix)

	if smetrics.WagnerFischer(a, b, 1, 1, 1) <= typoEditBudget && score < typoScore {
		score = typoScore
	}

	return score
}
