package search_test

import (
	"testing"

	"github.com/modashop/catalog-gateway/internal/domain/model"
	"github.com/modashop/catalog-gateway/internal/search"
	"github.com/modashop/catalog-gateway/internal/search/lexicon"
	"github.com/stretchr/testify/require"
)

func newNormalizer() *search.Normalizer {
	return search.NewNormalizer(lexicon.Default())
}

func TestNormalize_CanonicalText(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "dialect variant",
			raw:  "jumper",
			want: "sweater",
		},
		{
			name: "filler words dropped",
			raw:  "show me some red dress please",
			want: "red dress",
		},
		{
			name: "typos corrected",
			raw:  "sumer drees",
			want: "summer dress",
		},
		{
			name: "multi-word phrase wins over single words",
			raw:  "bathing suit",
			want: "swimsuit",
		},
		{
			name: "longest match first",
			raw:  "summer clothes",
			want: "summer outfit",
		},
		{
			name: "three word phrase",
			raw:  "warm weather outfit",
			want: "summer outfit",
		},
		{
			name: "color synonym",
			raw:  "navy trousers",
			want: "blue pants",
		},
		{
			name: "mixed case and punctuation",
			raw:  "  Show me a NAVY Jumper!  ",
			want: "blue sweater",
		},
		{
			name: "negation marker survives",
			raw:  "jeans without holes",
			want: "jeans not holes",
		},
		{
			name: "slash negation",
			raw:  "dress w/o sleeves",
			want: "dress not sleeves",
		},
		{
			name: "empty input",
			raw:  "   ",
			want: "",
		},
		{
			name: "typical conversational query",
			raw:  "im looking for something like a summery outfit for the beach",
			want: "summer outfit beach",
		},
	}

	normalizer := newNormalizer()

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := normalizer.Normalize(tc.raw)

			require.Equal(t, tc.want, got.CanonicalText)
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	queries := []string{
		"jumper",
		"show me some red dress please",
		"sumer cloths",
		"bathing suit for the beach",
		"jeans without holes",
		"navy trainers and a grey hoody",
		"warm weather outfit",
		"dress w/o sleeves",
	}

	normalizer := newNormalizer()

	for _, raw := range queries {
		once := normalizer.Normalize(raw)
		twice := normalizer.Normalize(once.CanonicalText)

		require.Equal(t, once.CanonicalText, twice.CanonicalText, "canonical text for %q must be a fixpoint", raw)
		require.Equal(t, once.Keywords, twice.Keywords, "keywords for %q must be stable", raw)
	}
}

func TestNormalize_KeywordExtraction(t *testing.T) {
	t.Parallel()

	normalizer := newNormalizer()

	got := normalizer.Normalize("show me a navy summer dress for the wedding")

	require.Equal(t, []model.Keyword{
		{Term: "blue", Category: model.KeywordCategoryColor},
		{Term: "summer", Category: model.KeywordCategorySeason},
		{Term: "dress", Category: model.KeywordCategoryGarment},
		{Term: "wedding", Category: model.KeywordCategoryOccasion},
	}, got.Keywords)
}

func TestNormalize_NegationPolarity(t *testing.T) {
	t.Parallel()

	normalizer := newNormalizer()

	got := normalizer.Normalize("summer dress without sleeves")

	require.Equal(t, []string{"summer", "dress"}, got.Terms())
	require.Equal(t, []string{"sleeves"}, got.ExcludedTerms())
}

func TestNormalize_NegationOnlyAffectsNextKeyword(t *testing.T) {
	t.Parallel()

	normalizer := newNormalizer()

	got := normalizer.Normalize("no jacket but boots")

	require.Equal(t, []string{"jacket"}, got.ExcludedTerms())
	require.Contains(t, got.Terms(), "boots")
}

func TestNormalize_DeduplicatesKeywords(t *testing.T) {
	t.Parallel()

	normalizer := newNormalizer()

	// "clothes" canonicalizes to "outfit", duplicating the explicit term.
	got := normalizer.Normalize("outfit clothes")

	require.Equal(t, "outfit outfit", got.CanonicalText)
	require.Equal(t, []string{"outfit"}, got.Terms())
}

func TestNormalize_UnknownWordsPassThrough(t *testing.T) {
	t.Parallel()

	normalizer := newNormalizer()

	got := normalizer.Normalize("chartreuse bolero")

	require.Equal(t, "chartreuse bolero", got.CanonicalText)
	require.Equal(t, []model.Keyword{
		{Term: "chartreuse", Category: model.KeywordCategoryNone},
		{Term: "bolero", Category: model.KeywordCategoryNone},
	}, got.Keywords)
}
