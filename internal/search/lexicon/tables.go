package lexicon

import "github.com/modashop/catalog-gateway/internal/domain/model"

// DefaultTables holds the built-in fashion-catalog lexicon. Canonical
// targets are fixpoints: running a canonical form through the substitution
// scan leaves it unchanged.
func DefaultTables() Tables {
	return Tables{
		Substitutions: map[string]string{
			// Dialect variants.
			"jumper":   "sweater",
			"pullover": "sweater",
			"trainers": "sneakers",
			"kicks":    "sneakers",
			"sneaks":   "sneakers",
			"trousers": "pants",
			"slacks":   "pants",
			"denims":   "jeans",
			"jean":     "jeans",
			"frock":    "dress",
			"gown":     "dress",
			"hoody":    "hoodie",
			"tee":      "t-shirt",
			"tshirt":   "t-shirt",
			"t shirt":  "t-shirt",
			"fall":     "autumn",

			// Multi-word phrases. These must win over their shorter
			// constituents, hence the longest-match-first scan.
			"bathing suit":        "swimsuit",
			"swim suit":           "swimsuit",
			"swimming costume":    "swimsuit",
			"summer clothes":      "summer outfit",
			"summery outfit":      "summer outfit",
			"warm weather outfit": "summer outfit",
			"cold weather outfit": "winter outfit",
			"winter clothes":      "winter outfit",

			// Color synonyms.
			"crimson":  "red",
			"scarlet":  "red",
			"maroon":   "red",
			"navy":     "blue",
			"azure":    "blue",
			"grey":     "gray",
			"charcoal": "gray",
			"ebony":    "black",
			"ivory":    "white",
			"violet":   "purple",

			// Common typos.
			"sumer":   "summer",
			"summr":   "summer",
			"wnter":   "winter",
			"winetr":  "winter",
			"drees":   "dress",
			"dres":    "dress",
			"shrit":   "shirt",
			"jaket":   "jacket",
			"jacet":   "jacket",
			"skrit":   "skirt",
			"outift":  "outfit",
			"outfitt": "outfit",
			"clothes": "outfit",
			"cloths":  "outfit",
			"blak":    "black",
			"wite":    "white",
			"whte":    "white",
			"gren":    "green",
			"bleu":    "blue",
			"blu":     "blue",

			// Negation variants collapse to the canonical marker.
			"without": CanonicalNegation,
			"no":      CanonicalNegation,
			"w/o":     CanonicalNegation,
		},

		Categories: map[string]model.KeywordCategory{
			"red":    model.KeywordCategoryColor,
			"blue":   model.KeywordCategoryColor,
			"green":  model.KeywordCategoryColor,
			"black":  model.KeywordCategoryColor,
			"white":  model.KeywordCategoryColor,
			"gray":   model.KeywordCategoryColor,
			"yellow": model.KeywordCategoryColor,
			"pink":   model.KeywordCategoryColor,
			"purple": model.KeywordCategoryColor,
			"brown":  model.KeywordCategoryColor,
			"orange": model.KeywordCategoryColor,

			"t-shirt":  model.KeywordCategoryGarment,
			"shirt":    model.KeywordCategoryGarment,
			"dress":    model.KeywordCategoryGarment,
			"skirt":    model.KeywordCategoryGarment,
			"jeans":    model.KeywordCategoryGarment,
			"pants":    model.KeywordCategoryGarment,
			"shorts":   model.KeywordCategoryGarment,
			"sweater":  model.KeywordCategoryGarment,
			"hoodie":   model.KeywordCategoryGarment,
			"jacket":   model.KeywordCategoryGarment,
			"coat":     model.KeywordCategoryGarment,
			"sneakers": model.KeywordCategoryGarment,
			"boots":    model.KeywordCategoryGarment,
			"sandals":  model.KeywordCategoryGarment,
			"swimsuit": model.KeywordCategoryGarment,
			"scarf":    model.KeywordCategoryGarment,
			"hat":      model.KeywordCategoryGarment,
			"suit":     model.KeywordCategoryGarment,
			"outfit":   model.KeywordCategoryGarment,

			"summer": model.KeywordCategorySeason,
			"winter": model.KeywordCategorySeason,
			"spring": model.KeywordCategorySeason,
			"autumn": model.KeywordCategorySeason,

			"casual":  model.KeywordCategoryOccasion,
			"formal":  model.KeywordCategoryOccasion,
			"party":   model.KeywordCategoryOccasion,
			"wedding": model.KeywordCategoryOccasion,
			"office":  model.KeywordCategoryOccasion,
			"beach":   model.KeywordCategoryOccasion,
			"sport":   model.KeywordCategoryOccasion,
		},

		Fillers: []string{
			"the", "a", "an", "for", "me", "my", "i", "im", "want", "need",
			"some", "any", "this", "that", "please", "show", "find",
			"looking", "like", "something", "can", "you", "get", "gimme",
			"in", "with", "and", "to", "wear",
		},

		Negations: []string{CanonicalNegation},
	}
}
