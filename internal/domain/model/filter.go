package model

import (
	"fmt"
	"strconv"
)

// SearchFilter is the one explicit filter value accepted at the call
// boundary. Every supported field is enumerated here and validated once;
// handlers never pass loose optional parameters further down.
type SearchFilter struct {
	Category    string
	Color       string
	Season      string
	PriceMin    float64
	PriceMax    float64
	InStockOnly bool
	MinRating   float64
}

// Validate checks field ranges once at the boundary.
func (f SearchFilter) Validate() error {
	errs := &ValidationErrors{}

	if f.PriceMin < 0 {
		errs.Add("price_min", "price_min must be non-negative", "invalid_range")
	}

	if f.PriceMax < 0 {
		errs.Add("price_max", "price_max must be non-negative", "invalid_range")
	}

	if f.PriceMax > 0 && f.PriceMin > f.PriceMax {
		errs.Add("price_min", fmt.Sprintf("price_min %.2f exceeds price_max %.2f", f.PriceMin, f.PriceMax), "invalid_range")
	}

	if f.MinRating < 0 || f.MinRating > 5 {
		errs.Add("min_rating", "min_rating must be between 0 and 5", "invalid_range")
	}

	if errs.HasErrors() {
		return errs
	}

	return nil
}

// Params renders the filter as upstream query parameters. Zero-valued
// fields are omitted so two logically identical filters always produce the
// same parameter set.
func (f SearchFilter) Params() map[string]string {
	params := make(map[string]string)

	if f.Category != "" {
		params["category"] = f.Category
	}

	if f.Color != "" {
		params["color"] = f.Color
	}

	if f.Season != "" {
		params["season"] = f.Season
	}

	if f.PriceMin > 0 {
		params["price_min"] = strconv.FormatFloat(f.PriceMin, 'f', 2, 64)
	}

	if f.PriceMax > 0 {
		params["price_max"] = strconv.FormatFloat(f.PriceMax, 'f', 2, 64)
	}

	if f.InStockOnly {
		params["in_stock"] = "true"
	}

	if f.MinRating > 0 {
		params["min_rating"] = strconv.FormatFloat(f.MinRating, 'f', 1, 64)
	}

	return params
}
