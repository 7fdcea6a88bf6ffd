package model

import "encoding/json"

type (
	// CatalogItem is a single product record as returned by the upstream
	// catalog service. Fields beyond identity are only interpreted where
	// ranking needs them (name, category, tags, rating, stock).
	CatalogItem struct {
		ID       string   `json:"id"`
		Name     string   `json:"name"`
		Category string   `json:"category"`
		Tags     []string `json:"tags"`
		Price    float64  `json:"price"`
		Rating   float64  `json:"rating"`
		Stock    int      `json:"stock"`
	}

	// CatalogPage is the upstream payload shape for list-style endpoints.
	CatalogPage struct {
		Items []CatalogItem `json:"items"`
		Total int           `json:"total"`
	}

	// ScoredMatch pairs a catalog item with its ranking score. Derived per
	// search invocation and discarded after response assembly.
	ScoredMatch struct {
		Item       CatalogItem
		Score      float64
		ExactMatch bool
		Rank       int
	}
)

// SearchableText returns the candidate text the ranker matches against.
func (i CatalogItem) SearchableText() []string {
	fields := make([]string, 0, len(i.Tags)+2)
	fields = append(fields, i.Name, i.Category)
	fields = append(fields, i.Tags...)

	return fields
}

// BusinessWeight combines rating and stock availability into the final
// ranking tie-break. Out-of-stock items rank below in-stock ones at equal
// rating.
func (i CatalogItem) BusinessWeight() float64 {
	weight := i.Rating
	if i.Stock <= 0 {
		weight /= 2
	}

	return weight
}

// DecodeCatalogPage parses an upstream list payload.
func DecodeCatalogPage(data []byte) (*CatalogPage, error) {
	var page CatalogPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// DecodeCatalogItem parses an upstream detail payload.
func DecodeCatalogItem(data []byte) (*CatalogItem, error) {
	var item CatalogItem
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, err
	}

	return &item, nil
}
