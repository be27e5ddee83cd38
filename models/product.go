package models

import "strconv"

// Product is one catalog entry as served by the catalog collaborator.
type Product struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Image      string  `json:"image"`
	Category   string  `json:"category"`
	Price      float64 `json:"price"`
	Popularity float64 `json:"popularity"`
	Stock      int     `json:"stock"`
}

// ProductRecord tolerates the loosely-typed rows the collaborator serves:
// ids may arrive as JSON numbers or strings, and seeded rows sometimes miss
// title or category entirely.
type ProductRecord struct {
	ID         any     `json:"id"`
	Title      *string `json:"title"`
	Image      string  `json:"image"`
	Category   *string `json:"category"`
	Price      float64 `json:"price"`
	Popularity float64 `json:"popularity"`
	Stock      int     `json:"stock"`
}

// Valid reports whether the record is usable: non-empty id, title and
// category both present. Invalid records are dropped, not errored.
func (r ProductRecord) Valid() bool {
	return r.RecordID() != "" && r.Title != nil && r.Category != nil
}

// RecordID normalizes the collaborator's id field to a string.
func (r ProductRecord) RecordID() string {
	return FormatID(r.ID)
}

// FormatID stringifies a collaborator id, which json-server serves as either
// a JSON number or a string depending on how the record was seeded.
func FormatID(id any) string {
	switch v := id.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}

// Product converts a valid record; call Valid first. Missing numeric fields
// already decoded to zero, which is what the query pipeline expects.
func (r ProductRecord) Product() Product {
	var title, category string
	if r.Title != nil {
		title = *r.Title
	}
	if r.Category != nil {
		category = *r.Category
	}
	return Product{
		ID:         r.RecordID(),
		Title:      title,
		Image:      r.Image,
		Category:   category,
		Price:      r.Price,
		Popularity: r.Popularity,
		Stock:      r.Stock,
	}
}
