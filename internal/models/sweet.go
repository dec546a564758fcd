package models

import "time"

type Sweet struct {
	ID          string
	Name        string
	Description *string
	Category    string
	Price       float64
	Quantity    int
	ImageURL    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SweetPatch is the allow-listed partial update applied by PUT /sweets/:id.
// Nil fields are left untouched.
type SweetPatch struct {
	Name        *string
	Description *string
	Category    *string
	Price       *float64
	Quantity    *int
	ImageURL    *string
}

// IsZero reports whether the patch carries no changes.
func (p SweetPatch) IsZero() bool {
	return p.Name == nil && p.Description == nil && p.Category == nil &&
		p.Price == nil && p.Quantity == nil && p.ImageURL == nil
}

// SweetFilter narrows catalog searches. Zero-valued fields are no-ops;
// all set fields are combined with AND.
type SweetFilter struct {
	Name     string
	Category string
	MinPrice *float64
	MaxPrice *float64
}
