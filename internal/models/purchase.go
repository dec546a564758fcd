package models

import "time"

// Purchase is an immutable ledger row. Sweet name and unit price are
// denormalized so history survives catalog deletions (SweetID goes nil).
type Purchase struct {
	ID              string
	UserID          string
	SweetID         *string
	SweetName       string
	Quantity        int
	PriceAtPurchase float64
	TotalAmount     float64
	PurchasedAt     time.Time
}
