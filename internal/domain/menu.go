package domain

import "time"

// Menu groups items, e.g. "Lunch" or "Drinks".
type Menu struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MenuItem is one orderable dish on a menu. ImageRef is an opaque reference
// into the file store.
type MenuItem struct {
	ID          string
	MenuID      string
	Name        string
	Description string
	Price       float64
	ImageRef    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
