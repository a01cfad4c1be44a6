package menu

import (
	"github.com/shopspring/decimal"
)

// Category groups menu items for filtering
type Category string

const (
	Burgers  Category = "Burgers"
	Pizza    Category = "Pizza"
	Salads   Category = "Salads"
	Desserts Category = "Desserts"
	Pasta    Category = "Pasta"

	// All is the filter wildcard. No item belongs to it.
	All Category = "All"
)

// SubCategory narrows a category
type SubCategory string

// Status represents the stock status of a menu item
type Status string

const (
	InStock    Status = "In Stock"
	LowStock   Status = "Low Stock"
	OutOfStock Status = "Out of Stock"
)

// Categories lists the item categories in display order
var Categories = []Category{Burgers, Pizza, Salads, Desserts, Pasta}

// SubCategories lists the subcategories allowed under each category
var SubCategories = map[Category][]SubCategory{
	Burgers:  {"Beef Burgers", "Chicken Burgers", "Veggie Burgers"},
	Pizza:    {"Margherita", "Pepperoni", "BBQ Chicken"},
	Salads:   {"Caesar", "Greek", "Garden"},
	Desserts: {"Brownies", "Ice Cream", "Cakes"},
	Pasta:    {"Alfredo", "Bolognese", "Carbonara"},
}

// MenuItem represents a dish on the menu
type MenuItem struct {
	ID          int             `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Category    Category        `json:"category" db:"category"`
	SubCategory SubCategory     `json:"sub_category" db:"sub_category"`
	Status      Status          `json:"status" db:"status"`
	ImageURL    string          `json:"image_url" db:"image_url"`
}

// FilterCategories returns the category choices offered to the user, wildcard first
func FilterCategories() []Category {
	out := make([]Category, 0, len(Categories)+1)
	out = append(out, All)
	return append(out, Categories...)
}

// IsValid reports whether c is one of the item categories
func (c Category) IsValid() bool {
	_, ok := SubCategories[c]
	return ok
}

// Allows reports whether sub belongs to the category
func (c Category) Allows(sub SubCategory) bool {
	for _, s := range SubCategories[c] {
		if s == sub {
			return true
		}
	}
	return false
}

// IsValid reports whether s is a known stock status
func (s Status) IsValid() bool {
	switch s {
	case InStock, LowStock, OutOfStock:
		return true
	default:
		return false
	}
}
