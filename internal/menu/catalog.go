package menu

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidCatalog is returned when catalog data breaks a catalog rule
var ErrInvalidCatalog = errors.New("invalid catalog")

// Catalog is an immutable, ordered list of menu items
type Catalog struct {
	items []MenuItem
	index map[int]int
}

// NewCatalog validates items and builds a catalog preserving their order
func NewCatalog(items []MenuItem) (*Catalog, error) {
	c := &Catalog{
		items: make([]MenuItem, len(items)),
		index: make(map[int]int, len(items)),
	}
	copy(c.items, items)

	for i, item := range c.items {
		if err := validateItem(item, i); err != nil {
			return nil, err
		}
		if _, dup := c.index[item.ID]; dup {
			return nil, fmt.Errorf("%w: items[%d].id %d is not unique", ErrInvalidCatalog, i, item.ID)
		}
		c.index[item.ID] = i
	}

	return c, nil
}

// Items returns a copy of the catalog's items in catalog order
func (c *Catalog) Items() []MenuItem {
	out := make([]MenuItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of items
func (c *Catalog) Len() int {
	return len(c.items)
}

// Lookup finds an item by id
func (c *Catalog) Lookup(id int) (MenuItem, bool) {
	i, ok := c.index[id]
	if !ok {
		return MenuItem{}, false
	}
	return c.items[i], true
}

// ImageURLs returns the carousel images in catalog order
func (c *Catalog) ImageURLs() []string {
	urls := make([]string, len(c.items))
	for i, item := range c.items {
		urls[i] = item.ImageURL
	}
	return urls
}

func validateItem(item MenuItem, index int) error {
	prefix := fmt.Sprintf("items[%d]", index)

	if item.Name == "" {
		return fmt.Errorf("%w: %s.name is required", ErrInvalidCatalog, prefix)
	}
	if item.Price.IsNegative() {
		return fmt.Errorf("%w: %s.price must not be negative", ErrInvalidCatalog, prefix)
	}
	if !item.Category.IsValid() {
		return fmt.Errorf("%w: %s.category %q is not a menu category", ErrInvalidCatalog, prefix, item.Category)
	}
	if !item.Category.Allows(item.SubCategory) {
		return fmt.Errorf("%w: %s.sub_category %q does not belong to %s", ErrInvalidCatalog, prefix, item.SubCategory, item.Category)
	}
	if !item.Status.IsValid() {
		return fmt.Errorf("%w: %s.status %q is not a stock status", ErrInvalidCatalog, prefix, item.Status)
	}
	return nil
}

// DefaultItems returns the house menu
func DefaultItems() []MenuItem {
	return []MenuItem{
		{
			ID:          1,
			Name:        "Classic Cheeseburger",
			Description: "Juicy beef patty with melted cheese, lettuce, tomato, and special sauce.",
			Price:       decimal.RequireFromString("12.99"),
			Category:    Burgers,
			SubCategory: "Beef Burgers",
			Status:      InStock,
			ImageURL:    "https://public.readdy.ai/ai/img_res/f2d1c74d64489b64476350553be4a38e.jpg",
		},
		{
			ID:          2,
			Name:        "Margherita Pizza",
			Description: "Traditional pizza with tomato sauce, fresh mozzarella, and basil.",
			Price:       decimal.RequireFromString("14.99"),
			Category:    Pizza,
			SubCategory: "Margherita",
			Status:      InStock,
			ImageURL:    "https://public.readdy.ai/ai/img_res/910319bc9cc0e339d24b4fa22800fe5b.jpg",
		},
		{
			ID:          3,
			Name:        "Caesar Salad",
			Description: "Crisp romaine lettuce with Caesar dressing, croutons, and parmesan.",
			Price:       decimal.RequireFromString("9.99"),
			Category:    Salads,
			SubCategory: "Caesar",
			Status:      LowStock,
			ImageURL:    "https://public.readdy.ai/ai/img_res/aa33ecaa22a914d1408b3a50da001629.jpg",
		},
		{
			ID:          4,
			Name:        "Chocolate Brownie",
			Description: "Rich chocolate brownie with walnuts and a fudgy center.",
			Price:       decimal.RequireFromString("6.99"),
			Category:    Desserts,
			SubCategory: "Brownies",
			Status:      OutOfStock,
			ImageURL:    "https://public.readdy.ai/ai/img_res/47fd27ebb3e4ed6f3e7ea25556c361ed.jpg",
		},
		{
			ID:          5,
			Name:        "Chicken Alfredo",
			Description: "Fettuccine pasta with creamy alfredo sauce and grilled chicken.",
			Price:       decimal.RequireFromString("15.99"),
			Category:    Pasta,
			SubCategory: "Alfredo",
			Status:      InStock,
			ImageURL:    "https://public.readdy.ai/ai/img_res/d41e462e3c6035e22ec983120ae5aab9.jpg",
		},
	}
}

// DefaultCatalog returns the house menu as a catalog
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultItems())
	if err != nil {
		panic(err)
	}
	return c
}
