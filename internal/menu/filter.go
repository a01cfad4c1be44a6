package menu

import "strings"

// FilterState is the user's current search term and category choice
type FilterState struct {
	Search   string   `json:"search"`
	Category Category `json:"category"`
}

// NewFilterState returns a filter that shows every item
func NewFilterState() FilterState {
	return FilterState{Category: All}
}

// Matches reports whether item passes the filter
func (f FilterState) Matches(item MenuItem) bool {
	if !strings.Contains(strings.ToLower(item.Name), strings.ToLower(f.Search)) {
		return false
	}
	return f.Category == All || f.Category == "" || item.Category == f.Category
}

// VisibleItems returns the items that match search and category, in input order
func VisibleItems(items []MenuItem, search string, category Category) []MenuItem {
	f := FilterState{Search: search, Category: category}
	out := make([]MenuItem, 0, len(items))
	for _, item := range items {
		if f.Matches(item) {
			out = append(out, item)
		}
	}
	return out
}

// Visible applies the filter to the catalog
func (c *Catalog) Visible(f FilterState) []MenuItem {
	return VisibleItems(c.items, f.Search, f.Category)
}
