package database

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"restaurant-menu/internal/menu"
)

type menuRow struct {
	ID          int
	Name        string
	Description string
	Price       string
	Category    string
	SubCategory string
	Status      string
	ImageURL    string
}

func (r menuRow) toMenuItem() (menu.MenuItem, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return menu.MenuItem{}, fmt.Errorf("menu item %d: invalid price %q: %w", r.ID, r.Price, err)
	}
	return menu.MenuItem{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       price,
		Category:    menu.Category(r.Category),
		SubCategory: menu.SubCategory(r.SubCategory),
		Status:      menu.Status(r.Status),
		ImageURL:    r.ImageURL,
	}, nil
}

// LoadCatalog reads the available menu items and validates them into a catalog
func (db *DB) LoadCatalog(ctx context.Context) (*menu.Catalog, error) {
	rows, err := db.Query(ctx, GetMenuItemsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	var items []menu.MenuItem
	for rows.Next() {
		var r menuRow
		if err := rows.Scan(&r.ID, &r.Name, &r.Description, &r.Price, &r.Category, &r.SubCategory, &r.Status, &r.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		item, err := r.toMenuItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read menu items: %w", err)
	}

	catalog, err := menu.NewCatalog(items)
	if err != nil {
		return nil, err
	}

	db.logger.Info("catalog_loaded", "Menu catalog loaded from database", "startup", map[string]interface{}{
		"items": catalog.Len(),
	})
	return catalog, nil
}
