package database

// Migration bookkeeping
const (
	CreateMigrationsTableSQL = `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			id SERIAL PRIMARY KEY,
			migration_name VARCHAR(255) NOT NULL UNIQUE,
			applied_at TIMESTAMPTZ DEFAULT NOW()
		)`

	GetAppliedMigrationsSQL = `SELECT migration_name FROM schema_migrations`

	RecordMigrationSQL = `INSERT INTO schema_migrations (migration_name) VALUES ($1)`
)

// Menu queries. Price is read as text so it reaches decimal.Decimal without a float round trip.
const (
	GetMenuItemsSQL = `
		SELECT id, name, description, price::text, category, sub_category, status, image_url
		FROM menu_items
		WHERE available
		ORDER BY position, id`
)
