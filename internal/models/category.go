package models

// Category is the categories table row.
type Category struct {
	CategoryID string  `db:"category_id"`
	UserID     string  `db:"user_id"`
	Type       string  `db:"type"`
	Name       string  `db:"name"`
	Icon       *string `db:"icon"`
	Color      *string `db:"color"`
	Position   int     `db:"position"`
	IsArchived bool    `db:"is_archived"`
	AuditFields
}
