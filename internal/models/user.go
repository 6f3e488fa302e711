package models

// User is the users table row.
type User struct {
	UserID          string  `db:"user_id"`
	ExternalAuthID  string  `db:"external_auth_id"`
	Email           *string `db:"email"`
	Name            *string `db:"name"`
	BaseCurrency    string  `db:"base_currency"`
	DisplayCurrency string  `db:"display_currency"`
	Timezone        string  `db:"timezone"`
	AuditFields
}
