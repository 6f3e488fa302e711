package domain

import "time"

// User is an account holder. BaseCurrency never changes after creation.
type User struct {
	UserID          string  `json:"userID"` // Primary Key (UUID)
	ExternalAuthID  string  `json:"externalAuthID"`
	Email           *string `json:"email,omitempty"`
	Name            *string `json:"name,omitempty"`
	BaseCurrency    string  `json:"baseCurrency"`
	DisplayCurrency string  `json:"displayCurrency"`
	Timezone        string  `json:"timezone"`
	AuditFields
}

// Location resolves the user's timezone, falling back to fallback when unknown.
func (u *User) Location(fallback *time.Location) *time.Location {
	if u != nil && u.Timezone != "" {
		if loc, err := time.LoadLocation(u.Timezone); err == nil {
			return loc
		}
	}
	if fallback == nil {
		return time.UTC
	}
	return fallback
}
