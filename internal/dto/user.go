package dto

import (
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
)

// UserResponse defines the user data returned by the API.
type UserResponse struct {
	UserID          string    `json:"userID"`
	Email           *string   `json:"email,omitempty"`
	Name            *string   `json:"name,omitempty"`
	BaseCurrency    string    `json:"baseCurrency"`
	DisplayCurrency string    `json:"displayCurrency"`
	Timezone        string    `json:"timezone"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:          u.UserID,
		Email:           u.Email,
		Name:            u.Name,
		BaseCurrency:    u.BaseCurrency,
		DisplayCurrency: u.DisplayCurrency,
		Timezone:        u.Timezone,
		CreatedAt:       u.CreatedAt,
	}
}
