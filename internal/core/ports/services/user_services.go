package services

import (
	"context"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// EnsureUser returns the user bound to externalAuthID, creating it with
	// default settings and seed categories on first sight.
	EnsureUser(ctx context.Context, externalAuthID string, email, name *string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}
