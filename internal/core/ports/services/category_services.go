package services

import (
	"context"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/dto"
)

// CategoryReaderSvc defines read operations for categories
type CategoryReaderSvc interface {
	ListCategories(ctx context.Context, user domain.User, categoryType *domain.TransactionType, includeArchived bool) ([]domain.Category, error)
}

// CategoryWriterSvc defines write operations for categories
type CategoryWriterSvc interface {
	CreateCategory(ctx context.Context, user domain.User, req dto.CreateCategoryRequest) (*domain.Category, error)
	UpdateCategory(ctx context.Context, user domain.User, categoryID string, patch domain.CategoryPatch) (*domain.Category, error)

	// SeedDefaultCategories creates the default category set for a new user.
	SeedDefaultCategories(ctx context.Context, userID string) error
}

// CategorySvcFacade combines all category service interfaces
type CategorySvcFacade interface {
	CategoryReaderSvc
	CategoryWriterSvc
}
