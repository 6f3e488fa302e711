package dto

import (
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a category.
type CreateCategoryRequest struct {
	Type     domain.TransactionType `json:"type" binding:"required,oneof=expense income"`
	Name     string                 `json:"name" binding:"required,min=1,max=64"`
	Icon     *string                `json:"icon" binding:"omitempty,max=32"`
	Color    *string                `json:"color" binding:"omitempty,max=16"`
	Position *int                   `json:"position" binding:"omitempty,min=0"`
}

// UpdateCategoryRequest defines the data allowed for updating a category.
type UpdateCategoryRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=1,max=64"`
	Icon       *string `json:"icon" binding:"omitempty,max=32"`
	Color      *string `json:"color" binding:"omitempty,max=16"`
	Position   *int    `json:"position" binding:"omitempty,min=0"`
	IsArchived *bool   `json:"isArchived"`
}

// ToPatch converts the request into a domain patch.
func (r UpdateCategoryRequest) ToPatch() domain.CategoryPatch {
	return domain.CategoryPatch{
		Name:       r.Name,
		Icon:       r.Icon,
		Color:      r.Color,
		Position:   r.Position,
		IsArchived: r.IsArchived,
	}
}

// ListCategoriesParams defines query parameters for listing categories.
type ListCategoriesParams struct {
	Type            string `form:"type" binding:"omitempty,oneof=expense income"`
	IncludeArchived bool   `form:"includeArchived"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID string                 `json:"categoryID"`
	Type       domain.TransactionType `json:"type"`
	Name       string                 `json:"name"`
	Icon       *string                `json:"icon,omitempty"`
	Color      *string                `json:"color,omitempty"`
	Position   int                    `json:"position"`
	IsArchived bool                   `json:"isArchived"`
	CreatedAt  time.Time              `json:"createdAt"`
}

// ListCategoriesResponse wraps the list of categories.
type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse DTO.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID: c.ID,
		Type:       c.Type,
		Name:       c.Name,
		Icon:       c.Icon,
		Color:      c.Color,
		Position:   c.Position,
		IsArchived: c.IsArchived,
		CreatedAt:  c.CreatedAt,
	}
}

// ToListCategoriesResponse converts a slice of categories to its response DTO.
func ToListCategoriesResponse(categories []domain.Category) ListCategoriesResponse {
	out := make([]CategoryResponse, len(categories))
	for i := range categories {
		out[i] = ToCategoryResponse(&categories[i])
	}
	return ListCategoriesResponse{Categories: out}
}
