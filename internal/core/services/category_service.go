package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/google/uuid"
)

const maxCategoryNameLength = 64

// categoryService manages the categories ledger entries are filed under.
type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryService{BaseService: newBaseService(nil), categoryRepo: categoryRepo}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) ListCategories(ctx context.Context, user domain.User, categoryType *domain.TransactionType, includeArchived bool) ([]domain.Category, error) {
	if categoryType != nil && !categoryType.IsValid() {
		return nil, fmt.Errorf("%w: invalid category type %q", apperrors.ErrValidation, *categoryType)
	}
	categories, err := s.categoryRepo.ListCategories(ctx, user.UserID, categoryType, includeArchived)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories", slog.String("user_id", user.UserID))
		return nil, err
	}
	return categories, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, user domain.User, req dto.CreateCategoryRequest) (*domain.Category, error) {
	if !req.Type.IsValid() {
		return nil, fmt.Errorf("%w: invalid category type %q", apperrors.ErrValidation, req.Type)
	}
	name, err := validateCategoryName(req.Name)
	if err != nil {
		return nil, err
	}

	position := 0
	if req.Position != nil {
		position = *req.Position
	} else {
		existing, err := s.categoryRepo.ListCategories(ctx, user.UserID, &req.Type, true)
		if err != nil {
			return nil, err
		}
		position = len(existing)
	}

	category := domain.Category{
		ID:          uuid.NewString(),
		UserID:      user.UserID,
		Type:        req.Type,
		Name:        name,
		Icon:        trimmedOrNil(req.Icon),
		Color:       trimmedOrNil(req.Color),
		Position:    position,
		AuditFields: domain.NewAuditFields(user.UserID, s.now()),
	}
	if err := s.categoryRepo.SaveCategories(ctx, []domain.Category{category}); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to create category", slog.String("user_id", user.UserID))
		}
		return nil, err
	}
	s.LogInfo(ctx, "Category created", slog.String("category_id", category.ID))
	return &category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, user domain.User, categoryID string, patch domain.CategoryPatch) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, user.UserID, categoryID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name, err := validateCategoryName(*patch.Name)
		if err != nil {
			return nil, err
		}
		category.Name = name
	}
	if patch.Icon != nil {
		category.Icon = trimmedOrNil(patch.Icon)
	}
	if patch.Color != nil {
		category.Color = trimmedOrNil(patch.Color)
	}
	if patch.Position != nil {
		if *patch.Position < 0 {
			return nil, fmt.Errorf("%w: position must not be negative", apperrors.ErrValidation)
		}
		category.Position = *patch.Position
	}
	if patch.IsArchived != nil {
		category.IsArchived = *patch.IsArchived
	}
	category.Touch(user.UserID, s.now())

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		return nil, err
	}
	return category, nil
}

// SeedDefaultCategories creates the default set, numbering positions per type.
func (s *categoryService) SeedDefaultCategories(ctx context.Context, userID string) error {
	now := s.now()
	positions := map[domain.TransactionType]int{}
	categories := make([]domain.Category, 0, len(domain.DefaultCategories))
	for _, d := range domain.DefaultCategories {
		icon := d.Icon
		categories = append(categories, domain.Category{
			ID:          uuid.NewString(),
			UserID:      userID,
			Type:        d.Type,
			Name:        d.Name,
			Icon:        &icon,
			Position:    positions[d.Type],
			AuditFields: domain.NewAuditFields(userID, now),
		})
		positions[d.Type]++
	}
	if err := s.categoryRepo.SaveCategories(ctx, categories); err != nil {
		s.LogError(ctx, err, "Failed to seed default categories", slog.String("user_id", userID))
		return err
	}
	return nil
}

func validateCategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: category name is required", apperrors.ErrValidation)
	}
	if len([]rune(name)) > maxCategoryNameLength {
		return "", fmt.Errorf("%w: category name must be at most %d characters", apperrors.ErrValidation, maxCategoryNameLength)
	}
	return name, nil
}

// trimmedOrNil clears optional text set to blank.
func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// requireCategory loads a category usable for a new or moved entry of kind.
// Unknown, archived and mismatched categories are validation errors.
func requireCategory(ctx context.Context, repo portsrepo.CategoryReader, userID, categoryID string, kind domain.TransactionType) (*domain.Category, error) {
	if strings.TrimSpace(categoryID) == "" {
		return nil, fmt.Errorf("%w: category is required", apperrors.ErrValidation)
	}
	category, err := repo.FindCategoryByID(ctx, userID, categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %s not found", apperrors.ErrValidation, categoryID)
		}
		return nil, err
	}
	if category.IsArchived {
		return nil, fmt.Errorf("%w: category %s is archived", apperrors.ErrValidation, categoryID)
	}
	if category.Type != kind {
		return nil, fmt.Errorf("%w: category type %s does not match %s", apperrors.ErrValidation, category.Type, kind)
	}
	return category, nil
}

func categoryIndex(categories []domain.Category) map[string]domain.Category {
	m := make(map[string]domain.Category, len(categories))
	for _, c := range categories {
		m[c.ID] = c
	}
	return m
}
