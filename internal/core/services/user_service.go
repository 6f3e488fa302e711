package services

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/google/uuid"
)

// categorySeeder creates the starter categories of a new user.
type categorySeeder interface {
	SeedDefaultCategories(ctx context.Context, userID string) error
}

// UserDefaults are applied to users created on first sign-in.
type UserDefaults struct {
	BaseCurrency string
	Timezone     string
}

type userService struct {
	BaseService
	userRepo  portsrepo.UserRepositoryFacade
	seeder    categorySeeder
	txManager portsrepo.TransactionManager
	defaults  UserDefaults
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, seeder categorySeeder, txManager portsrepo.TransactionManager, defaults UserDefaults) portssvc.UserSvcFacade {
	defaults.BaseCurrency = domain.NormalizeCurrency(defaults.BaseCurrency)
	if defaults.BaseCurrency == "" {
		defaults.BaseCurrency = "UAH"
	}
	if defaults.Timezone == "" {
		defaults.Timezone = "UTC"
	}
	return &userService{
		BaseService: newBaseService(nil),
		userRepo:    userRepo,
		seeder:      seeder,
		txManager:   txManager,
		defaults:    defaults,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// EnsureUser returns the user bound to externalAuthID, creating it together
// with its default categories in one transaction on first sight.
func (s *userService) EnsureUser(ctx context.Context, externalAuthID string, email, name *string) (*domain.User, error) {
	externalAuthID = strings.TrimSpace(externalAuthID)
	if externalAuthID == "" {
		return nil, apperrors.NewAppError(http.StatusUnauthorized, "identity subject is required", nil)
	}

	user, err := s.userRepo.FindUserByExternalAuthID(ctx, externalAuthID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	userID := uuid.NewString()
	newUser := domain.User{
		UserID:          userID,
		ExternalAuthID:  externalAuthID,
		Email:           trimmedOrNil(email),
		Name:            trimmedOrNil(name),
		BaseCurrency:    s.defaults.BaseCurrency,
		DisplayCurrency: s.defaults.BaseCurrency,
		Timezone:        s.defaults.Timezone,
		AuditFields:     domain.NewAuditFields(userID, s.now()),
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
			return err
		}
		return s.seeder.SeedDefaultCategories(ctx, userID)
	})
	if errors.Is(err, apperrors.ErrDuplicate) {
		// Lost a race with a concurrent first request of the same identity.
		return s.userRepo.FindUserByExternalAuthID(ctx, externalAuthID)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to create user")
		return nil, err
	}

	s.LogInfo(ctx, "User created", slog.String("user_id", userID), slog.String("base_currency", newUser.BaseCurrency))
	return &newUser, nil
}
