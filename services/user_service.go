package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/alloylab/apperrors"
	"github.com/alloylab/dto"
	"github.com/alloylab/models"
	"github.com/alloylab/policy"
	"github.com/alloylab/repositories"
)

// UserService handles business logic for user administration
type UserService struct {
	userRepo *repositories.UserRepository
	log      *zap.Logger
}

// NewUserService creates a new user service instance
func NewUserService(db *gorm.DB, log *zap.Logger) *UserService {
	return &UserService{
		userRepo: repositories.NewUserRepository(db),
		log:      log.Named("users"),
	}
}

// CreateUser creates an account on behalf of an admin
func (s *UserService) CreateUser(ctx context.Context, actor *models.User, req dto.CreateUserRequest) (models.User, error) {
	if err := policy.Require(actor, policy.ManageUsers); err != nil {
		return models.User{}, err
	}
	user, err := s.CreateAccount(ctx, req)
	if err != nil {
		return models.User{}, err
	}
	s.log.Info("User created",
		zap.Uint("user_id", user.ID),
		zap.Uint("created_by", actor.ID))
	return user, nil
}

// CreateAccount inserts a new active account without an authorization check.
// Used by the create-user bootstrap command.
func (s *UserService) CreateAccount(ctx context.Context, req dto.CreateUserRequest) (models.User, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.User{}, apperrors.Validation("name is required")
	}
	if len(req.Password) < 6 {
		return models.User{}, apperrors.Validation("password must be at least 6 characters")
	}

	exists, err := s.userRepo.ExistsByName(ctx, name)
	if err != nil {
		return models.User{}, err
	}
	if exists {
		return models.User{}, fmt.Errorf("%w: user %q already exists", apperrors.ErrConflict, name)
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	isOperator := true
	if req.IsOperator != nil {
		isOperator = *req.IsOperator
	}

	user := models.User{
		Name:         name,
		Post:         strings.TrimSpace(req.Post),
		PasswordHash: hash,
		IsAdmin:      req.IsAdmin,
		IsDirector:   req.IsDirector,
		IsOperator:   isOperator,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// ListUsers returns all accounts split by activation status
func (s *UserService) ListUsers(ctx context.Context, actor *models.User) (dto.UserListResponse, error) {
	if err := policy.Require(actor, policy.ManageUsers); err != nil {
		return dto.UserListResponse{}, err
	}

	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return dto.UserListResponse{}, err
	}

	response := dto.UserListResponse{
		Active:   []models.User{},
		Inactive: []models.User{},
	}
	for _, user := range users {
		if user.IsActive {
			response.Active = append(response.Active, user)
		} else {
			response.Inactive = append(response.Inactive, user)
		}
	}
	return response, nil
}

// ToggleUserStatus flips the activation flag of a user
func (s *UserService) ToggleUserStatus(ctx context.Context, actor *models.User, id uint) (models.User, error) {
	if err := policy.Require(actor, policy.ManageUsers); err != nil {
		return models.User{}, err
	}
	if actor.ID == id {
		return models.User{}, apperrors.Validation("you cannot change the status of your own account")
	}

	var user models.User
	err := s.userRepo.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.userRepo.WithTx(tx)

		current, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := repo.SetActive(ctx, id, !current.IsActive); err != nil {
			return err
		}
		current.IsActive = !current.IsActive
		user = current
		return nil
	})
	if err != nil {
		return models.User{}, err
	}

	s.log.Info("User status changed",
		zap.Uint("user_id", user.ID),
		zap.Bool("active", user.IsActive),
		zap.Uint("changed_by", actor.ID))
	return user, nil
}
