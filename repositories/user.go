package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/alloylab/apperrors"
	"github.com/alloylab/models"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// WithTx returns a repository bound to tx
func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{db: tx}
}

// FindByID retrieves a user by its ID
func (r *UserRepository) FindByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	return user, translate(err)
}

// FindByName retrieves a user by login name
func (r *UserRepository) FindByName(ctx context.Context, name string) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&user).Error
	return user, translate(err)
}

// ExistsByName checks whether a name is taken
func (r *UserRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

// FindAll retrieves all users ordered by name
func (r *UserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Order("name").Find(&users).Error
	return users, err
}

// FindActiveOperators retrieves users eligible to conduct new experiments
func (r *UserRepository) FindActiveOperators(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Where("is_operator = ? AND is_active = ?", true, true).
		Order("name").
		Find(&users).Error
	return users, err
}

// Create inserts a new user into the database
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

// SetActive updates the activation flag of a user
func (r *UserRepository) SetActive(ctx context.Context, id uint, active bool) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DB returns the database instance
func (r *UserRepository) DB() *gorm.DB {
	return r.db
}
