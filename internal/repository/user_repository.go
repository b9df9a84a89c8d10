package repository

import (
	"errors"
	"time"

	"github.com/yuvasaathi/yuvasaathi-api/internal/models"

	"gorm.io/gorm"
)

// UserRepository is the user data-access interface.
type UserRepository interface {
	GetByEmail(email string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	MarkVerified(id uint) error
	UpdateResumePath(id uint, path string) error
	UpdateGeneratedResumePath(id uint, path string) error
	TouchLastLogin(id uint, at time.Time) error
}

// GormUserRepository is the GORM implementation.
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository.
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// GetByEmail fetches a user by email, (nil, nil) when absent.
func (r *GormUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByID fetches a user by ID, (nil, nil) when absent.
func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Create inserts a user.
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Update saves a full user row.
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// MarkVerified flips the verified flag. Idempotent.
func (r *GormUserRepository) MarkVerified(id uint) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", id).
		Update("verified", true).Error
}

// UpdateResumePath records the uploaded resume location.
func (r *GormUserRepository) UpdateResumePath(id uint, path string) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", id).
		Update("resume_path", path).Error
}

// UpdateGeneratedResumePath records the generated resume location.
func (r *GormUserRepository) UpdateGeneratedResumePath(id uint, path string) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", id).
		Update("generated_resume_path", path).Error
}

// TouchLastLogin records a successful login time.
func (r *GormUserRepository) TouchLastLogin(id uint, at time.Time) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error
}
