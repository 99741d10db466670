package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Kamol1dd1nbek/quote-backend/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID               uint    `gorm:"primaryKey"`
	Email            string  `gorm:"uniqueIndex;size:255"`
	FirstName        string  `gorm:"size:128"`
	LastName         string  `gorm:"size:128"`
	PasswordHash     string  `gorm:"column:hashed_password"`
	IsActive         bool    `gorm:"index"`
	IsAdmin          bool
	ActivationLink   *string `gorm:"index;size:64"`
	RefreshTokenHash *string `gorm:"column:hashed_refresh_token"`
	AvatarURL        string  `gorm:"size:512"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailTaken
		}
		return err
	}
	user.ID = dbUser.ID
	return nil
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindAll implements domain.UserRepository
func (r *UserRepositoryImpl) FindAll(ctx context.Context) ([]domain.User, error) {
	var dbUsers []DBUser
	if err := r.db.WithContext(ctx).Order("id").Find(&dbUsers).Error; err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(dbUsers))
	for i := range dbUsers {
		users = append(users, *r.dbToDomain(&dbUsers[i]))
	}
	return users, nil
}

// Update implements domain.UserRepository
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	return r.db.WithContext(ctx).Save(dbUser).Error
}

// Delete implements domain.UserRepository
func (r *UserRepositoryImpl) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&DBUser{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Activate implements domain.UserRepository. The guarded update makes
// the link single-use even under concurrent requests: of two racing
// activations only one flips the row.
func (r *UserRepositoryImpl) Activate(ctx context.Context, link string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("activation_link = ?", link).First(&dbUser).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrAlreadyActivated
			}
			return err
		}

		res := tx.Model(&DBUser{}).
			Where("id = ? AND is_active = ?", dbUser.ID, false).
			Updates(map[string]interface{}{
				"is_active":       true,
				"activation_link": nil,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrAlreadyActivated
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	dbUser.IsActive = true
	dbUser.ActivationLink = nil
	return r.dbToDomain(&dbUser), nil
}

// SetRefreshTokenHash implements domain.UserRepository
func (r *UserRepositoryImpl) SetRefreshTokenHash(ctx context.Context, id uint, hash *string) error {
	res := r.db.WithContext(ctx).Model(&DBUser{}).
		Where("id = ?", id).
		Update("hashed_refresh_token", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// CompareAndSetRefreshTokenHash implements domain.UserRepository. The
// guarded update is the optimistic-concurrency check: of two racing
// refreshes only the one holding the current hash rotates it.
func (r *UserRepositoryImpl) CompareAndSetRefreshTokenHash(ctx context.Context, id uint, oldHash, newHash string) error {
	res := r.db.WithContext(ctx).Model(&DBUser{}).
		Where("id = ? AND hashed_refresh_token = ?", id, oldHash).
		Update("hashed_refresh_token", newHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAccessDenied
	}
	return nil
}

// ClearRefreshTokenHash implements domain.UserRepository
func (r *UserRepositoryImpl) ClearRefreshTokenHash(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&DBUser{}).
		Where("id = ? AND hashed_refresh_token IS NOT NULL", id).
		Update("hashed_refresh_token", nil)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNoLiveSession
	}
	return nil
}

// UpdatePassword implements domain.UserRepository
func (r *UserRepositoryImpl) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	res := r.db.WithContext(ctx).Model(&DBUser{}).
		Where("id = ?", id).
		Update("hashed_password", passwordHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// isUniqueViolation detects duplicate-key errors across the postgres
// and sqlite drivers used in production and tests.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:               user.ID,
		Email:            user.Email,
		FirstName:        user.FirstName,
		LastName:         user.LastName,
		PasswordHash:     user.PasswordHash,
		IsActive:         user.IsActive,
		IsAdmin:          user.IsAdmin,
		ActivationLink:   user.ActivationLink,
		RefreshTokenHash: user.RefreshTokenHash,
		AvatarURL:        user.AvatarURL,
		CreatedAt:        user.CreatedAt,
	}
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:               dbUser.ID,
		Email:            dbUser.Email,
		FirstName:        dbUser.FirstName,
		LastName:         dbUser.LastName,
		PasswordHash:     dbUser.PasswordHash,
		IsActive:         dbUser.IsActive,
		IsAdmin:          dbUser.IsAdmin,
		ActivationLink:   dbUser.ActivationLink,
		RefreshTokenHash: dbUser.RefreshTokenHash,
		AvatarURL:        dbUser.AvatarURL,
		CreatedAt:        dbUser.CreatedAt,
		UpdatedAt:        dbUser.UpdatedAt,
	}
}
