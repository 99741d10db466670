package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Kamol1dd1nbek/quote-backend/domain"
)

// OtpRepositoryImpl implements domain.OtpRepository using GORM
type OtpRepositoryImpl struct {
	db *gorm.DB
}

// DBOtp represents the database model for Otp (with GORM tags)
type DBOtp struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"index;size:255"`
	Code      string `gorm:"size:16"`
	ExpiresAt time.Time
	Verified  bool
	UserID    uint `gorm:"index"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (DBOtp) TableName() string {
	return "otps"
}

// NewOtpRepository creates a new OTP repository
func NewOtpRepository(db *gorm.DB) domain.OtpRepository {
	return &OtpRepositoryImpl{db: db}
}

// Replace implements domain.OtpRepository. Deleting the prior record
// and inserting the new one share a transaction so concurrent requests
// for the same email cannot leave two live records behind.
func (r *OtpRepositoryImpl) Replace(ctx context.Context, otp *domain.Otp) error {
	dbOtp := r.domainToDB(otp)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", otp.Email).Delete(&DBOtp{}).Error; err != nil {
			return err
		}
		return tx.Create(dbOtp).Error
	})
	if err != nil {
		return err
	}
	otp.ID = dbOtp.ID
	return nil
}

// FindByID implements domain.OtpRepository
func (r *OtpRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Otp, error) {
	var dbOtp DBOtp
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbOtp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOtpNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbOtp), nil
}

// LatestByEmail implements domain.OtpRepository
func (r *OtpRepositoryImpl) LatestByEmail(ctx context.Context, email string) (*domain.Otp, error) {
	var dbOtp DBOtp
	err := r.db.WithContext(ctx).Where("email = ?", email).Order("id DESC").First(&dbOtp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOtpNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbOtp), nil
}

// MarkVerified implements domain.OtpRepository. The guarded update
// keeps the false-to-true transition one-way.
func (r *OtpRepositoryImpl) MarkVerified(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&DBOtp{}).
		Where("id = ? AND verified = ?", id, false).
		Update("verified", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrOtpUsed
	}
	return nil
}

// Delete implements domain.OtpRepository
func (r *OtpRepositoryImpl) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&DBOtp{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrOtpNotFound
	}
	return nil
}

// domainToDB converts domain otp to database otp
func (r *OtpRepositoryImpl) domainToDB(otp *domain.Otp) *DBOtp {
	return &DBOtp{
		ID:        otp.ID,
		Email:     otp.Email,
		Code:      otp.Code,
		ExpiresAt: otp.ExpiresAt,
		Verified:  otp.Verified,
		UserID:    otp.UserID,
	}
}

// dbToDomain converts database otp to domain otp
func (r *OtpRepositoryImpl) dbToDomain(dbOtp *DBOtp) *domain.Otp {
	return &domain.Otp{
		ID:        dbOtp.ID,
		Email:     dbOtp.Email,
		Code:      dbOtp.Code,
		ExpiresAt: dbOtp.ExpiresAt,
		Verified:  dbOtp.Verified,
		UserID:    dbOtp.UserID,
	}
}
