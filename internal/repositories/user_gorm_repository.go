package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/apperrors"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, translate(err, "get user")
	}
	return &user, nil
}

// Upsert inserts the user or, when the id already exists, overwrites every
// column except id and created_at.
func (r *GORMUserRepository) Upsert(ctx context.Context, user *models.User) (*models.User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	var stored models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "first_name", "last_name", "profile_image_url", "role", "updated_at"}),
		}).Create(user).Error
		if err != nil {
			return err
		}
		return tx.First(&stored, "id = ?", user.ID).Error
	})
	if err != nil {
		return nil, translate(err, "upsert user")
	}
	return &stored, nil
}

// Update writes the named columns of user.
func (r *GORMUserRepository) Update(ctx context.Context, user *models.User, fields ...string) error {
	user.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).Model(user).Select(append(fields, "updated_at")).Updates(user)
	if res.Error != nil {
		return translate(res.Error, "update user")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("user with ID %s not found", user.ID)
	}
	return nil
}
