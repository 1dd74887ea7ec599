package repository

import (
	"context"
	"time"

	"hotel-booking-api/internal/apperror"
	"hotel-booking-api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserQuerySchema lists the fields accounts may be filtered and sorted by
var UserQuerySchema = QuerySchema{
	Filters: map[string]string{
		"name":  "name",
		"email": "email",
		"role":  "role",
	},
	Sorts: map[string]string{
		"name":      "name",
		"email":     "email",
		"createdAt": "created_at",
	},
	DefaultSort: "created_at DESC",
}

type UserRepository struct {
	db *DB
}

func NewUserRepo(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindUserByEmail finds a user by email
func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	db, cancel := r.db.session(ctx)
	defer cancel()

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, lookupErr("find user", err, "User not found")
	}
	return &user, nil
}

// FindUserByID finds a user by ID
func (r *UserRepository) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	db, cancel := r.db.session(ctx)
	defer cancel()

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return nil, lookupErr("find user", err, "User not found")
	}
	return &user, nil
}

// ListUsers returns one page of users matching q and the total match count
func (r *UserRepository) ListUsers(ctx context.Context, q ListQuery) ([]models.User, int64, error) {
	db, cancel := r.db.session(ctx)
	defer cancel()

	var total int64
	if err := q.apply(db.Model(&models.User{}), UserQuerySchema).Count(&total).Error; err != nil {
		return nil, 0, apperror.Store("count users", err)
	}

	var users []models.User
	if err := q.paginate(q.apply(db, UserQuerySchema)).Find(&users).Error; err != nil {
		return nil, 0, apperror.Store("list users", err)
	}
	return users, total, nil
}

// CreateUser creates a new user
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	db, cancel := r.db.session(ctx)
	defer cancel()

	if err := db.Create(user).Error; err != nil {
		if isDuplicateKey(err) {
			return apperror.Conflict("Email %s is already registered", user.Email)
		}
		return apperror.Store("create user", err)
	}
	return nil
}

// UpdateUser saves all fields of an existing user
func (r *UserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	db, cancel := r.db.session(ctx)
	defer cancel()

	if err := db.Save(user).Error; err != nil {
		if isDuplicateKey(err) {
			return apperror.Conflict("Email %s is already registered", user.Email)
		}
		return apperror.Store("update user", err)
	}
	return nil
}

// DeleteUser removes a user with their bookings, tokens and hotel assignments
func (r *UserRepository) DeleteUser(ctx context.Context, id uint) error {
	err := r.db.transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.UserHotel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
	if err != nil {
		return apperror.Store("delete user", err)
	}
	return nil
}

// CreateRefreshToken creates a new refresh token
func (r *UserRepository) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	db, cancel := r.db.session(ctx)
	defer cancel()

	if err := db.Omit(clause.Associations).Create(token).Error; err != nil {
		return apperror.Store("create refresh token", err)
	}
	return nil
}

// FindRefreshTokenByHash finds a live refresh token by its hash
func (r *UserRepository) FindRefreshTokenByHash(ctx context.Context, hash string) (*models.RefreshToken, error) {
	db, cancel := r.db.session(ctx)
	defer cancel()

	var token models.RefreshToken
	err := db.Where("token_hash = ? AND revoked = ?", hash, false).
		Preload("User").
		First(&token).Error
	if err != nil {
		return nil, lookupErr("find refresh token", err, "Refresh token not found or revoked")
	}
	return &token, nil
}

// RevokeRefreshTokenByHash marks a refresh token as revoked by its hash
func (r *UserRepository) RevokeRefreshTokenByHash(ctx context.Context, hash string) error {
	db, cancel := r.db.session(ctx)
	defer cancel()

	err := db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", hash).
		Update("revoked", true).Error
	if err != nil {
		return apperror.Store("revoke refresh token", err)
	}
	return nil
}

// PurgeRefreshTokens deletes revoked tokens and tokens expired before now
func (r *UserRepository) PurgeRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	db, cancel := r.db.session(ctx)
	defer cancel()

	result := db.Where("revoked = ? OR expires_at < ?", true, now).Delete(&models.RefreshToken{})
	if result.Error != nil {
		return 0, apperror.Store("purge refresh tokens", result.Error)
	}
	return result.RowsAffected, nil
}
