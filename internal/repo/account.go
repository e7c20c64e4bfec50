package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/marketplace/internal/models"
)

func (r *GormRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Preload("CartRefs").Where("id = ?", id).First(&user).Error; err != nil {
		return nil, errors.Wrapf(err, "get user %s", id)
	}
	return &user, nil
}

func (r *GormRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, errors.Wrapf(err, "get user by username %q", username)
	}
	return &user, nil
}

func (r *GormRepo) CreateUserIfNotExists(ctx context.Context, u *models.User) error {
	tx := r.DB.WithContext(ctx).Where("username = ?", u.Username).FirstOrCreate(u)
	if errors.Is(tx.Error, gorm.ErrDuplicatedKey) {
		// lost a race with a concurrent registration
		return ErrUserAlreadyExist
	}
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "create user")
	}
	if tx.RowsAffected == 0 {
		return ErrUserAlreadyExist
	}
	return nil
}

func (r *GormRepo) UpdatePasswordDigest(ctx context.Context, id uuid.UUID, digest string) error {
	res := r.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("password_digest", digest)
	if res.Error != nil {
		return errors.Wrap(res.Error, "update password")
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(gorm.ErrRecordNotFound, "update password")
	}
	return nil
}

func (r *GormRepo) SetOwnerState(ctx context.Context, id uuid.UUID, state bool) error {
	res := r.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("state", state)
	if res.Error != nil {
		return errors.Wrap(res.Error, "set owner state")
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(gorm.ErrRecordNotFound, "set owner state")
	}
	return nil
}

// DeleteUser removes the user together with its cart-reference list.
// Carts themselves are kept as order history.
func (r *GormRepo) DeleteUser(ctx context.Context, id uuid.UUID) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.UserCart{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return errors.Wrapf(err, "delete user %s", id)
}

// AddCartRef appends cartID to the user's reference list; a second call is a no-op.
func (r *GormRepo) AddCartRef(ctx context.Context, userID, cartID uuid.UUID) error {
	ref := models.UserCart{UserID: userID, CartID: cartID}
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&ref).Error
	return errors.Wrap(err, "add cart ref")
}

func (r *GormRepo) ListUsersByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	var users []models.User
	if err := r.DB.WithContext(ctx).Where("role = ?", role).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "list users by role")
	}
	return users, nil
}
