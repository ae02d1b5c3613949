package services

import (
	"fmt"

	"github.com/localnerve/jam-build-bookmarks/internal/models"
	"github.com/localnerve/jam-build-bookmarks/internal/types"
	"github.com/localnerve/jam-build-bookmarks/internal/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// withOwnedBookmarks preloads the reduced bookmark projection embedded in users
func withOwnedBookmarks(db *gorm.DB) *gorm.DB {
	return db.Preload("Bookmarks", func(tx *gorm.DB) *gorm.DB {
		return tx.Select("id", "title", "date", "likes_count", "user_id").Order("date, id")
	})
}

// ListUsers returns every user with their bookmarks
func ListUsers(db *gorm.DB) ([]models.UserView, error) {
	var users []models.User
	if err := withOwnedBookmarks(db).Order("join_date, id").Find(&users).Error; err != nil {
		return nil, err
	}
	return models.NewUserViews(users), nil
}

// GetUser returns one user with their bookmarks
func GetUser(db *gorm.DB, id string) (*models.UserView, error) {
	var user models.User
	if err := withOwnedBookmarks(db).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	view := models.NewUserView(&user)
	return &view, nil
}

// CreateUser validates, normalizes and stores a new user. Username uniqueness is left
// to the unique index so two concurrent registrations cannot both succeed.
func CreateUser(db *gorm.DB, in models.UserInput) (*models.UserView, error) {
	in.Trim()

	if fields := validate.Struct(in, models.UserMessages); fields != nil {
		return nil, types.NewValidationError(fields)
	}

	user := models.NewUser(in)

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hash

	if err := db.Omit(clause.Associations).Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, types.NewValidationError(validation.FieldErrors{
				"username": models.UserMessages["username.unique"],
			})
		}
		return nil, err
	}

	view := models.NewUserView(&user)
	return &view, nil
}

// DeleteUser removes a user when the caller is that user. The user's likes are
// withdrawn and the user's bookmarks are removed with them.
func DeleteUser(db *gorm.DB, claims *Claims, id string) error {
	var user models.User
	if err := db.Select("id").Where("id = ?", id).First(&user).Error; err != nil {
		return notFound(err)
	}

	if err := AuthorizeOwner(claims, user.ID); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		// Holding the user row keeps the user's own toggles out until the likes are gone
		exists, err := lockRow(tx, &models.User{}, user.ID, "username")
		if err != nil {
			return err
		}
		if !exists {
			return types.NewNotFound()
		}

		// Withdraw the user's likes from bookmarks they do not own
		likedIDs := tx.Model(&models.BookmarkLike{}).Select("bookmark_id").Where("user_id = ?", user.ID)
		if err := tx.Model(&models.Bookmark{}).
			Where("id IN (?)", likedIDs).
			UpdateColumn("likes_count", gorm.Expr("likes_count - 1")).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.BookmarkLike{}).Error; err != nil {
			return err
		}

		// Remove the user's bookmarks and every like on them
		ownedIDs := tx.Model(&models.Bookmark{}).Select("id").Where("user_id = ?", user.ID)
		if err := tx.Where("bookmark_id IN (?)", ownedIDs).Delete(&models.BookmarkLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Bookmark{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", user.ID).Delete(&models.User{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return types.NewNotFound()
		}
		return nil
	})
}
