// bookmark_service.go
//
// A bookmarking data service with token authentication
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of jam-build-bookmarks.
// jam-build-bookmarks is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// jam-build-bookmarks is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with jam-build-bookmarks.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"github.com/localnerve/jam-build-bookmarks/internal/models"
	"github.com/localnerve/jam-build-bookmarks/internal/types"
	"github.com/localnerve/jam-build-bookmarks/internal/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// withOwnerAndLikes preloads the owner projection and the likes of bookmarks
func withOwnerAndLikes(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "username", "full_name")
		}).
		Preload("Likes", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at, user_id")
		})
}

// ListBookmarks returns every bookmark
func ListBookmarks(db *gorm.DB) ([]models.BookmarkView, error) {
	var bookmarks []models.Bookmark
	if err := withOwnerAndLikes(db).Order("date, id").Find(&bookmarks).Error; err != nil {
		return nil, err
	}
	return models.NewBookmarkViews(bookmarks), nil
}

// GetBookmark returns one bookmark
func GetBookmark(db *gorm.DB, id string) (*models.BookmarkView, error) {
	var bookmark models.Bookmark
	if err := withOwnerAndLikes(db).Where("id = ?", id).First(&bookmark).Error; err != nil {
		return nil, notFound(err)
	}
	view := models.NewBookmarkView(&bookmark)
	return &view, nil
}

// CreateBookmark validates and stores a bookmark owned by ownerID
func CreateBookmark(db *gorm.DB, ownerID string, in models.BookmarkInput) (*models.BookmarkView, error) {
	in.User = ownerID
	in.Trim()

	fields := validate.Struct(in, models.BookmarkMessages)
	if in.User != "" {
		exists, err := userExists(db, in.User)
		if err != nil {
			return nil, err
		}
		if !exists {
			if fields == nil {
				fields = validation.FieldErrors{}
			}
			fields.Add("user", validation.Message(models.BookmarkMessages, "user", "exists", "", in.User))
		}
	}
	if fields != nil {
		return nil, types.NewValidationError(fields)
	}

	bookmark := models.NewBookmark(in)
	if err := db.Omit(clause.Associations).Create(&bookmark).Error; err != nil {
		return nil, err
	}

	return GetBookmark(db, bookmark.ID)
}

// DeleteBookmark removes a bookmark and its likes when the caller owns it
func DeleteBookmark(db *gorm.DB, claims *Claims, id string) error {
	var bookmark models.Bookmark
	if err := db.Select("id", "user_id").Where("id = ?", id).First(&bookmark).Error; err != nil {
		return notFound(err)
	}

	if err := AuthorizeOwner(claims, bookmark.UserID); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bookmark_id = ?", bookmark.ID).Delete(&models.BookmarkLike{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", bookmark.ID).Delete(&models.Bookmark{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return types.NewNotFound()
		}
		return nil
	})
}

// ToggleLike adds the caller's like to a bookmark, or removes it when already present.
// The like row and the counter change in one transaction and the counter is only ever
// moved relative to its stored value, so concurrent toggles cannot lose updates.
func ToggleLike(db *gorm.DB, claims *Claims, id string) (*models.BookmarkView, error) {
	if claims == nil {
		return nil, types.NewInvalidToken()
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		// Locks are taken user first, then bookmark, the same order DeleteUser uses.
		// A token can outlive its user.
		exists, err := lockRow(tx, &models.User{}, claims.UserID, "username")
		if err != nil {
			return err
		}
		if !exists {
			return types.NewInvalidToken()
		}

		exists, err = lockRow(tx, &models.Bookmark{}, id, "likes_count")
		if err != nil {
			return err
		}
		if !exists {
			return types.NewNotFound()
		}

		removed := tx.Where("bookmark_id = ? AND user_id = ?", id, claims.UserID).
			Delete(&models.BookmarkLike{})
		if removed.Error != nil {
			return removed.Error
		}

		delta := -1
		if removed.RowsAffected == 0 {
			added := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&models.BookmarkLike{BookmarkID: id, UserID: claims.UserID})
			if added.Error != nil {
				return added.Error
			}
			if added.RowsAffected == 0 {
				return nil
			}
			delta = 1
		}

		return tx.Model(&models.Bookmark{}).
			Where("id = ?", id).
			UpdateColumn("likes_count", gorm.Expr("likes_count + ?", delta)).Error
	})
	if err != nil {
		return nil, err
	}

	return GetBookmark(db, id)
}

func userExists(db *gorm.DB, id string) (bool, error) {
	var count int64
	if err := db.Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
