// bookmarks.go
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

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/jam-build-bookmarks/internal/middleware"
	"github.com/localnerve/jam-build-bookmarks/internal/models"
	"github.com/localnerve/jam-build-bookmarks/internal/services"
	"gorm.io/gorm"
)

// BookmarkHandler serves /api/bookmarks
type BookmarkHandler struct {
	DB *gorm.DB
}

// ListBookmarks handles GET /api/bookmarks
// @Summary List bookmarks
// @Description Get every bookmark with its owner and likes
// @Tags Bookmarks
// @Produce json
// @Success 200 {array} models.BookmarkView
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /bookmarks [get]
func (h *BookmarkHandler) ListBookmarks(c *fiber.Ctx) error {
	bookmarks, err := services.ListBookmarks(session(h.DB, c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(bookmarks)
}

// GetBookmark handles GET /api/bookmarks/:id
// @Summary Get a bookmark
// @Tags Bookmarks
// @Produce json
// @Param id path string true "Bookmark ID"
// @Success 200 {object} models.BookmarkView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /bookmarks/{id} [get]
func (h *BookmarkHandler) GetBookmark(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	bookmark, err := services.GetBookmark(session(h.DB, c), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(bookmark)
}

// CreateBookmark handles POST /api/bookmarks
// @Summary Create a bookmark
// @Description Create a bookmark owned by the caller
// @Tags Bookmarks
// @Accept json
// @Produce json
// @Param body body models.BookmarkInput true "Bookmark"
// @Success 201 {object} models.BookmarkView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /bookmarks [post]
func (h *BookmarkHandler) CreateBookmark(c *fiber.Ctx) error {
	claims, err := middleware.Claims(c)
	if err != nil {
		return err
	}

	var input models.BookmarkInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	bookmark, err := services.CreateBookmark(session(h.DB, c), claims.UserID, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(bookmark)
}

// DeleteBookmark handles DELETE /api/bookmarks/:id
// @Summary Delete a bookmark
// @Description Only the owner may delete a bookmark
// @Tags Bookmarks
// @Param id path string true "Bookmark ID"
// @Success 204
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /bookmarks/{id} [delete]
func (h *BookmarkHandler) DeleteBookmark(c *fiber.Ctx) error {
	claims, err := middleware.Claims(c)
	if err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := services.DeleteBookmark(session(h.DB, c), claims, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleLike handles PUT /api/bookmarks/:id/toggleLike
// @Summary Like or unlike a bookmark
// @Description Adds the caller's like, or removes it when already present
// @Tags Bookmarks
// @Produce json
// @Param id path string true "Bookmark ID"
// @Success 200 {object} models.BookmarkView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /bookmarks/{id}/toggleLike [put]
func (h *BookmarkHandler) ToggleLike(c *fiber.Ctx) error {
	claims, err := middleware.Claims(c)
	if err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return err
	}

	bookmark, err := services.ToggleLike(session(h.DB, c), claims, id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(bookmark)
}
