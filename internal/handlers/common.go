// common.go
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
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/localnerve/jam-build-bookmarks/internal/types"
	"github.com/localnerve/jam-build-bookmarks/internal/validation"
	"gorm.io/gorm"
)

// MessageMalformedBody is returned when the request body is not valid JSON
const MessageMalformedBody = "Malformed JSON body"

// parseID reads the :id route parameter, which must be a UUID
func parseID(c *fiber.Ctx) (string, error) {
	raw := c.Params("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", types.NewCastError(raw, "id")
	}
	return id.String(), nil
}

// parseBody decodes the JSON body into out. An empty body leaves out untouched,
// so missing fields are reported by validation.
func parseBody(c *fiber.Ctx, out interface{}) error {
	body := c.Body()
	if len(body) == 0 {
		return nil
	}
	if err := c.App().Config().JSONDecoder(body, out); err != nil {
		var dateErr *types.DateError
		if errors.As(err, &dateErr) {
			if fields := dateFieldErrors(body, out); len(fields) > 0 {
				return types.NewValidationError(fields)
			}
		}
		return types.NewBadRequest(MessageMalformedBody)
	}
	return nil
}

var flexTimeType = reflect.TypeOf(types.FlexTime{})

// dateFieldErrors finds which date fields of out could not be read from body
func dateFieldErrors(body []byte, out interface{}) validation.FieldErrors {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil
	}

	t := reflect.TypeOf(out)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	fields := validation.FieldErrors{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Type != flexTimeType {
			continue
		}
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		value, ok := raw[name]
		if !ok {
			continue
		}
		var ft types.FlexTime
		if err := ft.UnmarshalJSON(value); err != nil {
			fields.Add(name, fmt.Sprintf("Cast to date failed for value %s at path %q", value, name))
		}
	}
	return fields
}

// session binds the handler's database to the request lifetime
func session(db *gorm.DB, c *fiber.Ctx) *gorm.DB {
	return db.WithContext(c.UserContext())
}
