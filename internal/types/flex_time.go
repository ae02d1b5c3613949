// flex_time.go
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

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// maxEpochMillis is the largest distance from the epoch a date may have, 100,000,000 days
const maxEpochMillis = 8.64e15

// FlexTime is a time that can be unmarshaled from an RFC 3339 string or from epoch milliseconds.
// A JSON null or empty string leaves it unset.
type FlexTime struct {
	time.Time
	Set bool
}

// DateError reports a value that is neither a date string nor epoch milliseconds.
// Value is the raw JSON.
type DateError struct {
	Value string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("FlexTime: invalid date %s", e.Value)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	// Epoch milliseconds, a fraction is truncated
	var ms float64
	if err := json.Unmarshal(data, &ms); err == nil {
		if math.IsInf(ms, 0) || math.Abs(ms) > maxEpochMillis {
			return &DateError{Value: string(data)}
		}
		f.Time = time.UnixMilli(int64(ms)).UTC()
		f.Set = true
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &DateError{Value: string(data)}
	}
	if s == "" {
		return nil
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		// Accept plain dates as well
		t, err = time.Parse(time.DateOnly, s)
		if err != nil {
			return &DateError{Value: string(data)}
		}
	}
	f.Time = t.UTC()
	f.Set = true
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (f FlexTime) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.Time)
}

// OrNow returns the stored time, or now when nothing was supplied.
func (f FlexTime) OrNow() time.Time {
	if !f.Set {
		return time.Now().UTC()
	}
	return f.Time
}
