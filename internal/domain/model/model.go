// Package model contains the game's entities: wrestlers, championships,
// events, promotions, settings and the scalar game state.
//
// Every entity is built with defaults for the fields a caller leaves out.
// Decoding a partial JSON document fills the omitted fields at every level
// of nesting, so Decode(Encode(x)) reproduces x exactly. Writes go through
// named business methods or a typed patch; there are no field setters.
package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okian/ringside/internal/domain/calendar"
)

// unset marks numeric defaults that depend on a sibling field and are
// resolved after decoding (ticket availability, venue expense).
const unset = -1

func newID() string {
	return uuid.NewString()
}

// decode unmarshals data over dst, which already holds the defaults.
func decode(data []byte, dst any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}

// clone deep-copies an entity through its JSON form.
func clone[T any](src *T) *T {
	if src == nil {
		return nil
	}
	b, err := json.Marshal(src)
	if err != nil {
		panic(fmt.Sprintf("model: clone %T: %v", src, err))
	}
	dst := new(T)
	if err := json.Unmarshal(b, dst); err != nil {
		panic(fmt.Sprintf("model: clone %T: %v", src, err))
	}
	return dst
}

func timestamp(now time.Time) string {
	return calendar.Timestamp(now)
}

func strPtr(s string) *string {
	return &s
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
