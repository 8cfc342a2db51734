package model

import (
	"time"

	"github.com/google/uuid"
)

// Item is the domain model for a todo entry.
// Timestamps are Unix milliseconds so the persisted form stays numeric.
type Item struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

// NewID returns a time-ordered UUIDv7. The google/uuid generator keeps a
// monotonic sequence inside a millisecond, so ids never repeat in-process.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// v7 only fails when the random source does; fall back to v4,
		// which panics on the same failure.
		return uuid.NewString()
	}
	return id.String()
}

// Millis converts t to the stored timestamp representation.
func Millis(t time.Time) int64 { return t.UnixMilli() }
