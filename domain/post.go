package domain

import (
	"time"

	"github.com/google/uuid"
)

// Post is an immutable skill-swap offer on the global feed.
// UserName is a snapshot of the author's display name at creation time and
// is never updated afterwards.
type Post struct {
	ID           uuid.UUID
	SkillOffered string
	SkillWanted  string
	Description  string
	UserID       string
	UserName     string
	// Language is the detected ISO-639-1 code of the description, "" when
	// detection was inconclusive.
	Language  string
	CreatedAt *time.Time
}
