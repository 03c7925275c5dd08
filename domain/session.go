package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionRequest asks another user for a tutoring session.
type SessionRequest struct {
	ID         uuid.UUID
	FromUserID string
	ToUserID   string
	Date       time.Time
	TimeSlot   string
	Message    string
	CreatedAt  *time.Time
}
