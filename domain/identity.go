package domain

import "time"

// Identity is the resolved authenticated actor, as persisted across reloads.
type Identity struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	JoinedAt time.Time `json:"joinedAt"`
}

func (i Identity) IsZero() bool {
	return i.ID == ""
}
