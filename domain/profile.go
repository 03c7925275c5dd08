package domain

import "time"

type ProfileKind string

const (
	KindTutor   ProfileKind = "tutor"
	KindLearner ProfileKind = "learner"
)

const (
	// MaxSkills caps the skill list per profile.
	MaxSkills = 10
	// MinSkills is the floor kept when removing skills.
	MinSkills = 1
)

// Profile is the mutable public face of a user. Created on first
// authentication, mutated only through explicit edits, never deleted.
type Profile struct {
	UserID        string
	Name          string
	Email         string
	Bio           string
	Location      string
	Availability  string
	Level         string
	Kind          ProfileKind
	Skills        []string
	WantToLearn   []string
	Rating        float64
	Sessions      int
	ProfilePicURL string
	JoinedAt      time.Time
}
