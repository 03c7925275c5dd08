package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"skillswap/blob"
	"skillswap/docstore"
	"skillswap/domain"
	"skillswap/errors"
	"skillswap/search"
)

// ProfileEdit carries the editable profile fields. Validation mirrors the
// profile form rules.
type ProfileEdit struct {
	Name         string `validate:"required,min=2"`
	Email        string `validate:"required,email"`
	Bio          string `validate:"required,min=10,max=500"`
	Location     string `validate:"required,min=2"`
	Availability string `validate:"required"`
	Level        string `validate:"required"`
	// Kind is optional; once set it places the profile on the tutor or
	// learner side of the directory.
	Kind domain.ProfileKind `validate:"omitempty,oneof=tutor learner"`
}

// ProfileService owns explicit profile mutations: edits, skill lists, and
// picture upload. Every successful mutation re-indexes the profile into the
// directory.
type ProfileService struct {
	store *docstore.Store
	blobs *blob.Store
	index *search.Index
	log   *slog.Logger
}

func NewProfileService(store *docstore.Store, blobs *blob.Store,
	index *search.Index, log *slog.Logger) *ProfileService {
	return &ProfileService{store: store, blobs: blobs, index: index, log: log}
}

func (s *ProfileService) Get(userID string) (domain.Profile, error) {
	doc, err := s.store.Get(CollUsers, userID)
	if err != nil {
		return domain.Profile{}, err
	}
	return toProfile(doc), nil
}

// Update merges the edited fields into the user document.
func (s *ProfileService) Update(ctx context.Context, userID string, edit ProfileEdit) error {
	if err := validate.Struct(edit); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrValidation, err)
	}
	fields := docstore.Fields{
		"name":         edit.Name,
		"email":        edit.Email,
		"bio":          edit.Bio,
		"location":     edit.Location,
		"availability": edit.Availability,
		"level":        edit.Level,
	}
	if edit.Kind != "" {
		fields["kind"] = string(edit.Kind)
	}
	err := s.store.Update(ctx, CollUsers, userID, fields)
	if err != nil {
		return err
	}
	return s.reindex(userID)
}

// AddSkill appends a skill. Duplicates are rejected, the list is capped.
func (s *ProfileService) AddSkill(ctx context.Context, userID, skill string) error {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return fmt.Errorf("%w: empty skill", errors.ErrValidation)
	}
	profile, err := s.Get(userID)
	if err != nil {
		return err
	}
	if lo.Contains(profile.Skills, skill) {
		return fmt.Errorf("%w: skill %q already listed", errors.ErrValidation, skill)
	}
	if len(profile.Skills) >= domain.MaxSkills {
		return fmt.Errorf("%w: maximum of %d skills reached", errors.ErrValidation, domain.MaxSkills)
	}
	err = s.store.Update(ctx, CollUsers, userID, docstore.Fields{
		"skills": append(profile.Skills, skill),
	})
	if err != nil {
		return err
	}
	return s.reindex(userID)
}

// RemoveSkill drops a skill, keeping at least one on the profile.
func (s *ProfileService) RemoveSkill(ctx context.Context, userID, skill string) error {
	profile, err := s.Get(userID)
	if err != nil {
		return err
	}
	if len(profile.Skills) <= domain.MinSkills {
		return fmt.Errorf("%w: at least %d skill required", errors.ErrValidation, domain.MinSkills)
	}
	remaining := lo.Filter(profile.Skills, func(s string, _ int) bool { return s != skill })
	if len(remaining) == len(profile.Skills) {
		return fmt.Errorf("%w: skill %q not listed", errors.ErrValidation, skill)
	}
	err = s.store.Update(ctx, CollUsers, userID, docstore.Fields{"skills": remaining})
	if err != nil {
		return err
	}
	return s.reindex(userID)
}

// SetWantToLearn replaces the want-to-learn list.
func (s *ProfileService) SetWantToLearn(ctx context.Context, userID string, wanted []string) error {
	cleaned := lo.FilterMap(wanted, func(w string, _ int) (string, bool) {
		w = strings.TrimSpace(w)
		return w, w != ""
	})
	err := s.store.Update(ctx, CollUsers, userID, docstore.Fields{"wantToLearn": lo.Uniq(cleaned)})
	if err != nil {
		return err
	}
	return s.reindex(userID)
}

// UploadPicture stores the image and writes its public URL back onto the
// user document. Non-image content is rejected by the blob store.
func (s *ProfileService) UploadPicture(ctx context.Context, userID string, data []byte) (string, error) {
	handle, err := s.blobs.Upload("profilePictures/"+userID, data)
	if err != nil {
		return "", err
	}
	url := s.blobs.PublicURL(handle)
	err = s.store.Update(ctx, CollUsers, userID, docstore.Fields{"profilePicUrl": url})
	if err != nil {
		return "", err
	}
	return url, nil
}

func (s *ProfileService) reindex(userID string) error {
	profile, err := s.Get(userID)
	if err != nil {
		return err
	}
	if err := s.index.IndexProfile(profile); err != nil {
		// The directory tolerates a stale entry; the edit itself committed.
		s.log.Warn("Profile re-index failed", "user", userID, "error", err)
	}
	return nil
}

func toProfile(doc docstore.Document) domain.Profile {
	profile := domain.Profile{
		UserID:        doc.ID,
		Name:          doc.String("name"),
		Email:         doc.String("email"),
		Bio:           doc.String("bio"),
		Location:      doc.String("location"),
		Availability:  doc.String("availability"),
		Level:         doc.String("level"),
		Kind:          domain.ProfileKind(doc.String("kind")),
		Skills:        doc.Strings("skills"),
		WantToLearn:   doc.Strings("wantToLearn"),
		Rating:        doc.Float("rating"),
		Sessions:      int(doc.Float("sessions")),
		ProfilePicURL: doc.String("profilePicUrl"),
	}
	if joined, ok := doc.Time("joinedAt"); ok {
		profile.JoinedAt = joined
	}
	return profile
}
