package services

import (
	"log/slog"
	"testing"

	"github.com/blugelabs/bluge"
	"github.com/stretchr/testify/require"

	"skillswap/blob"
	"skillswap/docstore"
	"skillswap/domain"
	"skillswap/errors"
	"skillswap/search"
)

// pngHeader is enough for content sniffing to say image/png.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func newProfileService(t *testing.T, env *testEnv) *ProfileService {
	t.Helper()
	blobs, err := blob.NewStore(t.TempDir(), "http://localhost:8080/blobs", slog.Default())
	require.NoError(t, err)

	writer, err := bluge.OpenWriter(bluge.InMemoryOnlyConfig())
	require.NoError(t, err)
	t.Cleanup(func() { writer.Close() })

	return NewProfileService(env.store, blobs, search.NewIndex(writer, slog.Default()), slog.Default())
}

func seedUser(t *testing.T, env *testEnv, skills []string) string {
	t.Helper()
	id, err := env.store.Add(env.ctx, CollUsers, docstore.Fields{
		"name":   "Sarah",
		"email":  "sarah@skillswap.dev",
		"skills": skills,
	})
	require.NoError(t, err)
	return id
}

func Test_Update_Validates_Edit(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	svc := newProfileService(t, env)
	id := seedUser(t, env, nil)

	err := svc.Update(env.ctx, id, ProfileEdit{
		Name:         "Sarah",
		Email:        "sarah@skillswap.dev",
		Bio:          "too short",
		Location:     "Lyon",
		Availability: "Weekends",
		Level:        "Expert",
	})
	req.ErrorIs(err, errors.ErrValidation)

	err = svc.Update(env.ctx, id, ProfileEdit{
		Name:         "Sarah Chen",
		Email:        "sarah@skillswap.dev",
		Bio:          "Guitarist for ten years, happy to trade lessons.",
		Location:     "Lyon",
		Availability: "Weekends",
		Level:        "Expert",
		Kind:         domain.KindTutor,
	})
	req.NoError(err)

	profile, err := svc.Get(id)
	req.NoError(err)
	req.Equal("Sarah Chen", profile.Name)
	req.Equal(domain.KindTutor, profile.Kind)
}

func Test_AddSkill_Rejects_Duplicates_And_Caps(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	svc := newProfileService(t, env)
	id := seedUser(t, env, nil)

	req.NoError(svc.AddSkill(env.ctx, id, "  Guitar  "))
	err := svc.AddSkill(env.ctx, id, "Guitar")
	req.ErrorIs(err, errors.ErrValidation)

	err = svc.AddSkill(env.ctx, id, "   ")
	req.ErrorIs(err, errors.ErrValidation)

	for i := 1; i < domain.MaxSkills; i++ {
		req.NoError(svc.AddSkill(env.ctx, id, string(rune('A'+i))))
	}
	err = svc.AddSkill(env.ctx, id, "One too many")
	req.ErrorIs(err, errors.ErrValidation)

	profile, err := svc.Get(id)
	req.NoError(err)
	req.Len(profile.Skills, domain.MaxSkills)
	req.Equal("Guitar", profile.Skills[0])
}

func Test_RemoveSkill_Keeps_At_Least_One(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	svc := newProfileService(t, env)
	id := seedUser(t, env, []string{"Guitar", "Spanish"})

	req.NoError(svc.RemoveSkill(env.ctx, id, "Spanish"))

	err := svc.RemoveSkill(env.ctx, id, "Guitar")
	req.ErrorIs(err, errors.ErrValidation)

	err = svc.RemoveSkill(env.ctx, id, "Never listed")
	req.ErrorIs(err, errors.ErrValidation)

	profile, err := svc.Get(id)
	req.NoError(err)
	req.Equal([]string{"Guitar"}, profile.Skills)
}

func Test_SetWantToLearn_Trims_And_Dedupes(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	svc := newProfileService(t, env)
	id := seedUser(t, env, []string{"Guitar"})

	req.NoError(svc.SetWantToLearn(env.ctx, id, []string{" Photography ", "", "Photography", "Chess"}))

	profile, err := svc.Get(id)
	req.NoError(err)
	req.Equal([]string{"Photography", "Chess"}, profile.WantToLearn)
}

func Test_UploadPicture_Writes_URL_Back(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	svc := newProfileService(t, env)
	id := seedUser(t, env, nil)

	url, err := svc.UploadPicture(env.ctx, id, pngHeader)
	req.NoError(err)
	req.Contains(url, "profilePictures/"+id)

	profile, err := svc.Get(id)
	req.NoError(err)
	req.Equal(url, profile.ProfilePicURL)
}

func Test_UploadPicture_Rejects_Non_Image(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	svc := newProfileService(t, env)
	id := seedUser(t, env, nil)

	_, err := svc.UploadPicture(env.ctx, id, []byte("plain text, not an image"))
	req.ErrorIs(err, errors.ErrValidation)
}
