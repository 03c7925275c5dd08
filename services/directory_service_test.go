package services

import (
	"log/slog"
	"testing"

	"github.com/blugelabs/bluge"
	"github.com/stretchr/testify/require"

	"skillswap/docstore"
	"skillswap/domain"
	"skillswap/search"
)

func Test_Directory_Search_Text_And_Facets(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)

	writer, err := bluge.OpenWriter(bluge.InMemoryOnlyConfig())
	req.NoError(err)
	t.Cleanup(func() { writer.Close() })
	index := search.NewIndex(writer, slog.Default())
	svc := NewDirectoryService(env.store, index, slog.Default())

	users := []struct {
		name         string
		skills       []string
		availability string
		level        string
		kind         string
	}{
		{"Sarah Chen", []string{"Guitar", "Music Theory"}, "Weekends", "Expert", "tutor"},
		{"Mike Rodriguez", []string{"Spanish"}, "Evenings", "Intermediate", "tutor"},
		{"Emily Davis", []string{"Guitar"}, "Weekends", "Beginner", "learner"},
	}
	for _, u := range users {
		id, err := env.store.Add(env.ctx, CollUsers, docstore.Fields{
			"name":         u.name,
			"skills":       u.skills,
			"availability": u.availability,
			"level":        u.level,
			"kind":         u.kind,
		})
		req.NoError(err)
		doc, err := env.store.Get(CollUsers, id)
		req.NoError(err)
		req.NoError(index.IndexProfile(toProfile(doc)))
	}

	byName := func(profiles []domain.Profile) []string {
		names := make([]string, 0, len(profiles))
		for _, p := range profiles {
			names = append(names, p.Name)
		}
		return names
	}

	profiles, err := svc.Search(env.ctx, "guitar", Filters{}, 10)
	req.NoError(err)
	req.ElementsMatch([]string{"Sarah Chen", "Emily Davis"}, byName(profiles))

	profiles, err = svc.Search(env.ctx, "guitar", Filters{Kind: domain.KindTutor}, 10)
	req.NoError(err)
	req.Equal([]string{"Sarah Chen"}, byName(profiles))

	profiles, err = svc.Search(env.ctx, "", Filters{Availability: "Evenings"}, 10)
	req.NoError(err)
	req.Equal([]string{"Mike Rodriguez"}, byName(profiles))

	profiles, err = svc.Search(env.ctx, "accordion", Filters{}, 10)
	req.NoError(err)
	req.Empty(profiles)
}

func Test_Directory_Skips_Stale_Index_Entries(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)

	writer, err := bluge.OpenWriter(bluge.InMemoryOnlyConfig())
	req.NoError(err)
	t.Cleanup(func() { writer.Close() })
	index := search.NewIndex(writer, slog.Default())
	svc := NewDirectoryService(env.store, index, slog.Default())

	// Indexed but never stored: must be skipped, not fail the search.
	req.NoError(index.IndexProfile(domain.Profile{UserID: "ghost", Name: "Ghost"}))

	profiles, err := svc.Search(env.ctx, "ghost", Filters{}, 10)
	req.NoError(err)
	req.Empty(profiles)
}
