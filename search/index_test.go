package search

import (
	"context"
	"log/slog"
	"testing"

	"github.com/blugelabs/bluge"
	"github.com/stretchr/testify/require"

	"skillswap/domain"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	writer, err := bluge.OpenWriter(bluge.InMemoryOnlyConfig())
	require.NoError(t, err)
	t.Cleanup(func() { writer.Close() })
	return NewIndex(writer, slog.Default())
}

func Test_Search_Matches_Skills_And_Bio(t *testing.T) {
	req := require.New(t)
	index := newTestIndex(t)

	req.NoError(index.IndexProfile(domain.Profile{
		UserID: "u1",
		Name:   "Sarah Chen",
		Bio:    "Guitarist for ten years",
		Skills: []string{"Guitar", "Music Theory"},
	}))
	req.NoError(index.IndexProfile(domain.Profile{
		UserID:      "u2",
		Name:        "Mike Rodriguez",
		Bio:         "Native speaker",
		Skills:      []string{"Spanish"},
		WantToLearn: []string{"Guitar"},
	}))

	ids, err := index.Search(context.Background(), "guitar", 10)
	req.NoError(err)
	req.ElementsMatch([]string{"u1", "u2"}, ids)

	ids, err = index.Search(context.Background(), "spanish", 10)
	req.NoError(err)
	req.Equal([]string{"u2"}, ids)

	ids, err = index.Search(context.Background(), "violin", 10)
	req.NoError(err)
	req.Empty(ids)
}

func Test_Search_Empty_Query_Matches_All(t *testing.T) {
	req := require.New(t)
	index := newTestIndex(t)

	req.NoError(index.IndexProfile(domain.Profile{UserID: "u1", Name: "Sarah"}))
	req.NoError(index.IndexProfile(domain.Profile{UserID: "u2", Name: "Mike"}))

	ids, err := index.Search(context.Background(), "   ", 10)
	req.NoError(err)
	req.ElementsMatch([]string{"u1", "u2"}, ids)
}

func Test_IndexProfile_Replaces_Previous_Entry(t *testing.T) {
	req := require.New(t)
	index := newTestIndex(t)

	req.NoError(index.IndexProfile(domain.Profile{UserID: "u1", Skills: []string{"Guitar"}}))
	req.NoError(index.IndexProfile(domain.Profile{UserID: "u1", Skills: []string{"Baking"}}))

	ids, err := index.Search(context.Background(), "guitar", 10)
	req.NoError(err)
	req.Empty(ids)

	ids, err = index.Search(context.Background(), "baking", 10)
	req.NoError(err)
	req.Equal([]string{"u1"}, ids)
}
