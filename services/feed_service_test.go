package services

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"skillswap/channel"
	"skillswap/errors"
	"skillswap/moderation"
)

func newFeedService(t *testing.T, env *testEnv) *FeedService {
	t.Helper()
	moderator, err := moderation.NewModerator([]string{"scam"}, '*')
	require.NoError(t, err)
	feed := channel.NewFeed(env.store, slog.Default())
	return NewFeedService(feed, &moderator, env.session, slog.Default())
}

func Test_Feed_Create_Requires_SignIn(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	svc := newFeedService(t, env)

	err := svc.Create(env.ctx, "Guitar", "Photography", "trade lessons with me")
	req.ErrorIs(err, errors.ErrAuth)

	posts, err := svc.Posts()
	req.NoError(err)
	req.Empty(posts)
}

func Test_Feed_Create_Validates_Fields(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	svc := newFeedService(t, env)
	signIn(t, env, "u1", "sarah")

	err := svc.Create(env.ctx, "Guitar", "  ", "trade lessons with me")
	req.ErrorIs(err, errors.ErrValidation)

	posts, err := svc.Posts()
	req.NoError(err)
	req.Empty(posts)
}

func Test_Feed_Create_Censors_And_Tags_Language(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	svc := newFeedService(t, env)
	signIn(t, env, "u1", "sarah")

	description := "This is absolutely not a scam, I genuinely want to trade guitar lessons for photography coaching every weekend."
	req.NoError(svc.Create(env.ctx, "Guitar", "Photography", description))

	posts, err := svc.Posts()
	req.NoError(err)
	req.Len(posts, 1)
	req.NotContains(posts[0].Description, "scam")
	req.Contains(posts[0].Description, "****")
	req.Equal("en", posts[0].Language)
	req.Equal("u1", posts[0].UserID)
	req.Equal("sarah", posts[0].UserName)
}

func Test_Feed_Posts_Newest_First(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	svc := newFeedService(t, env)
	signIn(t, env, "u1", "sarah")

	for _, offered := range []string{"Guitar", "Spanish", "Baking"} {
		req.NoError(svc.Create(env.ctx, offered, "Photography", "happy to trade weekly lessons"))
	}

	posts, err := svc.Posts()
	req.NoError(err)
	req.Len(posts, 3)
	req.Equal("Baking", posts[0].SkillOffered)
	req.Equal("Guitar", posts[2].SkillOffered)
}
