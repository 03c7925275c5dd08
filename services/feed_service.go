package services

import (
	"context"
	"log/slog"

	"skillswap/auth"
	"skillswap/channel"
	"skillswap/docstore"
	"skillswap/domain"
	"skillswap/moderation"
)

// FeedService fronts the global post feed. Descriptions are censored and
// tagged with their detected language before storage.
type FeedService struct {
	feed      *channel.Feed
	moderator *moderation.Moderator
	session   *auth.Session
	log       *slog.Logger
}

func NewFeedService(feed *channel.Feed, moderator *moderation.Moderator,
	session *auth.Session, log *slog.Logger) *FeedService {
	return &FeedService{feed: feed, moderator: moderator, session: session, log: log}
}

// Subscribe opens the live feed. The feed is global and does not depend on
// the session identity, so it is not tied to the session scope.
func (s *FeedService) Subscribe(sink channel.PostSink) *docstore.Subscription {
	return s.feed.Subscribe(sink)
}

// Create publishes one post authored by the current user. An anonymous
// session yields ErrAuth; empty fields yield ErrValidation. Both checks
// happen before anything is written.
func (s *FeedService) Create(ctx context.Context, skillOffered, skillWanted, description string) error {
	author, _ := s.session.Current() // zero identity is rejected by the channel

	censored, found := s.moderator.Censor(description)
	if len(found) > 0 {
		s.log.Warn("Censored post description", "user", author.ID, "words", len(found))
	}

	return s.feed.Create(ctx, author, channel.Draft{
		SkillOffered: skillOffered,
		SkillWanted:  skillWanted,
		Description:  censored,
		Language:     moderation.DetectLanguage(description),
	})
}

// Posts reads the feed once, newest first, without subscribing.
func (s *FeedService) Posts() ([]domain.Post, error) {
	return s.feed.Posts()
}
