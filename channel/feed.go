package channel

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"skillswap/docstore"
	"skillswap/domain"
	"skillswap/errors"
)

// CollPosts is the post collection name.
const CollPosts = "posts"

type PostSink func(posts []domain.Post)

// Feed produces the live, globally ordered post sequence, newest first.
// The feed is append-only from the client's perspective.
type Feed struct {
	store *docstore.Store
	log   *slog.Logger
}

func NewFeed(store *docstore.Store, log *slog.Logger) *Feed {
	return &Feed{store: store, log: log}
}

// Subscribe registers interest in all posts, unfiltered by user.
func (f *Feed) Subscribe(sink PostSink) *docstore.Subscription {
	q := docstore.Query{Collection: CollPosts, Order: docstore.Descending}
	return f.store.Subscribe(q, func(snapshot docstore.Snapshot) {
		posts := make([]domain.Post, 0, len(snapshot))
		for _, doc := range snapshot {
			posts = append(posts, toPost(doc))
		}
		sink(posts)
	})
}

// Posts reads the feed once, newest first.
func (f *Feed) Posts() ([]domain.Post, error) {
	docs, err := f.store.Documents(docstore.Query{Collection: CollPosts, Order: docstore.Descending})
	if err != nil {
		return nil, err
	}
	posts := make([]domain.Post, 0, len(docs))
	for _, doc := range docs {
		posts = append(posts, toPost(doc))
	}
	return posts, nil
}

// Draft is the author-provided part of a post.
type Draft struct {
	SkillOffered string
	SkillWanted  string
	Description  string
	// Language is informational; "" when detection was inconclusive.
	Language string
}

// Create appends one immutable post authored by the given identity.
// All three text fields must be non-empty after trimming.
func (f *Feed) Create(ctx context.Context, author domain.Identity, draft Draft) error {
	if author.IsZero() {
		return fmt.Errorf("%w: no authenticated author", errors.ErrAuth)
	}
	skillOffered := strings.TrimSpace(draft.SkillOffered)
	skillWanted := strings.TrimSpace(draft.SkillWanted)
	description := strings.TrimSpace(draft.Description)
	if skillOffered == "" || skillWanted == "" || description == "" {
		return fmt.Errorf("%w: all post fields are required", errors.ErrValidation)
	}
	_, err := f.store.Add(ctx, CollPosts, docstore.Fields{
		"skillOffered": skillOffered,
		"skillWanted":  skillWanted,
		"description":  description,
		"language":     draft.Language,
		"userId":       author.ID,
		"userName":     author.Name,
		"createdAt":    docstore.ServerTimestamp,
	})
	if err != nil {
		f.log.Warn("Post delivery failed", "author", author.ID, "error", err)
	}
	return err
}

func toPost(doc docstore.Document) domain.Post {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		id = uuid.Nil
	}
	post := domain.Post{
		ID:           id,
		SkillOffered: doc.String("skillOffered"),
		SkillWanted:  doc.String("skillWanted"),
		Description:  doc.String("description"),
		Language:     doc.String("language"),
		UserID:       doc.String("userId"),
		UserName:     doc.String("userName"),
	}
	if ts, ok := doc.Time("createdAt"); ok {
		post.CreatedAt = &ts
	}
	return post
}
