package services

import (
	"context"
	"log/slog"

	"github.com/samber/lo"

	"skillswap/docstore"
	"skillswap/domain"
	"skillswap/search"
)

// Filters narrows a directory search by exact facets. Empty values match
// everything.
type Filters struct {
	Availability string
	Level        string
	Kind         domain.ProfileKind
}

// DirectoryService answers "find me tutors/learners" queries: free text
// over the Bluge index, then exact facet filtering on the loaded profiles.
type DirectoryService struct {
	store *docstore.Store
	index *search.Index
	log   *slog.Logger
}

func NewDirectoryService(store *docstore.Store, index *search.Index, log *slog.Logger) *DirectoryService {
	return &DirectoryService{store: store, index: index, log: log}
}

func (s *DirectoryService) Search(ctx context.Context, terms string, filters Filters, limit int) ([]domain.Profile, error) {
	ids, err := s.index.Search(ctx, terms, limit)
	if err != nil {
		return nil, err
	}

	profiles := make([]domain.Profile, 0, len(ids))
	for _, id := range ids {
		doc, err := s.store.Get(CollUsers, id)
		if err != nil {
			// Indexed but gone from the store; skip rather than fail the search.
			s.log.Debug("Stale directory entry", "user", id)
			continue
		}
		profiles = append(profiles, toProfile(doc))
	}

	return lo.Filter(profiles, func(p domain.Profile, _ int) bool {
		if filters.Availability != "" && p.Availability != filters.Availability {
			return false
		}
		if filters.Level != "" && p.Level != filters.Level {
			return false
		}
		if filters.Kind != "" && p.Kind != filters.Kind {
			return false
		}
		return true
	}), nil
}
