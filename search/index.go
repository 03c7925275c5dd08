// Package search maintains the tutor/learner directory index. Full-text
// matching runs on Bluge; exact facet filters stay with the caller.
package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/blugelabs/bluge"

	"skillswap/domain"
)

type Index struct {
	writer *bluge.Writer
	log    *slog.Logger
}

func NewIndex(writer *bluge.Writer, log *slog.Logger) *Index {
	return &Index{writer: writer, log: log}
}

// IndexProfile inserts or replaces one profile document. Called on every
// profile edit; the directory tolerates a stale entry until then.
func (i *Index) IndexProfile(p domain.Profile) error {
	doc := bluge.NewDocument(p.UserID).
		AddField(bluge.NewTextField("name", p.Name).StoreValue()).
		AddField(bluge.NewTextField("bio", p.Bio)).
		AddField(bluge.NewTextField("skills", strings.Join(p.Skills, " "))).
		AddField(bluge.NewTextField("wantToLearn", strings.Join(p.WantToLearn, " "))).
		AddField(bluge.NewKeywordField("kind", string(p.Kind)))

	return i.writer.Update(doc.ID(), doc)
}

// Search returns the user IDs matching the free-text query, best first.
// An empty query matches the whole directory.
func (i *Index) Search(ctx context.Context, terms string, limit int) ([]string, error) {
	reader, err := i.writer.Reader()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := reader.Close(); err != nil {
			i.log.Warn("Closing index reader failed", "error", err)
		}
	}()

	var query bluge.Query
	terms = strings.TrimSpace(terms)
	if terms == "" {
		query = bluge.NewMatchAllQuery()
	} else {
		boolean := bluge.NewBooleanQuery()
		for _, field := range []string{"name", "bio", "skills", "wantToLearn"} {
			boolean.AddShould(bluge.NewMatchQuery(terms).SetField(field))
		}
		query = boolean
	}

	request := bluge.NewTopNSearch(limit, query)
	iterator, err := reader.Search(ctx, request)
	if err != nil {
		return nil, err
	}

	var ids []string
	match, err := iterator.Next()
	for err == nil && match != nil {
		visitErr := match.VisitStoredFields(func(field string, value []byte) bool {
			if field == "_id" {
				ids = append(ids, string(value))
			}
			return true
		})
		if visitErr != nil {
			return nil, visitErr
		}
		match, err = iterator.Next()
	}
	if err != nil {
		return nil, err
	}
	return ids, nil
}
