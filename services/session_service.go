package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"skillswap/auth"
	"skillswap/docstore"
	"skillswap/domain"
	"skillswap/errors"
)

// CollSessionRequests is the session request collection name.
const CollSessionRequests = "sessionRequests"

// SessionRequestDraft is the form a learner fills to ask for a session.
type SessionRequestDraft struct {
	ToUserID string    `validate:"required"`
	Date     time.Time `validate:"required"`
	TimeSlot string    `validate:"required"`
	Message  string
}

// SessionService records tutoring session requests between users.
type SessionService struct {
	store   *docstore.Store
	session *auth.Session
	clock   func() time.Time
	log     *slog.Logger
}

func NewSessionService(store *docstore.Store, session *auth.Session, log *slog.Logger) *SessionService {
	return &SessionService{store: store, session: session, clock: time.Now, log: log}
}

// Request files one session request from the current user. The date must
// not be in the past.
func (s *SessionService) Request(ctx context.Context, draft SessionRequestDraft) error {
	from, ok := s.session.Current()
	if !ok {
		return fmt.Errorf("%w: not signed in", errors.ErrAuth)
	}
	if err := validate.Struct(draft); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrValidation, err)
	}
	if draft.Date.Before(s.clock().Truncate(24 * time.Hour)) {
		return fmt.Errorf("%w: session date is in the past", errors.ErrValidation)
	}

	_, err := s.store.Add(ctx, CollSessionRequests, docstore.Fields{
		"fromUserId": from.ID,
		"toUserId":   draft.ToUserID,
		"date":       draft.Date.UTC(),
		"timeSlot":   draft.TimeSlot,
		"message":    draft.Message,
		"createdAt":  docstore.ServerTimestamp,
	})
	return err
}

// Incoming lists the requests addressed to a user, oldest first.
func (s *SessionService) Incoming(userID string) ([]domain.SessionRequest, error) {
	docs, err := s.store.Documents(docstore.Query{
		Collection: CollSessionRequests,
		Predicates: []docstore.Predicate{docstore.Eq("toUserId", userID)},
		Order:      docstore.Ascending,
	})
	if err != nil {
		return nil, err
	}
	requests := make([]domain.SessionRequest, 0, len(docs))
	for _, doc := range docs {
		requests = append(requests, toSessionRequest(doc))
	}
	return requests, nil
}

// SubscribeIncoming watches requests addressed to the current user. The
// subscription lives on the session scope.
func (s *SessionService) SubscribeIncoming(sink func([]domain.SessionRequest)) (*docstore.Subscription, error) {
	self, ok := s.session.Current()
	if !ok {
		return nil, fmt.Errorf("%w: not signed in", errors.ErrAuth)
	}
	q := docstore.Query{
		Collection: CollSessionRequests,
		Predicates: []docstore.Predicate{docstore.Eq("toUserId", self.ID)},
		Order:      docstore.Ascending,
	}
	sub := s.store.Subscribe(q, func(snapshot docstore.Snapshot) {
		requests := make([]domain.SessionRequest, 0, len(snapshot))
		for _, doc := range snapshot {
			requests = append(requests, toSessionRequest(doc))
		}
		sink(requests)
	})
	s.session.Track(sub)
	return sub, nil
}

func toSessionRequest(doc docstore.Document) domain.SessionRequest {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		id = uuid.Nil
	}
	request := domain.SessionRequest{
		ID:         id,
		FromUserID: doc.String("fromUserId"),
		ToUserID:   doc.String("toUserId"),
		TimeSlot:   doc.String("timeSlot"),
		Message:    doc.String("message"),
	}
	if date, ok := doc.Time("date"); ok {
		request.Date = date
	}
	if created, ok := doc.Time("createdAt"); ok {
		request.CreatedAt = &created
	}
	return request
}
