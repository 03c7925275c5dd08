// Package channel derives live, ordered message and post sequences from
// document store subscriptions. It owns the filtering and ordering rules;
// persistence and change notification stay in docstore.
package channel

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"

	"skillswap/docstore"
	"skillswap/domain"
	"skillswap/errors"
)

// CollMessages is the message collection name.
const CollMessages = "messages"

// MessageSink receives the conversation snapshot: only messages of the
// exact participant pair, ascending by timestamp.
type MessageSink func(messages []domain.Message)

// Conversation produces live two-party message sequences.
type Conversation struct {
	store *docstore.Store
	log   *slog.Logger
}

func NewConversation(store *docstore.Store, log *slog.Logger) *Conversation {
	return &Conversation{store: store, log: log}
}

// Subscribe registers interest in the conversation between selfID and
// peerID. The underlying query only narrows to "selfID is a participant";
// the exact pair is filtered here. Two stages on purpose: a broad, cheap
// store-side predicate followed by an exact client-side one.
func (c *Conversation) Subscribe(selfID, peerID string, sink MessageSink) *docstore.Subscription {
	pair := domain.NewPair(selfID, peerID)
	q := docstore.Query{
		Collection: CollMessages,
		Predicates: []docstore.Predicate{docstore.ArrayContains("participants", selfID)},
		Order:      docstore.Ascending,
	}
	return c.store.Subscribe(q, func(snapshot docstore.Snapshot) {
		messages := make([]domain.Message, 0, len(snapshot))
		for _, doc := range snapshot {
			msg := toMessage(doc)
			if msg.Pair() == pair {
				messages = append(messages, msg)
			}
		}
		orderMessages(messages)
		sink(messages)
	})
}

// Send creates exactly one immutable message record. The text is trimmed
// before storage; an empty result is rejected before anything is written.
// No optimistic echo: the sender sees the message once the snapshot after
// the commit arrives.
func (c *Conversation) Send(ctx context.Context, selfID, peerID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("%w: empty message text", errors.ErrValidation)
	}
	_, err := c.store.Add(ctx, CollMessages, docstore.Fields{
		"senderId":     selfID,
		"receiverId":   peerID,
		"text":         text,
		"participants": []string{selfID, peerID},
		"timestamp":    docstore.ServerTimestamp,
	})
	if err != nil {
		c.log.Warn("Message delivery failed", "peer", peerID, "error", err)
		return err
	}
	return nil
}

// orderMessages sorts ascending by timestamp. A nil timestamp means the
// store has not confirmed the server time yet; such messages count as "now"
// and sort after every committed one, in stable arrival order, until a
// later snapshot reorders them definitively.
func orderMessages(messages []domain.Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		ti, tj := messages[i].Timestamp, messages[j].Timestamp
		switch {
		case ti == nil:
			return false
		case tj == nil:
			return true
		default:
			return ti.Before(*tj)
		}
	})
}

func toMessage(doc docstore.Document) domain.Message {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		id = uuid.Nil
	}
	msg := domain.Message{
		ID:         id,
		SenderID:   doc.String("senderId"),
		ReceiverID: doc.String("receiverId"),
		Text:       doc.String("text"),
	}
	if ts, ok := doc.Time("timestamp"); ok {
		msg.Timestamp = &ts
	}
	return msg
}
