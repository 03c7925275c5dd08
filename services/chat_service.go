package services

import (
	"context"
	"fmt"
	"log/slog"

	"skillswap/auth"
	"skillswap/channel"
	"skillswap/docstore"
	"skillswap/errors"
	"skillswap/moderation"
)

// ChatService fronts the conversation channel for the authenticated user.
// Outbound text passes through the moderator before it reaches the store.
type ChatService struct {
	conversation *channel.Conversation
	moderator    *moderation.Moderator
	session      *auth.Session
	log          *slog.Logger
}

func NewChatService(conversation *channel.Conversation, moderator *moderation.Moderator,
	session *auth.Session, log *slog.Logger) *ChatService {
	return &ChatService{
		conversation: conversation,
		moderator:    moderator,
		session:      session,
		log:          log,
	}
}

// Subscribe opens the live conversation with peerID. The subscription is
// tracked on the session scope: signing out cancels it.
func (s *ChatService) Subscribe(peerID string, sink channel.MessageSink) (*docstore.Subscription, error) {
	self, ok := s.session.Current()
	if !ok {
		return nil, fmt.Errorf("%w: not signed in", errors.ErrAuth)
	}
	sub := s.conversation.Subscribe(self.ID, peerID, sink)
	s.session.Track(sub)
	return sub, nil
}

// Send delivers one message to peerID, censored.
func (s *ChatService) Send(ctx context.Context, peerID, text string) error {
	self, ok := s.session.Current()
	if !ok {
		return fmt.Errorf("%w: not signed in", errors.ErrAuth)
	}
	censored, found := s.moderator.Censor(text)
	if len(found) > 0 {
		s.log.Warn("Censored outbound message", "user", self.ID, "words", len(found))
	}
	return s.conversation.Send(ctx, self.ID, peerID, censored)
}
