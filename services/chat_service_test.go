package services

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"skillswap/channel"
	"skillswap/docstore"
	"skillswap/domain"
	"skillswap/errors"
	"skillswap/moderation"
)

func newChatService(t *testing.T, env *testEnv) *ChatService {
	t.Helper()
	moderator, err := moderation.NewModerator([]string{"scam", "idiot"}, '*')
	require.NoError(t, err)
	conversation := channel.NewConversation(env.store, slog.Default())
	return NewChatService(conversation, &moderator, env.session, slog.Default())
}

func Test_Chat_Requires_SignIn(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	svc := newChatService(t, env)

	err := svc.Send(env.ctx, "bob", "hello")
	req.ErrorIs(err, errors.ErrAuth)

	_, err = svc.Subscribe("bob", func([]domain.Message) {})
	req.ErrorIs(err, errors.ErrAuth)
}

func Test_Chat_Send_Censors_Text(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	svc := newChatService(t, env)
	signIn(t, env, "alice", "alice")

	req.NoError(svc.Send(env.ctx, "bob", "this deal is no scam, promise"))

	docs, err := env.store.Documents(docstore.Query{Collection: channel.CollMessages})
	req.NoError(err)
	req.Len(docs, 1)
	req.Equal("this deal is no ****, promise", docs[0].String("text"))
	req.Equal("alice", docs[0].String("senderId"))
	req.Equal("bob", docs[0].String("receiverId"))
}

func Test_Chat_Subscribe_Canceled_On_SignOut(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	svc := newChatService(t, env)
	signIn(t, env, "alice", "alice")

	snapshots := make(chan []domain.Message, 8)
	_, err := svc.Subscribe("bob", func(msgs []domain.Message) {
		snapshots <- msgs
	})
	req.NoError(err)

	select {
	case msgs := <-snapshots:
		req.Empty(msgs)
	case <-time.After(2 * time.Second):
		req.Fail("no initial snapshot")
	}

	env.session.SignOut()

	// A message committed after sign-out must not reach the old sink.
	signIn(t, env, "alice", "alice")
	req.NoError(svc.Send(env.ctx, "bob", "are you still there?"))

	select {
	case msgs := <-snapshots:
		req.Empty(msgs)
	case <-time.After(300 * time.Millisecond):
	}
}
