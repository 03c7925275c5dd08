package services

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"skillswap/domain"
	"skillswap/errors"
)

func signIn(t *testing.T, env *testEnv, id, name string) {
	t.Helper()
	require.NoError(t, env.session.Begin())
	require.NoError(t, env.session.Complete(domain.Identity{
		ID:    id,
		Name:  name,
		Email: name + "@skillswap.dev",
	}, "tok"))
}

func Test_Request_Requires_SignIn(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	svc := NewSessionService(env.store, env.session, slog.Default())

	err := svc.Request(env.ctx, SessionRequestDraft{
		ToUserID: "tutor-1",
		Date:     time.Now().Add(48 * time.Hour),
		TimeSlot: "10:00",
	})
	req.ErrorIs(err, errors.ErrAuth)
}

func Test_Request_Rejects_Past_Date(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	svc := NewSessionService(env.store, env.session, slog.Default())
	signIn(t, env, "learner-1", "emily")

	err := svc.Request(env.ctx, SessionRequestDraft{
		ToUserID: "tutor-1",
		Date:     time.Now().Add(-48 * time.Hour),
		TimeSlot: "10:00",
	})
	req.ErrorIs(err, errors.ErrValidation)

	err = svc.Request(env.ctx, SessionRequestDraft{
		ToUserID: "tutor-1",
		Date:     time.Now().Add(-48 * time.Hour),
		TimeSlot: "",
	})
	req.ErrorIs(err, errors.ErrValidation)
}

func Test_Request_Then_Incoming(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	svc := NewSessionService(env.store, env.session, slog.Default())
	signIn(t, env, "learner-1", "emily")

	date := time.Now().Add(72 * time.Hour).UTC()
	req.NoError(svc.Request(env.ctx, SessionRequestDraft{
		ToUserID: "tutor-1",
		Date:     date,
		TimeSlot: "14:00",
		Message:  "Could we start with chords?",
	}))

	incoming, err := svc.Incoming("tutor-1")
	req.NoError(err)
	req.Len(incoming, 1)
	req.Equal("learner-1", incoming[0].FromUserID)
	req.Equal("14:00", incoming[0].TimeSlot)
	req.Equal("Could we start with chords?", incoming[0].Message)
	req.True(incoming[0].Date.Equal(date))
	req.NotNil(incoming[0].CreatedAt)

	// Requests addressed to somebody else stay invisible.
	incoming, err = svc.Incoming("tutor-2")
	req.NoError(err)
	req.Empty(incoming)
}

func Test_SubscribeIncoming_Tracked_On_Session(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	svc := NewSessionService(env.store, env.session, slog.Default())

	_, err := svc.SubscribeIncoming(func([]domain.SessionRequest) {})
	req.ErrorIs(err, errors.ErrAuth)

	signIn(t, env, "tutor-1", "sarah")
	snapshots := make(chan []domain.SessionRequest, 8)
	sub, err := svc.SubscribeIncoming(func(rs []domain.SessionRequest) {
		snapshots <- rs
	})
	req.NoError(err)
	req.NotNil(sub)

	select {
	case rs := <-snapshots:
		req.Empty(rs)
	case <-time.After(2 * time.Second):
		req.Fail("no initial snapshot")
	}

	// Signing out cancels the tracked subscription; Cancel again is a no-op.
	env.session.SignOut()
	sub.Cancel()
}
