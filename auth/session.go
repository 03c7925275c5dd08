package auth

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"skillswap/domain"
	"skillswap/errors"
)

// sessionKey is the well-known durable key holding the serialized identity.
const sessionKey = "session:current"

type State int

const (
	Anonymous State = iota
	Authenticating
	Authenticated
)

// Canceler releases a live resource tied to the session, typically a
// document store subscription.
type Canceler interface {
	Cancel()
}

// Session is the explicit authentication context passed to components that
// need the current actor. It replaces ambient global state: constructed at
// session start, invalidated on sign-out.
//
// The identity survives reloads through the durable key-value store; a
// corrupted persisted record is treated as "no identity" and cleared
// silently rather than surfaced as an error.
type Session struct {
	mu       sync.Mutex
	state    State
	identity domain.Identity
	token    string
	scope    []Canceler

	db  *badger.DB
	log *slog.Logger
}

// NewSession constructs the session and restores any persisted identity.
func NewSession(db *badger.DB, log *slog.Logger) *Session {
	s := &Session{db: db, log: log}
	s.restore()
	return s
}

func (s *Session) restore() {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(sessionKey))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return
	}

	var identity domain.Identity
	if err := json.Unmarshal(raw, &identity); err != nil || identity.IsZero() {
		s.log.Debug("Discarding corrupted persisted identity")
		_ = s.db.Update(func(txn *badger.Txn) error {
			return txn.Delete([]byte(sessionKey))
		})
		return
	}

	s.identity = identity
	s.state = Authenticated
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Current returns the authenticated actor, or false when anonymous.
func (s *Session) Current() (domain.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Authenticated {
		return domain.Identity{}, false
	}
	return s.identity, true
}

// Token returns the session token issued at sign-in, "" when anonymous.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Begin enters the Authenticating state. The flow cannot be re-entered
// while one is already in progress for the same session.
func (s *Session) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Authenticating {
		return fmt.Errorf("%w: %v", errors.ErrAuth, errors.ErrSignInFlowBusy)
	}
	s.state = Authenticating
	return nil
}

// Complete resolves the flow: the identity is persisted for the remainder
// of the session and across reloads.
func (s *Session) Complete(identity domain.Identity, token string) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrAuth, err)
	}
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(sessionKey), raw)
	}); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrAuth, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = identity
	s.token = token
	s.state = Authenticated
	return nil
}

// Abort leaves the Authenticating state after a failed flow.
func (s *Session) Abort() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Authenticating {
		s.state = Anonymous
	}
}

// Track ties a cancelable resource to the session. SignOut cancels every
// tracked resource, so subscriptions keyed to the departing user cannot
// outlive the identity.
func (s *Session) Track(c Canceler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scope = append(s.scope, c)
}

// SignOut clears the persisted identity and tears the session scope down.
func (s *Session) SignOut() {
	s.mu.Lock()
	scope := s.scope
	s.scope = nil
	s.identity = domain.Identity{}
	s.token = ""
	s.state = Anonymous
	s.mu.Unlock()

	for _, c := range scope {
		c.Cancel()
	}

	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(sessionKey))
	}); err != nil {
		s.log.Warn("Failed to clear persisted identity", "error", err)
	}
}
