// Package services wires the channels, store, index, and blob store into
// the operations the presentation layer calls.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"skillswap/auth"
	"skillswap/docstore"
	"skillswap/domain"
	"skillswap/errors"
)

// CollUsers is the user/profile collection name.
const CollUsers = "users"

var validate = validator.New()

type AuthService struct {
	store         *docstore.Store
	session       *auth.Session
	provider      auth.ExternalProvider
	tokenDuration time.Duration
	log           *slog.Logger
}

// NewAuthService builds the identity adapter. provider may be nil when no
// third-party flow is configured.
func NewAuthService(store *docstore.Store, session *auth.Session,
	provider auth.ExternalProvider, tokenDuration time.Duration, log *slog.Logger) *AuthService {
	return &AuthService{
		store:         store,
		session:       session,
		provider:      provider,
		tokenDuration: tokenDuration,
		log:           log,
	}
}

// CurrentUser returns the authenticated actor, or false when anonymous.
func (s *AuthService) CurrentUser() (domain.Identity, bool) {
	return s.session.Current()
}

// SignIn authenticates by email and password. A password shorter than the
// fixed minimum always fails, regardless of the email. First-time emails
// get an account on the fly, with the display name derived from the email
// prefix; known emails must match their stored password hash.
func (s *AuthService) SignIn(ctx context.Context, email, password string) error {
	if err := s.session.Begin(); err != nil {
		return err
	}
	if err := auth.ValidateSignIn(auth.SignInRequest{Email: email, Password: password}); err != nil {
		s.session.Abort()
		return err
	}

	existing, err := s.userByEmail(email)
	if err != nil {
		s.session.Abort()
		return fmt.Errorf("%w: %v", errors.ErrAuth, err)
	}

	var identity domain.Identity
	switch {
	case existing != nil:
		if hash := existing.String("passwordHash"); hash != "" {
			match, err := auth.ComparePassword(password, hash)
			if err != nil || !match {
				s.session.Abort()
				// Generic message to prevent user enumeration.
				return fmt.Errorf("%w: invalid credentials", errors.ErrAuth)
			}
		}
		identity = identityFromDoc(*existing)
	default:
		identity, err = s.createUser(ctx, emailPrefix(email), email, "")
		if err != nil {
			s.session.Abort()
			return err
		}
	}

	return s.complete(identity)
}

// SignUp registers a new account with an explicit display name. The
// password is hashed before it reaches the store.
func (s *AuthService) SignUp(ctx context.Context, name, email, password string) error {
	if err := s.session.Begin(); err != nil {
		return err
	}
	if err := auth.ValidateSignUp(auth.SignUpRequest{Name: name, Email: email, Password: password}); err != nil {
		s.session.Abort()
		return err
	}

	existing, err := s.userByEmail(email)
	if err != nil {
		s.session.Abort()
		return fmt.Errorf("%w: %v", errors.ErrAuth, err)
	}
	if existing != nil {
		s.session.Abort()
		return fmt.Errorf("%w: %v", errors.ErrAuth, errors.ErrUserExists)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		s.session.Abort()
		return fmt.Errorf("%w: %v", errors.ErrAuth, err)
	}

	identity, err := s.createUser(ctx, name, email, hash)
	if err != nil {
		s.session.Abort()
		return err
	}
	return s.complete(identity)
}

// SignInWithProvider runs the configured third-party flow and upserts the
// resolved identity into the user collection (merge semantics).
func (s *AuthService) SignInWithProvider(ctx context.Context) error {
	if err := s.session.Begin(); err != nil {
		return err
	}
	if s.provider == nil {
		s.session.Abort()
		return fmt.Errorf("%w: no external provider configured", errors.ErrAuth)
	}

	ext, err := s.provider.SignIn(ctx)
	if err != nil {
		s.session.Abort()
		return fmt.Errorf("%w: %v", errors.ErrAuth, err)
	}

	name := ext.Name
	if name == "" {
		name = emailPrefix(ext.Email)
	}
	if name == "" {
		name = "User"
	}
	joined := ext.CreatedAt
	if joined.IsZero() {
		joined = time.Now().UTC()
	}

	existing, err := s.userByExternalID(ext.ID)
	if err != nil {
		s.session.Abort()
		return fmt.Errorf("%w: %v", errors.ErrAuth, err)
	}

	var identity domain.Identity
	if existing != nil {
		err = s.store.Update(ctx, CollUsers, existing.ID, docstore.Fields{
			"name":  name,
			"email": ext.Email,
		})
		if err != nil {
			s.session.Abort()
			return fmt.Errorf("%w: %v", errors.ErrAuth, err)
		}
		identity = identityFromDoc(*existing)
		identity.Name = name
		identity.Email = ext.Email
	} else {
		id, err := s.store.Add(ctx, CollUsers, docstore.Fields{
			"name":       name,
			"email":      ext.Email,
			"externalId": ext.ID,
			"joinedAt":   joined,
			"timestamp":  docstore.ServerTimestamp,
		})
		if err != nil {
			s.session.Abort()
			return fmt.Errorf("%w: %v", errors.ErrAuth, err)
		}
		identity = domain.Identity{ID: id, Name: name, Email: ext.Email, JoinedAt: joined}
	}

	return s.complete(identity)
}

// SignOut clears the persisted identity and cancels every subscription
// tracked on the session scope.
func (s *AuthService) SignOut() {
	s.session.SignOut()
}

func (s *AuthService) complete(identity domain.Identity) error {
	token, err := auth.GenerateToken(identity.ID, identity.Name, s.tokenDuration)
	if err != nil {
		s.session.Abort()
		return fmt.Errorf("%w: %v", errors.ErrAuth, errors.ErrTokenGeneration)
	}
	if err := s.session.Complete(identity, token); err != nil {
		return err
	}
	s.log.Info("Signed in", "user", identity.ID)
	return nil
}

func (s *AuthService) createUser(ctx context.Context, name, email, passwordHash string) (domain.Identity, error) {
	joined := time.Now().UTC()
	fields := docstore.Fields{
		"name":      name,
		"email":     email,
		"joinedAt":  joined,
		"timestamp": docstore.ServerTimestamp,
	}
	if passwordHash != "" {
		fields["passwordHash"] = passwordHash
	}
	id, err := s.store.Add(ctx, CollUsers, fields)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", errors.ErrAuth, err)
	}
	return domain.Identity{ID: id, Name: name, Email: email, JoinedAt: joined}, nil
}

func (s *AuthService) userByEmail(email string) (*docstore.Document, error) {
	return s.findOne(docstore.Eq("email", email))
}

func (s *AuthService) userByExternalID(id string) (*docstore.Document, error) {
	return s.findOne(docstore.Eq("externalId", id))
}

func (s *AuthService) findOne(p docstore.Predicate) (*docstore.Document, error) {
	docs, err := s.store.Documents(docstore.Query{
		Collection: CollUsers,
		Predicates: []docstore.Predicate{p},
	})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return &docs[0], nil
}

func identityFromDoc(doc docstore.Document) domain.Identity {
	identity := domain.Identity{
		ID:    doc.ID,
		Name:  doc.String("name"),
		Email: doc.String("email"),
	}
	if joined, ok := doc.Time("joinedAt"); ok {
		identity.JoinedAt = joined
	}
	return identity
}

func emailPrefix(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
