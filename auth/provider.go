//go:generate go run go.uber.org/mock/mockgen -source=provider.go -destination=../mocks/mock_provider.go -package=mocks
package auth

import (
	"context"
	"time"
)

// ExternalIdentity is what a third-party sign-in flow resolves to: a stable
// external user identifier plus profile fields.
type ExternalIdentity struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}

// ExternalProvider abstracts a popup- or redirect-based third-party sign-in
// flow. The call blocks until the user completes or abandons the flow.
type ExternalProvider interface {
	SignIn(ctx context.Context) (ExternalIdentity, error)
}
