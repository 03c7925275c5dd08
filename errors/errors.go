package errors

import "fmt"

// Error taxonomy of the marketplace. Callers match with errors.Is and
// surface the message inline; nothing is retried or queued.
var (
	// ErrValidation marks malformed or empty required input.
	ErrValidation = fmt.Errorf("validation failed")

	// ErrAuth marks sign-in, sign-up or session failures.
	ErrAuth = fmt.Errorf("authentication failed")

	// ErrDelivery marks a store write that did not commit.
	ErrDelivery = fmt.Errorf("delivery failed")

	ErrNotFound        = fmt.Errorf("not found")
	ErrSignInFlowBusy  = fmt.Errorf("sign-in already in progress")
	ErrUserExists      = fmt.Errorf("user already exists")
	ErrTokenGeneration = fmt.Errorf("token generation failed")
	ErrNotAnImage      = fmt.Errorf("not an image")
	ErrWorkerPanic     = fmt.Errorf("worker panic")
)
