package activities

import (
	"context"
	"errors"
)

// ErrForbidden indicates the caller tried to change someone else's enrollment.
var ErrForbidden = errors.New("you can only change your own enrollment")

// Service exposes enrollment operations with ownership checks.
type Service struct {
	store Store
}

// NewService builds an enrollment service instance.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns the activity catalogue with current participants. No
// authentication is required for reads.
func (s *Service) List(ctx context.Context) ([]Activity, error) {
	return s.store.List(ctx)
}

// Signup enrolls requestedEmail in the activity. Only the authenticated owner
// of the email may enroll it; the store handles the duplicate check.
func (s *Service) Signup(ctx context.Context, activityName, requestedEmail, authenticatedEmail string) error {
	if requestedEmail != authenticatedEmail {
		return ErrForbidden
	}
	return s.store.Signup(ctx, activityName, requestedEmail)
}

// Unregister withdraws requestedEmail from the activity, with the same
// ownership rule as Signup.
func (s *Service) Unregister(ctx context.Context, activityName, requestedEmail, authenticatedEmail string) error {
	if requestedEmail != authenticatedEmail {
		return ErrForbidden
	}
	return s.store.Unregister(ctx, activityName, requestedEmail)
}
