package activities

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indicates the named activity does not exist.
	ErrNotFound = errors.New("activity not found")

	// ErrAlreadyEnrolled indicates the email is already a participant.
	ErrAlreadyEnrolled = errors.New("student is already signed up")

	// ErrNotEnrolled indicates the email is not a participant.
	ErrNotEnrolled = errors.New("student is not signed up for this activity")
)

// Store persists activities and their participant sets. The (activity, email)
// membership pair is unique, and the store itself enforces it: Signup is the
// atomic check-and-insert, so concurrent duplicate signups resolve to exactly
// one winner.
type Store interface {
	List(ctx context.Context) ([]Activity, error)
	Signup(ctx context.Context, activityName, email string) error
	Unregister(ctx context.Context, activityName, email string) error
	SeedIfEmpty(ctx context.Context, seed []Activity) error
}
