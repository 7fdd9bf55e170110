// Package repository holds demo sessions in memory.
package repository

import (
	"context"

	"github.com/okian/swiri/internal/domain/session"
)

// Store provides read/write access to demo sessions.
type Store interface {
	// Create starts a new session keyed by a random UUID. When the store is
	// full the least recently updated session is evicted.
	Create(ctx context.Context, opts ...session.Option) (*session.State, error)

	// Get returns a copy of the session.
	// Returns ErrSessionNotFound if the id is unknown or expired.
	Get(ctx context.Context, id string) (*session.State, error)

	// Update runs fn against the stored session under the store lock and
	// returns a copy of the result. Changes fn made before failing are kept.
	Update(ctx context.Context, id string, fn func(*session.State) error) (*session.State, error)

	// Delete removes the session.
	Delete(ctx context.Context, id string) error

	// Count returns the number of sessions held.
	Count(ctx context.Context) int

	// Sweep removes expired sessions and returns how many were removed.
	Sweep(ctx context.Context) int
}
