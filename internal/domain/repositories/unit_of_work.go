package repositories

import (
	"context"
)

// UnitOfWork runs a group of repository calls atomically
type UnitOfWork interface {
	// Do executes fn inside one transaction. Repositories called with the
	// context passed to fn join that transaction; a non-nil return from fn
	// rolls everything back.
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
