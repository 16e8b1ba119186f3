package book

//go:generate mockgen -destination=mocks/mock_ports.go -package=mocks bookcrud/internal/book Store,Session

import (
	"context"
)

// Store opens storage sessions. A session backs exactly one service call.
type Store interface {
	Begin(ctx context.Context) (Session, error)
}

// Session is a unit of work over the books table. Reads and writes made
// through one session observe a consistent view; nothing is durable until
// SaveChanges succeeds.
type Session interface {
	All(ctx context.Context) ([]Book, error)
	// FindByID returns ErrNotFound when no row matches.
	FindByID(ctx context.Context, id int64) (Book, error)
	// Add inserts b and sets b.ID to the storage-assigned id.
	Add(ctx context.Context, b *Book) error
	Update(ctx context.Context, b Book) error
	Remove(ctx context.Context, b Book) error
	SaveChanges(ctx context.Context) error
	// Close discards uncommitted changes. Safe to call after SaveChanges.
	Close(ctx context.Context) error
}
