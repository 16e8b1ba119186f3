package store

import (
	"context"
	"errors"
	"sort"

	"bookcrud/internal/book"
)

// BookMemory keeps books in process memory. Sessions are serialised: a
// session owns the store from Begin until Close and edits a staged copy
// that SaveChanges publishes.
type BookMemory struct {
	lock   chan struct{}
	books  map[int64]book.Book
	nextID int64
}

func NewBookMemory() *BookMemory {
	return &BookMemory{
		lock:   make(chan struct{}, 1),
		books:  make(map[int64]book.Book),
		nextID: 1,
	}
}

func (s *BookMemory) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *BookMemory) Begin(ctx context.Context) (book.Session, error) {
	select {
	case s.lock <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	staged := make(map[int64]book.Book, len(s.books))
	for id, b := range s.books {
		staged[id] = b
	}
	return &memorySession{store: s, staged: staged, nextID: s.nextID}, nil
}

var errSessionClosed = errors.New("store: session closed")

type memorySession struct {
	store  *BookMemory
	staged map[int64]book.Book
	nextID int64
	closed bool
}

func (s *memorySession) check(ctx context.Context) error {
	if s.closed {
		return errSessionClosed
	}
	return ctx.Err()
}

func (s *memorySession) All(ctx context.Context) ([]book.Book, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	out := make([]book.Book, 0, len(s.staged))
	for _, b := range s.staged {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memorySession) FindByID(ctx context.Context, id int64) (book.Book, error) {
	if err := s.check(ctx); err != nil {
		return book.Book{}, err
	}
	b, ok := s.staged[id]
	if !ok {
		return book.Book{}, book.ErrNotFound
	}
	return b, nil
}

func (s *memorySession) Add(ctx context.Context, b *book.Book) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	b.ID = s.nextID
	s.nextID++
	s.staged[b.ID] = *b
	return nil
}

func (s *memorySession) Update(ctx context.Context, b book.Book) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	if _, ok := s.staged[b.ID]; !ok {
		return book.ErrNotFound
	}
	s.staged[b.ID] = b
	return nil
}

func (s *memorySession) Remove(ctx context.Context, b book.Book) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	if _, ok := s.staged[b.ID]; !ok {
		return book.ErrNotFound
	}
	delete(s.staged, b.ID)
	return nil
}

func (s *memorySession) SaveChanges(ctx context.Context) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	s.store.books = s.staged
	s.store.nextID = s.nextID
	return s.Close(ctx)
}

func (s *memorySession) Close(context.Context) error {
	if s.closed {
		return nil
	}
	s.closed = true
	<-s.store.lock
	return nil
}
