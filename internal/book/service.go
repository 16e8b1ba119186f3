package book

import (
	"context"
	"errors"
	"fmt"

	"bookcrud/internal/outcome"

	"go.uber.org/zap"
)

// Service provides book-related business logic over a single storage
// session. Build one per request.
type Service struct {
	session Session
	logger  *zap.Logger
}

// NewService creates a new book service bound to session.
func NewService(session Session, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{session: session, logger: logger}
}

// Location returns the path of the book with the given id.
func Location(id int64) string {
	return fmt.Sprintf("/books/%d", id)
}

// List returns every stored book.
func (s *Service) List(ctx context.Context) (outcome.Outcome[[]Summary], error) {
	books, err := s.session.All(ctx)
	if err != nil {
		return outcome.Outcome[[]Summary]{}, fmt.Errorf("list books: %w", err)
	}
	return outcome.Ok(ToSummaries(books)), nil
}

// GetByID returns the book with the given id, or NotFound.
func (s *Service) GetByID(ctx context.Context, id int64) (outcome.Outcome[Detail], error) {
	b, err := s.session.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return outcome.NotFound[Detail](), nil
		}
		return outcome.Outcome[Detail]{}, fmt.Errorf("get book %d: %w", id, err)
	}
	return outcome.Ok(ToDetail(b)), nil
}

// Create stores a new book and returns it with its assigned id.
func (s *Service) Create(ctx context.Context, req CreateRequest) (outcome.Outcome[CreatedBook], error) {
	b := ToEntity(req)
	if err := s.session.Add(ctx, &b); err != nil {
		return outcome.Outcome[CreatedBook]{}, fmt.Errorf("add book: %w", err)
	}
	if err := s.save(ctx, "create"); err != nil {
		if ctx.Err() != nil {
			return outcome.Outcome[CreatedBook]{}, err
		}
		return outcome.BadRequest[CreatedBook](), nil
	}
	return outcome.Created(Location(b.ID), ToCreatedBook(b)), nil
}

// Update replaces the title and description of an existing book.
// An unknown id yields BadRequest.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (outcome.Outcome[outcome.None], error) {
	existing, err := s.session.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return outcome.BadRequest[outcome.None](), nil
		}
		return outcome.Outcome[outcome.None]{}, fmt.Errorf("find book %d: %w", id, err)
	}

	if err := s.session.Update(ctx, ApplyUpdate(req, existing)); err != nil {
		if errors.Is(err, ErrNotFound) {
			return outcome.BadRequest[outcome.None](), nil
		}
		return outcome.Outcome[outcome.None]{}, fmt.Errorf("update book %d: %w", id, err)
	}
	if err := s.save(ctx, "update"); err != nil {
		if ctx.Err() != nil {
			return outcome.Outcome[outcome.None]{}, err
		}
		return outcome.BadRequest[outcome.None](), nil
	}
	return outcome.NoContent[outcome.None](), nil
}

// Delete removes an existing book. An unknown id yields BadRequest.
func (s *Service) Delete(ctx context.Context, id int64) (outcome.Outcome[outcome.None], error) {
	existing, err := s.session.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return outcome.BadRequest[outcome.None](), nil
		}
		return outcome.Outcome[outcome.None]{}, fmt.Errorf("find book %d: %w", id, err)
	}

	if err := s.session.Remove(ctx, existing); err != nil {
		if errors.Is(err, ErrNotFound) {
			return outcome.BadRequest[outcome.None](), nil
		}
		return outcome.Outcome[outcome.None]{}, fmt.Errorf("remove book %d: %w", id, err)
	}
	if err := s.save(ctx, "delete"); err != nil {
		if ctx.Err() != nil {
			return outcome.Outcome[outcome.None]{}, err
		}
		return outcome.BadRequest[outcome.None](), nil
	}
	return outcome.NoContent[outcome.None](), nil
}

// save commits the session. Failures are logged here; callers map them to
// BadRequest unless the context was cancelled.
func (s *Service) save(ctx context.Context, op string) error {
	err := s.session.SaveChanges(ctx)
	if err == nil {
		return nil
	}
	s.logger.Warn("failed to persist changes", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%s book: save changes: %w", op, err)
}
