package store

// Book storage on Postgres. One pgx transaction per session.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookcrud/internal/book"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookPG struct {
	db      *pgxpool.Pool
	timeout time.Duration
	queries bookQueries
}

func NewBookPG(db *pgxpool.Pool, timeout time.Duration) *BookPG {
	return &BookPG{db: db, timeout: timeout, queries: newBookQueries(dialectPostgres)}
}

func (s *BookPG) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *BookPG) Begin(ctx context.Context) (book.Session, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return &pgSession{tx: tx, timeout: s.timeout, queries: s.queries}, nil
}

type pgSession struct {
	tx      pgx.Tx
	timeout time.Duration
	queries bookQueries
	done    bool
}

func (s *pgSession) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *pgSession) All(ctx context.Context) ([]book.Book, error) {
	query, args, err := s.queries.selectAll()
	if err != nil {
		return nil, err
	}

	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	rows, err := s.tx.Query(timeoutCtx, query, args...)
	if err != nil {
		return nil, err
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[bookRow])
	if err != nil {
		return nil, err
	}

	out := make([]book.Book, 0, len(records))
	for _, r := range records {
		out = append(out, r.toBook())
	}
	return out, nil
}

func (s *pgSession) FindByID(ctx context.Context, id int64) (book.Book, error) {
	query, args, err := s.queries.selectByID(id)
	if err != nil {
		return book.Book{}, err
	}

	var r bookRow
	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	err = s.tx.QueryRow(timeoutCtx, query, args...).Scan(&r.ID, &r.Title, &r.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return book.Book{}, book.ErrNotFound
		}
		return book.Book{}, err
	}
	return r.toBook(), nil
}

func (s *pgSession) Add(ctx context.Context, b *book.Book) error {
	query, args, err := s.queries.insert(*b, true)
	if err != nil {
		return err
	}

	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.tx.QueryRow(timeoutCtx, query, args...).Scan(&b.ID)
}

func (s *pgSession) Update(ctx context.Context, b book.Book) error {
	query, args, err := s.queries.update(b)
	if err != nil {
		return err
	}
	return s.execOne(ctx, query, args)
}

func (s *pgSession) Remove(ctx context.Context, b book.Book) error {
	query, args, err := s.queries.delete(b.ID)
	if err != nil {
		return err
	}
	return s.execOne(ctx, query, args)
}

// execOne runs a statement that must touch exactly one row.
func (s *pgSession) execOne(ctx context.Context, query string, args []interface{}) error {
	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	tag, err := s.tx.Exec(timeoutCtx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return book.ErrNotFound
	}
	return nil
}

func (s *pgSession) SaveChanges(ctx context.Context) error {
	s.done = true
	return s.tx.Commit(ctx)
}

func (s *pgSession) Close(ctx context.Context) error {
	if s.done {
		return nil
	}
	s.done = true
	if err := s.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}
