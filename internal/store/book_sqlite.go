package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bookcrud/internal/book"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver
)

// OpenSQLite opens the SQLite database at dsn. The pool is limited to one
// connection so sessions never contend for the write lock.
func OpenSQLite(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

type BookSQLite struct {
	db      *sqlx.DB
	queries bookQueries
}

func NewBookSQLite(db *sqlx.DB) *BookSQLite {
	return &BookSQLite{db: db, queries: newBookQueries(dialectSQLite3)}
}

func (s *BookSQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *BookSQLite) Begin(ctx context.Context) (book.Session, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return &sqliteSession{tx: tx, queries: s.queries}, nil
}

type sqliteSession struct {
	tx      *sqlx.Tx
	queries bookQueries
	done    bool
}

func (s *sqliteSession) All(ctx context.Context) ([]book.Book, error) {
	query, args, err := s.queries.selectAll()
	if err != nil {
		return nil, err
	}

	var records []bookRow
	if err := s.tx.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, err
	}

	out := make([]book.Book, 0, len(records))
	for _, r := range records {
		out = append(out, r.toBook())
	}
	return out, nil
}

func (s *sqliteSession) FindByID(ctx context.Context, id int64) (book.Book, error) {
	query, args, err := s.queries.selectByID(id)
	if err != nil {
		return book.Book{}, err
	}

	var r bookRow
	if err := s.tx.GetContext(ctx, &r, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return book.Book{}, book.ErrNotFound
		}
		return book.Book{}, err
	}
	return r.toBook(), nil
}

func (s *sqliteSession) Add(ctx context.Context, b *book.Book) error {
	query, args, err := s.queries.insert(*b, false)
	if err != nil {
		return err
	}

	res, err := s.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	b.ID = id
	return nil
}

func (s *sqliteSession) Update(ctx context.Context, b book.Book) error {
	query, args, err := s.queries.update(b)
	if err != nil {
		return err
	}
	return s.execOne(ctx, query, args)
}

func (s *sqliteSession) Remove(ctx context.Context, b book.Book) error {
	query, args, err := s.queries.delete(b.ID)
	if err != nil {
		return err
	}
	return s.execOne(ctx, query, args)
}

func (s *sqliteSession) execOne(ctx context.Context, query string, args []interface{}) error {
	res, err := s.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return book.ErrNotFound
	}
	return nil
}

func (s *sqliteSession) SaveChanges(ctx context.Context) error {
	s.done = true
	return s.tx.Commit()
}

func (s *sqliteSession) Close(ctx context.Context) error {
	if s.done {
		return nil
	}
	s.done = true
	if err := s.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}
