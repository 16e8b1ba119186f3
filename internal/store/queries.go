package store

import (
	"fmt"

	"bookcrud/internal/book"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // dialect registration
)

const (
	dialectPostgres = "postgres"
	dialectSQLite3  = "sqlite3"

	tableBooks     = "books"
	colID          = "id"
	colTitle       = "title"
	colDescription = "description"
)

// bookRow is the books table row. The db tags serve both pgx and sqlx scanning.
type bookRow struct {
	ID          int64  `db:"id"`
	Title       string `db:"title"`
	Description string `db:"description"`
}

func (r bookRow) toBook() book.Book {
	return book.Book{ID: r.ID, Title: r.Title, Description: r.Description}
}

// bookQueries builds parameterised statements for one SQL dialect.
type bookQueries struct {
	dialect goqu.DialectWrapper
}

func newBookQueries(dialect string) bookQueries {
	return bookQueries{dialect: goqu.Dialect(dialect)}
}

func (q bookQueries) selectAll() (string, []interface{}, error) {
	sql, args, err := q.dialect.
		From(tableBooks).
		Select(colID, colTitle, colDescription).
		Order(goqu.I(colID).Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build select all: %w", err)
	}
	return sql, args, nil
}

func (q bookQueries) selectByID(id int64) (string, []interface{}, error) {
	sql, args, err := q.dialect.
		From(tableBooks).
		Select(colID, colTitle, colDescription).
		Where(goqu.C(colID).Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build select by id: %w", err)
	}
	return sql, args, nil
}

// insert builds the INSERT statement. With returning set the statement
// yields the new id.
func (q bookQueries) insert(b book.Book, returning bool) (string, []interface{}, error) {
	ds := q.dialect.
		Insert(tableBooks).
		Rows(goqu.Record{colTitle: b.Title, colDescription: b.Description})
	if returning {
		ds = ds.Returning(colID)
	}
	sql, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build insert: %w", err)
	}
	return sql, args, nil
}

func (q bookQueries) update(b book.Book) (string, []interface{}, error) {
	sql, args, err := q.dialect.
		Update(tableBooks).
		Set(goqu.Record{colTitle: b.Title, colDescription: b.Description}).
		Where(goqu.C(colID).Eq(b.ID)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build update: %w", err)
	}
	return sql, args, nil
}

func (q bookQueries) delete(id int64) (string, []interface{}, error) {
	sql, args, err := q.dialect.
		Delete(tableBooks).
		Where(goqu.C(colID).Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build delete: %w", err)
	}
	return sql, args, nil
}
