package book

import (
	"errors"
)

// ErrNotFound is returned by a Session when no book has the requested id.
var ErrNotFound = errors.New("book not found")

// Book represents a persisted book. ID is assigned by storage on Add and
// never changes afterwards.
type Book struct {
	ID          int64
	Title       string
	Description string
}

// CreateRequest is the payload of POST /books.
type CreateRequest struct {
	Title       string
	Description string
}

// UpdateRequest is the payload of PUT /books/{id}. The id travels in the path.
type UpdateRequest struct {
	Title       string
	Description string
}

// Summary is the list projection of a book.
type Summary struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Detail is the single-read projection of a book.
type Detail struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CreatedBook is returned from a successful create.
type CreatedBook struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}
