package store

import (
	"context"
	"testing"

	"bookcrud/internal/book"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreContract exercises the behaviour every book.Store must share.
// The store must start empty.
func runStoreContract(t *testing.T, s book.Store) {
	t.Helper()
	ctx := context.Background()

	inSession := func(t *testing.T, fn func(sess book.Session)) {
		t.Helper()
		sess, err := s.Begin(ctx)
		require.NoError(t, err)
		defer func() { require.NoError(t, sess.Close(ctx)) }()
		fn(sess)
	}

	t.Run("empty store lists nothing", func(t *testing.T) {
		inSession(t, func(sess book.Session) {
			books, err := sess.All(ctx)
			require.NoError(t, err)
			assert.Empty(t, books)
		})
	})

	var dune book.Book
	t.Run("add assigns id and commits", func(t *testing.T) {
		inSession(t, func(sess book.Session) {
			dune = book.Book{Title: "Dune", Description: "Sci-fi classic"}
			require.NoError(t, sess.Add(ctx, &dune))
			assert.NotZero(t, dune.ID)
			require.NoError(t, sess.SaveChanges(ctx))
		})

		inSession(t, func(sess book.Session) {
			got, err := sess.FindByID(ctx, dune.ID)
			require.NoError(t, err)
			assert.Equal(t, dune, got)
		})
	})

	t.Run("uncommitted add is discarded", func(t *testing.T) {
		var ghost book.Book
		inSession(t, func(sess book.Session) {
			ghost = book.Book{Title: "Ghost", Description: ""}
			require.NoError(t, sess.Add(ctx, &ghost))
		})

		inSession(t, func(sess book.Session) {
			_, err := sess.FindByID(ctx, ghost.ID)
			assert.ErrorIs(t, err, book.ErrNotFound)
			books, err := sess.All(ctx)
			require.NoError(t, err)
			assert.Len(t, books, 1)
		})
	})

	t.Run("missing id", func(t *testing.T) {
		inSession(t, func(sess book.Session) {
			_, err := sess.FindByID(ctx, -1)
			assert.ErrorIs(t, err, book.ErrNotFound)
			assert.ErrorIs(t, sess.Update(ctx, book.Book{ID: -1}), book.ErrNotFound)
			assert.ErrorIs(t, sess.Remove(ctx, book.Book{ID: -1}), book.ErrNotFound)
		})
	})

	t.Run("update keeps id", func(t *testing.T) {
		inSession(t, func(sess book.Session) {
			require.NoError(t, sess.Update(ctx, book.Book{ID: dune.ID, Title: "Dune Messiah", Description: ""}))
			require.NoError(t, sess.SaveChanges(ctx))
		})

		inSession(t, func(sess book.Session) {
			got, err := sess.FindByID(ctx, dune.ID)
			require.NoError(t, err)
			assert.Equal(t, book.Book{ID: dune.ID, Title: "Dune Messiah", Description: ""}, got)
		})
	})

	t.Run("all is ordered by id", func(t *testing.T) {
		inSession(t, func(sess book.Session) {
			for _, title := range []string{"Emma", "Ulysses"} {
				b := book.Book{Title: title, Description: title + " description"}
				require.NoError(t, sess.Add(ctx, &b))
			}
			require.NoError(t, sess.SaveChanges(ctx))
		})

		inSession(t, func(sess book.Session) {
			books, err := sess.All(ctx)
			require.NoError(t, err)
			require.Len(t, books, 3)
			assert.Equal(t, "Dune Messiah", books[0].Title)
			assert.Equal(t, "Emma", books[1].Title)
			assert.Equal(t, "Ulysses", books[2].Title)
			assert.Less(t, books[0].ID, books[1].ID)
			assert.Less(t, books[1].ID, books[2].ID)
		})
	})

	t.Run("remove deletes", func(t *testing.T) {
		inSession(t, func(sess book.Session) {
			require.NoError(t, sess.Remove(ctx, dune))
			require.NoError(t, sess.SaveChanges(ctx))
		})

		inSession(t, func(sess book.Session) {
			_, err := sess.FindByID(ctx, dune.ID)
			assert.ErrorIs(t, err, book.ErrNotFound)
		})
	})

	t.Run("close after save is a no-op", func(t *testing.T) {
		sess, err := s.Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, sess.SaveChanges(ctx))
		assert.NoError(t, sess.Close(ctx))
		assert.NoError(t, sess.Close(ctx))
	})
}
