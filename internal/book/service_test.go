package book_test

import (
	"context"
	"errors"
	"testing"

	"bookcrud/internal/book"
	"bookcrud/internal/book/mocks"
	"bookcrud/internal/outcome"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	session := mocks.NewMockSession(ctrl)
	svc := book.NewService(session, zap.NewNop())
	ctx := context.Background()

	t.Run("empty store", func(t *testing.T) {
		session.EXPECT().All(ctx).Return(nil, nil)

		res, err := svc.List(ctx)

		require.NoError(t, err)
		assert.Equal(t, outcome.KindOk, res.Kind())
		v, ok := res.Value()
		assert.True(t, ok)
		assert.NotNil(t, v)
		assert.Empty(t, v)
	})

	t.Run("maps every book", func(t *testing.T) {
		books := []book.Book{
			{ID: 1, Title: "Dune", Description: "Sci-fi classic"},
			{ID: 2, Title: "Emma", Description: ""},
		}
		session.EXPECT().All(ctx).Return(books, nil)

		res, err := svc.List(ctx)

		require.NoError(t, err)
		v, _ := res.Value()
		assert.Equal(t, []book.Summary{
			{ID: 1, Title: "Dune", Description: "Sci-fi classic"},
			{ID: 2, Title: "Emma", Description: ""},
		}, v)
	})

	t.Run("storage error", func(t *testing.T) {
		session.EXPECT().All(ctx).Return(nil, context.DeadlineExceeded)

		res, err := svc.List(ctx)

		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, outcome.KindInvalid, res.Kind())
	})
}

func TestService_GetByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	session := mocks.NewMockSession(ctrl)
	svc := book.NewService(session, zap.NewNop())
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		session.EXPECT().FindByID(ctx, int64(1)).Return(book.Book{ID: 1, Title: "Dune", Description: "Sci-fi classic"}, nil)

		res, err := svc.GetByID(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, outcome.KindOk, res.Kind())
		v, _ := res.Value()
		assert.Equal(t, book.Detail{ID: 1, Title: "Dune", Description: "Sci-fi classic"}, v)
	})

	t.Run("not found", func(t *testing.T) {
		session.EXPECT().FindByID(ctx, int64(-1)).Return(book.Book{}, book.ErrNotFound)

		res, err := svc.GetByID(ctx, -1)

		require.NoError(t, err)
		assert.Equal(t, outcome.KindNotFound, res.Kind())
	})

	t.Run("storage error", func(t *testing.T) {
		session.EXPECT().FindByID(ctx, int64(1)).Return(book.Book{}, errors.New("db error"))

		_, err := svc.GetByID(ctx, 1)

		assert.Error(t, err)
	})
}

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	session := mocks.NewMockSession(ctrl)
	svc := book.NewService(session, zap.NewNop())
	ctx := context.Background()
	req := book.CreateRequest{Title: "Dune", Description: "Sci-fi classic"}

	t.Run("created with location", func(t *testing.T) {
		gomock.InOrder(
			session.EXPECT().Add(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, b *book.Book) error {
				assert.Zero(t, b.ID)
				assert.Equal(t, "Dune", b.Title)
				b.ID = 1
				return nil
			}),
			session.EXPECT().SaveChanges(ctx).Return(nil),
		)

		res, err := svc.Create(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, outcome.KindCreated, res.Kind())
		assert.Equal(t, "/books/1", res.Location())
		v, _ := res.Value()
		assert.Equal(t, book.CreatedBook{ID: 1, Title: "Dune", Description: "Sci-fi classic"}, v)
	})

	t.Run("persist failure is a bad request", func(t *testing.T) {
		session.EXPECT().Add(ctx, gomock.Any()).Return(nil)
		session.EXPECT().SaveChanges(ctx).Return(errors.New("constraint violation"))

		res, err := svc.Create(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, outcome.KindBadRequest, res.Kind())
	})

	t.Run("add failure is an error", func(t *testing.T) {
		session.EXPECT().Add(ctx, gomock.Any()).Return(errors.New("connection reset"))

		_, err := svc.Create(ctx, req)

		assert.Error(t, err)
	})

	t.Run("cancelled persist is an error", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		session.EXPECT().Add(cctx, gomock.Any()).Return(nil)
		session.EXPECT().SaveChanges(cctx).Return(context.Canceled)

		_, err := svc.Create(cctx, req)

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	session := mocks.NewMockSession(ctrl)
	svc := book.NewService(session, zap.NewNop())
	ctx := context.Background()
	req := book.UpdateRequest{Title: "Dune Messiah", Description: "Sequel"}

	t.Run("missing id is a bad request and writes nothing", func(t *testing.T) {
		session.EXPECT().FindByID(ctx, int64(-1)).Return(book.Book{}, book.ErrNotFound)

		res, err := svc.Update(ctx, -1, req)

		require.NoError(t, err)
		assert.Equal(t, outcome.KindBadRequest, res.Kind())
	})

	t.Run("replaces fields and keeps id", func(t *testing.T) {
		gomock.InOrder(
			session.EXPECT().FindByID(ctx, int64(7)).Return(book.Book{ID: 7, Title: "Dune", Description: "Sci-fi classic"}, nil),
			session.EXPECT().Update(ctx, book.Book{ID: 7, Title: "Dune Messiah", Description: "Sequel"}).Return(nil),
			session.EXPECT().SaveChanges(ctx).Return(nil),
		)

		res, err := svc.Update(ctx, 7, req)

		require.NoError(t, err)
		assert.Equal(t, outcome.KindNoContent, res.Kind())
	})

	t.Run("persist failure is a bad request", func(t *testing.T) {
		session.EXPECT().FindByID(ctx, int64(7)).Return(book.Book{ID: 7}, nil)
		session.EXPECT().Update(ctx, gomock.Any()).Return(nil)
		session.EXPECT().SaveChanges(ctx).Return(errors.New("serialization failure"))

		res, err := svc.Update(ctx, 7, req)

		require.NoError(t, err)
		assert.Equal(t, outcome.KindBadRequest, res.Kind())
	})

	t.Run("lookup failure is an error", func(t *testing.T) {
		session.EXPECT().FindByID(ctx, int64(7)).Return(book.Book{}, context.DeadlineExceeded)

		_, err := svc.Update(ctx, 7, req)

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	session := mocks.NewMockSession(ctrl)
	svc := book.NewService(session, zap.NewNop())
	ctx := context.Background()

	t.Run("missing id is a bad request and removes nothing", func(t *testing.T) {
		session.EXPECT().FindByID(ctx, int64(-1)).Return(book.Book{}, book.ErrNotFound)

		res, err := svc.Delete(ctx, -1)

		require.NoError(t, err)
		assert.Equal(t, outcome.KindBadRequest, res.Kind())
	})

	t.Run("removes existing book", func(t *testing.T) {
		existing := book.Book{ID: 3, Title: "Emma", Description: "Austen"}
		gomock.InOrder(
			session.EXPECT().FindByID(ctx, int64(3)).Return(existing, nil),
			session.EXPECT().Remove(ctx, existing).Return(nil),
			session.EXPECT().SaveChanges(ctx).Return(nil),
		)

		res, err := svc.Delete(ctx, 3)

		require.NoError(t, err)
		assert.Equal(t, outcome.KindNoContent, res.Kind())
	})

	t.Run("remove failure is an error", func(t *testing.T) {
		session.EXPECT().FindByID(ctx, int64(3)).Return(book.Book{ID: 3}, nil)
		session.EXPECT().Remove(ctx, gomock.Any()).Return(errors.New("db error"))

		_, err := svc.Delete(ctx, 3)

		assert.Error(t, err)
	})
}
