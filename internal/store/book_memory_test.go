package store

import (
	"context"
	"testing"
	"time"

	"bookcrud/internal/book"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookMemory_Contract(t *testing.T) {
	runStoreContract(t, NewBookMemory())
}

func TestBookMemory_BeginWaitsForOpenSession(t *testing.T) {
	s := NewBookMemory()
	ctx := context.Background()

	first, err := s.Begin(ctx)
	require.NoError(t, err)

	waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	_, err = s.Begin(waitCtx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, first.Close(ctx))
	second, err := s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, second.Close(ctx))
}

func TestBookMemory_ClosedSessionRejectsCalls(t *testing.T) {
	s := NewBookMemory()
	ctx := context.Background()

	sess, err := s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, sess.Close(ctx))

	_, err = sess.All(ctx)
	assert.ErrorIs(t, err, errSessionClosed)
	assert.ErrorIs(t, sess.Add(ctx, &book.Book{Title: "late"}), errSessionClosed)
	assert.ErrorIs(t, sess.SaveChanges(ctx), errSessionClosed)
}

func TestBookMemory_CancelledContext(t *testing.T) {
	s := NewBookMemory()
	ctx, cancel := context.WithCancel(context.Background())

	sess, err := s.Begin(ctx)
	require.NoError(t, err)
	defer sess.Close(context.Background())

	cancel()
	b := book.Book{Title: "Dune"}
	assert.ErrorIs(t, sess.Add(ctx, &b), context.Canceled)
	assert.ErrorIs(t, sess.SaveChanges(ctx), context.Canceled)
}
