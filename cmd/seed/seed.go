package main

import (
	"context"
	"fmt"
	"math/rand"

	"bookcrud/internal/book"
	"bookcrud/internal/outcome"

	"go.uber.org/zap"
)

var words = []string{
	"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
	"Love", "War", "Peace", "Science", "Nature", "Technology", "History", "Future",
	"Past", "Present", "Reality", "Imagination", "Wisdom", "Life", "Death",
	"Light", "Darkness", "World", "Universe", "Time", "Space", "Mind", "Soul",
}

type generator struct {
	rnd *rand.Rand
}

func newGenerator() *generator {
	return &generator{rnd: rand.New(rand.NewSource(rand.Int63()))}
}

func (g *generator) word() string {
	return words[g.rnd.Intn(len(words))]
}

func (g *generator) request(i int) book.CreateRequest {
	return book.CreateRequest{
		Title: fmt.Sprintf("Book Title %d - %s", i, g.word()),
		Description: fmt.Sprintf("This is a book about %s. It explores the fundamental concepts and provides insights into the subject matter.",
			g.word()),
	}
}

// seed creates count books, each in its own storage session, and returns
// how many were stored.
func seed(ctx context.Context, s book.Store, gen *generator, count int, logger *zap.Logger) (int, error) {
	created := 0
	for i := 1; i <= count; i++ {
		if err := createOne(ctx, s, gen.request(i), logger); err != nil {
			return created, err
		}
		created++
		if created%1000 == 0 {
			logger.Info("seeding progress", zap.Int("created", created), zap.Int("count", count))
		}
	}
	return created, nil
}

func createOne(ctx context.Context, s book.Store, req book.CreateRequest, logger *zap.Logger) error {
	session, err := s.Begin(ctx)
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	defer session.Close(context.WithoutCancel(ctx))

	res, err := book.NewService(session, logger).Create(ctx, req)
	if err != nil {
		return err
	}
	if res.Kind() != outcome.KindCreated {
		return fmt.Errorf("create %q: %s", req.Title, res.Kind())
	}
	return nil
}
