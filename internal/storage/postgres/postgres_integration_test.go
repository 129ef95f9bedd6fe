//go:build integration

package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"credkit/internal/search/recent"
	"credkit/internal/storage"
	"credkit/pkg/platform/sentinel"
	"credkit/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *Store
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.pg = containers.GetManager().GetPostgres(s.T())
	s.store = New(s.pg.DB)
	s.Require().NoError(s.store.Migrate(context.Background()))
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.pg.Truncate(context.Background(), "credkit_kv"))
}

func (s *PostgresStoreSuite) TestOpenMigratesIdempotently() {
	ctx := context.Background()
	store, err := Open(ctx, s.pg.DSN)
	s.Require().NoError(err)
	s.Require().NoError(store.Migrate(ctx))
	s.Require().NoError(store.Close())
}

func (s *PostgresStoreSuite) TestGetSet() {
	ctx := context.Background()

	_, err := s.store.Get(ctx, "credkit:recent-searches")
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.Require().NoError(s.store.Set(ctx, "credkit:recent-searches", []byte(`["a"]`)))
	s.Require().NoError(s.store.Set(ctx, "credkit:recent-searches", []byte(`["b","a"]`)))

	got, err := s.store.Get(ctx, "credkit:recent-searches")
	s.Require().NoError(err)
	s.Equal(`["b","a"]`, string(got))
}

func (s *PostgresStoreSuite) TestConcurrentUpdates() {
	ctx := context.Background()
	const writers = 8
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		go func() {
			errs <- storage.Mutate(ctx, s.store, "credkit:counter", func(current []byte, _ bool) ([]byte, error) {
				return append(current, 'x'), nil
			})
		}()
	}
	for i := 0; i < writers; i++ {
		s.Require().NoError(<-errs)
	}
	got, err := s.store.Get(ctx, "credkit:counter")
	s.Require().NoError(err)
	s.Len(got, writers)
}

func (s *PostgresStoreSuite) TestRecentHistory() {
	ctx := context.Background()
	history := recent.New(s.store)
	for _, term := range []string{"chase", "sarah", "Chase"} {
		history.Add(ctx, term)
	}
	s.Equal([]string{"chase", "sarah"}, history.List(ctx))
}
