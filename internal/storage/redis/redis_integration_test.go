//go:build integration

package redis

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"credkit/internal/roster/models"
	"credkit/internal/roster/service"
	"credkit/internal/storage"
	dErrors "credkit/pkg/domain-errors"
	"credkit/pkg/platform/sentinel"
	"credkit/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *Store
}

func TestRedisStoreSuite(t *testing.T) {
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.store = New(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestGetSet() {
	ctx := context.Background()

	_, err := s.store.Get(ctx, "credkit:clients")
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.Require().NoError(s.store.Set(ctx, "credkit:clients", []byte(`[]`)))
	got, err := s.store.Get(ctx, "credkit:clients")
	s.Require().NoError(err)
	s.Equal(`[]`, string(got))
}

func (s *RedisStoreSuite) TestConcurrentUpdates() {
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

// Two processes sharing one Redis must agree on the roster and reject
// duplicates written by each other.
func (s *RedisStoreSuite) TestRosterSharedAcrossInstances() {
	ctx := context.Background()
	first := service.New(s.store)
	second := service.New(New(s.redis.Client))

	req := models.AddClientRequest{
		FirstName: "Ana",
		LastName:  "Lopez",
		Email:     "ana@example.com",
		DOB:       "1990-05-01",
		Last4SSN:  "1234",
	}
	_, err := first.AddClient(ctx, req)
	s.Require().NoError(err)

	s.Len(second.Roster(ctx), 4)

	_, err = second.AddClient(ctx, req)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict), fmt.Sprint(err))
}
