//go:build integration

package counter_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"voltid/internal/ratelimit/store/counter"
	"voltid/pkg/testutil/containers"
)

type RedisSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *counter.Redis
}

func TestRedisSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisSuite))
}

func (s *RedisSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.store = counter.NewRedis(s.redis.Client, "test")
}

func (s *RedisSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisSuite) TestAllowUpToLimit() {
	ctx := context.Background()
	key := "otp:PHONE:" + uuid.NewString()

	for i := 1; i <= 3; i++ {
		res, err := s.store.Allow(ctx, key, 3, time.Minute)
		s.Require().NoError(err)
		s.True(res.Allowed)
		s.Equal(3-i, res.Remaining)
	}
	res, err := s.store.Allow(ctx, key, 3, time.Minute)
	s.Require().NoError(err)
	s.False(res.Allowed)

	n, err := s.store.Count(ctx, key, time.Minute)
	s.Require().NoError(err)
	s.Equal(3, n)

	s.Require().NoError(s.store.Reset(ctx, key))
	res, err = s.store.Allow(ctx, key, 3, time.Minute)
	s.Require().NoError(err)
	s.True(res.Allowed)
}
