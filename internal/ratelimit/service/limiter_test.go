package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voltid/internal/ratelimit/models"
	"voltid/internal/ratelimit/store/counter"
	dErrors "voltid/pkg/domain-errors"
)

func TestLimiterHit(t *testing.T) {
	ctx := context.Background()
	l := New(counter.NewInMemory(), Policy{Name: "otp_resend", Limit: 2, Window: time.Minute})

	_, err := l.Hit(ctx, "a@b.com")
	require.NoError(t, err)
	_, err = l.Hit(ctx, "a@b.com")
	require.NoError(t, err)

	res, err := l.Hit(ctx, "a@b.com")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeRateLimited))
	assert.False(t, res.Allowed)

	_, err = l.Hit(ctx, "other@b.com")
	assert.NoError(t, err, "subjects are independent")
}

func TestLimiterExceededAndReset(t *testing.T) {
	ctx := context.Background()
	l := New(counter.NewInMemory(), Policy{Name: "login", Limit: 1, Window: time.Minute})

	exceeded, err := l.Exceeded(ctx, "a@b.com")
	require.NoError(t, err)
	assert.False(t, exceeded)

	_, err = l.Hit(ctx, "a@b.com")
	require.NoError(t, err)
	exceeded, _ = l.Exceeded(ctx, "a@b.com")
	assert.True(t, exceeded)

	l.Reset(ctx, "a@b.com")
	exceeded, _ = l.Exceeded(ctx, "a@b.com")
	assert.False(t, exceeded)
}

type failingStore struct{}

func (failingStore) Allow(context.Context, string, int, time.Duration) (*models.Result, error) {
	return nil, errors.New("redis down")
}
func (failingStore) Reset(context.Context, string) error { return errors.New("redis down") }
func (failingStore) Count(context.Context, string, time.Duration) (int, error) {
	return 0, errors.New("redis down")
}

func TestLimiterFailsOpen(t *testing.T) {
	l := New(failingStore{}, Policy{Name: "otp_resend", Limit: 1, Window: time.Minute})
	res, err := l.Hit(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}
