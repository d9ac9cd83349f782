package objectstore

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voltid/pkg/platform/sentinel"
)

func TestInMemoryLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory("uploads")
	key := "kyc-documents/u1/license/abc"

	raw, err := s.PresignedUploadURL(ctx, key, "image/jpeg", 5*time.Minute)
	require.NoError(t, err)
	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/"+key, u.Path)
	assert.Equal(t, "300", u.Query().Get("expires"))

	s.Put(key, []byte("jpeg"))
	data, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg"), data)

	require.NoError(t, s.Delete(ctx, key))
	assert.Equal(t, 1, s.Deletes(key))
	assert.False(t, s.Exists(key))

	_, err = s.Get(ctx, key)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}
