package tree

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	tr := testTree()
	id, err := s.Save(ctx, tr)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	other, err := s.Save(ctx, tr)
	require.NoError(t, err)
	assert.NotEqual(t, id, other)

	loaded, err := s.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, tr.String(), loaded.String())

	require.NoError(t, s.Delete(ctx, id))
	_, err = s.Load(ctx, id)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.NoError(t, s.Delete(ctx, id))
}

func TestMemoryStoreCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewMemoryStore()
	_, err := s.Save(ctx, testTree())
	assert.Error(t, err)
	_, err = s.Load(ctx, "missing")
	assert.Error(t, err)
}
