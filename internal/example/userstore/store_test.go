package userstore

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeContract runs the behavior shared by every Store implementation.
func storeContract(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("add and lookup", func(t *testing.T) {
		id, err := s.AddUser(ctx, "Tom", "tomxx2")
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)

		u, err := s.GetUser(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, &User{ID: id, Name: "Tom", Login: "tomxx2"}, u)

		u, err = s.FindUserByName(ctx, "Tom")
		require.NoError(t, err)
		assert.Equal(t, id, u.ID)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := s.AddUser(ctx, "", "login")
		assert.ErrorIs(t, err, ErrNameRequired)
		assert.EqualError(t, err, "please provide name")

		_, err = s.AddUser(ctx, "Laura", "")
		assert.ErrorIs(t, err, ErrLoginRequired)
		assert.EqualError(t, err, "please provide login")

		_, err = s.FindUserByName(ctx, "Laura")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("duplicate login", func(t *testing.T) {
		_, err := s.AddUser(ctx, "Ann", "ann")
		require.NoError(t, err)
		_, err = s.AddUser(ctx, "Anna", "ann")
		assert.ErrorIs(t, err, ErrDuplicateLogin)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := s.GetUser(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMemStore(t *testing.T) {
	s := NewMemStore()
	storeContract(t, s)
	assert.Equal(t, 2, s.Len())
}

func TestMemStore_ContextCancelled(t *testing.T) {
	s := NewMemStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.AddUser(ctx, "Tom", "tom")
	assert.ErrorIs(t, err, context.Canceled)
	_, err = s.FindUserByName(ctx, "Tom")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemStore_ReturnsCopies(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	id, err := s.AddUser(ctx, "Tom", "tom")
	require.NoError(t, err)

	u, err := s.GetUser(ctx, id)
	require.NoError(t, err)
	u.Name = "changed"

	u, err = s.GetUser(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Tom", u.Name)
}

func TestPGStore(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN is not set")
	}

	ctx := context.Background()
	s, err := NewPGStore(ctx, dsn)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Truncate(ctx))
	require.NoError(t, s.Ping(ctx))
	storeContract(t, s)
}
