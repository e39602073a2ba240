package userstore

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemStore is an in-memory Store. Users are kept in insertion order.
type MemStore struct {
	users []User
	mu    sync.RWMutex
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) AddUser(ctx context.Context, name, login string) (uuid.UUID, error) {
	select {
	case <-ctx.Done():
		return uuid.Nil, ctx.Err()
	default:
	}
	if err := validate(name, login); err != nil {
		return uuid.Nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Login == login {
			return uuid.Nil, ErrDuplicateLogin
		}
	}
	user := User{ID: uuid.New(), Name: name, Login: login}
	s.users = append(s.users, user)
	return user.ID, nil
}

func (s *MemStore) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.find(ctx, func(u User) bool { return u.ID == id })
}

func (s *MemStore) FindUserByName(ctx context.Context, name string) (*User, error) {
	return s.find(ctx, func(u User) bool { return u.Name == name })
}

// Len returns the number of stored users.
func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

func (s *MemStore) find(ctx context.Context, match func(User) bool) (*User, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, ErrNotFound
}
