package tree

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// StoreError represents an error related with tree stores
type StoreError string

// ErrNotFound is returned by stores asked for an id they do not hold
const ErrNotFound = StoreError("tree not found")

func (se StoreError) Error() string {
	return string(se)
}

/*
Store is an interface to manage a store where trained trees can be saved,
retrieved and deleted.

All its methods take a context that may allow cancelling the operation
(thus forcing the return of an error) if the implementation allows it.
*/
type Store interface {
	// Save takes a tree and stores it, returning the ID generated
	// for it or an error if the tree cannot be stored.
	Save(ctx context.Context, t *Tree) (string, error)
	// Load takes an id and returns the tree in the store with
	// that id, ErrNotFound if there is none, or an error if the
	// store cannot be queried.
	Load(ctx context.Context, id string) (*Tree, error)
	// Delete takes an id and removes the tree with that id from
	// the store. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error
	// Close closes the store, implementations should free any
	// resources in use before returning (unless the context
	// expires).
	Close(ctx context.Context) error
}

type memoryStore struct {
	trees map[string]*Tree
	lock  *sync.RWMutex
}

// NewMemoryStore returns an implementation
// of Store with the process memory space
// as underlying backend
func NewMemoryStore() Store {
	return &memoryStore{
		trees: make(map[string]*Tree),
		lock:  &sync.RWMutex{},
	}
}

func (ms *memoryStore) Save(ctx context.Context, t *Tree) (string, error) {
	var id string
	err := ms.withLock(ctx, func(ctx context.Context) error {
		taken := true
		for taken {
			if err := ctx.Err(); err != nil {
				return err
			}
			id = uuid.New().String()
			_, taken = ms.trees[id]
		}
		ms.trees[id] = t
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (ms *memoryStore) Load(ctx context.Context, id string) (*Tree, error) {
	var t *Tree
	err := ms.withRLock(ctx, func(ctx context.Context) error {
		var ok bool
		if t, ok = ms.trees[id]; !ok {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (ms *memoryStore) Delete(ctx context.Context, id string) error {
	return ms.withLock(ctx, func(ctx context.Context) error {
		delete(ms.trees, id)
		return nil
	})
}

func (ms *memoryStore) Close(ctx context.Context) error {
	return nil
}

func (ms *memoryStore) withLock(ctx context.Context, f func(ctx context.Context) error) error {
	gotLock := make(chan struct{})
	go func() {
		ms.lock.Lock()
		select {
		case <-ctx.Done():
			ms.lock.Unlock()
		case gotLock <- struct{}{}:
		}
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-gotLock:
		defer ms.lock.Unlock()
	}
	return f(ctx)
}

func (ms *memoryStore) withRLock(ctx context.Context, f func(ctx context.Context) error) error {
	gotLock := make(chan struct{})
	go func() {
		ms.lock.RLock()
		select {
		case <-ctx.Done():
			ms.lock.RUnlock()
		case gotLock <- struct{}{}:
		}
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-gotLock:
		defer ms.lock.RUnlock()
	}
	return f(ctx)
}
