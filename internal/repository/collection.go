package repository

import (
	"context"
	"fmt"

	domainRepo "swasthya-portal/internal/domain/repository"
)

// collection implements domainRepo.Collection over one JSON array key.
type collection[T domainRepo.Record] struct {
	store  domainRepo.Store
	locker *KeyLocker
	key    string
}

func newCollection[T domainRepo.Record](store domainRepo.Store, locker *KeyLocker, key string) *collection[T] {
	return &collection[T]{
		store:  store,
		locker: locker,
		key:    key,
	}
}

func (c *collection[T]) FindAll(ctx context.Context) ([]T, error) {
	var items []T
	if _, err := c.store.Read(ctx, c.key, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *collection[T]) FindByID(ctx context.Context, id string) (*T, error) {
	items, err := c.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].GetID() == id {
			return &items[i], nil
		}
	}
	return nil, nil
}

func (c *collection[T]) Create(ctx context.Context, item T) error {
	return c.mutate(ctx, func(items []T) ([]T, error) {
		return append(items, item), nil
	})
}

func (c *collection[T]) Update(ctx context.Context, id string, fn func(*T) error) (*T, error) {
	var updated T
	err := c.mutate(ctx, func(items []T) ([]T, error) {
		for i := range items {
			if items[i].GetID() != id {
				continue
			}
			if err := fn(&items[i]); err != nil {
				return nil, err
			}
			updated = items[i]
			return items, nil
		}
		return nil, domainRepo.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *collection[T]) Delete(ctx context.Context, id string) error {
	return c.mutate(ctx, func(items []T) ([]T, error) {
		for i := range items {
			if items[i].GetID() == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, domainRepo.ErrNotFound
	})
}

// mutate runs one read-modify-write cycle under the key mutex. Nothing is
// written when fn fails.
func (c *collection[T]) mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	unlock := c.locker.Lock(c.key)
	defer unlock()

	items, err := c.FindAll(ctx)
	if err != nil {
		return err
	}

	next, err := fn(items)
	if err != nil {
		return err
	}
	if next == nil {
		next = []T{}
	}

	if err := c.store.Write(ctx, c.key, next); err != nil {
		return fmt.Errorf("write collection %s: %w", c.key, err)
	}
	return nil
}
