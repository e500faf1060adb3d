package repository

import (
	"context"

	"swasthya-portal/internal/domain/entity"
	domainRepo "swasthya-portal/internal/domain/repository"
)

type userRepository struct {
	*collection[entity.User]
}

func NewUserRepository(store domainRepo.Store, locker *KeyLocker) domainRepo.UserRepository {
	return &userRepository{
		collection: newCollection[entity.User](store, locker, domainRepo.KeyUsers),
	}
}

// Create appends user unless its email is already registered. The check and
// the append happen in the same locked cycle.
func (r *userRepository) Create(ctx context.Context, user entity.User) error {
	return r.mutate(ctx, func(users []entity.User) ([]entity.User, error) {
		for _, existing := range users {
			if existing.Email == user.Email {
				return nil, domainRepo.ErrDuplicateEmail
			}
		}
		return append(users, user), nil
	})
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	users, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, nil
}
