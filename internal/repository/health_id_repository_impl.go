package repository

import (
	"context"

	"swasthya-portal/internal/domain/entity"
	domainRepo "swasthya-portal/internal/domain/repository"
)

type healthIDRepository struct {
	store domainRepo.Store
}

func NewHealthIDRepository(store domainRepo.Store) domainRepo.HealthIDRepository {
	return &healthIDRepository{store: store}
}

func healthIDKey(userID string) string {
	return domainRepo.KeyHealthIDPrefix + userID
}

func (r *healthIDRepository) FindByUserID(ctx context.Context, userID string) (*entity.HealthID, error) {
	var healthID entity.HealthID
	found, err := r.store.Read(ctx, healthIDKey(userID), &healthID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &healthID, nil
}

func (r *healthIDRepository) SaveIfAbsent(ctx context.Context, healthID *entity.HealthID) (*entity.HealthID, error) {
	written, err := r.store.WriteIfAbsent(ctx, healthIDKey(healthID.UserID), healthID)
	if err != nil {
		return nil, err
	}
	if written {
		return healthID, nil
	}
	return r.FindByUserID(ctx, healthID.UserID)
}
