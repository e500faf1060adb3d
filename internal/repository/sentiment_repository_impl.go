package repository

import (
	"context"
	"fmt"

	"swasthya-portal/internal/domain/entity"
	domainRepo "swasthya-portal/internal/domain/repository"
)

type sentimentRepository struct {
	store  domainRepo.Store
	locker *KeyLocker
}

func NewSentimentRepository(store domainRepo.Store, locker *KeyLocker) domainRepo.SentimentRepository {
	return &sentimentRepository{store: store, locker: locker}
}

func (r *sentimentRepository) FindAll(ctx context.Context) (map[string]entity.SentimentAnalysis, error) {
	analyses := map[string]entity.SentimentAnalysis{}
	if _, err := r.store.Read(ctx, domainRepo.KeySentimentAnalyses, &analyses); err != nil {
		return nil, err
	}
	// a stored null decodes to a nil map
	if analyses == nil {
		analyses = map[string]entity.SentimentAnalysis{}
	}
	return analyses, nil
}

func (r *sentimentRepository) Save(ctx context.Context, analysis entity.SentimentAnalysis) error {
	unlock := r.locker.Lock(domainRepo.KeySentimentAnalyses)
	defer unlock()

	analyses, err := r.FindAll(ctx)
	if err != nil {
		return err
	}
	analyses[analysis.FeedbackID] = analysis

	if err := r.store.Write(ctx, domainRepo.KeySentimentAnalyses, analyses); err != nil {
		return fmt.Errorf("write sentiment analyses: %w", err)
	}
	return nil
}
