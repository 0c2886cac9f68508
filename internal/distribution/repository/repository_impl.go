package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/raizsolar/backoffice/internal/distribution/domain"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListByPlant(ctx context.Context, db *gorm.DB, plantID snowflake.ID) ([]domain.Distribution, error) {
	var dists []domain.Distribution
	err := db.WithContext(ctx).
		Preload("Client").
		Where("plant_id = ?", plantID).
		Order("id asc").
		Find(&dists).Error
	if err != nil {
		return nil, err
	}
	return dists, nil
}

func (r *repo) ListByClient(ctx context.Context, db *gorm.DB, clientID snowflake.ID) ([]domain.Distribution, error) {
	var dists []domain.Distribution
	err := db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("id asc").
		Find(&dists).Error
	if err != nil {
		return nil, err
	}
	return dists, nil
}

func (r *repo) DeleteByPlant(ctx context.Context, db *gorm.DB, plantID snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Distribution{}, "plant_id = ?", plantID).Error
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, dist *domain.Distribution) error {
	return db.WithContext(ctx).Create(dist).Error
}
