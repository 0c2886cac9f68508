package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/raizsolar/backoffice/internal/production/domain"
	"github.com/raizsolar/backoffice/pkg/db/pagination"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Production, error) {
	var production domain.Production
	err := db.WithContext(ctx).Preload("Plant").First(&production, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &production, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]domain.Production, error) {
	var productions []domain.Production
	stmt := page.Apply(db.WithContext(ctx).Model(&domain.Production{}).Preload("Plant"))
	if err := stmt.Order("month desc, id desc").Find(&productions).Error; err != nil {
		return nil, err
	}
	return productions, nil
}

func (r *repo) ListByPlant(ctx context.Context, db *gorm.DB, plantID snowflake.ID) ([]domain.Production, error) {
	var productions []domain.Production
	err := db.WithContext(ctx).
		Where("plant_id = ?", plantID).
		Order("month desc, id desc").
		Find(&productions).Error
	if err != nil {
		return nil, err
	}
	return productions, nil
}
