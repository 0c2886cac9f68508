package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/raizsolar/backoffice/internal/plant/domain"
	"github.com/raizsolar/backoffice/pkg/db/pagination"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, plant *domain.Plant) error {
	return db.WithContext(ctx).Create(plant).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Plant, error) {
	var plant domain.Plant
	err := db.WithContext(ctx).First(&plant, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plant, nil
}

func (r *repo) FindByUCNumber(ctx context.Context, db *gorm.DB, ucNumber string) (*domain.Plant, error) {
	var plant domain.Plant
	err := db.WithContext(ctx).First(&plant, "uc_number = ?", ucNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plant, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]domain.Plant, error) {
	var plants []domain.Plant
	stmt := page.Apply(db.WithContext(ctx).Model(&domain.Plant{}))
	if err := stmt.Order("created_at desc, id desc").Find(&plants).Error; err != nil {
		return nil, err
	}
	return plants, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, plant *domain.Plant) error {
	return db.WithContext(ctx).Save(plant).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Plant{}, "id = ?", id).Error
}
