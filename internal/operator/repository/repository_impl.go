package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/raizsolar/backoffice/internal/operator/domain"
	"github.com/raizsolar/backoffice/pkg/db/pagination"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, operator *domain.Operator) error {
	return db.WithContext(ctx).Create(operator).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Operator, error) {
	return r.findOne(ctx, db, "id = ?", id)
}

func (r *repo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.Operator, error) {
	return r.findOne(ctx, db, "email = ?", email)
}

func (r *repo) FindByCPF(ctx context.Context, db *gorm.DB, cpf string) (*domain.Operator, error) {
	return r.findOne(ctx, db, "cpf = ?", cpf)
}

func (r *repo) findOne(ctx context.Context, db *gorm.DB, query string, arg any) (*domain.Operator, error) {
	var operator domain.Operator
	err := db.WithContext(ctx).First(&operator, query, arg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &operator, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]domain.Operator, error) {
	var operators []domain.Operator
	stmt := page.Apply(db.WithContext(ctx).Model(&domain.Operator{}))
	if err := stmt.Order("created_at desc, id desc").Find(&operators).Error; err != nil {
		return nil, err
	}
	return operators, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, operator *domain.Operator) error {
	return db.WithContext(ctx).Save(operator).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Operator{}, "id = ?", id).Error
}
