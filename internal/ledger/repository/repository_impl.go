package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/raizsolar/backoffice/internal/ledger/domain"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertEntry(ctx context.Context, db *gorm.DB, entry *domain.CreditEntry) error {
	return db.WithContext(ctx).Create(entry).Error
}

func (r *repo) ListByClient(ctx context.Context, db *gorm.DB, clientID snowflake.ID) ([]domain.CreditEntry, error) {
	var entries []domain.CreditEntry
	err := db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at desc, id desc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repo) ListAdjustmentsByClient(ctx context.Context, db *gorm.DB, clientID snowflake.ID) ([]domain.CreditEntry, error) {
	var entries []domain.CreditEntry
	err := db.WithContext(ctx).
		Where("client_id = ? AND operation = ?", clientID, domain.OpAdjustment).
		Order("created_at desc, id desc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
