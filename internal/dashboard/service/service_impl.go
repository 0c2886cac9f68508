package service

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	clientdomain "github.com/raizsolar/backoffice/internal/client/domain"
	"github.com/raizsolar/backoffice/internal/dashboard/domain"
	invoicedomain "github.com/raizsolar/backoffice/internal/invoice/domain"
	productiondomain "github.com/raizsolar/backoffice/internal/production/domain"
)

type Params struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

// Service aggregates the operator dashboard numbers. Read-only.
type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func New(p Params) domain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("dashboard.service"),
	}
}

func (s *Service) Summary(ctx context.Context) (domain.Summary, error) {
	var summary domain.Summary

	err := s.db.WithContext(ctx).
		Model(&invoicedomain.Invoice{}).
		Where("status_pago = ?", false).
		Count(&summary.OpenInvoicesCount).Error
	if err != nil {
		return domain.Summary{}, err
	}

	type sums struct {
		OpenValue  float64
		Production float64
		Margin     float64
	}
	var agg sums

	err = s.db.WithContext(ctx).
		Model(&invoicedomain.Invoice{}).
		Where("status_pago = ?", false).
		Select("COALESCE(SUM(total_value), 0) AS open_value").
		Scan(&agg.OpenValue).Error
	if err != nil {
		return domain.Summary{}, err
	}

	err = s.db.WithContext(ctx).
		Model(&productiondomain.Production{}).
		Select("COALESCE(SUM(kwh), 0)").
		Scan(&agg.Production).Error
	if err != nil {
		return domain.Summary{}, err
	}

	err = s.db.WithContext(ctx).
		Model(&invoicedomain.Invoice{}).
		Select("COALESCE(SUM(profit), 0)").
		Scan(&agg.Margin).Error
	if err != nil {
		return domain.Summary{}, err
	}

	var recent []clientdomain.Client
	err = s.db.WithContext(ctx).
		Model(&clientdomain.Client{}).
		Order("id desc").
		Limit(5).
		Find(&recent).Error
	if err != nil {
		return domain.Summary{}, err
	}

	summary.OpenInvoicesValue = agg.OpenValue
	summary.MonthlyProduction = agg.Production
	summary.MonthlyMargin = agg.Margin
	summary.RecentClients = recent
	return summary, nil
}
