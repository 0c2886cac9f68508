package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	ledgerdomain "github.com/raizsolar/backoffice/internal/ledger/domain"
	"github.com/raizsolar/backoffice/internal/production/domain"
	"github.com/raizsolar/backoffice/pkg/db/pagination"
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	Repo   domain.Repository
	Ledger ledgerdomain.Service
}

// Service serves production reads and hands every balance-affecting
// operation to the credit ledger.
type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	repo   domain.Repository
	ledger ledgerdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("production.service"),
		repo:   p.Repo,
		ledger: p.Ledger,
	}
}

func (s *Service) Record(ctx context.Context, plantID snowflake.ID, req domain.RecordProductionRequest) (domain.Production, error) {
	return s.ledger.RecordProduction(ctx, plantID, req)
}

func (s *Service) Revise(ctx context.Context, id snowflake.ID, req domain.ReviseProductionRequest) (domain.Production, error) {
	return s.ledger.ReviseProduction(ctx, id, req)
}

func (s *Service) Remove(ctx context.Context, id snowflake.ID) error {
	return s.ledger.RemoveProduction(ctx, id)
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (domain.Production, error) {
	production, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Production{}, err
	}
	if production == nil {
		return domain.Production{}, domain.ErrProductionNotFound
	}
	return *production, nil
}

func (s *Service) List(ctx context.Context, page pagination.Pagination) ([]domain.Production, error) {
	return s.repo.List(ctx, s.db, page)
}

func (s *Service) ListByPlant(ctx context.Context, plantID snowflake.ID) ([]domain.Production, error) {
	return s.repo.ListByPlant(ctx, s.db, plantID)
}
