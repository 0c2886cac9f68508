package service

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	clientdomain "github.com/raizsolar/backoffice/internal/client/domain"
	"github.com/raizsolar/backoffice/internal/distribution/domain"
	"github.com/raizsolar/backoffice/internal/observability/metrics"
	plantdomain "github.com/raizsolar/backoffice/internal/plant/domain"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("distribution.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

// Set replaces a plant's allocation table atomically. The whole batch is
// rejected when the running percentage total passes the cap; nothing is kept
// from a failed batch.
func (s *Service) Set(ctx context.Context, plantID snowflake.ID, req domain.SetDistributionsRequest) ([]domain.Distribution, error) {
	var plant plantdomain.Plant
	if err := s.db.WithContext(ctx).First(&plant, "id = ?", plantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPlantNotFound
		}
		return nil, err
	}

	for _, share := range req.Shares {
		if share.Percentage <= 0 {
			return nil, domain.ErrInvalidShare
		}
	}

	now := time.Now().UTC()
	created := make([]domain.Distribution, 0, len(req.Shares))

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.DeleteByPlant(ctx, tx, plantID); err != nil {
			return err
		}

		total := 0.0
		for _, share := range req.Shares {
			var client clientdomain.Client
			if err := tx.First(&client, "id = ?", share.ClientID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.ErrClientNotFound
				}
				return err
			}

			total += share.Percentage
			if total > domain.PercentageCap {
				s.metrics.RecordCapViolation(ctx)
				return domain.ErrCapExceeded
			}

			dist := domain.Distribution{
				ID:         s.genID.Generate(),
				PlantID:    plantID,
				ClientID:   share.ClientID,
				Percentage: share.Percentage,
				CreatedAt:  now,
			}
			if err := s.repo.Insert(ctx, tx, &dist); err != nil {
				return err
			}
			created = append(created, dist)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("distributions replaced",
		zap.String("plant_id", plantID.String()),
		zap.Int("shares", len(created)),
	)
	return created, nil
}

func (s *Service) ListByPlant(ctx context.Context, plantID snowflake.ID) ([]domain.Distribution, error) {
	var plant plantdomain.Plant
	if err := s.db.WithContext(ctx).First(&plant, "id = ?", plantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPlantNotFound
		}
		return nil, err
	}
	return s.repo.ListByPlant(ctx, s.db, plantID)
}
