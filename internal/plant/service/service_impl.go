package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/raizsolar/backoffice/internal/plant/domain"
	"github.com/raizsolar/backoffice/pkg/db"
	"github.com/raizsolar/backoffice/pkg/db/pagination"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("plant.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreatePlantRequest) (domain.Plant, error) {
	name := strings.TrimSpace(req.Name)
	ucNumber := strings.TrimSpace(req.UCNumber)

	existing, err := s.repo.FindByUCNumber(ctx, s.db, ucNumber)
	if err != nil {
		return domain.Plant{}, err
	}
	if existing != nil {
		return domain.Plant{}, domain.ErrPlantExists
	}

	now := time.Now().UTC()
	plant := domain.Plant{
		ID:              s.genID.Generate(),
		Name:            name,
		Slug:            slug.Make(name),
		Address:         strings.TrimSpace(req.Address),
		UCNumber:        ucNumber,
		CapacityKw:      req.CapacityKw,
		AcquisitionCost: req.AcquisitionCost,
		MaintenanceCost: req.MaintenanceCost,
		PixKey:          strings.TrimSpace(req.PixKey),
		Metadata:        datatypes.JSONMap{},
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Insert(ctx, s.db, &plant); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Plant{}, domain.ErrPlantExists
		}
		return domain.Plant{}, err
	}

	s.log.Info("plant created",
		zap.String("plant_id", plant.ID.String()),
		zap.String("uc_number", plant.UCNumber),
	)
	return plant, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (domain.Plant, error) {
	plant, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Plant{}, err
	}
	if plant == nil {
		return domain.Plant{}, domain.ErrPlantNotFound
	}
	return *plant, nil
}

func (s *Service) List(ctx context.Context, page pagination.Pagination) ([]domain.Plant, error) {
	return s.repo.List(ctx, s.db, page)
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req domain.UpdatePlantRequest) (domain.Plant, error) {
	plant, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Plant{}, err
	}
	if plant == nil {
		return domain.Plant{}, domain.ErrPlantNotFound
	}

	if req.Name != nil {
		plant.Name = strings.TrimSpace(*req.Name)
		plant.Slug = slug.Make(plant.Name)
	}
	if req.Address != nil {
		plant.Address = strings.TrimSpace(*req.Address)
	}
	if req.UCNumber != nil {
		plant.UCNumber = strings.TrimSpace(*req.UCNumber)
	}
	if req.CapacityKw != nil {
		plant.CapacityKw = *req.CapacityKw
	}
	if req.AcquisitionCost != nil {
		plant.AcquisitionCost = *req.AcquisitionCost
	}
	if req.MaintenanceCost != nil {
		plant.MaintenanceCost = *req.MaintenanceCost
	}
	if req.PixKey != nil {
		plant.PixKey = strings.TrimSpace(*req.PixKey)
	}
	if req.IsActive != nil {
		plant.IsActive = *req.IsActive
	}
	plant.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, plant); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Plant{}, domain.ErrPlantExists
		}
		return domain.Plant{}, err
	}
	return *plant, nil
}

// Delete removes the plant together with its distribution table and
// production history. Client balances are left as they stand.
func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	plant, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if plant == nil {
		return domain.ErrPlantNotFound
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM distributions WHERE plant_id = ?`, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM productions WHERE plant_id = ?`, id).Error; err != nil {
			return err
		}
		return s.repo.Delete(ctx, tx, id)
	})
}
