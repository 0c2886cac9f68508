package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/raizsolar/backoffice/internal/auth/password"
	"github.com/raizsolar/backoffice/internal/operator/domain"
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
		log:   p.Log.Named("operator.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateOperatorRequest) (domain.Operator, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	cpf := strings.TrimSpace(req.CPF)

	if existing, err := s.repo.FindByEmail(ctx, s.db, email); err != nil {
		return domain.Operator{}, err
	} else if existing != nil {
		return domain.Operator{}, domain.ErrOperatorExists
	}
	if cpf != "" {
		if existing, err := s.repo.FindByCPF(ctx, s.db, cpf); err != nil {
			return domain.Operator{}, err
		} else if existing != nil {
			return domain.Operator{}, domain.ErrOperatorExists
		}
	}

	encoded, err := password.Hash(req.Password)
	if err != nil {
		return domain.Operator{}, err
	}

	now := time.Now().UTC()
	operator := domain.Operator{
		ID:        s.genID.Generate(),
		Name:      strings.TrimSpace(req.Name),
		Email:     email,
		CPF:       cpf,
		Password:  encoded,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &operator); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Operator{}, domain.ErrOperatorExists
		}
		return domain.Operator{}, err
	}

	s.log.Info("operator created", zap.String("operator_id", operator.ID.String()))
	return operator, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (domain.Operator, error) {
	operator, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Operator{}, err
	}
	if operator == nil {
		return domain.Operator{}, domain.ErrOperatorNotFound
	}
	return *operator, nil
}

func (s *Service) List(ctx context.Context, page pagination.Pagination) ([]domain.Operator, error) {
	return s.repo.List(ctx, s.db, page)
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req domain.UpdateOperatorRequest) (domain.Operator, error) {
	operator, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Operator{}, err
	}
	if operator == nil {
		return domain.Operator{}, domain.ErrOperatorNotFound
	}

	if req.Name != nil {
		operator.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		operator.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.CPF != nil {
		operator.CPF = strings.TrimSpace(*req.CPF)
	}
	if req.Password != nil && *req.Password != "" {
		encoded, err := password.Hash(*req.Password)
		if err != nil {
			return domain.Operator{}, err
		}
		operator.Password = encoded
	}
	if req.IsActive != nil {
		operator.IsActive = *req.IsActive
	}
	operator.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, operator); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Operator{}, domain.ErrOperatorExists
		}
		return domain.Operator{}, err
	}
	return *operator, nil
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	operator, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if operator == nil {
		return domain.ErrOperatorNotFound
	}
	return s.repo.Delete(ctx, s.db, id)
}
