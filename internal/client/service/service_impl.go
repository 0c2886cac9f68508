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
	"github.com/raizsolar/backoffice/internal/client/domain"
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
		log:   p.Log.Named("client.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateClientRequest) (domain.Client, error) {
	ucNumber := strings.TrimSpace(req.UCNumber)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if existing, err := s.repo.FindByUCNumber(ctx, s.db, ucNumber); err != nil {
		return domain.Client{}, err
	} else if existing != nil {
		return domain.Client{}, domain.ErrClientExists
	}
	if existing, err := s.repo.FindByEmail(ctx, s.db, email); err != nil {
		return domain.Client{}, err
	} else if existing != nil {
		return domain.Client{}, domain.ErrClientExists
	}

	encoded := ""
	if req.Password != "" {
		var err error
		encoded, err = password.Hash(req.Password)
		if err != nil {
			return domain.Client{}, err
		}
	}

	paymentDay := req.PaymentDay
	if paymentDay <= 0 || paymentDay > 28 {
		paymentDay = 10
	}

	now := time.Now().UTC()
	client := domain.Client{
		ID:                 s.genID.Generate(),
		Name:               strings.TrimSpace(req.Name),
		Address:            strings.TrimSpace(req.Address),
		UCNumber:           ucNumber,
		Email:              email,
		Password:           encoded,
		Phone:              strings.TrimSpace(req.Phone),
		PaymentDay:         paymentDay,
		KwhValueOriginal:   req.KwhValueOriginal,
		NegotiatedDiscount: req.NegotiatedDiscount,
		CurrentCredits:     0,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.Insert(ctx, s.db, &client); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Client{}, domain.ErrClientExists
		}
		return domain.Client{}, err
	}

	s.log.Info("client created",
		zap.String("client_id", client.ID.String()),
		zap.String("uc_number", client.UCNumber),
	)
	return client, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (domain.Client, error) {
	client, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Client{}, err
	}
	if client == nil {
		return domain.Client{}, domain.ErrClientNotFound
	}
	return *client, nil
}

func (s *Service) GetByUCNumber(ctx context.Context, ucNumber string) (domain.Client, error) {
	client, err := s.repo.FindByUCNumber(ctx, s.db, strings.TrimSpace(ucNumber))
	if err != nil {
		return domain.Client{}, err
	}
	if client == nil {
		return domain.Client{}, domain.ErrClientNotFound
	}
	return *client, nil
}

func (s *Service) List(ctx context.Context, page pagination.Pagination) ([]domain.Client, error) {
	return s.repo.List(ctx, s.db, page)
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req domain.UpdateClientRequest) (domain.Client, error) {
	client, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Client{}, err
	}
	if client == nil {
		return domain.Client{}, domain.ErrClientNotFound
	}

	if req.Name != nil {
		client.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		client.Address = strings.TrimSpace(*req.Address)
	}
	if req.UCNumber != nil {
		client.UCNumber = strings.TrimSpace(*req.UCNumber)
	}
	if req.Email != nil {
		client.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Password != nil && *req.Password != "" {
		encoded, err := password.Hash(*req.Password)
		if err != nil {
			return domain.Client{}, err
		}
		client.Password = encoded
	}
	if req.Phone != nil {
		client.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.PaymentDay != nil {
		client.PaymentDay = *req.PaymentDay
	}
	if req.KwhValueOriginal != nil {
		client.KwhValueOriginal = *req.KwhValueOriginal
	}
	if req.NegotiatedDiscount != nil {
		client.NegotiatedDiscount = *req.NegotiatedDiscount
	}
	if req.IsActive != nil {
		client.IsActive = *req.IsActive
	}
	client.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, client); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Client{}, domain.ErrClientExists
		}
		return domain.Client{}, err
	}
	return *client, nil
}

func (s *Service) UpdateProfile(ctx context.Context, id snowflake.ID, req domain.UpdateProfileRequest) (domain.Client, error) {
	client, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Client{}, err
	}
	if client == nil {
		return domain.Client{}, domain.ErrClientNotFound
	}

	if req.Name != nil {
		client.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		client.Address = strings.TrimSpace(*req.Address)
	}
	if req.Email != nil {
		client.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Password != nil && *req.Password != "" {
		encoded, err := password.Hash(*req.Password)
		if err != nil {
			return domain.Client{}, err
		}
		client.Password = encoded
	}
	if req.Phone != nil {
		client.Phone = strings.TrimSpace(*req.Phone)
	}
	client.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, client); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Client{}, domain.ErrClientExists
		}
		return domain.Client{}, err
	}
	return *client, nil
}

// Delete removes the client together with its distributions, invoices and
// ledger history.
func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	client, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if client == nil {
		return domain.ErrClientNotFound
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM distributions WHERE client_id = ?`, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM invoices WHERE client_id = ?`, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM credit_entries WHERE client_id = ?`, id).Error; err != nil {
			return err
		}
		return s.repo.Delete(ctx, tx, id)
	})
}
