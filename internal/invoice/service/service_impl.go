package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	clientdomain "github.com/raizsolar/backoffice/internal/client/domain"
	"github.com/raizsolar/backoffice/internal/config"
	"github.com/raizsolar/backoffice/internal/invoice/domain"
	"github.com/raizsolar/backoffice/internal/invoice/pdf"
	ledgerdomain "github.com/raizsolar/backoffice/internal/ledger/domain"
	"github.com/raizsolar/backoffice/pkg/db/pagination"
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Repo   domain.Repository
	Ledger ledgerdomain.Service
	Tariff *config.TariffConfigHolder
}

// Service builds invoices from requests plus billing defaults, and hands
// every balance-affecting operation to the credit ledger.
type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	genID  *snowflake.Node
	repo   domain.Repository
	ledger ledgerdomain.Service
	tariff *config.TariffConfigHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("invoice.service"),
		genID:  p.GenID,
		repo:   p.Repo,
		ledger: p.Ledger,
		tariff: p.Tariff,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateInvoiceRequest) (domain.Invoice, error) {
	var client clientdomain.Client
	if err := s.db.WithContext(ctx).First(&client, "id = ?", req.ClientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Invoice{}, domain.ErrClientNotFound
		}
		return domain.Invoice{}, err
	}

	tariff := s.tariff.Get()

	kwhValue := tariff.DefaultKwhValue
	if req.KwhValue != nil {
		kwhValue = *req.KwhValue
	}

	kwhValueOriginal := client.KwhValueOriginal
	if req.KwhValueOriginal != nil {
		kwhValueOriginal = *req.KwhValueOriginal
	}

	discount := client.NegotiatedDiscount
	if req.Discount != nil {
		discount = *req.Discount
	} else if discount == 0 {
		discount = tariff.DefaultDiscountPct
	}

	fixedCost := tariff.DefaultFixedCost
	if req.FixedCost != nil {
		fixedCost = *req.FixedCost
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = domain.StatusOpen
	}

	now := time.Now().UTC()
	invoice := domain.Invoice{
		ID:                   s.genID.Generate(),
		ClientID:             req.ClientID,
		Month:                strings.TrimSpace(req.Month),
		InvoiceNumber:        strings.TrimSpace(req.InvoiceNumber),
		ConsumptionKwh:       req.ConsumptionKwh,
		KwhValue:             kwhValue,
		KwhValueOriginal:     kwhValueOriginal,
		KwhValueInjection:    req.KwhValueInjection,
		CreditedBalance:      req.CreditedBalance,
		InvoiceValue:         req.InvoiceValue,
		FixedCost:            fixedCost,
		TotalInvoiced:        req.TotalInvoiced,
		AmountToCollect:      req.AmountToCollect,
		ValueWithoutDiscount: req.ValueWithoutDiscount,
		TotalValue:           req.TotalValue,
		OriginalValue:        req.OriginalValue,
		Discount:             discount,
		Profit:               req.Profit,
		Status:               status,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.ledger.RecordInvoice(ctx, &invoice); err != nil {
		return domain.Invoice{}, err
	}

	s.log.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("client_id", invoice.ClientID.String()),
		zap.String("month", invoice.Month),
	)
	return invoice, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (domain.Invoice, error) {
	invoice, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	if invoice == nil {
		return domain.Invoice{}, domain.ErrInvoiceNotFound
	}
	return *invoice, nil
}

func (s *Service) List(ctx context.Context, filter domain.ListInvoiceFilter, page pagination.Pagination) ([]domain.Invoice, error) {
	return s.repo.List(ctx, s.db, filter, page)
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req domain.UpdateInvoiceRequest) (domain.Invoice, error) {
	return s.ledger.ReviseInvoice(ctx, id, req)
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	return s.ledger.RemoveInvoice(ctx, id)
}

func (s *Service) RenderPDF(ctx context.Context, id snowflake.ID) ([]byte, error) {
	invoice, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrInvoiceNotFound
	}
	return pdf.Render(*invoice)
}
