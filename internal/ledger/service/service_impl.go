package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/oklog/ulid/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	clientdomain "github.com/raizsolar/backoffice/internal/client/domain"
	distributiondomain "github.com/raizsolar/backoffice/internal/distribution/domain"
	invoicedomain "github.com/raizsolar/backoffice/internal/invoice/domain"
	"github.com/raizsolar/backoffice/internal/ledger/domain"
	"github.com/raizsolar/backoffice/internal/observability/metrics"
	plantdomain "github.com/raizsolar/backoffice/internal/plant/domain"
	productiondomain "github.com/raizsolar/backoffice/internal/production/domain"
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
		log:     p.Log.Named("ledger.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

// delta is one pending balance mutation, computed before anything is
// written so a failed fan-out leaves no partial state.
type delta struct {
	clientID snowflake.ID
	amount   float64
}

// lockClient reads the client row under a row lock, pinning the balance for
// the rest of the transaction. sqlite has no FOR UPDATE; its writes already
// serialize on the database lock.
func (s *Service) lockClient(ctx context.Context, tx *gorm.DB, clientID snowflake.ID) (*clientdomain.Client, error) {
	stmt := tx.WithContext(ctx)
	if tx.Dialector.Name() != "sqlite" {
		stmt = stmt.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var client clientdomain.Client
	if err := stmt.First(&client, "id = ?", clientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	return &client, nil
}

// applyDelta moves a locked client's balance and appends the matching
// ledger entry.
func (s *Service) applyDelta(ctx context.Context, tx *gorm.DB, client *clientdomain.Client, amount float64, operation string, productionID, invoiceID *snowflake.ID, reason string) (domain.CreditEntry, error) {
	client.CurrentCredits += amount

	now := time.Now().UTC()
	err := tx.WithContext(ctx).
		Model(&clientdomain.Client{}).
		Where("id = ?", client.ID).
		Updates(map[string]any{
			"current_credits": client.CurrentCredits,
			"updated_at":      now,
		}).Error
	if err != nil {
		return domain.CreditEntry{}, err
	}

	direction := domain.DirectionCredit
	if amount < 0 {
		direction = domain.DirectionDebit
	}

	// The reference is the id quoted to clients on disputes; ULIDs sort by
	// creation time, which keeps support queries cheap.
	entry := domain.CreditEntry{
		ID:           s.genID.Generate(),
		Reference:    ulid.Make().String(),
		ClientID:     client.ID,
		Operation:    operation,
		Direction:    direction,
		Amount:       amount,
		BalanceAfter: client.CurrentCredits,
		ProductionID: productionID,
		InvoiceID:    invoiceID,
		Reason:       reason,
		CreatedAt:    now,
	}
	if err := s.repo.InsertEntry(ctx, tx, &entry); err != nil {
		return domain.CreditEntry{}, err
	}

	s.metrics.RecordCreditEntry(ctx, operation, direction)
	return entry, nil
}

// fanOut applies one kwh amount across a plant's current distribution
// table. Deltas are computed up front and applied in client-id order so
// concurrent fan-outs acquire row locks in the same sequence.
func (s *Service) fanOut(ctx context.Context, tx *gorm.DB, plantID snowflake.ID, kwh float64, operation string, productionID snowflake.ID) error {
	var dists []distributiondomain.Distribution
	err := tx.WithContext(ctx).
		Where("plant_id = ?", plantID).
		Find(&dists).Error
	if err != nil {
		return err
	}

	deltas := make([]delta, 0, len(dists))
	for _, dist := range dists {
		deltas = append(deltas, delta{
			clientID: dist.ClientID,
			amount:   dist.Percentage / 100 * kwh,
		})
	}
	sort.Slice(deltas, func(i, j int) bool { return deltas[i].clientID < deltas[j].clientID })

	prodID := productionID
	for _, d := range deltas {
		client, err := s.lockClient(ctx, tx, d.clientID)
		if err != nil {
			return err
		}
		if _, err := s.applyDelta(ctx, tx, client, d.amount, operation, &prodID, nil, ""); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) RecordProduction(ctx context.Context, plantID snowflake.ID, req productiondomain.RecordProductionRequest) (productiondomain.Production, error) {
	var plant plantdomain.Plant
	if err := s.db.WithContext(ctx).First(&plant, "id = ?", plantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return productiondomain.Production{}, productiondomain.ErrPlantNotFound
		}
		return productiondomain.Production{}, err
	}

	now := time.Now().UTC()
	production := productiondomain.Production{
		ID:        s.genID.Generate(),
		PlantID:   plantID,
		Month:     strings.TrimSpace(req.Month),
		Kwh:       req.Kwh,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&production).Error; err != nil {
			return err
		}
		return s.fanOut(ctx, tx, plantID, production.Kwh, domain.OpProductionRecord, production.ID)
	})
	if err != nil {
		return productiondomain.Production{}, err
	}

	s.metrics.RecordProduction(ctx, "record")
	s.log.Info("production recorded",
		zap.String("plant_id", plantID.String()),
		zap.String("month", production.Month),
		zap.Float64("kwh", production.Kwh),
	)
	return production, nil
}

// ReviseProduction applies the kwh difference through the plant's current
// distribution table. Only the delta moves: shares already credited under an
// older distribution table stay as they were applied.
func (s *Service) ReviseProduction(ctx context.Context, id snowflake.ID, req productiondomain.ReviseProductionRequest) (productiondomain.Production, error) {
	var production productiondomain.Production

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&production, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return productiondomain.ErrProductionNotFound
			}
			return err
		}

		if req.Month != nil {
			production.Month = strings.TrimSpace(*req.Month)
		}
		if req.Kwh != nil {
			diff := *req.Kwh - production.Kwh
			if diff != 0 {
				if err := s.fanOut(ctx, tx, production.PlantID, diff, domain.OpProductionRevise, production.ID); err != nil {
					return err
				}
			}
			production.Kwh = *req.Kwh
		}
		production.UpdatedAt = time.Now().UTC()

		return tx.Save(&production).Error
	})
	if err != nil {
		return productiondomain.Production{}, err
	}

	s.metrics.RecordProduction(ctx, "revise")
	return production, nil
}

// RemoveProduction reverses the full recorded amount through the current
// distribution table and deletes the record.
func (s *Service) RemoveProduction(ctx context.Context, id snowflake.ID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var production productiondomain.Production
		if err := tx.First(&production, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return productiondomain.ErrProductionNotFound
			}
			return err
		}

		if err := s.fanOut(ctx, tx, production.PlantID, -production.Kwh, domain.OpProductionRemove, production.ID); err != nil {
			return err
		}
		return tx.Delete(&productiondomain.Production{}, "id = ?", id).Error
	})
	if err != nil {
		return err
	}

	s.metrics.RecordProduction(ctx, "remove")
	return nil
}

// RecordInvoice persists a pre-built invoice and debits the consumed credit
// from the client's balance. Balances may go negative.
func (s *Service) RecordInvoice(ctx context.Context, invoice *invoicedomain.Invoice) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		client, err := s.lockClient(ctx, tx, invoice.ClientID)
		if err != nil {
			return err
		}

		if err := tx.Create(invoice).Error; err != nil {
			return err
		}

		if invoice.CreditedBalance > 0 {
			invID := invoice.ID
			if _, err := s.applyDelta(ctx, tx, client, -invoice.CreditedBalance, domain.OpInvoiceRecord, nil, &invID, ""); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.metrics.RecordInvoice(ctx, "record")
	return nil
}

// ReviseInvoice applies the credited-balance difference (old minus new) to
// the client's balance before overwriting the invoice fields.
func (s *Service) ReviseInvoice(ctx context.Context, id snowflake.ID, req invoicedomain.UpdateInvoiceRequest) (invoicedomain.Invoice, error) {
	var invoice invoicedomain.Invoice

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&invoice, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return invoicedomain.ErrInvoiceNotFound
			}
			return err
		}

		if req.CreditedBalance != nil {
			diff := invoice.CreditedBalance - *req.CreditedBalance
			if diff != 0 {
				client, err := s.lockClient(ctx, tx, invoice.ClientID)
				if err != nil {
					return err
				}
				invID := invoice.ID
				if _, err := s.applyDelta(ctx, tx, client, diff, domain.OpInvoiceRevise, nil, &invID, ""); err != nil {
					return err
				}
			}
			invoice.CreditedBalance = *req.CreditedBalance
		}

		applyInvoiceUpdate(&invoice, req)
		invoice.UpdatedAt = time.Now().UTC()

		return tx.Save(&invoice).Error
	})
	if err != nil {
		return invoicedomain.Invoice{}, err
	}

	s.metrics.RecordInvoice(ctx, "revise")
	return invoice, nil
}

// RemoveInvoice restores any consumed credit and deletes the invoice.
func (s *Service) RemoveInvoice(ctx context.Context, id snowflake.ID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var invoice invoicedomain.Invoice
		if err := tx.First(&invoice, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return invoicedomain.ErrInvoiceNotFound
			}
			return err
		}

		if invoice.CreditedBalance > 0 {
			client, err := s.lockClient(ctx, tx, invoice.ClientID)
			if err != nil {
				return err
			}
			invID := invoice.ID
			if _, err := s.applyDelta(ctx, tx, client, invoice.CreditedBalance, domain.OpInvoiceRemove, nil, &invID, ""); err != nil {
				return err
			}
		}
		return tx.Delete(&invoicedomain.Invoice{}, "id = ?", id).Error
	})
	if err != nil {
		return err
	}

	s.metrics.RecordInvoice(ctx, "remove")
	return nil
}

// AdjustCredits applies a signed manual correction and appends its audit
// entry. Entries have no update or delete path.
func (s *Service) AdjustCredits(ctx context.Context, clientID snowflake.ID, req domain.AdjustCreditsRequest) (domain.CreditEntry, error) {
	if math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) {
		return domain.CreditEntry{}, domain.ErrInvalidAmount
	}

	var entry domain.CreditEntry
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		client, err := s.lockClient(ctx, tx, clientID)
		if err != nil {
			return err
		}
		entry, err = s.applyDelta(ctx, tx, client, req.Amount, domain.OpAdjustment, nil, nil, strings.TrimSpace(req.Reason))
		return err
	})
	if err != nil {
		return domain.CreditEntry{}, err
	}

	s.log.Info("credits adjusted",
		zap.String("client_id", clientID.String()),
		zap.Float64("amount", req.Amount),
	)
	return entry, nil
}

func (s *Service) EntriesByClient(ctx context.Context, clientID snowflake.ID) ([]domain.CreditEntry, error) {
	return s.repo.ListByClient(ctx, s.db, clientID)
}

func (s *Service) AdjustmentsByClient(ctx context.Context, clientID snowflake.ID) ([]domain.CreditEntry, error) {
	return s.repo.ListAdjustmentsByClient(ctx, s.db, clientID)
}

func applyInvoiceUpdate(invoice *invoicedomain.Invoice, req invoicedomain.UpdateInvoiceRequest) {
	if req.Month != nil {
		invoice.Month = strings.TrimSpace(*req.Month)
	}
	if req.InvoiceNumber != nil {
		invoice.InvoiceNumber = strings.TrimSpace(*req.InvoiceNumber)
	}
	if req.ConsumptionKwh != nil {
		invoice.ConsumptionKwh = *req.ConsumptionKwh
	}
	if req.KwhValue != nil {
		invoice.KwhValue = *req.KwhValue
	}
	if req.KwhValueOriginal != nil {
		invoice.KwhValueOriginal = *req.KwhValueOriginal
	}
	if req.KwhValueInjection != nil {
		invoice.KwhValueInjection = *req.KwhValueInjection
	}
	if req.InvoiceValue != nil {
		invoice.InvoiceValue = *req.InvoiceValue
	}
	if req.FixedCost != nil {
		invoice.FixedCost = *req.FixedCost
	}
	if req.TotalInvoiced != nil {
		invoice.TotalInvoiced = *req.TotalInvoiced
	}
	if req.AmountToCollect != nil {
		invoice.AmountToCollect = *req.AmountToCollect
	}
	if req.ValueWithoutDiscount != nil {
		invoice.ValueWithoutDiscount = *req.ValueWithoutDiscount
	}
	if req.TotalValue != nil {
		invoice.TotalValue = *req.TotalValue
	}
	if req.OriginalValue != nil {
		invoice.OriginalValue = *req.OriginalValue
	}
	if req.Discount != nil {
		invoice.Discount = *req.Discount
	}
	if req.Profit != nil {
		invoice.Profit = *req.Profit
	}
	if req.Status != nil {
		invoice.Status = *req.Status
	}
	if req.StatusCobrado != nil {
		invoice.StatusCobrado = *req.StatusCobrado
	}
	if req.StatusPago != nil {
		invoice.StatusPago = *req.StatusPago
	}
	if req.StatusRecebido != nil {
		invoice.StatusRecebido = *req.StatusRecebido
	}
}
