package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	clientdomain "github.com/raizsolar/backoffice/internal/client/domain"
	distributiondomain "github.com/raizsolar/backoffice/internal/distribution/domain"
	invoicedomain "github.com/raizsolar/backoffice/internal/invoice/domain"
	ledgerdomain "github.com/raizsolar/backoffice/internal/ledger/domain"
	plantdomain "github.com/raizsolar/backoffice/internal/plant/domain"
	productiondomain "github.com/raizsolar/backoffice/internal/production/domain"
	"github.com/raizsolar/backoffice/internal/statement/domain"
)

type Params struct {
	fx.In

	DB            *gorm.DB
	Log           *zap.Logger
	Invoices      invoicedomain.Repository
	Distributions distributiondomain.Repository
	Productions   productiondomain.Repository
	Ledger        ledgerdomain.Service
}

// Service materializes a client's transaction history by replaying
// invoices, production shares and manual adjustments. Read-only.
type Service struct {
	db            *gorm.DB
	log           *zap.Logger
	invoices      invoicedomain.Repository
	distributions distributiondomain.Repository
	productions   productiondomain.Repository
	ledger        ledgerdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("statement.service"),
		invoices:      p.Invoices,
		distributions: p.Distributions,
		productions:   p.Productions,
		ledger:        p.Ledger,
	}
}

func (s *Service) Build(ctx context.Context, clientID snowflake.ID) (domain.Statement, error) {
	var client clientdomain.Client
	if err := s.db.WithContext(ctx).First(&client, "id = ?", clientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Statement{}, domain.ErrClientNotFound
		}
		return domain.Statement{}, err
	}

	entries := []domain.Entry{}

	invoices, err := s.invoices.ListByClient(ctx, s.db, clientID)
	if err != nil {
		return domain.Statement{}, err
	}
	for i := range invoices {
		invoice := invoices[i]
		entries = append(entries, domain.Entry{
			Date:        invoice.Month,
			Type:        domain.TypeBilling,
			Kwh:         -invoice.CreditedBalance,
			Description: fmt.Sprintf("Fatura %s", invoice.Month),
			Status:      invoice.Status,
			Item:        &invoice,
		})
	}

	// Production shares are computed at read time with the plant's current
	// percentage. A distribution change made after a production was recorded
	// shows the current share here, not the historically applied one.
	dists, err := s.distributions.ListByClient(ctx, s.db, clientID)
	if err != nil {
		return domain.Statement{}, err
	}
	for _, dist := range dists {
		var plant plantdomain.Plant
		if err := s.db.WithContext(ctx).First(&plant, "id = ?", dist.PlantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return domain.Statement{}, err
		}

		productions, err := s.productions.ListByPlant(ctx, s.db, dist.PlantID)
		if err != nil {
			return domain.Statement{}, err
		}
		for _, production := range productions {
			entries = append(entries, domain.Entry{
				Date:        production.Month,
				Type:        domain.TypeGeneration,
				Kwh:         dist.Percentage / 100 * production.Kwh,
				Description: fmt.Sprintf("Geracao %s (%.1f%%)", plant.Name, dist.Percentage),
				Status:      domain.StatusCompleted,
			})
		}
	}

	adjustments, err := s.ledger.AdjustmentsByClient(ctx, clientID)
	if err != nil {
		return domain.Statement{}, err
	}
	for _, adjustment := range adjustments {
		description := adjustment.Reason
		if description == "" {
			description = "Ajuste manual"
		}
		entries = append(entries, domain.Entry{
			Date:        adjustment.CreatedAt.Format("2006-01"),
			Type:        domain.TypeAdjustment,
			Kwh:         adjustment.Amount,
			Description: description,
			Status:      domain.StatusProcessed,
		})
	}

	// Newest month first. The stable sort keeps same-month entries in source
	// order (invoices, then generation, then adjustments), making ties
	// deterministic.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})

	return domain.Statement{
		ClientID:       clientID,
		CurrentCredits: client.CurrentCredits,
		Entries:        entries,
	}, nil
}
