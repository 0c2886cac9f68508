package service

import (
	"context"
	"math"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	clientdomain "github.com/raizsolar/backoffice/internal/client/domain"
	distributiondomain "github.com/raizsolar/backoffice/internal/distribution/domain"
	invoicedomain "github.com/raizsolar/backoffice/internal/invoice/domain"
	"github.com/raizsolar/backoffice/internal/ledger/domain"
	"github.com/raizsolar/backoffice/internal/ledger/repository"
	plantdomain "github.com/raizsolar/backoffice/internal/plant/domain"
	productiondomain "github.com/raizsolar/backoffice/internal/production/domain"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&plantdomain.Plant{},
		&clientdomain.Client{},
		&distributiondomain.Distribution{},
		&productiondomain.Production{},
		&invoicedomain.Invoice{},
		&domain.CreditEntry{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc, db, node
}

func seedPlant(t *testing.T, db *gorm.DB, node *snowflake.Node) plantdomain.Plant {
	t.Helper()
	plant := plantdomain.Plant{
		ID:       node.Generate(),
		Name:     "Usina Serra Azul",
		Slug:     "usina-serra-azul",
		UCNumber: "UC-" + node.Generate().String(),
		IsActive: true,
	}
	require.NoError(t, db.Create(&plant).Error)
	return plant
}

func seedClient(t *testing.T, db *gorm.DB, node *snowflake.Node, credits float64) clientdomain.Client {
	t.Helper()
	id := node.Generate()
	client := clientdomain.Client{
		ID:             id,
		Name:           "Cliente " + id.String(),
		UCNumber:       "UC-" + id.String(),
		Email:          id.String() + "@example.com",
		PaymentDay:     10,
		CurrentCredits: credits,
		IsActive:       true,
	}
	require.NoError(t, db.Create(&client).Error)
	return client
}

func seedDistribution(t *testing.T, db *gorm.DB, node *snowflake.Node, plantID, clientID snowflake.ID, pct float64) {
	t.Helper()
	require.NoError(t, db.Create(&distributiondomain.Distribution{
		ID:         node.Generate(),
		PlantID:    plantID,
		ClientID:   clientID,
		Percentage: pct,
	}).Error)
}

func clientBalance(t *testing.T, db *gorm.DB, id snowflake.ID) float64 {
	t.Helper()
	var client clientdomain.Client
	require.NoError(t, db.First(&client, "id = ?", id).Error)
	return client.CurrentCredits
}

func TestRecordProduction_FanOut(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	plant := seedPlant(t, db, node)
	a := seedClient(t, db, node, 0)
	b := seedClient(t, db, node, 0)
	seedDistribution(t, db, node, plant.ID, a.ID, 60)
	seedDistribution(t, db, node, plant.ID, b.ID, 40)

	production, err := svc.RecordProduction(ctx, plant.ID, productiondomain.RecordProductionRequest{
		Month: "2025-03",
		Kwh:   1000,
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-03", production.Month)

	assert.InDelta(t, 600, clientBalance(t, db, a.ID), 1e-9)
	assert.InDelta(t, 400, clientBalance(t, db, b.ID), 1e-9)

	// Credited total must equal the recorded output.
	var total float64
	require.NoError(t, db.Model(&domain.CreditEntry{}).
		Select("COALESCE(SUM(amount), 0)").Scan(&total).Error)
	assert.InDelta(t, 1000, total, 1e-9)

	var entries []domain.CreditEntry
	require.NoError(t, db.Where("client_id = ?", a.ID).Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.OpProductionRecord, entries[0].Operation)
	assert.Equal(t, domain.DirectionCredit, entries[0].Direction)
	assert.InDelta(t, 600, entries[0].BalanceAfter, 1e-9)
	assert.NotEmpty(t, entries[0].Reference)
	require.NotNil(t, entries[0].ProductionID)
	assert.Equal(t, production.ID, *entries[0].ProductionID)
}

func TestRecordProduction_PlantMissing(t *testing.T) {
	svc, _, node := newTestService(t)

	_, err := svc.RecordProduction(context.Background(), node.Generate(), productiondomain.RecordProductionRequest{
		Month: "2025-03",
		Kwh:   100,
	})
	assert.ErrorIs(t, err, productiondomain.ErrPlantNotFound)
}

func TestReviseProduction_AppliesOnlyDiff(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	plant := seedPlant(t, db, node)
	a := seedClient(t, db, node, 0)
	b := seedClient(t, db, node, 0)
	seedDistribution(t, db, node, plant.ID, a.ID, 60)
	seedDistribution(t, db, node, plant.ID, b.ID, 40)

	production, err := svc.RecordProduction(ctx, plant.ID, productiondomain.RecordProductionRequest{
		Month: "2025-03",
		Kwh:   1000,
	})
	require.NoError(t, err)

	kwh := 1200.0
	revised, err := svc.ReviseProduction(ctx, production.ID, productiondomain.ReviseProductionRequest{Kwh: &kwh})
	require.NoError(t, err)
	assert.InDelta(t, 1200, revised.Kwh, 1e-9)

	assert.InDelta(t, 720, clientBalance(t, db, a.ID), 1e-9)
	assert.InDelta(t, 480, clientBalance(t, db, b.ID), 1e-9)

	// The revision appended diff entries; the original entries are untouched.
	var count int64
	require.NoError(t, db.Model(&domain.CreditEntry{}).
		Where("operation = ?", domain.OpProductionRevise).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestReviseProduction_SameKwhMovesNothing(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	plant := seedPlant(t, db, node)
	a := seedClient(t, db, node, 0)
	seedDistribution(t, db, node, plant.ID, a.ID, 100)

	production, err := svc.RecordProduction(ctx, plant.ID, productiondomain.RecordProductionRequest{
		Month: "2025-03",
		Kwh:   500,
	})
	require.NoError(t, err)

	kwh := 500.0
	month := "2025-04"
	_, err = svc.ReviseProduction(ctx, production.ID, productiondomain.ReviseProductionRequest{Month: &month, Kwh: &kwh})
	require.NoError(t, err)

	assert.InDelta(t, 500, clientBalance(t, db, a.ID), 1e-9)

	var count int64
	require.NoError(t, db.Model(&domain.CreditEntry{}).
		Where("operation = ?", domain.OpProductionRevise).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestReviseProduction_UsesCurrentDistributionTable(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	plant := seedPlant(t, db, node)
	a := seedClient(t, db, node, 0)
	b := seedClient(t, db, node, 0)
	seedDistribution(t, db, node, plant.ID, a.ID, 100)

	production, err := svc.RecordProduction(ctx, plant.ID, productiondomain.RecordProductionRequest{
		Month: "2025-03",
		Kwh:   1000,
	})
	require.NoError(t, err)

	// Reallocate before the revision. Only the diff flows through the new
	// table; credit already granted under the old table stays put.
	require.NoError(t, db.Where("plant_id = ?", plant.ID).Delete(&distributiondomain.Distribution{}).Error)
	seedDistribution(t, db, node, plant.ID, b.ID, 100)

	kwh := 1100.0
	_, err = svc.ReviseProduction(ctx, production.ID, productiondomain.ReviseProductionRequest{Kwh: &kwh})
	require.NoError(t, err)

	assert.InDelta(t, 1000, clientBalance(t, db, a.ID), 1e-9)
	assert.InDelta(t, 100, clientBalance(t, db, b.ID), 1e-9)
}

func TestRemoveProduction_ReversesFullAmount(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	plant := seedPlant(t, db, node)
	a := seedClient(t, db, node, 0)
	b := seedClient(t, db, node, 0)
	seedDistribution(t, db, node, plant.ID, a.ID, 60)
	seedDistribution(t, db, node, plant.ID, b.ID, 40)

	production, err := svc.RecordProduction(ctx, plant.ID, productiondomain.RecordProductionRequest{
		Month: "2025-03",
		Kwh:   1000,
	})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveProduction(ctx, production.ID))

	assert.InDelta(t, 0, clientBalance(t, db, a.ID), 1e-9)
	assert.InDelta(t, 0, clientBalance(t, db, b.ID), 1e-9)

	var count int64
	require.NoError(t, db.Model(&productiondomain.Production{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	var entries []domain.CreditEntry
	require.NoError(t, db.Where("client_id = ? AND operation = ?", a.ID, domain.OpProductionRemove).Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.DirectionDebit, entries[0].Direction)
	assert.InDelta(t, -600, entries[0].Amount, 1e-9)
}

func TestRecordInvoice_DebitsConsumedCredit(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	client := seedClient(t, db, node, 1000)

	invoice := invoicedomain.Invoice{
		ID:              node.Generate(),
		ClientID:        client.ID,
		Month:           "2025-03",
		CreditedBalance: 200,
		Status:          invoicedomain.StatusOpen,
	}
	require.NoError(t, svc.RecordInvoice(ctx, &invoice))

	assert.InDelta(t, 800, clientBalance(t, db, client.ID), 1e-9)

	var entry domain.CreditEntry
	require.NoError(t, db.First(&entry, "invoice_id = ?", invoice.ID).Error)
	assert.Equal(t, domain.OpInvoiceRecord, entry.Operation)
	assert.Equal(t, domain.DirectionDebit, entry.Direction)
	assert.InDelta(t, -200, entry.Amount, 1e-9)
	assert.InDelta(t, 800, entry.BalanceAfter, 1e-9)
}

func TestRecordInvoice_ZeroCreditLeavesBalance(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	client := seedClient(t, db, node, 500)

	invoice := invoicedomain.Invoice{
		ID:       node.Generate(),
		ClientID: client.ID,
		Month:    "2025-03",
		Status:   invoicedomain.StatusOpen,
	}
	require.NoError(t, svc.RecordInvoice(ctx, &invoice))

	assert.InDelta(t, 500, clientBalance(t, db, client.ID), 1e-9)

	var count int64
	require.NoError(t, db.Model(&domain.CreditEntry{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestRecordInvoice_BalanceMayGoNegative(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	client := seedClient(t, db, node, 50)

	invoice := invoicedomain.Invoice{
		ID:              node.Generate(),
		ClientID:        client.ID,
		Month:           "2025-03",
		CreditedBalance: 200,
	}
	require.NoError(t, svc.RecordInvoice(ctx, &invoice))

	assert.InDelta(t, -150, clientBalance(t, db, client.ID), 1e-9)
}

func TestReviseInvoice_AppliesCreditedBalanceDelta(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	client := seedClient(t, db, node, 1000)

	invoice := invoicedomain.Invoice{
		ID:              node.Generate(),
		ClientID:        client.ID,
		Month:           "2025-03",
		CreditedBalance: 200,
	}
	require.NoError(t, svc.RecordInvoice(ctx, &invoice))
	require.InDelta(t, 800, clientBalance(t, db, client.ID), 1e-9)

	// Lowering the consumed credit hands the difference back.
	credited := 150.0
	revised, err := svc.ReviseInvoice(ctx, invoice.ID, invoicedomain.UpdateInvoiceRequest{CreditedBalance: &credited})
	require.NoError(t, err)
	assert.InDelta(t, 150, revised.CreditedBalance, 1e-9)
	assert.InDelta(t, 850, clientBalance(t, db, client.ID), 1e-9)

	// Raising it takes more.
	credited = 300.0
	_, err = svc.ReviseInvoice(ctx, invoice.ID, invoicedomain.UpdateInvoiceRequest{CreditedBalance: &credited})
	require.NoError(t, err)
	assert.InDelta(t, 700, clientBalance(t, db, client.ID), 1e-9)
}

func TestReviseInvoice_OtherFieldsDoNotTouchBalance(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	client := seedClient(t, db, node, 1000)

	invoice := invoicedomain.Invoice{
		ID:              node.Generate(),
		ClientID:        client.ID,
		Month:           "2025-03",
		CreditedBalance: 200,
	}
	require.NoError(t, svc.RecordInvoice(ctx, &invoice))

	status := invoicedomain.StatusPaid
	paid := true
	revised, err := svc.ReviseInvoice(ctx, invoice.ID, invoicedomain.UpdateInvoiceRequest{
		Status:     &status,
		StatusPago: &paid,
	})
	require.NoError(t, err)
	assert.Equal(t, invoicedomain.StatusPaid, revised.Status)
	assert.True(t, revised.StatusPago)
	assert.InDelta(t, 800, clientBalance(t, db, client.ID), 1e-9)
}

func TestRemoveInvoice_RestoresCredit(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	client := seedClient(t, db, node, 1000)

	invoice := invoicedomain.Invoice{
		ID:              node.Generate(),
		ClientID:        client.ID,
		Month:           "2025-03",
		CreditedBalance: 200,
	}
	require.NoError(t, svc.RecordInvoice(ctx, &invoice))
	require.NoError(t, svc.RemoveInvoice(ctx, invoice.ID))

	assert.InDelta(t, 1000, clientBalance(t, db, client.ID), 1e-9)

	var count int64
	require.NoError(t, db.Model(&invoicedomain.Invoice{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	var restore domain.CreditEntry
	require.NoError(t, db.First(&restore, "operation = ?", domain.OpInvoiceRemove).Error)
	assert.Equal(t, domain.DirectionCredit, restore.Direction)
	assert.InDelta(t, 200, restore.Amount, 1e-9)
}

func TestAdjustCredits(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	client := seedClient(t, db, node, 100)

	_, err := svc.AdjustCredits(ctx, client.ID, domain.AdjustCreditsRequest{Amount: math.NaN()})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	_, err = svc.AdjustCredits(ctx, client.ID, domain.AdjustCreditsRequest{Amount: math.Inf(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	entry, err := svc.AdjustCredits(ctx, client.ID, domain.AdjustCreditsRequest{
		Amount: -30,
		Reason: "leitura incorreta",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OpAdjustment, entry.Operation)
	assert.Equal(t, domain.DirectionDebit, entry.Direction)
	assert.Equal(t, "leitura incorreta", entry.Reason)
	assert.InDelta(t, 70, entry.BalanceAfter, 1e-9)
	assert.NotEmpty(t, entry.Reference)

	assert.InDelta(t, 70, clientBalance(t, db, client.ID), 1e-9)

	_, err = svc.AdjustCredits(ctx, node.Generate(), domain.AdjustCreditsRequest{Amount: 10})
	assert.ErrorIs(t, err, domain.ErrClientNotFound)
}

func TestAdjustCredits_ZeroAmountRecordsWithoutMovement(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	client := seedClient(t, db, node, 100)

	entry, err := svc.AdjustCredits(ctx, client.ID, domain.AdjustCreditsRequest{
		Amount: 0,
		Reason: "anotacao de suporte",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OpAdjustment, entry.Operation)
	assert.InDelta(t, 0, entry.Amount, 1e-9)
	assert.InDelta(t, 100, entry.BalanceAfter, 1e-9)
	assert.Equal(t, "anotacao de suporte", entry.Reason)

	assert.InDelta(t, 100, clientBalance(t, db, client.ID), 1e-9)
}

func TestEntriesByClient_NewestFirst(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	client := seedClient(t, db, node, 0)

	_, err := svc.AdjustCredits(ctx, client.ID, domain.AdjustCreditsRequest{Amount: 100, Reason: "primeiro"})
	require.NoError(t, err)
	_, err = svc.AdjustCredits(ctx, client.ID, domain.AdjustCreditsRequest{Amount: -40, Reason: "segundo"})
	require.NoError(t, err)

	entries, err := svc.EntriesByClient(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "segundo", entries[0].Reason)
	assert.Equal(t, "primeiro", entries[1].Reason)

	adjustments, err := svc.AdjustmentsByClient(ctx, client.ID)
	require.NoError(t, err)
	assert.Len(t, adjustments, 2)
}

// Full billing-cycle chain: production fan-out, invoice debit, invoice
// removal, production revision.
func TestLedger_BillingCycleChain(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	plant := seedPlant(t, db, node)
	a := seedClient(t, db, node, 0)
	b := seedClient(t, db, node, 0)
	seedDistribution(t, db, node, plant.ID, a.ID, 60)
	seedDistribution(t, db, node, plant.ID, b.ID, 40)

	production, err := svc.RecordProduction(ctx, plant.ID, productiondomain.RecordProductionRequest{
		Month: "2024-01",
		Kwh:   1000,
	})
	require.NoError(t, err)
	require.InDelta(t, 600, clientBalance(t, db, a.ID), 1e-9)
	require.InDelta(t, 400, clientBalance(t, db, b.ID), 1e-9)

	invoice := invoicedomain.Invoice{
		ID:              node.Generate(),
		ClientID:        a.ID,
		Month:           "2024-01",
		CreditedBalance: 200,
	}
	require.NoError(t, svc.RecordInvoice(ctx, &invoice))
	require.InDelta(t, 400, clientBalance(t, db, a.ID), 1e-9)

	require.NoError(t, svc.RemoveInvoice(ctx, invoice.ID))
	require.InDelta(t, 600, clientBalance(t, db, a.ID), 1e-9)

	kwh := 1200.0
	_, err = svc.ReviseProduction(ctx, production.ID, productiondomain.ReviseProductionRequest{Kwh: &kwh})
	require.NoError(t, err)

	assert.InDelta(t, 720, clientBalance(t, db, a.ID), 1e-9)
	assert.InDelta(t, 480, clientBalance(t, db, b.ID), 1e-9)

	// Folding the entry log reproduces each balance.
	for _, c := range []snowflake.ID{a.ID, b.ID} {
		var sum float64
		require.NoError(t, db.Model(&domain.CreditEntry{}).
			Where("client_id = ?", c).
			Select("COALESCE(SUM(amount), 0)").Scan(&sum).Error)
		assert.InDelta(t, clientBalance(t, db, c), sum, 1e-9)
	}
}
