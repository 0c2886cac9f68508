package service

import (
	"context"
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
	ledgerdomain "github.com/raizsolar/backoffice/internal/ledger/domain"
	ledgerrepo "github.com/raizsolar/backoffice/internal/ledger/repository"
	ledgerservice "github.com/raizsolar/backoffice/internal/ledger/service"
	plantdomain "github.com/raizsolar/backoffice/internal/plant/domain"
	"github.com/raizsolar/backoffice/internal/production/domain"
	"github.com/raizsolar/backoffice/internal/production/repository"
	"github.com/raizsolar/backoffice/pkg/db/pagination"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&plantdomain.Plant{},
		&clientdomain.Client{},
		&distributiondomain.Distribution{},
		&domain.Production{},
		&invoicedomain.Invoice{},
		&ledgerdomain.CreditEntry{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	ledgerSvc := ledgerservice.New(ledgerservice.Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  ledgerrepo.Provide(),
	})

	svc := New(Params{
		DB:     db,
		Log:    zap.NewNop(),
		Repo:   repository.Provide(),
		Ledger: ledgerSvc,
	})
	return svc, db, node
}

func seedPlant(t *testing.T, db *gorm.DB, node *snowflake.Node) plantdomain.Plant {
	t.Helper()
	plant := plantdomain.Plant{
		ID:       node.Generate(),
		Name:     "Usina Boa Vista",
		Slug:     "usina-boa-vista",
		UCNumber: "UC-" + node.Generate().String(),
		IsActive: true,
	}
	require.NoError(t, db.Create(&plant).Error)
	return plant
}

func TestRecord_CreditsDistributedClients(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	plant := seedPlant(t, db, node)
	client := clientdomain.Client{
		ID:       node.Generate(),
		Name:     "Cliente Unico",
		UCNumber: "UC-1",
		Email:    "unico@example.com",
		IsActive: true,
	}
	require.NoError(t, db.Create(&client).Error)
	require.NoError(t, db.Create(&distributiondomain.Distribution{
		ID:         node.Generate(),
		PlantID:    plant.ID,
		ClientID:   client.ID,
		Percentage: 100,
	}).Error)

	production, err := svc.Record(ctx, plant.ID, domain.RecordProductionRequest{
		Month: "2025-03",
		Kwh:   750,
	})
	require.NoError(t, err)

	var reloaded clientdomain.Client
	require.NoError(t, db.First(&reloaded, "id = ?", client.ID).Error)
	assert.InDelta(t, 750, reloaded.CurrentCredits, 1e-9)

	got, err := svc.Get(ctx, production.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-03", got.Month)
	require.NotNil(t, got.Plant)
	assert.Equal(t, plant.ID, got.Plant.ID)
}

func TestList_NewestMonthFirst(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	plant := seedPlant(t, db, node)
	for _, month := range []string{"2025-01", "2024-12", "2025-03"} {
		require.NoError(t, db.Create(&domain.Production{
			ID:      node.Generate(),
			PlantID: plant.ID,
			Month:   month,
			Kwh:     100,
		}).Error)
	}

	productions, err := svc.List(ctx, pagination.Pagination{})
	require.NoError(t, err)
	require.Len(t, productions, 3)
	assert.Equal(t, "2025-03", productions[0].Month)
	assert.Equal(t, "2025-01", productions[1].Month)
	assert.Equal(t, "2024-12", productions[2].Month)

	byPlant, err := svc.ListByPlant(ctx, plant.ID)
	require.NoError(t, err)
	assert.Len(t, byPlant, 3)
}

func TestGet_Unknown(t *testing.T) {
	svc, _, node := newTestService(t)

	_, err := svc.Get(context.Background(), node.Generate())
	assert.ErrorIs(t, err, domain.ErrProductionNotFound)
}
