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
	"github.com/raizsolar/backoffice/internal/dashboard/domain"
	invoicedomain "github.com/raizsolar/backoffice/internal/invoice/domain"
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
		&productiondomain.Production{},
		&invoicedomain.Invoice{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:  db,
		Log: zap.NewNop(),
	})
	return svc, db, node
}

func TestSummary_EmptyDatabase(t *testing.T) {
	svc, _, _ := newTestService(t)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.OpenInvoicesCount)
	assert.Zero(t, summary.OpenInvoicesValue)
	assert.Zero(t, summary.MonthlyProduction)
	assert.Zero(t, summary.MonthlyMargin)
	assert.Empty(t, summary.RecentClients)
}

func TestSummary_Aggregates(t *testing.T) {
	svc, db, node := newTestService(t)

	for i := 0; i < 7; i++ {
		id := node.Generate()
		require.NoError(t, db.Create(&clientdomain.Client{
			ID:       id,
			Name:     "Cliente " + id.String(),
			UCNumber: "UC-" + id.String(),
			Email:    id.String() + "@example.com",
			IsActive: true,
		}).Error)
	}

	clientID := node.Generate()
	require.NoError(t, db.Create(&clientdomain.Client{
		ID:       clientID,
		Name:     "Cliente Faturado",
		UCNumber: "UC-FAT",
		Email:    "faturado@example.com",
		IsActive: true,
	}).Error)

	for _, fixture := range []struct {
		total  float64
		profit float64
		paid   bool
	}{
		{300, 40, false},
		{200, 25, false},
		{150, 10, true},
	} {
		require.NoError(t, db.Create(&invoicedomain.Invoice{
			ID:         node.Generate(),
			ClientID:   clientID,
			Month:      "2025-03",
			TotalValue: fixture.total,
			Profit:     fixture.profit,
			StatusPago: fixture.paid,
		}).Error)
	}

	plantID := node.Generate()
	require.NoError(t, db.Create(&plantdomain.Plant{
		ID:       plantID,
		Name:     "Usina",
		Slug:     "usina",
		UCNumber: "UC-PLANT",
		IsActive: true,
	}).Error)
	for _, kwh := range []float64{500, 700} {
		require.NoError(t, db.Create(&productiondomain.Production{
			ID:      node.Generate(),
			PlantID: plantID,
			Month:   "2025-03",
			Kwh:     kwh,
		}).Error)
	}

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 2, summary.OpenInvoicesCount)
	assert.InDelta(t, 500, summary.OpenInvoicesValue, 1e-9)
	assert.InDelta(t, 1200, summary.MonthlyProduction, 1e-9)
	assert.InDelta(t, 75, summary.MonthlyMargin, 1e-9)
	require.Len(t, summary.RecentClients, 5)
	assert.Equal(t, clientID, summary.RecentClients[0].ID)
}
