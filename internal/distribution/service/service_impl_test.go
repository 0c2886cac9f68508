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
	"github.com/raizsolar/backoffice/internal/distribution/domain"
	"github.com/raizsolar/backoffice/internal/distribution/repository"
	plantdomain "github.com/raizsolar/backoffice/internal/plant/domain"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&plantdomain.Plant{},
		&clientdomain.Client{},
		&domain.Distribution{},
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
		Name:     "Usina Horizonte",
		Slug:     "usina-horizonte",
		UCNumber: "UC-" + node.Generate().String(),
		IsActive: true,
	}
	require.NoError(t, db.Create(&plant).Error)
	return plant
}

func seedClient(t *testing.T, db *gorm.DB, node *snowflake.Node) clientdomain.Client {
	t.Helper()
	id := node.Generate()
	client := clientdomain.Client{
		ID:       id,
		Name:     "Cliente " + id.String(),
		UCNumber: "UC-" + id.String(),
		Email:    id.String() + "@example.com",
		IsActive: true,
	}
	require.NoError(t, db.Create(&client).Error)
	return client
}

func TestSet_ReplacesTable(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	plant := seedPlant(t, db, node)
	a := seedClient(t, db, node)
	b := seedClient(t, db, node)

	created, err := svc.Set(ctx, plant.ID, domain.SetDistributionsRequest{Shares: []domain.Share{
		{ClientID: a.ID, Percentage: 60},
		{ClientID: b.ID, Percentage: 40},
	}})
	require.NoError(t, err)
	assert.Len(t, created, 2)

	// A second call replaces the table wholesale.
	replaced, err := svc.Set(ctx, plant.ID, domain.SetDistributionsRequest{Shares: []domain.Share{
		{ClientID: a.ID, Percentage: 100},
	}})
	require.NoError(t, err)
	require.Len(t, replaced, 1)
	assert.InDelta(t, 100, replaced[0].Percentage, 1e-9)

	var count int64
	require.NoError(t, db.Model(&domain.Distribution{}).Where("plant_id = ?", plant.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSet_CapExceededAbortsWholeBatch(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	plant := seedPlant(t, db, node)
	a := seedClient(t, db, node)
	b := seedClient(t, db, node)

	_, err := svc.Set(ctx, plant.ID, domain.SetDistributionsRequest{Shares: []domain.Share{
		{ClientID: a.ID, Percentage: 50},
		{ClientID: b.ID, Percentage: 50},
	}})
	require.NoError(t, err)

	_, err = svc.Set(ctx, plant.ID, domain.SetDistributionsRequest{Shares: []domain.Share{
		{ClientID: a.ID, Percentage: 60},
		{ClientID: b.ID, Percentage: 50},
	}})
	assert.ErrorIs(t, err, domain.ErrCapExceeded)

	// The failed batch rolled back; the previous table survives intact.
	dists, err := svc.ListByPlant(ctx, plant.ID)
	require.NoError(t, err)
	require.Len(t, dists, 2)
	assert.InDelta(t, 50, dists[0].Percentage, 1e-9)
	assert.InDelta(t, 50, dists[1].Percentage, 1e-9)
}

func TestSet_AcceptsFloatNoiseUpToEpsilon(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	plant := seedPlant(t, db, node)
	a := seedClient(t, db, node)
	b := seedClient(t, db, node)
	c := seedClient(t, db, node)

	created, err := svc.Set(ctx, plant.ID, domain.SetDistributionsRequest{Shares: []domain.Share{
		{ClientID: a.ID, Percentage: 33.35},
		{ClientID: b.ID, Percentage: 33.35},
		{ClientID: c.ID, Percentage: 33.35},
	}})
	require.NoError(t, err)
	assert.Len(t, created, 3)
}

func TestSet_RejectsNonPositiveShare(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	plant := seedPlant(t, db, node)
	a := seedClient(t, db, node)

	_, err := svc.Set(ctx, plant.ID, domain.SetDistributionsRequest{Shares: []domain.Share{
		{ClientID: a.ID, Percentage: -10},
	}})
	assert.ErrorIs(t, err, domain.ErrInvalidShare)
}

func TestSet_UnknownPlantOrClient(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	_, err := svc.Set(ctx, node.Generate(), domain.SetDistributionsRequest{})
	assert.ErrorIs(t, err, domain.ErrPlantNotFound)

	plant := seedPlant(t, db, node)
	_, err = svc.Set(ctx, plant.ID, domain.SetDistributionsRequest{Shares: []domain.Share{
		{ClientID: node.Generate(), Percentage: 50},
	}})
	assert.ErrorIs(t, err, domain.ErrClientNotFound)
}
