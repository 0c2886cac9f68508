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

	"github.com/raizsolar/backoffice/internal/auth/password"
	"github.com/raizsolar/backoffice/internal/operator/domain"
	"github.com/raizsolar/backoffice/internal/operator/repository"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Operator{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc, db
}

func TestCreate_HashesPassword(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	operator, err := svc.Create(ctx, domain.CreateOperatorRequest{
		Name:     "Ana",
		Email:    " Ana@Example.com ",
		Password: "senha-forte",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", operator.Email)
	assert.True(t, operator.IsActive)

	var stored domain.Operator
	require.NoError(t, db.First(&stored, "id = ?", operator.ID).Error)
	assert.NotEqual(t, "senha-forte", stored.Password)
	assert.True(t, password.Verify("senha-forte", stored.Password))
}

func TestCreate_DuplicateEmailAndCPF(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateOperatorRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		CPF:      "123.456.789-00",
		Password: "senha-forte",
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.CreateOperatorRequest{
		Name:     "Outra Ana",
		Email:    "ana@example.com",
		Password: "senha-forte",
	})
	assert.ErrorIs(t, err, domain.ErrOperatorExists)

	_, err = svc.Create(ctx, domain.CreateOperatorRequest{
		Name:     "Beto",
		Email:    "beto@example.com",
		CPF:      "123.456.789-00",
		Password: "senha-forte",
	})
	assert.ErrorIs(t, err, domain.ErrOperatorExists)

	// An empty CPF never collides with another empty CPF.
	_, err = svc.Create(ctx, domain.CreateOperatorRequest{
		Name:     "Carla",
		Email:    "carla@example.com",
		Password: "senha-forte",
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateOperatorRequest{
		Name:     "Duda",
		Email:    "duda@example.com",
		Password: "senha-forte",
	})
	require.NoError(t, err)
}

func TestUpdateAndDelete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	operator, err := svc.Create(ctx, domain.CreateOperatorRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "senha-forte",
	})
	require.NoError(t, err)

	active := false
	updated, err := svc.Update(ctx, operator.ID, domain.UpdateOperatorRequest{IsActive: &active})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	require.NoError(t, svc.Delete(ctx, operator.ID))

	_, err = svc.Get(ctx, operator.ID)
	assert.ErrorIs(t, err, domain.ErrOperatorNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, operator.ID), domain.ErrOperatorNotFound)
}
