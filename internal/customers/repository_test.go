package customer

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/customercore-backend/pkg/db"
	"github.com/angelmondragon/customercore-backend/pkg/db/dbtest"
	"github.com/angelmondragon/customercore-backend/pkg/db/models"
)

func TestRepositoryStoreEnforcesConstraints(t *testing.T) {
	client := dbtest.OpenSQLite(t)
	repo := NewRepository(client.DB())
	ctx := context.Background()

	customer := &models.Customer{Name: "Owner", Email: "owner@example.com"}
	require.NoError(t, repo.Create(ctx, customer))
	require.NotEqual(t, uuid.Nil, customer.ID)

	dup := &models.Customer{Name: "Copy", Email: "owner@example.com"}
	err := repo.Create(ctx, dup)
	require.Error(t, err)
	assert.True(t, isEmailConflict(err), "expected email unique violation, got %v", err)

	product := &models.Product{Name: "Gadget"}
	require.NoError(t, client.DB().Create(product).Error)
	require.NoError(t, client.DB().Create(&models.ProductDetail{ProductID: product.ID, CustomerID: customer.ID}).Error)

	refs, err := repo.CountProductDetails(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), refs)

	// the restrict rule holds at the store even without the service check
	err = repo.Delete(ctx, customer.ID)
	require.Error(t, err)
	assert.True(t, db.IsForeignKeyViolation(err), "expected foreign key violation, got %v", err)

	kept, err := repo.FindByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", kept.Email)
}

func TestRepositoryFindByIDMissing(t *testing.T) {
	client := dbtest.OpenSQLite(t)
	repo := NewRepository(client.DB())

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.True(t, db.IsNotFound(err))
}
