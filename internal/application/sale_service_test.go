package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terrasapp/sales-api/internal/domain/entity"
	"github.com/terrasapp/sales-api/internal/domain/repository"
)

func saleInputs(n int) []SaleInput {
	inputs := make([]SaleInput, 0, n)
	for i := 0; i < n; i++ {
		inputs = append(inputs, SaleInput{
			PurchaserName: "Comprador", ItemDescription: "Item",
			ItemPrice: 10, PurchaseCount: 1,
			MerchantAddress: "Rua A", MerchantName: "Loja",
		})
	}
	return inputs
}

func TestSaleService_Create_SetsTimestampsAndCommits(t *testing.T) {
	db := newFakeDB()
	repoFake := &fakeSaleRepo{createFn: func(s *entity.Sale) error {
		s.SaleID = 1
		return nil
	}}
	svc := NewSaleService(db, repoFake, nil)

	sale, err := svc.Create(context.Background(), saleInputs(1)[0])
	require.NoError(t, err)
	assert.NotEmpty(t, sale.CreatedAt)
	assert.Equal(t, sale.CreatedAt, sale.UpdatedAt)
	assert.True(t, db.tx.committed)
}

func TestSaleService_Import_AllItemsShareOneTransaction(t *testing.T) {
	db := newFakeDB()
	repoFake := &fakeSaleRepo{}
	svc := NewSaleService(db, repoFake, nil)

	require.NoError(t, svc.Import(context.Background(), saleInputs(5)))

	require.Len(t, repoFake.writeQueriers, 5)
	for _, q := range repoFake.writeQueriers {
		assert.Same(t, db.tx, q, "every item must write through the same transaction")
	}
	assert.True(t, db.tx.committed)
	assert.False(t, db.tx.rolledBack)

	// one shared timestamp for the whole batch
	for _, s := range repoFake.created {
		assert.Equal(t, repoFake.created[0].CreatedAt, s.CreatedAt)
	}
}

func TestSaleService_Import_FailureRollsBackWholeBatch(t *testing.T) {
	db := newFakeDB()
	boom := errors.New("insert failed")
	calls := 0
	repoFake := &fakeSaleRepo{createFn: func(s *entity.Sale) error {
		calls++
		if calls == 3 {
			return boom
		}
		return nil
	}}
	svc := NewSaleService(db, repoFake, nil)

	err := svc.Import(context.Background(), saleInputs(5))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls, "items after the failure must not be attempted")
	assert.True(t, db.tx.rolledBack)
	assert.False(t, db.tx.committed)
}

func TestSaleService_Import_EmptyBatchStillCommits(t *testing.T) {
	db := newFakeDB()
	repoFake := &fakeSaleRepo{}
	svc := NewSaleService(db, repoFake, nil)

	require.NoError(t, svc.Import(context.Background(), nil))
	assert.Empty(t, repoFake.created)
	assert.True(t, db.tx.committed)
}

func TestSaleService_Update_NotFoundRollsBack(t *testing.T) {
	db := newFakeDB()
	repoFake := &fakeSaleRepo{updateFn: func(id int64, s *entity.Sale) (*entity.Sale, error) {
		return nil, repository.ErrNotFound
	}}
	svc := NewSaleService(db, repoFake, nil)

	_, err := svc.Update(context.Background(), 8, saleInputs(1)[0])
	assert.ErrorIs(t, err, ErrSaleNotFound)
	assert.True(t, db.tx.rolledBack)
}

func TestSaleService_FindByID_MapsNotFound(t *testing.T) {
	db := newFakeDB()
	repoFake := &fakeSaleRepo{findFn: func(id int64) (*entity.Sale, error) {
		return nil, repository.ErrNotFound
	}}
	svc := NewSaleService(db, repoFake, nil)

	_, err := svc.FindByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrSaleNotFound)
}

func TestSaleService_Metrics_CombinesAggregates(t *testing.T) {
	db := newFakeDB()
	repoFake := &fakeSaleRepo{totalSales: 4, purchasedItems: 17, grossRevenue: 842.5}
	svc := NewSaleService(db, repoFake, nil)

	m, err := svc.Metrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.SalesMetrics{TotalSales: 4, PurchasedItems: 17, GrossRevenue: 842.5}, m)
	assert.False(t, db.tx.committed, "metrics reads must not open a transaction")
}

func TestSaleService_Metrics_ErrorShortCircuits(t *testing.T) {
	db := newFakeDB()
	boom := errors.New("db down")
	repoFake := &fakeSaleRepo{aggregateErr: boom}
	svc := NewSaleService(db, repoFake, nil)

	_, err := svc.Metrics(context.Background())
	assert.ErrorIs(t, err, boom)
}
