package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sweetshop-api/internal/domain"
	"sweetshop-api/internal/repo"
)

func newTestSweetService(t *testing.T) *SweetService {
	t.Helper()
	// cache=nil：未配置 redis 时直读库的路径
	return NewSweetService(repo.NewSweetRepo(newTestDB(t)), nil)
}

func TestSweetService_CreateAssignsID(t *testing.T) {
	svc := newTestSweetService(t)

	sw, err := svc.Create(context.Background(), &domain.Sweet{
		Name: "Rasgulla", Price: 12, Category: "Syrup Based", Quantity: 50,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, sw.ID)
}

func TestSweetService_Lifecycle(t *testing.T) {
	svc := newTestSweetService(t)
	ctx := context.Background()

	sw, err := svc.Create(ctx, &domain.Sweet{Name: "Rasgulla", Price: 12, Category: "Syrup Based", Quantity: 50})
	require.NoError(t, err)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 50, items[0].Quantity)

	name := "Rasgulla Special"
	got, err := svc.Update(ctx, sw.ID, domain.SweetPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Rasgulla Special", got.Name)

	require.NoError(t, svc.Delete(ctx, sw.ID))
	items, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSweetService_PurchaseAndRestock(t *testing.T) {
	svc := newTestSweetService(t)
	ctx := context.Background()

	sw, err := svc.Create(ctx, &domain.Sweet{Name: "Rasgulla", Price: 12, Category: "Syrup Based", Quantity: 50})
	require.NoError(t, err)

	_, err = svc.Purchase(ctx, sw.ID, 60)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := svc.Purchase(ctx, sw.ID, 30)
	require.NoError(t, err)
	assert.Equal(t, 20, got.Quantity)

	got, err = svc.Restock(ctx, sw.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 30, got.Quantity)
}

func TestSweetService_NotFoundPropagates(t *testing.T) {
	svc := newTestSweetService(t)
	ctx := context.Background()

	_, err := svc.Purchase(ctx, "no-such-id", 1)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Restock(ctx, "no-such-id", 1)
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.ErrorIs(t, svc.Delete(ctx, "no-such-id"), domain.ErrNotFound)
}
