package repo

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sweetshop-api/internal/core/database"
	"sweetshop-api/internal/domain"
	"sweetshop-api/pkg/utils"
)

// 内存 sqlite；连接池收到 1，保证每个用例都看同一个库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewGorm(database.Opts{
		Driver:       "sqlite",
		DSN:          ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Sweet{}))
	return db
}

func seedSweet(t *testing.T, r *SweetRepo, qty int) *domain.Sweet {
	t.Helper()
	s := &domain.Sweet{
		ID:       utils.NewID(),
		Name:     "Rasgulla",
		Price:    12.00,
		Category: "Syrup Based",
		Quantity: qty,
	}
	require.NoError(t, r.Create(context.Background(), s))
	return s
}

func TestSweetRepo_PurchaseDecrements(t *testing.T) {
	r := NewSweetRepo(newTestDB(t))
	s := seedSweet(t, r, 50)

	got, err := r.Purchase(context.Background(), s.ID, 30)
	require.NoError(t, err)
	assert.Equal(t, 20, got.Quantity)
}

func TestSweetRepo_PurchaseInsufficientLeavesQuantity(t *testing.T) {
	r := NewSweetRepo(newTestDB(t))
	s := seedSweet(t, r, 50)

	_, err := r.Purchase(context.Background(), s.ID, 60)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	cur, err := r.FindByID(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, cur.Quantity)
}

func TestSweetRepo_PurchaseNotFound(t *testing.T) {
	r := NewSweetRepo(newTestDB(t))

	_, err := r.Purchase(context.Background(), "no-such-id", 1)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSweetRepo_RestockThenPurchaseRoundTrip(t *testing.T) {
	r := NewSweetRepo(newTestDB(t))
	s := seedSweet(t, r, 20)

	after, err := r.Restock(context.Background(), s.ID, 10)
	require.NoError(t, err)
	require.Equal(t, 30, after.Quantity)

	after, err = r.Purchase(context.Background(), s.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 20, after.Quantity)
}

func TestSweetRepo_RestockNotFound(t *testing.T) {
	r := NewSweetRepo(newTestDB(t))

	_, err := r.Restock(context.Background(), "no-such-id", 5)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// 核心性质：并发购买同一商品时总扣减不超过初始库存，quantity 永不为负
func TestSweetRepo_ConcurrentPurchasesNeverOversell(t *testing.T) {
	r := NewSweetRepo(newTestDB(t))
	s := seedSweet(t, r, 10)

	const buyers = 25
	var wg sync.WaitGroup
	successes := make(chan struct{}, buyers)

	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Purchase(context.Background(), s.ID, 1); err == nil {
				successes <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(successes)

	n := 0
	for range successes {
		n++
	}
	assert.Equal(t, 10, n, "exactly the starting stock may be sold")

	cur, err := r.FindByID(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, cur.Quantity)
	assert.GreaterOrEqual(t, cur.Quantity, 0)
}

// 串行购买序列：只有装得下的前缀成功
func TestSweetRepo_SequentialOversellPrefix(t *testing.T) {
	r := NewSweetRepo(newTestDB(t))
	s := seedSweet(t, r, 10)

	amounts := []int{4, 4, 4, 4}
	var succeeded []int
	for _, a := range amounts {
		if _, err := r.Purchase(context.Background(), s.ID, a); err == nil {
			succeeded = append(succeeded, a)
		}
	}

	assert.Equal(t, []int{4, 4}, succeeded)
	cur, err := r.FindByID(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, cur.Quantity)
}

func TestSweetRepo_PatchPartial(t *testing.T) {
	r := NewSweetRepo(newTestDB(t))
	s := seedSweet(t, r, 50)

	name := "Gulab Jamun"
	price := 15.5
	got, err := r.Patch(context.Background(), s.ID, domain.SweetPatch{Name: &name, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "Gulab Jamun", got.Name)
	assert.Equal(t, 15.5, got.Price)
	assert.Equal(t, "Syrup Based", got.Category) // 没发的字段不动
	assert.Equal(t, 50, got.Quantity)
}

func TestSweetRepo_PatchMissing(t *testing.T) {
	r := NewSweetRepo(newTestDB(t))

	name := "x"
	_, err := r.Patch(context.Background(), "no-such-id", domain.SweetPatch{Name: &name})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSweetRepo_DeleteMissing(t *testing.T) {
	r := NewSweetRepo(newTestDB(t))

	err := r.Delete(context.Background(), "no-such-id")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSweetRepo_Search(t *testing.T) {
	r := NewSweetRepo(newTestDB(t))
	ctx := context.Background()

	for _, s := range []*domain.Sweet{
		{ID: utils.NewID(), Name: "Rasgulla", Price: 12, Category: "Syrup Based", Quantity: 5},
		{ID: utils.NewID(), Name: "Kaju Katli", Price: 40, Category: "Nut Based", Quantity: 5},
		{ID: utils.NewID(), Name: "Gulab Jamun", Price: 14, Category: "Syrup Based", Quantity: 5},
	} {
		require.NoError(t, r.Create(ctx, s))
	}

	got, err := r.Search(ctx, domain.SweetFilter{Category: "Syrup Based"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	min, max := 10.0, 20.0
	got, err = r.Search(ctx, domain.SweetFilter{MinPrice: &min, MaxPrice: &max})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = r.Search(ctx, domain.SweetFilter{Name: "Kaju"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Kaju Katli", got[0].Name)
}
