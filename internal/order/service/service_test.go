package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/cosmocats/internal/clock"
	"github.com/smallbiznis/cosmocats/internal/migration"
	"github.com/smallbiznis/cosmocats/internal/order/domain"
	"github.com/smallbiznis/cosmocats/internal/order/repository"
	productrepository "github.com/smallbiznis/cosmocats/internal/product/repository"
	"github.com/smallbiznis/cosmocats/internal/seed"
	"github.com/smallbiznis/cosmocats/pkg/db"
	"github.com/smallbiznis/cosmocats/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc   *Service
	db    *gorm.DB
	clock *clock.FakeClock
	// product name to id, from the sample catalog
	products map[string]string
}

func setup(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()

	conn, err := db.NewTest(t.Name())
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(conn))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	require.NoError(t, seed.EnsureCategories(ctx, conn, node))
	require.NoError(t, seed.EnsureSampleProducts(ctx, conn, node))

	var rows []struct {
		ID   int64
		Name string
	}
	require.NoError(t, conn.Raw(`SELECT id, name FROM products`).Scan(&rows).Error)
	products := make(map[string]string, len(rows))
	for _, r := range rows {
		products[r.Name] = snowflake.ID(r.ID).String()
	}

	clk := clock.NewFakeClock(now)
	svc := New(Params{
		DB:       conn,
		Log:      zap.NewNop(),
		GenID:    node,
		Clock:    clk,
		Repo:     repository.Provide(),
		Products: productrepository.Provide(),
	}).(*Service)
	return fixture{svc: svc, db: conn, clock: clk, products: products}
}

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCreateWithTotalGeneratesNumberAndDefaults(t *testing.T) {
	f := setup(t)

	created, err := f.svc.Create(context.Background(), domain.CreateRequest{TotalAmount: amount("100.00")})
	require.NoError(t, err)
	assert.Regexp(t, `^ORD-[0-9A-F]{8}$`, created.OrderNumber)
	assert.Equal(t, domain.StatusPending, created.Status)
	assert.True(t, created.OrderDate.Equal(now))
	assert.True(t, created.TotalAmount.Equal(decimal.RequireFromString("100")))
	assert.Empty(t, created.Items)
}

func TestCreateComputesTotalAndSnapshotsPrice(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, domain.CreateRequest{
		Items: []domain.CreateItemRequest{
			{ProductID: f.products["Galaxy Star Ball"], Quantity: 2},
			{ProductID: f.products["Cosmic Milk"], Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.True(t, created.TotalAmount.Equal(decimal.RequireFromString("75.48")), created.TotalAmount.String())
	require.Len(t, created.Items, 2)

	ballID, err := snowflake.ParseString(f.products["Galaxy Star Ball"])
	require.NoError(t, err)
	require.NoError(t, f.db.Exec(`UPDATE products SET price = ? WHERE id = ?`, "99.99", ballID.Int64()).Error)

	got, err := f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Galaxy Star Ball", got.Items[0].ProductName)
	assert.True(t, got.Items[0].PriceAtOrder.Equal(decimal.RequireFromString("29.99")))
	assert.True(t, got.TotalAmount.Equal(decimal.RequireFromString("75.48")))
}

func TestCreateRejections(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, domain.CreateRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidTotalAmount)

	_, err = f.svc.Create(ctx, domain.CreateRequest{TotalAmount: amount("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidTotalAmount)

	_, err = f.svc.Create(ctx, domain.CreateRequest{TotalAmount: amount("1.234")})
	assert.ErrorIs(t, err, domain.ErrInvalidTotalAmount)

	_, err = f.svc.Create(ctx, domain.CreateRequest{TotalAmount: amount("1"), Status: "LOST"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = f.svc.Create(ctx, domain.CreateRequest{Items: []domain.CreateItemRequest{{ProductID: "777", Quantity: 1}}})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = f.svc.Create(ctx, domain.CreateRequest{Items: []domain.CreateItemRequest{{ProductID: f.products["Cosmic Milk"], Quantity: 0}}})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	var count int64
	require.NoError(t, f.db.Raw(`SELECT COUNT(*) FROM orders`).Scan(&count).Error)
	assert.Zero(t, count)
}

func TestCreateSuppliedDuplicateNumber(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, domain.CreateRequest{OrderNumber: "ORD-FIXED001", TotalAmount: amount("10")})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, domain.CreateRequest{OrderNumber: "ORD-FIXED001", TotalAmount: amount("10")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateRegeneratesCollidingNumber(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, domain.CreateRequest{OrderNumber: "ORD-AAAAAAAA", TotalAmount: amount("10")})
	require.NoError(t, err)

	numbers := []string{"ORD-AAAAAAAA", "ORD-AAAAAAAA", "ORD-BBBBBBBB"}
	calls := 0
	f.svc.newNumber = func() string {
		n := numbers[calls]
		calls++
		return n
	}

	created, err := f.svc.Create(ctx, domain.CreateRequest{TotalAmount: amount("10")})
	require.NoError(t, err)
	assert.Equal(t, "ORD-BBBBBBBB", created.OrderNumber)
	assert.Equal(t, 3, calls)

	f.svc.newNumber = func() string { return "ORD-AAAAAAAA" }
	_, err = f.svc.Create(ctx, domain.CreateRequest{TotalAmount: amount("10")})
	assert.ErrorIs(t, err, domain.ErrNumberExhausted)
}

func TestQueries(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	old, err := f.svc.Create(ctx, domain.CreateRequest{
		OrderNumber: "ORD-OLD00001",
		TotalAmount: amount("50"),
		OrderDate:   timePtr(now.Add(-72 * time.Hour)),
	})
	require.NoError(t, err)
	recent, err := f.svc.Create(ctx, domain.CreateRequest{
		OrderNumber: "ORD-NEW00001",
		TotalAmount: amount("150"),
		Status:      "CONFIRMED",
		OrderDate:   timePtr(now.Add(-time.Hour)),
	})
	require.NoError(t, err)

	byNumber, err := f.svc.GetByNumber(ctx, "ORD-OLD00001")
	require.NoError(t, err)
	assert.Equal(t, old.ID, byNumber.ID)

	_, err = f.svc.GetByNumber(ctx, "ORD-MISSING")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	confirmed, err := f.svc.ListByStatus(ctx, "confirmed")
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	assert.Equal(t, recent.ID, confirmed[0].ID)

	lastDay, err := f.svc.ListRecent(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	require.Len(t, lastDay, 1)
	assert.Equal(t, recent.ID, lastDay[0].ID)

	above, err := f.svc.ListAboveAmount(ctx, decimal.RequireFromString("40"))
	require.NoError(t, err)
	require.Len(t, above, 2)
	assert.Equal(t, recent.ID, above[0].ID)

	above, err = f.svc.ListAboveAmount(ctx, decimal.RequireFromString("150"))
	require.NoError(t, err)
	assert.Empty(t, above)
}

func TestListPageWalksAllOrders(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	var created []string
	for i := 0; i < 5; i++ {
		order, err := f.svc.Create(ctx, domain.CreateRequest{TotalAmount: amount("10")})
		require.NoError(t, err)
		created = append(created, order.ID)
	}

	var seen []string
	page := pagination.Pagination{PageSize: 2}
	for i := 0; i < 5; i++ {
		items, info, err := f.svc.ListPage(ctx, page)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(items), 2)
		for _, item := range items {
			seen = append(seen, item.ID)
		}
		if !info.HasMore {
			break
		}
		require.NotEmpty(t, info.NextPageToken)
		page.PageToken = info.NextPageToken
	}

	// newest id first, every order exactly once
	require.Len(t, seen, len(created))
	for i := range created {
		assert.Equal(t, created[len(created)-1-i], seen[i])
	}
}

func TestListPageRejectsBadInput(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, _, err := f.svc.ListPage(ctx, pagination.Pagination{PageSize: pagination.MaxPageSize + 1})
	assert.ErrorIs(t, err, pagination.ErrInvalidPageSize)

	_, _, err = f.svc.ListPage(ctx, pagination.Pagination{PageToken: "not-a-token"})
	assert.ErrorIs(t, err, pagination.ErrInvalidPageToken)

	token, err := pagination.EncodeCursor(pagination.Cursor{ID: "abc"})
	require.NoError(t, err)
	_, _, err = f.svc.ListPage(ctx, pagination.Pagination{PageToken: token})
	assert.ErrorIs(t, err, pagination.ErrInvalidPageToken)

	items, info, err := f.svc.ListPage(ctx, pagination.Pagination{PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.False(t, info.HasMore)
}

func TestUpdateStatusAndDelete(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, domain.CreateRequest{
		Items: []domain.CreateItemRequest{{ProductID: f.products["Space Laser"], Quantity: 1}},
	})
	require.NoError(t, err)

	f.clock.Advance(time.Minute)
	updated, err := f.svc.UpdateStatus(ctx, created.ID, "delivered")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, updated.Status)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	// any status may follow any other
	updated, err = f.svc.UpdateStatus(ctx, created.ID, "PENDING")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, updated.Status)

	_, err = f.svc.UpdateStatus(ctx, created.ID, "LOST")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	_, err = f.svc.UpdateStatus(ctx, "31337", "SHIPPED")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, f.svc.Delete(ctx, created.ID))
	_, err = f.svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.svc.Delete(ctx, created.ID), domain.ErrNotFound)

	var items int64
	require.NoError(t, f.db.Raw(`SELECT COUNT(*) FROM order_items`).Scan(&items).Error)
	assert.Zero(t, items)
}

func timePtr(t time.Time) *time.Time {
	return &t
}
