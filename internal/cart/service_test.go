package cart

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/web-visions/energy-solar-backend/internal/catalog"
	"github.com/web-visions/energy-solar-backend/pkg/db/models"
	"github.com/web-visions/energy-solar-backend/pkg/enums"
	pkgerrors "github.com/web-visions/energy-solar-backend/pkg/errors"
	"github.com/web-visions/energy-solar-backend/pkg/logger"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	productColumns := `
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  brand_id TEXT,
  category_id TEXT,
  description TEXT,
  warranty_months INTEGER,
  mrp NUMERIC,
  selling_price NUMERIC,
  images TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME`

	ddl := []string{
		`CREATE TABLE IF NOT EXISTS ups_products (` + productColumns + `, capacity_va INTEGER);`,
		`CREATE TABLE IF NOT EXISTS inverters (` + productColumns + `, capacity_va INTEGER);`,
		`CREATE TABLE IF NOT EXISTS batteries (` + productColumns + `, capacity_ah INTEGER, exchange_discount NUMERIC);`,
		`CREATE TABLE IF NOT EXISTS solar_pv_modules (` + productColumns + `, wattage INTEGER, price NUMERIC);`,
		`CREATE TABLE IF NOT EXISTS solar_pcus (` + productColumns + `, capacity_va INTEGER, price NUMERIC);`,
		`CREATE TABLE IF NOT EXISTS solar_street_lights (` + productColumns + `, wattage INTEGER, price NUMERIC);`,
		`CREATE TABLE IF NOT EXISTS carts (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  total_amount NUMERIC NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME);`,
		`CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  cart_id TEXT NOT NULL,
  product_type TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 1,
  with_old_battery INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME);`,
	}
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}

	tables := []string{
		"ups_products", "inverters", "batteries",
		"solar_pv_modules", "solar_pcus", "solar_street_lights",
		"carts", "cart_items",
	}
	for _, table := range tables {
		require.NoError(t, db.Exec("DELETE FROM "+table).Error)
	}
	return db
}

type testTxRunner struct {
	db *gorm.DB
}

func (r testTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error { return fn(tx) })
}

func dec(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}

func newCartService(t *testing.T, db *gorm.DB) *Service {
	t.Helper()

	registry, err := catalog.NewRegistry(db)
	require.NoError(t, err)

	svc, err := NewService(ServiceParams{
		Repo:     NewRepository(db),
		Registry: registry,
		Tx:       testTxRunner{db: db},
		Logger:   logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard}),
	})
	require.NoError(t, err)
	return svc
}

func seedBattery(t *testing.T, db *gorm.DB, selling string) *models.Battery {
	t.Helper()
	battery := &models.Battery{
		ID:           uuid.New(),
		Name:         "Tall Tubular 150Ah",
		SellingPrice: dec(selling),
		MRP:          dec("14500"),
		IsActive:     true,
	}
	require.NoError(t, db.Create(battery).Error)
	return battery
}

func TestGetCartCreatesEmptyCart(t *testing.T) {
	db := setupCartTestDB(t)
	svc := newCartService(t, db)
	userID := uuid.New()

	view, err := svc.GetCart(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.True(t, view.TotalAmount.IsZero())

	again, err := svc.GetCart(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, view.ID, again.ID, "second fetch must reuse the cart")
}

func TestAddItemMergesExistingLine(t *testing.T) {
	db := setupCartTestDB(t)
	svc := newCartService(t, db)
	ctx := context.Background()
	userID := uuid.New()
	battery := seedBattery(t, db, "12000")

	view, err := svc.AddItem(ctx, userID, AddItemInput{
		ProductType: enums.ProductTypeBattery,
		ProductID:   battery.ID,
		Quantity:    1,
	})
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 1, view.Items[0].Quantity)

	view, err = svc.AddItem(ctx, userID, AddItemInput{
		ProductType:    enums.ProductTypeBattery,
		ProductID:      battery.ID,
		Quantity:       2,
		WithOldBattery: true,
	})
	require.NoError(t, err)
	require.Len(t, view.Items, 1, "same product must merge into one line")
	assert.Equal(t, 3, view.Items[0].Quantity)
	assert.True(t, view.Items[0].WithOldBattery, "merge must take the latest exchange flag")
	assert.True(t, view.TotalAmount.Equal(decimal.RequireFromString("36000")))
}

func TestAddItemUnknownProduct(t *testing.T) {
	db := setupCartTestDB(t)
	svc := newCartService(t, db)

	_, err := svc.AddItem(context.Background(), uuid.New(), AddItemInput{
		ProductType: enums.ProductTypeBattery,
		ProductID:   uuid.New(),
		Quantity:    1,
	})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestAddItemValidation(t *testing.T) {
	db := setupCartTestDB(t)
	svc := newCartService(t, db)

	_, err := svc.AddItem(context.Background(), uuid.New(), AddItemInput{
		ProductType: enums.ProductType("fridge"),
		ProductID:   uuid.New(),
		Quantity:    1,
	})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())

	_, err = svc.AddItem(context.Background(), uuid.New(), AddItemInput{
		ProductType: enums.ProductTypeBattery,
		ProductID:   uuid.New(),
		Quantity:    0,
	})
	appErr = pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestUpdateItemQuantityRecomputesTotal(t *testing.T) {
	db := setupCartTestDB(t)
	svc := newCartService(t, db)
	ctx := context.Background()
	userID := uuid.New()
	battery := seedBattery(t, db, "10000")

	view, err := svc.AddItem(ctx, userID, AddItemInput{
		ProductType: enums.ProductTypeBattery,
		ProductID:   battery.ID,
		Quantity:    1,
	})
	require.NoError(t, err)

	view, err = svc.UpdateItemQuantity(ctx, userID, enums.ProductTypeBattery, battery.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, view.Items[0].Quantity)
	assert.True(t, view.TotalAmount.Equal(decimal.RequireFromString("50000")))

	_, err = svc.UpdateItemQuantity(ctx, userID, enums.ProductTypeBattery, uuid.New(), 2)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestRemoveItemAndClear(t *testing.T) {
	db := setupCartTestDB(t)
	svc := newCartService(t, db)
	ctx := context.Background()
	userID := uuid.New()
	battery := seedBattery(t, db, "10000")

	view, err := svc.AddItem(ctx, userID, AddItemInput{
		ProductType: enums.ProductTypeBattery,
		ProductID:   battery.ID,
		Quantity:    2,
	})
	require.NoError(t, err)

	view, err = svc.RemoveItem(ctx, userID, enums.ProductTypeBattery, battery.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.True(t, view.TotalAmount.IsZero())

	_, err = svc.AddItem(ctx, userID, AddItemInput{
		ProductType: enums.ProductTypeBattery,
		ProductID:   battery.ID,
		Quantity:    1,
	})
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, userID))

	view, err = svc.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.True(t, view.TotalAmount.IsZero())
}

func TestDanglingLinePricesZero(t *testing.T) {
	db := setupCartTestDB(t)
	svc := newCartService(t, db)
	ctx := context.Background()
	userID := uuid.New()
	battery := seedBattery(t, db, "10000")

	_, err := svc.AddItem(ctx, userID, AddItemInput{
		ProductType: enums.ProductTypeBattery,
		ProductID:   battery.ID,
		Quantity:    2,
	})
	require.NoError(t, err)

	require.NoError(t, db.Delete(&models.Battery{}, "id = ?", battery.ID).Error)

	subtotal, err := svc.Subtotal(ctx, userID)
	require.NoError(t, err)
	assert.True(t, subtotal.IsZero(), "dangling line must contribute zero")

	view, err := svc.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1, "dangling line stays visible")
	assert.False(t, view.Items[0].Available)
	assert.True(t, view.Items[0].UnitPrice.IsZero())
}

func TestItemsTxReadsInsideTransaction(t *testing.T) {
	db := setupCartTestDB(t)
	svc := newCartService(t, db)
	ctx := context.Background()
	userID := uuid.New()
	battery := seedBattery(t, db, "12000")

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		record := &models.Cart{ID: uuid.New(), UserID: userID, TotalAmount: decimal.Zero}
		require.NoError(t, tx.Create(record).Error)
		require.NoError(t, tx.Create(&models.CartItem{
			ID:          uuid.New(),
			CartID:      record.ID,
			ProductType: enums.ProductTypeBattery,
			ProductID:   battery.ID,
			Quantity:    1,
		}).Error)

		items, err := svc.ItemsTx(ctx, tx, userID)
		require.NoError(t, err)
		require.Len(t, items, 1, "lines staged in the transaction must be visible to the transactional read")
		assert.Equal(t, battery.ID, items[0].ProductID)
		return nil
	}))
}

func TestRemoveProductEverywhere(t *testing.T) {
	db := setupCartTestDB(t)
	svc := newCartService(t, db)
	ctx := context.Background()
	battery := seedBattery(t, db, "10000")
	other := seedBattery(t, db, "8000")

	userA := uuid.New()
	userB := uuid.New()
	for _, userID := range []uuid.UUID{userA, userB} {
		_, err := svc.AddItem(ctx, userID, AddItemInput{
			ProductType: enums.ProductTypeBattery,
			ProductID:   battery.ID,
			Quantity:    1,
		})
		require.NoError(t, err)
	}
	_, err := svc.AddItem(ctx, userA, AddItemInput{
		ProductType: enums.ProductTypeBattery,
		ProductID:   other.ID,
		Quantity:    1,
	})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveProductEverywhere(ctx, enums.ProductTypeBattery, battery.ID))

	viewA, err := svc.GetCart(ctx, userA)
	require.NoError(t, err)
	require.Len(t, viewA.Items, 1, "only the swept product goes away")
	assert.Equal(t, other.ID, viewA.Items[0].ProductID)
	assert.True(t, viewA.TotalAmount.Equal(decimal.RequireFromString("8000")))

	viewB, err := svc.GetCart(ctx, userB)
	require.NoError(t, err)
	assert.Empty(t, viewB.Items)
	assert.True(t, viewB.TotalAmount.IsZero())
}
