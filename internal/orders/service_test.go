package orders

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/web-visions/energy-solar-backend/internal/cart"
	"github.com/web-visions/energy-solar-backend/internal/catalog"
	"github.com/web-visions/energy-solar-backend/pkg/db/models"
	"github.com/web-visions/energy-solar-backend/pkg/enums"
	pkgerrors "github.com/web-visions/energy-solar-backend/pkg/errors"
	"github.com/web-visions/energy-solar-backend/pkg/logger"
	"github.com/web-visions/energy-solar-backend/pkg/pagination"
	"github.com/web-visions/energy-solar-backend/pkg/types"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
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
		`CREATE TABLE IF NOT EXISTS batteries (` + productColumns + `, capacity_ah INTEGER, exchange_discount NUMERIC);`,
		`CREATE TABLE IF NOT EXISTS solar_pv_modules (` + productColumns + `, wattage INTEGER, price NUMERIC);`,
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
		`CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  order_number TEXT NOT NULL UNIQUE,
  user_id TEXT NOT NULL,
  shipping_full_name TEXT NOT NULL,
  shipping_email TEXT,
  shipping_phone TEXT NOT NULL,
  shipping_address_line TEXT NOT NULL,
  shipping_city TEXT,
  shipping_city_id TEXT,
  shipping_state TEXT,
  shipping_postal_code TEXT,
  payment_method TEXT NOT NULL,
  payment_status TEXT NOT NULL DEFAULT 'pending',
  gateway_order_id TEXT,
  gateway_payment_id TEXT,
  gateway_signature TEXT,
  subtotal NUMERIC NOT NULL,
  delivery_charge NUMERIC NOT NULL DEFAULT 0,
  tax NUMERIC NOT NULL DEFAULT 0,
  total NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  notes TEXT,
  delivery_date DATETIME,
  created_at DATETIME,
  updated_at DATETIME);`,
		`CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_type TEXT NOT NULL,
  product_id TEXT NOT NULL,
  name TEXT NOT NULL,
  image TEXT,
  quantity INTEGER NOT NULL,
  with_old_battery INTEGER NOT NULL DEFAULT 0,
  price NUMERIC NOT NULL,
  total_price NUMERIC NOT NULL,
  created_at DATETIME);`,
	}
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}

	tables := []string{"batteries", "solar_pv_modules", "carts", "cart_items", "orders", "order_items"}
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

type stubCityLoader struct {
	charge decimal.Decimal
}

func (s stubCityLoader) DeliveryCharge(ctx context.Context, cityID *uuid.UUID) (decimal.Decimal, error) {
	if cityID == nil {
		return decimal.Zero, nil
	}
	return s.charge, nil
}

func dec(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}

type testHarness struct {
	db     *gorm.DB
	orders *Service
	cart   *cart.Service
}

func newHarness(t *testing.T, deliveryCharge string) *testHarness {
	t.Helper()

	db := setupOrdersTestDB(t)
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})

	registry, err := catalog.NewRegistry(db)
	require.NoError(t, err)

	cartSvc, err := cart.NewService(cart.ServiceParams{
		Repo:     cart.NewRepository(db),
		Registry: registry,
		Tx:       testTxRunner{db: db},
		Logger:   logg,
	})
	require.NoError(t, err)

	svc, err := NewService(ServiceParams{
		Repo:     NewRepository(db),
		Registry: registry,
		Cart:     cartSvc,
		Cities:   stubCityLoader{charge: decimal.RequireFromString(deliveryCharge)},
		Tx:       testTxRunner{db: db},
		Logger:   logg,
	})
	require.NoError(t, err)

	return &testHarness{db: db, orders: svc, cart: cartSvc}
}

func testShipping(cityID *uuid.UUID) types.ShippingDetails {
	return types.ShippingDetails{
		FullName:    "Asha Verma",
		Email:       "asha@example.com",
		Phone:       "9876543210",
		AddressLine: "12 MG Road",
		City:        "Pune",
		CityID:      cityID,
		State:       "MH",
		PostalCode:  "411001",
	}
}

func TestPlaceCODFreezesPricesAndClearsCart(t *testing.T) {
	h := newHarness(t, "250")
	ctx := context.Background()
	userID := uuid.New()
	cityID := uuid.New()

	pv := &models.SolarPV{
		ID:           uuid.New(),
		Name:         "Mono PERC 540W",
		MRP:          dec("18000"),
		SellingPrice: dec("15500"),
		Price:        dec("14750"),
		IsActive:     true,
	}
	require.NoError(t, h.db.Create(pv).Error)

	_, err := h.cart.AddItem(ctx, userID, cart.AddItemInput{
		ProductType: enums.ProductTypeSolarPV,
		ProductID:   pv.ID,
		Quantity:    2,
	})
	require.NoError(t, err)

	order, err := h.orders.PlaceCOD(ctx, userID, PlaceInput{Shipping: testShipping(&cityID)})
	require.NoError(t, err)

	assert.Equal(t, enums.PaymentMethodCOD, order.PaymentMethod)
	assert.Equal(t, enums.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, enums.OrderStatusPending, order.Status)

	require.Len(t, order.Items, 1)
	assert.True(t, order.Items[0].Price.Equal(decimal.RequireFromString("14750")),
		"flat quoted price must win at freeze time")
	assert.True(t, order.Subtotal.Equal(decimal.RequireFromString("29500")))
	assert.True(t, order.DeliveryCharge.Equal(decimal.RequireFromString("250")))
	assert.True(t, order.Total.Equal(decimal.RequireFromString("29750")))

	expectedPrefix := "ORD" + time.Now().UTC().Format("060102")
	assert.Equal(t, expectedPrefix+"001", order.OrderNumber, "daily sequence is zero padded to three digits")

	view, err := h.cart.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, view.Items, "checkout must clear the cart")
}

func TestPlaceCODEmptyCart(t *testing.T) {
	h := newHarness(t, "0")

	_, err := h.orders.PlaceCOD(context.Background(), uuid.New(), PlaceInput{Shipping: testShipping(nil)})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestOrderNumberIncrementsWithinDay(t *testing.T) {
	h := newHarness(t, "0")
	ctx := context.Background()

	battery := &models.Battery{
		ID:           uuid.New(),
		Name:         "Battery",
		SellingPrice: dec("9000"),
		IsActive:     true,
	}
	require.NoError(t, h.db.Create(battery).Error)

	var numbers []string
	for i := 0; i < 3; i++ {
		userID := uuid.New()
		_, err := h.cart.AddItem(ctx, userID, cart.AddItemInput{
			ProductType: enums.ProductTypeBattery,
			ProductID:   battery.ID,
			Quantity:    1,
		})
		require.NoError(t, err)

		order, err := h.orders.PlaceCOD(ctx, userID, PlaceInput{Shipping: testShipping(nil)})
		require.NoError(t, err)
		numbers = append(numbers, order.OrderNumber)
	}

	day := time.Now().UTC().Format("060102")
	for i, number := range numbers {
		assert.Equal(t, fmt.Sprintf("ORD%s%03d", day, i+1), number)
	}
}

func TestDanglingCartLineRejectsCheckout(t *testing.T) {
	h := newHarness(t, "0")
	ctx := context.Background()
	userID := uuid.New()

	battery := &models.Battery{
		ID:           uuid.New(),
		Name:         "Battery",
		SellingPrice: dec("9000"),
		IsActive:     true,
	}
	ghost := &models.Battery{
		ID:           uuid.New(),
		Name:         "Ghost",
		SellingPrice: dec("5000"),
		IsActive:     true,
	}
	require.NoError(t, h.db.Create(battery).Error)
	require.NoError(t, h.db.Create(ghost).Error)

	for _, id := range []uuid.UUID{battery.ID, ghost.ID} {
		_, err := h.cart.AddItem(ctx, userID, cart.AddItemInput{
			ProductType: enums.ProductTypeBattery,
			ProductID:   id,
			Quantity:    1,
		})
		require.NoError(t, err)
	}
	require.NoError(t, h.db.Delete(&models.Battery{}, "id = ?", ghost.ID).Error)

	_, err := h.orders.PlaceCOD(ctx, userID, PlaceInput{Shipping: testShipping(nil)})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr, "a vanished product must fail the whole checkout")
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
	details, ok := appErr.Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, ghost.ID.String(), details["productId"], "the error must name the offending product")

	var count int64
	require.NoError(t, h.db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count, "no partial order may be persisted")

	view, err := h.cart.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, view.Items, 2, "the cart is untouched after the rollback")
}

func TestGetForUserScopesByOwner(t *testing.T) {
	h := newHarness(t, "0")
	ctx := context.Background()
	owner := uuid.New()

	battery := &models.Battery{ID: uuid.New(), Name: "Battery", SellingPrice: dec("9000"), IsActive: true}
	require.NoError(t, h.db.Create(battery).Error)
	_, err := h.cart.AddItem(ctx, owner, cart.AddItemInput{
		ProductType: enums.ProductTypeBattery,
		ProductID:   battery.ID,
		Quantity:    1,
	})
	require.NoError(t, err)
	order, err := h.orders.PlaceCOD(ctx, owner, PlaceInput{Shipping: testShipping(nil)})
	require.NoError(t, err)

	got, err := h.orders.GetForUser(ctx, owner, enums.UserRoleUser, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	_, err = h.orders.GetForUser(ctx, uuid.New(), enums.UserRoleUser, order.ID)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code(), "foreign orders must look missing")

	got, err = h.orders.GetForUser(ctx, uuid.New(), enums.UserRoleAdmin, order.ID)
	require.NoError(t, err, "admins can read any order")
	assert.Equal(t, order.ID, got.ID)
}

func TestListAllFilters(t *testing.T) {
	h := newHarness(t, "0")
	ctx := context.Background()

	battery := &models.Battery{ID: uuid.New(), Name: "Battery", SellingPrice: dec("9000"), IsActive: true}
	require.NoError(t, h.db.Create(battery).Error)

	owner := uuid.New()
	_, err := h.cart.AddItem(ctx, owner, cart.AddItemInput{
		ProductType: enums.ProductTypeBattery,
		ProductID:   battery.ID,
		Quantity:    1,
	})
	require.NoError(t, err)
	order, err := h.orders.PlaceCOD(ctx, owner, PlaceInput{Shipping: testShipping(nil)})
	require.NoError(t, err)

	shipped := enums.OrderStatusShipped
	_, meta, err := h.orders.ListAll(ctx, ListQuery{Status: &shipped, Page: pagination.Params{}})
	require.NoError(t, err)
	assert.Zero(t, meta.Total)

	results, meta, err := h.orders.ListAll(ctx, ListQuery{Search: "asha", Page: pagination.Params{}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), meta.Total, "search must match the recipient name")
	require.Len(t, results, 1)
	assert.Equal(t, order.OrderNumber, results[0].OrderNumber)

	_, meta, err = h.orders.ListAll(ctx, ListQuery{Search: "ASHA@EXAMPLE.COM", Page: pagination.Params{}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), meta.Total, "search must match the recipient email, case folded")

	_, meta, err = h.orders.ListAll(ctx, ListQuery{Search: "nobody@example.com", Page: pagination.Params{}})
	require.NoError(t, err)
	assert.Zero(t, meta.Total)
}

func TestUpdateStatusOverwrites(t *testing.T) {
	h := newHarness(t, "0")
	ctx := context.Background()

	battery := &models.Battery{ID: uuid.New(), Name: "Battery", SellingPrice: dec("9000"), IsActive: true}
	require.NoError(t, h.db.Create(battery).Error)

	owner := uuid.New()
	_, err := h.cart.AddItem(ctx, owner, cart.AddItemInput{
		ProductType: enums.ProductTypeBattery,
		ProductID:   battery.ID,
		Quantity:    1,
	})
	require.NoError(t, err)
	order, err := h.orders.PlaceCOD(ctx, owner, PlaceInput{Shipping: testShipping(nil)})
	require.NoError(t, err)

	paid := enums.PaymentStatusPaid
	delivered := time.Now().UTC().Add(48 * time.Hour)
	notes := "leave at gate"
	updated, err := h.orders.UpdateStatus(ctx, order.ID, UpdateStatusInput{
		Status:        enums.OrderStatusDelivered,
		PaymentStatus: &paid,
		Notes:         &notes,
		DeliveryDate:  &delivered,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusDelivered, updated.Status)
	assert.Equal(t, enums.PaymentStatusPaid, updated.PaymentStatus)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, notes, *updated.Notes)

	// cancelled back to pending is allowed, there is no transition graph
	updated, err = h.orders.UpdateStatus(ctx, order.ID, UpdateStatusInput{Status: enums.OrderStatusPending})
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPending, updated.Status)

	_, err = h.orders.UpdateStatus(ctx, uuid.New(), UpdateStatusInput{Status: enums.OrderStatusShipped})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())

	_, err = h.orders.UpdateStatus(ctx, order.ID, UpdateStatusInput{Status: enums.OrderStatus("lost")})
	appErr = pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}
