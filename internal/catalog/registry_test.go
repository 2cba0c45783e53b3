package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/web-visions/energy-solar-backend/pkg/db/models"
	"github.com/web-visions/energy-solar-backend/pkg/enums"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
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
		`CREATE TABLE IF NOT EXISTS brands (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  logo_url TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME);`,
		`CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME);`,
	}
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}

	tables := []string{
		"ups_products", "inverters", "batteries",
		"solar_pv_modules", "solar_pcus", "solar_street_lights",
		"brands", "categories",
	}
	for _, table := range tables {
		require.NoError(t, db.Exec("DELETE FROM "+table).Error)
	}
	return db
}

func dec(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}

func TestRegistryResolvePrecedence(t *testing.T) {
	db := setupCatalogTestDB(t)
	registry, err := NewRegistry(db)
	require.NoError(t, err)
	ctx := context.Background()

	battery := &models.Battery{
		ID:           uuid.New(),
		Name:         "Tall Tubular 150Ah",
		MRP:          dec("14500"),
		SellingPrice: dec("12999"),
		IsActive:     true,
	}
	require.NoError(t, db.Create(battery).Error)

	pv := &models.SolarPV{
		ID:           uuid.New(),
		Name:         "Mono PERC 540W",
		MRP:          dec("18000"),
		SellingPrice: dec("15500"),
		Price:        dec("14750"),
		IsActive:     true,
	}
	require.NoError(t, db.Create(pv).Error)

	info, err := registry.Resolve(ctx, enums.ProductTypeBattery, battery.ID)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "Tall Tubular 150Ah", info.Name)
	assert.True(t, info.CartPrice().Equal(decimal.RequireFromString("12999")))
	assert.True(t, info.OrderPrice().Equal(decimal.RequireFromString("12999")))

	info, err = registry.Resolve(ctx, enums.ProductTypeSolarPV, pv.ID)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.True(t, info.CartPrice().Equal(decimal.RequireFromString("15500")),
		"cart price must ignore the flat quoted price")
	assert.True(t, info.OrderPrice().Equal(decimal.RequireFromString("14750")),
		"order price must prefer the flat quoted price")
}

func TestRegistryResolveFallsBackToMRP(t *testing.T) {
	db := setupCatalogTestDB(t)
	registry, err := NewRegistry(db)
	require.NoError(t, err)

	ups := &models.UPS{
		ID:       uuid.New(),
		Name:     "Home UPS 900VA",
		MRP:      dec("6500"),
		IsActive: true,
	}
	require.NoError(t, db.Create(ups).Error)

	info, err := registry.Resolve(context.Background(), enums.ProductTypeUPS, ups.ID)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.True(t, info.CartPrice().Equal(decimal.RequireFromString("6500")))
}

func TestRegistryResolveUnpricedProductIsZero(t *testing.T) {
	db := setupCatalogTestDB(t)
	registry, err := NewRegistry(db)
	require.NoError(t, err)

	inverter := &models.Inverter{ID: uuid.New(), Name: "Unpriced", IsActive: true}
	require.NoError(t, db.Create(inverter).Error)

	info, err := registry.Resolve(context.Background(), enums.ProductTypeInverter, inverter.ID)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.True(t, info.CartPrice().IsZero())
	assert.True(t, info.OrderPrice().IsZero())
}

func TestRegistryResolveMissingProductIsNil(t *testing.T) {
	db := setupCatalogTestDB(t)
	registry, err := NewRegistry(db)
	require.NoError(t, err)

	info, err := registry.Resolve(context.Background(), enums.ProductTypeUPS, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestRegistryResolveUnknownType(t *testing.T) {
	db := setupCatalogTestDB(t)
	registry, err := NewRegistry(db)
	require.NoError(t, err)

	_, err = registry.Resolve(context.Background(), enums.ProductType("fridge"), uuid.New())
	assert.Error(t, err)
}

func TestProductInfoNilReceiverPricesZero(t *testing.T) {
	var info *ProductInfo
	assert.True(t, info.CartPrice().IsZero())
	assert.True(t, info.OrderPrice().IsZero())
}
