package cities

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
)

func setupCitiesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`CREATE TABLE IF NOT EXISTS cities (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  state TEXT NOT NULL,
  delivery_charge NUMERIC NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME);`).Error)
	require.NoError(t, db.Exec("DELETE FROM cities").Error)
	return db
}

func seedCity(t *testing.T, db *gorm.DB, name, charge string, active bool) *models.City {
	t.Helper()
	city := &models.City{
		ID:             uuid.New(),
		Name:           name,
		State:          "Maharashtra",
		DeliveryCharge: decimal.RequireFromString(charge),
		IsActive:       active,
	}
	require.NoError(t, db.Create(city).Error)
	return city
}

func TestListReturnsActiveCitiesSorted(t *testing.T) {
	db := setupCitiesTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	seedCity(t, db, "Pune", "300", true)
	seedCity(t, db, "Mumbai", "450", true)
	seedCity(t, db, "Nashik", "500", false)

	cities, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, cities, 2)
	assert.Equal(t, "Mumbai", cities[0].Name)
	assert.Equal(t, "Pune", cities[1].Name)
	assert.True(t, cities[0].DeliveryCharge.Equal(decimal.RequireFromString("450")))
}

func TestDeliveryCharge(t *testing.T) {
	db := setupCitiesTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	ctx := context.Background()

	active := seedCity(t, db, "Pune", "300", true)
	inactive := seedCity(t, db, "Nashik", "500", false)

	charge, err := svc.DeliveryCharge(ctx, &active.ID)
	require.NoError(t, err)
	assert.True(t, charge.Equal(decimal.RequireFromString("300")))

	charge, err = svc.DeliveryCharge(ctx, nil)
	require.NoError(t, err)
	assert.True(t, charge.IsZero(), "no city means no charge")

	unknown := uuid.New()
	charge, err = svc.DeliveryCharge(ctx, &unknown)
	require.NoError(t, err)
	assert.True(t, charge.IsZero(), "unknown cities must not block checkout")

	charge, err = svc.DeliveryCharge(ctx, &inactive.ID)
	require.NoError(t, err)
	assert.True(t, charge.IsZero())
}
