package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// The six product families share a price-bearing shape but keep their own
// tables; carts and orders reference them weakly by (type, id). The battery,
// UPS and inverter lines price off MRP/selling price, while the solar lines
// additionally carry a flat quoted price that wins at order freeze time.

// UPS is an uninterruptible power supply listing.
type UPS struct {
	ID             uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string           `gorm:"column:name;not null"`
	BrandID        *uuid.UUID       `gorm:"column:brand_id;type:uuid"`
	CategoryID     *uuid.UUID       `gorm:"column:category_id;type:uuid"`
	Description    *string          `gorm:"column:description"`
	CapacityVA     *int             `gorm:"column:capacity_va"`
	WarrantyMonths *int             `gorm:"column:warranty_months"`
	MRP            *decimal.Decimal `gorm:"column:mrp;type:numeric(12,2)"`
	SellingPrice   *decimal.Decimal `gorm:"column:selling_price;type:numeric(12,2)"`
	Images         pq.StringArray   `gorm:"column:images;type:text[]"`
	IsActive       bool             `gorm:"column:is_active;not null;default:true"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (UPS) TableName() string { return "ups_products" }

// Inverter is a home/commercial inverter listing.
type Inverter struct {
	ID             uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string           `gorm:"column:name;not null"`
	BrandID        *uuid.UUID       `gorm:"column:brand_id;type:uuid"`
	CategoryID     *uuid.UUID       `gorm:"column:category_id;type:uuid"`
	Description    *string          `gorm:"column:description"`
	CapacityVA     *int             `gorm:"column:capacity_va"`
	WarrantyMonths *int             `gorm:"column:warranty_months"`
	MRP            *decimal.Decimal `gorm:"column:mrp;type:numeric(12,2)"`
	SellingPrice   *decimal.Decimal `gorm:"column:selling_price;type:numeric(12,2)"`
	Images         pq.StringArray   `gorm:"column:images;type:text[]"`
	IsActive       bool             `gorm:"column:is_active;not null;default:true"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (Inverter) TableName() string { return "inverters" }

// Battery is a storage battery listing; supports old-battery exchange.
type Battery struct {
	ID               uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name             string           `gorm:"column:name;not null"`
	BrandID          *uuid.UUID       `gorm:"column:brand_id;type:uuid"`
	CategoryID       *uuid.UUID       `gorm:"column:category_id;type:uuid"`
	Description      *string          `gorm:"column:description"`
	CapacityAH       *int             `gorm:"column:capacity_ah"`
	WarrantyMonths   *int             `gorm:"column:warranty_months"`
	MRP              *decimal.Decimal `gorm:"column:mrp;type:numeric(12,2)"`
	SellingPrice     *decimal.Decimal `gorm:"column:selling_price;type:numeric(12,2)"`
	ExchangeDiscount *decimal.Decimal `gorm:"column:exchange_discount;type:numeric(12,2)"`
	Images           pq.StringArray   `gorm:"column:images;type:text[]"`
	IsActive         bool             `gorm:"column:is_active;not null;default:true"`
	CreatedAt        time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (Battery) TableName() string { return "batteries" }

// SolarPV is a photovoltaic module listing.
type SolarPV struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string           `gorm:"column:name;not null"`
	BrandID      *uuid.UUID       `gorm:"column:brand_id;type:uuid"`
	CategoryID   *uuid.UUID       `gorm:"column:category_id;type:uuid"`
	Description  *string          `gorm:"column:description"`
	Wattage      *int             `gorm:"column:wattage"`
	Price        *decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	MRP          *decimal.Decimal `gorm:"column:mrp;type:numeric(12,2)"`
	SellingPrice *decimal.Decimal `gorm:"column:selling_price;type:numeric(12,2)"`
	Images       pq.StringArray   `gorm:"column:images;type:text[]"`
	IsActive     bool             `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (SolarPV) TableName() string { return "solar_pv_modules" }

// SolarPCU is a solar power-conditioning unit listing.
type SolarPCU struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string           `gorm:"column:name;not null"`
	BrandID      *uuid.UUID       `gorm:"column:brand_id;type:uuid"`
	CategoryID   *uuid.UUID       `gorm:"column:category_id;type:uuid"`
	Description  *string          `gorm:"column:description"`
	CapacityVA   *int             `gorm:"column:capacity_va"`
	Price        *decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	MRP          *decimal.Decimal `gorm:"column:mrp;type:numeric(12,2)"`
	SellingPrice *decimal.Decimal `gorm:"column:selling_price;type:numeric(12,2)"`
	Images       pq.StringArray   `gorm:"column:images;type:text[]"`
	IsActive     bool             `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (SolarPCU) TableName() string { return "solar_pcus" }

// SolarStreetLight is an integrated street light listing.
type SolarStreetLight struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string           `gorm:"column:name;not null"`
	BrandID      *uuid.UUID       `gorm:"column:brand_id;type:uuid"`
	CategoryID   *uuid.UUID       `gorm:"column:category_id;type:uuid"`
	Description  *string          `gorm:"column:description"`
	Wattage      *int             `gorm:"column:wattage"`
	Price        *decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	MRP          *decimal.Decimal `gorm:"column:mrp;type:numeric(12,2)"`
	SellingPrice *decimal.Decimal `gorm:"column:selling_price;type:numeric(12,2)"`
	Images       pq.StringArray   `gorm:"column:images;type:text[]"`
	IsActive     bool             `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (SolarStreetLight) TableName() string { return "solar_street_lights" }
