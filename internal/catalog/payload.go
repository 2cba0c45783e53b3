package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/web-visions/energy-solar-backend/pkg/db/models"
	"github.com/web-visions/energy-solar-backend/pkg/enums"
)

// Product is the API view of a catalog listing. The six families share
// this shape; family-specific fields stay nil for the others.
type Product struct {
	ID               uuid.UUID         `json:"id"`
	Type             enums.ProductType `json:"type"`
	Name             string            `json:"name"`
	BrandID          *uuid.UUID        `json:"brandId,omitempty"`
	CategoryID       *uuid.UUID        `json:"categoryId,omitempty"`
	Description      *string           `json:"description,omitempty"`
	CapacityVA       *int              `json:"capacityVa,omitempty"`
	CapacityAH       *int              `json:"capacityAh,omitempty"`
	Wattage          *int              `json:"wattage,omitempty"`
	WarrantyMonths   *int              `json:"warrantyMonths,omitempty"`
	MRP              *decimal.Decimal  `json:"mrp,omitempty"`
	SellingPrice     *decimal.Decimal  `json:"sellingPrice,omitempty"`
	ExchangeDiscount *decimal.Decimal  `json:"exchangeDiscount,omitempty"`
	Price            *decimal.Decimal  `json:"price,omitempty"`
	Images           []string          `json:"images"`
	IsActive         bool              `json:"isActive"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

func fromUPS(m models.UPS) Product {
	return Product{
		ID:             m.ID,
		Type:           enums.ProductTypeUPS,
		Name:           m.Name,
		BrandID:        m.BrandID,
		CategoryID:     m.CategoryID,
		Description:    m.Description,
		CapacityVA:     m.CapacityVA,
		WarrantyMonths: m.WarrantyMonths,
		MRP:            m.MRP,
		SellingPrice:   m.SellingPrice,
		Images:         m.Images,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func fromInverter(m models.Inverter) Product {
	return Product{
		ID:             m.ID,
		Type:           enums.ProductTypeInverter,
		Name:           m.Name,
		BrandID:        m.BrandID,
		CategoryID:     m.CategoryID,
		Description:    m.Description,
		CapacityVA:     m.CapacityVA,
		WarrantyMonths: m.WarrantyMonths,
		MRP:            m.MRP,
		SellingPrice:   m.SellingPrice,
		Images:         m.Images,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func fromBattery(m models.Battery) Product {
	return Product{
		ID:               m.ID,
		Type:             enums.ProductTypeBattery,
		Name:             m.Name,
		BrandID:          m.BrandID,
		CategoryID:       m.CategoryID,
		Description:      m.Description,
		CapacityAH:       m.CapacityAH,
		WarrantyMonths:   m.WarrantyMonths,
		MRP:              m.MRP,
		SellingPrice:     m.SellingPrice,
		ExchangeDiscount: m.ExchangeDiscount,
		Images:           m.Images,
		IsActive:         m.IsActive,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func fromSolarPV(m models.SolarPV) Product {
	return Product{
		ID:           m.ID,
		Type:         enums.ProductTypeSolarPV,
		Name:         m.Name,
		BrandID:      m.BrandID,
		CategoryID:   m.CategoryID,
		Description:  m.Description,
		Wattage:      m.Wattage,
		Price:        m.Price,
		MRP:          m.MRP,
		SellingPrice: m.SellingPrice,
		Images:       m.Images,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromSolarPCU(m models.SolarPCU) Product {
	return Product{
		ID:           m.ID,
		Type:         enums.ProductTypeSolarPCU,
		Name:         m.Name,
		BrandID:      m.BrandID,
		CategoryID:   m.CategoryID,
		Description:  m.Description,
		CapacityVA:   m.CapacityVA,
		Price:        m.Price,
		MRP:          m.MRP,
		SellingPrice: m.SellingPrice,
		Images:       m.Images,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromSolarStreetLight(m models.SolarStreetLight) Product {
	return Product{
		ID:           m.ID,
		Type:         enums.ProductTypeSolarStreetLight,
		Name:         m.Name,
		BrandID:      m.BrandID,
		CategoryID:   m.CategoryID,
		Description:  m.Description,
		Wattage:      m.Wattage,
		Price:        m.Price,
		MRP:          m.MRP,
		SellingPrice: m.SellingPrice,
		Images:       m.Images,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
