package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/web-visions/energy-solar-backend/pkg/db/models"
	"github.com/web-visions/energy-solar-backend/pkg/enums"
)

// ProductInfo is the pricing view of a product shared by carts and orders.
type ProductInfo struct {
	ID           uuid.UUID
	Type         enums.ProductType
	Name         string
	Image        *string
	MRP          *decimal.Decimal
	SellingPrice *decimal.Decimal
	Price        *decimal.Decimal
}

// CartPrice is the unit price used when recomputing cart totals.
// Selling price wins over MRP; a product with neither prices at zero.
func (p *ProductInfo) CartPrice() decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	if p.SellingPrice != nil {
		return *p.SellingPrice
	}
	if p.MRP != nil {
		return *p.MRP
	}
	return decimal.Zero
}

// OrderPrice is the unit price frozen onto order lines. The flat quoted
// price wins when present, then selling price, then MRP.
func (p *ProductInfo) OrderPrice() decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	if p.Price != nil {
		return *p.Price
	}
	return p.CartPrice()
}

// Registry resolves products across the six family tables by type.
type Registry struct {
	db *gorm.DB
}

// NewRegistry builds a registry bound to the provided database.
func NewRegistry(db *gorm.DB) (*Registry, error) {
	if db == nil {
		return nil, errors.New("db is required")
	}
	return &Registry{db: db}, nil
}

// WithTx returns a registry bound to the given transaction.
func (r *Registry) WithTx(tx *gorm.DB) *Registry {
	if tx == nil {
		return r
	}
	return &Registry{db: tx}
}

// Resolve loads the pricing view for one product. A missing product
// resolves to nil without an error so callers can tolerate dangling lines.
func (r *Registry) Resolve(ctx context.Context, productType enums.ProductType, id uuid.UUID) (*ProductInfo, error) {
	load, ok := loaders[productType]
	if !ok {
		return nil, errors.New("unknown product type " + productType.String())
	}
	return load(ctx, r.db, id)
}

type loadFunc func(ctx context.Context, db *gorm.DB, id uuid.UUID) (*ProductInfo, error)

func loadAs[M any](convert func(*M) *ProductInfo) loadFunc {
	return func(ctx context.Context, db *gorm.DB, id uuid.UUID) (*ProductInfo, error) {
		var m M
		err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return convert(&m), nil
	}
}

var loaders = map[enums.ProductType]loadFunc{
	enums.ProductTypeUPS: loadAs(func(m *models.UPS) *ProductInfo {
		return &ProductInfo{
			ID:           m.ID,
			Type:         enums.ProductTypeUPS,
			Name:         m.Name,
			Image:        firstImage(m.Images),
			MRP:          m.MRP,
			SellingPrice: m.SellingPrice,
		}
	}),
	enums.ProductTypeInverter: loadAs(func(m *models.Inverter) *ProductInfo {
		return &ProductInfo{
			ID:           m.ID,
			Type:         enums.ProductTypeInverter,
			Name:         m.Name,
			Image:        firstImage(m.Images),
			MRP:          m.MRP,
			SellingPrice: m.SellingPrice,
		}
	}),
	enums.ProductTypeBattery: loadAs(func(m *models.Battery) *ProductInfo {
		return &ProductInfo{
			ID:           m.ID,
			Type:         enums.ProductTypeBattery,
			Name:         m.Name,
			Image:        firstImage(m.Images),
			MRP:          m.MRP,
			SellingPrice: m.SellingPrice,
		}
	}),
	enums.ProductTypeSolarPV: loadAs(func(m *models.SolarPV) *ProductInfo {
		return &ProductInfo{
			ID:           m.ID,
			Type:         enums.ProductTypeSolarPV,
			Name:         m.Name,
			Image:        firstImage(m.Images),
			MRP:          m.MRP,
			SellingPrice: m.SellingPrice,
			Price:        m.Price,
		}
	}),
	enums.ProductTypeSolarPCU: loadAs(func(m *models.SolarPCU) *ProductInfo {
		return &ProductInfo{
			ID:           m.ID,
			Type:         enums.ProductTypeSolarPCU,
			Name:         m.Name,
			Image:        firstImage(m.Images),
			MRP:          m.MRP,
			SellingPrice: m.SellingPrice,
			Price:        m.Price,
		}
	}),
	enums.ProductTypeSolarStreetLight: loadAs(func(m *models.SolarStreetLight) *ProductInfo {
		return &ProductInfo{
			ID:           m.ID,
			Type:         enums.ProductTypeSolarStreetLight,
			Name:         m.Name,
			Image:        firstImage(m.Images),
			MRP:          m.MRP,
			SellingPrice: m.SellingPrice,
			Price:        m.Price,
		}
	}),
}

func firstImage(images pq.StringArray) *string {
	if len(images) == 0 {
		return nil
	}
	image := images[0]
	return &image
}
