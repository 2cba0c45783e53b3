package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/web-visions/energy-solar-backend/pkg/db/models"
	"github.com/web-visions/energy-solar-backend/pkg/enums"
	"github.com/web-visions/energy-solar-backend/pkg/pagination"
)

// ListQuery configures catalog listing queries.
type ListQuery struct {
	BrandID         *uuid.UUID
	CategoryID      *uuid.UUID
	Search          string
	IncludeInactive bool
	Page            pagination.Params
}

// Repository handles catalog persistence across the six family tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	List(ctx context.Context, productType enums.ProductType, query ListQuery) ([]Product, int64, error)
	Get(ctx context.Context, productType enums.ProductType, id uuid.UUID) (*Product, error)
	Delete(ctx context.Context, productType enums.ProductType, id uuid.UUID) (bool, error)
	ListBrands(ctx context.Context) ([]models.Brand, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a catalog repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) List(ctx context.Context, productType enums.ProductType, query ListQuery) ([]Product, int64, error) {
	switch productType {
	case enums.ProductTypeUPS:
		return listModels(ctx, r.db, query, fromUPS)
	case enums.ProductTypeInverter:
		return listModels(ctx, r.db, query, fromInverter)
	case enums.ProductTypeBattery:
		return listModels(ctx, r.db, query, fromBattery)
	case enums.ProductTypeSolarPV:
		return listModels(ctx, r.db, query, fromSolarPV)
	case enums.ProductTypeSolarPCU:
		return listModels(ctx, r.db, query, fromSolarPCU)
	case enums.ProductTypeSolarStreetLight:
		return listModels(ctx, r.db, query, fromSolarStreetLight)
	default:
		return nil, 0, errUnknownProductType(productType)
	}
}

func (r *repository) Get(ctx context.Context, productType enums.ProductType, id uuid.UUID) (*Product, error) {
	switch productType {
	case enums.ProductTypeUPS:
		return getModel(ctx, r.db, id, fromUPS)
	case enums.ProductTypeInverter:
		return getModel(ctx, r.db, id, fromInverter)
	case enums.ProductTypeBattery:
		return getModel(ctx, r.db, id, fromBattery)
	case enums.ProductTypeSolarPV:
		return getModel(ctx, r.db, id, fromSolarPV)
	case enums.ProductTypeSolarPCU:
		return getModel(ctx, r.db, id, fromSolarPCU)
	case enums.ProductTypeSolarStreetLight:
		return getModel(ctx, r.db, id, fromSolarStreetLight)
	default:
		return nil, errUnknownProductType(productType)
	}
}

func (r *repository) Delete(ctx context.Context, productType enums.ProductType, id uuid.UUID) (bool, error) {
	switch productType {
	case enums.ProductTypeUPS:
		return deleteModel[models.UPS](ctx, r.db, id)
	case enums.ProductTypeInverter:
		return deleteModel[models.Inverter](ctx, r.db, id)
	case enums.ProductTypeBattery:
		return deleteModel[models.Battery](ctx, r.db, id)
	case enums.ProductTypeSolarPV:
		return deleteModel[models.SolarPV](ctx, r.db, id)
	case enums.ProductTypeSolarPCU:
		return deleteModel[models.SolarPCU](ctx, r.db, id)
	case enums.ProductTypeSolarStreetLight:
		return deleteModel[models.SolarStreetLight](ctx, r.db, id)
	default:
		return false, errUnknownProductType(productType)
	}
}

func (r *repository) ListBrands(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

func (r *repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func listModels[M any](ctx context.Context, db *gorm.DB, query ListQuery, convert func(M) Product) ([]Product, int64, error) {
	var model M
	base := db.WithContext(ctx).Model(&model)
	if !query.IncludeInactive {
		base = base.Where("is_active = ?", true)
	}
	if query.BrandID != nil {
		base = base.Where("brand_id = ?", *query.BrandID)
	}
	if query.CategoryID != nil {
		base = base.Where("category_id = ?", *query.CategoryID)
	}
	if query.Search != "" {
		base = base.Where("LOWER(name) LIKE LOWER(?)", "%"+query.Search+"%")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := pagination.Normalize(query.Page)
	var rows []M
	if err := base.
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	products := make([]Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, convert(row))
	}
	return products, total, nil
}

func getModel[M any](ctx context.Context, db *gorm.DB, id uuid.UUID, convert func(M) Product) (*Product, error) {
	var m M
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	product := convert(m)
	return &product, nil
}

func deleteModel[M any](ctx context.Context, db *gorm.DB, id uuid.UUID) (bool, error) {
	var m M
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&m)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
