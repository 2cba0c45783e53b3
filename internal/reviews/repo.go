package reviews

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/web-visions/energy-solar-backend/pkg/db/models"
	"github.com/web-visions/energy-solar-backend/pkg/enums"
	"github.com/web-visions/energy-solar-backend/pkg/pagination"
)

// Repository handles review persistence.
type Repository interface {
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error)
	ListApprovedForProduct(ctx context.Context, productType enums.ProductType, productID uuid.UUID) ([]models.Review, error)
	List(ctx context.Context, page pagination.Params) ([]models.Review, int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a review repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *repository) Update(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Review{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

func (r *repository) ListApprovedForProduct(ctx context.Context, productType enums.ProductType, productID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("product_type = ? AND product_id = ? AND is_approved = ?", productType, productID, true).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *repository) List(ctx context.Context, page pagination.Params) ([]models.Review, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Review{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	normalized := pagination.Normalize(page)
	var reviews []models.Review
	err := query.
		Order("created_at DESC").
		Limit(normalized.Limit).
		Offset(normalized.Offset()).
		Find(&reviews).Error
	return reviews, total, err
}
