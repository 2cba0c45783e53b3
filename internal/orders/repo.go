package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/web-visions/energy-solar-backend/pkg/db/models"
	"github.com/web-visions/energy-solar-backend/pkg/enums"
	"github.com/web-visions/energy-solar-backend/pkg/pagination"
)

// ListQuery configures admin order listings.
type ListQuery struct {
	Status        *enums.OrderStatus
	PaymentStatus *enums.PaymentStatus
	PaymentMethod *enums.PaymentMethod
	Search        string
	Page          pagination.Params
}

// Repository handles order persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) error
	Update(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page pagination.Params) ([]models.Order, int64, error)
	List(ctx context.Context, query ListQuery) ([]models.Order, int64, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an orders repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *repository) Update(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&order).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, page pagination.Params) ([]models.Order, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	normalized := pagination.Normalize(page)
	var orders []models.Order
	if err := base.
		Preload("Items").
		Order("created_at DESC").
		Limit(normalized.Limit).
		Offset(normalized.Offset()).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *repository) List(ctx context.Context, query ListQuery) ([]models.Order, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Order{})
	if query.Status != nil {
		base = base.Where("status = ?", *query.Status)
	}
	if query.PaymentStatus != nil {
		base = base.Where("payment_status = ?", *query.PaymentStatus)
	}
	if query.PaymentMethod != nil {
		base = base.Where("payment_method = ?", *query.PaymentMethod)
	}
	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		base = base.Where(
			"LOWER(order_number) LIKE LOWER(?) OR LOWER(shipping_full_name) LIKE LOWER(?) OR LOWER(shipping_email) LIKE LOWER(?) OR shipping_phone LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := pagination.Normalize(query.Page)
	var orders []models.Order
	if err := base.
		Preload("Items").
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *repository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
