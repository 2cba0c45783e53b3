package payments

import (
	"context"

	"gorm.io/gorm"

	"github.com/web-visions/energy-solar-backend/pkg/db/models"
)

// Repository handles payment intent persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, intent *models.PaymentIntent) error
	Update(ctx context.Context, intent *models.PaymentIntent) error
	FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*models.PaymentIntent, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a payment intent repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, intent *models.PaymentIntent) error {
	return r.db.WithContext(ctx).Create(intent).Error
}

func (r *repository) Update(ctx context.Context, intent *models.PaymentIntent) error {
	return r.db.WithContext(ctx).Save(intent).Error
}

func (r *repository) FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*models.PaymentIntent, error) {
	var intent models.PaymentIntent
	if err := r.db.WithContext(ctx).
		Where("gateway_order_id = ?", gatewayOrderID).
		First(&intent).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &intent, nil
}
