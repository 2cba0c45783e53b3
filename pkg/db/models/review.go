package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/web-visions/energy-solar-backend/pkg/enums"
)

// Review is a customer rating for one product; one per user per product.
type Review struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID         `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_reviews_user_product,priority:1"`
	ProductType enums.ProductType `gorm:"column:product_type;type:text;not null;uniqueIndex:uq_reviews_user_product,priority:2"`
	ProductID   uuid.UUID         `gorm:"column:product_id;type:uuid;not null;uniqueIndex:uq_reviews_user_product,priority:3"`
	Rating      int               `gorm:"column:rating;not null"`
	Comment     *string           `gorm:"column:comment"`
	IsApproved  bool              `gorm:"column:is_approved;not null;default:false"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
