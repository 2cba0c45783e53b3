package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/web-visions/energy-solar-backend/pkg/enums"
)

// Cart is the single mutable cart per user. TotalAmount is a snapshot
// recomputed on every mutation, not a continuously maintained invariant.
type Cart struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID       `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_carts_user"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:numeric(12,2);not null;default:0"`
	Items       []CartItem      `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// CartItem is one polymorphic line; at most one per (cart, type, product).
type CartItem struct {
	ID             uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID         uuid.UUID         `gorm:"column:cart_id;type:uuid;not null;uniqueIndex:uq_cart_line,priority:1"`
	ProductType    enums.ProductType `gorm:"column:product_type;type:text;not null;uniqueIndex:uq_cart_line,priority:2"`
	ProductID      uuid.UUID         `gorm:"column:product_id;type:uuid;not null;uniqueIndex:uq_cart_line,priority:3"`
	Quantity       int               `gorm:"column:quantity;not null;default:1"`
	WithOldBattery bool              `gorm:"column:with_old_battery;not null;default:false"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
