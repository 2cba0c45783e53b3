package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/web-visions/energy-solar-backend/pkg/enums"
	"github.com/web-visions/energy-solar-backend/pkg/types"
)

// Order is immutable after creation except status, notes and delivery date.
// Line prices are frozen at materialization and never recomputed.
type Order struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber string                `gorm:"column:order_number;not null;uniqueIndex:uq_orders_number"`
	UserID      uuid.UUID             `gorm:"column:user_id;type:uuid;not null;index:idx_orders_user"`
	Shipping    types.ShippingDetails `gorm:"embedded;embeddedPrefix:shipping_"`

	PaymentMethod    enums.PaymentMethod `gorm:"column:payment_method;type:text;not null"`
	PaymentStatus    enums.PaymentStatus `gorm:"column:payment_status;type:text;not null;default:'pending'"`
	GatewayOrderID   *string             `gorm:"column:gateway_order_id"`
	GatewayPaymentID *string             `gorm:"column:gateway_payment_id;uniqueIndex:uq_orders_gateway_payment"`
	GatewaySignature *string             `gorm:"column:gateway_signature"`

	Subtotal       decimal.Decimal `gorm:"column:subtotal;type:numeric(12,2);not null"`
	DeliveryCharge decimal.Decimal `gorm:"column:delivery_charge;type:numeric(12,2);not null;default:0"`
	Tax            decimal.Decimal `gorm:"column:tax;type:numeric(12,2);not null;default:0"`
	Total          decimal.Decimal `gorm:"column:total;type:numeric(12,2);not null"`

	Status       enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	Notes        *string           `gorm:"column:notes"`
	DeliveryDate *time.Time        `gorm:"column:delivery_date"`

	Items     []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time   `gorm:"column:created_at;autoCreateTime;index:idx_orders_created"`
	UpdatedAt time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderItem snapshots one cart line at the moment the order was placed.
type OrderItem struct {
	ID             uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID         `gorm:"column:order_id;type:uuid;not null;index:idx_order_items_order"`
	ProductType    enums.ProductType `gorm:"column:product_type;type:text;not null"`
	ProductID      uuid.UUID         `gorm:"column:product_id;type:uuid;not null"`
	Name           string            `gorm:"column:name;not null"`
	Image          *string           `gorm:"column:image"`
	Quantity       int               `gorm:"column:quantity;not null"`
	WithOldBattery bool              `gorm:"column:with_old_battery;not null;default:false"`
	Price          decimal.Decimal   `gorm:"column:price;type:numeric(12,2);not null"`
	TotalPrice     decimal.Decimal   `gorm:"column:total_price;type:numeric(12,2);not null"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime"`
}
