package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/web-visions/energy-solar-backend/pkg/enums"
)

// PaymentIntent records a gateway order created for a checkout attempt.
// The stored amount is the source of truth verified against before the
// order is materialized.
type PaymentIntent struct {
	ID             uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID         uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index:idx_payment_intents_user"`
	GatewayOrderID string              `gorm:"column:gateway_order_id;not null;uniqueIndex:uq_payment_intents_gateway_order"`
	Amount         decimal.Decimal     `gorm:"column:amount;type:numeric(12,2);not null"`
	DeliveryCharge decimal.Decimal     `gorm:"column:delivery_charge;type:numeric(12,2);not null;default:0"`
	CityID         *uuid.UUID          `gorm:"column:city_id;type:uuid"`
	Currency       string              `gorm:"column:currency;not null;default:'INR'"`
	Receipt        string              `gorm:"column:receipt;not null"`
	Status         enums.PaymentStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
