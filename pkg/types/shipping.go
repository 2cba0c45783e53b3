package types

import "github.com/google/uuid"

// ShippingDetails captures where an order should be delivered. Stored as
// flattened columns so admin search can match the recipient name/email.
type ShippingDetails struct {
	FullName    string     `gorm:"column:full_name" json:"fullName" validate:"required"`
	Email       string     `gorm:"column:email" json:"email" validate:"required,email"`
	Phone       string     `gorm:"column:phone" json:"phone" validate:"required"`
	AddressLine string     `gorm:"column:address_line" json:"addressLine" validate:"required"`
	City        string     `gorm:"column:city" json:"city"`
	CityID      *uuid.UUID `gorm:"column:city_id;type:uuid" json:"cityId,omitempty"`
	State       string     `gorm:"column:state" json:"state"`
	PostalCode  string     `gorm:"column:postal_code" json:"postalCode"`
}
