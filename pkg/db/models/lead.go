package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/web-visions/energy-solar-backend/pkg/enums"
)

// Lead is an inbound sales enquiry; submitted without authentication.
type Lead struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string           `gorm:"column:name;not null"`
	Email     *string          `gorm:"column:email"`
	Phone     string           `gorm:"column:phone;not null"`
	City      *string          `gorm:"column:city"`
	Message   *string          `gorm:"column:message"`
	Source    *string          `gorm:"column:source"`
	Status    enums.LeadStatus `gorm:"column:status;type:text;not null;default:'new'"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
