package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is a buyer record keyed by the business customer id.
type Customer struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID string    `gorm:"column:customer_id;not null;uniqueIndex" json:"customerId"`
	PhoneKey   *string   `gorm:"column:phone_key;index" json:"phoneKey"`
	Phone1     *string   `gorm:"column:phone1" json:"phone1"`
	Phone2     *string   `gorm:"column:phone2" json:"phone2"`
	Name       *string   `gorm:"column:name" json:"name"`
	Country    *string   `gorm:"column:country" json:"country"`
	City       *string   `gorm:"column:city" json:"city"`
	Address    *string   `gorm:"column:address" json:"address"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (c *Customer) BeforeCreate(*gorm.DB) error {
	assignID(&c.ID)
	return nil
}
