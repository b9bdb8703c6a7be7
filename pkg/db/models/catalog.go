package models

import (
	"time"

	"github.com/angelmondragon/leadflow-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is an internal catalog entry referenced by orders.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductCode string    `gorm:"column:product_code;not null;uniqueIndex" json:"productCode"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	assignID(&p.ID)
	return nil
}

// Staff is a sales, delivery or customer-service team member. Staff rows are
// reference data, separate from login accounts.
type Staff struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StaffID   string    `gorm:"column:staff_id;not null;uniqueIndex" json:"staffId"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Role      *string   `gorm:"column:role" json:"role"`
	Country   *string   `gorm:"column:country" json:"country"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Staff) TableName() string { return "staff" }

func (s *Staff) BeforeCreate(*gorm.DB) error {
	assignID(&s.ID)
	return nil
}

// Vendor supplies VendorProducts.
type Vendor struct {
	ID          uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string             `gorm:"column:name;not null" json:"name"`
	ContactName *string            `gorm:"column:contact_name" json:"contactName"`
	Email       *string            `gorm:"column:email" json:"email"`
	Phone       *string            `gorm:"column:phone" json:"phone"`
	Status      enums.VendorStatus `gorm:"column:status;type:text;not null;default:'ACTIVE'" json:"status"`
	Products    []VendorProduct    `gorm:"foreignKey:VendorID" json:"products,omitempty"`
	CreatedAt   time.Time          `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time          `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (v *Vendor) BeforeCreate(*gorm.DB) error {
	assignID(&v.ID)
	return nil
}

type VendorProduct struct {
	ID          uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	VendorID    uuid.UUID          `gorm:"column:vendor_id;type:uuid;not null;index" json:"vendorId"`
	Name        string             `gorm:"column:name;not null" json:"name"`
	SKU         *string            `gorm:"column:sku" json:"sku"`
	Price       *decimal.Decimal   `gorm:"column:price;type:numeric(12,2)" json:"price"`
	Description *string            `gorm:"column:description" json:"description"`
	Status      enums.VendorStatus `gorm:"column:status;type:text;not null;default:'ACTIVE'" json:"status"`
	CreatedAt   time.Time          `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time          `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (p *VendorProduct) BeforeCreate(*gorm.DB) error {
	assignID(&p.ID)
	return nil
}

// EmSeriesSetting is the per-country EM number prefix and counter.
type EmSeriesSetting struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SeriesID    string    `gorm:"column:series_id;not null;uniqueIndex" json:"seriesId"`
	Country     *string   `gorm:"column:country" json:"country"`
	Prefix      *string   `gorm:"column:prefix" json:"prefix"`
	NextCounter *int      `gorm:"column:next_counter" json:"nextCounter"`
	Active      *bool     `gorm:"column:active" json:"active"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (s *EmSeriesSetting) BeforeCreate(*gorm.DB) error {
	assignID(&s.ID)
	return nil
}
