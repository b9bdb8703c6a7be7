package models

import (
	"time"

	"github.com/angelmondragon/leadflow-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Lead is the current snapshot of a prospective sale. Its status and
// commercial fields mirror the latest LeadActivity.
type Lead struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey"`
	CustomerName   string           `gorm:"column:customer_name;not null"`
	Phone          string           `gorm:"column:phone;not null"`
	Phone2         *string          `gorm:"column:phone2"`
	Source         *string          `gorm:"column:source"`
	Country        *string          `gorm:"column:country"`
	Product        *string          `gorm:"column:product"`
	Qty            *int             `gorm:"column:qty"`
	Notes          *string          `gorm:"column:notes"`
	City           *string          `gorm:"column:city"`
	Address        *string          `gorm:"column:address"`
	Value          *decimal.Decimal `gorm:"column:value;type:numeric(12,2)"`
	PaymentMethod  *string          `gorm:"column:payment_method"`
	ShipmentDate   *time.Time       `gorm:"column:shipment_date;type:date"`
	Status         enums.LeadStatus `gorm:"column:status;type:text;not null;index"`
	AssignedTo     uuid.UUID        `gorm:"column:assigned_to;type:uuid;not null;index"`
	User           *User            `gorm:"foreignKey:AssignedTo"`
	LastActivityAt *time.Time       `gorm:"column:last_activity_at"`
	ExternalID     *string          `gorm:"column:external_id;uniqueIndex"`
	Metadata       datatypes.JSON   `gorm:"column:metadata"`
	Version        int              `gorm:"column:version;not null;default:0"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (l *Lead) BeforeCreate(*gorm.DB) error {
	assignID(&l.ID)
	return nil
}

// LeadActivity is an append-only status update on a lead.
type LeadActivity struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey"`
	LeadID    uuid.UUID        `gorm:"column:lead_id;type:uuid;not null;index"`
	AgentID   uuid.UUID        `gorm:"column:agent_id;type:uuid;not null"`
	Status    enums.LeadStatus `gorm:"column:status;type:text;not null"`
	Remarks   *string          `gorm:"column:remarks"`
	Value     *decimal.Decimal `gorm:"column:value;type:numeric(12,2)"`
	FollowUp  *time.Time       `gorm:"column:follow_up"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime;index"`
}

func (LeadActivity) TableName() string { return "lead_activities" }

func (a *LeadActivity) BeforeCreate(*gorm.DB) error {
	assignID(&a.ID)
	return nil
}
