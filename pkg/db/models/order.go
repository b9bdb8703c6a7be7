package models

import (
	"time"

	"github.com/angelmondragon/leadflow-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order references customers, staff and leads through soft string keys.
type Order struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	OrderKey           string             `gorm:"column:order_key;not null;uniqueIndex" json:"orderKey"`
	EmNumber           *string            `gorm:"column:em_number;index" json:"emNumber"`
	OrderDate          *time.Time         `gorm:"column:order_date;type:date" json:"orderDate"`
	Country            *string            `gorm:"column:country" json:"country"`
	CustomerID         *string            `gorm:"column:customer_id;index" json:"customerId"`
	SalesStaffID       *string            `gorm:"column:sales_staff_id" json:"salesStaffId"`
	SourceLeadID       *string            `gorm:"column:source_lead_id" json:"sourceLeadId"`
	Product1           *string            `gorm:"column:product1" json:"product1"`
	Qty1               *int               `gorm:"column:qty1" json:"qty1"`
	Product2           *string            `gorm:"column:product2" json:"product2"`
	Qty2               *int               `gorm:"column:qty2" json:"qty2"`
	Value              *decimal.Decimal   `gorm:"column:value;type:numeric(12,2)" json:"value"`
	OrderStatus        *enums.OrderStatus `gorm:"column:order_status;type:text" json:"orderStatus"`
	PaymentMethod      *string            `gorm:"column:payment_method" json:"paymentMethod"`
	DispatchFlag       *bool              `gorm:"column:dispatch_flag" json:"dispatchFlag"`
	CsRemarks          *string            `gorm:"column:cs_remarks" json:"csRemarks"`
	DeliveryStaffID    *string            `gorm:"column:delivery_staff_id" json:"deliveryStaffId"`
	TrackingNumber     *string            `gorm:"column:tracking_number" json:"trackingNumber"`
	CancellationReason *string            `gorm:"column:cancellation_reason" json:"cancellationReason"`
	Notes              *string            `gorm:"column:notes" json:"notes"`
	CreatedAt          time.Time          `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt          time.Time          `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	assignID(&o.ID)
	return nil
}

type OrderItem struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	OrderItemID string           `gorm:"column:order_item_id;not null;uniqueIndex" json:"orderItemId"`
	OrderID     string           `gorm:"column:order_id;not null;index" json:"orderId"`
	ProductID   *string          `gorm:"column:product_id" json:"productId"`
	Quantity    *int             `gorm:"column:quantity" json:"quantity"`
	LineValue   *decimal.Decimal `gorm:"column:line_value;type:numeric(12,2)" json:"lineValue"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (i *OrderItem) BeforeCreate(*gorm.DB) error {
	assignID(&i.ID)
	return nil
}

type Payment struct {
	ID          uuid.UUID            `gorm:"type:uuid;primaryKey" json:"id"`
	PaymentID   string               `gorm:"column:payment_id;not null;uniqueIndex" json:"paymentId"`
	OrderID     string               `gorm:"column:order_id;not null;index" json:"orderId"`
	EmNumber    *string              `gorm:"column:em_number" json:"emNumber"`
	Country     *string              `gorm:"column:country" json:"country"`
	Amount      *decimal.Decimal     `gorm:"column:amount;type:numeric(12,2)" json:"amount"`
	Status      *enums.PaymentStatus `gorm:"column:status;type:text" json:"status"`
	Method      *string              `gorm:"column:method" json:"method"`
	PaymentDate *time.Time           `gorm:"column:payment_date;type:date" json:"paymentDate"`
	CreatedAt   time.Time            `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time            `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (p *Payment) BeforeCreate(*gorm.DB) error {
	assignID(&p.ID)
	return nil
}
