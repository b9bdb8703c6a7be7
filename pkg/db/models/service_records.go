package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Complaint struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ComplaintID  string     `gorm:"column:complaint_id;not null;uniqueIndex" json:"complaintId"`
	OrderID      *string    `gorm:"column:order_id;index" json:"orderId"`
	EmNumber     *string    `gorm:"column:em_number" json:"emNumber"`
	OrderDate    *time.Time `gorm:"column:order_date;type:date" json:"orderDate"`
	CustomerName *string    `gorm:"column:customer_name" json:"customerName"`
	Phone1       *string    `gorm:"column:phone1" json:"phone1"`
	Phone2       *string    `gorm:"column:phone2" json:"phone2"`
	Complaint    *string    `gorm:"column:complaint" json:"complaint"`
	Department   *string    `gorm:"column:department" json:"department"`
	Notes1       *string    `gorm:"column:notes1" json:"notes1"`
	Notes2       *string    `gorm:"column:notes2" json:"notes2"`
	CS           *string    `gorm:"column:cs" json:"cs"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (c *Complaint) BeforeCreate(*gorm.DB) error {
	assignID(&c.ID)
	return nil
}

type CustomerFeedback struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	FeedbackID         string     `gorm:"column:feedback_id;not null;uniqueIndex" json:"feedbackId"`
	OrderID            *string    `gorm:"column:order_id;index" json:"orderId"`
	EmNumber           *string    `gorm:"column:em_number" json:"emNumber"`
	Country            *string    `gorm:"column:country" json:"country"`
	OrderDate          *time.Time `gorm:"column:order_date;type:date" json:"orderDate"`
	SalesStaffID       *string    `gorm:"column:sales_staff_id" json:"salesStaffId"`
	CustomerName       *string    `gorm:"column:customer_name" json:"customerName"`
	Phone1             *string    `gorm:"column:phone1" json:"phone1"`
	Phone2             *string    `gorm:"column:phone2" json:"phone2"`
	Feedback           *string    `gorm:"column:feedback" json:"feedback"`
	Notes              *string    `gorm:"column:notes" json:"notes"`
	GoogleReviewLink   *string    `gorm:"column:google_review_link" json:"googleReviewLink"`
	RecommendedPerfume *string    `gorm:"column:recommended_perfume" json:"recommendedPerfume"`
	CreatedAt          time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt          time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (CustomerFeedback) TableName() string { return "customer_feedback" }

func (f *CustomerFeedback) BeforeCreate(*gorm.DB) error {
	assignID(&f.ID)
	return nil
}

type DeliveryFollowup struct {
	ID                     uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	FollowupID             string     `gorm:"column:followup_id;not null;uniqueIndex" json:"followupId"`
	OrderID                *string    `gorm:"column:order_id;index" json:"orderId"`
	EmNumber               *string    `gorm:"column:em_number" json:"emNumber"`
	Date                   *time.Time `gorm:"column:date;type:date" json:"date"`
	DeliveryStaffID        *string    `gorm:"column:delivery_staff_id" json:"deliveryStaffId"`
	SalesStaffID           *string    `gorm:"column:sales_staff_id" json:"salesStaffId"`
	CustomerName           *string    `gorm:"column:customer_name" json:"customerName"`
	CustomerPhone1         *string    `gorm:"column:customer_phone1" json:"customerPhone1"`
	CustomerPhone2         *string    `gorm:"column:customer_phone2" json:"customerPhone2"`
	SalesInstructions      *string    `gorm:"column:sales_instructions" json:"salesInstructions"`
	SalesRemarks           *string    `gorm:"column:sales_remarks" json:"salesRemarks"`
	CsUpdate               *string    `gorm:"column:cs_update" json:"csUpdate"`
	CsRemarks              *string    `gorm:"column:cs_remarks" json:"csRemarks"`
	DeliveredCancelledDate *time.Time `gorm:"column:delivered_cancelled_date;type:date" json:"deliveredCancelledDate"`
	CreatedAt              time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt              time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (d *DeliveryFollowup) BeforeCreate(*gorm.DB) error {
	assignID(&d.ID)
	return nil
}
