package records

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/leadflow-backend/internal/repo"
	"github.com/angelmondragon/leadflow-backend/pkg/db"
	"github.com/angelmondragon/leadflow-backend/pkg/db/models"
	"github.com/angelmondragon/leadflow-backend/pkg/enums"
)

const newestFirst = "created_at DESC"

// Registry holds one Resource per reference-data router.
type Registry struct {
	Customers         Resource
	Products          Resource
	Staff             Resource
	Orders            Resource
	OrderItems        Resource
	Payments          Resource
	Complaints        Resource
	CustomerFeedback  Resource
	DeliveryFollowups Resource
	EmSeries          Resource
	Vendors           *Vendors
}

// NewRegistry wires every resource onto conn. now defaults to time.Now.
func NewRegistry(conn *gorm.DB, now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}

	vendors := &resource[models.Vendor]{
		label: "vendor",
		table: repo.NewTable[models.Vendor](conn, newestFirst, repo.Preload{Association: "Products", Order: newestFirst}),
		fields: []field{
			required("name", "name"),
			text("contactName", "contact_name"),
			text("email", "email"),
			text("phone", "phone"),
			enum("status", "status", enums.ParseVendorStatus, []enums.VendorStatus{enums.VendorStatusActive, enums.VendorStatusInactive}),
		},
		defaults: map[string]any{"status": string(enums.VendorStatusActive)},
		now:      now,
	}
	vendorProducts := &resource[models.VendorProduct]{
		label: "vendor product",
		table: repo.NewTable[models.VendorProduct](conn, newestFirst),
		fields: []field{
			required("name", "name"),
			text("sku", "sku"),
			money("price", "price"),
			text("description", "description"),
			enum("status", "status", enums.ParseVendorStatus, []enums.VendorStatus{enums.VendorStatusActive, enums.VendorStatusInactive}),
		},
		defaults: map[string]any{"status": string(enums.VendorStatusActive)},
		now:      now,
	}

	return &Registry{
		Customers: &resource[models.Customer]{
			label: "customer",
			table: repo.NewTable[models.Customer](conn, newestFirst),
			fields: []field{
				required("customerId", "customer_id"),
				text("phoneKey", "phone_key"),
				text("phone1", "phone1"),
				text("phone2", "phone2"),
				text("name", "name"),
				text("country", "country"),
				text("city", "city"),
				text("address", "address"),
			},
			now: now,
		},
		Products: &resource[models.Product]{
			label: "product",
			table: repo.NewTable[models.Product](conn, "name ASC"),
			fields: []field{
				required("productCode", "product_code"),
				required("name", "name"),
			},
			now: now,
		},
		Staff: &resource[models.Staff]{
			label: "staff",
			table: repo.NewTable[models.Staff](conn, "name ASC"),
			fields: []field{
				required("staffId", "staff_id"),
				required("name", "name"),
				text("role", "role"),
				text("country", "country"),
			},
			now: now,
		},
		Orders: &resource[models.Order]{
			label: "order",
			table: repo.NewTable[models.Order](conn, newestFirst),
			fields: []field{
				required("orderKey", "order_key"),
				text("emNumber", "em_number"),
				date("orderDate", "order_date"),
				text("country", "country"),
				text("customerId", "customer_id"),
				text("salesStaffId", "sales_staff_id"),
				text("sourceLeadId", "source_lead_id"),
				text("product1", "product1"),
				integer("qty1", "qty1"),
				text("product2", "product2"),
				integer("qty2", "qty2"),
				money("value", "value"),
				enum("orderStatus", "order_status", enums.ParseOrderStatus, []enums.OrderStatus{
					enums.OrderStatusNew, enums.OrderStatusConfirmed, enums.OrderStatusCancelled,
					enums.OrderStatusShipped, enums.OrderStatusDelivered,
				}),
				text("paymentMethod", "payment_method"),
				boolean("dispatchFlag", "dispatch_flag"),
				text("csRemarks", "cs_remarks"),
				text("deliveryStaffId", "delivery_staff_id"),
				text("trackingNumber", "tracking_number"),
				text("cancellationReason", "cancellation_reason"),
				text("notes", "notes"),
			},
			now: now,
		},
		OrderItems: &resource[models.OrderItem]{
			label: "order item",
			table: repo.NewTable[models.OrderItem](conn, newestFirst),
			fields: []field{
				required("orderItemId", "order_item_id"),
				required("orderId", "order_id"),
				text("productId", "product_id"),
				integer("quantity", "quantity"),
				money("lineValue", "line_value"),
			},
			now: now,
		},
		Payments: &resource[models.Payment]{
			label: "payment",
			table: repo.NewTable[models.Payment](conn, newestFirst),
			fields: []field{
				required("paymentId", "payment_id"),
				required("orderId", "order_id"),
				text("emNumber", "em_number"),
				text("country", "country"),
				money("amount", "amount"),
				enum("status", "status", enums.ParsePaymentStatus, []enums.PaymentStatus{
					enums.PaymentStatusPending, enums.PaymentStatusPaid, enums.PaymentStatusFailed,
				}),
				text("method", "method"),
				date("paymentDate", "payment_date"),
			},
			now: now,
		},
		Complaints: &resource[models.Complaint]{
			label: "complaint",
			table: repo.NewTable[models.Complaint](conn, newestFirst),
			fields: []field{
				required("complaintId", "complaint_id"),
				text("orderId", "order_id"),
				text("emNumber", "em_number"),
				date("orderDate", "order_date"),
				text("customerName", "customer_name"),
				text("phone1", "phone1"),
				text("phone2", "phone2"),
				text("complaint", "complaint"),
				text("department", "department"),
				text("notes1", "notes1"),
				text("notes2", "notes2"),
				text("cs", "cs"),
			},
			now: now,
		},
		CustomerFeedback: &resource[models.CustomerFeedback]{
			label: "feedback",
			table: repo.NewTable[models.CustomerFeedback](conn, newestFirst),
			fields: []field{
				required("feedbackId", "feedback_id"),
				text("orderId", "order_id"),
				text("emNumber", "em_number"),
				text("country", "country"),
				date("orderDate", "order_date"),
				text("salesStaffId", "sales_staff_id"),
				text("customerName", "customer_name"),
				text("phone1", "phone1"),
				text("phone2", "phone2"),
				text("feedback", "feedback"),
				text("notes", "notes"),
				text("googleReviewLink", "google_review_link"),
				text("recommendedPerfume", "recommended_perfume"),
			},
			now: now,
		},
		DeliveryFollowups: &resource[models.DeliveryFollowup]{
			label: "followup",
			table: repo.NewTable[models.DeliveryFollowup](conn, newestFirst),
			fields: []field{
				required("followupId", "followup_id"),
				text("orderId", "order_id"),
				text("emNumber", "em_number"),
				date("date", "date"),
				text("deliveryStaffId", "delivery_staff_id"),
				text("salesStaffId", "sales_staff_id"),
				text("customerName", "customer_name"),
				text("customerPhone1", "customer_phone1"),
				text("customerPhone2", "customer_phone2"),
				text("salesInstructions", "sales_instructions"),
				text("salesRemarks", "sales_remarks"),
				text("csUpdate", "cs_update"),
				text("csRemarks", "cs_remarks"),
				date("deliveredCancelledDate", "delivered_cancelled_date"),
			},
			now: now,
		},
		EmSeries: &resource[models.EmSeriesSetting]{
			label: "series",
			table: repo.NewTable[models.EmSeriesSetting](conn, "country ASC"),
			fields: []field{
				required("seriesId", "series_id"),
				text("country", "country"),
				text("prefix", "prefix"),
				integer("nextCounter", "next_counter"),
				boolean("active", "active"),
			},
			now: now,
		},
		Vendors: &Vendors{resource: vendors, products: vendorProducts},
	}
}

// Vendors is the vendor resource plus its nested product endpoints.
type Vendors struct {
	*resource[models.Vendor]
	products *resource[models.VendorProduct]
}

// AddProduct creates a product under vendorID, 404 when the vendor is missing.
func (v *Vendors) AddProduct(ctx context.Context, vendorID uuid.UUID, body []byte) (*models.VendorProduct, error) {
	if _, err := v.table.Get(ctx, vendorID); err != nil {
		return nil, db.TranslateError(err, "vendor")
	}
	return v.products.create(ctx, body, map[string]any{"vendor_id": vendorID})
}

// PatchProduct applies a partial update to one vendor product.
func (v *Vendors) PatchProduct(ctx context.Context, productID uuid.UUID, body []byte) (any, error) {
	return v.products.Patch(ctx, productID, body)
}
