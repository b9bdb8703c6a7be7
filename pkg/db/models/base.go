package models

import "github.com/google/uuid"

// assignID fills a zero primary key before insert so every dialect (sqlite
// included) gets client-generated UUIDs.
func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// All lists every persisted model, in dependency order, for AutoMigrate.
func All() []any {
	return []any{
		&User{},
		&Lead{},
		&LeadActivity{},
		&Customer{},
		&Product{},
		&Staff{},
		&Vendor{},
		&VendorProduct{},
		&Order{},
		&OrderItem{},
		&Payment{},
		&Complaint{},
		&CustomerFeedback{},
		&DeliveryFollowup{},
		&EmSeriesSetting{},
	}
}
