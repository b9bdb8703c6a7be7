package leads

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/leadflow-backend/pkg/db/models"
	"github.com/angelmondragon/leadflow-backend/pkg/enums"
	"github.com/angelmondragon/leadflow-backend/pkg/normalize"
	"github.com/angelmondragon/leadflow-backend/pkg/types"
)

// Actor is the authenticated caller acting on leads.
type Actor struct {
	ID   uuid.UUID
	Role enums.UserRole
}

func (a Actor) isAdmin() bool {
	return a.Role == enums.UserRoleAdmin
}

// CreateLeadRequest is the admin lead-creation body. Commercial fields accept
// strings or numbers.
type CreateLeadRequest struct {
	CustomerName  types.Scalar `json:"customerName"`
	Phone         types.Scalar `json:"phone"`
	Phone2        types.Scalar `json:"phone2"`
	Source        types.Scalar `json:"source"`
	Country       types.Scalar `json:"country"`
	Product       types.Scalar `json:"product"`
	Qty           types.Scalar `json:"qty"`
	Notes         types.Scalar `json:"notes"`
	City          types.Scalar `json:"city"`
	Address       types.Scalar `json:"address"`
	Value         types.Scalar `json:"value"`
	PaymentMethod types.Scalar `json:"paymentMethod"`
	ShipmentDate  types.Scalar `json:"shipmentDate"`
	Status        types.Scalar `json:"status"`
	AssignedTo    types.Scalar `json:"assignedTo"`
	ExternalID    types.Scalar `json:"externalId"`
}

// AssignRequest reassigns a lead.
type AssignRequest struct {
	AssignedTo types.Scalar `json:"assignedTo"`
}

// ActivityRequest records a status update plus optional snapshot fields.
type ActivityRequest struct {
	Status        types.Scalar `json:"status"`
	Remarks       types.Scalar `json:"remarks"`
	Value         types.Scalar `json:"value"`
	FollowUp      types.Scalar `json:"followUp"`
	Phone2        types.Scalar `json:"phone2"`
	Country       types.Scalar `json:"country"`
	Product       types.Scalar `json:"product"`
	Qty           types.Scalar `json:"qty"`
	Notes         types.Scalar `json:"notes"`
	City          types.Scalar `json:"city"`
	Address       types.Scalar `json:"address"`
	PaymentMethod types.Scalar `json:"paymentMethod"`
	ShipmentDate  types.Scalar `json:"shipmentDate"`
}

// AssignedUser summarizes the owner of a lead.
type AssignedUser struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// LeadDTO is the transport shape of a lead snapshot.
type LeadDTO struct {
	ID             uuid.UUID        `json:"id"`
	CustomerName   string           `json:"customerName"`
	Phone          string           `json:"phone"`
	Phone2         *string          `json:"phone2"`
	Source         *string          `json:"source"`
	Country        *string          `json:"country"`
	Product        *string          `json:"product"`
	Qty            *int             `json:"qty"`
	Notes          *string          `json:"notes"`
	City           *string          `json:"city"`
	Address        *string          `json:"address"`
	Value          *decimal.Decimal `json:"value"`
	PaymentMethod  *string          `json:"paymentMethod"`
	ShipmentDate   *string          `json:"shipmentDate"`
	Status         enums.LeadStatus `json:"status"`
	AssignedTo     uuid.UUID        `json:"assignedTo"`
	User           *AssignedUser    `json:"user,omitempty"`
	LastActivityAt *time.Time       `json:"lastActivityAt"`
	ExternalID     *string          `json:"externalId"`
	Metadata       json.RawMessage  `json:"metadata,omitempty"`
	Version        int              `json:"version"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// ActivityDTO is the transport shape of a lead activity.
type ActivityDTO struct {
	ID        uuid.UUID        `json:"id"`
	LeadID    uuid.UUID        `json:"leadId"`
	AgentID   uuid.UUID        `json:"agentId"`
	Status    enums.LeadStatus `json:"status"`
	Remarks   *string          `json:"remarks"`
	Value     *decimal.Decimal `json:"value"`
	FollowUp  *time.Time       `json:"followUp"`
	CreatedAt time.Time        `json:"createdAt"`
}

func FromModel(l *models.Lead) *LeadDTO {
	if l == nil {
		return nil
	}
	dto := &LeadDTO{
		ID:             l.ID,
		CustomerName:   l.CustomerName,
		Phone:          l.Phone,
		Phone2:         l.Phone2,
		Source:         l.Source,
		Country:        l.Country,
		Product:        l.Product,
		Qty:            l.Qty,
		Notes:          l.Notes,
		City:           l.City,
		Address:        l.Address,
		Value:          l.Value,
		PaymentMethod:  l.PaymentMethod,
		Status:         l.Status,
		AssignedTo:     l.AssignedTo,
		LastActivityAt: l.LastActivityAt,
		ExternalID:     l.ExternalID,
		Version:        l.Version,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
	if date := normalize.FormatDate(l.ShipmentDate); date != "" {
		dto.ShipmentDate = &date
	}
	if len(l.Metadata) > 0 {
		dto.Metadata = json.RawMessage(l.Metadata)
	}
	if l.User != nil {
		dto.User = &AssignedUser{ID: l.User.ID, Name: l.User.Name, Email: l.User.Email}
	}
	return dto
}

func fromModels(rows []models.Lead) []LeadDTO {
	out := make([]LeadDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}

func activityFromModel(a *models.LeadActivity) *ActivityDTO {
	return &ActivityDTO{
		ID:        a.ID,
		LeadID:    a.LeadID,
		AgentID:   a.AgentID,
		Status:    a.Status,
		Remarks:   a.Remarks,
		Value:     a.Value,
		FollowUp:  a.FollowUp,
		CreatedAt: a.CreatedAt,
	}
}
