package leads

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/leadflow-backend/pkg/db/models"
	"github.com/angelmondragon/leadflow-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/leadflow-backend/pkg/errors"
	"github.com/angelmondragon/leadflow-backend/pkg/normalize"
)

// wonRequiredFields lists, in report order, the fields a lead must carry
// once it is marked WON.
var wonRequiredFields = []string{"product", "qty", "notes", "city", "address", "value", "paymentMethod"}

// snapshotUpdate holds the caller-supplied values after normalization.
// Nil means "not supplied".
type snapshotUpdate struct {
	phone2        *string
	country       *string
	product       *string
	qty           *int
	notes         *string
	city          *string
	address       *string
	value         *decimal.Decimal
	paymentMethod *string
	shipmentDate  *time.Time
}

func parseSnapshot(req ActivityRequest) (snapshotUpdate, error) {
	figures, err := parseCommercial(req.Qty, req.Value, req.ShipmentDate)
	if err != nil {
		return snapshotUpdate{}, err
	}
	return snapshotUpdate{
		phone2:        optionalText(req.Phone2),
		country:       optionalText(req.Country),
		product:       optionalText(req.Product),
		qty:           figures.qty,
		notes:         optionalText(req.Notes),
		city:          optionalText(req.City),
		address:       optionalText(req.Address),
		value:         figures.value,
		paymentMethod: optionalText(req.PaymentMethod),
		shipmentDate:  figures.shipmentDate,
	}, nil
}

// columns returns the lead columns to overwrite.
func (u snapshotUpdate) columns() map[string]any {
	cols := map[string]any{}
	setText := func(col string, v *string) {
		if v != nil {
			cols[col] = *v
		}
	}
	setText("phone2", u.phone2)
	setText("country", u.country)
	setText("product", u.product)
	setText("notes", u.notes)
	setText("city", u.city)
	setText("address", u.address)
	setText("payment_method", u.paymentMethod)
	if u.qty != nil {
		cols["qty"] = *u.qty
	}
	if u.value != nil {
		cols["value"] = *u.value
	}
	if u.shipmentDate != nil {
		cols["shipment_date"] = *u.shipmentDate
	}
	return cols
}

// missingForWon merges the update over the stored lead and lists the
// required fields that are still empty. Zero quantity and zero value count
// as empty.
func missingForWon(lead *models.Lead, u snapshotUpdate) []string {
	present := map[string]bool{
		"product":       nonEmpty(pick(u.product, lead.Product)),
		"qty":           nonZeroInt(u.qty) || nonZeroInt(lead.Qty),
		"notes":         nonEmpty(pick(u.notes, lead.Notes)),
		"city":          nonEmpty(pick(u.city, lead.City)),
		"address":       nonEmpty(pick(u.address, lead.Address)),
		"value":         nonZeroDecimal(u.value) || nonZeroDecimal(lead.Value),
		"paymentMethod": nonEmpty(pick(u.paymentMethod, lead.PaymentMethod)),
	}
	var missing []string
	for _, field := range wonRequiredFields {
		if !present[field] {
			missing = append(missing, field)
		}
	}
	return missing
}

// RecordActivity appends an activity and moves the lead snapshot in one
// transaction. The snapshot write is guarded by the version read up front;
// a concurrent writer turns this call into a Conflict and nothing persists.
func (s *service) RecordActivity(ctx context.Context, actor Actor, id uuid.UUID, req ActivityRequest) (*ActivityDTO, error) {
	if req.Status.Blank() {
		return nil, missingFieldsError("missing required fields", []string{"status"})
	}
	status, err := s.statuses.Parse(req.Status.String())
	if err != nil {
		return nil, invalidStatusError(s.statuses)
	}

	lead, err := s.loadForActor(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	update, err := parseSnapshot(req)
	if err != nil {
		return nil, err
	}
	followUp := normalize.ParseDate(req.FollowUp.String())
	if followUp == nil && !req.FollowUp.Blank() {
		return nil, invalidFieldsError([]string{"followUp"})
	}
	if status == enums.LeadStatusWon {
		if missing := missingForWon(lead, update); len(missing) > 0 {
			return nil, missingFieldsError("missing required fields for WON", missing)
		}
	}

	value := update.value
	if value == nil {
		value = lead.Value
	}
	now := s.now().UTC()
	activity := &models.LeadActivity{
		LeadID:    lead.ID,
		AgentID:   actor.ID,
		Status:    status,
		Remarks:   optionalText(req.Remarks),
		Value:     value,
		FollowUp:  followUp,
		CreatedAt: now,
	}

	cols := update.columns()
	cols["status"] = status
	cols["last_activity_at"] = now

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		if err := repo.CreateActivity(ctx, activity); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert activity")
		}
		rows, err := repo.UpdateSnapshot(ctx, lead.ID, lead.Version, cols)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update lead")
		}
		if rows == 0 {
			return pkgerrors.New(pkgerrors.CodeConflict, "lead was modified concurrently, retry")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ActivityRecorded(string(status))
	return activityFromModel(activity), nil
}

func pick(update, stored *string) *string {
	if update != nil {
		return update
	}
	return stored
}

func nonEmpty(v *string) bool {
	return v != nil && *v != ""
}

func nonZeroInt(v *int) bool {
	return v != nil && *v != 0
}

func nonZeroDecimal(v *decimal.Decimal) bool {
	return v != nil && !v.IsZero()
}

