package leads

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/leadflow-backend/pkg/db"
	"github.com/angelmondragon/leadflow-backend/pkg/db/models"
	"github.com/angelmondragon/leadflow-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/leadflow-backend/pkg/errors"
	"github.com/angelmondragon/leadflow-backend/pkg/metrics"
	"github.com/angelmondragon/leadflow-backend/pkg/normalize"
	"github.com/angelmondragon/leadflow-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service exposes the lead pipeline use cases.
type Service interface {
	ListMine(ctx context.Context, actor Actor) ([]LeadDTO, error)
	ListAll(ctx context.Context) ([]LeadDTO, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*LeadDTO, error)
	Create(ctx context.Context, req CreateLeadRequest) (*LeadDTO, error)
	Assign(ctx context.Context, id uuid.UUID, req AssignRequest) (*LeadDTO, error)
	RecordActivity(ctx context.Context, actor Actor, id uuid.UUID, req ActivityRequest) (*ActivityDTO, error)
	History(ctx context.Context, actor Actor, id uuid.UUID) ([]ActivityDTO, error)
}

type leadRepository interface {
	Create(ctx context.Context, lead *models.Lead) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Lead, error)
	ListByAssignee(ctx context.Context, userID uuid.UUID) ([]models.Lead, error)
	ListAll(ctx context.Context) ([]models.Lead, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	ListActivities(ctx context.Context, leadID uuid.UUID) ([]models.LeadActivity, error)
}

type userLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// ServiceParams bundles the dependencies required to build a leads service.
type ServiceParams struct {
	DB       *db.Client
	Repo     leadRepository
	Users    userLookup
	Statuses enums.LeadStatusSet
	Metrics  *metrics.CRMMetrics
	Now      func() time.Time
}

type service struct {
	db       *db.Client
	repo     leadRepository
	users    userLookup
	statuses enums.LeadStatusSet
	metrics  *metrics.CRMMetrics
	now      func() time.Time
}

// NewService constructs the leads service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("lead repository is required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("user lookup is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		db:       params.DB,
		repo:     params.Repo,
		users:    params.Users,
		statuses: params.Statuses,
		metrics:  params.Metrics,
		now:      now,
	}, nil
}

func (s *service) ListMine(ctx context.Context, actor Actor) ([]LeadDTO, error) {
	rows, err := s.repo.ListByAssignee(ctx, actor.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list leads")
	}
	return fromModels(rows), nil
}

func (s *service) ListAll(ctx context.Context) ([]LeadDTO, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list leads")
	}
	return fromModels(rows), nil
}

func (s *service) Get(ctx context.Context, actor Actor, id uuid.UUID) (*LeadDTO, error) {
	lead, err := s.loadForActor(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return FromModel(lead), nil
}

func (s *service) Create(ctx context.Context, req CreateLeadRequest) (*LeadDTO, error) {
	var missing []string
	if req.CustomerName.Blank() {
		missing = append(missing, "customerName")
	}
	if req.Phone.Blank() {
		missing = append(missing, "phone")
	}
	if req.AssignedTo.Blank() {
		missing = append(missing, "assignedTo")
	}
	if len(missing) > 0 {
		return nil, missingFieldsError("missing required fields", missing)
	}
	figures, err := parseCommercial(req.Qty, req.Value, req.ShipmentDate)
	if err != nil {
		return nil, err
	}

	status := s.statuses.Initial()
	if !req.Status.Blank() {
		parsed, err := s.statuses.Parse(req.Status.String())
		if err != nil {
			return nil, invalidStatusError(s.statuses)
		}
		status = parsed
	}

	assignee, err := s.resolveAssignee(ctx, req.AssignedTo)
	if err != nil {
		return nil, err
	}

	lead := &models.Lead{
		CustomerName:  req.CustomerName.String(),
		Phone:         normalize.Phone(req.Phone.String()),
		Phone2:        optionalText(req.Phone2),
		Source:        optionalText(req.Source),
		Country:       optionalText(req.Country),
		Product:       optionalText(req.Product),
		Qty:           figures.qty,
		Notes:         optionalText(req.Notes),
		City:          optionalText(req.City),
		Address:       optionalText(req.Address),
		Value:         figures.value,
		PaymentMethod: optionalText(req.PaymentMethod),
		ShipmentDate:  figures.shipmentDate,
		Status:        status,
		AssignedTo:    assignee.ID,
		ExternalID:    optionalText(req.ExternalID),
	}
	if err := s.repo.Create(ctx, lead); err != nil {
		return nil, db.TranslateError(err, "lead")
	}
	lead.User = assignee
	s.metrics.LeadCreated(derefOr(lead.Source, "manual"))
	return FromModel(lead), nil
}

func (s *service) Assign(ctx context.Context, id uuid.UUID, req AssignRequest) (*LeadDTO, error) {
	if req.AssignedTo.Blank() {
		return nil, missingFieldsError("missing required fields", []string{"assignedTo"})
	}
	assignee, err := s.resolveAssignee(ctx, req.AssignedTo)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, map[string]any{"assigned_to": assignee.ID}); err != nil {
		return nil, db.TranslateError(err, "lead")
	}
	lead, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, db.TranslateError(err, "lead")
	}
	return FromModel(lead), nil
}

func (s *service) History(ctx context.Context, actor Actor, id uuid.UUID) ([]ActivityDTO, error) {
	if _, err := s.loadForActor(ctx, actor, id); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListActivities(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list activities")
	}
	out := make([]ActivityDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *activityFromModel(&rows[i]))
	}
	return out, nil
}

// loadForActor returns NotFound before Forbidden so missing ids are never
// reported as permission failures.
func (s *service) loadForActor(ctx context.Context, actor Actor, id uuid.UUID) (*models.Lead, error) {
	lead, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, db.TranslateError(err, "lead")
	}
	if !actor.isAdmin() && lead.AssignedTo != actor.ID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not allowed to access this lead")
	}
	return lead, nil
}

// resolveAssignee requires an existing ACTIVE user.
func (s *service) resolveAssignee(ctx context.Context, raw types.Scalar) (*models.User, error) {
	invalid := pkgerrors.New(pkgerrors.CodeValidation, "assignedTo must reference an active user").
		WithDetails(map[string]string{"assignedTo": "is invalid"})

	id, err := uuid.Parse(raw.String())
	if err != nil {
		return nil, invalid
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalid
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup assignee")
	}
	if !user.IsActive() {
		return nil, invalid
	}
	return user, nil
}

func missingFieldsError(message string, fields []string) error {
	return pkgerrors.Newf(pkgerrors.CodeValidation, "%s: %s", message, strings.Join(fields, ", ")).
		WithDetails(map[string]any{"missingFields": fields})
}

func invalidStatusError(set enums.LeadStatusSet) error {
	return pkgerrors.New(pkgerrors.CodeValidation, "invalid status").
		WithDetails(map[string]any{"status": "is invalid", "allowed": set.Values()})
}

// commercial holds the numeric and date fields of a lead after strict
// parsing. Nil means blank input.
type commercial struct {
	qty          *int
	value        *decimal.Decimal
	shipmentDate *time.Time
}

// parseCommercial rejects non-blank input that does not parse, naming every
// offending field, instead of storing NULL.
func parseCommercial(qty, value, shipmentDate types.Scalar) (commercial, error) {
	var out commercial
	var invalid []string
	if !qty.Blank() {
		if out.qty = normalize.ParseInt(qty.String()); out.qty == nil {
			invalid = append(invalid, "qty")
		}
	}
	if !value.Blank() {
		if out.value = normalize.ParseDecimal(value.String()); out.value == nil {
			invalid = append(invalid, "value")
		}
	}
	if !shipmentDate.Blank() {
		if out.shipmentDate = normalize.ParseDate(shipmentDate.String()); out.shipmentDate == nil {
			invalid = append(invalid, "shipmentDate")
		}
	}
	if len(invalid) > 0 {
		return commercial{}, invalidFieldsError(invalid)
	}
	return out, nil
}

func invalidFieldsError(fields []string) error {
	return pkgerrors.Newf(pkgerrors.CodeValidation, "invalid fields: %s", strings.Join(fields, ", ")).
		WithDetails(map[string]any{"invalidFields": fields})
}

// optionalText trims a scalar, mapping blank input to nil.
func optionalText(v types.Scalar) *string {
	if v.Blank() {
		return nil
	}
	text := v.String()
	return &text
}

func derefOr(v *string, fallback string) string {
	if v == nil || *v == "" {
		return fallback
	}
	return *v
}
