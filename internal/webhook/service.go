package webhook

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/angelmondragon/leadflow-backend/pkg/config"
	"github.com/angelmondragon/leadflow-backend/pkg/db"
	"github.com/angelmondragon/leadflow-backend/pkg/db/models"
	"github.com/angelmondragon/leadflow-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/leadflow-backend/pkg/errors"
	"github.com/angelmondragon/leadflow-backend/pkg/logger"
	"github.com/angelmondragon/leadflow-backend/pkg/metrics"
	"github.com/angelmondragon/leadflow-backend/pkg/normalize"
)

const unassignedMessage = "Lead received but no matching assignee. Configure agent email or default assignee."

// Result tells the controller which status to answer with.
type Result struct {
	Status  int
	LeadID  uuid.UUID
	Message string
	Payload map[string]any
}

// Service ingests inbound lead webhooks.
type Service interface {
	Ingest(ctx context.Context, token string, body []byte) (*Result, error)
}

type leadRepository interface {
	Create(ctx context.Context, lead *models.Lead) error
	FindByExternalID(ctx context.Context, externalID string) (*models.Lead, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
}

type userRepository interface {
	FindActiveByEmail(ctx context.Context, email string) (*models.User, error)
}

// ServiceParams bundles the dependencies required to build the ingester.
type ServiceParams struct {
	Leads    leadRepository
	Users    userRepository
	Config   config.WebhookConfig
	Statuses enums.LeadStatusSet
	Metrics  *metrics.CRMMetrics
	Logger   *logger.Logger
	Now      func() time.Time
}

type service struct {
	leads    leadRepository
	users    userRepository
	cfg      config.WebhookConfig
	statuses enums.LeadStatusSet
	metrics  *metrics.CRMMetrics
	logg     *logger.Logger
	now      func() time.Time
}

// NewService constructs the webhook ingester.
func NewService(params ServiceParams) (Service, error) {
	if params.Leads == nil {
		return nil, fmt.Errorf("lead repository is required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		leads:    params.Leads,
		users:    params.Users,
		cfg:      params.Config,
		statuses: params.Statuses,
		metrics:  params.Metrics,
		logg:     params.Logger,
		now:      now,
	}, nil
}

func (s *service) Ingest(ctx context.Context, token string, body []byte) (*Result, error) {
	if s.cfg.Token != "" && subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.Token)) != 1 {
		s.metrics.WebhookEvent(metrics.WebhookRejected)
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid webhook token")
	}

	payload, err := decodePayload(body)
	if err != nil {
		s.metrics.WebhookEvent(metrics.WebhookRejected)
		return nil, err
	}

	fields := Extract(payload, s.cfg.DefaultSource)
	fields.Phone = normalize.Phone(fields.Phone)
	if fields.CustomerName == "" || fields.Phone == "" {
		s.metrics.WebhookEvent(metrics.WebhookRejected)
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "missing lead name or phone in payload")
	}

	assignee, err := s.resolveAssignee(ctx, fields.AgentEmail)
	if err != nil {
		return nil, err
	}
	if assignee == nil {
		s.metrics.WebhookEvent(metrics.WebhookUnassigned)
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "agent_email", fields.AgentEmail), "webhook.unassigned")
		}
		return &Result{Status: http.StatusAccepted, Message: unassignedMessage, Payload: payload}, nil
	}

	metadata := datatypes.JSON(bytes.TrimSpace(body))
	if fields.ExternalID != "" {
		return s.upsert(ctx, fields, assignee, metadata)
	}
	res, err := s.create(ctx, fields, assignee, metadata)
	if err != nil {
		return nil, db.TranslateError(err, "lead")
	}
	return res, nil
}

func (s *service) create(ctx context.Context, fields Extracted, assignee *models.User, metadata datatypes.JSON) (*Result, error) {
	lead := &models.Lead{
		CustomerName: fields.CustomerName,
		Phone:        fields.Phone,
		Source:       &fields.Source,
		Status:       s.statuses.Initial(),
		AssignedTo:   assignee.ID,
		Metadata:     metadata,
	}
	if fields.ExternalID != "" {
		externalID := fields.ExternalID
		lead.ExternalID = &externalID
	}
	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, err
	}
	s.metrics.WebhookEvent(metrics.WebhookCreated)
	s.metrics.LeadCreated(fields.Source)
	return &Result{Status: http.StatusCreated, LeadID: lead.ID}, nil
}

// upsert keys on the external id. A unique violation on create means a
// concurrent delivery won the insert, so the update path is retried once.
func (s *service) upsert(ctx context.Context, fields Extracted, assignee *models.User, metadata datatypes.JSON) (*Result, error) {
	existing, err := s.leads.FindByExternalID(ctx, fields.ExternalID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		res, createErr := s.create(ctx, fields, assignee, metadata)
		if createErr == nil {
			return res, nil
		}
		if !db.IsUniqueViolation(createErr, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, createErr, "create lead")
		}
		existing, err = s.leads.FindByExternalID(ctx, fields.ExternalID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload lead")
		}
	case err != nil:
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup lead")
	}

	updates := map[string]any{
		"customer_name":    fields.CustomerName,
		"phone":            fields.Phone,
		"source":           fields.Source,
		"assigned_to":      assignee.ID,
		"metadata":         metadata,
		"last_activity_at": s.now().UTC(),
	}
	if err := s.leads.Update(ctx, existing.ID, updates); err != nil {
		return nil, db.TranslateError(err, "lead")
	}
	s.metrics.WebhookEvent(metrics.WebhookUpdated)
	return &Result{Status: http.StatusOK, LeadID: existing.ID}, nil
}

// resolveAssignee tries the payload's agent email, then the configured
// default. A nil user means nobody could be assigned.
func (s *service) resolveAssignee(ctx context.Context, agentEmail string) (*models.User, error) {
	for _, email := range []string{agentEmail, s.cfg.DefaultAssigneeEmail} {
		if email == "" {
			continue
		}
		user, err := s.users.FindActiveByEmail(ctx, email)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup assignee")
		}
	}
	return nil, nil
}

func decodePayload(body []byte) (map[string]any, error) {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	var payload map[string]any
	if err := decoder.Decode(&payload); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "payload must be a JSON object")
	}
	if payload == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payload must be a JSON object")
	}
	return payload, nil
}
