package export

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/angelmondragon/leadflow-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/leadflow-backend/pkg/errors"
)

// File is a rendered export ready to stream.
type File struct {
	Name string
	Body []byte
}

// Service renders lead exports for the three scopes.
type Service interface {
	MyLeads(ctx context.Context, userID uuid.UUID) (*File, error)
	AgentLeads(ctx context.Context, agentID uuid.UUID) (*File, error)
	AllLeads(ctx context.Context) (*File, error)
}

type leadSource interface {
	ListByAssignee(ctx context.Context, userID uuid.UUID) ([]models.Lead, error)
	ListAll(ctx context.Context) ([]models.Lead, error)
}

type service struct {
	leads leadSource
}

func NewService(leads leadSource) (Service, error) {
	if leads == nil {
		return nil, fmt.Errorf("lead repository required")
	}
	return &service{leads: leads}, nil
}

func (s *service) MyLeads(ctx context.Context, userID uuid.UUID) (*File, error) {
	rows, err := s.leads.ListByAssignee(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list leads")
	}
	return render("leads", rows)
}

// AgentLeads exports another user's leads. Unknown ids yield an empty
// workbook.
func (s *service) AgentLeads(ctx context.Context, agentID uuid.UUID) (*File, error) {
	rows, err := s.leads.ListByAssignee(ctx, agentID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list leads")
	}
	return render("agent_leads", rows)
}

func (s *service) AllLeads(ctx context.Context) (*File, error) {
	rows, err := s.leads.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list leads")
	}
	return render("all_leads", rows)
}

func render(scope string, rows []models.Lead) (*File, error) {
	body, err := BuildWorkbook(rows)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build workbook")
	}
	return &File{Name: scope + "_export.xlsx", Body: body}, nil
}
