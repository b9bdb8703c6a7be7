package analytics

import (
	"context"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/leadflow-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/leadflow-backend/pkg/errors"
)

// Overview is the admin dashboard summary.
type Overview struct {
	TotalLeads     int64           `json:"totalLeads"`
	WonLeads       int64           `json:"wonLeads"`
	FollowUpLeads  int64           `json:"followUpLeads"`
	NewLeads       int64           `json:"newLeads"`
	LostLeads      int64           `json:"lostLeads"`
	ActiveAgents   int64           `json:"activeAgents"`
	ConversionRate float64         `json:"conversionRate"`
	WonValue       decimal.Decimal `json:"wonValue"`
}

// Service provides lead pipeline reports.
type Service interface {
	Overview(ctx context.Context) (*Overview, error)
}

type store interface {
	CountLeads(ctx context.Context, status enums.LeadStatus) (int64, error)
	CountActiveAgents(ctx context.Context) (int64, error)
	SumValue(ctx context.Context, status enums.LeadStatus) (decimal.Decimal, error)
}

type service struct {
	store store
}

// NewService builds an analytics service over the lead tables.
func NewService(repo store) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("analytics repository required")
	}
	return &service{store: repo}, nil
}

func (s *service) Overview(ctx context.Context) (*Overview, error) {
	out := &Overview{}
	g, gctx := errgroup.WithContext(ctx)

	counts := []struct {
		status enums.LeadStatus
		dest   *int64
	}{
		{"", &out.TotalLeads},
		{enums.LeadStatusWon, &out.WonLeads},
		{enums.LeadStatusFollowUp, &out.FollowUpLeads},
		{enums.LeadStatusInitialContact, &out.NewLeads},
		{enums.LeadStatusLost, &out.LostLeads},
	}
	for _, c := range counts {
		g.Go(func() error {
			n, err := s.store.CountLeads(gctx, c.status)
			if err != nil {
				return err
			}
			*c.dest = n
			return nil
		})
	}
	g.Go(func() error {
		n, err := s.store.CountActiveAgents(gctx)
		if err != nil {
			return err
		}
		out.ActiveAgents = n
		return nil
	})
	g.Go(func() error {
		sum, err := s.store.SumValue(gctx, enums.LeadStatusWon)
		if err != nil {
			return err
		}
		out.WonValue = sum
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "compute overview")
	}
	out.ConversionRate = conversionRate(out.WonLeads, out.TotalLeads)
	return out, nil
}

// conversionRate is won/total as a percentage rounded to one decimal place.
func conversionRate(won, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(won)/float64(total)*1000) / 10
}
