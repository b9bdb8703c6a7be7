package analytics

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/leadflow-backend/pkg/db/dbtest"
	"github.com/angelmondragon/leadflow-backend/pkg/db/models"
	"github.com/angelmondragon/leadflow-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/leadflow-backend/pkg/errors"
)

func TestOverviewAggregates(t *testing.T) {
	conn := dbtest.New(t).DB()
	ctx := context.Background()

	agent := &models.User{Name: "a", Email: "a@example.com", PasswordHash: "x", Role: enums.UserRoleAgent, Status: enums.UserStatusActive}
	idle := &models.User{Name: "b", Email: "b@example.com", PasswordHash: "x", Role: enums.UserRoleAgent, Status: enums.UserStatusInactive}
	admin := &models.User{Name: "c", Email: "c@example.com", PasswordHash: "x", Role: enums.UserRoleAdmin, Status: enums.UserStatusActive}
	require.NoError(t, conn.Create(agent).Error)
	require.NoError(t, conn.Create(idle).Error)
	require.NoError(t, conn.Create(admin).Error)

	value := func(v string) *decimal.Decimal {
		d := decimal.RequireFromString(v)
		return &d
	}
	leads := []models.Lead{
		{Status: enums.LeadStatusWon, Value: value("100.50")},
		{Status: enums.LeadStatusWon, Value: value("200")},
		{Status: enums.LeadStatusWon},
		{Status: enums.LeadStatusFollowUp, Value: value("999")},
		{Status: enums.LeadStatusInitialContact},
		{Status: enums.LeadStatusLost},
	}
	for i := range leads {
		leads[i].CustomerName = "c"
		leads[i].Phone = "1"
		leads[i].AssignedTo = agent.ID
		require.NoError(t, conn.Create(&leads[i]).Error)
	}

	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	got, err := svc.Overview(ctx)
	require.NoError(t, err)

	assert.EqualValues(t, 6, got.TotalLeads)
	assert.EqualValues(t, 3, got.WonLeads)
	assert.EqualValues(t, 1, got.FollowUpLeads)
	assert.EqualValues(t, 1, got.NewLeads)
	assert.EqualValues(t, 1, got.LostLeads)
	assert.EqualValues(t, 1, got.ActiveAgents)
	assert.Equal(t, 50.0, got.ConversionRate)
	assert.True(t, decimal.RequireFromString("300.5").Equal(got.WonValue), "got %s", got.WonValue)
}

func TestOverviewEmpty(t *testing.T) {
	svc, err := NewService(NewRepository(dbtest.New(t).DB()))
	require.NoError(t, err)

	got, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Zero(t, got.TotalLeads)
	assert.Zero(t, got.ConversionRate)
	assert.True(t, got.WonValue.IsZero())
}

func TestConversionRateRounding(t *testing.T) {
	assert.Equal(t, 33.3, conversionRate(1, 3))
	assert.Equal(t, 66.7, conversionRate(2, 3))
	assert.Equal(t, 100.0, conversionRate(4, 4))
	assert.Equal(t, 0.0, conversionRate(0, 0))
}

type failingStore struct{ store }

func (failingStore) CountLeads(context.Context, enums.LeadStatus) (int64, error) {
	return 0, errors.New("boom")
}

func (failingStore) CountActiveAgents(context.Context) (int64, error) { return 0, nil }

func (failingStore) SumValue(context.Context, enums.LeadStatus) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func TestOverviewPropagatesErrors(t *testing.T) {
	svc, err := NewService(failingStore{})
	require.NoError(t, err)
	_, err = svc.Overview(context.Background())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInternal))
}
