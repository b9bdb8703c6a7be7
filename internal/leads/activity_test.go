package leads

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/leadflow-backend/pkg/db/models"
	"github.com/angelmondragon/leadflow-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/leadflow-backend/pkg/errors"
	"github.com/angelmondragon/leadflow-backend/pkg/types"
)

func (f *fixture) activityCount(t *testing.T, leadID uuid.UUID) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.client.DB().Model(&models.LeadActivity{}).Where("lead_id = ?", leadID).Count(&n).Error)
	return n
}

func TestRecordActivityWonRejectsEveryMissingField(t *testing.T) {
	f := newFixture(t)
	lead := f.seedLead(t, f.agent, func(l *models.Lead) {
		l.Product = strPtr("Widget")
		l.Qty = intPtr(0)
	})

	_, err := f.svc.RecordActivity(context.Background(), f.actor(f.agent), lead.ID, ActivityRequest{
		Status: types.S("won"),
		City:   types.S("Monterrey"),
		Notes:  types.S("  "),
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, map[string]any{"missingFields": []string{"qty", "notes", "address", "value", "paymentMethod"}}, typed.Details())

	assert.Zero(t, f.activityCount(t, lead.ID))
	stored, err := f.repo.FindByID(context.Background(), lead.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.LeadStatusInitialContact, stored.Status)
	assert.Nil(t, stored.City)
	assert.Equal(t, 0, stored.Version)
}

func TestRecordActivityWonMergesStoredFields(t *testing.T) {
	f := newFixture(t)
	value := decimal.RequireFromString("900")
	lead := f.seedLead(t, f.agent, func(l *models.Lead) {
		l.Product = strPtr("Widget")
		l.Qty = intPtr(2)
		l.Notes = strPtr("call after 5")
		l.City = strPtr("Monterrey")
		l.Address = strPtr("Av. Siempre Viva 742")
		l.Value = &value
	})

	activity, err := f.svc.RecordActivity(context.Background(), f.actor(f.admin), lead.ID, ActivityRequest{
		Status:        types.S("WON"),
		PaymentMethod: types.S("COD"),
		Remarks:       types.S("closed"),
	})
	require.NoError(t, err)
	assert.Equal(t, enums.LeadStatusWon, activity.Status)
	assert.Equal(t, f.admin.ID, activity.AgentID)
	require.NotNil(t, activity.Value)
	assert.True(t, activity.Value.Equal(value))

	stored, err := f.repo.FindByID(context.Background(), lead.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.LeadStatusWon, stored.Status)
	require.NotNil(t, stored.PaymentMethod)
	assert.Equal(t, "COD", *stored.PaymentMethod)
	assert.NotNil(t, stored.LastActivityAt)
	assert.Equal(t, 1, stored.Version)
	assert.EqualValues(t, 1, f.activityCount(t, lead.ID))
}

func TestRecordActivityNonWonOnlyNeedsStatus(t *testing.T) {
	f := newFixture(t)
	lead := f.seedLead(t, f.agent, nil)

	activity, err := f.svc.RecordActivity(context.Background(), f.actor(f.agent), lead.ID, ActivityRequest{
		Status:   types.S("follow up"),
		Phone2:   types.S(" 5550000 "),
		Value:    types.Scalar{Valid: true, Raw: "150"},
		FollowUp: types.S("2025-03-10"),
	})
	require.NoError(t, err)
	assert.Equal(t, enums.LeadStatusFollowUp, activity.Status)
	require.NotNil(t, activity.FollowUp)

	stored, err := f.repo.FindByID(context.Background(), lead.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.LeadStatusFollowUp, stored.Status)
	require.NotNil(t, stored.Phone2)
	assert.Equal(t, "5550000", *stored.Phone2)
	require.NotNil(t, stored.Value)
	assert.True(t, stored.Value.Equal(*activity.Value))
}

func TestRecordActivityValidationAndAuthorization(t *testing.T) {
	f := newFixture(t)
	lead := f.seedLead(t, f.agent, nil)
	ctx := context.Background()

	_, err := f.svc.RecordActivity(ctx, f.actor(f.agent), lead.ID, ActivityRequest{})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = f.svc.RecordActivity(ctx, f.actor(f.agent), lead.ID, ActivityRequest{Status: types.S("ON_HOLD")})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = f.svc.RecordActivity(ctx, f.actor(f.other), uuid.New(), ActivityRequest{Status: types.S("COLD")})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	_, err = f.svc.RecordActivity(ctx, f.actor(f.other), lead.ID, ActivityRequest{Status: types.S("COLD")})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden))

	_, err = f.svc.History(ctx, f.actor(f.other), lead.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden))
	assert.Zero(t, f.activityCount(t, lead.ID))
}

func TestRecordActivityRejectsUnparseableFigures(t *testing.T) {
	f := newFixture(t)
	value := decimal.RequireFromString("900")
	lead := f.seedLead(t, f.agent, func(l *models.Lead) {
		l.Product = strPtr("Widget")
		l.Qty = intPtr(2)
		l.Notes = strPtr("n")
		l.City = strPtr("Monterrey")
		l.Address = strPtr("Centro")
		l.Value = &value
		l.PaymentMethod = strPtr("COD")
	})
	ctx := context.Background()

	_, err := f.svc.RecordActivity(ctx, f.actor(f.agent), lead.ID, ActivityRequest{
		Status: types.S("WON"),
		Qty:    types.S("many"),
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, map[string]any{"invalidFields": []string{"qty"}}, typed.Details())

	_, err = f.svc.RecordActivity(ctx, f.actor(f.agent), lead.ID, ActivityRequest{
		Status:   types.S("FOLLOW_UP"),
		FollowUp: types.S("next week"),
	})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "got %v", err)

	assert.Zero(t, f.activityCount(t, lead.ID))
	stored, err := f.repo.FindByID(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, *stored.Qty)
	assert.Equal(t, 0, stored.Version)
}

// staleRepo hands out a lead whose version is behind the stored row, as if
// another request committed in between.
type staleRepo struct {
	*Repository
}

func (r staleRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Lead, error) {
	lead, err := r.Repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	lead.Version--
	return lead, nil
}

func TestRecordActivityConflictRollsBack(t *testing.T) {
	f := newFixture(t)
	lead := f.seedLead(t, f.agent, nil)
	svc := f.buildService(t, staleRepo{f.repo})

	_, err := svc.RecordActivity(context.Background(), f.actor(f.agent), lead.ID, ActivityRequest{Status: types.S("WARM")})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict), "got %v", err)
	assert.Zero(t, f.activityCount(t, lead.ID))

	stored, err := f.repo.FindByID(context.Background(), lead.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.LeadStatusInitialContact, stored.Status)
}

func TestHistoryNewestFirst(t *testing.T) {
	f := newFixture(t)
	lead := f.seedLead(t, f.agent, nil)
	ctx := context.Background()

	for _, status := range []string{"COLD", "WARM", "NEGOTIATIONS"} {
		_, err := f.svc.RecordActivity(ctx, f.actor(f.agent), lead.ID, ActivityRequest{Status: types.S(status)})
		require.NoError(t, err)
	}

	history, err := f.svc.History(ctx, f.actor(f.admin), lead.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, enums.LeadStatusNegotiations, history[0].Status)
	assert.Equal(t, enums.LeadStatusCold, history[2].Status)

	stored, err := f.repo.FindByID(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, history[0].Status, stored.Status)
	assert.Equal(t, 3, stored.Version)
}
