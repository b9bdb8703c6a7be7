package analytics

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/leadflow-backend/pkg/db/models"
	"github.com/angelmondragon/leadflow-backend/pkg/enums"
)

// Repository runs the aggregate queries behind the overview.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CountLeads counts every lead, or only those in status when one is given.
func (r *Repository) CountLeads(ctx context.Context, status enums.LeadStatus) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Lead{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *Repository) CountActiveAgents(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("role = ? AND status = ?", enums.UserRoleAgent, enums.UserStatusActive).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// SumValue totals lead value for status; leads without a value count as zero.
func (r *Repository) SumValue(ctx context.Context, status enums.LeadStatus) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	row := r.db.WithContext(ctx).Model(&models.Lead{}).
		Select("SUM(value)").
		Where("status = ?", status).
		Row()
	if err := row.Scan(&sum); err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}
