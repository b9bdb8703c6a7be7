package leads

import (
	"context"

	"github.com/angelmondragon/leadflow-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists leads and their activity log.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a leads repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, lead *models.Lead) error {
	return r.db.WithContext(ctx).Create(lead).Error
}

// FindByID loads a lead with its assigned user.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Lead, error) {
	var lead models.Lead
	if err := r.db.WithContext(ctx).Preload("User").First(&lead, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &lead, nil
}

// FindByExternalID returns gorm.ErrRecordNotFound when no lead carries the id.
func (r *Repository) FindByExternalID(ctx context.Context, externalID string) (*models.Lead, error) {
	var lead models.Lead
	if err := r.db.WithContext(ctx).First(&lead, "external_id = ?", externalID).Error; err != nil {
		return nil, err
	}
	return &lead, nil
}

// ListByAssignee returns one agent's leads, newest first.
func (r *Repository) ListByAssignee(ctx context.Context, userID uuid.UUID) ([]models.Lead, error) {
	var rows []models.Lead
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("assigned_to = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// ListAll returns every lead with its assigned user, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]models.Lead, error) {
	var rows []models.Lead
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// Update applies column updates and reports gorm.ErrRecordNotFound when no row matched.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	res := r.db.WithContext(ctx).Model(&models.Lead{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateSnapshot applies updates only while the stored version still equals
// version, bumping it. It returns the number of rows changed.
func (r *Repository) UpdateSnapshot(ctx context.Context, id uuid.UUID, version int, updates map[string]any) (int64, error) {
	updates["version"] = gorm.Expr("version + 1")
	res := r.db.WithContext(ctx).
		Model(&models.Lead{}).
		Where("id = ? AND version = ?", id, version).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *Repository) CreateActivity(ctx context.Context, activity *models.LeadActivity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

// ListActivities returns a lead's history, newest first.
func (r *Repository) ListActivities(ctx context.Context, leadID uuid.UUID) ([]models.LeadActivity, error) {
	var rows []models.LeadActivity
	err := r.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}
