package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/leadflow-backend/pkg/db/models"
	"github.com/angelmondragon/leadflow-backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Email       string           `json:"email"`
	Role        enums.UserRole   `json:"role"`
	Status      enums.UserStatus `json:"status"`
	LastLoginAt *time.Time       `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`

	// TemporaryPassword is only set on the response to a reset.
	TemporaryPassword string `json:"temporaryPassword,omitempty"`
}

// AgentDTO is the compact shape used by assignment pickers.
type AgentDTO struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// PatchUserRequest updates an account. Absent fields stay untouched.
type PatchUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=120"`
	Role     *string `json:"role"`
	Status   *string `json:"status"`
	Password *string `json:"password" validate:"omitempty,min=8"`

	// ResetPassword generates a temporary password returned once.
	ResetPassword bool `json:"resetPassword"`
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		Status:      u.Status,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

func fromModels(rows []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
