package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/leadflow-backend/pkg/config"
	"github.com/angelmondragon/leadflow-backend/pkg/db/models"
	"github.com/angelmondragon/leadflow-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/leadflow-backend/pkg/errors"
	"github.com/angelmondragon/leadflow-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const tempPasswordLength = 12

// Service exposes the account administration use cases.
type Service interface {
	List(ctx context.Context) ([]UserDTO, error)
	ListAgents(ctx context.Context) ([]AgentDTO, error)
	Patch(ctx context.Context, id uuid.UUID, req PatchUserRequest) (*UserDTO, error)
}

type userRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	ListActiveAgents(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
}

type service struct {
	repo      userRepository
	passwords *security.Hasher
}

// NewService builds the users service.
func NewService(repo userRepository, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	return &service{repo: repo, passwords: security.NewHasher(passwordCfg)}, nil
}

func (s *service) List(ctx context.Context) ([]UserDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list users")
	}
	return fromModels(rows), nil
}

func (s *service) ListAgents(ctx context.Context) ([]AgentDTO, error) {
	rows, err := s.repo.ListActiveAgents(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list agents")
	}
	out := make([]AgentDTO, 0, len(rows))
	for _, u := range rows {
		out = append(out, AgentDTO{ID: u.ID, Name: u.Name, Email: u.Email})
	}
	return out, nil
}

func (s *service) Patch(ctx context.Context, id uuid.UUID, req PatchUserRequest) (*UserDTO, error) {
	updates := map[string]any{}
	invalid := map[string]string{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			invalid["name"] = "is required"
		} else {
			updates["name"] = name
		}
	}
	if req.Role != nil {
		role, err := enums.ParseUserRole(*req.Role)
		if err != nil {
			invalid["role"] = "must be ADMIN or AGENT"
		} else {
			updates["role"] = role
		}
	}
	if req.Status != nil {
		status, err := enums.ParseUserStatus(*req.Status)
		if err != nil {
			invalid["status"] = "must be ACTIVE or INACTIVE"
		} else {
			updates["status"] = status
		}
	}
	if len(invalid) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(invalid)
	}
	var temporary string
	if req.ResetPassword {
		generated, err := security.GenerateTempPassword(tempPasswordLength)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate password")
		}
		temporary = generated
		req.Password = &generated
	}
	if req.Password != nil {
		hash, err := s.passwords.Hash(*req.Password)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		updates["password_hash"] = hash
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update user")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload user")
	}
	dto := FromModel(user)
	dto.TemporaryPassword = temporary
	return dto, nil
}
