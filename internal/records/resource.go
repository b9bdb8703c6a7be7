package records

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/leadflow-backend/internal/repo"
	"github.com/angelmondragon/leadflow-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/leadflow-backend/pkg/errors"
)

// Resource is the uniform CRUD surface shared by every reference-data
// router. Bodies are raw JSON objects with loosely typed values.
type Resource interface {
	Label() string
	List(ctx context.Context) (any, error)
	Get(ctx context.Context, id uuid.UUID) (any, error)
	Create(ctx context.Context, body []byte) (any, error)
	Patch(ctx context.Context, id uuid.UUID, body []byte) (any, error)
}

type resource[T any] struct {
	label    string
	table    repo.Table[T]
	fields   []field
	defaults map[string]any
	now      func() time.Time
}

func (r *resource[T]) Label() string {
	return r.label
}

func (r *resource[T]) List(ctx context.Context) (any, error) {
	rows, err := r.table.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list "+r.label)
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, nil
}

func (r *resource[T]) Get(ctx context.Context, id uuid.UUID) (any, error) {
	row, err := r.table.Get(ctx, id)
	if err != nil {
		return nil, db.TranslateError(err, r.label)
	}
	return row, nil
}

func (r *resource[T]) Create(ctx context.Context, body []byte) (any, error) {
	return r.create(ctx, body, nil)
}

// create inserts a row; fixed overrides body values (used for parent keys).
func (r *resource[T]) create(ctx context.Context, body []byte, fixed map[string]any) (*T, error) {
	scalars, err := decodeScalars(body, r.fields)
	if err != nil {
		return nil, err
	}
	values, err := bindCreate(scalars, r.fields)
	if err != nil {
		return nil, err
	}
	for column, v := range r.defaults {
		if _, ok := values[column]; !ok {
			values[column] = v
		}
	}
	for column, v := range fixed {
		values[column] = v
	}

	id := uuid.New()
	now := r.now().UTC()
	values["id"] = id
	values["created_at"] = now
	values["updated_at"] = now

	if err := r.table.Insert(ctx, values); err != nil {
		return nil, db.TranslateError(err, r.label)
	}
	row, err := r.table.Get(ctx, id)
	if err != nil {
		return nil, db.TranslateError(err, r.label)
	}
	return row, nil
}

func (r *resource[T]) Patch(ctx context.Context, id uuid.UUID, body []byte) (any, error) {
	scalars, err := decodeScalars(body, r.fields)
	if err != nil {
		return nil, err
	}
	updates, err := bindPatch(scalars, r.fields)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return r.Get(ctx, id)
	}
	updates["updated_at"] = r.now().UTC()

	if err := r.table.Patch(ctx, id, updates); err != nil {
		return nil, db.TranslateError(err, r.label)
	}
	return r.Get(ctx, id)
}
