package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base provides a shared foundation for domain repositories.
type Base struct {
	db *gorm.DB
}

// NewBase constructs a Base repository backed by the provided GORM connection.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the GORM connection bound to the supplied context (if any).
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// Preload names an association to load alongside each row, optionally
// ordered.
type Preload struct {
	Association string
	Order       string
}

// Table is a uuid-keyed CRUD repository over a single model.
type Table[T any] struct {
	Base
	order    string
	preloads []Preload
}

// NewTable builds a Table listing rows by order (a raw ORDER BY clause).
func NewTable[T any](db *gorm.DB, order string, preloads ...Preload) Table[T] {
	return Table[T]{Base: NewBase(db), order: order, preloads: preloads}
}

func (t Table[T]) query(ctx context.Context) *gorm.DB {
	q := t.DB(ctx)
	for _, p := range t.preloads {
		if p.Order == "" {
			q = q.Preload(p.Association)
			continue
		}
		order := p.Order
		q = q.Preload(p.Association, func(db *gorm.DB) *gorm.DB {
			return db.Order(order)
		})
	}
	return q
}

// List returns every row in the table's order.
func (t Table[T]) List(ctx context.Context) ([]T, error) {
	var rows []T
	q := t.query(ctx)
	if t.order != "" {
		q = q.Order(t.order)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Get returns gorm.ErrRecordNotFound when no row carries id.
func (t Table[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	var row T
	if err := t.query(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Insert writes a row from column values. The caller supplies the id.
func (t Table[T]) Insert(ctx context.Context, values map[string]any) error {
	return t.DB(ctx).Model(new(T)).Create(values).Error
}

// Patch applies column updates to the row with id, returning
// gorm.ErrRecordNotFound when nothing matched.
func (t Table[T]) Patch(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	res := t.DB(ctx).Model(new(T)).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
