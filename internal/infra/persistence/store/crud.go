package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// crud is the shared data access for models keyed by a UUID "id" column.
// Lookups return gorm.ErrRecordNotFound untranslated; callers map it to
// their own sentinel.
type crud[M any] struct {
	db *gorm.DB
}

func newCRUD[M any](db *gorm.DB) crud[M] {
	return crud[M]{db: db}
}

func (c crud[M]) insert(ctx context.Context, m *M) error {
	return c.db.WithContext(ctx).Create(m).Error
}

func (c crud[M]) findByID(ctx context.Context, id uuid.UUID) (*M, error) {
	return c.findOneWhere(ctx, "id = ?", id)
}

func (c crud[M]) findOneWhere(ctx context.Context, query any, args ...any) (*M, error) {
	var m M
	if err := c.db.WithContext(ctx).Where(query, args...).Take(&m).Error; err != nil {
		return nil, err
	}

	return &m, nil
}

func (c crud[M]) listWhere(ctx context.Context, order string, scopes ...func(*gorm.DB) *gorm.DB) ([]M, error) {
	var rows []M
	if err := c.db.WithContext(ctx).Scopes(scopes...).Order(order).Find(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

// updateColumns touches only the given columns. No matching row is not an error.
func (c crud[M]) updateColumns(ctx context.Context, id uuid.UUID, columns map[string]any) error {
	return c.db.WithContext(ctx).Model(new(M)).Where("id = ?", id).Updates(columns).Error
}

// deleteByID removes the row if present. No matching row is not an error.
func (c crud[M]) deleteByID(ctx context.Context, id uuid.UUID) error {
	return c.db.WithContext(ctx).Where("id = ?", id).Delete(new(M)).Error
}
