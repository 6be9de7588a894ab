// Package store implements the keyed document store every entity service is
// built on: get/put/update/delete by key, filtered scan and batch get over one
// gorm table per entity.
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when no record matches the requested key.
var ErrNotFound = errors.New("record not found")

// Filter selects records in Scan and Count. Where holds column → value
// equality conditions; Offset and Limit are ignored when not positive.
type Filter struct {
	Where  map[string]any
	Order  string
	Offset int
	Limit  int
}

// Table is the document store of one entity type T keyed by K.
// One record is the unit of mutation: no operation touches more than one key
// inside a transaction of its own making.
type Table[K comparable, T any] struct {
	db        *gorm.DB
	keyColumn string
	keyOf     func(*T) K
}

// NewTable creates a Table over the gorm model T whose primary key column is
// keyColumn. keyOf extracts the key from a loaded record.
func NewTable[K comparable, T any](db *gorm.DB, keyColumn string, keyOf func(*T) K) *Table[K, T] {
	return &Table[K, T]{db: db, keyColumn: keyColumn, keyOf: keyOf}
}

func (t *Table[K, T]) keyCondition() string {
	return t.keyColumn + " = ?"
}

// Get loads the record stored under key.
func (t *Table[K, T]) Get(ctx context.Context, key K) (*T, error) {
	var item T
	result := t.db.WithContext(ctx).Where(t.keyCondition(), key).First(&item)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get record %v: %w", key, result.Error)
	}
	return &item, nil
}

// Exists reports whether a record is stored under key.
func (t *Table[K, T]) Exists(ctx context.Context, key K) (bool, error) {
	var count int64
	result := t.db.WithContext(ctx).Model(new(T)).Where(t.keyCondition(), key).Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("failed to check record %v: %w", key, result.Error)
	}
	return count > 0, nil
}

// Put inserts a new record. Keys generated by model hooks are written back
// into item.
func (t *Table[K, T]) Put(ctx context.Context, item *T) error {
	if item == nil {
		return fmt.Errorf("record cannot be nil")
	}
	if err := t.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to put record: %w", err)
	}
	return nil
}

// Update assigns fields (column → value) on the record stored under key.
// Columns absent from fields are left untouched.
func (t *Table[K, T]) Update(ctx context.Context, key K, fields map[string]any) error {
	if len(fields) == 0 {
		exists, err := t.Exists(ctx, key)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return nil
	}

	result := t.db.WithContext(ctx).Model(new(T)).Where(t.keyCondition(), key).Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update record %v: %w", key, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the record stored under key. Deleting a missing key returns
// ErrNotFound.
func (t *Table[K, T]) Delete(ctx context.Context, key K) error {
	result := t.db.WithContext(ctx).Where(t.keyCondition(), key).Delete(new(T))
	if result.Error != nil {
		return fmt.Errorf("failed to delete record %v: %w", key, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *Table[K, T]) filtered(ctx context.Context, filter Filter) *gorm.DB {
	query := t.db.WithContext(ctx).Model(new(T))
	if len(filter.Where) > 0 {
		query = query.Where(filter.Where)
	}
	return query
}

// Scan returns every record matching filter.
func (t *Table[K, T]) Scan(ctx context.Context, filter Filter) ([]T, error) {
	query := t.filtered(ctx, filter)
	if filter.Order != "" {
		query = query.Order(filter.Order)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	items := make([]T, 0)
	if err := query.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to scan records: %w", err)
	}
	return items, nil
}

// Count returns the number of records matching filter, ignoring its paging.
func (t *Table[K, T]) Count(ctx context.Context, filter Filter) (int64, error) {
	var count int64
	if err := t.filtered(ctx, filter).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

// BatchGet loads the records stored under keys, returned in the order of keys.
// Missing keys are skipped.
func (t *Table[K, T]) BatchGet(ctx context.Context, keys []K) ([]T, error) {
	if len(keys) == 0 {
		return []T{}, nil
	}

	var found []T
	if err := t.db.WithContext(ctx).Where(t.keyColumn+" IN ?", keys).Find(&found).Error; err != nil {
		return nil, fmt.Errorf("failed to batch get records: %w", err)
	}

	byKey := make(map[K]T, len(found))
	for i := range found {
		byKey[t.keyOf(&found[i])] = found[i]
	}

	items := make([]T, 0, len(found))
	for _, key := range keys {
		if item, ok := byKey[key]; ok {
			items = append(items, item)
		}
	}
	return items, nil
}
