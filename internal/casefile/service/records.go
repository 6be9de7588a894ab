// Package service implements the case file entities: addresses, clients,
// organizations, contacts, premises and cases. Each service validates enum
// fields and checks that referenced records exist before writing.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/escrowline/backend/internal/apperr"
	"github.com/escrowline/backend/internal/casefile/model"
	"github.com/escrowline/backend/internal/enum"
	"github.com/escrowline/backend/internal/store"
	"github.com/escrowline/backend/utils"
)

// records wraps the table of one entity with the error translation every
// entity service shares. name is used in messages ("Client not found").
type records[T any] struct {
	table *store.Table[uuid.UUID, T]
	name  string
}

func newRecords[T any](db *gorm.DB, name string, idOf func(*T) uuid.UUID) records[T] {
	return records[T]{table: store.NewTable(db, "id", idOf), name: name}
}

func (r records[T]) get(ctx context.Context, id uuid.UUID) (*T, error) {
	item, err := r.table.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("%s not found", r.name)
		}
		return nil, apperr.Internal(err, "failed to retrieve %s", r.name)
	}
	return item, nil
}

func (r records[T]) create(ctx context.Context, item *T) error {
	if err := r.table.Put(ctx, item); err != nil {
		return apperr.Internal(err, "failed to create %s", r.name)
	}
	return nil
}

// update writes fields and returns the reloaded record. An empty field set
// only checks that the record exists.
func (r records[T]) update(ctx context.Context, id uuid.UUID, fields map[string]any) (*T, error) {
	if err := r.table.Update(ctx, id, fields); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("%s not found", r.name)
		}
		return nil, apperr.Internal(err, "failed to update %s", r.name)
	}
	return r.get(ctx, id)
}

func (r records[T]) delete(ctx context.Context, id uuid.UUID) error {
	if err := r.table.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound("%s not found", r.name)
		}
		return apperr.Internal(err, "failed to delete %s", r.name)
	}
	slog.InfoContext(ctx, "record deleted", "entity", r.name, "id", id)
	return nil
}

func (r records[T]) search(ctx context.Context, where map[string]any, page model.Page) (*model.SearchResult[T], error) {
	filter := utils.SearchFilter(page, where)

	total, err := r.table.Count(ctx, filter)
	if err != nil {
		return nil, apperr.Internal(err, "failed to count %s records", r.name)
	}
	items, err := r.table.Scan(ctx, filter)
	if err != nil {
		return nil, apperr.Internal(err, "failed to search %s records", r.name)
	}
	return &model.SearchResult[T]{Items: items, Total: total, Offset: filter.Offset, Limit: filter.Limit}, nil
}

// requireExists fails with NotFound("<field> not found") when id has no record.
func (r records[T]) requireExists(ctx context.Context, id uuid.UUID, field string) error {
	exists, err := r.table.Exists(ctx, id)
	if err != nil {
		return apperr.Internal(err, "failed to check %s", field)
	}
	if !exists {
		return apperr.NotFound("%s not found", field)
	}
	return nil
}

// requireAll dedupes ids keeping their first occurrence and fails when any of
// them has no record.
func (r records[T]) requireAll(ctx context.Context, ids []uuid.UUID, field string) (store.UUIDArray, error) {
	unique := make(store.UUIDArray, 0, len(ids))
	for _, id := range ids {
		if !unique.Contains(id) {
			unique = append(unique, id)
		}
	}
	found, err := r.table.BatchGet(ctx, unique)
	if err != nil {
		return nil, apperr.Internal(err, "failed to check %s", field)
	}
	if len(found) != len(unique) {
		return nil, apperr.NotFound("%s not found", field)
	}
	return unique, nil
}

func castRequired[T ~string](table *enum.Table[T], value *int) (T, error) {
	if value == nil {
		var zero T
		return zero, apperr.Validation("%s is required", table.Name())
	}
	return cast(table, *value)
}

func cast[T ~string](table *enum.Table[T], value int) (T, error) {
	symbol, ok := enum.CastIntToEnum(table, value)
	if !ok {
		return symbol, apperr.Validation("invalid %s %d", table.Name(), value)
	}
	return symbol, nil
}

// setRequired adds value to fields when it is present. The empty string is
// rejected.
func setRequired(fields map[string]any, column string, value *string) error {
	if value == nil {
		return nil
	}
	if strings.TrimSpace(*value) == "" {
		return apperr.Validation("%s cannot be empty", column)
	}
	fields[column] = *value
	return nil
}
