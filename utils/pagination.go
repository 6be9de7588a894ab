package utils

import (
	"github.com/escrowline/backend/internal/casefile/model"
	"github.com/escrowline/backend/internal/store"
)

const (
	searchPageSize    = 20
	searchPageSizeMax = 100
	searchOrder       = "created_at DESC"
)

// SearchFilter turns a requested page into a store filter over where, newest
// records first. A missing or negative offset starts at the first record; a
// missing or non-positive limit means one default page, and larger limits are
// capped.
func SearchFilter(page model.Page, where map[string]any) store.Filter {
	filter := store.Filter{Where: where, Order: searchOrder, Limit: searchPageSize}
	if page.Offset != nil && *page.Offset > 0 {
		filter.Offset = *page.Offset
	}
	if page.Limit != nil && *page.Limit > 0 {
		filter.Limit = min(*page.Limit, searchPageSizeMax)
	}
	return filter
}
