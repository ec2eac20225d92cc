package keyset

import (
	"fmt"
)

// Request is intended for API payloads. For proper code generation, inline it:
//
//	type ListPostsFilter struct {
//	    Paging keyset.Request `json:",inline"`
//	    OwnerID int64 `json:"ownerId"`
//	}
type Request struct {
	// Limit - maximum number of records to return in the response.
	Limit int `json:"limit"`
	// Sort - column alias, optionally followed by a direction: "title desc".
	// If empty, the fallback ordering passed to Decode is used.
	Sort string `json:"sort"`
	// SortDirection - "asc" or "desc". Overrides the direction given in Sort.
	SortDirection string `json:"sortDirection"`
	// Cursor - token obtained via Cursor.String(), usually Cursors.Next of the
	// previous response. If empty, the first page is returned.
	Cursor string `json:"cursor"`
}

// Decode converts Request into Params, resolving the sort alias through
// columnMapping, normalizing Limit against MaxLimit and decoding the cursor.
func (r Request) Decode(columnMapping ColumnMapping, fallback OrderBy[string]) (Params[string], error) {
	return r.DecodeMax(MaxLimit, columnMapping, fallback)
}

// DecodeMax is Decode with a custom upper bound for Limit.
func (r Request) DecodeMax(maxLimit int, columnMapping ColumnMapping, fallback OrderBy[string]) (Params[string], error) {
	ordering := fallback

	if r.Sort != "" {
		var err error
		ordering, err = ParseSort(r.Sort, columnMapping)
		if err != nil {
			return Params[string]{}, fmt.Errorf("cannot decode sort: %w", err)
		}
	}

	if r.SortDirection != "" {
		direction, err := ParseSortDirection(r.SortDirection)
		if err != nil {
			return Params[string]{}, fmt.Errorf("cannot decode sort: %w", err)
		}
		ordering.Direction = direction
	}

	if err := ordering.validate(); err != nil {
		return Params[string]{}, fmt.Errorf("cannot decode sort: %w", err)
	}

	cursor, err := DecodeCursor(r.Cursor)
	if err != nil {
		return Params[string]{}, err
	}

	return Params[string]{
		Field:         ordering.Column,
		SortDirection: ordering.Direction,
		Cursor:        cursor,
		Limit:         NormalizeLimitMax(r.Limit, maxLimit),
	}, nil
}

// Response is a page ready to be serialized for API clients. Cursors are
// encoded as tokens; absent cursors are null.
type Response[R any] struct {
	Items   []R     `json:"items"`
	Cursors Cursors `json:"cursors"`
	HasMore bool    `json:"hasMore"`
}

func NewResponse[R any](page Page[R]) Response[R] {
	items := page.Items
	if items == nil {
		items = make([]R, 0)
	}

	return Response[R]{
		Items:   items,
		Cursors: page.Cursors,
		HasMore: page.Cursors.HasNext(),
	}
}
