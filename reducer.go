package keyset

import (
	"fmt"
)

// Row is a result row as an ordered database driver returns it when scanning
// into a map: column name to value.
type Row = map[string]any

// Cursors is the cursor bundle returned alongside a page.
type Cursors struct {
	// Start is the cursor the caller supplied; absent for the first page.
	Start Cursor `json:"start"`
	// End is the sort value of the last returned item, or Start for an empty page.
	End Cursor `json:"end"`
	// Next is present only if a further page exists. Pass it as the cursor
	// of the next request.
	Next Cursor `json:"next"`
}

// HasNext returns true if a further page exists.
func (c Cursors) HasNext() bool {
	return !c.Next.IsEmpty()
}

// Page is a reduced page of rows.
type Page[R any] struct {
	Items   []R
	Cursors Cursors
}

// Extractor reads the value of the sort field from a row.
type Extractor[R any, F ~string] func(row R, field F) (Cursor, error)

// Getters is a dictionary of getters for a model. Specify the columns
// pagination can be performed on.
//
// Example:
//
//	keyset.Getters[models.Post, string]{
//		"id":                 func(p models.Post) any { return p.ID },
//		"creation_timestamp": func(p models.Post) any { return p.CreationTimestamp },
//	}
type Getters[R any, F ~string] map[F]func(R) any

// Extractor returns an Extractor backed by the getters.
func (g Getters[R, F]) Extractor() Extractor[R, F] {
	return func(row R, field F) (Cursor, error) {
		getter, ok := g[field]
		if !ok {
			return Cursor{}, fmt.Errorf("cannot find getter for column '%s'", field)
		}

		return CursorOf(getter(row))
	}
}

// RowExtractor is the Extractor for Row.
func RowExtractor[F ~string](row Row, field F) (Cursor, error) {
	value, ok := row[string(field)]
	if !ok {
		return Cursor{}, fmt.Errorf("row has no column '%s'", field)
	}

	return CursorOf(value)
}

// Reduce trims the rows returned by executing p.Predicate() into the page the
// caller sees and builds the cursor bundle.
//
// Rows must be sorted by the planned ordering. Their count decides the case:
//
//   - 0: empty page, End = Start = the supplied cursor.
//   - 1..SpecifiedLimit: last page, items unchanged, no Next.
//   - QueriedLimit: the extra row is dropped and its sort value becomes Next.
//
// Any other count means the executor ignored the limit, and Reduce fails with
// ErrInconsistentPage instead of returning a page.
func Reduce[R any, F ~string](p *Pagination[F], rows []R, extract Extractor[R, F]) (Page[R], error) {
	if p == nil {
		return Page[R]{}, fmt.Errorf("%w: pagination is nil", ErrInconsistentPage)
	}

	switch n := len(rows); {
	case n == 0:
		return Page[R]{
			Items:   []R{},
			Cursors: Cursors{Start: p.cursor, End: p.cursor},
		}, nil
	case n <= p.limit:
		end, err := extractCursor(rows[n-1], p.field, extract)
		if err != nil {
			return Page[R]{}, err
		}

		return Page[R]{
			Items:   rows,
			Cursors: Cursors{Start: p.cursor, End: end},
		}, nil
	case n == p.QueriedLimit():
		end, err := extractCursor(rows[p.limit-1], p.field, extract)
		if err != nil {
			return Page[R]{}, err
		}

		next, err := extractCursor(rows[p.limit], p.field, extract)
		if err != nil {
			return Page[R]{}, err
		}

		return Page[R]{
			Items:   rows[:p.limit:p.limit],
			Cursors: Cursors{Start: p.cursor, End: end, Next: next},
		}, nil
	default:
		return Page[R]{}, fmt.Errorf("%w: got %d rows, queried limit is %d", ErrInconsistentPage, n, p.QueriedLimit())
	}
}

// ReduceRows is Reduce for Row.
func ReduceRows[F ~string](p *Pagination[F], rows []Row) (Page[Row], error) {
	return Reduce(p, rows, RowExtractor[F])
}

func extractCursor[R any, F ~string](row R, field F, extract Extractor[R, F]) (Cursor, error) {
	cursor, err := extract(row, field)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w '%s': %w", ErrCursorField, field, err)
	} else if cursor.IsEmpty() {
		return Cursor{}, fmt.Errorf("%w '%s': absent value", ErrCursorField, field)
	}

	return cursor, nil
}
