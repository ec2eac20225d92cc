package keyset

// Params are the caller-supplied pagination parameters of one request.
//
// Preconditions, not checked by Plan: Limit > 0, Field is a sortable column of
// the queried entity and SortDirection is valid. Request.Decode produces
// Params that satisfy them.
type Params[F ~string] struct {
	Field         F
	SortDirection SortDirection
	// Cursor is where the page starts. The absent cursor requests the first page.
	Cursor Cursor
	// Limit is the page size ("specified limit").
	Limit int
}

// Pagination holds the state shared by the planning and reducing stages of a
// single request. It is immutable and safe for concurrent use.
type Pagination[F ~string] struct {
	field     F
	direction SortDirection
	cursor    Cursor
	limit     int
}

// Plan fixes the request state used to build the Predicate and to Reduce the
// rows returned by executing it.
func Plan[F ~string](params Params[F]) *Pagination[F] {
	return &Pagination[F]{
		field:     params.Field,
		direction: params.SortDirection,
		cursor:    params.Cursor,
		limit:     params.Limit,
	}
}

// Predicate returns the ordering, limit and filter for the executor.
//
//   - OrderBy is always (Field, SortDirection).
//   - Limit is QueriedLimit: one extra row detects whether a further page exists.
//   - Where matches all rows without a cursor; otherwise it is
//     "Field >= cursor" for ASC and "Field <= cursor" for DESC.
func (p *Pagination[F]) Predicate() Predicate[F] {
	where := Condition[F]{Column: p.field}
	if !p.cursor.IsEmpty() {
		where.Operator = p.direction.ForOperator()
		where.Value = p.cursor
	}

	return Predicate[F]{
		OrderBy: OrderBy[F]{Column: p.field, Direction: p.direction},
		Limit:   p.QueriedLimit(),
		Where:   where,
	}
}

func (p *Pagination[F]) Field() F {
	return p.field
}

func (p *Pagination[F]) SortDirection() SortDirection {
	return p.direction
}

// Cursor returns the cursor the caller supplied, as-is.
func (p *Pagination[F]) Cursor() Cursor {
	return p.cursor
}

// SpecifiedLimit returns the page size requested by the caller.
func (p *Pagination[F]) SpecifiedLimit() int {
	return p.limit
}

// QueriedLimit returns SpecifiedLimit() + 1.
func (p *Pagination[F]) QueriedLimit() int {
	return p.limit + 1
}
