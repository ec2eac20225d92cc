package keyset

import (
	"database/sql/driver"
	"fmt"

	"gorm.io/gorm"
)

// Predicate is what the executor runs: ordering, limit and filter. It is
// derived deterministically from Params by Plan.
type Predicate[F ~string] struct {
	OrderBy OrderBy[F]
	// Limit is the queried limit, one above the page size.
	Limit int
	Where Condition[F]
}

// Validate checks that the predicate can be rendered safely: known direction
// and operator, and a column name free of forbidden symbols.
func (p Predicate[F]) Validate() error {
	if err := p.OrderBy.validate(); err != nil {
		return err
	}

	if p.Limit <= 1 {
		return fmt.Errorf("invalid queried limit %d", p.Limit)
	}

	if err := p.Where.validate(); err != nil {
		return err
	}

	if !p.Where.IsTautology() {
		if p.Where.Column != p.OrderBy.Column {
			return fmt.Errorf("unexpected cursor column '%s'", p.Where.Column)
		} else if p.Where.Operator.ForOrdering() != p.OrderBy.Direction {
			return fmt.Errorf("unexpected cursor operator '%s'", p.Where.Operator)
		}
	}

	return nil
}

// Apply applies ordering, filter and limit to a gorm query.
func (p Predicate[F]) Apply(db *gorm.DB) *gorm.DB {
	db = p.OrderBy.Apply(db)

	if exp := p.Where.toGORMExpression(); exp != nil {
		db = db.Clauses(exp)
	}

	return db.Limit(p.Limit)
}

// ToSQL renders the predicate as the tail of a query following WHERE.
//
// Usage:
//
//	tail, args := predicate.ToSQL()
//	query := fmt.Sprintf("SELECT * FROM table WHERE %s", tail)
//
// Result:
//
//	("id >= ? ORDER BY id ASC LIMIT 11", [42])
func (p Predicate[F]) ToSQL() (string, []driver.Value) {
	where, args := p.Where.ToSQL()

	return fmt.Sprintf("%s ORDER BY %s LIMIT %d", where, p.OrderBy.ToSQL(), p.Limit), args
}
