package keyset

import (
	"database/sql/driver"
	"fmt"

	"gorm.io/gorm/clause"
)

// Condition is the filter part of a Predicate: Operator(Column, Value).
// A Condition with an absent Value is a tautology and matches every row.
type Condition[F ~string] struct {
	Column   F
	Operator Operator
	Value    Cursor
}

// IsTautology returns true if the condition matches all rows (first page).
func (c Condition[F]) IsTautology() bool {
	return c.Value.IsEmpty()
}

// ToSQL converts the condition to an SQL expression of the form
// "Column Operator ?" with the value for the placeholder, or "TRUE" for a
// tautology.
//
// Example:
//
//	Condition{Column: "id", Operator: ">=", Value: IntCursor(123)}
//
// Result:
//
//	("id >= ?", [123])
func (c Condition[F]) ToSQL() (string, []driver.Value) {
	if c.IsTautology() {
		return "TRUE", nil
	}

	return fmt.Sprintf("%s %s ?", c.Column, c.Operator), []driver.Value{c.Value.Value()}
}

// toGORMExpression converts the condition into a clause.Expression. Returns nil
// for a tautology so that no WHERE clause is added at all.
//
// IMPORTANT: The method uses the SQL placeholder "?".
func (c Condition[F]) toGORMExpression() clause.Expression {
	if c.IsTautology() {
		return nil
	}

	sqlClause, args := c.ToSQL()

	return clause.Expr{
		SQL:  sqlClause,
		Vars: []any{args[0]},
	}
}

func (c Condition[F]) validate() error {
	if c.IsTautology() {
		return nil
	}

	if !c.Operator.Valid() {
		return fmt.Errorf("invalid cursor operator '%s'", c.Operator)
	}

	return validateColumn(c.Column)
}
