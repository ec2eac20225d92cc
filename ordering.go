package keyset

import (
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// SortDirection defines the sort direction for the requested dataset.
type SortDirection string

const (
	DirectionASC  SortDirection = "ASC"
	DirectionDESC SortDirection = "DESC"
)

func (d SortDirection) Valid() bool {
	return d == DirectionASC || d == DirectionDESC
}

// ForOperator returns the inclusive comparator used to resume a dataset sorted
// in this direction. Invalid directions map to an empty operator.
func (d SortDirection) ForOperator() Operator {
	switch d {
	case DirectionASC:
		return OperatorGTE
	case DirectionDESC:
		return OperatorLTE
	default:
		return ""
	}
}

// ParseSortDirection parses "asc" or "desc" in any letter case.
func ParseSortDirection(s string) (SortDirection, error) {
	d := SortDirection(strings.ToUpper(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("invalid ordering direction '%s'", s)
	}

	return d, nil
}

type (
	// OrderBy is a single-column ordering. F is the column identifier type.
	OrderBy[F ~string] struct {
		Column    F
		Direction SortDirection
	}

	ColumnAlias = string

	// ColumnMapping maps external column aliases to fully qualified column names.
	// Use it when bare column names could cause an "ambiguous column name" error.
	// Key is an external alias, value is an internal column name.
	ColumnMapping = map[ColumnAlias]string
)

var _availableColumnNameSymbols = append([]rune("_.'`\""), lo.AlphanumericCharset...)

func validateColumn[F ~string](column F) error {
	if len(column) == 0 {
		return fmt.Errorf("empty ordering column name")
	}

	// Guard against SQL injection by restricting allowed characters in column names.
	if !lo.Every(_availableColumnNameSymbols, []rune(string(column))) {
		return fmt.Errorf("ordering column name contains forbidden symbols '%s'", column)
	}

	return nil
}

func (o OrderBy[F]) validate() error {
	if !o.Direction.Valid() {
		return fmt.Errorf("invalid ordering direction '%s'", o.Direction)
	}

	return validateColumn(o.Column)
}

// ToSQL converts the ordering to "<order_column> <order_direction>".
//
// Usage:
//
//	query := fmt.Sprintf("SELECT * FROM table ORDER BY %s", orderBy.ToSQL())
func (o OrderBy[F]) ToSQL() string {
	return fmt.Sprintf("%s %s", o.Column, o.Direction)
}

// Apply applies the ordering to a gorm query.
func (o OrderBy[F]) Apply(db *gorm.DB) *gorm.DB {
	return db.Order(o.ToSQL())
}

// ParseSort builds an ordering from a string in the format "column asc|desc".
// A bare "column" sorts ascending. Column aliases are resolved via
// ColumnMapping; an unknown alias yields an error naming the closest one.
func ParseSort(stringOrdering string, columnMapping ColumnMapping) (OrderBy[string], error) {
	cutStringOrdering := strings.Fields(stringOrdering)
	if len(cutStringOrdering) == 0 || len(cutStringOrdering) > 2 {
		return OrderBy[string]{}, fmt.Errorf("invalid ordering string format '%s'", stringOrdering)
	}

	direction := DirectionASC
	if len(cutStringOrdering) == 2 {
		var err error
		direction, err = ParseSortDirection(cutStringOrdering[1])
		if err != nil {
			return OrderBy[string]{}, err
		}
	}

	columnName, err := resolveColumn(cutStringOrdering[0], columnMapping)
	if err != nil {
		return OrderBy[string]{}, err
	}

	return OrderBy[string]{
		Column:    columnName,
		Direction: direction,
	}, nil
}

func resolveColumn(columnAlias ColumnAlias, columnMapping ColumnMapping) (string, error) {
	columnName := columnMapping[columnAlias]
	if columnName == "" {
		return "", fmt.Errorf("invalid column alias '%s'. closest: '%s'",
			columnAlias, closestAlias(columnAlias, lo.Keys(columnMapping)))
	}

	return columnName, nil
}

func closestAlias(input ColumnAlias, dataSet []ColumnAlias) ColumnAlias {
	minDist := math.MaxInt
	closest := ""

	for _, dataSetAlias := range dataSet {
		dist := levenshtein([]rune(dataSetAlias), []rune(input))
		// Ties resolve to the lexicographically smaller alias.
		if dist < minDist || (dist == minDist && dataSetAlias < closest) {
			minDist = dist
			closest = dataSetAlias
		}
	}

	return closest
}
