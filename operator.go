package keyset

// Operator defines the comparison applied between the sort column and the
// cursor value. Both operators are inclusive: the row the cursor was taken
// from is the first row of the page it starts.
type Operator string

const (
	OperatorGTE Operator = ">="
	OperatorLTE Operator = "<="
)

func (o Operator) Valid() bool {
	return o == OperatorGTE || o == OperatorLTE
}

// ForOrdering returns the sort direction the operator walks along. Invalid
// operators map to an empty direction.
func (o Operator) ForOrdering() SortDirection {
	switch o {
	case OperatorGTE:
		return DirectionASC
	case OperatorLTE:
		return DirectionDESC
	default:
		return ""
	}
}
