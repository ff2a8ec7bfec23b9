package query

import "strings"

// Operator identifies a query operator that may be used at most once per query
type Operator int

const (
	OperatorSelect Operator = iota
	OperatorFrom
	OperatorGroupBy
	OperatorOrderBy
	OperatorExecute

	operatorCount
)

// String returns the string representation of Operator
func (o Operator) String() string {
	switch o {
	case OperatorSelect:
		return "SELECT"
	case OperatorFrom:
		return "FROM"
	case OperatorGroupBy:
		return "GROUPBY"
	case OperatorOrderBy:
		return "ORDERBY"
	case OperatorExecute:
		return "EXECUTE"
	default:
		return "UNKNOWN"
	}
}

// ParseOperator parses a string into an Operator. The second result is false
// for names that are not exactly-once operators.
func ParseOperator(s string) (Operator, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SELECT":
		return OperatorSelect, true
	case "FROM":
		return OperatorFrom, true
	case "GROUPBY", "GROUP BY":
		return OperatorGroupBy, true
	case "ORDERBY", "ORDER BY":
		return OperatorOrderBy, true
	case "EXECUTE":
		return OperatorExecute, true
	default:
		return 0, false
	}
}

// opState tracks whether an exactly-once operator has been used
type opState uint8

const (
	opUnset opState = iota
	opSet
)
