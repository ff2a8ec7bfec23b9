package field

import "strings"

// Operator represents a comparison operator
type Operator int

const (
	// Comparison operators
	OpEqual Operator = iota
	OpNotEqual
	OpGreaterThan
	OpGreaterThanOrEqual
	OpLessThan
	OpLessThanOrEqual

	// String matching operators
	OpLike
	OpNotLike
	OpContains
	OpIContains
	OpStartsWith
	OpEndsWith
	OpRegex

	// Array/Set operators
	OpIn
	OpNotIn

	opCount
)

var operatorNames = [...]string{
	OpEqual:              "=",
	OpNotEqual:           "!=",
	OpGreaterThan:        ">",
	OpGreaterThanOrEqual: ">=",
	OpLessThan:           "<",
	OpLessThanOrEqual:    "<=",
	OpLike:               "LIKE",
	OpNotLike:            "NOT LIKE",
	OpContains:           "CONTAINS",
	OpIContains:          "ICONTAINS",
	OpStartsWith:         "STARTS_WITH",
	OpEndsWith:           "ENDS_WITH",
	OpRegex:              "REGEX",
	OpIn:                 "IN",
	OpNotIn:              "NOT IN",
}

// String returns the string representation of Operator
func (o Operator) String() string {
	if o < 0 || o >= opCount {
		return "UNKNOWN"
	}
	return operatorNames[o]
}

// Valid reports whether o is a known operator
func (o Operator) Valid() bool {
	return o >= 0 && o < opCount
}

// ParseOperator parses a string into an Operator. Names are case-insensitive
// and surrounding whitespace is ignored.
func ParseOperator(s string) (Operator, bool) {
	s = strings.ToUpper(strings.Join(strings.Fields(s), " "))
	for op, name := range operatorNames {
		if name == s {
			return Operator(op), true
		}
	}
	return 0, false
}
