package query

// Stage is one step of query execution
type Stage int

const (
	StageWhere Stage = iota
	StageGroupBy
	StageOrderBy
	StageHaving
	StageSelect
	StageLimit
)

// Pipeline is the order stages run in, regardless of the order the query was
// configured in. Unconfigured stages pass their input through.
//
// This is not standard SQL order: ORDER BY runs before HAVING and SELECT.
var Pipeline = []Stage{
	StageWhere,
	StageGroupBy,
	StageOrderBy,
	StageHaving,
	StageSelect,
	StageLimit,
}

// String returns the string representation of Stage
func (s Stage) String() string {
	switch s {
	case StageWhere:
		return "where"
	case StageGroupBy:
		return "group_by"
	case StageOrderBy:
		return "order_by"
	case StageHaving:
		return "having"
	case StageSelect:
		return "select"
	case StageLimit:
		return "limit"
	default:
		return "unknown"
	}
}

// StageStat records what a stage did during one execution
type StageStat struct {
	Stage Stage

	// Applied is false when the stage was not configured and passed through
	Applied bool

	// RowsIn and RowsOut count top-level elements
	RowsIn  int
	RowsOut int
}
