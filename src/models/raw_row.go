package models

// MRawRow is one transaction row exactly as read from a source file, before
// any typing or repair. All cells are raw strings and may be empty or garbage
// ("ERROR", "UNKNOWN" markers appear in exported POS data).
type MRawRow struct {
	TransactionID string
	Item          string
	Quantity      string
	UnitPrice     string
	TotalSpent    string
	PaymentMethod string
	Location      string
	Date          string

	Source string // source name from config
	Line   int    // 1-based line number in the source file
}

// -----------------------------------------------------------------------------
// Row assessment and cleaning outcome
// -----------------------------------------------------------------------------

// MRowClass is the validator's classification of a raw row.
type MRowClass int

const (
	RowValid MRowClass = iota
	RowRepairable
	RowUnrepairable
)

func (c MRowClass) String() string {
	switch c {
	case RowValid:
		return "valid"
	case RowRepairable:
		return "repairable"
	default:
		return "unrepairable"
	}
}

// MFieldIssue names a field that violates type/range expectations and why.
type MFieldIssue struct {
	Field  string
	Reason string
}

// MRowAssessment is the validator output for a single row.
type MRowAssessment struct {
	Class  MRowClass
	Issues []MFieldIssue
}

// MOutcomeKind tags what the cleaner did with a row.
type MOutcomeKind int

const (
	OutcomeValid MOutcomeKind = iota
	OutcomeRepaired
	OutcomeDiscarded
)

// MRowOutcome is the cleaner's per-row result. Discarded outcomes carry a
// reason and no transaction.
type MRowOutcome struct {
	Kind          MOutcomeKind
	DiscardReason string
	Transaction   *MTransaction
}

// MCleaningStats summarizes a cleaning pass.
// Invariant: Valid + Repaired + Discarded == TotalRows.
type MCleaningStats struct {
	TotalRows      int            `json:"total_rows"`
	Valid          int            `json:"valid"`
	Repaired       int            `json:"repaired"`
	Discarded      int            `json:"discarded"`
	DiscardReasons map[string]int `json:"discard_reasons"`
}
