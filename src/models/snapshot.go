package models

// -----------------------------------------------------------------------------
// Analysis snapshot exposed to the dashboard server and report renderer.
// One snapshot per pipeline run; immutable once built.
// -----------------------------------------------------------------------------

// MSummary carries the headline dataset numbers shown on the dashboard.
type MSummary struct {
	TotalTransactions int     `json:"total_transactions"`
	TotalRevenue      float64 `json:"total_revenue"`
	UniqueItems       int     `json:"unique_items"`
	UniqueLocations   int     `json:"unique_locations"`
	StartDate         string  `json:"start_date"` // YYYY-MM-DD
	EndDate           string  `json:"end_date"`
}

// MSnapshot is the full result of one pipeline run.
type MSnapshot struct {
	Type        string             `json:"type"` // "INITIAL" or "UPDATE"
	GeneratedAt int64              `json:"generated_at"`
	Summary     MSummary           `json:"summary"`
	Cleaning    MCleaningStats     `json:"cleaning"`
	Views       MViews             `json:"views"`
	Insights    []MInsight         `json:"insights"`
	Metrics     MProcessingMetrics `json:"processing_metrics"`

	// Cleaned batch behind the views. Persisted, never serialized to clients.
	Transactions []MTransaction `json:"-"`
}
