package models

// MProcessingMetrics represents the performance metrics for one pipeline run.
type MProcessingMetrics struct {
	IngestTimeSeconds    float64 `json:"ingest_time_seconds"`
	CleaningTimeSeconds  float64 `json:"cleaning_time_seconds"`
	AggregateTimeSeconds float64 `json:"aggregate_time_seconds"`
	SourcesRead          int     `json:"sources_read"`
	RowsRead             int     `json:"rows_read"`
}
