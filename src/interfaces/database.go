package interfaces

import "cafe-analytics/src/models"

// -----------------------------------------------------------------------------
// IDatabase defines the contract for storage operations.
// -----------------------------------------------------------------------------

type IDatabase interface {

	// -----------------------------------------------------------------------------

	// Initialize sets up the database schema and tables.
	Initialize() error

	// -----------------------------------------------------------------------------

	// SaveTransactions inserts the cleaned transactions of a run.
	SaveTransactions(txns []models.MTransaction) error

	// -----------------------------------------------------------------------------

	// SaveViews replaces the aggregate view tables with the given views.
	SaveViews(views *models.MViews) error

	// -----------------------------------------------------------------------------

	// SaveInsights replaces the stored insight statements.
	SaveInsights(insights []models.MInsight) error

	// -----------------------------------------------------------------------------

	// Close the database connection
	Close() error
}
