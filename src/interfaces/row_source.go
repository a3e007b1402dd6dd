package interfaces

import "cafe-analytics/src/models"

// -----------------------------------------------------------------------------
// IRowSource interface for reading raw transaction rows from an input file.
// -----------------------------------------------------------------------------

type IRowSource interface {

	// Name returns the unique identifier of the source
	Name() string

	// -----------------------------------------------------------------------------

	// Load reads the whole source and returns its raw rows.
	// Fails with *helpers.SchemaMismatchError when required columns are
	// missing from the header; per-row problems are NOT errors here, they
	// are left for the cleaner.
	Load() ([]models.MRawRow, error)
}
