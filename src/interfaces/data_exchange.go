package interfaces

import "cafe-analytics/src/models"

// -----------------------------------------------------------------------------
// IDataExchanger defining the interface for sharing data with external
// systems (Server/Push).
// -----------------------------------------------------------------------------

type IDataExchanger interface {

	// -----------------------------------------------------------------------------
	// Broadcast pushes a snapshot to connected dashboard clients.
	Broadcast(snapshot *models.MSnapshot)

	// -----------------------------------------------------------------------------
	// UpdateSnapshot replaces the internal state without broadcasting.
	UpdateSnapshot(snapshot *models.MSnapshot)

	// -----------------------------------------------------------------------------
	// Start the server
	Start() error

	// -----------------------------------------------------------------------------
	// Stop the server gracefully
	Stop() error
}
