package helpers

import (
	"fmt"
	"strings"

	"cafe-analytics/src/logger"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type CafeAnalyticsError struct {
	Message string
	Cause   error
}

func (e *CafeAnalyticsError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CafeAnalyticsError) Unwrap() error {
	return e.Cause
}

// Distinct error types for type assertions / errors.As
type ConfigurationError struct{ CafeAnalyticsError }
type StorageError struct{ CafeAnalyticsError }
type IngestError struct{ CafeAnalyticsError }

// -----------------------------------------------------------------------------

// SchemaMismatchError means the input file header is missing required
// columns. Fatal: no row of the file is processed.
type SchemaMismatchError struct {
	Source         string
	MissingColumns []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("source %q is missing required columns: %s",
		e.Source, strings.Join(e.MissingColumns, ", "))
}

// -----------------------------------------------------------------------------

// EmptyDatasetError means zero valid rows survived cleaning. Fatal: every
// downstream aggregate and insight would be undefined.
type EmptyDatasetError struct {
	RowsRead  int
	Discarded int
}

func (e *EmptyDatasetError) Error() string {
	return fmt.Sprintf("no valid transactions after cleaning (%d rows read, %d discarded)",
		e.RowsRead, e.Discarded)
}

// -----------------------------------------------------------------------------
// Error Handler
// -----------------------------------------------------------------------------

type ErrorHandler struct {
	Logger *logger.Logger
}

func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{
		Logger: logger.NewLogger(nil, "ErrorHandler"),
	}
}

// -----------------------------------------------------------------------------

func (e *ErrorHandler) Handle(err error, context string) {
	if err != nil {
		e.Logger.Error("Error in %s: %v", context, err)
	}
}
