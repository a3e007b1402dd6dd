package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"cafe-analytics/src/helpers"
	"cafe-analytics/src/logger"
	"cafe-analytics/src/models"
)

// -----------------------------------------------------------------------------
// CSV source
// -----------------------------------------------------------------------------

// Required header columns of a sales export. Matching is case-insensitive
// and whitespace-trimmed; column order is free.
var requiredColumns = []string{
	"transaction id",
	"item",
	"quantity",
	"price per unit",
	"total spent",
	"payment method",
	"location",
	"transaction date",
}

// -----------------------------------------------------------------------------

type CSVSource struct {
	SourceConfig models.MSourceConfig
	Logger       *logger.Logger
}

// -----------------------------------------------------------------------------

func NewCSVSource(sourceCfg models.MSourceConfig, log *logger.Logger) *CSVSource {
	return &CSVSource{
		SourceConfig: sourceCfg,
		Logger:       log,
	}
}

// -----------------------------------------------------------------------------

func (s *CSVSource) Name() string {
	return s.SourceConfig.Name
}

// -----------------------------------------------------------------------------

// Load reads the whole file into raw rows. The header is validated up front:
// a missing required column fails the load before any row is produced. Ragged
// or dirty rows are NOT rejected here; the cleaner decides their fate.
func (s *CSVSource) Load() ([]models.MRawRow, error) {
	f, err := os.Open(s.SourceConfig.Path)
	if err != nil {
		return nil, &helpers.IngestError{CafeAnalyticsError: helpers.CafeAnalyticsError{
			Message: fmt.Sprintf("cannot open source %q (%s)", s.SourceConfig.Name, s.SourceConfig.Path),
			Cause:   err,
		}}
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, &helpers.IngestError{CafeAnalyticsError: helpers.CafeAnalyticsError{
			Message: fmt.Sprintf("cannot read header of source %q", s.SourceConfig.Name),
			Cause:   err,
		}}
	}

	colIndex, err := s.mapHeader(header)
	if err != nil {
		return nil, err
	}

	var rows []models.MRawRow
	line := 1 // header was line 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			// Malformed CSV line: keep going, the row is lost but the
			// batch is not.
			s.Logger.Warning("Source %q line %d unreadable: %v", s.SourceConfig.Name, line, err)
			continue
		}

		rows = append(rows, models.MRawRow{
			TransactionID: cell(record, colIndex["transaction id"]),
			Item:          cell(record, colIndex["item"]),
			Quantity:      cell(record, colIndex["quantity"]),
			UnitPrice:     cell(record, colIndex["price per unit"]),
			TotalSpent:    cell(record, colIndex["total spent"]),
			PaymentMethod: cell(record, colIndex["payment method"]),
			Location:      cell(record, colIndex["location"]),
			Date:          cell(record, colIndex["transaction date"]),
			Source:        s.SourceConfig.Name,
			Line:          line,
		})
	}

	s.Logger.Info("Source %q: read %d rows", s.SourceConfig.Name, len(rows))
	return rows, nil
}

// -----------------------------------------------------------------------------

// mapHeader resolves each required column to its position, or fails with a
// SchemaMismatchError naming everything that is absent.
func (s *CSVSource) mapHeader(header []string) (map[string]int, error) {
	index := make(map[string]int, len(requiredColumns))
	for i, col := range header {
		index[normalizeColumn(col)] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &helpers.SchemaMismatchError{
			Source:         s.SourceConfig.Name,
			MissingColumns: missing,
		}
	}
	return index, nil
}

// -----------------------------------------------------------------------------

func normalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// cell returns record[i] trimmed, or "" when the row is too short.
func cell(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
