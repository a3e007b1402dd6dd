package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cafe-analytics/src/helpers"
	"cafe-analytics/src/interfaces"
	"cafe-analytics/src/logger"
	"cafe-analytics/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func source(t *testing.T, name, content string) *CSVSource {
	t.Helper()
	return NewCSVSource(models.MSourceConfig{
		Name: name,
		Path: writeCSV(t, content),
	}, logger.NewLogger(nil, "test"))
}

// -----------------------------------------------------------------------------

const goodCSV = `Transaction ID,Item,Quantity,Price Per Unit,Total Spent,Payment Method,Location,Transaction Date
TXN_001,Coffee,2,3.00,6.00,Cash,In-store,2023-06-01 08:00:00
TXN_002,Tea,1,1.50,1.50,Credit Card,Takeaway,2023-06-01 09:00:00
`

func TestLoadReadsAllRows(t *testing.T) {
	rows, err := source(t, "main", goodCSV).Load()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "TXN_001", rows[0].TransactionID)
	assert.Equal(t, "Coffee", rows[0].Item)
	assert.Equal(t, "main", rows[0].Source)
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, 3, rows[1].Line)
}

func TestLoadColumnOrderIsFree(t *testing.T) {
	shuffled := `Location,Item,Transaction Date,Quantity,Price Per Unit,Total Spent,Payment Method,Transaction ID
In-store,Coffee,2023-06-01 08:00:00,2,3.00,6.00,Cash,TXN_001
`
	rows, err := source(t, "main", shuffled).Load()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "TXN_001", rows[0].TransactionID)
	assert.Equal(t, "2", rows[0].Quantity)
}

func TestLoadSchemaMismatch(t *testing.T) {
	missing := `Transaction ID,Item,Quantity,Price Per Unit,Total Spent,Payment Method,Location
TXN_001,Coffee,2,3.00,6.00,Cash,In-store
`
	_, err := source(t, "branch", missing).Load()
	require.Error(t, err)

	var mismatch *helpers.SchemaMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "branch", mismatch.Source)
	assert.Equal(t, []string{"transaction date"}, mismatch.MissingColumns)
}

func TestLoadToleratesRaggedRows(t *testing.T) {
	ragged := goodCSV + "TXN_003,Cookie,1\n"
	rows, err := source(t, "main", ragged).Load()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "", rows[2].Date)
}

func TestLoadMissingFile(t *testing.T) {
	s := NewCSVSource(models.MSourceConfig{Name: "gone", Path: "/nonexistent/sales.csv"},
		logger.NewLogger(nil, "test"))
	_, err := s.Load()

	var ingestErr *helpers.IngestError
	require.True(t, errors.As(err, &ingestErr))
}

// -----------------------------------------------------------------------------

func TestLoadAllConcatenatesSources(t *testing.T) {
	a := source(t, "downtown", goodCSV)
	b := source(t, "airport", goodCSV)

	loader := NewMultiSourceLoader([]interfaces.IRowSource{a, b}, logger.NewLogger(nil, "test"))
	rows, err := loader.LoadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 4)
	assert.Equal(t, 2, loader.SourceCount())
}
