package storage

import (
	"path/filepath"
	"testing"
	"time"

	"cafe-analytics/src/logger"
	"cafe-analytics/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

func testDB(t *testing.T) *SQLiteDB {
	t.Helper()
	cfg := &models.MConfig{}
	cfg.Storage.DBType = "sqlite"
	cfg.Storage.DBPath = filepath.Join(t.TempDir(), "test.db")

	db, err := NewSQLiteDB(cfg, logger.NewLogger(nil, "test"))
	require.NoError(t, err)
	require.NoError(t, db.Initialize())
	t.Cleanup(func() { db.Close() })
	return db
}

func count(t *testing.T, db *SQLiteDB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.DB.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

// -----------------------------------------------------------------------------

func TestSaveTransactionsRoundTrip(t *testing.T) {
	db := testDB(t)

	ts, _ := time.Parse("2006-01-02 15:04:05", "2023-06-01 08:00:00")
	txns := []models.MTransaction{
		{ID: "TXN_001", Item: "Coffee", Quantity: 2, UnitPrice: 3.00, Total: 6.00,
			PaymentMethod: models.PaymentCash, Location: "In-store", Timestamp: ts},
		{ID: "TXN_002", Item: "Tea", Quantity: 1, UnitPrice: 1.50, Total: 1.50,
			PaymentMethod: models.PaymentCreditCard, Location: "Takeaway", Timestamp: ts},
	}
	require.NoError(t, db.SaveTransactions(txns))
	assert.Equal(t, 2, count(t, db, "transactions"))

	var item string
	var total float64
	require.NoError(t, db.DB.QueryRow(
		"SELECT item, total FROM transactions WHERE id = ?", "TXN_001").Scan(&item, &total))
	assert.Equal(t, "Coffee", item)
	assert.InDelta(t, 6.00, total, 1e-9)

	// Saving again replaces, never appends
	require.NoError(t, db.SaveTransactions(txns[:1]))
	assert.Equal(t, 1, count(t, db, "transactions"))
}

func TestSaveViewsRoundTrip(t *testing.T) {
	db := testDB(t)

	views := &models.MViews{
		Daily: []models.MDailyBucket{
			{Date: "2023-06-01", Revenue: 9.00, Count: 2, BusinessDay: true},
		},
		Weekly: []models.MWeeklyBucket{
			{WeekStart: "2023-05-29", Revenue: 9.00, Count: 2},
		},
		Heatmap: []models.MHeatmapCell{
			{Weekday: 4, Hour: 8, Revenue: 9.00, Count: 2},
		},
		Products: []models.MProductBucket{
			{Item: "Coffee", Revenue: 9.00, Units: 3, Count: 2, AvgPrice: 3.00},
		},
		Locations: []models.MKeyBucket{
			{Key: "In-store", Revenue: 9.00, Count: 2},
		},
		Payments: []models.MKeyBucket{
			{Key: "cash", Revenue: 9.00, Count: 2},
		},
	}
	require.NoError(t, db.SaveViews(views))

	assert.Equal(t, 1, count(t, db, "sales_by_day"))
	assert.Equal(t, 1, count(t, db, "sales_by_week"))
	assert.Equal(t, 1, count(t, db, "sales_heatmap"))
	assert.Equal(t, 1, count(t, db, "sales_by_product"))
	assert.Equal(t, 1, count(t, db, "sales_by_location"))
	assert.Equal(t, 1, count(t, db, "sales_by_payment"))

	var revenue float64
	require.NoError(t, db.DB.QueryRow(
		"SELECT revenue FROM sales_by_product WHERE item = ?", "Coffee").Scan(&revenue))
	assert.InDelta(t, 9.00, revenue, 1e-9)

	// Replacing with an empty batch clears the tables
	require.NoError(t, db.SaveViews(&models.MViews{}))
	assert.Equal(t, 0, count(t, db, "sales_by_day"))
}

func TestSaveInsightsKeepsOrder(t *testing.T) {
	db := testDB(t)

	insights := []models.MInsight{
		{Label: "Top product", Text: "Coffee leads."},
		{Label: "Peak hour", Text: "Thursday 08:00."},
	}
	require.NoError(t, db.SaveInsights(insights))
	assert.Equal(t, 2, count(t, db, "insights"))

	var label string
	require.NoError(t, db.DB.QueryRow(
		"SELECT label FROM insights WHERE position = 0").Scan(&label))
	assert.Equal(t, "Top product", label)
}
