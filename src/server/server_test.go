package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cafe-analytics/src/logger"
	"cafe-analytics/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

func testServer(t *testing.T) *DashboardServer {
	t.Helper()
	cfg := &models.MConfig{
		Name:     "test",
		Host:     "127.0.0.1",
		Port:     8080,
		LogLevel: "INFO",
	}
	cfg.Report.Title = "Test Dashboard"
	return NewDashboardServer(cfg, logger.NewLogger(nil, "test"))
}

func get(t *testing.T, s *DashboardServer, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	s.engine.ServeHTTP(w, req)
	return w
}

func sampleSnapshot() *models.MSnapshot {
	return &models.MSnapshot{
		Type:        "INITIAL",
		GeneratedAt: 1685606400,
		Summary: models.MSummary{
			TotalTransactions: 2,
			TotalRevenue:      7.50,
			UniqueItems:       2,
			UniqueLocations:   1,
			StartDate:         "2023-06-01",
			EndDate:           "2023-06-01",
		},
		Views: models.MViews{
			Daily: []models.MDailyBucket{
				{Date: "2023-06-01", Revenue: 7.50, Count: 2, BusinessDay: true},
			},
			Products: []models.MProductBucket{
				{Item: "Coffee", Revenue: 6.00, Units: 2, Count: 1, AvgPrice: 3.00},
				{Item: "Tea", Revenue: 1.50, Units: 1, Count: 1, AvgPrice: 1.50},
			},
		},
		Insights: []models.MInsight{
			{Label: "Top product", Text: "Coffee leads."},
		},
	}
}

// -----------------------------------------------------------------------------

func TestGetHealth(t *testing.T) {
	s := testServer(t)
	s.UpdateSnapshot(sampleSnapshot())

	w := get(t, s, "/api/health")
	require.Equal(t, 200, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 1685606400, body["latest_update"])
}

func TestGetSummary(t *testing.T) {
	s := testServer(t)
	s.UpdateSnapshot(sampleSnapshot())

	w := get(t, s, "/api/summary")
	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), `"total_revenue":7.5`)
}

func TestGetViewDimensions(t *testing.T) {
	s := testServer(t)
	s.UpdateSnapshot(sampleSnapshot())

	w := get(t, s, "/api/views/products")
	require.Equal(t, 200, w.Code)

	var products []models.MProductBucket
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 2)
	assert.Equal(t, "Coffee", products[0].Item)

	for _, dim := range []string{"daily", "weekly", "heatmap", "locations", "payments"} {
		assert.Equal(t, 200, get(t, s, "/api/views/"+dim).Code, dim)
	}
}

func TestGetViewUnknownDimension(t *testing.T) {
	s := testServer(t)
	assert.Equal(t, 404, get(t, s, "/api/views/bogus").Code)
}

func TestGetInsights(t *testing.T) {
	s := testServer(t)
	s.UpdateSnapshot(sampleSnapshot())

	w := get(t, s, "/api/insights")
	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "Top product")
}

func TestGetDashboardPage(t *testing.T) {
	s := testServer(t)
	s.UpdateSnapshot(sampleSnapshot())

	w := get(t, s, "/")
	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Test Dashboard")
	assert.Contains(t, w.Body.String(), "Coffee")
}
