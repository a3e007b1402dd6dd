package analysis

import (
	"testing"
	"time"

	"cafe-analytics/src/logger"
	"cafe-analytics/src/models"
	"cafe-analytics/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

func testAggregator() *Aggregator {
	return NewAggregator(utils.GetBusinessCalendar("us"), logger.NewLogger(nil, "test"))
}

func txn(id, item string, qty int, total float64, when string) models.MTransaction {
	ts, _ := time.Parse("2006-01-02 15:04:05", when)
	unit := total / float64(qty)
	return models.MTransaction{
		ID:            id,
		Item:          item,
		Quantity:      qty,
		UnitPrice:     unit,
		Total:         total,
		PaymentMethod: models.PaymentCash,
		Location:      "In-store",
		Timestamp:     ts,
	}
}

// -----------------------------------------------------------------------------

func TestBuildViewsRevenueConservation(t *testing.T) {
	txns := []models.MTransaction{
		txn("a", "Coffee", 2, 6.00, "2023-06-01 08:00:00"),
		txn("b", "Tea", 1, 1.50, "2023-06-01 09:30:00"),
		txn("c", "Cake", 1, 3.00, "2023-06-02 14:00:00"),
		txn("d", "Coffee", 3, 9.00, "2023-06-03 10:15:00"),
	}

	views := testAggregator().BuildViews(txns)

	const want = 19.50
	sum := func(buckets []models.MKeyBucket) float64 {
		s := 0.0
		for _, b := range buckets {
			s += b.Revenue
		}
		return s
	}

	assert.InDelta(t, want, views.TotalRevenue(), 1e-9)
	assert.InDelta(t, want, sum(views.Locations), 1e-9)
	assert.InDelta(t, want, sum(views.Payments), 1e-9)

	products := 0.0
	for _, p := range views.Products {
		products += p.Revenue
	}
	assert.InDelta(t, want, products, 1e-9)

	heatmap := 0.0
	for _, c := range views.Heatmap {
		heatmap += c.Revenue
	}
	assert.InDelta(t, want, heatmap, 1e-9)

	weekly := 0.0
	for _, w := range views.Weekly {
		weekly += w.Revenue
	}
	assert.InDelta(t, want, weekly, 1e-9)
}

func TestBuildViewsDailySortedWithChange(t *testing.T) {
	txns := []models.MTransaction{
		txn("a", "Coffee", 1, 10.00, "2023-06-02 08:00:00"),
		txn("b", "Coffee", 1, 5.00, "2023-06-01 08:00:00"),
	}

	views := testAggregator().BuildViews(txns)

	require.Len(t, views.Daily, 2)
	assert.Equal(t, "2023-06-01", views.Daily[0].Date)
	assert.Equal(t, "2023-06-02", views.Daily[1].Date)
	assert.InDelta(t, 0.0, views.Daily[0].RevenueChange, 1e-9)
	assert.InDelta(t, 1.0, views.Daily[1].RevenueChange, 1e-9) // 5 -> 10
}

func TestBuildViewsRankingTieBreak(t *testing.T) {
	// Equal revenue must rank alphabetically, independent of input order.
	txns := []models.MTransaction{
		txn("a", "Tea", 1, 4.00, "2023-06-01 08:00:00"),
		txn("b", "Cake", 1, 4.00, "2023-06-01 09:00:00"),
		txn("c", "Smoothie", 1, 9.00, "2023-06-01 10:00:00"),
	}

	views := testAggregator().BuildViews(txns)

	require.Len(t, views.Products, 3)
	assert.Equal(t, "Smoothie", views.Products[0].Item)
	assert.Equal(t, "Cake", views.Products[1].Item)
	assert.Equal(t, "Tea", views.Products[2].Item)
}

func TestBuildViewsHeatmapCell(t *testing.T) {
	// 2023-06-01 is a Thursday.
	txns := []models.MTransaction{
		txn("a", "Coffee", 1, 3.00, "2023-06-01 08:10:00"),
		txn("b", "Coffee", 1, 3.00, "2023-06-01 08:55:00"),
	}

	views := testAggregator().BuildViews(txns)

	require.Len(t, views.Heatmap, 1)
	cell := views.Heatmap[0]
	assert.Equal(t, int(time.Thursday), cell.Weekday)
	assert.Equal(t, 8, cell.Hour)
	assert.Equal(t, 2, cell.Count)
	assert.InDelta(t, 6.00, cell.Revenue, 1e-9)
}

func TestBuildViewsProductAvgPrice(t *testing.T) {
	txns := []models.MTransaction{
		txn("a", "Coffee", 2, 6.00, "2023-06-01 08:00:00"),
		txn("b", "Coffee", 2, 6.00, "2023-06-02 08:00:00"),
	}

	views := testAggregator().BuildViews(txns)

	require.Len(t, views.Products, 1)
	p := views.Products[0]
	assert.Equal(t, 4, p.Units)
	assert.Equal(t, 2, p.Count)
	assert.InDelta(t, 3.00, p.AvgPrice, 1e-9)
}

// -----------------------------------------------------------------------------

func TestRollupWeeklyMondayStart(t *testing.T) {
	daily := []models.MDailyBucket{
		{Date: "2023-06-01", Revenue: 10, Count: 2}, // Thursday, week of Mon 2023-05-29
		{Date: "2023-06-04", Revenue: 5, Count: 1},  // Sunday, same week
		{Date: "2023-06-05", Revenue: 7, Count: 1},  // Monday, next week
	}

	weekly := RollupWeekly(daily)

	require.Len(t, weekly, 2)
	assert.Equal(t, "2023-05-29", weekly[0].WeekStart)
	assert.InDelta(t, 15.0, weekly[0].Revenue, 1e-9)
	assert.Equal(t, 3, weekly[0].Count)
	assert.Equal(t, "2023-06-05", weekly[1].WeekStart)
	assert.InDelta(t, 7.0, weekly[1].Revenue, 1e-9)
}
