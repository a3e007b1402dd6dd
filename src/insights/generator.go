package insights

import (
	"fmt"
	"time"

	"cafe-analytics/src/analysis/core"
	"cafe-analytics/src/logger"
	"cafe-analytics/src/models"
)

// -----------------------------------------------------------------------------
// Insight generation. Every insight is derived from the aggregate views (never
// from raw rows) so the numbers always match what the dashboard shows.
// Generation is deterministic: same views in, same insight list out.
// -----------------------------------------------------------------------------

type Generator struct {
	Logger *logger.Logger

	// Business hours window for the off-hours insight. Zero values (or an
	// inverted range) disable it.
	OpenHour  int
	CloseHour int
}

// -----------------------------------------------------------------------------

func NewGenerator(log *logger.Logger) *Generator {
	return &Generator{Logger: log}
}

// -----------------------------------------------------------------------------

// Generate produces the headline insight list for a batch.
func (g *Generator) Generate(views *models.MViews, txns []models.MTransaction) []models.MInsight {
	var out []models.MInsight

	total := views.TotalRevenue()

	if insight, ok := averageDailyRevenue(views, total); ok {
		out = append(out, insight)
	}
	if insight, ok := businessDayAverage(views); ok {
		out = append(out, insight)
	}
	if insight, ok := topProduct(views, total); ok {
		out = append(out, insight)
	}
	if insight, ok := peakHour(views); ok {
		out = append(out, insight)
	}
	if insight, ok := topLocation(views, total); ok {
		out = append(out, insight)
	}
	if insight, ok := preferredPayment(views); ok {
		out = append(out, insight)
	}
	if insight, ok := busiestWeekday(views); ok {
		out = append(out, insight)
	}
	if insight, ok := priceQuantityCorrelation(txns); ok {
		out = append(out, insight)
	}
	if insight, ok := offHoursShare(views, g.OpenHour, g.CloseHour); ok {
		out = append(out, insight)
	}

	g.Logger.Info("Generated %d insight(s)", len(out))
	return out
}

// -----------------------------------------------------------------------------

func averageDailyRevenue(views *models.MViews, total float64) (models.MInsight, bool) {
	if len(views.Daily) == 0 {
		return models.MInsight{}, false
	}
	avg := core.RoundCents(total / float64(len(views.Daily)))
	return models.MInsight{
		Label: "Average daily revenue",
		Text:  fmt.Sprintf("Average revenue is $%.2f per day across %d day(s).", avg, len(views.Daily)),
	}, true
}

// businessDayAverage compares revenue on business days against the overall
// daily average, using the holiday calendar flags carried by the daily view.
func businessDayAverage(views *models.MViews) (models.MInsight, bool) {
	businessRevenue, businessDays := 0.0, 0
	for _, d := range views.Daily {
		if d.BusinessDay {
			businessRevenue += d.Revenue
			businessDays++
		}
	}
	if businessDays == 0 || businessDays == len(views.Daily) {
		return models.MInsight{}, false
	}
	avg := core.RoundCents(businessRevenue / float64(businessDays))
	return models.MInsight{
		Label: "Business days",
		Text:  fmt.Sprintf("Business days average $%.2f in revenue (%d of %d days).", avg, businessDays, len(views.Daily)),
	}, true
}

func topProduct(views *models.MViews, total float64) (models.MInsight, bool) {
	if len(views.Products) == 0 {
		return models.MInsight{}, false
	}
	top := views.Products[0]
	return models.MInsight{
		Label: "Top product",
		Text: fmt.Sprintf("%s leads with $%.2f in revenue (%.1f%% of total).",
			displayKey(top.Item), top.Revenue, core.SharePercent(top.Revenue, total)),
	}, true
}

// peakHour picks the heatmap hour with the highest revenue. Ties go to the
// earliest hour of the earliest weekday.
func peakHour(views *models.MViews) (models.MInsight, bool) {
	if len(views.Heatmap) == 0 {
		return models.MInsight{}, false
	}
	best := views.Heatmap[0]
	for _, cell := range views.Heatmap[1:] {
		if cell.Revenue > best.Revenue {
			best = cell
		}
	}
	return models.MInsight{
		Label: "Peak hour",
		Text: fmt.Sprintf("Busiest slot is %s %02d:00 with $%.2f across %d transaction(s).",
			time.Weekday(best.Weekday), best.Hour, best.Revenue, best.Count),
	}, true
}

func topLocation(views *models.MViews, total float64) (models.MInsight, bool) {
	if len(views.Locations) == 0 {
		return models.MInsight{}, false
	}
	top := views.Locations[0]
	return models.MInsight{
		Label: "Top location",
		Text: fmt.Sprintf("%s generates $%.2f (%.1f%% of revenue).",
			displayKey(top.Key), top.Revenue, core.SharePercent(top.Revenue, total)),
	}, true
}

// preferredPayment ranks by transaction count, not revenue: it answers what
// customers reach for at the till.
func preferredPayment(views *models.MViews) (models.MInsight, bool) {
	if len(views.Payments) == 0 {
		return models.MInsight{}, false
	}
	best := views.Payments[0]
	totalCount := 0
	for _, p := range views.Payments {
		totalCount += p.Count
		if p.Count > best.Count || (p.Count == best.Count && p.Key < best.Key) {
			best = p
		}
	}
	if totalCount == 0 {
		return models.MInsight{}, false
	}
	return models.MInsight{
		Label: "Preferred payment",
		Text: fmt.Sprintf("%s is used in %.1f%% of transactions.",
			displayKey(best.Key), core.SharePercent(float64(best.Count), float64(totalCount))),
	}, true
}

func busiestWeekday(views *models.MViews) (models.MInsight, bool) {
	if len(views.Heatmap) == 0 {
		return models.MInsight{}, false
	}
	var revenue [7]float64
	var count [7]int
	for _, cell := range views.Heatmap {
		revenue[cell.Weekday] += cell.Revenue
		count[cell.Weekday] += cell.Count
	}
	best := 0
	for wd := 1; wd < 7; wd++ {
		if revenue[wd] > revenue[best] {
			best = wd
		}
	}
	if count[best] == 0 {
		return models.MInsight{}, false
	}
	return models.MInsight{
		Label: "Busiest weekday",
		Text: fmt.Sprintf("%s brings in the most revenue ($%.2f over %d transaction(s)).",
			time.Weekday(best), core.RoundCents(revenue[best]), count[best]),
	}, true
}

// priceQuantityCorrelation reports whether pricier items sell in smaller
// quantities within this dataset.
func priceQuantityCorrelation(txns []models.MTransaction) (models.MInsight, bool) {
	if len(txns) < 2 {
		return models.MInsight{}, false
	}
	prices := make([]float64, len(txns))
	quantities := make([]float64, len(txns))
	for i, t := range txns {
		prices[i] = t.UnitPrice
		quantities[i] = float64(t.Quantity)
	}
	r := core.CalculateCorrelation(prices, quantities)

	trend := "no clear relationship"
	switch {
	case r >= 0.3:
		trend = "higher prices tend to come with larger quantities"
	case r <= -0.3:
		trend = "higher prices tend to come with smaller quantities"
	}
	return models.MInsight{
		Label: "Price vs quantity",
		Text:  fmt.Sprintf("Correlation between unit price and quantity is %.2f: %s.", r, trend),
	}, true
}

// offHoursShare reports sales falling outside the configured business hours,
// a signal the cafe's posted hours do not match actual traffic.
func offHoursShare(views *models.MViews, openHour, closeHour int) (models.MInsight, bool) {
	if openHour >= closeHour || len(views.Heatmap) == 0 {
		return models.MInsight{}, false
	}
	offCount, totalCount := 0, 0
	for _, cell := range views.Heatmap {
		totalCount += cell.Count
		if cell.Hour < openHour || cell.Hour >= closeHour {
			offCount += cell.Count
		}
	}
	if totalCount == 0 || offCount == 0 {
		return models.MInsight{}, false
	}
	return models.MInsight{
		Label: "Off-hours sales",
		Text: fmt.Sprintf("%.1f%% of transactions fall outside business hours (%02d:00-%02d:00).",
			core.SharePercent(float64(offCount), float64(totalCount)), openHour, closeHour),
	}, true
}

// -----------------------------------------------------------------------------

// displayKey renders the empty sentinel used for missing item/location values.
func displayKey(key string) string {
	if key == "" {
		return "Unknown"
	}
	return key
}
