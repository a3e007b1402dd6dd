package models

// -----------------------------------------------------------------------------
// Aggregate views. Each view is built in one pass over the cleaned
// transactions and never mutated afterwards. Revenue in every view sums to
// the same grand total (no double counting, no loss).
// -----------------------------------------------------------------------------

// MDailyBucket is one calendar day of the time series.
type MDailyBucket struct {
	Date          string  `json:"date"` // YYYY-MM-DD
	Revenue       float64 `json:"revenue"`
	Count         int     `json:"count"`
	RevenueChange float64 `json:"revenue_change"` // vs previous day, fraction
	BusinessDay   bool    `json:"business_day"`
}

// MWeeklyBucket is the weekly roll-up of the daily series used by the trend
// view. WeekStart is the Monday of the ISO week.
type MWeeklyBucket struct {
	WeekStart string  `json:"week_start"`
	Revenue   float64 `json:"revenue"`
	Count     int     `json:"count"`
}

// MHeatmapCell is one hour-of-day x day-of-week cell.
// Weekday follows time.Weekday (0 = Sunday).
type MHeatmapCell struct {
	Weekday int     `json:"weekday"`
	Hour    int     `json:"hour"`
	Revenue float64 `json:"revenue"`
	Count   int     `json:"count"`
}

// MProductBucket aggregates one distinct item.
type MProductBucket struct {
	Item     string  `json:"item"`
	Revenue  float64 `json:"revenue"`
	Units    int     `json:"units"`
	Count    int     `json:"count"`
	AvgPrice float64 `json:"avg_price"` // revenue / units
}

// MKeyBucket is a generic key -> revenue/count cell (locations, payments).
type MKeyBucket struct {
	Key     string  `json:"key"`
	Revenue float64 `json:"revenue"`
	Count   int     `json:"count"`
}

// MViews bundles the four aggregation dimensions.
// Daily is sorted by date ascending; Weekly by week start ascending; ranked
// views (Products, Locations, Payments) by revenue descending, then key
// ascending, so rankings are deterministic across runs.
type MViews struct {
	Daily     []MDailyBucket   `json:"daily"`
	Weekly    []MWeeklyBucket  `json:"weekly"`
	Heatmap   []MHeatmapCell   `json:"heatmap"`
	Products  []MProductBucket `json:"products"`
	Locations []MKeyBucket     `json:"locations"`
	Payments  []MKeyBucket     `json:"payments"`
}

// TotalRevenue returns the grand total as carried by the daily view.
func (v *MViews) TotalRevenue() float64 {
	sum := 0.0
	for _, d := range v.Daily {
		sum += d.Revenue
	}
	return sum
}
