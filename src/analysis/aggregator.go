package analysis

import (
	"sort"
	"time"

	"cafe-analytics/src/analysis/core"
	"cafe-analytics/src/logger"
	"cafe-analytics/src/models"
	"cafe-analytics/src/utils"
)

// -----------------------------------------------------------------------------
// Aggregator: builds every dashboard view from the cleaned transactions in a
// single pass. Views are value snapshots; a new batch replaces them wholesale.
// -----------------------------------------------------------------------------

type Aggregator struct {
	Calendar *utils.BusinessCalendar
	Logger   *logger.Logger
}

// -----------------------------------------------------------------------------

func NewAggregator(cal *utils.BusinessCalendar, log *logger.Logger) *Aggregator {
	return &Aggregator{Calendar: cal, Logger: log}
}

// -----------------------------------------------------------------------------

// BuildViews aggregates transactions into the daily, weekly, heatmap, product,
// location and payment views. Ranked views are ordered by revenue descending
// with the key as alphabetic tie-break, so two runs over the same data always
// rank identically.
func (a *Aggregator) BuildViews(txns []models.MTransaction) *models.MViews {
	type dayAcc struct {
		revenue float64
		count   int
	}
	type productAcc struct {
		revenue float64
		units   int
		count   int
	}

	days := make(map[string]*dayAcc)
	heatmap := make(map[[2]int]*models.MHeatmapCell)
	products := make(map[string]*productAcc)
	locations := make(map[string]*models.MKeyBucket)
	payments := make(map[string]*models.MKeyBucket)

	for i := range txns {
		t := &txns[i]

		day := t.Day().Format("2006-01-02")
		d, ok := days[day]
		if !ok {
			d = &dayAcc{}
			days[day] = d
		}
		d.revenue += t.Total
		d.count++

		// Date-only timestamps land in hour 0 of the heatmap.
		hk := [2]int{int(t.Timestamp.Weekday()), t.Timestamp.Hour()}
		h, ok := heatmap[hk]
		if !ok {
			h = &models.MHeatmapCell{Weekday: hk[0], Hour: hk[1]}
			heatmap[hk] = h
		}
		h.Revenue += t.Total
		h.Count++

		p, ok := products[t.Item]
		if !ok {
			p = &productAcc{}
			products[t.Item] = p
		}
		p.revenue += t.Total
		p.units += t.Quantity
		p.count++

		l, ok := locations[t.Location]
		if !ok {
			l = &models.MKeyBucket{Key: t.Location}
			locations[t.Location] = l
		}
		l.Revenue += t.Total
		l.Count++

		pm := string(t.PaymentMethod)
		pb, ok := payments[pm]
		if !ok {
			pb = &models.MKeyBucket{Key: pm}
			payments[pm] = pb
		}
		pb.Revenue += t.Total
		pb.Count++
	}

	views := &models.MViews{}

	// Daily series, date ascending, with day-over-day change and business-day
	// flag from the holiday calendar.
	dates := make([]string, 0, len(days))
	for day := range days {
		dates = append(dates, day)
	}
	sort.Strings(dates)

	prev := 0.0
	for i, day := range dates {
		acc := days[day]
		bucket := models.MDailyBucket{
			Date:    day,
			Revenue: core.RoundCents(acc.revenue),
			Count:   acc.count,
		}
		if i > 0 {
			bucket.RevenueChange = core.CalculateChangePercent(bucket.Revenue, prev)
		}
		if d, err := time.Parse("2006-01-02", day); err == nil {
			bucket.BusinessDay = a.Calendar.IsBusinessDay(d)
		}
		prev = bucket.Revenue
		views.Daily = append(views.Daily, bucket)
	}

	views.Weekly = RollupWeekly(views.Daily)

	for _, cell := range heatmap {
		cell.Revenue = core.RoundCents(cell.Revenue)
		views.Heatmap = append(views.Heatmap, *cell)
	}
	sort.Slice(views.Heatmap, func(i, j int) bool {
		if views.Heatmap[i].Weekday != views.Heatmap[j].Weekday {
			return views.Heatmap[i].Weekday < views.Heatmap[j].Weekday
		}
		return views.Heatmap[i].Hour < views.Heatmap[j].Hour
	})

	for item, acc := range products {
		bucket := models.MProductBucket{
			Item:    item,
			Revenue: core.RoundCents(acc.revenue),
			Units:   acc.units,
			Count:   acc.count,
		}
		if acc.units > 0 {
			bucket.AvgPrice = core.RoundCents(bucket.Revenue / float64(acc.units))
		}
		views.Products = append(views.Products, bucket)
	}
	sort.Slice(views.Products, func(i, j int) bool {
		if views.Products[i].Revenue != views.Products[j].Revenue {
			return views.Products[i].Revenue > views.Products[j].Revenue
		}
		return views.Products[i].Item < views.Products[j].Item
	})

	views.Locations = sortKeyBuckets(locations)
	views.Payments = sortKeyBuckets(payments)

	a.Logger.Info("Aggregated %d transactions into %d days, %d products, %d locations",
		len(txns), len(views.Daily), len(views.Products), len(views.Locations))
	return views
}

// -----------------------------------------------------------------------------

func sortKeyBuckets(m map[string]*models.MKeyBucket) []models.MKeyBucket {
	out := make([]models.MKeyBucket, 0, len(m))
	for _, b := range m {
		b.Revenue = core.RoundCents(b.Revenue)
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Key < out[j].Key
	})
	return out
}
