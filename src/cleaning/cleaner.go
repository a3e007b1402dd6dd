package cleaning

import (
	"math"
	"time"

	"cafe-analytics/src/logger"
	"cafe-analytics/src/models"

	"github.com/google/uuid"
)

// -----------------------------------------------------------------------------
// Cleaner: repairs raw rows into typed transactions or discards them.
// Repair is always attempted before discard; a discarded row is logged and
// counted but never aborts the batch.
// -----------------------------------------------------------------------------

// Rules are the cleaning bounds taken from the analysis config. Zero
// StartDate/EndDate mean no date bound.
type Rules struct {
	TotalTolerance float64
	MinAmount      float64
	MaxAmount      float64
	StartDate      time.Time
	EndDate        time.Time
}

type Cleaner struct {
	Rules  Rules
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewCleaner(rules Rules, log *logger.Logger) *Cleaner {
	return &Cleaner{Rules: rules, Logger: log}
}

// -----------------------------------------------------------------------------

// Clean processes every raw row and returns the surviving transactions plus
// per-outcome counts. Valid + Repaired + Discarded always equals the input
// row count.
func (c *Cleaner) Clean(rows []models.MRawRow) ([]models.MTransaction, models.MCleaningStats) {
	stats := models.MCleaningStats{
		TotalRows:      len(rows),
		DiscardReasons: make(map[string]int),
	}

	txns := make([]models.MTransaction, 0, len(rows))
	for _, row := range rows {
		outcome := c.CleanRow(row)
		switch outcome.Kind {
		case models.OutcomeValid:
			stats.Valid++
			txns = append(txns, *outcome.Transaction)
		case models.OutcomeRepaired:
			stats.Repaired++
			txns = append(txns, *outcome.Transaction)
		case models.OutcomeDiscarded:
			stats.Discarded++
			stats.DiscardReasons[outcome.DiscardReason]++
			c.Logger.Debug("Discarded %s line %d: %s", row.Source, row.Line, outcome.DiscardReason)
		}
	}

	c.Logger.Info("Cleaning: %d rows -> %d valid, %d repaired, %d discarded",
		stats.TotalRows, stats.Valid, stats.Repaired, stats.Discarded)
	return txns, stats
}

// -----------------------------------------------------------------------------

// CleanRow turns one raw row into a tagged outcome.
func (c *Cleaner) CleanRow(row models.MRawRow) models.MRowOutcome {
	assessment := Assess(row, c.Rules.TotalTolerance)

	if assessment.Class == models.RowUnrepairable {
		return models.MRowOutcome{
			Kind:          models.OutcomeDiscarded,
			DiscardReason: discardReason(assessment),
		}
	}

	// Required fields are guaranteed parseable past this point.
	qty, _ := parseQuantity(row.Quantity)
	price, _ := parseMoney(row.UnitPrice)
	ts, _ := parseDate(row.Date)

	repaired := false

	// Total: trust the recorded value only when it agrees with
	// quantity*unit_price within tolerance; recompute otherwise.
	computed := roundCents(float64(qty) * price)
	total, totalOK := parseMoney(row.TotalSpent)
	if !totalOK || math.Abs(total-computed) > c.Rules.TotalTolerance {
		total = computed
		if hasIssue(assessment, "total_spent") {
			repaired = true
		}
	}

	payment := models.PaymentUnknown
	if p, ok := parsePaymentMethod(row.PaymentMethod); ok {
		payment = p
	} else {
		repaired = true
	}

	location := ""
	if !isMissing(row.Location) {
		location = row.Location
	} else {
		repaired = true
	}

	item := ""
	if !isMissing(row.Item) {
		item = row.Item
	} else {
		repaired = true
	}

	id := row.TransactionID
	if isMissing(id) {
		id = "TXN_" + uuid.NewString()
		repaired = true
	}

	// Business bounds on the final amount.
	if total < c.Rules.MinAmount || total > c.Rules.MaxAmount {
		return models.MRowOutcome{Kind: models.OutcomeDiscarded, DiscardReason: "amount_out_of_range"}
	}

	// Analysis date window, applied before aggregation ever sees the row.
	if !c.Rules.StartDate.IsZero() && ts.Before(c.Rules.StartDate) {
		return models.MRowOutcome{Kind: models.OutcomeDiscarded, DiscardReason: "outside_date_range"}
	}
	if !c.Rules.EndDate.IsZero() && ts.After(c.Rules.EndDate.Add(24*time.Hour-time.Nanosecond)) {
		return models.MRowOutcome{Kind: models.OutcomeDiscarded, DiscardReason: "outside_date_range"}
	}

	txn := &models.MTransaction{
		ID:            id,
		Item:          item,
		Quantity:      qty,
		UnitPrice:     price,
		Total:         total,
		PaymentMethod: payment,
		Location:      location,
		Timestamp:     ts,
	}

	kind := models.OutcomeValid
	if repaired {
		kind = models.OutcomeRepaired
	}
	return models.MRowOutcome{Kind: kind, Transaction: txn}
}

// -----------------------------------------------------------------------------

// discardReason builds a stable reason key from the first fatal issue.
func discardReason(a models.MRowAssessment) string {
	for _, issue := range a.Issues {
		switch issue.Field {
		case "quantity", "unit_price", "transaction_date":
			return issue.Field + "_invalid"
		}
	}
	return "unrepairable"
}

func hasIssue(a models.MRowAssessment, field string) bool {
	for _, issue := range a.Issues {
		if issue.Field == field {
			return true
		}
	}
	return false
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
