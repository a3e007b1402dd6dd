package cleaning

import (
	"math"
	"strings"
	"time"

	"cafe-analytics/src/models"

	"github.com/spf13/cast"
)

// -----------------------------------------------------------------------------
// Schema validation. Assess is a pure function: it classifies a raw row and
// names the offending fields without touching the row or any shared state.
// -----------------------------------------------------------------------------

// Dirty POS exports mark unusable cells with these tokens.
var missingMarkers = map[string]struct{}{
	"":        {},
	"ERROR":   {},
	"UNKNOWN": {},
	"NA":      {},
	"N/A":     {},
	"NONE":    {},
	"NULL":    {},
	"NAN":     {},
}

// Accepted transaction date layouts, most common first.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
}

// -----------------------------------------------------------------------------

// Assess classifies a raw row as valid, repairable or unrepairable.
// tolerance is the accepted absolute gap between the recorded total and
// quantity*unit_price before the total counts as wrong (it is still only
// repairable: the product of quantity and price wins).
func Assess(row models.MRawRow, tolerance float64) models.MRowAssessment {
	var issues []models.MFieldIssue
	unrepairable := false

	addIssue := func(field, reason string, fatal bool) {
		issues = append(issues, models.MFieldIssue{Field: field, Reason: reason})
		if fatal {
			unrepairable = true
		}
	}

	// Quantity: required, integral, positive.
	qty, qtyOK := parseQuantity(row.Quantity)
	switch {
	case isMissing(row.Quantity):
		addIssue("quantity", "missing", true)
	case !qtyOK:
		addIssue("quantity", "not numeric", true)
	case qty <= 0:
		addIssue("quantity", "not positive", true)
	}

	// Unit price: required, non-negative.
	price, priceOK := parseMoney(row.UnitPrice)
	switch {
	case isMissing(row.UnitPrice):
		addIssue("unit_price", "missing", true)
	case !priceOK:
		addIssue("unit_price", "not numeric", true)
	case price < 0:
		addIssue("unit_price", "negative", true)
	}

	// Date: required, parseable.
	if isMissing(row.Date) {
		addIssue("transaction_date", "missing", true)
	} else if _, ok := parseDate(row.Date); !ok {
		addIssue("transaction_date", "unparseable", true)
	}

	// Total: derivable from quantity*unit_price, so never fatal on its own.
	total, totalOK := parseMoney(row.TotalSpent)
	switch {
	case isMissing(row.TotalSpent) || !totalOK:
		addIssue("total_spent", "missing", false)
	case qtyOK && priceOK && math.Abs(total-float64(qty)*price) > tolerance:
		addIssue("total_spent", "inconsistent with quantity*unit_price", false)
	}

	// Sentinel-fillable fields.
	if isMissing(row.PaymentMethod) {
		addIssue("payment_method", "missing", false)
	} else if _, ok := parsePaymentMethod(row.PaymentMethod); !ok {
		addIssue("payment_method", "unrecognized", false)
	}
	if isMissing(row.Location) {
		addIssue("location", "missing", false)
	}
	if isMissing(row.Item) {
		addIssue("item", "missing", false)
	}
	if isMissing(row.TransactionID) {
		addIssue("transaction_id", "missing", false)
	}

	class := models.RowValid
	switch {
	case unrepairable:
		class = models.RowUnrepairable
	case len(issues) > 0:
		class = models.RowRepairable
	}

	return models.MRowAssessment{Class: class, Issues: issues}
}

// -----------------------------------------------------------------------------
// Cell parsers
// -----------------------------------------------------------------------------

func isMissing(cell string) bool {
	_, ok := missingMarkers[strings.ToUpper(strings.TrimSpace(cell))]
	return ok
}

// parseQuantity accepts integral values, also in float notation ("2.0").
func parseQuantity(cell string) (int, bool) {
	if isMissing(cell) {
		return 0, false
	}
	f, err := cast.ToFloat64E(strings.TrimSpace(cell))
	if err != nil {
		return 0, false
	}
	n := math.Round(f)
	if math.Abs(f-n) > 1e-9 {
		return 0, false
	}
	return int(n), true
}

// parseMoney accepts plain decimals with an optional leading currency sign.
func parseMoney(cell string) (float64, bool) {
	if isMissing(cell) {
		return 0, false
	}
	s := strings.TrimSpace(cell)
	s = strings.TrimPrefix(s, "$")
	f, err := cast.ToFloat64E(s)
	if err != nil {
		return 0, false
	}
	return f, true
}

func parseDate(cell string) (time.Time, bool) {
	s := strings.TrimSpace(cell)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parsePaymentMethod normalizes the free-text payment column onto the enum.
func parsePaymentMethod(cell string) (models.MPaymentMethod, bool) {
	s := strings.ToLower(strings.TrimSpace(cell))
	s = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
	switch s {
	case "cash":
		return models.PaymentCash, true
	case "creditcard", "credit", "card", "debitcard":
		return models.PaymentCreditCard, true
	case "digitalwallet", "wallet", "mobilepayment", "mobilewallet":
		return models.PaymentDigitalWallet, true
	default:
		return models.PaymentUnknown, false
	}
}
