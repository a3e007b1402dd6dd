package cleaning

import (
	"testing"

	"cafe-analytics/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

func cleanRow() models.MRawRow {
	return models.MRawRow{
		TransactionID: "TXN_0000001",
		Item:          "Coffee",
		Quantity:      "2",
		UnitPrice:     "3.00",
		TotalSpent:    "6.00",
		PaymentMethod: "Cash",
		Location:      "In-store",
		Date:          "2023-06-01 08:15:00",
		Source:        "main",
		Line:          2,
	}
}

// -----------------------------------------------------------------------------

func TestAssessCleanRow(t *testing.T) {
	a := Assess(cleanRow(), 0.01)
	assert.Equal(t, models.RowValid, a.Class)
	assert.Empty(t, a.Issues)
}

func TestAssessMissingTotalIsRepairable(t *testing.T) {
	row := cleanRow()
	row.TotalSpent = "ERROR"

	a := Assess(row, 0.01)
	require.Equal(t, models.RowRepairable, a.Class)
	require.Len(t, a.Issues, 1)
	assert.Equal(t, "total_spent", a.Issues[0].Field)
}

func TestAssessInconsistentTotalIsRepairable(t *testing.T) {
	row := cleanRow()
	row.TotalSpent = "9.99" // 2 * 3.00 = 6.00

	a := Assess(row, 0.01)
	assert.Equal(t, models.RowRepairable, a.Class)
}

func TestAssessTotalWithinToleranceIsValid(t *testing.T) {
	row := cleanRow()
	row.TotalSpent = "6.005"

	a := Assess(row, 0.01)
	assert.Equal(t, models.RowValid, a.Class)
}

func TestAssessNegativeQuantityIsUnrepairable(t *testing.T) {
	row := cleanRow()
	row.Quantity = "-1"

	a := Assess(row, 0.01)
	assert.Equal(t, models.RowUnrepairable, a.Class)
}

func TestAssessFractionalQuantityIsUnrepairable(t *testing.T) {
	row := cleanRow()
	row.Quantity = "1.5"

	a := Assess(row, 0.01)
	assert.Equal(t, models.RowUnrepairable, a.Class)
}

func TestAssessBrokenDateIsUnrepairable(t *testing.T) {
	row := cleanRow()
	row.Date = "not a date"

	a := Assess(row, 0.01)
	assert.Equal(t, models.RowUnrepairable, a.Class)
}

func TestAssessMissingSentinelFieldsAreRepairable(t *testing.T) {
	row := cleanRow()
	row.TransactionID = ""
	row.Item = "UNKNOWN"
	row.Location = "N/A"
	row.PaymentMethod = "ERROR"

	a := Assess(row, 0.01)
	assert.Equal(t, models.RowRepairable, a.Class)
	assert.Len(t, a.Issues, 4)
}

// -----------------------------------------------------------------------------

func TestParseQuantityAcceptsFloatNotation(t *testing.T) {
	q, ok := parseQuantity("2.0")
	require.True(t, ok)
	assert.Equal(t, 2, q)
}

func TestParseMoneyStripsCurrencySign(t *testing.T) {
	v, ok := parseMoney("$4.50")
	require.True(t, ok)
	assert.InDelta(t, 4.50, v, 1e-9)
}

func TestParseDateLayouts(t *testing.T) {
	for _, s := range []string{
		"2023-06-01 08:15:00",
		"2023-06-01",
		"06/01/2023",
		"2023/06/01",
	} {
		_, ok := parseDate(s)
		assert.True(t, ok, "expected %q to parse", s)
	}
}

func TestParsePaymentMethodNormalization(t *testing.T) {
	cases := map[string]models.MPaymentMethod{
		"Cash":           models.PaymentCash,
		"CREDIT CARD":    models.PaymentCreditCard,
		"credit_card":    models.PaymentCreditCard,
		"Digital Wallet": models.PaymentDigitalWallet,
		"mobile payment": models.PaymentDigitalWallet,
	}
	for in, want := range cases {
		got, ok := parsePaymentMethod(in)
		require.True(t, ok, "expected %q to be recognized", in)
		assert.Equal(t, want, got)
	}

	_, ok := parsePaymentMethod("barter")
	assert.False(t, ok)
}
