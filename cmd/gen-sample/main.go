package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"
)

// -----------------------------------------------------------------------------
// gen-sample writes a deliberately dirty sales CSV for local runs: a share of
// rows get missing cells, ERROR markers, inconsistent totals or broken dates,
// the same defects real POS exports show.
// -----------------------------------------------------------------------------

var items = []struct {
	name  string
	price float64
}{
	{"Coffee", 2.00},
	{"Tea", 1.50},
	{"Sandwich", 4.00},
	{"Salad", 5.00},
	{"Cake", 3.00},
	{"Cookie", 1.00},
	{"Smoothie", 4.00},
	{"Juice", 3.00},
}

var locations = []string{"In-store", "Takeaway"}
var payments = []string{"Cash", "Credit Card", "Digital Wallet"}

// -----------------------------------------------------------------------------

func main() {
	out := flag.String("out", "sample_sales.csv", "output CSV path")
	rows := flag.Int("rows", 1000, "number of rows to generate")
	days := flag.Int("days", 90, "date range in days, ending today")
	dirty := flag.Float64("dirty", 0.15, "fraction of rows given a defect")
	seed := flag.Int64("seed", 42, "random seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	f, err := os.Create(*out)
	if err != nil {
		fmt.Printf("Error creating %s: %v\n", *out, err)
		os.Exit(1)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	w.Write([]string{"Transaction ID", "Item", "Quantity", "Price Per Unit", "Total Spent", "Payment Method", "Location", "Transaction Date"})

	end := time.Now()
	for i := 0; i < *rows; i++ {
		item := items[rng.Intn(len(items))]
		qty := 1 + rng.Intn(5)
		total := float64(qty) * item.price
		ts := end.AddDate(0, 0, -rng.Intn(*days)).
			Add(-time.Duration(rng.Intn(16*60)) * time.Minute)

		record := []string{
			fmt.Sprintf("TXN_%07d", i+1),
			item.name,
			fmt.Sprintf("%d", qty),
			fmt.Sprintf("%.2f", item.price),
			fmt.Sprintf("%.2f", total),
			payments[rng.Intn(len(payments))],
			locations[rng.Intn(len(locations))],
			ts.Format("2006-01-02 15:04:05"),
		}

		if rng.Float64() < *dirty {
			corrupt(record, rng)
		}

		w.Write(record)
	}

	fmt.Printf("Wrote %d rows to %s\n", *rows, *out)
}

// -----------------------------------------------------------------------------

// corrupt applies one random defect to a record in place.
func corrupt(record []string, rng *rand.Rand) {
	markers := []string{"", "ERROR", "UNKNOWN"}
	marker := markers[rng.Intn(len(markers))]

	switch rng.Intn(8) {
	case 0:
		record[0] = "" // missing id
	case 1:
		record[1] = marker // missing item
	case 2:
		record[2] = marker // missing quantity (unrepairable)
	case 3:
		record[4] = marker // missing total (recomputable)
	case 4:
		record[4] = fmt.Sprintf("%.2f", rng.Float64()*20) // inconsistent total
	case 5:
		record[5] = marker // missing payment method
	case 6:
		record[6] = marker // missing location
	case 7:
		record[7] = "not a date" // broken date (unrepairable)
	}
}
