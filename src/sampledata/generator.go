// backend/src/sampledata/generator.go
package sampledata

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Scenario names accepted by the sample-load endpoint, mapped to their CSV
// files under the sample data directory.
var ScenarioFiles = map[string]string{
	"normal_week":   "shop_sample.csv",
	"weekend_boost": "demo_weekend_boost.csv",
	"slow_week":     "demo_slow_week.csv",
	"high_value":    "demo_high_value.csv",
}

var csvHeader = []string{"date", "product", "category", "quantity", "unit_price", "discount", "payment_method"}

type productEntry struct {
	name     string
	category string
}

var products = []productEntry{
	{"Coca Cola 500ml", "Beverages"},
	{"Lays Classic 50g", "Snacks"},
	{"Maggi 2-Minute Noodles", "Food"},
	{"Parle-G Biscuits 100g", "Snacks"},
	{"Tata Tea 250g", "Beverages"},
	{"Dettol Soap 100g", "Personal Care"},
	{"Colgate Toothpaste 100g", "Personal Care"},
	{"Rice 1kg", "Food"},
	{"Cooking Oil 1L", "Food"},
	{"Bread Loaf", "Food"},
	{"Milk 1L", "Dairy"},
	{"Eggs 12pcs", "Dairy"},
	{"Onions 1kg", "Vegetables"},
	{"Tomatoes 1kg", "Vegetables"},
	{"Potatoes 1kg", "Vegetables"},
}

var paymentMethods = []string{"Cash", "Card", "UPI", "Wallet"}

var (
	quantityChoices = []int{1, 2, 3, 4, 5}
	quantityWeights = []int{50, 25, 15, 7, 3}
	discountChoices = []int{0, 5, 10, 15}
	discountWeights = []int{70, 20, 8, 2}
)

var priceBands = map[string][2]float64{
	"Beverages":     {15, 50},
	"Snacks":        {10, 30},
	"Food":          {20, 150},
	"Personal Care": {25, 100},
	"Dairy":         {30, 80},
	"Vegetables":    {15, 60},
}

// Generate produces sample transaction rows spanning numDays ending today,
// with roughly perDay transactions per day and a 1.5x weekend boost.
func Generate(rng *rand.Rand, numDays, perDay int) [][]string {
	var rows [][]string
	start := time.Now().AddDate(0, 0, -(numDays - 1))

	for day := 0; day < numDays; day++ {
		current := start.AddDate(0, 0, day)
		count := perDay
		if wd := current.Weekday(); wd == time.Saturday || wd == time.Sunday {
			count = perDay * 3 / 2
		}

		for i := 0; i < count; i++ {
			p := products[rng.Intn(len(products))]
			quantity := weightedChoice(rng, quantityChoices, quantityWeights)

			band, ok := priceBands[p.category]
			if !ok {
				band = [2]float64{10, 100}
			}
			unitPrice := band[0] + rng.Float64()*(band[1]-band[0])
			discount := weightedChoice(rng, discountChoices, discountWeights)

			rows = append(rows, []string{
				current.Format("2006-01-02"),
				p.name,
				p.category,
				strconv.Itoa(quantity),
				strconv.FormatFloat(float64(int(unitPrice*100))/100, 'f', 2, 64),
				strconv.Itoa(discount),
				paymentMethods[rng.Intn(len(paymentMethods))],
			})
		}
	}
	return rows
}

// EnsureSampleData generates the demo scenario CSVs under dir when the
// primary sample is absent, mirroring the launcher's pre-generation step.
func EnsureSampleData(dir string) error {
	primary := filepath.Join(dir, ScenarioFiles["normal_week"])
	if _, err := os.Stat(primary); err == nil {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("sampledata: create dir: %w", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	shapes := map[string][2]int{
		"normal_week":   {7, 20},
		"weekend_boost": {3, 35},
		"slow_week":     {5, 8},
		"high_value":    {4, 15},
	}
	for scenario, shape := range shapes {
		rows := Generate(rng, shape[0], shape[1])
		if err := writeCSV(filepath.Join(dir, ScenarioFiles[scenario]), rows); err != nil {
			return err
		}
	}
	return nil
}

// ScenarioPath resolves a scenario name to its CSV path under dir.
func ScenarioPath(dir, scenario string) (string, error) {
	file, ok := ScenarioFiles[scenario]
	if !ok {
		return "", fmt.Errorf("sampledata: unknown scenario %q", scenario)
	}
	return filepath.Join(dir, file), nil
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sampledata: create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("sampledata: write header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("sampledata: write rows: %w", err)
	}
	return nil
}

func weightedChoice(rng *rand.Rand, choices, weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	pick := rng.Intn(total)
	for i, w := range weights {
		if pick < w {
			return choices[i]
		}
		pick -= w
	}
	return choices[len(choices)-1]
}
