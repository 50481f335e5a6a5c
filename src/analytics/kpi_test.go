// backend/src/analytics/kpi_test.go
package analytics

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/username/saathi/backend/src/models"
)

func tx(day, product, category string, revenue float64) models.Transaction {
	return models.Transaction{Day: day, Product: product, Category: category, Revenue: revenue}
}

func TestComputeKPIsEmpty(t *testing.T) {
	got := ComputeKPIs(nil)
	if got.TotalRevenue != 0 || got.TotalOrders != 0 || got.AvgOrderValue != 0 {
		t.Errorf("empty input gave non-zero totals: %+v", got)
	}
	if got.TopProduct != nil || got.TopCategory != nil {
		t.Errorf("empty input must leave top product/category nil: %+v", got)
	}
}

func TestComputeKPIs(t *testing.T) {
	txs := []models.Transaction{
		tx("2024-05-01", "A", "Snacks", 10),
		tx("2024-05-01", "B", "Food", 20),
		tx("2024-05-02", "A", "Snacks", 5),
	}

	got := ComputeKPIs(txs)
	if got.TotalRevenue != 35 {
		t.Errorf("total revenue = %v, want 35", got.TotalRevenue)
	}
	if got.TotalOrders != 3 {
		t.Errorf("total orders = %d, want 3", got.TotalOrders)
	}
	if got.AvgOrderValue != 11.67 {
		t.Errorf("avg order value = %v, want 11.67", got.AvgOrderValue)
	}
	if got.TopProduct == nil || *got.TopProduct != "B" {
		t.Errorf("top product = %v, want B", got.TopProduct)
	}
	if got.TopCategory == nil || *got.TopCategory != "Food" {
		t.Errorf("top category = %v, want Food", got.TopCategory)
	}
}

func TestComputeKPIsOrderInvariance(t *testing.T) {
	txs := []models.Transaction{
		tx("2024-05-01", "A", "Snacks", 12.34),
		tx("2024-05-02", "B", "Food", 56.78),
		tx("2024-05-03", "C", "Dairy", 9.99),
		tx("2024-05-03", "A", "Snacks", 44.10),
	}

	want := ComputeKPIs(txs)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := append([]models.Transaction(nil), txs...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		if got := ComputeKPIs(shuffled); !reflect.DeepEqual(got, want) {
			t.Fatalf("KPIs changed under reordering:\ngot  %+v\nwant %+v", got, want)
		}
	}
}

func TestRevenueByProductTieBreak(t *testing.T) {
	txs := []models.Transaction{
		tx("2024-05-01", "Zebra", "", 10),
		tx("2024-05-01", "Apple", "", 10),
		tx("2024-05-01", "Mango", "", 15),
	}

	got := RevenueByProduct(txs)
	want := []models.ProductRevenue{
		{Product: "Mango", Revenue: 15},
		{Product: "Apple", Revenue: 10},
		{Product: "Zebra", Revenue: 10},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RevenueByProduct = %+v, want %+v", got, want)
	}
}

func TestTopCategoryExcludesMissing(t *testing.T) {
	// The missing-category bucket outweighs every real category but must
	// never be ranked.
	txs := []models.Transaction{
		tx("2024-05-01", "A", "", 1000),
		tx("2024-05-01", "B", "Food", 20),
		tx("2024-05-01", "C", "Snacks", 10),
	}

	got := ComputeKPIs(txs)
	if got.TopCategory == nil || *got.TopCategory != "Food" {
		t.Errorf("top category = %v, want Food", got.TopCategory)
	}
}

func TestRevenueByDay(t *testing.T) {
	txs := []models.Transaction{
		tx("2024-05-02", "A", "", 5),
		tx("2024-05-01", "B", "", 10),
		tx("2024-05-01", "C", "", 2.5),
	}

	got := RevenueByDay(txs)
	want := []models.DailyRevenue{
		{Day: "2024-05-01", Revenue: 12.5},
		{Day: "2024-05-02", Revenue: 5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RevenueByDay = %+v, want %+v", got, want)
	}
}
