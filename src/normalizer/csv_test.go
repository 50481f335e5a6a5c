// backend/src/normalizer/csv_test.go
package normalizer

import (
	"reflect"
	"strings"
	"testing"
)

func TestLoadTransactionsFromCSV(t *testing.T) {
	csvData := strings.Join([]string{
		"order_date,item,qty,price,discount,category,payment",
		"2024-05-01,Milk 1L,4,30,20,Dairy,UPI",
		"2024-05-02,Bread Loaf,2,25,0,Food,Cash",
	}, "\n")

	txs, err := LoadTransactionsFromCSV([]byte(csvData), Options{})
	if err != nil {
		t.Fatalf("LoadTransactionsFromCSV failed: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txs))
	}
	if txs[0].Revenue != 100.0 {
		t.Errorf("row 1 revenue = %v, want 100.0", txs[0].Revenue)
	}
	if txs[1].Revenue != 50.0 {
		t.Errorf("row 2 revenue = %v, want 50.0", txs[1].Revenue)
	}
}

func TestLoadTransactionsFromCSVSemicolonDelimiter(t *testing.T) {
	csvData := "date;product;qty;price\n2024-05-01;Tea;2;10\n"

	txs, err := LoadTransactionsFromCSV([]byte(csvData), Options{})
	if err != nil {
		t.Fatalf("LoadTransactionsFromCSV failed: %v", err)
	}
	if len(txs) != 1 || txs[0].Product != "Tea" {
		t.Fatalf("semicolon CSV not parsed, got %+v", txs)
	}
}

func TestLoadTransactionsFromCSVLatin1(t *testing.T) {
	// 0xE9 is 'é' in Latin-1 and invalid as a standalone UTF-8 byte.
	csvData := []byte("date,product,qty,price\n2024-05-01,Caf\xe9 Mix,1,50\n")

	txs, err := LoadTransactionsFromCSV(csvData, Options{})
	if err != nil {
		t.Fatalf("LoadTransactionsFromCSV failed: %v", err)
	}
	if txs[0].Product != "Café Mix" {
		t.Errorf("product = %q, want %q", txs[0].Product, "Café Mix")
	}
}

func TestLoadTransactionsFromCSVEmptyInput(t *testing.T) {
	if _, err := LoadTransactionsFromCSV(nil, Options{}); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestLoadTransactionsFromCSVMalformed(t *testing.T) {
	// Unterminated quote is a parse failure, not a degradable cell.
	csvData := []byte("date,product,qty,price\n2024-05-01,\"broken,1,10\n")
	if _, err := LoadTransactionsFromCSV(csvData, Options{}); err == nil {
		t.Fatal("expected error for malformed CSV")
	}
}

func TestExportCSVRoundTrip(t *testing.T) {
	source := strings.Join([]string{
		"order_date,item,qty,price,discount,category,payment",
		"2024-05-01,Milk 1L,4,30.5,20,Dairy,UPI",
		"2024-05-02,Bread Loaf,2,25,0,Food,Cash",
		"2024-05-03,Rice 1kg,1,89.99,5,Food,Card",
		"2024-01-01T10:00:00+05:30,Sugar 1kg,3,45,0,Food,UPI",
	}, "\n")

	first, err := LoadTransactionsFromCSV([]byte(source), Options{})
	if err != nil {
		t.Fatalf("initial load failed: %v", err)
	}

	exported := ExportCSV(first)
	second, err := LoadTransactionsFromCSV(exported, Options{})
	if err != nil {
		t.Fatalf("re-load of export failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("round trip changed the table:\nfirst  = %+v\nsecond = %+v", first, second)
	}
}

func TestExportCSVHeader(t *testing.T) {
	exported := string(ExportCSV(nil))
	wantHeader := "date,day,product,category,quantity,unit_price,discount,revenue,payment_method"
	if !strings.HasPrefix(exported, wantHeader) {
		t.Errorf("export header = %q, want prefix %q", exported, wantHeader)
	}
}
