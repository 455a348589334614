package parser

import (
	"io"
	"reflect"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func testRegistry() *Registry {
	return NewRegistry(log.New(io.Discard))
}

// withFrozenNow pins the clock used for year inference for the duration of
// a test.
func withFrozenNow(t *testing.T, frozen time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return frozen }
	t.Cleanup(func() { now = prev })
}

var detectionSamples = map[string]string{
	"Itaú":        "Itaú Unibanco S.A.\nFatura do cartão de crédito\nVencimento: 10/04",
	"Bradesco":    "Banco Bradesco S.A.\nFatura do cartão\nVencimento: 10/04",
	"Santander":   "Banco Santander (Brasil) S.A.\nFatura\nData de vencimento: 10/04/2025",
	"C6 Bank":     "C6 Bank\nFatura do cartão\nVencimento: 10/04",
	"BTG Pactual": "BTG Pactual\nFatura do cartão\nVencimento: 10/04",
}

func TestDetectionIsMutuallyExclusive(t *testing.T) {
	r := testRegistry()

	for _, p := range r.parsers {
		sample, ok := detectionSamples[p.Name()]
		if !ok {
			t.Fatalf("no detection sample for parser %q", p.Name())
		}
		if !p.Detect(sample) {
			t.Errorf("%s: expected detector to claim its own sample", p.Name())
		}
		for otherName, otherSample := range detectionSamples {
			if otherName == p.Name() {
				continue
			}
			if p.Detect(otherSample) {
				t.Errorf("%s: detector also claims %s sample", p.Name(), otherName)
			}
		}
	}
}

func TestParseItauStatement(t *testing.T) {
	withFrozenNow(t, time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC))

	text := `Itaucard Mastercard Platinum
Vencimento: 10/04
Total desta fatura R$ 1.411,46
Pagamento mínimo R$ 123,45

05/03 IFD*RESTAURANTE LTDA 03/06 150,00
07/03 UBER TRIP 26,90
SALDO ANTERIOR 500,00
10/03 POSTO SHELL 1.234,56
Pagamento efetuado -100,00
linha sem formato de transação`

	result := testRegistry().Parse(text)

	if result.BankName != "Itaú" {
		t.Errorf("expected bank Itaú, got %q", result.BankName)
	}
	if result.RawText != text {
		t.Error("raw text was not echoed back unmodified")
	}

	expected := []struct {
		date        string
		description string
		amount      float64
	}{
		{"2025-03-05", "IFD*RESTAURANTE LTDA", 150.00},
		{"2025-03-07", "UBER TRIP", 26.90},
		{"2025-03-10", "POSTO SHELL", 1234.56},
	}
	if len(result.Transactions) != len(expected) {
		t.Fatalf("expected %d transactions, got %d: %+v", len(expected), len(result.Transactions), result.Transactions)
	}
	for i, exp := range expected {
		got := result.Transactions[i]
		if got.Date != exp.date || got.Description != exp.description || got.Amount != exp.amount {
			t.Errorf("transaction %d mismatch:\nexpected: %s %q %.2f\ngot:      %s %q %.2f",
				i, exp.date, exp.description, exp.amount, got.Date, got.Description, got.Amount)
		}
	}

	if result.DueDate != "2025-04-10" {
		t.Errorf("expected due date 2025-04-10, got %q", result.DueDate)
	}
	if result.TotalAmount == nil || *result.TotalAmount != 1411.46 {
		t.Errorf("expected total 1411.46, got %v", result.TotalAmount)
	}
	if result.MinimumPayment == nil || *result.MinimumPayment != 123.45 {
		t.Errorf("expected minimum 123.45, got %v", result.MinimumPayment)
	}
}

func TestParseSantanderFullDates(t *testing.T) {
	text := `Banco Santander (Brasil) S.A.
Total a pagar R$ 330,00
Data de vencimento: 05/05/2025

12/04/2025 MERCADO PAGO JOSE 130,00
15/04/2025 DROGARIA SP 200,00`

	result := testRegistry().Parse(text)

	if result.BankName != "Santander" {
		t.Fatalf("expected Santander, got %q", result.BankName)
	}
	if len(result.Transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(result.Transactions))
	}
	if result.Transactions[0].Date != "2025-04-12" {
		t.Errorf("expected 2025-04-12, got %s", result.Transactions[0].Date)
	}
	if result.DueDate != "2025-05-05" {
		t.Errorf("expected due date 2025-05-05, got %q", result.DueDate)
	}
}

func TestParseC6MonthNameDates(t *testing.T) {
	withFrozenNow(t, time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC))

	text := `C6 Bank
Valor desta fatura R$ 88,40
Vencimento: 20/05

05 ABR PADARIA PRIMAVERA 38,40
10 ABR FARMACIA CENTRAL 50,00`

	result := testRegistry().Parse(text)

	if result.BankName != "C6 Bank" {
		t.Fatalf("expected C6 Bank, got %q", result.BankName)
	}
	if len(result.Transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(result.Transactions))
	}
	if result.Transactions[0].Date != "2025-04-05" {
		t.Errorf("expected 2025-04-05, got %s", result.Transactions[0].Date)
	}
}

func TestParseUnknownBankUsesFallback(t *testing.T) {
	withFrozenNow(t, time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC))

	text := "some random document\n15/05 PADARIA DO ZE R$ 45,90"
	result := testRegistry().Parse(text)

	if result.BankName != "" {
		t.Errorf("expected no bank name for fallback, got %q", result.BankName)
	}
	if len(result.Transactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(result.Transactions))
	}
	if result.Transactions[0].Description != "PADARIA DO ZE" {
		t.Errorf("unexpected description %q", result.Transactions[0].Description)
	}
}

func TestParseIsIdempotent(t *testing.T) {
	withFrozenNow(t, time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC))

	text := detectionSamples["Itaú"] + "\n05/03 UBER TRIP 26,90"
	r := testRegistry()

	first := r.Parse(text)
	second := r.Parse(text)
	if !reflect.DeepEqual(first, second) {
		t.Error("re-running the parser on identical input produced different output")
	}
}
