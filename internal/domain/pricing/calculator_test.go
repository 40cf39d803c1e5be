package pricing

import (
	"math"
	"testing"
)

// TestWorkedExample checks the reference split: €300 gross over 3 sessions
// at 22% VAT and a 30% platform commission.
func TestWorkedExample(t *testing.T) {
	b, err := Calculate(300, 3, Params{})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	if b.PriceNet != 245.90 {
		t.Errorf("priceNet: got %.2f, want 245.90", b.PriceNet)
	}
	if b.VATAmount != 54.10 {
		t.Errorf("vatAmount: got %.2f, want 54.10", b.VATAmount)
	}
	if b.PlatformFeeTotal != 73.77 {
		t.Errorf("platformFeeTotal: got %.2f, want 73.77", b.PlatformFeeTotal)
	}
	if b.CoachPayoutTotal != 172.13 {
		t.Errorf("coachPayoutTotal: got %.2f, want 172.13", b.CoachPayoutTotal)
	}
	if b.PerInstallment.Amount != 100.00 {
		t.Errorf("installment amount: got %.2f, want 100.00", b.PerInstallment.Amount)
	}
	if b.PerInstallment.CoachPayout != 57.38 {
		t.Errorf("installment coachPayout: got %.2f, want 57.38", b.PerInstallment.CoachPayout)
	}
}

// TestSplitInvariants verifies the accounting identities over a spread of
// realistic prices and session counts.
func TestSplitInvariants(t *testing.T) {
	prices := []float64{50, 99.99, 120, 300, 1234.56, 2500}
	sessions := []int{1, 2, 3, 5, 8, 12}

	for _, total := range prices {
		for _, n := range sessions {
			b, err := Calculate(total, n, Params{})
			if err != nil {
				t.Fatalf("Calculate(%.2f, %d): %v", total, n, err)
			}

			if got := Round2(b.PriceNet + b.VATAmount); got != total {
				t.Errorf("net+vat for (%.2f, %d): got %.2f, want %.2f", total, n, got, total)
			}
			if got := Round2(b.PlatformFeeTotal + b.CoachPayoutTotal); got != b.PriceNet {
				t.Errorf("fee+payout for (%.2f, %d): got %.2f, want %.2f", total, n, got, b.PriceNet)
			}

			sum := b.PerInstallment.Amount * float64(n)
			tolerance := float64(n) * 0.01
			if math.Abs(sum-total) > tolerance+1e-9 {
				t.Errorf("installment sum for (%.2f, %d): got %.2f, want %.2f ±%.2f", total, n, sum, total, tolerance)
			}
		}
	}
}

func TestTierCommission(t *testing.T) {
	b, err := Calculate(100, 1, Params{PlatformFeePercent: 20})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if b.PlatformFeeTotal != 16.39 { // 20% of 81.97
		t.Errorf("platformFeeTotal at 20%%: got %.2f, want 16.39", b.PlatformFeeTotal)
	}
	if b.CoachPayoutTotal != 65.58 {
		t.Errorf("coachPayoutTotal at 20%%: got %.2f, want 65.58", b.CoachPayoutTotal)
	}
}

func TestInvalidInput(t *testing.T) {
	cases := []struct {
		price    float64
		sessions int
	}{
		{0, 3},
		{-50, 3},
		{300, 0},
		{300, -1},
	}
	for _, c := range cases {
		if _, err := Calculate(c.price, c.sessions, Params{}); err != ErrInvalidInput {
			t.Errorf("Calculate(%.2f, %d): got %v, want ErrInvalidInput", c.price, c.sessions, err)
		}
	}
}

func TestCents(t *testing.T) {
	if got := Cents(57.38); got != 5738 {
		t.Errorf("Cents(57.38): got %d, want 5738", got)
	}
	if got := PlatformFeeCents(100, 30); got != 3000 {
		t.Errorf("PlatformFeeCents(100, 30): got %d, want 3000", got)
	}
}
