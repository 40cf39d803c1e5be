package offers

import (
	"testing"
	"time"
)

func threeSessionOffer() *Offer {
	return &Offer{
		ID:            1,
		CoachID:       10,
		TotalSessions: 3,
		PriceTotal:    300,
		Status:        OfferAccepted,
		Installments: []Installment{
			{ID: 1, OfferID: 1, SessionNumber: 1, Amount: 100, Status: InstallmentPending},
			{ID: 2, OfferID: 1, SessionNumber: 2, Amount: 100, Status: InstallmentPending},
			{ID: 3, OfferID: 1, SessionNumber: 3, Amount: 100, Status: InstallmentPending},
		},
	}
}

func TestSettle(t *testing.T) {
	offer := threeSessionOffer()
	now := time.Now()

	changed, err := Settle(offer, 2, now)
	if err != nil {
		t.Fatalf("Settle: %v", err)
	}
	if !changed {
		t.Fatal("Settle: changed=false, want true")
	}
	if offer.PaidInstallments != 1 {
		t.Errorf("paidInstallments: got %d, want 1", offer.PaidInstallments)
	}
	if offer.Status != OfferActive {
		t.Errorf("status: got %s, want %s", offer.Status, OfferActive)
	}
	if inst := ByNumber(offer.Installments, 2); inst.Status != InstallmentPaid || inst.PaidAt == nil {
		t.Errorf("installment 2: got status=%s paidAt=%v", inst.Status, inst.PaidAt)
	}
}

// TestSettleIdempotent replays the same settlement and expects the second
// application to be a no-op: same paid count, same status.
func TestSettleIdempotent(t *testing.T) {
	offer := threeSessionOffer()
	now := time.Now()

	if _, err := Settle(offer, 1, now); err != nil {
		t.Fatalf("first Settle: %v", err)
	}
	changed, err := Settle(offer, 1, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("second Settle: %v", err)
	}
	if changed {
		t.Error("second Settle: changed=true, want false")
	}
	if offer.PaidInstallments != 1 {
		t.Errorf("paidInstallments after replay: got %d, want 1", offer.PaidInstallments)
	}
}

func TestSettleCompletesOffer(t *testing.T) {
	offer := threeSessionOffer()
	now := time.Now()

	for n := 1; n <= 3; n++ {
		if _, err := Settle(offer, n, now); err != nil {
			t.Fatalf("Settle(%d): %v", n, err)
		}
	}
	if offer.Status != OfferCompleted {
		t.Errorf("status: got %s, want %s", offer.Status, OfferCompleted)
	}
	if offer.PaidInstallments != 3 {
		t.Errorf("paidInstallments: got %d, want 3", offer.PaidInstallments)
	}
}

func TestSettleUnknownSession(t *testing.T) {
	offer := threeSessionOffer()
	if _, err := Settle(offer, 7, time.Now()); err != ErrInstallmentNotFound {
		t.Errorf("Settle(7): got %v, want ErrInstallmentNotFound", err)
	}
}

func TestMarkFailedKeepsPaid(t *testing.T) {
	offer := threeSessionOffer()
	if _, err := Settle(offer, 1, time.Now()); err != nil {
		t.Fatalf("Settle: %v", err)
	}
	if err := MarkFailed(offer, 1); err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}
	if inst := ByNumber(offer.Installments, 1); inst.Status != InstallmentPaid {
		t.Errorf("paid installment downgraded to %s by late failure event", inst.Status)
	}
}

func TestTransition(t *testing.T) {
	offer := &Offer{Status: OfferPending}
	if err := Transition(offer, OfferAccepted); err != nil {
		t.Fatalf("pending -> accepted: %v", err)
	}

	offer = &Offer{Status: OfferRejected}
	if err := Transition(offer, OfferAccepted); err == nil {
		t.Error("rejected -> accepted: want error, got nil")
	}
	if offer.Status != OfferRejected {
		t.Errorf("illegal transition mutated status to %s", offer.Status)
	}
}
