package payouts

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"marketplace-app/internal/domain/coaches"
)

type stubStore struct {
	due        []PendingPayout
	accounts   map[uint]*coaches.CoachAccount
	saved      map[uint]PendingPayout
	reconciled map[uint]float64
	saveErr    error
}

func newStubStore(due []PendingPayout) *stubStore {
	return &stubStore{
		due:        due,
		accounts:   map[uint]*coaches.CoachAccount{},
		saved:      map[uint]PendingPayout{},
		reconciled: map[uint]float64{},
	}
}

func (s *stubStore) DuePayouts(_ time.Time) ([]PendingPayout, error) {
	return s.due, nil
}

func (s *stubStore) AccountForCoach(coachID uint) (*coaches.CoachAccount, error) {
	return s.accounts[coachID], nil
}

func (s *stubStore) SavePayout(p *PendingPayout) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved[p.ID] = *p
	return nil
}

func (s *stubStore) ReconcilePayoutCompleted(coachID uint, amount float64) error {
	s.reconciled[coachID] += amount
	return nil
}

func verifiedPayout(id, coachID uint, amount float64) PendingPayout {
	return PendingPayout{
		ID:              id,
		CoachID:         coachID,
		GrossAmount:     amount,
		Status:          InvoiceReceived,
		InvoiceReceived: true,
		InvoiceVerified: true,
	}
}

// TestBatchFailureIsolation is the mixed-batch scenario: B's transfer throws,
// A and C must still complete and the summary must account for all three.
func TestBatchFailureIsolation(t *testing.T) {
	store := newStubStore([]PendingPayout{
		verifiedPayout(1, 10, 50),
		verifiedPayout(2, 20, 80),
		verifiedPayout(3, 30, 120),
	})
	for _, id := range []uint{10, 20, 30} {
		store.accounts[id] = &coaches.CoachAccount{
			CoachID:         id,
			StripeAccountID: fmt.Sprintf("acct_%d", id),
			PayoutsEnabled:  true,
		}
	}

	batch := &Batch{
		Store: store,
		Transfer: func(accountID string, amountCents int64, _ string) (string, error) {
			if accountID == "acct_20" {
				return "", errors.New("destination account rejected")
			}
			return "tr_" + accountID, nil
		},
	}

	result, err := batch.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Total != 3 || result.Processed != 2 || result.Failed != 1 || result.Skipped != 0 {
		t.Errorf("summary: got total=%d processed=%d failed=%d skipped=%d, want 3/2/1/0",
			result.Total, result.Processed, result.Failed, result.Skipped)
	}
	if len(result.Transfers) != 2 {
		t.Fatalf("transfers: got %d, want 2", len(result.Transfers))
	}
	if len(result.Errors) != 1 {
		t.Errorf("errors: got %d, want 1", len(result.Errors))
	}

	if got := store.saved[1].Status; got != Completed {
		t.Errorf("payout A: got %s, want %s", got, Completed)
	}
	if got := store.saved[3].Status; got != Completed {
		t.Errorf("payout C: got %s, want %s", got, Completed)
	}
	failed := store.saved[2]
	if failed.Status != Failed || failed.FailureReason == nil {
		t.Errorf("payout B: got status=%s reason=%v, want failed with reason", failed.Status, failed.FailureReason)
	}

	if store.reconciled[10] != 50 || store.reconciled[30] != 120 {
		t.Errorf("pending_payout reconcile: got %v", store.reconciled)
	}
	if _, ok := store.reconciled[20]; ok {
		t.Error("failed payout must not touch the earnings aggregate")
	}
}

func TestBatchBlocksDisabledAccounts(t *testing.T) {
	store := newStubStore([]PendingPayout{verifiedPayout(1, 10, 50)})
	store.accounts[10] = &coaches.CoachAccount{
		CoachID:         10,
		StripeAccountID: "acct_10",
		PayoutsEnabled:  false,
	}

	transfers := 0
	batch := &Batch{
		Store: store,
		Transfer: func(string, int64, string) (string, error) {
			transfers++
			return "tr_x", nil
		},
	}

	result, err := batch.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if transfers != 0 {
		t.Errorf("transfer called %d times for a blocked payout", transfers)
	}
	if result.Skipped != 1 || result.Processed != 0 {
		t.Errorf("summary: got skipped=%d processed=%d, want 1/0", result.Skipped, result.Processed)
	}
	if got := store.saved[1].Status; got != Blocked {
		t.Errorf("payout: got %s, want %s", got, Blocked)
	}
}

func TestBatchMissingAccount(t *testing.T) {
	store := newStubStore([]PendingPayout{verifiedPayout(1, 10, 50)})

	batch := &Batch{
		Store:    store,
		Transfer: func(string, int64, string) (string, error) { return "tr_x", nil },
	}
	result, err := batch.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Skipped != 1 {
		t.Errorf("skipped: got %d, want 1", result.Skipped)
	}
	if got := store.saved[1]; got.Status != Blocked || got.FailureReason == nil {
		t.Errorf("payout: got status=%s reason=%v", got.Status, got.FailureReason)
	}
}

func TestBatchNotifies(t *testing.T) {
	store := newStubStore([]PendingPayout{verifiedPayout(1, 10, 50)})
	store.accounts[10] = &coaches.CoachAccount{CoachID: 10, StripeAccountID: "acct_10", PayoutsEnabled: true}

	var outcomes []Status
	batch := &Batch{
		Store:    store,
		Transfer: func(string, int64, string) (string, error) { return "tr_1", nil },
		Notify:   func(_ *PendingPayout, outcome Status) { outcomes = append(outcomes, outcome) },
	}
	if _, err := batch.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(outcomes) != 1 || outcomes[0] != Completed {
		t.Errorf("notifications: got %v, want [completed]", outcomes)
	}
}

func TestScheduleFor(t *testing.T) {
	paidAt := time.Date(2026, 3, 5, 17, 30, 0, 0, time.UTC)
	got := ScheduleFor(paidAt)
	want := time.Date(2026, 3, 19, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ScheduleFor: got %v, want %v", got, want)
	}
}
