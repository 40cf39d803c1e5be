package payouts

import (
	"fmt"
	"time"

	"marketplace-app/internal/domain/coaches"
	"marketplace-app/internal/domain/pricing"
)

// TransferFunc issues a fund transfer to a coach's connected account and
// returns the processor's transfer id.
type TransferFunc func(stripeAccountID string, amountCents int64, reference string) (string, error)

// NotifyFunc is invoked fire-and-forget after a payout reaches a terminal
// state; failures are the notifier's problem, never the batch's.
type NotifyFunc func(p *PendingPayout, outcome Status)

// Store is the persistence surface the batch needs. The gorm-backed
// implementation lives with the HTTP handlers; tests use in-memory stubs.
type Store interface {
	// DuePayouts returns payouts in invoice_received with a verified invoice
	// whose scheduled date is on or before now.
	DuePayouts(now time.Time) ([]PendingPayout, error)
	AccountForCoach(coachID uint) (*coaches.CoachAccount, error)
	SavePayout(p *PendingPayout) error
	// ReconcilePayoutCompleted decrements the coach's pending_payout bucket.
	ReconcilePayoutCompleted(coachID uint, amount float64) error
}

// TransferRecord is one successful transfer in a batch summary.
type TransferRecord struct {
	PayoutID   uint    `json:"payout_id"`
	CoachID    uint    `json:"coach_id"`
	Amount     float64 `json:"amount"`
	TransferID string  `json:"transfer_id"`
}

// BatchResult summarizes a batch run.
type BatchResult struct {
	Total     int              `json:"total"`
	Processed int              `json:"processed"`
	Failed    int              `json:"failed"`
	Skipped   int              `json:"skipped"`
	Transfers []TransferRecord `json:"transfers"`
	Errors    []string         `json:"errors"`
}

// Batch walks due payouts one at a time and transfers funds to each coach.
type Batch struct {
	Store    Store
	Transfer TransferFunc
	Notify   NotifyFunc
	Now      func() time.Time
}

// Run executes one batch pass. Each payout is isolated: a transfer failure
// marks that payout failed and the batch moves on to its siblings.
func (b *Batch) Run() (*BatchResult, error) {
	now := time.Now()
	if b.Now != nil {
		now = b.Now()
	}

	due, err := b.Store.DuePayouts(now)
	if err != nil {
		return nil, fmt.Errorf("selecting due payouts: %w", err)
	}

	result := &BatchResult{
		Total:     len(due),
		Transfers: []TransferRecord{},
		Errors:    []string{},
	}

	for i := range due {
		p := &due[i]
		b.runOne(p, result)
	}
	return result, nil
}

func (b *Batch) runOne(p *PendingPayout, result *BatchResult) {
	account, err := b.Store.AccountForCoach(p.CoachID)
	if err != nil || account == nil || !account.PayoutsEnabled {
		p.Status = Blocked
		reason := "payouts disabled on connected account"
		if err != nil {
			reason = fmt.Sprintf("account lookup failed: %v", err)
		} else if account == nil {
			reason = "coach has no connected account"
		}
		p.FailureReason = &reason
		if saveErr := b.Store.SavePayout(p); saveErr != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("payout %d: %v", p.ID, saveErr))
		}
		result.Skipped++
		b.notify(p, Blocked)
		return
	}

	reference := fmt.Sprintf("payout-%d-offer-%d", p.ID, p.OfferID)
	transferID, err := b.Transfer(account.StripeAccountID, pricing.Cents(p.GrossAmount), reference)
	if err != nil {
		p.Status = Failed
		reason := err.Error()
		p.FailureReason = &reason
		if saveErr := b.Store.SavePayout(p); saveErr != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("payout %d: %v", p.ID, saveErr))
		}
		result.Failed++
		result.Errors = append(result.Errors, fmt.Sprintf("payout %d: %v", p.ID, err))
		b.notify(p, Failed)
		return
	}

	now := time.Now()
	if b.Now != nil {
		now = b.Now()
	}
	p.Status = Completed
	p.StripeTransferID = &transferID
	p.CompletedAt = &now
	p.FailureReason = nil

	if err := b.Store.SavePayout(p); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("payout %d: transferred but not persisted: %v", p.ID, err))
	}
	if err := b.Store.ReconcilePayoutCompleted(p.CoachID, p.GrossAmount); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("payout %d: earnings reconcile: %v", p.ID, err))
	}

	result.Processed++
	result.Transfers = append(result.Transfers, TransferRecord{
		PayoutID:   p.ID,
		CoachID:    p.CoachID,
		Amount:     p.GrossAmount,
		TransferID: transferID,
	})
	b.notify(p, Completed)
}

func (b *Batch) notify(p *PendingPayout, outcome Status) {
	if b.Notify != nil {
		b.Notify(p, outcome)
	}
}
