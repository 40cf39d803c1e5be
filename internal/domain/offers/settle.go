package offers

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInstallmentNotFound    = errors.New("installment not found")
	ErrInstallmentAlreadyPaid = errors.New("installment already paid")
)

// Settle marks the installment for sessionNumber as paid and recomputes the
// offer aggregate and status. It is idempotent: settling an already-paid
// installment reports changed=false and leaves the offer untouched, which is
// what makes webhook redelivery safe at this layer. Persistence must still
// guard the write with a conditional update (see offers store usage in the
// webhook handler) to close the race between two concurrent deliveries.
func Settle(offer *Offer, sessionNumber int, paidAt time.Time) (changed bool, err error) {
	inst := ByNumber(offer.Installments, sessionNumber)
	if inst == nil {
		return false, ErrInstallmentNotFound
	}
	if inst.Status == InstallmentPaid {
		return false, nil
	}

	inst.Status = InstallmentPaid
	inst.PaidAt = &paidAt

	offer.PaidInstallments = CountPaid(offer.Installments)
	offer.Status = StatusAfterPayment(offer.TotalSessions, offer.PaidInstallments)
	return true, nil
}

// MarkFailed records a failed payment attempt for the installment. Paid
// installments are never downgraded by a late failure event.
func MarkFailed(offer *Offer, sessionNumber int) error {
	inst := ByNumber(offer.Installments, sessionNumber)
	if inst == nil {
		return ErrInstallmentNotFound
	}
	if inst.Status == InstallmentPaid {
		return nil
	}
	inst.Status = InstallmentFailed
	return nil
}

// MarkRefunded records a refund for a paid installment. Aggregate earnings
// are deliberately not reversed here: the reversal policy is undefined.
// TODO: decide with product whether a refund decrements paid_installments
// and the coach earnings aggregate.
func MarkRefunded(offer *Offer, sessionNumber int) error {
	inst := ByNumber(offer.Installments, sessionNumber)
	if inst == nil {
		return ErrInstallmentNotFound
	}
	inst.Status = InstallmentRefunded
	return nil
}

// Transition applies a lifecycle change to an offer, enforcing the legal
// moves in one place instead of scattering status checks across handlers.
func Transition(offer *Offer, to OfferStatus) error {
	legal := map[OfferStatus][]OfferStatus{
		OfferDraft:    {OfferPending, OfferCancelled},
		OfferPending:  {OfferAccepted, OfferRejected, OfferExpired, OfferCancelled},
		OfferAccepted: {OfferActive, OfferCancelled},
		OfferActive:   {OfferCompleted, OfferCancelled},
	}

	for _, next := range legal[offer.Status] {
		if next == to {
			offer.Status = to
			return nil
		}
	}
	return fmt.Errorf("illegal offer transition %s -> %s", offer.Status, to)
}
