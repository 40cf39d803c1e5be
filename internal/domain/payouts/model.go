package payouts

import "time"

// Status is the manual-payout state machine. Payouts exist only for
// platform_direct installments; Connect splits are routed by Stripe at
// charge time and never pass through here.
type Status string

const (
	AwaitingInvoice Status = "awaiting_invoice"
	InvoiceReceived Status = "invoice_received"
	InvoiceRejected Status = "invoice_rejected"
	Completed       Status = "completed"
	Failed          Status = "failed"
	Blocked         Status = "blocked"
)

// PendingPayout is the manual-payout bookkeeping record, created exactly once
// per platform-direct installment payment. The owning coach submits the
// invoice; only an admin verifies or rejects it.
type PendingPayout struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	CoachID       uint `gorm:"index" json:"coach_id"`
	OfferID       uint `gorm:"index" json:"offer_id"`
	InstallmentID uint `gorm:"uniqueIndex" json:"installment_id"`

	GrossAmount float64 `json:"gross_amount"`
	NetAmount   float64 `json:"net_amount"`

	ScheduledPayoutDate time.Time `gorm:"index" json:"scheduled_payout_date"`
	Status              Status    `gorm:"index;default:awaiting_invoice" json:"status"`

	InvoiceNumber   *string `json:"invoice_number,omitempty"`
	InvoiceReceived bool    `json:"invoice_received"`
	InvoiceVerified bool    `json:"invoice_verified"`
	VerifiedBy      *string `json:"verified_by,omitempty"`
	InvoiceNotes    *string `json:"invoice_notes,omitempty"`

	StripeTransferID *string    `json:"stripe_transfer_id,omitempty"`
	FailureReason    *string    `json:"failure_reason,omitempty"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// payoutDelayDays is the fixed offset between an installment payment and the
// date its manual payout becomes eligible for the weekly batch.
const payoutDelayDays = 14

// ScheduleFor computes the payout eligibility date for a payment settled at
// paidAt, truncated to midnight UTC so date comparisons are stable.
func ScheduleFor(paidAt time.Time) time.Time {
	d := paidAt.AddDate(0, 0, payoutDelayDays).UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
