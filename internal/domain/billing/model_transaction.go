package billing

import (
	"time"

	"marketplace-app/internal/domain/offers"
)

// Transaction is the immutable audit record appended for every settlement
// event. Rows are only ever inserted; corrections appear as new rows.
type Transaction struct {
	ID            uint  `gorm:"primaryKey" json:"id"`
	OfferID       uint  `gorm:"index" json:"offer_id"`
	InstallmentID uint  `gorm:"index" json:"installment_id"`
	CoachID       uint  `gorm:"index" json:"coach_id"`
	CoacheeID     *uint `gorm:"index" json:"coachee_id,omitempty"`

	Type string `json:"type"` // payment | refund | payment_failed

	AmountEUR      float64 `json:"amount_eur"`
	PlatformFeeEUR float64 `json:"platform_fee_eur"`
	CoachPayoutEUR float64 `json:"coach_payout_eur"`

	PaymentMode     offers.PaymentMode `json:"payment_mode"`
	StripeSessionID *string            `gorm:"uniqueIndex" json:"stripe_session_id,omitempty"`
	StripeChargeID  *string            `json:"stripe_charge_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

const (
	TransactionPayment       = "payment"
	TransactionRefund        = "refund"
	TransactionPaymentFailed = "payment_failed"
)
