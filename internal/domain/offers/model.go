package offers

import (
	"time"
)

// OfferStatus is the lifecycle state of a coaching package.
type OfferStatus string

const (
	OfferDraft     OfferStatus = "draft"
	OfferPending   OfferStatus = "pending"
	OfferAccepted  OfferStatus = "accepted"
	OfferRejected  OfferStatus = "rejected"
	OfferExpired   OfferStatus = "expired"
	OfferActive    OfferStatus = "active"
	OfferCompleted OfferStatus = "completed"
	OfferCancelled OfferStatus = "cancelled"
)

// InstallmentStatus is the payment state of a single session-unit.
type InstallmentStatus string

const (
	InstallmentPending  InstallmentStatus = "pending"
	InstallmentPaid     InstallmentStatus = "paid"
	InstallmentFailed   InstallmentStatus = "failed"
	InstallmentRefunded InstallmentStatus = "refunded"
)

// PaymentMode records how an installment's checkout was routed, fixed at
// session-creation time based on the coach account's state at that moment.
type PaymentMode string

const (
	ModeStripeConnect  PaymentMode = "stripe_connect"
	ModePlatformDirect PaymentMode = "platform_direct"
)

// Offer is an agreed coaching package: the commercial terms plus the ordered
// installment ledger. Money fields are frozen at creation by the pricing
// calculator; re-deriving them at payment time would change the price the
// coachee was quoted.
type Offer struct {
	ID        uint  `gorm:"primaryKey" json:"id"`
	CoachID   uint  `gorm:"index" json:"coach_id"`
	CoacheeID *uint `gorm:"index" json:"coachee_id,omitempty"`

	// External offers are sold to a client outside the marketplace and pass
	// 100% of the funds to the coach.
	ClientEmail *string `json:"client_email,omitempty"`
	External    bool    `json:"external"`

	Title                  string  `json:"title"`
	TotalSessions          int     `json:"total_sessions"`
	SessionDurationMinutes int     `json:"session_duration_minutes"`
	PriceTotal             float64 `json:"price_total"`
	PriceNet               float64 `json:"price_net"`
	VATAmount              float64 `json:"vat_amount"`
	PlatformFeeTotal       float64 `json:"platform_fee_total"`
	CoachPayoutTotal       float64 `json:"coach_payout_total"`

	Installments []Installment `gorm:"constraint:OnDelete:CASCADE" json:"installments"`

	// PaidInstallments always equals the count of installments whose status
	// is paid. It is recomputed after every mutation, never incremented.
	PaidInstallments int         `json:"paid_installments"`
	Status           OfferStatus `gorm:"index;default:pending" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Installment is one payable unit within an Offer. Index within the offer is
// SessionNumber-1.
type Installment struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	OfferID       uint `gorm:"index" json:"offer_id"`
	SessionNumber int  `json:"session_number"`

	Amount      float64 `json:"amount"`
	AmountNet   float64 `json:"amount_net"`
	VATAmount   float64 `json:"vat_amount"`
	PlatformFee float64 `json:"platform_fee"`
	CoachPayout float64 `json:"coach_payout"`

	Status      InstallmentStatus `gorm:"index;default:pending" json:"status"`
	PaymentMode PaymentMode       `json:"payment_mode,omitempty"`

	StripeSessionID *string    `gorm:"index" json:"stripe_session_id,omitempty"`
	PaidAt          *time.Time `json:"paid_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CountPaid recomputes the paid-installment aggregate from the ledger rows.
func CountPaid(installments []Installment) int {
	n := 0
	for _, inst := range installments {
		if inst.Status == InstallmentPaid {
			n++
		}
	}
	return n
}

// ByNumber returns the installment for a 1-based session number, or nil.
func ByNumber(installments []Installment, sessionNumber int) *Installment {
	for i := range installments {
		if installments[i].SessionNumber == sessionNumber {
			return &installments[i]
		}
	}
	return nil
}

// StatusAfterPayment derives the offer status once paid has been recomputed:
// completed when every session is paid, active otherwise.
func StatusAfterPayment(totalSessions, paid int) OfferStatus {
	if paid >= totalSessions {
		return OfferCompleted
	}
	return OfferActive
}

// Terminal reports whether an offer can no longer change state.
func (s OfferStatus) Terminal() bool {
	switch s {
	case OfferCompleted, OfferRejected, OfferCancelled, OfferExpired:
		return true
	}
	return false
}

// Payable reports whether checkouts may be opened against the offer.
func (s OfferStatus) Payable() bool {
	return s == OfferAccepted || s == OfferActive
}
