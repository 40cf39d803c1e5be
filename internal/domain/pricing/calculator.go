package pricing

import (
	"errors"
	"math"
)

// Defaults applied when the caller passes zero-valued params.
const (
	DefaultVATPercent         = 22.0
	DefaultPlatformFeePercent = 30.0
)

var ErrInvalidInput = errors.New("priceTotal and totalSessions must be positive")

// Params carries the rates used for a split. Zero values fall back to the
// platform defaults, so callers only set what they need to override
// (e.g. a tier-specific commission percent).
type Params struct {
	VATPercent         float64
	PlatformFeePercent float64
}

// InstallmentSplit is the frozen money breakdown of a single installment.
// Each field is rounded to cents independently of the totals: dividing a
// pre-rounded total would accumulate drift across sessions.
type InstallmentSplit struct {
	Amount      float64 `json:"amount"`
	AmountNet   float64 `json:"amount_net"`
	VATAmount   float64 `json:"vat_amount"`
	PlatformFee float64 `json:"platform_fee"`
	CoachPayout float64 `json:"coach_payout"`
}

// Breakdown is the full split of an offer's gross price.
type Breakdown struct {
	PriceTotal       float64 `json:"price_total"`
	PriceNet         float64 `json:"price_net"`
	VATAmount        float64 `json:"vat_amount"`
	PlatformFeeTotal float64 `json:"platform_fee_total"`
	CoachPayoutTotal float64 `json:"coach_payout_total"`

	PerInstallment InstallmentSplit `json:"per_installment"`
}

// Calculate splits a VAT-inclusive gross price across totalSessions
// installments. priceTotal is gross; net is derived by stripping VAT, the
// platform fee is taken from net, the coach payout is the remainder.
// A residual rounding drift of up to one cent per installment is accepted
// and never reconciled.
func Calculate(priceTotal float64, totalSessions int, p Params) (*Breakdown, error) {
	if priceTotal <= 0 || totalSessions <= 0 {
		return nil, ErrInvalidInput
	}

	vat := p.VATPercent
	if vat == 0 {
		vat = DefaultVATPercent
	}
	fee := p.PlatformFeePercent
	if fee == 0 {
		fee = DefaultPlatformFeePercent
	}

	priceNet := Round2(priceTotal / (1 + vat/100))
	vatAmount := Round2(priceTotal - priceNet)
	platformFeeTotal := Round2(priceNet * fee / 100)
	coachPayoutTotal := Round2(priceNet - platformFeeTotal)

	n := float64(totalSessions)
	per := InstallmentSplit{
		Amount:      Round2(priceTotal / n),
		AmountNet:   Round2(priceNet / n),
		VATAmount:   Round2(vatAmount / n),
		PlatformFee: Round2(platformFeeTotal / n),
		CoachPayout: Round2(coachPayoutTotal / n),
	}

	return &Breakdown{
		PriceTotal:       priceTotal,
		PriceNet:         priceNet,
		VATAmount:        vatAmount,
		PlatformFeeTotal: platformFeeTotal,
		CoachPayoutTotal: coachPayoutTotal,
		PerInstallment:   per,
	}, nil
}

// PlatformFeeCents converts a gross installment amount in euros to the
// application fee Stripe expects, in cents.
func PlatformFeeCents(amount float64, feePercent float64) int64 {
	return int64(math.Round(amount * feePercent))
}

// Cents converts a euro amount to integer cents for the Stripe API.
func Cents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// Round2 rounds to cent precision using standard half-away-from-zero rounding.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
