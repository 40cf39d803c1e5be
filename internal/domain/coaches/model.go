package coaches

import "time"

// CoachAccount is the coach's payment-processor record: at most one per
// coach. The capability booleans mirror Stripe's verification state and are
// refreshed by the account.updated webhook.
type CoachAccount struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	CoachID uint `gorm:"uniqueIndex" json:"coach_id"`

	StripeAccountID    string `gorm:"uniqueIndex" json:"stripe_account_id"`
	ChargesEnabled     bool   `json:"charges_enabled"`
	PayoutsEnabled     bool   `json:"payouts_enabled"`
	OnboardingComplete bool   `json:"onboarding_complete"`

	Tier string `json:"tier"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Chargeable reports whether a checkout may route funds straight to this
// account. A missing or unverified account forces platform_direct mode,
// never a failed checkout.
func (a *CoachAccount) Chargeable() bool {
	return a != nil && a.StripeAccountID != "" && a.ChargesEnabled
}

// Earnings is the per-coach rolling aggregate. TotalEarnings and the monthly
// rows only grow on settled payments; PendingPayout is decremented by the
// payout batch when a manual transfer completes. Automatic Connect splits
// never enter the pending bucket.
type Earnings struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	CoachID uint `gorm:"uniqueIndex" json:"coach_id"`

	TotalEarnings float64 `json:"total_earnings"`
	PendingPayout float64 `json:"pending_payout"`

	UpdatedAt time.Time `json:"updated_at"`
}

// MonthlyEarnings is one YYYY-MM bucket of a coach's earnings.
type MonthlyEarnings struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	CoachID uint   `gorm:"index:idx_coach_month,unique" json:"coach_id"`
	Month   string `gorm:"index:idx_coach_month,unique" json:"month"`

	Earnings float64 `json:"earnings"`
	Sessions int     `json:"sessions"`
}

// MonthKey formats a payment date into the monthly-bucket key.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}
