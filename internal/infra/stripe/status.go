package stripe

import (
	stripe "github.com/stripe/stripe-go/v75"
)

// AccountCapabilities is the subset of a connected account's verification
// state the marketplace cares about.
type AccountCapabilities struct {
	ChargesEnabled     bool
	PayoutsEnabled     bool
	OnboardingComplete bool
}

// CapabilitiesOf normalizes a Stripe account payload into the booleans the
// checkout builder and payout batch branch on. Onboarding counts as complete
// once details are submitted and charges are enabled.
func CapabilitiesOf(acct *stripe.Account) AccountCapabilities {
	if acct == nil {
		return AccountCapabilities{}
	}
	return AccountCapabilities{
		ChargesEnabled:     acct.ChargesEnabled,
		PayoutsEnabled:     acct.PayoutsEnabled,
		OnboardingComplete: acct.DetailsSubmitted && acct.ChargesEnabled,
	}
}
