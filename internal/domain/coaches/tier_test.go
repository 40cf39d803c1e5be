package coaches

import "testing"

func TestCommissionPercent(t *testing.T) {
	cases := []struct {
		name    string
		account *CoachAccount
		want    float64
	}{
		{"no account", nil, 30},
		{"standard", &CoachAccount{Tier: TierStandard}, 30},
		{"plus", &CoachAccount{Tier: TierPlus}, 25},
		{"partner", &CoachAccount{Tier: " Partner "}, 20},
		{"unknown tier falls back", &CoachAccount{Tier: "vip"}, 30},
		{"empty tier falls back", &CoachAccount{}, 30},
	}

	for _, c := range cases {
		if got := CommissionPercent(c.account, 30); got != c.want {
			t.Errorf("%s: got %.0f, want %.0f", c.name, got, c.want)
		}
	}
}

func TestChargeable(t *testing.T) {
	var missing *CoachAccount
	if missing.Chargeable() {
		t.Error("nil account must not be chargeable")
	}
	if (&CoachAccount{StripeAccountID: "acct_1"}).Chargeable() {
		t.Error("charges_enabled=false must not be chargeable")
	}
	if !(&CoachAccount{StripeAccountID: "acct_1", ChargesEnabled: true}).Chargeable() {
		t.Error("verified account must be chargeable")
	}
}
