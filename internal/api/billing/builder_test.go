package billing

import (
	"testing"
	"time"

	"marketplace-app/internal/domain/coaches"
	"marketplace-app/internal/domain/offers"
)

func TestDecideMode(t *testing.T) {
	cases := []struct {
		name    string
		account *coaches.CoachAccount
		want    offers.PaymentMode
	}{
		{"chargeable account", &coaches.CoachAccount{StripeAccountID: "acct_1", ChargesEnabled: true}, offers.ModeStripeConnect},
		{"charges disabled", &coaches.CoachAccount{StripeAccountID: "acct_1", ChargesEnabled: false}, offers.ModePlatformDirect},
		{"no account id", &coaches.CoachAccount{ChargesEnabled: true}, offers.ModePlatformDirect},
		{"no account at all", nil, offers.ModePlatformDirect},
	}

	for _, c := range cases {
		if got := DecideMode(c.account); got != c.want {
			t.Errorf("%s: got %s, want %s", c.name, got, c.want)
		}
	}
}

func sampleOfferAndInstallment(external bool) (*offers.Offer, *offers.Installment) {
	offer := &offers.Offer{
		ID:            5,
		CoachID:       10,
		Title:         "Percorso executive",
		TotalSessions: 3,
		External:      external,
		Installments: []offers.Installment{
			{ID: 1, OfferID: 5, SessionNumber: 1, Amount: 100, CoachPayout: 57.38, Status: offers.InstallmentPending},
		},
	}
	return offer, &offer.Installments[0]
}

func TestBuildSessionParamsConnect(t *testing.T) {
	offer, inst := sampleOfferAndInstallment(false)
	account := &coaches.CoachAccount{StripeAccountID: "acct_1", ChargesEnabled: true}
	now := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)

	params := BuildSessionParams(offer, inst, account, offers.ModeStripeConnect, "payer@example.com", "https://app.example.com", 30, now)

	intent := params.PaymentIntentData
	if intent.TransferData == nil || *intent.TransferData.Destination != "acct_1" {
		t.Fatal("connect mode must set transfer destination")
	}
	if intent.ApplicationFeeAmount == nil || *intent.ApplicationFeeAmount != 3000 {
		t.Errorf("application fee: got %v, want 3000", intent.ApplicationFeeAmount)
	}
	if *params.ExpiresAt != now.Add(30*time.Minute).Unix() {
		t.Errorf("expiry: got %d, want +30m", *params.ExpiresAt)
	}
	if params.Metadata["payment_mode"] != string(offers.ModeStripeConnect) {
		t.Errorf("metadata payment_mode: got %q", params.Metadata["payment_mode"])
	}
}

func TestBuildSessionParamsPlatformDirect(t *testing.T) {
	offer, inst := sampleOfferAndInstallment(false)
	now := time.Now()

	params := BuildSessionParams(offer, inst, nil, offers.ModePlatformDirect, "", "https://app.example.com", 30, now)

	intent := params.PaymentIntentData
	if intent.TransferData != nil {
		t.Error("platform_direct must not route funds to a connected account")
	}
	if intent.ApplicationFeeAmount != nil {
		t.Error("platform_direct must not set an application fee")
	}
	if params.Metadata["coach_payout_pending"] != "true" {
		t.Error("platform_direct must flag the pending coach payout")
	}
	if params.Metadata["coach_payout"] != "57.38" {
		t.Errorf("coach_payout metadata: got %q, want 57.38", params.Metadata["coach_payout"])
	}
}

func TestBuildSessionParamsExternal(t *testing.T) {
	offer, inst := sampleOfferAndInstallment(true)
	account := &coaches.CoachAccount{StripeAccountID: "acct_1", ChargesEnabled: true}

	params := BuildSessionParams(offer, inst, account, offers.ModeStripeConnect, "client@example.com", "https://app.example.com", 30, time.Now())

	intent := params.PaymentIntentData
	if intent.TransferData == nil || *intent.TransferData.Destination != "acct_1" {
		t.Fatal("external mode must set transfer destination")
	}
	if intent.ApplicationFeeAmount != nil {
		t.Error("external offers pass 100% through: no application fee")
	}
}
