package payouts

import "testing"

func awaitingPayout() *PendingPayout {
	return &PendingPayout{ID: 1, CoachID: 7, GrossAmount: 50, Status: AwaitingInvoice}
}

func TestSubmitInvoice(t *testing.T) {
	p := awaitingPayout()
	if err := SubmitInvoice(p, 7, "  INV-2026-001 "); err != nil {
		t.Fatalf("SubmitInvoice: %v", err)
	}
	if p.Status != InvoiceReceived {
		t.Errorf("status: got %s, want %s", p.Status, InvoiceReceived)
	}
	if !p.InvoiceReceived || p.InvoiceNumber == nil || *p.InvoiceNumber != "INV-2026-001" {
		t.Errorf("invoice fields: received=%v number=%v", p.InvoiceReceived, p.InvoiceNumber)
	}
}

func TestSubmitInvoiceGuards(t *testing.T) {
	p := awaitingPayout()
	if err := SubmitInvoice(p, 99, "INV-1"); err != ErrNotOwner {
		t.Errorf("wrong owner: got %v, want ErrNotOwner", err)
	}
	if err := SubmitInvoice(p, 7, "ab"); err != ErrInvalidInvoice {
		t.Errorf("short number: got %v, want ErrInvalidInvoice", err)
	}
	if p.Status != AwaitingInvoice {
		t.Errorf("rejected submit mutated status to %s", p.Status)
	}

	p.Status = Completed
	if err := SubmitInvoice(p, 7, "INV-2026-001"); err != ErrInvalidState {
		t.Errorf("submit on completed: got %v, want ErrInvalidState", err)
	}
}

func TestVerifyInvoice(t *testing.T) {
	p := awaitingPayout()
	if err := SubmitInvoice(p, 7, "INV-2026-001"); err != nil {
		t.Fatalf("SubmitInvoice: %v", err)
	}

	if err := VerifyInvoice(p, "admin@example.com", true, "ok"); err != nil {
		t.Fatalf("VerifyInvoice: %v", err)
	}
	if p.Status != InvoiceReceived || !p.InvoiceVerified {
		t.Errorf("after verify: status=%s verified=%v", p.Status, p.InvoiceVerified)
	}
	if p.VerifiedBy == nil || *p.VerifiedBy != "admin@example.com" {
		t.Errorf("verifiedBy: got %v", p.VerifiedBy)
	}

	// Re-verifying an already verified invoice is a state conflict.
	if err := VerifyInvoice(p, "admin@example.com", true, ""); err != ErrInvalidState {
		t.Errorf("double verify: got %v, want ErrInvalidState", err)
	}
}

func TestVerifyFromIllegalState(t *testing.T) {
	p := awaitingPayout()
	if err := VerifyInvoice(p, "admin@example.com", true, ""); err != ErrInvalidState {
		t.Errorf("verify from awaiting_invoice: got %v, want ErrInvalidState", err)
	}
	if p.InvoiceVerified || p.VerifiedBy != nil {
		t.Error("illegal verify left side effects")
	}
}

func TestRejectThenReset(t *testing.T) {
	p := awaitingPayout()
	if err := SubmitInvoice(p, 7, "INV-2026-001"); err != nil {
		t.Fatalf("SubmitInvoice: %v", err)
	}
	if err := VerifyInvoice(p, "admin@example.com", false, "partita IVA mancante"); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if p.Status != InvoiceRejected {
		t.Errorf("status after reject: got %s, want %s", p.Status, InvoiceRejected)
	}

	if err := Reset(p); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if p.Status != AwaitingInvoice {
		t.Errorf("status after reset: got %s, want %s", p.Status, AwaitingInvoice)
	}
	if p.InvoiceNumber != nil || p.InvoiceReceived || p.InvoiceVerified || p.InvoiceNotes != nil {
		t.Error("reset did not clear invoice fields")
	}
}

func TestResetFromFailed(t *testing.T) {
	reason := "transfer declined"
	p := &PendingPayout{ID: 2, CoachID: 7, Status: Failed, FailureReason: &reason}
	if err := Reset(p); err != nil {
		t.Fatalf("Reset from failed: %v", err)
	}
	if p.FailureReason != nil {
		t.Error("reset did not clear failure reason")
	}

	if err := Reset(awaitingPayout()); err != ErrInvalidState {
		t.Errorf("reset from awaiting_invoice: got %v, want ErrInvalidState", err)
	}
}
