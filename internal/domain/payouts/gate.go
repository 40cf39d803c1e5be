package payouts

import (
	"errors"
	"strings"
)

var (
	ErrNotOwner       = errors.New("payout belongs to another coach")
	ErrInvalidState   = errors.New("operation not valid for current payout status")
	ErrInvalidInvoice = errors.New("invoice number must be 3-50 characters")
)

// SubmitInvoice records the coach's invoice number against a payout. Only the
// owning coach may submit, and only while the payout is awaiting an invoice.
func SubmitInvoice(p *PendingPayout, coachID uint, invoiceNumber string) error {
	if p.CoachID != coachID {
		return ErrNotOwner
	}
	if p.Status != AwaitingInvoice {
		return ErrInvalidState
	}

	number := strings.TrimSpace(invoiceNumber)
	if len(number) < 3 || len(number) > 50 {
		return ErrInvalidInvoice
	}

	p.InvoiceNumber = &number
	p.InvoiceReceived = true
	p.Status = InvoiceReceived
	return nil
}

// VerifyInvoice is the admin decision on a submitted invoice. Approval keeps
// the payout in invoice_received with verified=true, which is what the batch
// selects on; rejection moves it to invoice_rejected.
func VerifyInvoice(p *PendingPayout, adminID string, verified bool, notes string) error {
	if p.Status != InvoiceReceived {
		return ErrInvalidState
	}
	if p.InvoiceVerified {
		return ErrInvalidState
	}

	p.InvoiceVerified = verified
	p.VerifiedBy = &adminID
	if notes != "" {
		p.InvoiceNotes = &notes
	}
	if !verified {
		p.Status = InvoiceRejected
	}
	return nil
}

// Reset returns a rejected or failed payout to awaiting_invoice, clearing the
// invoice fields and any prior failure reason so the coach can start over.
func Reset(p *PendingPayout) error {
	if p.Status != InvoiceRejected && p.Status != Failed {
		return ErrInvalidState
	}

	p.InvoiceNumber = nil
	p.InvoiceReceived = false
	p.InvoiceVerified = false
	p.VerifiedBy = nil
	p.InvoiceNotes = nil
	p.FailureReason = nil
	p.Status = AwaitingInvoice
	return nil
}
