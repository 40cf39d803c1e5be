package notify

import (
	"fmt"
	"net/smtp"
	"os"
)

// Notifications are fire-and-forget: callers invoke these in a goroutine and
// a delivery failure is logged, never propagated into the payment flow.

func SendPayoutCompletedEmail(to string, amount float64, transferID string) error {
	subject := "Pagamento inviato"
	body := fmt.Sprintf("Il tuo compenso di €%.2f è stato trasferito sul tuo conto.\n\nRiferimento: %s", amount, transferID)
	return send(to, subject, body)
}

func SendPayoutFailedEmail(to string, amount float64, reason string) error {
	subject := "Pagamento non riuscito"
	body := fmt.Sprintf("Il trasferimento di €%.2f non è andato a buon fine:\n\n%s", amount, reason)
	return send(to, subject, body)
}

func SendInvoiceRejectedEmail(to string, invoiceNumber string, reason string) error {
	subject := "Fattura rifiutata"
	body := fmt.Sprintf("La fattura %s è stata rifiutata.\n\nMotivo: %s\n\nCorreggi e invia di nuovo il numero di fattura dalla tua area coach.", invoiceNumber, reason)
	return send(to, subject, body)
}

func SendInvoiceReceivedEmail(to string, coachEmail string, invoiceNumber string) error {
	subject := "Nuova fattura da verificare"
	body := fmt.Sprintf("Il coach %s ha registrato la fattura %s. Verificala dal pannello admin.", coachEmail, invoiceNumber)
	return send(to, subject, body)
}

func send(to string, subject string, body string) error {
	from := os.Getenv("SMTP_FROM")
	password := os.Getenv("SMTP_PASSWORD")
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")

	auth := smtp.PlainAuth("", from, password, host)

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")

	err := smtp.SendMail(host+":"+port, auth, from, []string{to}, message)
	if err != nil {
		fmt.Println("❌ SMTP error:", err)
	}
	return err
}
