package mail

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"log"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"os"

	"paylink/internal/domain/entities"
	"paylink/internal/usecase/interfaces"
)

// SMTPMailer sends the payment confirmation email, optionally with the
// consent-document PDF attached. MAIL_MOCK=true short-circuits delivery for
// local runs without an SMTP relay.

type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
	sender   string
	mockMode bool
}

var _ interfaces.IMailer = (*SMTPMailer)(nil)

func NewSMTPMailer() *SMTPMailer {
	sender := os.Getenv("SMTP_SENDER")
	if sender == "" {
		sender = "no-reply@localhost"
	}
	return &SMTPMailer{
		host:     os.Getenv("SMTP_HOST"),
		port:     getenvDefault("SMTP_PORT", "587"),
		username: os.Getenv("SMTP_USERNAME"),
		password: os.Getenv("SMTP_PASSWORD"),
		sender:   sender,
		mockMode: os.Getenv("MAIL_MOCK") == "true",
	}
}

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<html>
<body>
<p>Hello {{.PatientName}},</p>
<p>We confirm we received your payment of <b>{{.Amount}}</b>.</p>
{{if .HasAttachment}}<p>Your signed consent document is attached for your records.</p>{{end}}
<p>Reference: {{.Reference}}</p>
</body>
</html>`))

func (m *SMTPMailer) SendPaymentConfirmation(ctx context.Context, e entities.Enrollment, consentPDF []byte) error {
	if e.PatientEmail == "" {
		return fmt.Errorf("enrollment %s has no patient email", e.ID)
	}

	var htmlBody bytes.Buffer
	err := confirmationTemplate.Execute(&htmlBody, map[string]interface{}{
		"PatientName":   e.PatientName,
		"Amount":        fmt.Sprintf("%s %.2f", e.Currency, float64(e.AmountMinor)/100),
		"Reference":     e.ID,
		"HasAttachment": len(consentPDF) > 0,
	})
	if err != nil {
		return err
	}

	subject := "Payment confirmation"
	msg, err := buildMessage(m.sender, e.PatientEmail, subject, htmlBody.Bytes(), consentPDF)
	if err != nil {
		return err
	}

	if m.mockMode {
		log.Printf("[mail][infra] mock mode: skipping confirmation to %s (enrollment %s)", e.PatientEmail, e.ID)
		return nil
	}

	var auth smtp.Auth
	if m.username != "" && m.password != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	addr := fmt.Sprintf("%s:%s", m.host, m.port)
	if err := smtp.SendMail(addr, auth, m.sender, []string{e.PatientEmail}, msg); err != nil {
		log.Printf("[mail][infra] send error for enrollment %s: %v", e.ID, err)
		return err
	}
	log.Printf("[mail][infra] confirmation sent to %s for enrollment %s", e.PatientEmail, e.ID)
	return nil
}

// buildMessage assembles a multipart/mixed MIME message: the HTML body
// first, then the PDF attachment base64-encoded in 76-column lines.
func buildMessage(from, to, subject string, htmlBody, attachment []byte) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	buf.WriteString("MIME-Version: 1.0\r\n")

	if len(attachment) == 0 {
		buf.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
		buf.Write(htmlBody)
		return buf.Bytes(), nil
	}

	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%s\r\n\r\n", writer.Boundary())

	bodyHeader := textproto.MIMEHeader{}
	bodyHeader.Set("Content-Type", "text/html; charset=UTF-8")
	part, err := writer.CreatePart(bodyHeader)
	if err != nil {
		return nil, err
	}
	part.Write(htmlBody)

	attachHeader := textproto.MIMEHeader{}
	attachHeader.Set("Content-Type", "application/pdf")
	attachHeader.Set("Content-Transfer-Encoding", "base64")
	attachHeader.Set("Content-Disposition", `attachment; filename="consent-document.pdf"`)
	part, err = writer.CreatePart(attachHeader)
	if err != nil {
		return nil, err
	}
	encoded := base64.StdEncoding.EncodeToString(attachment)
	for len(encoded) > 0 {
		n := 76
		if len(encoded) < n {
			n = len(encoded)
		}
		part.Write([]byte(encoded[:n]))
		part.Write([]byte("\r\n"))
		encoded = encoded[n:]
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
