package pdf

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"paylink/internal/domain/entities"
	"paylink/internal/usecase/interfaces"

	"github.com/jung-kurt/gofpdf"
)

// ConsentRenderer produces the consent-document PDF: a metadata table
// binding patient, amount, policy version and consent evidence to the
// payment, followed by the full policy text and the captured signature.

type ConsentRenderer struct {
	title string
}

var _ interfaces.IConsentRenderer = (*ConsentRenderer)(nil)

func NewConsentRenderer(title string) *ConsentRenderer {
	if title == "" {
		title = "Payment Enrollment Consent"
	}
	return &ConsentRenderer{title: title}
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)
var blankLines = regexp.MustCompile(`\n{3,}`)

func (r *ConsentRenderer) Render(e entities.Enrollment, policyText string, signaturePNG []byte) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle(r.title, true)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 10, r.title, "", 1, "C", false, 0, "")
	doc.Ln(4)

	// The document carries the payment timestamp when the enrollment is
	// settled; otherwise the acceptance timestamp is the authoritative one.
	confirmedAt := e.TermsAcceptedAt
	confirmedLabel := "Consent recorded at"
	if e.PaidAt != nil {
		confirmedAt = e.PaidAt
		confirmedLabel = "Payment confirmed at"
	}

	rows := [][2]string{
		{"Patient", e.PatientName},
		{"Email", e.PatientEmail},
		{"Amount", formatAmount(e.AmountMinor, e.Currency)},
		{"Policy version", e.TermsVersion},
		{"Policy content hash", e.TermsContentHash},
		{"Consent IP", e.ConsentIP},
		{"Consent user agent", e.ConsentUserAgent},
		{confirmedLabel, formatTime(confirmedAt)},
		{"Reference", e.ID},
	}

	doc.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(50, 7, row[0], "1", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 10)
		doc.MultiCell(0, 7, row[1], "1", "L", false)
	}
	doc.Ln(6)

	if policyText != "" {
		doc.SetFont("Helvetica", "B", 12)
		doc.CellFormat(0, 8, "Agreed Terms", "", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 9)
		doc.MultiCell(0, 4.5, StripMarkup(policyText), "", "L", false)
		doc.Ln(6)
	}

	if len(signaturePNG) > 0 {
		doc.SetFont("Helvetica", "B", 12)
		doc.CellFormat(0, 8, "Signature", "", 1, "L", false, 0, "")
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		doc.RegisterImageOptionsReader("signature", opts, bytes.NewReader(signaturePNG))
		doc.ImageOptions("signature", doc.GetX(), doc.GetY(), 80, 0, true, opts, 0, "")
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// StripMarkup flattens stored policy HTML into plain text suitable for the
// page-width wrap: tags removed, entities decoded, runs of blank lines
// collapsed.
func StripMarkup(s string) string {
	s = strings.ReplaceAll(s, "<br>", "\n")
	s = strings.ReplaceAll(s, "<br/>", "\n")
	s = strings.ReplaceAll(s, "</p>", "\n\n")
	s = tagPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = blankLines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

func formatAmount(minor int64, currency string) string {
	return fmt.Sprintf("%s %.2f", currency, float64(minor)/100)
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
