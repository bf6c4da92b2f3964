package response

// CheckoutResponse carries the processor-hosted session URL the payment page
// redirects to.
type CheckoutResponse struct {
	CheckoutURL string `json:"checkout_url"`
}

// WebhookAckResponse acknowledges a settlement callback. Processing outcome
// is deliberately not reflected: anything past signature verification acks.
type WebhookAckResponse struct {
	Received bool `json:"received"`
}

// ConsentDocumentResponse carries a short-lived presigned URL for the stored
// consent PDF.
type ConsentDocumentResponse struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in_seconds"`
}
