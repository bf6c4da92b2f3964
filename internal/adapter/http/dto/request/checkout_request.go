package request

// CheckoutRequest is the patient-facing payload submitted from the payment
// page. terms_accepted must be an explicit true; the signature is a base64
// PNG data URL from the signature pad and is optional.
//
// consent_user_agent is a fallback for clients whose User-Agent header is
// stripped in transit (embedded webviews behind some proxies); the transport
// header wins whenever it is present.
type CheckoutRequest struct {
	Token            string `json:"token" binding:"required"`
	TermsAccepted    bool   `json:"terms_accepted"`
	SignatureData    string `json:"signature_data"`
	ConsentUserAgent string `json:"consent_user_agent"`
}
