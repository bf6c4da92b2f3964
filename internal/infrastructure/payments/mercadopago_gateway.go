package payments

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"

	"paylink/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/customer"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

// MercadoPagoGateway opens hosted checkout sessions (preferences) scoped to
// one enrollment and dedupes processor customers by email.

type MercadoPagoGateway struct {
	preferences preference.Client
	customers   customer.Client
	backURL     string
	webhookURL  string
	mockMode    bool
}

var _ interfaces.ICheckoutGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string) (*MercadoPagoGateway, error) {
	if isCheckoutGatewayMockEnabled() {
		log.Printf("[checkout][gateway] mock mode enabled")
		return &MercadoPagoGateway{mockMode: true}, nil
	}

	if accessToken == "" {
		log.Printf("[checkout][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Printf("[checkout][gateway] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Printf("[checkout][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{
		preferences: preference.NewClient(cfg),
		customers:   customer.NewClient(cfg),
		backURL:     os.Getenv("CHECKOUT_BACK_URL"),
		webhookURL:  os.Getenv("CHECKOUT_NOTIFICATION_URL"),
	}, nil
}

// FindOrCreateCustomer searches the processor by email and reuses the first
// match; a new customer is created only when none exists.
func (g *MercadoPagoGateway) FindOrCreateCustomer(ctx context.Context, email, name string) (string, error) {
	if g != nil && g.mockMode {
		return "cus_mock_" + uuid.NewString(), nil
	}
	if g == nil || g.customers == nil {
		return "", ErrMercadoPagoGatewayNotConfigured
	}

	search, err := g.customers.Search(ctx, customer.SearchRequest{
		Filters: map[string]string{"email": email},
	})
	if err != nil {
		log.Printf("[checkout][gateway] customer search failed err=%v", err)
		return "", err
	}
	if search != nil && len(search.Results) > 0 && search.Results[0].ID != "" {
		log.Printf("[checkout][gateway] customer dedupe hit customer_id=%s", search.Results[0].ID)
		return search.Results[0].ID, nil
	}

	first, last := splitName(name)
	created, err := g.customers.Create(ctx, customer.Request{
		Email:     email,
		FirstName: first,
		LastName:  last,
	})
	if err != nil {
		log.Printf("[checkout][gateway] customer create failed err=%v", err)
		return "", err
	}
	log.Printf("[checkout][gateway] customer created customer_id=%s", created.ID)
	return created.ID, nil
}

// CreateSession opens a hosted checkout with a single line item. The
// enrollment id and policy identifiers travel in metadata and in
// external_reference so settlement events correlate without a lookup.
func (g *MercadoPagoGateway) CreateSession(ctx context.Context, req interfaces.CheckoutSessionRequest) (interfaces.CheckoutSession, error) {
	if g != nil && g.mockMode {
		id := "sess_mock_" + uuid.NewString()
		log.Printf("[checkout][gateway] mock session created session_id=%s enrollment_id=%s", id, req.EnrollmentID)
		return interfaces.CheckoutSession{
			ID:  id,
			URL: "https://checkout.example/mock/" + id,
		}, nil
	}
	if g == nil || g.preferences == nil {
		return interfaces.CheckoutSession{}, ErrMercadoPagoGatewayNotConfigured
	}
	log.Printf("[checkout][gateway] session create start enrollment_id=%s amount_minor=%d %s", req.EnrollmentID, req.AmountMinor, req.Currency)

	expires := req.ExpiresAt.UTC()
	pref := preference.Request{
		Items: []preference.ItemRequest{
			{
				ID:         req.EnrollmentID,
				Title:      req.Description,
				Quantity:   1,
				CurrencyID: req.Currency,
				UnitPrice:  minorToMajor(req.AmountMinor),
			},
		},
		Payer: &preference.PayerRequest{
			Email: req.CustomerEmail,
		},
		ExternalReference: req.EnrollmentID,
		Expires:           true,
		ExpirationDateTo:  &expires,
		NotificationURL:   g.webhookURL,
		Metadata: map[string]any{
			"enrollment_id":         req.EnrollmentID,
			"processor_customer_id": req.CustomerID,
			"terms_version":         req.TermsVersion,
			"terms_content_hash":    req.TermsContentHash,
		},
	}
	if g.backURL != "" {
		pref.BackURLs = &preference.BackURLsRequest{
			Success: g.backURL,
			Pending: g.backURL,
			Failure: g.backURL,
		}
	}

	resp, err := g.preferences.Create(ctx, pref)
	if err != nil {
		log.Printf("[checkout][gateway] sdk preference create failed enrollment_id=%s err=%v", req.EnrollmentID, err)
		return interfaces.CheckoutSession{}, err
	}

	url := resp.InitPoint
	if url == "" {
		url = resp.SandboxInitPoint
	}
	log.Printf("[checkout][gateway] session create success session_id=%s", resp.ID)
	return interfaces.CheckoutSession{ID: resp.ID, URL: url}, nil
}

// minorToMajor converts integer minor units to the major-unit float the SDK
// expects. All supported currencies use two decimals.
func minorToMajor(minor int64) float64 {
	return float64(minor) / 100
}

func splitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func isCheckoutGatewayMockEnabled() bool {
	for _, key := range []string{"CHECKOUT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}
