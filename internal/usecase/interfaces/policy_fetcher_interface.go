package interfaces

import "context"

// IPolicyFetcher retrieves the full policy text behind an enrollment's
// terms_url, for link resolution and consent-document rendering.

type IPolicyFetcher interface {
	Fetch(ctx context.Context, termsURL string) (string, error)
}
