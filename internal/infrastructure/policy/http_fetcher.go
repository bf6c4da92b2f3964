package policy

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"paylink/internal/usecase/interfaces"
)

// maxPolicyBytes caps the fetched document; policy pages are small and a
// runaway body must not blow up rendering or hashing.
const maxPolicyBytes = 1 << 20

// HTTPPolicyFetcher retrieves the policy document behind an enrollment's
// terms URL. Callers treat failures as best-effort: resolution and rendering
// degrade to the stored version and hash.

type HTTPPolicyFetcher struct {
	client *http.Client
}

var _ interfaces.IPolicyFetcher = (*HTTPPolicyFetcher)(nil)

func NewHTTPPolicyFetcher() *HTTPPolicyFetcher {
	return &HTTPPolicyFetcher{client: &http.Client{Timeout: 5 * time.Second}}
}

func (f *HTTPPolicyFetcher) Fetch(ctx context.Context, termsURL string) (string, error) {
	if termsURL == "" {
		return "", fmt.Errorf("empty terms url")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, termsURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/html, text/plain")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("policy fetch %s returned %d", termsURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPolicyBytes))
	if err != nil {
		return "", err
	}
	return string(body), nil
}
