// Package payment answers "has this user paid for this tier?" against the
// Stripe API. Absence of a matching payment is a negative answer, not an
// error; only provider-communication failures (transport errors, malformed
// responses) surface as errors, and the caller treats those as a distinct
// failure from "unpaid".
package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.stripe.com"

// Verifier is the contract the report workflow depends on.
//
// Verify returns (true, nil) when the (userID, tier) pair has a successful
// payment on record, (false, nil) when it does not, and (false, err) only
// when the provider could not be consulted. Tier values below 2 are free and
// always verify without contacting the provider.
type Verifier interface {
	Verify(ctx context.Context, userID string, tier int) (bool, error)
}

// StripeVerifier checks for a succeeded PaymentIntent carrying the user and
// tier in its metadata. Payments are recorded by the checkout flow with
// metadata["user_id"] and metadata["tier"]; this verifier only reads them.
type StripeVerifier struct {
	// APIKey is the Stripe secret key used as a bearer credential.
	APIKey string
	// BaseURL overrides the Stripe endpoint (tests, mock servers).
	BaseURL string
	// HTTPClient is the transport; it owns the request timeout.
	HTTPClient *http.Client
}

// NewStripeVerifier constructs a verifier with a bounded-timeout HTTP client.
func NewStripeVerifier(apiKey, baseURL string, timeout time.Duration) *StripeVerifier {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &StripeVerifier{
		APIKey:     apiKey,
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// paymentIntentSearch mirrors the subset of Stripe's search response we read.
type paymentIntentSearch struct {
	Data []struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"data"`
}

// Verify implements Verifier.
//
// For tier < 2 it returns true unconditionally (free tier) without any
// provider call. For tier >= 2 it searches PaymentIntents by metadata and
// returns true iff at least one matching intent is in the "succeeded" state.
func (v *StripeVerifier) Verify(ctx context.Context, userID string, tier int) (bool, error) {
	if tier < 2 {
		return true, nil
	}

	q := url.Values{}
	q.Set("query", fmt.Sprintf(`metadata["user_id"]:"%s" AND metadata["tier"]:"%d"`, userID, tier))
	endpoint := fmt.Sprintf("%s/v1/payment_intents/search?%s", v.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("build payment search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+v.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := v.HTTPClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("payment provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return false, fmt.Errorf("read payment provider response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("payment provider returned status %d", resp.StatusCode)
	}

	var out paymentIntentSearch
	if err := json.Unmarshal(body, &out); err != nil {
		return false, fmt.Errorf("malformed payment provider response: %w", err)
	}

	for _, pi := range out.Data {
		if pi.Status == "succeeded" {
			return true, nil
		}
	}
	// No successful payment on record: a plain negative, not an error.
	return false, nil
}
