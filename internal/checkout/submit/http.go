// Package submit adapts the checkout.Submitter port to the order service's
// HTTP endpoint.
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jcmexdev/storefront-cart/internal/checkout"
)

// HTTPSubmitter POSTs the order payload as JSON.
type HTTPSubmitter struct {
	client   *http.Client
	endpoint string
}

// NewHTTPSubmitter targets the given order endpoint. client may be nil, in
// which case a client with a 10s timeout is used.
func NewHTTPSubmitter(client *http.Client, endpoint string) *HTTPSubmitter {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPSubmitter{client: client, endpoint: endpoint}
}

func (s *HTTPSubmitter) Submit(ctx context.Context, payload checkout.OrderPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("submit: marshal order payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("submit: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("submit: post order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("submit: order service returned %s", resp.Status)
	}
	return nil
}
