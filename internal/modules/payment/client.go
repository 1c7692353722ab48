package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPClient submits charges to a remote gateway over JSON/HTTP. It honors
// the caller's context deadline and never retries: retry policy belongs to
// the checkout orchestrator, and a duplicate charge is worse than a reported
// failure.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	loggerf func(format string, args ...interface{})
}

func NewHTTPClient(baseURL string, loggerf func(format string, args ...interface{})) *HTTPClient {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &HTTPClient{
		baseURL: baseURL,
		// No client-level timeout: the per-call context carries the bound.
		client:  &http.Client{},
		loggerf: loggerf,
	}
}

func (c *HTTPClient) Submit(ctx context.Context, req ChargeRequest) (*ChargeResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode charge request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/charges", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build charge request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		c.loggerf("level=error msg=gateway request failed latency=%s err=%v", time.Since(start), err)
		return nil, fmt.Errorf("gateway request: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		c.loggerf("level=error msg=gateway returned non-2xx status=%d latency=%s", httpResp.StatusCode, time.Since(start))
		return nil, fmt.Errorf("gateway status %d", httpResp.StatusCode)
	}

	var out ChargeResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode charge response: %w", err)
	}
	c.loggerf("level=info msg=gateway charge resolved success=%t latency=%s", out.Success, time.Since(start))
	return &out, nil
}
