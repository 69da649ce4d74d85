package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxResponseBytes caps how much of a model API answer is read
const maxResponseBytes = 8 << 20

// APIError is a non-2xx answer from a model HTTP API
type APIError struct {
	Provider string
	Status   int
	Kind     string // error type reported by the API, if any
	Message  string
}

func (e *APIError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("%s API error (%d): %s - %s", e.Provider, e.Status, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s API error (%d): %s", e.Provider, e.Status, e.Message)
}

// errorDecoder extracts the error type and message from a failed response body
type errorDecoder func(body []byte) (kind, message string)

// jsonClient sends JSON requests to one provider's HTTP API
type jsonClient struct {
	provider  string
	http      *http.Client
	header    http.Header
	decodeErr errorDecoder
}

// do sends in (when non-nil) and decodes the answer into out
func (c jsonClient) do(ctx context.Context, method, url string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	for k, v := range c.header {
		req.Header[k] = v
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Provider: c.provider, Status: resp.StatusCode}
		if c.decodeErr != nil {
			apiErr.Kind, apiErr.Message = c.decodeErr(raw)
		}
		if apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(raw))
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
