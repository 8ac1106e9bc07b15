package importer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// defaultTimeout bounds a single fetch when no timeout is configured.
const defaultTimeout = 30 * time.Second

// Client is a thin HTTP client for pulling JSON documents from
// caller-supplied import sources.
type Client struct {
	httpClient *http.Client
}

// NewClient creates an import HTTP client. A non-positive timeout
// falls back to the default.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchJSON performs an HTTP GET against url and returns the raw
// response body. Network failures and non-success responses surface
// as transport-kind ImportErrors.
func (c *Client) FetchJSON(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &ImportError{
			Kind:    KindTransport,
			Message: fmt.Sprintf("creating request: %v", err),
			Err:     err,
		}
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ImportError{
			Kind:    KindTransport,
			Message: fmt.Sprintf("executing request GET %s: %v", url, err),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ImportError{
			Kind:    KindTransport,
			Message: fmt.Sprintf("reading response body: %v", err),
			Err:     err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ImportError{
			Kind:    KindTransport,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("unexpected status %d on GET %s", resp.StatusCode, url),
		}
	}

	return body, nil
}
