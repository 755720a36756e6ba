package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Result of a single link probe. StatusCode is zero when no response was received.
type Result struct {
	StatusCode int
	Err        error
}

func (r Result) Responded() bool {
	return r.StatusCode != 0
}

func (r Result) Alive() bool {
	return r.StatusCode == http.StatusOK
}

func (r Result) Gone() bool {
	return r.StatusCode == http.StatusNotFound
}

type Client struct {
	httpClient HTTPClient
	timeout    time.Duration
	userAgent  string
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		timeout:    timeout,
		userAgent:  "Mozilla/5.0 (compatible; talent-jobs-link-checker/1.0)",
	}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

// Check issues a GET to link. Redirects are followed by the underlying client.
func (c *Client) Check(ctx context.Context, link string) Result {

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return Result{Err: fmt.Errorf("error creating request: %w", err)}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{Err: fmt.Errorf("error sending request: %w", err)}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	return Result{StatusCode: resp.StatusCode}
}
