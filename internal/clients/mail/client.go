package mail

import (
	"context"
	"fmt"
	"github.com/maxaizer/talent-jobs/internal/metrics"
	"github.com/pkg/errors"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"io"
	"net/http"
	"strings"
	"time"
)

const sendEndpoint = "/v3/mail/send"

var ErrInvalidMessage = errors.New("invalid message")

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client sends dynamic-template emails through the SendGrid v3 API.
type Client struct {
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
	apiKey      string
	baseURL     string
	from        string
}

func NewClient(apiKey, baseURL, from string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		from:       from,
	}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

func (c *Client) Send(ctx context.Context, message Message) error {

	if message.To == "" || message.TemplateID == "" {
		return fmt.Errorf("%w: recipient and template are required", ErrInvalidMessage)
	}

	request := sendgrid.GetRequest(c.apiKey, sendEndpoint, c.baseURL)
	request.Method = rest.Post
	request.Body = sgmail.GetRequestBody(message.toV3(c.from))

	resp, err := c.sendRequest(ctx, request)
	if err != nil {
		return err
	}

	log.Infof("mail with template %s sent to %s, status: %d, message id: %s",
		message.TemplateID, message.To, resp.StatusCode, resp.Header.Get("X-Message-Id"))
	metrics.EmailsSentCounter.WithLabelValues(message.TemplateID).Inc()
	return nil
}

func (c *Client) sendRequest(ctx context.Context, request rest.Request) (*http.Response, error) {

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := rest.BuildRequestObject(request)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	return c.handleResponse(resp)
}

func (c *Client) handleResponse(resp *http.Response) (*http.Response, error) {
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("request failed with status %v, body: %v", resp.StatusCode, string(respBody))
	}

	return resp, nil
}
