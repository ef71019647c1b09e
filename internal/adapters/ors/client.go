package ors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.openrouteservice.org"

// Client talks to OpenRouteService for geocoding and driving directions.
//
// It implements both ports.Geocoder and ports.RouteProvider. Every call is
// attempted exactly once; fallback on failure is the caller's concern.
// The client is safe for concurrent use.
type Client struct {
	session *http.Client
	apiKey  string
	baseURL string
	profile string
	country string
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.session = h }
}

// WithCountry restricts geocoding results to an ISO country code; empty disables it.
func WithCountry(code string) Option {
	return func(c *Client) { c.country = code }
}

func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}

	c := &Client{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		profile: "driving-car",
		country: "US",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// normalize collapses whitespace so equivalent addresses produce the same query.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

func (c *Client) newRequest(
	ctx context.Context,
	method string,
	url string,
	body io.Reader,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// do sends req and converts error statuses into *httpStatusError.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}
