// Package nominatim provides a rate-limited client for Nominatim-style
// geocoding endpoints.
package nominatim

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/gedtools/gedplace/internal/resilience"
)

const (
	// DefaultBaseURL is the public Nominatim search endpoint.
	DefaultBaseURL = "https://nominatim.openstreetmap.org/search"

	// DefaultUserAgent identifies the tool, as the public instance requires.
	DefaultUserAgent = "gedplace-geocoder"

	// DefaultInterval is the pause the public instance's usage policy asks
	// for: at most one request per second.
	DefaultInterval = time.Second
)

// Client geocodes free-text place strings against a Nominatim endpoint.
type Client interface {
	// Geocode resolves one address, optionally restricted to an ISO 3166
	// alpha-2 country code ("" for no restriction). A no-match answer is
	// (Matched: false, nil error); errors are transport or server failures.
	Geocode(ctx context.Context, address, countryCode string) (*Result, error)
}

// Result holds the provider output for one address. Everything beyond the
// coordinates is passthrough metadata, kept as strings and never
// interpreted.
type Result struct {
	Latitude    float64
	Longitude   float64
	Matched     bool
	DisplayName string
	PlaceID     string
	Class       string
	Type        string
	Icon        string
	Importance  string
	BoundingBox string
}

// Option configures the client.
type Option func(*client)

// WithBaseURL points the client at a different endpoint (self-hosted
// instance, test server).
func WithBaseURL(u string) Option {
	return func(c *client) { c.baseURL = u }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) { c.httpClient = hc }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *client) { c.userAgent = ua }
}

// WithRateInterval sets the minimum pause between requests.
func WithRateInterval(interval time.Duration) Option {
	return func(c *client) {
		if interval > 0 {
			c.limiter = rate.NewLimiter(rate.Every(interval), 1)
		}
	}
}

type client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a Client with the public-instance defaults.
func NewClient(opts ...Option) Client {
	c := &client{
		baseURL:    DefaultBaseURL,
		userAgent:  DefaultUserAgent,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(DefaultInterval), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// searchResult is one element of the Nominatim search response. Numeric-ish
// fields vary between number and string across instances, hence json.Number
// and RawMessage.
type searchResult struct {
	PlaceID     json.Number     `json:"place_id"`
	Lat         string          `json:"lat"`
	Lon         string          `json:"lon"`
	DisplayName string          `json:"display_name"`
	Class       string          `json:"class"`
	Type        string          `json:"type"`
	Icon        string          `json:"icon"`
	Importance  json.Number     `json:"importance"`
	BoundingBox json.RawMessage `json:"boundingbox"`
}

func (c *client) Geocode(ctx context.Context, address, countryCode string) (*Result, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "nominatim: rate limit")
	}

	params := url.Values{
		"q":              {address},
		"format":         {"json"},
		"limit":          {"1"},
		"addressdetails": {"1"},
	}
	if countryCode != "" {
		params.Set("countrycodes", countryCode)
	}

	reqURL := c.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "nominatim: build request")
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "nominatim: request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		err := eris.Errorf("nominatim: returned status %d", resp.StatusCode)
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return nil, resilience.NewTransientError(err, resp.StatusCode)
		}
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "nominatim: read body")
	}

	var results []searchResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, eris.Wrap(err, "nominatim: parse response")
	}
	if len(results) == 0 {
		return &Result{Matched: false}, nil
	}

	first := results[0]
	lat, err := parseFloat(first.Lat)
	if err != nil {
		return nil, eris.Wrap(err, "nominatim: parse latitude")
	}
	lon, err := parseFloat(first.Lon)
	if err != nil {
		return nil, eris.Wrap(err, "nominatim: parse longitude")
	}

	return &Result{
		Latitude:    lat,
		Longitude:   lon,
		Matched:     true,
		DisplayName: first.DisplayName,
		PlaceID:     first.PlaceID.String(),
		Class:       first.Class,
		Type:        first.Type,
		Icon:        first.Icon,
		Importance:  first.Importance.String(),
		BoundingBox: boundingBoxString(first.BoundingBox),
	}, nil
}

func parseFloat(s string) (float64, error) {
	n := json.Number(s)
	return n.Float64()
}

// boundingBoxString flattens the boundingbox array into "s,n,w,e".
func boundingBoxString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var edges []json.Number
	if err := json.Unmarshal(raw, &edges); err != nil {
		return ""
	}
	out := ""
	for i, e := range edges {
		if i > 0 {
			out += ","
		}
		out += e.String()
	}
	return out
}
