// Package nominatim provides a narrow client for the OpenStreetMap Nominatim
// geocoding service: reverse lookup, bounded keyword search, and forward
// search.
//
// Nominatim is public, keyless, and rate limited; its usage policy requires a
// descriptive client identifier on every request, so the User-Agent is a
// constructor argument rather than an option, and all calls share one
// limiter (default 1 req/s).
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/tsurispot/geoaudit/internal/resilience"
)

// DefaultBaseURL is the public Nominatim instance.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// Client defines the geo-lookup operations used by the location verifier.
type Client interface {
	// Reverse looks up descriptive place information for a coordinate.
	Reverse(ctx context.Context, lat, lng float64) (*Place, error)

	// BoundedSearch searches for a keyword strictly inside a viewbox.
	BoundedSearch(ctx context.Context, query string, box Viewbox, limit int) ([]Place, error)

	// ForwardSearch searches for a free-text query country-wide.
	ForwardSearch(ctx context.Context, query string, limit int) ([]Place, error)
}

// Place is one Nominatim result (format=jsonv2).
type Place struct {
	PlaceID     int64             `json:"place_id"`
	Lat         string            `json:"lat"`
	Lon         string            `json:"lon"`
	Category    string            `json:"category"`
	Type        string            `json:"type"`
	DisplayName string            `json:"display_name"`
	Address     map[string]string `json:"address"`
	ExtraTags   map[string]string `json:"extratags"`
	NameDetails map[string]string `json:"namedetails"`
	Error       string            `json:"error"`
}

// Viewbox is a lng/lat rectangle for bounded searches.
type Viewbox struct {
	MinLng float64
	MinLat float64
	MaxLng float64
	MaxLat float64
}

// String renders the viewbox in Nominatim's x1,y1,x2,y2 order.
func (v Viewbox) String() string {
	return fmt.Sprintf("%g,%g,%g,%g", v.MinLng, v.MinLat, v.MaxLng, v.MaxLat)
}

// Around returns a viewbox of ±delta degrees around a coordinate.
func Around(lat, lng, delta float64) Viewbox {
	return Viewbox{
		MinLng: lng - delta,
		MinLat: lat - delta,
		MaxLng: lng + delta,
		MaxLat: lat + delta,
	}
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (self-hosted instance, tests).
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit sets the requests-per-second limit shared by all calls.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithAcceptLanguage sets the Accept-Language hint sent on every request.
func WithAcceptLanguage(lang string) Option {
	return func(c *httpClient) {
		c.acceptLanguage = lang
	}
}

// WithCountryCodes restricts forward searches to the given comma-separated
// ISO country codes.
func WithCountryCodes(codes string) Option {
	return func(c *httpClient) {
		c.countryCodes = codes
	}
}

// WithRetryConfig overrides the retry policy for transient failures.
func WithRetryConfig(cfg resilience.RetryConfig) Option {
	return func(c *httpClient) {
		c.retry = cfg
	}
}

type httpClient struct {
	baseURL        string
	userAgent      string
	acceptLanguage string
	countryCodes   string
	http           *http.Client
	limiter        *rate.Limiter
	retry          resilience.RetryConfig
}

// NewClient creates a Nominatim client. userAgent must be a descriptive
// identifier with contact information, per the service usage policy.
func NewClient(userAgent string, opts ...Option) (Client, error) {
	if userAgent == "" {
		return nil, eris.New("nominatim: a descriptive user agent is required")
	}
	c := &httpClient{
		baseURL:        DefaultBaseURL,
		userAgent:      userAgent,
		acceptLanguage: "ja",
		countryCodes:   "jp",
		http: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(1, 1), // Nominatim policy: max 1 req/s
		retry:   resilience.DefaultRetryConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// get performs one rate-limited GET with bounded retries on transient
// failures. 4xx responses other than 408/429 are permanent and returned
// immediately.
func (c *httpClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	reqURL := c.baseURL + path + "?" + params.Encode()

	return resilience.DoVal(ctx, c.retry, func(ctx context.Context) ([]byte, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "nominatim: rate limit wait")
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, eris.Wrap(err, "nominatim: create request")
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept-Language", c.acceptLanguage)

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, eris.Wrap(err, "nominatim: request")
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, eris.Wrap(err, "nominatim: read response")
		}

		if resp.StatusCode != http.StatusOK {
			err := eris.Errorf("nominatim: status %d: %s", resp.StatusCode, string(body))
			if resilience.IsTransientHTTPStatus(resp.StatusCode) {
				return nil, resilience.NewTransientError(err, resp.StatusCode)
			}
			return nil, err
		}
		return body, nil
	})
}

func (c *httpClient) Reverse(ctx context.Context, lat, lng float64) (*Place, error) {
	params := url.Values{
		"lat":            {formatCoord(lat)},
		"lon":            {formatCoord(lng)},
		"format":         {"jsonv2"},
		"addressdetails": {"1"},
		"extratags":      {"1"},
		"namedetails":    {"1"},
		"zoom":           {"18"},
	}

	body, err := c.get(ctx, "/reverse", params)
	if err != nil {
		return nil, err
	}

	var place Place
	if err := json.Unmarshal(body, &place); err != nil {
		return nil, eris.Wrap(err, "nominatim: unmarshal reverse response")
	}
	// Open water and unmapped areas come back as an error-shaped 200.
	if place.Error != "" {
		return nil, eris.Errorf("nominatim: reverse lookup failed: %s", place.Error)
	}
	return &place, nil
}

func (c *httpClient) BoundedSearch(ctx context.Context, query string, box Viewbox, limit int) ([]Place, error) {
	params := url.Values{
		"q":       {query},
		"format":  {"jsonv2"},
		"bounded": {"1"},
		"viewbox": {box.String()},
		"limit":   {strconv.Itoa(limit)},
	}

	body, err := c.get(ctx, "/search", params)
	if err != nil {
		return nil, err
	}

	var places []Place
	if err := json.Unmarshal(body, &places); err != nil {
		return nil, eris.Wrap(err, "nominatim: unmarshal search response")
	}
	return places, nil
}

func (c *httpClient) ForwardSearch(ctx context.Context, query string, limit int) ([]Place, error) {
	params := url.Values{
		"q":      {query},
		"format": {"jsonv2"},
		"limit":  {strconv.Itoa(limit)},
	}
	if c.countryCodes != "" {
		params.Set("countrycodes", c.countryCodes)
	}

	body, err := c.get(ctx, "/search", params)
	if err != nil {
		return nil, err
	}

	var places []Place
	if err := json.Unmarshal(body, &places); err != nil {
		return nil, eris.Wrap(err, "nominatim: unmarshal forward search response")
	}
	return places, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
