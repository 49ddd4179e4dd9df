// Package weather wraps the OpenWeatherMap current-conditions API.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the OpenWeatherMap API endpoint
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// RequestTimeout bounds every weather lookup
const RequestTimeout = 5 * time.Second

// ErrNotFound is returned when the place name resolves to no location
var ErrNotFound = errors.New("weather: location not found")

// Report is the subset of current conditions used by the assistant
type Report struct {
	Name        string
	Country     string
	TempC       float64
	FeelsLikeC  float64
	HumidityPct int
	Description string
	WindSpeed   float64
}

// Client looks up current weather by place name
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option configures the Client
type Option func(*Client)

// WithBaseURL overrides the API endpoint, mainly for tests
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a weather client with the fixed 5-second request timeout
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: RequestTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type apiResponse struct {
	Name    string `json:"name"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Sys struct {
		Country string `json:"country"`
	} `json:"sys"`
}

// Current fetches current conditions for a place name, metric units,
// Vietnamese descriptions
func (c *Client) Current(ctx context.Context, place string) (*Report, error) {
	params := url.Values{}
	params.Set("q", place)
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")
	params.Set("lang", "vi")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("weather: failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather: request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("weather: unexpected status %d", resp.StatusCode)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("weather: failed to decode response: %w", err)
	}

	report := &Report{
		Name:        body.Name,
		Country:     body.Sys.Country,
		TempC:       body.Main.Temp,
		FeelsLikeC:  body.Main.FeelsLike,
		HumidityPct: body.Main.Humidity,
		WindSpeed:   body.Wind.Speed,
	}
	if len(body.Weather) > 0 {
		report.Description = body.Weather[0].Description
	}
	return report, nil
}

// Format renders the fixed multi-line weather block shown to the user
func (r *Report) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "🌤️ Thời tiết tại %s (%s):\n", r.Name, r.Country)
	fmt.Fprintf(&b, "- Nhiệt độ: %.0f°C (cảm giác như %.0f°C)\n", math.Round(r.TempC), math.Round(r.FeelsLikeC))
	fmt.Fprintf(&b, "- Độ ẩm: %d%%\n", r.HumidityPct)
	fmt.Fprintf(&b, "- Trời: %s\n", r.Description)
	fmt.Fprintf(&b, "- Gió: %.1f m/s", r.WindSpeed)
	return b.String()
}
