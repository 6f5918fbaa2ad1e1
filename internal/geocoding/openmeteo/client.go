package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/cloudmagazine/cloudmagazine/internal/geocoding"
	"github.com/cloudmagazine/cloudmagazine/internal/provider/resilience"
)

const (
	// ProviderName identifies this geocoding provider.
	ProviderName = "openmeteo-geocoding"

	// DefaultBaseURL is the Open-Meteo geocoding API base URL.
	DefaultBaseURL = "https://geocoding-api.open-meteo.com/v1"

	// DefaultLanguage is the language hint sent with every search.
	DefaultLanguage = "en"
)

// ClientConfig holds configuration for the Open-Meteo geocoding client.
type ClientConfig struct {
	// BaseURL is the API base URL (optional, defaults to the public API).
	BaseURL string

	// Language is the language hint for place names (optional, defaults to "en").
	Language string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an Open-Meteo geocoding API client.
type Client struct {
	baseURL    string
	language   string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new Open-Meteo geocoding client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	language := cfg.Language
	if language == "" {
		language = DefaultLanguage
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}

	return &Client{
		baseURL:    baseURL,
		language:   language,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// Search returns the provider's ranked matches for a free-text place name.
// A limit of 0 leaves the result count to the provider. Zero matches returns an
// empty slice with a nil error, so callers can tell "not found" apart from a
// transport or decoding failure.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]geocoding.Place, error) {
	if query == "" {
		return nil, geocoding.ErrEmptyQuery
	}

	values := url.Values{}
	values.Set("name", query)
	values.Set("language", c.language)
	values.Set("format", "json")
	if limit > 0 {
		values.Set("count", strconv.Itoa(limit))
	}

	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, values.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var omResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&omResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return c.toPlaces(&omResp), nil
}

// toPlaces converts an Open-Meteo search response to domain models,
// preserving provider order.
func (c *Client) toPlaces(resp *searchResponse) []geocoding.Place {
	places := make([]geocoding.Place, 0, len(resp.Results))
	for _, r := range resp.Results {
		places = append(places, geocoding.Place{
			Name:        r.Name,
			AdminRegion: r.Admin1,
			Country:     r.Country,
			Latitude:    r.Latitude,
			Longitude:   r.Longitude,
		})
	}
	return places
}

// Open-Meteo geocoding API response structures.

type searchResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Admin1    string  `json:"admin1"`
		Country   string  `json:"country"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}
