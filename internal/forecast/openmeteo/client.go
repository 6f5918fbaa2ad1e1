package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/cloudmagazine/cloudmagazine/internal/forecast"
	"github.com/cloudmagazine/cloudmagazine/internal/provider/resilience"
)

const (
	// ProviderName identifies this forecast provider.
	ProviderName = "openmeteo-forecast"

	// DefaultBaseURL is the Open-Meteo forecast API base URL.
	DefaultBaseURL = "https://api.open-meteo.com/v1"
)

// Requested field sets. The provider returns these as parallel arrays keyed by
// day offset, with the timezone resolved automatically for the coordinate.
const (
	currentFields = "temperature_2m,relative_humidity_2m,apparent_temperature,is_day,weather_code,wind_speed_10m"
	dailyFields   = "weather_code,temperature_2m_max,temperature_2m_min"
)

// ClientConfig holds configuration for the Open-Meteo forecast client.
type ClientConfig struct {
	// BaseURL is the API base URL (optional, defaults to the public API).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an Open-Meteo forecast API client.
type Client struct {
	baseURL    string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new Open-Meteo forecast client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// GetSnapshot fetches current conditions and the daily forecast for a coordinate.
func (c *Client) GetSnapshot(ctx context.Context, lat, lon float64) (*forecast.Snapshot, error) {
	if err := forecast.ValidateCoordinates(lat, lon); err != nil {
		return nil, err
	}

	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%.4f", lat))
	values.Set("longitude", fmt.Sprintf("%.4f", lon))
	values.Set("current", currentFields)
	values.Set("daily", dailyFields)
	values.Set("timezone", "auto")

	reqURL := fmt.Sprintf("%s/forecast?%s", c.baseURL, values.Encode())

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

	var omResp forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&omResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	snapshot := c.toSnapshot(&omResp)
	if err := snapshot.Validate(); err != nil {
		return nil, err
	}

	return snapshot, nil
}

// toSnapshot converts an Open-Meteo forecast response to the domain model.
func (c *Client) toSnapshot(resp *forecastResponse) *forecast.Snapshot {
	return &forecast.Snapshot{
		Latitude:  resp.Latitude,
		Longitude: resp.Longitude,
		Timezone:  resp.Timezone,
		Current: forecast.Current{
			TemperatureC:         resp.Current.Temperature,
			HumidityPct:          resp.Current.Humidity,
			ApparentTemperatureC: resp.Current.ApparentTemperature,
			IsDay:                resp.Current.IsDay == 1,
			WeatherCode:          resp.Current.WeatherCode,
			WindSpeedKmh:         resp.Current.WindSpeed,
		},
		Daily: forecast.Daily{
			WeatherCodes: resp.Daily.WeatherCodes,
			TempMaxC:     resp.Daily.TempMax,
			TempMinC:     resp.Daily.TempMin,
		},
		FetchedAt: time.Now(),
	}
}

// Open-Meteo forecast API response structures.

type forecastResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	Current   struct {
		Temperature         float64 `json:"temperature_2m"`
		Humidity            float64 `json:"relative_humidity_2m"`
		ApparentTemperature float64 `json:"apparent_temperature"`
		IsDay               int     `json:"is_day"`
		WeatherCode         int     `json:"weather_code"`
		WindSpeed           float64 `json:"wind_speed_10m"`
	} `json:"current"`
	Daily struct {
		WeatherCodes []int     `json:"weather_code"`
		TempMax      []float64 `json:"temperature_2m_max"`
		TempMin      []float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}
