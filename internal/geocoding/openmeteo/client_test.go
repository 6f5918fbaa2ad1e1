package openmeteo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudmagazine/cloudmagazine/internal/geocoding"
	"github.com/cloudmagazine/cloudmagazine/internal/geocoding/openmeteo"
	"github.com/cloudmagazine/cloudmagazine/internal/provider/resilience"
)

func newTestClient(serverURL string) *openmeteo.Client {
	return openmeteo.NewClient(openmeteo.ClientConfig{
		BaseURL:    serverURL,
		HTTPClient: resilience.NewClient(resilience.DefaultClientConfig("test")),
	})
}

func TestClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Paris", r.URL.Query().Get("name"))
		assert.Equal(t, "1", r.URL.Query().Get("count"))
		assert.Equal(t, "en", r.URL.Query().Get("language"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"results": [
				{"name": "Paris", "admin1": "Ile-de-France", "country": "France",
				 "latitude": 48.8566, "longitude": 2.3522}
			]
		}`))
	}))
	defer server.Close()

	places, err := newTestClient(server.URL).Search(context.Background(), "Paris", 1)
	require.NoError(t, err)
	require.Len(t, places, 1)

	assert.Equal(t, "Paris", places[0].Name)
	assert.Equal(t, "Ile-de-France", places[0].AdminRegion)
	assert.Equal(t, "France", places[0].Country)
	assert.Equal(t, 48.8566, places[0].Latitude)
	assert.Equal(t, 2.3522, places[0].Longitude)
}

func TestClient_Search_NoLimitOmitsCount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("count"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results": [
			{"name": "Springfield", "country": "United States", "latitude": 39.8, "longitude": -89.6},
			{"name": "Springfield", "country": "Canada", "latitude": 44.0, "longitude": -64.0}
		]}`))
	}))
	defer server.Close()

	places, err := newTestClient(server.URL).Search(context.Background(), "Springfield", 0)
	require.NoError(t, err)
	require.Len(t, places, 2)

	// Provider order is preserved.
	assert.Equal(t, "United States", places[0].Country)
	assert.Equal(t, "Canada", places[1].Country)
}

func TestClient_Search_ZeroResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// Open-Meteo omits the results key entirely when nothing matches.
		_, _ = w.Write([]byte(`{"generationtime_ms": 0.5}`))
	}))
	defer server.Close()

	places, err := newTestClient(server.URL).Search(context.Background(), "Zzzznotaplace", 1)
	require.NoError(t, err)
	assert.Empty(t, places)
}

func TestClient_Search_EmptyQuery(t *testing.T) {
	client := openmeteo.NewClient(openmeteo.ClientConfig{BaseURL: "http://localhost:0"})

	_, err := client.Search(context.Background(), "", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, geocoding.ErrEmptyQuery)
}

func TestClient_Search_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Search(context.Background(), "Paris", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding response")
}

func TestClient_Search_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Search(context.Background(), "Paris", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code")
}
