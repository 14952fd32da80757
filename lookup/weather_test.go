package lookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inletworks/capsule/capability"
)

func TestWeatherCurrent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Lisbon", r.URL.Query().Get("q"))
		assert.Equal(t, "secret", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"name": "Lisbon",
			"sys": {"country": "PT"},
			"main": {"temp": 19.5, "humidity": 70, "pressure": 1018},
			"weather": [{"description": "clear sky"}]
		}`))
	}))
	defer ts.Close()

	svc := NewWeatherService(ts.Client(), ts.URL, "secret", "metric")

	result, err := svc.Current(context.Background(), map[string]any{"city": "Lisbon"})
	require.NoError(t, err)

	report := result.(map[string]any)
	assert.Equal(t, "Lisbon", report["city"])
	assert.Equal(t, "PT", report["country"])
	assert.Equal(t, 19.5, report["temperature"])
	assert.Equal(t, "clear sky", report["description"])
	assert.Equal(t, 70, report["humidity"])
}

func TestWeatherServerFailureIsTransient(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broke", http.StatusBadGateway)
	}))
	defer ts.Close()

	svc := NewWeatherService(ts.Client(), ts.URL, "secret", "metric")

	_, err := svc.Current(context.Background(), map[string]any{"city": "Lisbon"})
	require.Error(t, err)
	assert.True(t, capability.IsTransient(err))
}

func TestWeatherUnreachableIsTransient(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	svc := NewWeatherService(nil, url, "secret", "metric")

	_, err := svc.Current(context.Background(), map[string]any{"city": "Lisbon"})
	require.Error(t, err)
	assert.True(t, capability.IsTransient(err))
}

func TestWeatherClientErrorIsNotTransient(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer ts.Close()

	svc := NewWeatherService(ts.Client(), ts.URL, "wrong", "metric")

	_, err := svc.Current(context.Background(), map[string]any{"city": "Lisbon"})
	require.Error(t, err)
	assert.False(t, capability.IsTransient(err))
}

func TestWeatherFallbackThroughDispatcher(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	svc := NewWeatherService(nil, url, "secret", "metric")

	registry := capability.NewRegistry()
	require.NoError(t, registry.Register(svc.Capability()))
	dispatcher := capability.NewDispatcher(registry)

	env := dispatcher.Invoke(context.Background(), capability.Request{
		Operation: "get_weather",
		Arguments: map[string]any{"city": "Lisbon"},
	})

	require.True(t, env.Success)
	assert.Equal(t, capability.NoteFallback, env.Note)
	report := env.Payload.(map[string]any)
	assert.Equal(t, "Lisbon", report["city"])
	assert.Equal(t, "partly cloudy", report["description"])
}
