// Package lookup provides capabilities backed by external HTTP APIs,
// each with a canned fallback for when the dependency is unreachable.
package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/inletworks/capsule/capability"
)

// WeatherService queries an OpenWeatherMap-compatible endpoint for
// current conditions.
type WeatherService struct {
	endpoint string
	apiKey   string
	units    string
	client   *http.Client
}

// NewWeatherService creates a weather lookup against endpoint. The client
// should already handle retries and timeouts.
func NewWeatherService(client *http.Client, endpoint, apiKey, units string) *WeatherService {
	if client == nil {
		client = http.DefaultClient
	}
	return &WeatherService{
		endpoint: endpoint,
		apiKey:   apiKey,
		units:    units,
		client:   client,
	}
}

// Current fetches the weather for the city named in the arguments. An
// unreachable endpoint or a server-side failure is a transient fault.
func (s *WeatherService) Current(ctx context.Context, args map[string]any) (any, error) {
	city, _ := args["city"].(string)

	u, err := url.Parse(s.endpoint)
	if err != nil {
		return nil, fmt.Errorf("weather endpoint: %w", err)
	}
	q := u.Query()
	q.Set("q", city)
	q.Set("appid", s.apiKey)
	q.Set("units", s.units)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building weather request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, capability.Transient(fmt.Errorf("weather endpoint unreachable: %w", err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, capability.Transientf("weather endpoint returned %s", resp.Status)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("weather lookup failed: %s", resp.Status)
	}

	var payload struct {
		Name string `json:"name"`
		Sys  struct {
			Country string `json:"country"`
		} `json:"sys"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity int     `json:"humidity"`
			Pressure int     `json:"pressure"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding weather response: %w", err)
	}

	description := ""
	if len(payload.Weather) > 0 {
		description = payload.Weather[0].Description
	}

	return map[string]any{
		"city":        payload.Name,
		"country":     payload.Sys.Country,
		"temperature": payload.Main.Temp,
		"description": description,
		"humidity":    payload.Main.Humidity,
		"pressure":    payload.Main.Pressure,
	}, nil
}

// Demo conditions returned when the live endpoint is unavailable.
func (s *WeatherService) demo(ctx context.Context, args map[string]any) (any, error) {
	city, _ := args["city"].(string)
	return map[string]any{
		"city":        city,
		"temperature": 22.0,
		"description": "partly cloudy",
		"humidity":    65,
		"pressure":    1013,
	}, nil
}

// Capability returns the get_weather descriptor with the demo fallback
// wired in.
func (s *WeatherService) Capability() *capability.Descriptor {
	return &capability.Descriptor{
		Name:        "get_weather",
		Description: "Get current weather information for a city",
		Params: []capability.Param{
			{Name: "city", Required: true, Kind: capability.String},
		},
		Handler:  s.Current,
		Fallback: s.demo,
		Mode:     capability.ModeDetached,
	}
}
