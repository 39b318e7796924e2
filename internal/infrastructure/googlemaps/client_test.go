package googlemaps

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/skate-scout/internal/config"
	"github.com/skate-scout/internal/domain"
)

const directionsFixture = `{
  "status": "OK",
  "routes": [
    {
      "summary": "Ross St",
      "overview_polyline": {"points": "_p~iF~ps|U_ulLnnqC"},
      "legs": [
        {
          "distance": {"value": 850, "text": "0.5 mi"},
          "duration": {"value": 620, "text": "10 mins"},
          "start_location": {"lat": 30.6156, "lng": -96.3409},
          "end_location": {"lat": 30.6210, "lng": -96.3400},
          "steps": [
            {"html_instructions": "Head north", "distance": {"value": 300}, "duration": {"value": 220}},
            {"maneuver": "turn-left", "html_instructions": "Turn left", "distance": {"value": 550}, "duration": {"value": 400}}
          ]
        }
      ]
    },
    {
      "summary": "Lamar St",
      "overview_polyline": {"points": "_p~iF~ps|U"},
      "legs": [{"distance": {"value": 900}, "duration": {"value": 700}, "steps": []}]
    }
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.MapsConfig{
		APIKey:         "test_key",
		BaseURL:        server.URL,
		TravelMode:     "walking",
		RequestTimeout: 5,
	}
	return NewClient(cfg, zap.NewNop()).(*client)
}

func TestClient_Directions(t *testing.T) {
	t.Run("successful request", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, directionsEndpoint, r.URL.Path)
			q := r.URL.Query()
			assert.Equal(t, "Student Services Building", q.Get("origin"))
			assert.Equal(t, "30.621000,-96.340000", q.Get("destination"))
			assert.Equal(t, "walking", q.Get("mode"))
			assert.Equal(t, "true", q.Get("alternatives"))
			assert.Equal(t, "test_key", q.Get("key"))
			assert.Empty(t, q.Get("waypoints"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(directionsFixture))
		})

		routes, err := c.Directions(context.Background(), domain.DirectionsQuery{
			Origin:       domain.Location{Address: "Student Services Building"},
			Destination:  domain.Location{Coordinate: &domain.Coordinate{Lat: 30.621, Lng: -96.34}},
			Alternatives: true,
		})
		require.NoError(t, err)
		require.Len(t, routes, 2)

		first := routes[0]
		assert.Equal(t, 0, first.Index)
		assert.Equal(t, domain.RouteTypeRegular, first.Type)
		assert.Equal(t, "Ross St", first.Summary)
		assert.Equal(t, "_p~iF~ps|U_ulLnnqC", first.Polyline)
		require.Len(t, first.Legs, 1)
		assert.Equal(t, 850.0, first.Legs[0].DistanceMeters)
		assert.Equal(t, 620.0, first.Legs[0].DurationSeconds)
		require.Len(t, first.Legs[0].Steps, 2)
		assert.Equal(t, "turn-left", first.Legs[0].Steps[1].Maneuver)

		assert.Equal(t, 1, routes[1].Index)
	})

	t.Run("waypoint is forwarded", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "30.618000,-96.341000", r.URL.Query().Get("waypoints"))
			assert.Empty(t, r.URL.Query().Get("alternatives"))
			w.Write([]byte(directionsFixture))
		})

		_, err := c.Directions(context.Background(), domain.DirectionsQuery{
			Origin:      domain.Location{Address: "a"},
			Destination: domain.Location{Address: "b"},
			Waypoint:    &domain.Coordinate{Lat: 30.618, Lng: -96.341},
		})
		require.NoError(t, err)
	})

	t.Run("non-OK status", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"ZERO_RESULTS","routes":[]}`))
		})

		routes, err := c.Directions(context.Background(), domain.DirectionsQuery{
			Origin:      domain.Location{Address: "a"},
			Destination: domain.Location{Address: "b"},
		})
		assert.Nil(t, routes)

		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, "ZERO_RESULTS", statusErr.Status)
	})

	t.Run("http error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("upstream down"))
		})

		_, err := c.Directions(context.Background(), domain.DirectionsQuery{
			Origin:      domain.Location{Address: "a"},
			Destination: domain.Location{Address: "b"},
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "maps API error")
	})

	t.Run("empty origin", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Fail(t, "request must not be sent")
		})

		_, err := c.Directions(context.Background(), domain.DirectionsQuery{
			Destination: domain.Location{Address: "b"},
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be empty")
	})
}

func TestClient_Elevation(t *testing.T) {
	t.Run("successful request", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, elevationEndpoint, r.URL.Path)
			assert.Equal(t, "30.615600,-96.340900", r.URL.Query().Get("locations"))
			w.Write([]byte(`{"status":"OK","results":[{"elevation":102.5,"location":{"lat":30.6156,"lng":-96.3409}}]}`))
		})

		elevation, err := c.Elevation(context.Background(), domain.Coordinate{Lat: 30.6156, Lng: -96.3409})
		require.NoError(t, err)
		assert.Equal(t, 102.5, elevation)
	})

	t.Run("denied", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"REQUEST_DENIED","error_message":"API key invalid"}`))
		})

		_, err := c.Elevation(context.Background(), domain.Coordinate{Lat: 30.6, Lng: -96.3})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "API key invalid")
	})
}

func TestClient_Geocode(t *testing.T) {
	t.Run("successful request", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, geocodeEndpoint, r.URL.Path)
			assert.Equal(t, "Zachry Engineering", r.URL.Query().Get("address"))
			w.Write([]byte(`{"status":"OK","results":[{"formatted_address":"Zachry","geometry":{"location":{"lat":30.6210,"lng":-96.3400}}}]}`))
		})

		coord, err := c.Geocode(context.Background(), "Zachry Engineering")
		require.NoError(t, err)
		assert.Equal(t, domain.Coordinate{Lat: 30.621, Lng: -96.34}, coord)
	})

	t.Run("no results", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"OK","results":[]}`))
		})

		_, err := c.Geocode(context.Background(), "nowhere")
		assert.Error(t, err)
	})
}

func TestClient_TransportErrorHidesAPIKey(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	cfg := &config.MapsConfig{
		APIKey:         "SECRET-KEY-123",
		BaseURL:        "http://127.0.0.1:1",
		TravelMode:     "walking",
		RequestTimeout: 2,
	}
	c := NewClient(cfg, zap.New(core))

	_, err := c.Elevation(context.Background(), domain.Coordinate{Lat: 30.6156, Lng: -96.3409})
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "SECRET-KEY-123")
	assert.Contains(t, err.Error(), "/elevation/json")

	entries := logs.FilterMessage("Failed to execute request").All()
	require.Len(t, entries, 1)
	assert.NotContains(t, fmt.Sprint(entries[0].ContextMap()), "SECRET-KEY-123")
}
