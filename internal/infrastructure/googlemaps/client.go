package googlemaps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/skate-scout/internal/config"
	"github.com/skate-scout/internal/domain"
	"github.com/skate-scout/internal/domain/repository"
)

const (
	directionsEndpoint = "/directions/json"
	elevationEndpoint  = "/elevation/json"
	geocodeEndpoint    = "/geocode/json"

	statusOK = "OK"
)

// StatusError - провайдер ответил, но статус не OK (ZERO_RESULTS, REQUEST_DENIED, ...)
type StatusError struct {
	Endpoint string
	Status   string
	Message  string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("maps API %s returned %s: %s", e.Endpoint, e.Status, e.Message)
	}
	return fmt.Sprintf("maps API %s returned %s", e.Endpoint, e.Status)
}

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	mode       string
	logger     *zap.Logger
}

// NewClient создает клиент Google Maps web services (directions, elevation, geocode)
func NewClient(cfg *config.MapsConfig, logger *zap.Logger) repository.MapsRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		mode:    cfg.TravelMode,
		logger:  logger,
	}
}

type textValue struct {
	Value float64 `json:"value"`
	Text  string  `json:"text"`
}

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type directionsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		Summary          string `json:"summary"`
		OverviewPolyline struct {
			Points string `json:"points"`
		} `json:"overview_polyline"`
		Legs []struct {
			Distance      textValue `json:"distance"`
			Duration      textValue `json:"duration"`
			StartLocation latLng    `json:"start_location"`
			EndLocation   latLng    `json:"end_location"`
			Steps         []struct {
				Maneuver         string    `json:"maneuver"`
				HTMLInstructions string    `json:"html_instructions"`
				Distance         textValue `json:"distance"`
				Duration         textValue `json:"duration"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

type elevationResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Elevation float64 `json:"elevation"`
		Location  latLng  `json:"location"`
	} `json:"results"`
}

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location latLng `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Directions возвращает маршруты провайдера. Не-OK статус - ошибка.
func (c *client) Directions(ctx context.Context, query domain.DirectionsQuery) ([]*domain.Route, error) {
	if query.Origin.IsZero() || query.Destination.IsZero() {
		return nil, fmt.Errorf("origin and destination cannot be empty")
	}

	params := url.Values{}
	params.Set("origin", query.Origin.String())
	params.Set("destination", query.Destination.String())
	params.Set("mode", c.mode)
	if query.Alternatives {
		params.Set("alternatives", "true")
	}
	if query.Waypoint != nil {
		params.Set("waypoints", fmt.Sprintf("%.6f,%.6f", query.Waypoint.Lat, query.Waypoint.Lng))
	}

	var resp directionsResponse
	if err := c.get(ctx, directionsEndpoint, params, &resp); err != nil {
		return nil, err
	}
	if resp.Status != statusOK {
		c.logger.Warn("Directions API returned non-OK status",
			zap.String("status", resp.Status),
			zap.String("message", resp.ErrorMessage))
		return nil, &StatusError{Endpoint: directionsEndpoint, Status: resp.Status, Message: resp.ErrorMessage}
	}

	routes := make([]*domain.Route, 0, len(resp.Routes))
	for i, r := range resp.Routes {
		route := &domain.Route{
			Index:    i,
			Type:     domain.RouteTypeRegular,
			Summary:  r.Summary,
			Polyline: r.OverviewPolyline.Points,
			Legs:     make([]domain.Leg, 0, len(r.Legs)),
		}
		for _, l := range r.Legs {
			leg := domain.Leg{
				DistanceMeters:  l.Distance.Value,
				DurationSeconds: l.Duration.Value,
				StartLocation:   domain.Coordinate{Lat: l.StartLocation.Lat, Lng: l.StartLocation.Lng},
				EndLocation:     domain.Coordinate{Lat: l.EndLocation.Lat, Lng: l.EndLocation.Lng},
				Steps:           make([]domain.Step, 0, len(l.Steps)),
			}
			for _, s := range l.Steps {
				leg.Steps = append(leg.Steps, domain.Step{
					Maneuver:        s.Maneuver,
					Instruction:     s.HTMLInstructions,
					DistanceMeters:  s.Distance.Value,
					DurationSeconds: s.Duration.Value,
				})
			}
			route.Legs = append(route.Legs, leg)
		}
		routes = append(routes, route)
	}

	c.logger.Debug("Directions API call successful",
		zap.String("origin", query.Origin.String()),
		zap.String("destination", query.Destination.String()),
		zap.Bool("waypoint", query.Waypoint != nil),
		zap.Int("routes", len(routes)))

	return routes, nil
}

// Elevation возвращает высоту одной точки в метрах
func (c *client) Elevation(ctx context.Context, point domain.Coordinate) (float64, error) {
	params := url.Values{}
	params.Set("locations", fmt.Sprintf("%.6f,%.6f", point.Lat, point.Lng))

	var resp elevationResponse
	if err := c.get(ctx, elevationEndpoint, params, &resp); err != nil {
		return 0, err
	}
	if resp.Status != statusOK {
		return 0, &StatusError{Endpoint: elevationEndpoint, Status: resp.Status, Message: resp.ErrorMessage}
	}
	if len(resp.Results) == 0 {
		return 0, &StatusError{Endpoint: elevationEndpoint, Status: "ZERO_RESULTS"}
	}

	return resp.Results[0].Elevation, nil
}

// Geocode возвращает координату первого результата
func (c *client) Geocode(ctx context.Context, address string) (domain.Coordinate, error) {
	if strings.TrimSpace(address) == "" {
		return domain.Coordinate{}, fmt.Errorf("address cannot be empty")
	}

	params := url.Values{}
	params.Set("address", address)

	var resp geocodeResponse
	if err := c.get(ctx, geocodeEndpoint, params, &resp); err != nil {
		return domain.Coordinate{}, err
	}
	if resp.Status != statusOK {
		c.logger.Warn("Geocoding API returned non-OK status",
			zap.String("address", address),
			zap.String("status", resp.Status))
		return domain.Coordinate{}, &StatusError{Endpoint: geocodeEndpoint, Status: resp.Status, Message: resp.ErrorMessage}
	}
	if len(resp.Results) == 0 {
		return domain.Coordinate{}, &StatusError{Endpoint: geocodeEndpoint, Status: "ZERO_RESULTS"}
	}

	loc := resp.Results[0].Geometry.Location
	return domain.Coordinate{Lat: loc.Lat, Lng: loc.Lng}, nil
}

// get выполняет GET и декодирует JSON. Ключ API в логи не попадает.
func (c *client) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	params.Set("key", c.apiKey)
	reqURL := c.baseURL + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		err = redactURLError(err)
		c.logger.Error("Failed to create request", zap.String("endpoint", endpoint), zap.Error(err))
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = redactURLError(err)
		c.logger.Error("Failed to execute request", zap.String("endpoint", endpoint), zap.Error(err))
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("Maps API returned error",
			zap.String("endpoint", endpoint),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return fmt.Errorf("maps API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("Failed to decode response", zap.String("endpoint", endpoint), zap.Error(err))
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// redactURLError убирает ключ API из *url.Error: net/http кладёт в него полный URL запроса
func redactURLError(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	return &url.Error{Op: urlErr.Op, URL: redactQuery(urlErr.URL), Err: urlErr.Err}
}

func redactQuery(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<redacted>"
	}
	q := u.Query()
	if q.Has("key") {
		q.Set("key", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
