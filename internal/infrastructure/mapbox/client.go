package mapbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
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
	codeOK = "Ok"

	// terrainTileset - контурные линии высот, свойство ele в метрах
	terrainTileset = "mapbox.mapbox-terrain-v2"
)

type client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	profile     string
	logger      *zap.Logger
}

// NewMapboxClient создает провайдера маршрутов на Mapbox Directions, Geocoding и Tilequery
func NewMapboxClient(cfg *config.MapsConfig, logger *zap.Logger) repository.MapsRepository {
	profile := cfg.TravelMode
	if !strings.Contains(profile, "/") {
		profile = "mapbox/" + profile
	}

	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		accessToken: cfg.APIKey,
		profile:     profile,
		logger:      logger,
	}
}

type directionsResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Geometry string  `json:"geometry"`
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Legs     []struct {
			Summary  string  `json:"summary"`
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
			Steps    []struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
				Maneuver struct {
					Type        string    `json:"type"`
					Modifier    string    `json:"modifier"`
					Instruction string    `json:"instruction"`
					Location    []float64 `json:"location"`
				} `json:"maneuver"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

type featureCollection struct {
	Message  string `json:"message"`
	Features []struct {
		Center     []float64 `json:"center"`
		Properties struct {
			Ele *float64 `json:"ele"`
		} `json:"properties"`
	} `json:"features"`
}

// Directions - адреса геокодируются заранее: Mapbox Directions принимает только координаты
func (c *client) Directions(ctx context.Context, query domain.DirectionsQuery) ([]*domain.Route, error) {
	if query.Origin.IsZero() || query.Destination.IsZero() {
		return nil, fmt.Errorf("origin and destination cannot be empty")
	}

	origin, err := c.coordinate(ctx, query.Origin)
	if err != nil {
		return nil, err
	}
	destination, err := c.coordinate(ctx, query.Destination)
	if err != nil {
		return nil, err
	}

	points := []domain.Coordinate{origin}
	if query.Waypoint != nil {
		points = append(points, *query.Waypoint)
	}
	points = append(points, destination)

	coords := make([]string, 0, len(points))
	for _, p := range points {
		coords = append(coords, fmt.Sprintf("%f,%f", p.Lng, p.Lat))
	}

	params := url.Values{}
	params.Set("geometries", "polyline")
	params.Set("overview", "full")
	params.Set("steps", "true")
	if query.Alternatives {
		params.Set("alternatives", "true")
	}

	path := fmt.Sprintf("/directions/v5/%s/%s", c.profile, strings.Join(coords, ";"))

	var resp directionsResponse
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, err
	}
	if resp.Code != codeOK {
		c.logger.Warn("Mapbox Directions returned non-Ok code",
			zap.String("code", resp.Code),
			zap.String("message", resp.Message))
		return nil, fmt.Errorf("mapbox API returned code: %s", resp.Code)
	}

	routes := make([]*domain.Route, 0, len(resp.Routes))
	for i, r := range resp.Routes {
		route := &domain.Route{
			Index:    i,
			Type:     domain.RouteTypeRegular,
			Polyline: r.Geometry,
			Legs:     make([]domain.Leg, 0, len(r.Legs)),
		}
		for li, l := range r.Legs {
			if route.Summary == "" {
				route.Summary = l.Summary
			}
			leg := domain.Leg{
				DistanceMeters:  l.Distance,
				DurationSeconds: l.Duration,
				StartLocation:   points[li],
				EndLocation:     points[li+1],
				Steps:           make([]domain.Step, 0, len(l.Steps)),
			}
			for _, s := range l.Steps {
				leg.Steps = append(leg.Steps, domain.Step{
					Maneuver:        ManeuverLabel(s.Maneuver.Type, s.Maneuver.Modifier),
					Instruction:     s.Maneuver.Instruction,
					DistanceMeters:  s.Distance,
					DurationSeconds: s.Duration,
				})
			}
			route.Legs = append(route.Legs, leg)
		}
		routes = append(routes, route)
	}

	c.logger.Debug("Mapbox Directions call successful",
		zap.String("profile", c.profile),
		zap.Bool("waypoint", query.Waypoint != nil),
		zap.Int("routes", len(routes)))

	return routes, nil
}

// Elevation - максимум ele среди контуров в точке (разрешение контуров 10 м)
func (c *client) Elevation(ctx context.Context, point domain.Coordinate) (float64, error) {
	params := url.Values{}
	params.Set("layers", "contour")
	params.Set("limit", "50")

	path := fmt.Sprintf("/v4/%s/tilequery/%f,%f.json", terrainTileset, point.Lng, point.Lat)

	var resp featureCollection
	if err := c.get(ctx, path, params, &resp); err != nil {
		return 0, err
	}

	elevation := math.Inf(-1)
	for _, f := range resp.Features {
		if f.Properties.Ele != nil && *f.Properties.Ele > elevation {
			elevation = *f.Properties.Ele
		}
	}
	if math.IsInf(elevation, -1) {
		return 0, fmt.Errorf("mapbox tilequery returned no elevation for %f,%f", point.Lat, point.Lng)
	}

	return elevation, nil
}

func (c *client) Geocode(ctx context.Context, address string) (domain.Coordinate, error) {
	if strings.TrimSpace(address) == "" {
		return domain.Coordinate{}, fmt.Errorf("address cannot be empty")
	}

	params := url.Values{}
	params.Set("limit", "1")

	path := fmt.Sprintf("/geocoding/v5/mapbox.places/%s.json", url.PathEscape(address))

	var resp featureCollection
	if err := c.get(ctx, path, params, &resp); err != nil {
		return domain.Coordinate{}, err
	}
	if len(resp.Features) == 0 || len(resp.Features[0].Center) < 2 {
		c.logger.Warn("Mapbox Geocoding returned no results", zap.String("address", address))
		return domain.Coordinate{}, fmt.Errorf("mapbox geocoding found no results for %q", address)
	}

	center := resp.Features[0].Center
	return domain.Coordinate{Lat: center[1], Lng: center[0]}, nil
}

func (c *client) coordinate(ctx context.Context, loc domain.Location) (domain.Coordinate, error) {
	if loc.Coordinate != nil {
		return *loc.Coordinate, nil
	}
	return c.Geocode(ctx, loc.Address)
}

// ManeuverLabel приводит манёвр Mapbox (type + modifier) к метке вида turn-left,
// fork-right, roundabout-left, по которой считаются повороты
func ManeuverLabel(maneuverType, modifier string) string {
	modifier = strings.ReplaceAll(strings.TrimSpace(modifier), " ", "-")

	var base string
	switch maneuverType {
	case "turn", "end of road", "on ramp", "off ramp":
		base = "turn"
	case "fork":
		base = "fork"
	case "roundabout", "rotary", "roundabout turn", "exit roundabout", "exit rotary":
		base = "roundabout"
	default:
		return ""
	}

	switch {
	case modifier == "" || modifier == "straight":
		if base == "turn" {
			return ""
		}
		return base
	case modifier == "uturn":
		return "uturn"
	default:
		return base + "-" + modifier
	}
}

// get выполняет GET и декодирует JSON. Токен в логи не попадает.
func (c *client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	params.Set("access_token", c.accessToken)
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		err = redactURLError(err)
		c.logger.Error("Failed to create request", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = redactURLError(err)
		c.logger.Error("Failed to execute request", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("Mapbox API returned error",
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return fmt.Errorf("mapbox API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("Failed to decode response", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// redactURLError убирает токен из *url.Error: net/http кладёт в него полный URL запроса
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
	if q.Has("access_token") {
		q.Set("access_token", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
