package geocoder

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	log "github.com/therealharsh/backflow-tester-sub001/pkg/logger"
)

const defaultTimeout = time.Second * 5

// GeoPoint is the single best-guess coordinate for a free-text query.
// Request-scoped, never persisted.
type GeoPoint struct {
	Latitude  float64
	Longitude float64
	Label     string
}

// Client wraps a Nominatim-style geocoding endpoint. Results are
// restricted to the US and only the top-ranked hit is kept.
type Client struct {
	baseURL string
	client  *fasthttp.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &fasthttp.Client{},
	}
}

// Geocode resolves free text to a coordinate. Every failure mode
// (blank input, network error, non-2xx, empty or malformed payload)
// collapses to nil; callers treat nil as "continue without coordinates".
func (c *Client) Geocode(ctx context.Context, query string) *GeoPoint {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("countrycodes", "us")
	params.Set("limit", "1")

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.SetRequestURI(c.baseURL + "/search?" + params.Encode())

	res := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(res)

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(defaultTimeout)
	}

	if err := c.client.DoDeadline(req, res, deadline); err != nil {
		log.Logger().Debug("geocode request failed", zap.String("query", query), zap.Error(err))
		return nil
	}

	if res.StatusCode() != fasthttp.StatusOK {
		log.Logger().Debug("geocode non-ok status", zap.String("query", query), zap.Int("status", res.StatusCode()))
		return nil
	}

	return parseResponse(res.Body())
}

// Nominatim returns lat/lon as JSON strings.
type place struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func parseResponse(body []byte) *GeoPoint {
	var places []place
	if err := jsoniter.Unmarshal(body, &places); err != nil {
		log.Logger().Debug("geocode malformed payload", zap.Error(err))
		return nil
	}
	if len(places) == 0 {
		return nil
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return nil
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return nil
	}

	return &GeoPoint{
		Latitude:  lat,
		Longitude: lon,
		Label:     places[0].DisplayName,
	}
}
