package stoppoint

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/bbernstein/nearbystops/internal/models"
	"github.com/bbernstein/nearbystops/pkg/http/client"
)

// API Docs: https://api.tfl.gov.uk/swagger/ui/index.html#!/StopPoint/StopPoint_GetByGeoPoint
const (
	DefaultBaseURL   = "https://api.tfl.gov.uk"
	DefaultRadius    = 1000
	DefaultStopTypes = "NaptanPublicBusCoachTram"

	source = "tfl"
)

// Options configures the TfL stop search. AppID and AppKey are sent exactly as
// given, including when empty; the service decides whether to accept them.
type Options struct {
	BaseURL   string
	AppID     string
	AppKey    string
	Radius    int
	StopTypes string
}

type TfLStopLocator struct {
	httpClient client.Interface
	opts       Options
}

func NewTfLStopLocator(httpClient client.Interface, opts Options) *TfLStopLocator {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Radius == 0 {
		opts.Radius = DefaultRadius
	}
	if opts.StopTypes == "" {
		opts.StopTypes = DefaultStopTypes
	}

	return &TfLStopLocator{
		httpClient: httpClient,
		opts:       opts,
	}
}

// Nearby returns at most maxCount stops around coordinate, in the order the
// service reported them.
func (l *TfLStopLocator) Nearby(ctx context.Context, coordinate models.Coordinate, maxCount int) ([]models.StopPoint, error) {
	requestURL, err := client.BuildURL(l.opts.BaseURL, "StopPoint", l.queryParameters(coordinate))
	if err != nil {
		return nil, err
	}

	body, err := l.httpClient.Fetch(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	var searchResp struct {
		StopPoints []struct {
			NaptanID   string `json:"naptanId"`
			CommonName string `json:"commonName"`
		} `json:"stopPoints"`
	}

	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, client.NewMalformedResponseError(source, "decoding response", err)
	}
	// A missing or null collection decodes to nil; an empty array does not.
	if searchResp.StopPoints == nil {
		return nil, client.NewMalformedResponseError(source, "missing stopPoints", nil)
	}

	count := len(searchResp.StopPoints)
	if maxCount < count {
		count = max(maxCount, 0)
	}

	stops := make([]models.StopPoint, count)
	for i, s := range searchResp.StopPoints[:count] {
		stops[i] = models.StopPoint{
			ID:   s.NaptanID,
			Name: s.CommonName,
		}
	}

	zerolog.Ctx(ctx).Debug().
		Int("available", len(searchResp.StopPoints)).
		Int("count", len(stops)).
		Msg("Found nearby stops")

	return stops, nil
}

func (l *TfLStopLocator) queryParameters(coordinate models.Coordinate) []client.QueryParameter {
	return []client.QueryParameter{
		{Name: "stopTypes", Value: l.opts.StopTypes},
		{Name: "lat", Value: coordinate.Latitude},
		{Name: "lon", Value: coordinate.Longitude},
		{Name: "radius", Value: l.opts.Radius},
		{Name: "app_id", Value: l.opts.AppID},
		{Name: "app_key", Value: l.opts.AppKey},
	}
}
