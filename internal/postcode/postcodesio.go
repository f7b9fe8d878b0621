package postcode

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/bbernstein/nearbystops/internal/models"
	"github.com/bbernstein/nearbystops/pkg/http/client"
)

// API Docs: https://postcodes.io/docs
// Sample request: https://api.postcodes.io/postcodes/SW1A1AA
const (
	DefaultBaseURL = "https://api.postcodes.io"
	source         = "postcodes.io"
)

type PostcodesIOGeocoder struct {
	httpClient client.Interface
	baseURL    string
}

func NewPostcodesIOGeocoder(httpClient client.Interface, baseURL string) *PostcodesIOGeocoder {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &PostcodesIOGeocoder{
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// Resolve looks up a postcode that has already had its whitespace removed.
// The postcode is placed in the path as-is; invalid postcodes are left for the
// service to reject.
func (g *PostcodesIOGeocoder) Resolve(ctx context.Context, postcode string) (models.Coordinate, error) {
	requestURL, err := client.BuildURL(g.baseURL, "postcodes/"+postcode, nil)
	if err != nil {
		return models.Coordinate{}, err
	}

	body, err := g.httpClient.Fetch(ctx, requestURL)
	if err != nil {
		return models.Coordinate{}, err
	}

	var lookupResp struct {
		Result *struct {
			Latitude  *float64 `json:"latitude"`
			Longitude *float64 `json:"longitude"`
		} `json:"result"`
	}

	if err := json.Unmarshal(body, &lookupResp); err != nil {
		return models.Coordinate{}, client.NewMalformedResponseError(source, "decoding response", err)
	}
	if lookupResp.Result == nil {
		return models.Coordinate{}, client.NewMalformedResponseError(source, "missing result", nil)
	}
	if lookupResp.Result.Latitude == nil || lookupResp.Result.Longitude == nil {
		return models.Coordinate{}, client.NewMalformedResponseError(source, "missing result.latitude or result.longitude", nil)
	}

	coordinate := models.Coordinate{
		Latitude:  *lookupResp.Result.Latitude,
		Longitude: *lookupResp.Result.Longitude,
	}

	zerolog.Ctx(ctx).Debug().
		Str("postcode", postcode).
		Float64("lat", coordinate.Latitude).
		Float64("lon", coordinate.Longitude).
		Msg("Resolved postcode")

	return coordinate, nil
}
