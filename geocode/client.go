// Package geocode resolves free-text addresses into coordinates via an
// external provider and caches every answer in the database.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/foodcart/backoffice/apperrors"
	"github.com/foodcart/backoffice/config"
	"github.com/foodcart/backoffice/models"
)

// ErrNotFound means the provider answered but had no match for the
// address. It is distinct from provider failure: a not-found address
// is cached, a failed call is not.
var ErrNotFound = errors.New("address not found")

// Client calls the geocoding provider. The API key is fixed at
// construction; nothing is read from the environment per call.
type Client struct {
	apikey  string
	baseURL string
	http    *http.Client
}

func NewClient(cfg config.GeocoderConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, &apperrors.ConfigError{Key: "GEOCODER_APIKEY"}
	}
	return &Client{
		apikey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// geocoderResponse mirrors the provider's payload. Each member carries
// a position string "longitude latitude" (longitude first).
type geocoderResponse struct {
	Response struct {
		GeoObjectCollection struct {
			FeatureMember []struct {
				GeoObject struct {
					Point struct {
						Pos string `json:"pos"`
					} `json:"Point"`
				} `json:"GeoObject"`
			} `json:"featureMember"`
		} `json:"GeoObjectCollection"`
	} `json:"response"`
}

// Geocode asks the provider for the address and returns the most
// relevant result, which the provider lists first. One request, no
// retries; a transient failure propagates for the caller to log and
// treat as an unknown location.
func (c *Client) Geocode(ctx context.Context, address string) (models.Point, error) {
	params := url.Values{}
	params.Set("geocode", address)
	params.Set("apikey", c.apikey)
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return models.Point{}, fmt.Errorf("failed to build geocoder request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return models.Point{}, &apperrors.ExternalServiceError{Service: "geocoder", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.Point{}, &apperrors.ExternalServiceError{
			Service: "geocoder",
			Err:     fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	var payload geocoderResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.Point{}, &apperrors.ExternalServiceError{Service: "geocoder", Err: err}
	}

	members := payload.Response.GeoObjectCollection.FeatureMember
	if len(members) == 0 {
		return models.Point{}, ErrNotFound
	}

	return parsePos(members[0].GeoObject.Point.Pos)
}

// parsePos is the single place where the provider's "lon lat" ordering
// is flipped into named fields.
func parsePos(pos string) (models.Point, error) {
	parts := strings.Fields(pos)
	if len(parts) != 2 {
		return models.Point{}, &apperrors.ExternalServiceError{
			Service: "geocoder",
			Err:     fmt.Errorf("malformed position %q", pos),
		}
	}

	lon, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return models.Point{}, &apperrors.ExternalServiceError{Service: "geocoder", Err: err}
	}
	lat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return models.Point{}, &apperrors.ExternalServiceError{Service: "geocoder", Err: err}
	}

	return models.Point{Lat: lat, Lon: lon}, nil
}
