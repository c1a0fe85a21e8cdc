package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/geo"
)

// ErrNotFound is returned when the address could not be resolved. Callers
// treat it as a soft miss, never as a run failure.
var ErrNotFound = errors.New("address not found")

// Geocoder resolves a free-text address into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (geo.Point, error)
}

// DAWAClient resolves Danish addresses through the public DAWA service
// (api.dataforsyningen.dk). Responses use the "mini" structure which carries
// x/y as longitude/latitude.
type DAWAClient struct {
	baseURL     string
	maxAttempts int
	httpClient  *http.Client
}

func NewDAWAClient(baseURL string, maxAttempts int) *DAWAClient {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &DAWAClient{
		baseURL:     baseURL,
		maxAttempts: maxAttempts,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

type dawaAddress struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Geocode implements Geocoder. Transient failures are retried with
// exponential backoff (bounded by maxAttempts); an empty result set maps to
// ErrNotFound.
func (c *DAWAClient) Geocode(ctx context.Context, address string) (geo.Point, error) {
	if address == "" {
		return geo.Point{}, ErrNotFound
	}

	endpoint := fmt.Sprintf("%s/adresser?q=%s&struktur=mini&per_side=1",
		c.baseURL, url.QueryEscape(address))

	var lastErr error
	backoff := 250 * time.Millisecond

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		point, err := c.fetch(ctx, endpoint)
		if err == nil || errors.Is(err, ErrNotFound) {
			return point, err
		}
		lastErr = err

		slog.Warn("Geocoding attempt failed",
			"attempt", attempt,
			"max_attempts", c.maxAttempts,
			"error", err,
		)

		if attempt < c.maxAttempts {
			select {
			case <-ctx.Done():
				return geo.Point{}, ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
			}
		}
	}

	return geo.Point{}, fmt.Errorf("geocoding failed after %d attempts: %w", c.maxAttempts, lastErr)
}

func (c *DAWAClient) fetch(ctx context.Context, endpoint string) (geo.Point, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return geo.Point{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return geo.Point{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return geo.Point{}, fmt.Errorf("unexpected status %d from geocoder", resp.StatusCode)
	}

	var addresses []dawaAddress
	if err := json.NewDecoder(resp.Body).Decode(&addresses); err != nil {
		return geo.Point{}, fmt.Errorf("failed to decode geocoder response: %w", err)
	}

	if len(addresses) == 0 {
		return geo.Point{}, ErrNotFound
	}

	return geo.Point{Latitude: addresses[0].Y, Longitude: addresses[0].X}, nil
}
