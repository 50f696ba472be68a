package external

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/ustinerary/planner/internal/domain"
)

// DefaultGeoapifyURL is the public Geoapify API.
const DefaultGeoapifyURL = "https://api.geoapify.com"

const (
	nearbyRadiusMeters = 5000
	nearbyPageSize     = 10
)

// Geoapify geocodes destinations and lists places around a point.
type Geoapify struct {
	client
}

// NewGeoapify constructs a Geoapify client. Without an API key every lookup
// returns ErrUnavailable.
func NewGeoapify(o Options) *Geoapify {
	return &Geoapify{client: newClient(o, DefaultGeoapifyURL)}
}

type featureCollection struct {
	Features []struct {
		Properties struct {
			Name       string   `json:"name"`
			Formatted  string   `json:"formatted"`
			Lat        float64  `json:"lat"`
			Lon        float64  `json:"lon"`
			City       string   `json:"city"`
			Country    string   `json:"country"`
			Categories []string `json:"categories"`
		} `json:"properties"`
	} `json:"features"`
}

func (fc featureCollection) places() []domain.Place {
	out := make([]domain.Place, 0, len(fc.Features))
	for _, f := range fc.Features {
		p := f.Properties
		out = append(out, domain.Place{
			Name:       p.Name,
			Formatted:  p.Formatted,
			Lat:        p.Lat,
			Lon:        p.Lon,
			City:       p.City,
			Country:    p.Country,
			Categories: p.Categories,
		})
	}
	return out
}

// Geocode returns address suggestions for free text.
func (g *Geoapify) Geocode(ctx context.Context, text string) ([]domain.Place, error) {
	text = strings.TrimSpace(text)
	if g.apiKey == "" || text == "" {
		return nil, ErrUnavailable
	}
	q := url.Values{}
	q.Set("text", text)
	q.Set("apiKey", g.apiKey)

	var fc featureCollection
	if err := g.getJSON(ctx, g.baseURL+"/v1/geocode/autocomplete?"+q.Encode(), nil, &fc); err != nil {
		return nil, fmt.Errorf("external.Geoapify.Geocode: %w", err)
	}
	return fc.places(), nil
}

// Nearby returns one page of places of category within 5 km of lat/lon,
// biased towards the centre.
func (g *Geoapify) Nearby(ctx context.Context, lat, lon float64, category string, offset int) ([]domain.Place, error) {
	if g.apiKey == "" || category == "" {
		return nil, ErrUnavailable
	}
	point := strconv.FormatFloat(lon, 'f', -1, 64) + "," + strconv.FormatFloat(lat, 'f', -1, 64)

	q := url.Values{}
	q.Set("categories", category)
	q.Set("filter", "circle:"+point+","+strconv.Itoa(nearbyRadiusMeters))
	q.Set("bias", "proximity:"+point)
	q.Set("limit", strconv.Itoa(nearbyPageSize))
	q.Set("offset", strconv.Itoa(offset))
	q.Set("apiKey", g.apiKey)

	var fc featureCollection
	if err := g.getJSON(ctx, g.baseURL+"/v2/places?"+q.Encode(), nil, &fc); err != nil {
		return nil, fmt.Errorf("external.Geoapify.Nearby: %w", err)
	}
	return fc.places(), nil
}
