package external

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ustinerary/planner/internal/domain"
)

// DefaultUnsplashURL is the public Unsplash API.
const DefaultUnsplashURL = "https://api.unsplash.com"

// Unsplash finds landmark cover photos.
type Unsplash struct {
	client
}

// NewUnsplash constructs an Unsplash client. Without an API key every lookup
// returns ErrUnavailable.
func NewUnsplash(o Options) *Unsplash {
	return &Unsplash{client: newClient(o, DefaultUnsplashURL)}
}

type unsplashSearch struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
		User struct {
			Name string `json:"name"`
		} `json:"user"`
		Links struct {
			HTML string `json:"html"`
		} `json:"links"`
	} `json:"results"`
}

// LandmarkPhoto searches for "<city> landmark" and returns the first
// landscape photo with its credit.
func (u *Unsplash) LandmarkPhoto(ctx context.Context, city, _ string) (domain.Photo, error) {
	city = strings.TrimSpace(city)
	if u.apiKey == "" || city == "" {
		return domain.Photo{}, ErrUnavailable
	}

	q := url.Values{}
	q.Set("query", city+" landmark")
	q.Set("orientation", "landscape")
	q.Set("per_page", "1")
	endpoint := u.baseURL + "/search/photos?" + q.Encode()

	header := http.Header{}
	header.Set("Authorization", "Client-ID "+u.apiKey)
	header.Set("Accept-Version", "v1")

	var body unsplashSearch
	if err := u.getJSON(ctx, endpoint, header, &body); err != nil {
		return domain.Photo{}, fmt.Errorf("external.Unsplash.LandmarkPhoto: %w", err)
	}
	if len(body.Results) == 0 || body.Results[0].URLs.Regular == "" {
		return domain.Photo{}, ErrNoResult
	}
	r := body.Results[0]
	return domain.Photo{URL: r.URLs.Regular, Photographer: r.User.Name, PhotoLink: r.Links.HTML}, nil
}
