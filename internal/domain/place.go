package domain

// Place is one geocoding or nearby-places result.
type Place struct {
	Name       string   `json:"name,omitempty"`
	Formatted  string   `json:"formatted"`
	Lat        float64  `json:"lat"`
	Lon        float64  `json:"lon"`
	City       string   `json:"city,omitempty"`
	Country    string   `json:"country,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

// Photo is a cover photo candidate with its credit.
type Photo struct {
	URL          string `json:"url"`
	Photographer string `json:"photographer"`
	PhotoLink    string `json:"photoLink"`
}
