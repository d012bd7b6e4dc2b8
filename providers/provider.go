package providers

import "strings"

type SearchMode string

const (
	ModeProximity SearchMode = "proximity"
	ModeExact     SearchMode = "exact"
	ModeText      SearchMode = "text"
)

type Provider struct {
	ID            int64    `json:"id"`
	PlaceID       string   `json:"place_id,omitempty"`
	Name          string   `json:"name"`
	Phone         string   `json:"phone,omitempty"`
	Website       string   `json:"website,omitempty"`
	Address       string   `json:"address,omitempty"`
	City          string   `json:"city"`
	StateCode     string   `json:"state_code"`
	PostalCode    string   `json:"postal_code,omitempty"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	Rating        float64  `json:"rating,omitempty"`
	Reviews       int      `json:"reviews"`
	Slug          string   `json:"provider_slug"`
	CitySlug      string   `json:"city_slug"`
	DistanceMiles *float64 `json:"distance_miles,omitempty"`
}

// CityURL is the canonical page of the city this provider belongs to.
func (p Provider) CityURL() string {
	return "/" + strings.ToLower(p.StateCode) + "/" + p.CitySlug
}

type City struct {
	Name          string  `json:"city"`
	StateCode     string  `json:"state_code"`
	Slug          string  `json:"city_slug"`
	ProviderCount int     `json:"provider_count"`
	Latitude      float64 `json:"latitude,omitempty"`
	Longitude     float64 `json:"longitude,omitempty"`
}

func (c City) URL() string {
	return "/" + strings.ToLower(c.StateCode) + "/" + c.Slug
}

// StateURL is the canonical page of a state, e.g. "/nj".
func StateURL(code string) string {
	return "/" + strings.ToLower(code)
}

type SearchResponse struct {
	Count   int        `json:"count"`
	Mode    SearchMode `json:"mode"`
	Label   string     `json:"label,omitempty"`
	Results []Provider `json:"results"`
}

type SuggestionType string

const (
	SuggestionCity  SuggestionType = "city"
	SuggestionState SuggestionType = "state"
	SuggestionZip   SuggestionType = "zip"
)

type Suggestion struct {
	Type     SuggestionType `json:"type"`
	Label    string         `json:"label"`
	Sublabel string         `json:"sublabel,omitempty"`
	Href     string         `json:"href"`
	Count    int            `json:"count,omitempty"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}
