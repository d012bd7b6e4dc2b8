package search

import (
	"context"

	"github.com/therealharsh/backflow-tester-sub001/geocoder"
	"github.com/therealharsh/backflow-tester-sub001/providers"
)

const (
	primaryRadiusMiles = 25.0
	widenedRadiusMiles = 50.0
	proximityLimit     = 30
	textLimit          = 24
)

// Directory is the read-only view of the provider store the pipeline
// depends on.
type Directory interface {
	StateProviderCount(ctx context.Context, stateCode string) (int, error)
	CityByPostalCode(ctx context.Context, postalCode string) (*providers.City, error)
	SearchCities(ctx context.Context, name, stateCode string, limit int) ([]providers.City, error)
	ProvidersNear(ctx context.Context, lat, lon, radiusMiles float64, limit int) ([]providers.Provider, error)
	SearchProviders(ctx context.Context, query string, limit int) ([]providers.Provider, error)
	ProvidersByPostalCode(ctx context.Context, postalCode string, limit int) ([]providers.Provider, error)
}

type Geocoder interface {
	Geocode(ctx context.Context, query string) *geocoder.GeoPoint
}

// Result is a non-redirect search outcome. Label names the location the
// results relate to (geocoder display name, or the raw query for text
// matches).
type Result struct {
	Mode      providers.SearchMode
	Label     string
	Providers []providers.Provider
}

// Outcome is either a redirect to a canonical page or a result set,
// never both.
type Outcome struct {
	Redirect       string
	Result         *Result
	Classification Classification
}

// Engine runs the query-resolution pipeline: deterministic redirect
// resolution first, then geocode, proximity with one radius widening,
// and finally text fallback. Both the search page and the suggest
// endpoint share its classifier so the two surfaces cannot diverge.
type Engine struct {
	dir     Directory
	geo     Geocoder
	metrics *Metrics
}

func NewEngine(dir Directory, geo Geocoder, metrics *Metrics) *Engine {
	return &Engine{
		dir:     dir,
		geo:     geo,
		metrics: metrics,
	}
}

// Search resolves one query. The only error path is a directory store
// failure; no-match conditions at every stage fall through to the next.
func (e *Engine) Search(ctx context.Context, rawQuery string) (*Outcome, error) {
	c := Classify(rawQuery)
	out := &Outcome{Classification: c}

	if c.Query == "" {
		out.Result = &Result{Mode: providers.ModeText, Providers: []providers.Provider{}}
		return out, nil
	}

	redirect, err := e.resolveRedirect(ctx, c)
	if err != nil {
		return nil, err
	}
	if redirect != "" {
		e.metrics.countRedirect(c.Kind)
		out.Redirect = redirect
		return out, nil
	}

	result, err := e.fullSearch(ctx, c)
	if err != nil {
		return nil, err
	}

	e.metrics.countSearch(string(result.Mode))
	out.Result = result
	return out, nil
}

// fullSearch is the proximity path: geocode, 25 then 50 mile lookups,
// then substring fallback. ZIP queries that could not be geocoded fall
// back to exact postal matching only, never substring.
func (e *Engine) fullSearch(ctx context.Context, c Classification) (*Result, error) {
	if pt := e.geo.Geocode(ctx, c.Query); pt != nil {
		e.metrics.countGeocode(true)
		for _, radius := range []float64{primaryRadiusMiles, widenedRadiusMiles} {
			near, err := e.dir.ProvidersNear(ctx, pt.Latitude, pt.Longitude, radius, proximityLimit)
			if err != nil {
				return nil, err
			}
			if len(near) > 0 {
				return &Result{Mode: providers.ModeProximity, Label: pt.Label, Providers: near}, nil
			}
		}
	} else {
		e.metrics.countGeocode(false)
	}

	if c.Kind == KindZip {
		exact, err := e.dir.ProvidersByPostalCode(ctx, c.Query, textLimit)
		if err != nil {
			return nil, err
		}
		return &Result{Mode: providers.ModeExact, Label: c.Query, Providers: emptySafe(exact)}, nil
	}

	matches, err := e.dir.SearchProviders(ctx, c.Query, textLimit)
	if err != nil {
		return nil, err
	}
	return &Result{Mode: providers.ModeText, Label: c.Query, Providers: emptySafe(matches)}, nil
}

func emptySafe(list []providers.Provider) []providers.Provider {
	if list == nil {
		return []providers.Provider{}
	}
	return list
}
