package search

import (
	"context"

	"github.com/therealharsh/backflow-tester-sub001/providers"
)

// resolveRedirect maps an unambiguous query straight to a canonical
// page. An empty return is the normal "no unique destination" outcome,
// never an error; only store failures error out.
func (e *Engine) resolveRedirect(ctx context.Context, c Classification) (string, error) {
	switch c.Kind {
	case KindStateCode, KindStateName:
		return e.resolveState(ctx, c.StateCode)
	case KindZip:
		return e.resolveZip(ctx, c.Query)
	case KindCityState:
		return e.resolveUniqueCity(ctx, c.City, c.StateCode)
	default:
		return e.resolveUniqueCity(ctx, c.Query, "")
	}
}

// A state redirect requires a real code and at least one provider in
// the state. Unknown two-letter inputs fall through silently.
func (e *Engine) resolveState(ctx context.Context, code string) (string, error) {
	if _, ok := providers.StateName(code); !ok {
		return "", nil
	}

	count, err := e.dir.StateProviderCount(ctx, code)
	if err != nil {
		return "", err
	}
	if count == 0 {
		return "", nil
	}

	return providers.StateURL(code), nil
}

// A ZIP redirects to its city on an exact postal match. A miss falls
// through to the geocoded proximity pipeline; the resolver itself never
// geocodes, keeping redirects deterministic.
func (e *Engine) resolveZip(ctx context.Context, zip string) (string, error) {
	city, err := e.dir.CityByPostalCode(ctx, zip)
	if err != nil {
		return "", err
	}
	if city != nil {
		return city.URL(), nil
	}

	return "", nil
}

// resolveUniqueCity redirects only when exactly one city matches the
// substring; zero or multiple matches are left to the full search.
func (e *Engine) resolveUniqueCity(ctx context.Context, name, stateCode string) (string, error) {
	if name == "" {
		return "", nil
	}

	cities, err := e.dir.SearchCities(ctx, name, stateCode, 2)
	if err != nil {
		return "", err
	}
	if len(cities) != 1 {
		return "", nil
	}

	return cities[0].URL(), nil
}
