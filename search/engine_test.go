package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/therealharsh/backflow-tester-sub001/geocoder"
	"github.com/therealharsh/backflow-tester-sub001/providers"
)

type stubDirectory struct {
	stateCounts map[string]int
	cityByZip   map[string]*providers.City
	cities      []providers.City
	byRadius    map[float64][]providers.Provider
	textMatches []providers.Provider
	zipMatches  map[string][]providers.Provider
	failWith    error
}

func (s *stubDirectory) StateProviderCount(_ context.Context, code string) (int, error) {
	if s.failWith != nil {
		return 0, s.failWith
	}
	return s.stateCounts[strings.ToUpper(code)], nil
}

func (s *stubDirectory) CityByPostalCode(_ context.Context, zip string) (*providers.City, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	return s.cityByZip[zip], nil
}

func (s *stubDirectory) SearchCities(_ context.Context, name, stateCode string, limit int) ([]providers.City, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	var out []providers.City
	for _, c := range s.cities {
		if !strings.Contains(strings.ToLower(c.Name), strings.ToLower(name)) {
			continue
		}
		if stateCode != "" && !strings.EqualFold(c.StateCode, stateCode) {
			continue
		}
		out = append(out, c)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *stubDirectory) ProvidersNear(_ context.Context, _, _ float64, radiusMiles float64, limit int) ([]providers.Provider, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	out := s.byRadius[radiusMiles]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *stubDirectory) SearchProviders(_ context.Context, query string, limit int) ([]providers.Provider, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	var out []providers.Provider
	for _, p := range s.textMatches {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) ||
			strings.Contains(strings.ToLower(p.City), strings.ToLower(query)) {
			out = append(out, p)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *stubDirectory) ProvidersByPostalCode(_ context.Context, zip string, limit int) ([]providers.Provider, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	out := s.zipMatches[zip]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type stubGeocoder struct {
	point *geocoder.GeoPoint
	calls int
}

func (s *stubGeocoder) Geocode(_ context.Context, query string) *geocoder.GeoPoint {
	if strings.TrimSpace(query) == "" {
		panic("geocoder called with blank query")
	}
	s.calls++
	return s.point
}

func milesAway(d float64) *float64 {
	return &d
}

func TestStateCodeRedirect(t *testing.T) {
	dir := &stubDirectory{stateCounts: map[string]int{"NJ": 12}}
	engine := NewEngine(dir, &stubGeocoder{}, nil)

	out, err := engine.Search(context.Background(), "nj")
	require.NoError(t, err)
	assert.Equal(t, "/nj", out.Redirect)
	assert.Nil(t, out.Result)
}

func TestStateNameRedirectMatchesCodeRedirect(t *testing.T) {
	dir := &stubDirectory{stateCounts: map[string]int{"NJ": 12}}
	engine := NewEngine(dir, &stubGeocoder{}, nil)

	byName, err := engine.Search(context.Background(), "new jersey")
	require.NoError(t, err)
	byCode, err := engine.Search(context.Background(), "NJ")
	require.NoError(t, err)

	assert.Equal(t, byCode.Redirect, byName.Redirect)
	assert.Equal(t, "/nj", byName.Redirect)
}

func TestEmptyStateFallsThrough(t *testing.T) {
	// A real code with zero providers is not a redirect target.
	dir := &stubDirectory{stateCounts: map[string]int{}}
	engine := NewEngine(dir, &stubGeocoder{}, nil)

	out, err := engine.Search(context.Background(), "wy")
	require.NoError(t, err)
	assert.Empty(t, out.Redirect)
	require.NotNil(t, out.Result)
	assert.Equal(t, providers.ModeText, out.Result.Mode)
}

func TestUnknownStateCodeNeverErrors(t *testing.T) {
	dir := &stubDirectory{}
	engine := NewEngine(dir, &stubGeocoder{}, nil)

	out, err := engine.Search(context.Background(), "xx")
	require.NoError(t, err)
	assert.Empty(t, out.Redirect)
}

func TestZipExactRedirect(t *testing.T) {
	dir := &stubDirectory{
		cityByZip: map[string]*providers.City{
			"07030": {Name: "Hoboken", StateCode: "NJ", Slug: "hoboken"},
		},
	}
	engine := NewEngine(dir, &stubGeocoder{}, nil)

	out, err := engine.Search(context.Background(), "07030")
	require.NoError(t, err)
	assert.Equal(t, "/nj/hoboken", out.Redirect)
}

func TestZipMissGeocodesToProximity(t *testing.T) {
	// "10019": no exact postal match, geocodable, providers within 25mi.
	geo := &stubGeocoder{point: &geocoder.GeoPoint{Latitude: 40.765, Longitude: -73.985, Label: "New York, NY 10019"}}
	dir := &stubDirectory{
		byRadius: map[float64][]providers.Provider{
			25: {
				{Name: "Midtown Backflow", City: "New York", StateCode: "NY", DistanceMiles: milesAway(1.2)},
				{Name: "Hudson RPZ Testing", City: "Weehawken", StateCode: "NJ", DistanceMiles: milesAway(2.8)},
			},
		},
	}
	engine := NewEngine(dir, geo, nil)

	out, err := engine.Search(context.Background(), "10019")
	require.NoError(t, err)
	assert.Empty(t, out.Redirect)
	require.NotNil(t, out.Result)
	assert.Equal(t, providers.ModeProximity, out.Result.Mode)
	assert.Equal(t, "New York, NY 10019", out.Result.Label)
	assert.Len(t, out.Result.Providers, 2)
}

func TestProximityResultsSortedByDistance(t *testing.T) {
	geo := &stubGeocoder{point: &geocoder.GeoPoint{Latitude: 40.7, Longitude: -74.0}}
	dir := &stubDirectory{
		byRadius: map[float64][]providers.Provider{
			25: {
				{Name: "A", DistanceMiles: milesAway(0.5)},
				{Name: "B", DistanceMiles: milesAway(3.1)},
				{Name: "C", DistanceMiles: milesAway(11.9)},
			},
		},
	}
	engine := NewEngine(dir, geo, nil)

	out, err := engine.Search(context.Background(), "downtown")
	require.NoError(t, err)
	require.NotNil(t, out.Result)
	for i := 1; i < len(out.Result.Providers); i++ {
		assert.LessOrEqual(t, *out.Result.Providers[i-1].DistanceMiles, *out.Result.Providers[i].DistanceMiles)
	}
}

func TestWidenedRadiusKeepsProximityMode(t *testing.T) {
	geo := &stubGeocoder{point: &geocoder.GeoPoint{Latitude: 44.5, Longitude: -110.0, Label: "rural"}}
	far := providers.Provider{Name: "Remote Valve Service", DistanceMiles: milesAway(41.0)}
	dir := &stubDirectory{
		byRadius: map[float64][]providers.Provider{
			25: nil,
			50: {far},
		},
	}
	engine := NewEngine(dir, geo, nil)

	out, err := engine.Search(context.Background(), "rural montana address")
	require.NoError(t, err)
	require.NotNil(t, out.Result)
	assert.Equal(t, providers.ModeProximity, out.Result.Mode)
	require.Len(t, out.Result.Providers, 1)
	assert.Equal(t, "Remote Valve Service", out.Result.Providers[0].Name)
}

func TestZipFallbackIsExactOnly(t *testing.T) {
	// Ungeocodable ZIP must not substring-match; it falls back to exact
	// postal equality.
	dir := &stubDirectory{
		zipMatches: map[string][]providers.Provider{
			"99999": {{Name: "Edge Case Plumbing", PostalCode: "99999"}},
		},
		textMatches: []providers.Provider{{Name: "99999 Discount Testing"}},
	}
	engine := NewEngine(dir, &stubGeocoder{}, nil)

	out, err := engine.Search(context.Background(), "99999")
	require.NoError(t, err)
	require.NotNil(t, out.Result)
	assert.Equal(t, providers.ModeExact, out.Result.Mode)
	require.Len(t, out.Result.Providers, 1)
	assert.Equal(t, "Edge Case Plumbing", out.Result.Providers[0].Name)
}

func TestCityStateUniqueRedirect(t *testing.T) {
	dir := &stubDirectory{
		cities: []providers.City{
			{Name: "Hoboken", StateCode: "NJ", Slug: "hoboken"},
			{Name: "Hoboken", StateCode: "GA", Slug: "hoboken"},
		},
	}
	engine := NewEngine(dir, &stubGeocoder{}, nil)

	out, err := engine.Search(context.Background(), "Hoboken, NJ")
	require.NoError(t, err)
	assert.Equal(t, "/nj/hoboken", out.Redirect)
}

func TestAmbiguousCityFallsThrough(t *testing.T) {
	dir := &stubDirectory{
		cities: []providers.City{
			{Name: "Springfield", StateCode: "IL", Slug: "springfield"},
			{Name: "Springfield", StateCode: "MO", Slug: "springfield"},
		},
	}
	engine := NewEngine(dir, &stubGeocoder{}, nil)

	out, err := engine.Search(context.Background(), "Springfield")
	require.NoError(t, err)
	assert.Empty(t, out.Redirect)
	require.NotNil(t, out.Result)
}

func TestUniqueFreeformCityRedirects(t *testing.T) {
	dir := &stubDirectory{
		cities: []providers.City{
			{Name: "Weehawken", StateCode: "NJ", Slug: "weehawken"},
		},
	}
	engine := NewEngine(dir, &stubGeocoder{}, nil)

	out, err := engine.Search(context.Background(), "weehawk")
	require.NoError(t, err)
	assert.Equal(t, "/nj/weehawken", out.Redirect)
}

func TestUngeocodableFreeformReturnsEmptyTextResult(t *testing.T) {
	// "Atlantis": unclassifiable, ungeocodable, no substring match.
	dir := &stubDirectory{}
	engine := NewEngine(dir, &stubGeocoder{}, nil)

	out, err := engine.Search(context.Background(), "Atlantis")
	require.NoError(t, err)
	assert.Empty(t, out.Redirect)
	require.NotNil(t, out.Result)
	assert.Equal(t, providers.ModeText, out.Result.Mode)
	assert.Empty(t, out.Result.Providers)
	assert.NotNil(t, out.Result.Providers)
}

func TestGeocodeFailureFallsBackToText(t *testing.T) {
	dir := &stubDirectory{
		textMatches: []providers.Provider{{Name: "Atlantic Backflow Specialists", City: "Atlantic City"}},
	}
	engine := NewEngine(dir, &stubGeocoder{point: nil}, nil)

	out, err := engine.Search(context.Background(), "atlantic")
	require.NoError(t, err)
	require.NotNil(t, out.Result)
	assert.Equal(t, providers.ModeText, out.Result.Mode)
	assert.Len(t, out.Result.Providers, 1)
}

func TestBlankQueryIsEmptyState(t *testing.T) {
	engine := NewEngine(&stubDirectory{}, &stubGeocoder{}, nil)

	out, err := engine.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, out.Redirect)
	require.NotNil(t, out.Result)
	assert.Empty(t, out.Result.Providers)
}

func TestStoreFailureSurfaces(t *testing.T) {
	dir := &stubDirectory{failWith: errors.New("connection refused")}
	engine := NewEngine(dir, &stubGeocoder{}, nil)

	_, err := engine.Search(context.Background(), "nj")
	assert.Error(t, err)
}
