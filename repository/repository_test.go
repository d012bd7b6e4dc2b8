package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/therealharsh/backflow-tester-sub001/providers"
)

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%hoboken%", likePattern("hoboken"))
	assert.Equal(t, `%100\% Plumbing%`, likePattern("100% Plumbing"))
	assert.Equal(t, `%a\_b%`, likePattern("a_b"))
	assert.Equal(t, `%c:\\temp%`, likePattern(`c:\temp`))
}

func TestRankByDistance(t *testing.T) {
	d := func(v float64) *float64 { return &v }
	list := []providers.Provider{
		{Name: "far", DistanceMiles: d(12.5), Reviews: 90},
		{Name: "near-few", DistanceMiles: d(1.5), Reviews: 2},
		{Name: "tied-popular", DistanceMiles: d(4.0), Reviews: 50},
		{Name: "tied-quiet", DistanceMiles: d(4.0), Reviews: 3},
	}

	rankByDistance(list)

	assert.Equal(t, "near-few", list[0].Name)
	assert.Equal(t, "tied-popular", list[1].Name)
	assert.Equal(t, "tied-quiet", list[2].Name)
	assert.Equal(t, "far", list[3].Name)

	for i := 1; i < len(list); i++ {
		assert.LessOrEqual(t, *list[i-1].DistanceMiles, *list[i].DistanceMiles)
	}
}

func TestProximityQueryUsesBoundingBox(t *testing.T) {
	box := providers.BoxAround(40.7128, -74.0060, 25)

	// The window must stay a prefilter wider than the radius circle.
	assert.Less(t, box.SwLat, 40.7128)
	assert.Greater(t, box.NeLat, 40.7128)
	assert.InDelta(t, 25.0, providers.Haversine(40.7128, -74.0060, box.NeLat, -74.0060), 1e-6)
}
