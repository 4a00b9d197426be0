package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance_IdenticalPointsIsZero(t *testing.T) {
	points := []Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: 51.4322, Lng: 6.7611},
		{Lat: -33.8688, Lng: 151.2093},
	}

	for _, p := range points {
		assert.Zero(t, Distance(p.Lat, p.Lng, p.Lat, p.Lng))
	}
}

func TestDistance_Symmetry(t *testing.T) {
	a := Coordinate{Lat: 51.4322, Lng: 6.7611}
	b := Coordinate{Lat: 51.2277, Lng: 6.7735}

	ab := Distance(a.Lat, a.Lng, b.Lat, b.Lng)
	ba := Distance(b.Lat, b.Lng, a.Lat, a.Lng)

	assert.InDelta(t, ab, ba, 1e-9)
}

func TestDistance_KnownDistance(t *testing.T) {
	// Duisburg to Düsseldorf, roughly 23 km as the crow flies.
	d := Distance(51.4322, 6.7611, 51.2277, 6.7735)
	assert.InDelta(t, 22.8, d, 1.0)
}

func TestDeliveryCharge_Tiers(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		want     float64
	}{
		{"negative distance is free", -1, 0},
		{"zero distance is free", 0, 0},
		{"short trip is low tier", 0.1, 2.00},
		{"mid trip is low tier", 8, 2.00},
		{"exactly 10 km is low tier", 10, 2.00},
		{"just over 10 km is high tier", 10.01, 3.00},
		{"long trip is high tier", 25, 3.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeliveryCharge(tt.distance))
		})
	}
}

func TestStubGeocoder_Deterministic(t *testing.T) {
	g := NewStubGeocoder(Coordinate{Lat: 51.4322, Lng: 6.7611})

	first, err := g.Geocode("Bahnhof str.119, 47137 Duisburg")
	require.NoError(t, err)

	second, err := g.Geocode("Bahnhof str.119, 47137 Duisburg")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestStubGeocoder_AddressDependent(t *testing.T) {
	g := NewStubGeocoder(Coordinate{Lat: 51.4322, Lng: 6.7611})

	a, err := g.Geocode("Musterstrasse 1")
	require.NoError(t, err)

	b, err := g.Geocode("Musterstrasse 2")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestStubGeocoder_OffsetWithinRange(t *testing.T) {
	base := Coordinate{Lat: 51.4322, Lng: 6.7611}
	g := NewStubGeocoder(base)

	addresses := []string{
		"a", "Hauptstrasse 5", "Lange Strasse 100, Duisburg",
		"Kurzweg 2", "Am Markt 7, 47137",
	}

	for _, addr := range addresses {
		loc, err := g.Geocode(addr)
		require.NoError(t, err)

		// Pseudo-distance is in [2,15) km, converted to a degree offset.
		offset := loc.Lat - base.Lat
		assert.GreaterOrEqual(t, offset, 2.0/111)
		assert.Less(t, offset, 15.0/111)
		assert.InDelta(t, offset, loc.Lng-base.Lng, 1e-9)
	}
}
