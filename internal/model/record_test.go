package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordKey_UsesRawText(t *testing.T) {
	a := GeoRecord{Lat: 35.658, Lng: 139.70, LatRaw: "35.658", LngRaw: "139.70"}
	b := GeoRecord{Lat: 35.658, Lng: 139.70, LatRaw: "35.6580", LngRaw: "139.70"}

	assert.Equal(t, "35.658,139.70", a.CoordKey())
	assert.NotEqual(t, a.CoordKey(), b.CoordKey())
}

func TestHasFiniteCoords(t *testing.T) {
	assert.True(t, GeoRecord{Lat: 35.0, Lng: 139.0}.HasFiniteCoords())
	assert.False(t, GeoRecord{Lat: math.NaN(), Lng: 139.0}.HasFiniteCoords())
	assert.False(t, GeoRecord{Lat: 35.0, Lng: math.Inf(1)}.HasFiniteCoords())
}

func TestRef(t *testing.T) {
	rec := GeoRecord{
		ID:        "spot-001",
		Name:      "城ヶ島",
		Slug:      "jogashima",
		Address:   "神奈川県三浦市",
		Lat:       35.135,
		Lng:       139.615,
		Partition: "spots-kanto.ts",
		Locator:   "spots-kanto.ts:12",
	}

	ref := rec.Ref()
	assert.Equal(t, "spot-001", ref.ID)
	assert.Equal(t, "城ヶ島", ref.Name)
	assert.Equal(t, "spots-kanto.ts", ref.Partition)
	assert.Equal(t, "spots-kanto.ts:12", ref.Locator)
	assert.Equal(t, 35.135, ref.Lat)
	assert.Equal(t, 139.615, ref.Lng)
}
