package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsurispot/geoaudit/internal/model"
	"github.com/tsurispot/geoaudit/internal/region"
)

func addrRec(id, address string, lat, lng float64) model.GeoRecord {
	r := rec(id, "", "", lat, lng)
	r.Address = address
	return r
}

func TestCheckBounds_OutOfCountry(t *testing.T) {
	tbl := region.Default()

	records := []model.GeoRecord{
		// Address matches a prefecture whose box the point also violates,
		// but only the country issue must be emitted.
		addrRec("null-island", "神奈川県横浜市", 0, 0),
	}

	issues := CheckBounds(tbl, records)
	require.Len(t, issues, 1)
	assert.Equal(t, model.KindOutOfCountry, issues[0].Kind)
	assert.Equal(t, model.SeverityError, issues[0].Severity)
}

func TestCheckBounds_SwapHint(t *testing.T) {
	tbl := region.Default()

	issues := CheckBounds(tbl, []model.GeoRecord{
		addrRec("swapped", "東京都江東区", 139.745, 35.658),
	})
	require.Len(t, issues, 1)
	assert.Equal(t, model.KindOutOfCountry, issues[0].Kind)
	assert.Contains(t, issues[0].Message, "swapped")
	assert.Equal(t, "true", issues[0].Metrics["possible_swap"])
}

func TestCheckBounds_RegionMismatch(t *testing.T) {
	tbl := region.Default()

	// Kanagawa box: lat 35.1-35.7, lng 138.9-139.8, ±0.5 tolerance.
	tests := []struct {
		name      string
		lat, lng  float64
		wantKinds []model.IssueKind
	}{
		{"inside box", 35.4, 139.5, nil},
		{"exactly on expanded lat edge", 36.2, 139.5, nil},
		{"past expanded lat edge", 36.21, 139.5, []model.IssueKind{model.KindRegionMismatch}},
		{"hokkaido coordinate with kanagawa address", 43.19, 140.99, []model.IssueKind{model.KindRegionMismatch}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := CheckBounds(tbl, []model.GeoRecord{
				addrRec("r1", "神奈川県横須賀市", tt.lat, tt.lng),
			})
			var kinds []model.IssueKind
			for _, issue := range issues {
				kinds = append(kinds, issue.Kind)
			}
			assert.Equal(t, tt.wantKinds, kinds)
		})
	}
}

func TestCheckBounds_RegionMismatchCarriesExpectedRange(t *testing.T) {
	tbl := region.Default()

	issues := CheckBounds(tbl, []model.GeoRecord{
		addrRec("r1", "沖縄県那覇市", 43.0, 141.0),
	})
	require.Len(t, issues, 1)
	assert.Equal(t, "沖縄", issues[0].Metrics["region"])
	assert.Equal(t, "24-27.9", issues[0].Metrics["expected_lat"])
	assert.Equal(t, "122.9-131.4", issues[0].Metrics["expected_lng"])
}

func TestCheckBounds_NoRegionInferred(t *testing.T) {
	tbl := region.Default()

	// In-country point with an unparseable address: country check only,
	// no issue at all.
	issues := CheckBounds(tbl, []model.GeoRecord{
		addrRec("r1", "若洲海浜公園", 35.618, 139.828),
	})
	assert.Empty(t, issues)
}
