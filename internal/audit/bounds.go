package audit

import (
	"fmt"

	"github.com/tsurispot/geoaudit/internal/model"
	"github.com/tsurispot/geoaudit/internal/region"
)

// CheckBounds validates every record against the whole-country box and, when
// a prefecture can be inferred from the address, against that prefecture's
// box expanded by the fixed tolerance.
//
// The country check is unconditional and runs first; a record outside the
// country gets no region check. A record whose address yields no prefecture
// gets only the country check, which is an expected outcome for free-text
// addresses, not an error.
func CheckBounds(tbl *region.Table, records []model.GeoRecord) []model.Issue {
	var issues []model.Issue

	for _, rec := range records {
		if !rec.HasFiniteCoords() || !tbl.InCountry(rec.Lat, rec.Lng) {
			msg := fmt.Sprintf("coordinate (%s, %s) is outside the country box", rec.LatRaw, rec.LngRaw)
			metrics := map[string]string{}
			// A latitude in longitude range (or vice versa) usually means the
			// two values were entered in the wrong order.
			if rec.Lat > 100 || rec.Lng < 100 {
				msg += "; latitude and longitude may be swapped"
				metrics["possible_swap"] = "true"
			}
			issues = append(issues, model.Issue{
				Kind:     model.KindOutOfCountry,
				Severity: model.SeverityError,
				Records:  []model.RecordRef{rec.Ref()},
				Message:  msg,
				Metrics:  metrics,
			})
			continue
		}

		pref, ok := tbl.Infer(rec.Address)
		if !ok {
			continue
		}
		if !pref.Contains(rec.Lat, rec.Lng, region.Tolerance) {
			latRange, lngRange := pref.ExpectedRange()
			issues = append(issues, model.Issue{
				Kind:     model.KindRegionMismatch,
				Severity: model.SeverityWarning,
				Records:  []model.RecordRef{rec.Ref()},
				Message: fmt.Sprintf("coordinate (%s, %s) is outside %s (expected lat %s, lng %s, ±%g tolerance)",
					rec.LatRaw, rec.LngRaw, pref.Label, latRange, lngRange, region.Tolerance),
				Metrics: map[string]string{
					"region":       pref.Key,
					"expected_lat": latRange,
					"expected_lng": lngRange,
				},
			})
		}
	}

	return issues
}
