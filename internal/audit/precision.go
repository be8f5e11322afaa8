// Package audit implements the batch coordinate analyzers and the issue
// aggregator. Every analyzer is a pure function over a read-only record
// slice; findings are collected, never raised, so one run enumerates every
// problem in the catalog.
package audit

import (
	"fmt"
	"strings"

	"github.com/tsurispot/geoaudit/internal/model"
)

// Decimal-digit thresholds. Three decimals is roughly 100 m, the minimum
// that distinguishes a specific pier from the town it sits in.
const (
	minDecimals       = 3
	veryRoundDecimals = 2
)

// DecimalDigits counts the digits after the decimal point in a coordinate as
// written in the source. No decimal point means zero digits.
func DecimalDigits(raw string) int {
	if i := strings.IndexByte(raw, '.'); i >= 0 {
		return len(raw) - i - 1
	}
	return 0
}

// CheckPrecision flags records whose coordinates carry suspiciously few
// decimal digits. Two lanes:
//
//   - LowPrecision: either axis has fewer than three decimals. Common
//     data-entry error when a coordinate is copied from a city-center lookup.
//   - VeryRoundCoordinate: both axes have one or two decimals, a
//     near-certain placeholder placement, reported separately at higher
//     confidence.
//
// The lanes overlap deliberately; neither supersedes the other.
func CheckPrecision(records []model.GeoRecord) []model.Issue {
	var issues []model.Issue

	for _, rec := range records {
		latDec := DecimalDigits(rec.LatRaw)
		lngDec := DecimalDigits(rec.LngRaw)

		if latDec < minDecimals || lngDec < minDecimals {
			issues = append(issues, model.Issue{
				Kind:     model.KindLowPrecision,
				Severity: model.SeverityWarning,
				Records:  []model.RecordRef{rec.Ref()},
				Message: fmt.Sprintf("coordinate has %d/%d decimal digits (lat/lng), below the %d needed for ~100m placement",
					latDec, lngDec, minDecimals),
				Metrics: map[string]string{
					"lat_decimals": fmt.Sprintf("%d", latDec),
					"lng_decimals": fmt.Sprintf("%d", lngDec),
				},
			})
		}
	}

	return issues
}

// CheckVeryRound is the stricter, higher-confidence precision lane.
// Integer coordinates are not flagged here; those are caught by the bounds
// and low-precision checks instead.
func CheckVeryRound(records []model.GeoRecord) []model.Issue {
	var issues []model.Issue

	for _, rec := range records {
		latDec := DecimalDigits(rec.LatRaw)
		lngDec := DecimalDigits(rec.LngRaw)

		if latDec > 0 && lngDec > 0 && latDec <= veryRoundDecimals && lngDec <= veryRoundDecimals {
			issues = append(issues, model.Issue{
				Kind:     model.KindVeryRoundCoordinate,
				Severity: model.SeverityWarning,
				Records:  []model.RecordRef{rec.Ref()},
				Message: fmt.Sprintf("both coordinates are very round (%d/%d decimals); likely placed at a city center rather than the actual spot",
					latDec, lngDec),
				Metrics: map[string]string{
					"lat_decimals": fmt.Sprintf("%d", latDec),
					"lng_decimals": fmt.Sprintf("%d", lngDec),
				},
			})
		}
	}

	return issues
}
