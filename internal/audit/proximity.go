package audit

import (
	"fmt"
	"math"
	"sort"

	"github.com/TomiHiltunen/geohash-golang"

	"github.com/tsurispot/geoaudit/internal/model"
	"github.com/tsurispot/geoaudit/internal/region"
)

// Proximity thresholds in degrees. Planar degree-distance is used throughout:
// at these tolerances (≤0.005° ≈ 500 m, ≤1.5° ≈ 150 km) the error from
// ignoring Earth's curvature is far below the tolerance itself.
const (
	proximityDegrees = 0.005
	outlierDegrees   = 1.5
)

// Geohash cell precision for bucketing the cross-partition scan. A
// precision-5 cell spans ~0.044° on each axis, comfortably wider than the
// 0.005° proximity threshold, so every qualifying pair falls in the same or
// an adjacent cell.
const bucketPrecision = 5

// CheckCrossPartitionProximity flags near-identical coordinates across
// different source partitions. Same-partition near-duplicates are expected
// (clusters of piers along one coast) and skipped; exact duplicates belong
// to the duplicate detector.
//
// Records are bucketed by geohash cell and only same-or-adjacent cells are
// compared; the issue set is identical to a full pairwise scan, emitted in
// ascending extraction order.
func CheckCrossPartitionProximity(records []model.GeoRecord) []model.Issue {
	cells := make(map[string][]int, len(records))
	hashes := make([]string, len(records))
	for i, rec := range records {
		gh := geohash.EncodeWithPrecision(rec.Lat, rec.Lng, bucketPrecision)
		hashes[i] = gh
		cells[gh] = append(cells[gh], i)
	}

	var issues []model.Issue
	for i := range records {
		candidates := neighborhood(cells, hashes[i], i)
		for _, j := range candidates {
			a, b := records[i], records[j]
			if a.Partition == b.Partition {
				continue
			}
			dLat := math.Abs(a.Lat - b.Lat)
			dLng := math.Abs(a.Lng - b.Lng)
			if dLat >= proximityDegrees || dLng >= proximityDegrees {
				continue
			}
			if dLat == 0 && dLng == 0 {
				continue // exact duplicate, handled by CheckDuplicates
			}
			issues = append(issues, model.Issue{
				Kind:     model.KindCrossPartitionProximity,
				Severity: model.SeverityWarning,
				Records:  []model.RecordRef{a.Ref(), b.Ref()},
				Message: fmt.Sprintf("%s (%s) and %s (%s) are within %g° of each other across partitions",
					a.Name, a.Locator, b.Name, b.Locator, proximityDegrees),
				Metrics: map[string]string{
					"delta_lat": fmt.Sprintf("%g", dLat),
					"delta_lng": fmt.Sprintf("%g", dLng),
				},
			})
		}
	}

	return issues
}

// neighborhood returns indices greater than i from i's cell and the eight
// adjacent cells, in ascending order.
func neighborhood(cells map[string][]int, gh string, i int) []int {
	var out []int
	appendAfter := func(cell string) {
		for _, j := range cells[cell] {
			if j > i {
				out = append(out, j)
			}
		}
	}
	appendAfter(gh)
	for _, adj := range geohash.CalculateAllAdjacent(gh) {
		appendAfter(adj)
	}
	sort.Ints(out)
	return out
}

// CheckRegionOutliers partitions records by source partition and inferred
// prefecture, computes each group's centroid, and flags members farther than
// the outlier threshold from it. Groups of one are skipped; a lone record
// has no meaningful local average. Records whose address yields no
// prefecture form their own per-partition group.
func CheckRegionOutliers(tbl *region.Table, records []model.GeoRecord) []model.Issue {
	type groupKey struct {
		partition string
		region    string
	}

	groups := make(map[groupKey][]int)
	var order []groupKey
	for i, rec := range records {
		key := groupKey{partition: rec.Partition}
		if pref, ok := tbl.Infer(rec.Address); ok {
			key.region = pref.Key
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}

	var issues []model.Issue
	for _, key := range order {
		indices := groups[key]
		if len(indices) < 2 {
			continue
		}

		var sumLat, sumLng float64
		for _, i := range indices {
			sumLat += records[i].Lat
			sumLng += records[i].Lng
		}
		avgLat := sumLat / float64(len(indices))
		avgLng := sumLng / float64(len(indices))

		for _, i := range indices {
			rec := records[i]
			dist := math.Hypot(rec.Lat-avgLat, rec.Lng-avgLng)
			if dist <= outlierDegrees {
				continue
			}
			regionName := key.region
			if regionName == "" {
				regionName = "unresolved region"
			}
			issues = append(issues, model.Issue{
				Kind:     model.KindRegionOutlier,
				Severity: model.SeverityWarning,
				Records:  []model.RecordRef{rec.Ref()},
				Message: fmt.Sprintf("%s (%s) is %.2f° from the %s group average in %s",
					rec.Name, rec.Locator, dist, regionName, key.partition),
				Metrics: map[string]string{
					"distance_degrees": fmt.Sprintf("%.4f", dist),
					"centroid_lat":     fmt.Sprintf("%.4f", avgLat),
					"centroid_lng":     fmt.Sprintf("%.4f", avgLng),
					"group_size":       fmt.Sprintf("%d", len(indices)),
				},
			})
		}
	}

	return issues
}
