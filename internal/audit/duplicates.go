package audit

import (
	"fmt"
	"strings"

	"github.com/tsurispot/geoaudit/internal/model"
)

// CheckDuplicates groups records by the exact coordinate string as written
// in the source and reports every key shared by more than one record.
//
// Strict equality only: two records two meters apart are not duplicates here,
// they belong to the proximity analyzer. Re-listings of the same physical
// place are still reported; disambiguation is a human job.
func CheckDuplicates(records []model.GeoRecord) []model.Issue {
	byKey := make(map[string][]int, len(records))
	var keyOrder []string
	for i, rec := range records {
		key := rec.CoordKey()
		if _, seen := byKey[key]; !seen {
			keyOrder = append(keyOrder, key)
		}
		byKey[key] = append(byKey[key], i)
	}

	var issues []model.Issue
	for _, key := range keyOrder {
		indices := byKey[key]
		if len(indices) < 2 {
			continue
		}

		refs := make([]model.RecordRef, 0, len(indices))
		var who []string
		for _, i := range indices {
			refs = append(refs, records[i].Ref())
			who = append(who, fmt.Sprintf("%s (%s, %s)", records[i].Name, records[i].ID, records[i].Locator))
		}
		issues = append(issues, model.Issue{
			Kind:     model.KindDuplicateCoordinate,
			Severity: model.SeverityWarning,
			Records:  refs,
			Message:  fmt.Sprintf("%d records share coordinate %s: %s", len(indices), key, strings.Join(who, " | ")),
			Metrics:  map[string]string{"coordinate": key},
		})
	}

	return issues
}
