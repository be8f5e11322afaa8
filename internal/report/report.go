// Package report renders batch audit reports for editorial review: plain
// text for the terminal, JSON for tooling, and an XLSX workbook for the
// review spreadsheet workflow.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/tsurispot/geoaudit/internal/audit"
	"github.com/tsurispot/geoaudit/internal/model"
)

// kindOrder fixes the summary ordering.
var kindOrder = []model.IssueKind{
	model.KindOutOfCountry,
	model.KindRegionMismatch,
	model.KindLowPrecision,
	model.KindVeryRoundCoordinate,
	model.KindDuplicateCoordinate,
	model.KindCrossPartitionProximity,
	model.KindRegionOutlier,
}

// WriteText renders the report as indented plain text.
func WriteText(w io.Writer, r *audit.Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "run %s: %d records, %d issues\n", r.RunID, r.Records, len(r.Issues))

	counts := r.CountByKind()
	for _, kind := range kindOrder {
		if counts[kind] > 0 {
			fmt.Fprintf(&b, "  %-28s %d\n", kind, counts[kind])
		}
	}
	b.WriteString("\n")

	for _, issue := range r.Issues {
		fmt.Fprintf(&b, "[%s] [%s] %s\n", issue.Severity, issue.Kind, issue.Message)
		for _, ref := range issue.Records {
			fmt.Fprintf(&b, "    %s | %s | %s | lat=%g lng=%g\n",
				ref.Locator, ref.ID, ref.Name, ref.Lat, ref.Lng)
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return eris.Wrap(err, "report: write text")
	}
	return nil
}

// WriteJSON renders the report as an indented JSON document.
func WriteJSON(w io.Writer, r *audit.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return eris.Wrap(err, "report: encode json")
	}
	return nil
}
