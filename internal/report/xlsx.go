package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/tsurispot/geoaudit/internal/audit"
)

var xlsxHeader = []string{
	"kind", "severity", "locator", "id", "name", "lat", "lng", "message",
}

// WriteXLSX renders the report as a two-sheet workbook: a summary sheet
// with per-kind counts and an issues sheet with one row per affected
// record.
func WriteXLSX(w io.Writer, r *audit.Report) error {
	f := xlsx.NewFile()

	summary, err := f.AddSheet("Summary")
	if err != nil {
		return eris.Wrap(err, "report: add summary sheet")
	}
	addRow(summary, "run_id", r.RunID)
	addRow(summary, "generated_at", r.GeneratedAt.Format("2006-01-02 15:04:05"))
	addRow(summary, "records", strconv.Itoa(r.Records))
	addRow(summary, "issues", strconv.Itoa(len(r.Issues)))

	counts := r.CountByKind()
	for _, kind := range kindOrder {
		if counts[kind] > 0 {
			addRow(summary, string(kind), strconv.Itoa(counts[kind]))
		}
	}

	issues, err := f.AddSheet("Issues")
	if err != nil {
		return eris.Wrap(err, "report: add issues sheet")
	}
	addRow(issues, xlsxHeader...)

	for _, issue := range r.Issues {
		for _, ref := range issue.Records {
			addRow(issues,
				string(issue.Kind),
				string(issue.Severity),
				ref.Locator,
				ref.ID,
				ref.Name,
				fmt.Sprintf("%g", ref.Lat),
				fmt.Sprintf("%g", ref.Lng),
				issue.Message,
			)
		}
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "report: write workbook")
	}
	return nil
}

func addRow(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}
