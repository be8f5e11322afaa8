package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tsurispot/geoaudit/internal/model"
	"github.com/tsurispot/geoaudit/internal/region"
)

// Report is the ordered output of one batch run. Issues are merged in a
// fixed check order, each check's findings in deterministic record order, so
// two runs over an unchanged catalog produce identical reports.
type Report struct {
	RunID       string        `json:"runId"`
	GeneratedAt time.Time     `json:"generatedAt"`
	Records     int           `json:"records"`
	Issues      []model.Issue `json:"issues"`
}

// CountByKind tallies issues per kind for summaries.
func (r *Report) CountByKind() map[model.IssueKind]int {
	counts := make(map[model.IssueKind]int)
	for _, issue := range r.Issues {
		counts[issue.Kind]++
	}
	return counts
}

// Run executes the six analyzers over the extracted records and merges
// their findings into one report. The analyzers are pure functions of the
// read-only input, so they run concurrently with no shared mutable state;
// the merge order is fixed regardless of completion order.
//
// The same record may appear under several kinds; the report never
// deduplicates across checks and carries no overall verdict. Editorial
// review interprets the list.
func Run(ctx context.Context, tbl *region.Table, records []model.GeoRecord) (*Report, error) {
	var (
		bounds     []model.Issue
		precision  []model.Issue
		veryRound  []model.Issue
		duplicates []model.Issue
		proximity  []model.Issue
		outliers   []model.Issue
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { bounds = CheckBounds(tbl, records); return nil })
	g.Go(func() error { precision = CheckPrecision(records); return nil })
	g.Go(func() error { veryRound = CheckVeryRound(records); return nil })
	g.Go(func() error { duplicates = CheckDuplicates(records); return nil })
	g.Go(func() error { proximity = CheckCrossPartitionProximity(records); return nil })
	g.Go(func() error { outliers = CheckRegionOutliers(tbl, records); return nil })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Records:     len(records),
	}
	report.Issues = append(report.Issues, bounds...)
	report.Issues = append(report.Issues, precision...)
	report.Issues = append(report.Issues, veryRound...)
	report.Issues = append(report.Issues, duplicates...)
	report.Issues = append(report.Issues, proximity...)
	report.Issues = append(report.Issues, outliers...)

	zap.L().Info("audit: batch run complete",
		zap.String("run_id", report.RunID),
		zap.Int("records", report.Records),
		zap.Int("issues", len(report.Issues)),
	)

	return report, nil
}
