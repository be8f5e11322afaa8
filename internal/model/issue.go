package model

// IssueKind identifies the check that produced an issue.
type IssueKind string

// Issue kinds emitted by the batch pipeline.
const (
	KindOutOfCountry            IssueKind = "out_of_country"
	KindRegionMismatch          IssueKind = "region_mismatch"
	KindLowPrecision            IssueKind = "low_precision"
	KindVeryRoundCoordinate     IssueKind = "very_round_coordinate"
	KindDuplicateCoordinate     IssueKind = "duplicate_coordinate"
	KindCrossPartitionProximity IssueKind = "cross_partition_proximity"
	KindRegionOutlier           IssueKind = "region_outlier"
)

// Severity distinguishes structural problems from heuristic-advisory ones.
type Severity string

const (
	// SeverityError marks structural problems (a coordinate that cannot be
	// inside the country at all).
	SeverityError Severity = "error"
	// SeverityWarning marks heuristic findings for editorial review.
	SeverityWarning Severity = "warning"
)

// Issue is one immutable report entry. The same record may appear in issues
// of several kinds; the report never deduplicates across checks.
type Issue struct {
	Kind     IssueKind         `json:"kind"`
	Severity Severity          `json:"severity"`
	Records  []RecordRef       `json:"records"`
	Message  string            `json:"message"`
	Metrics  map[string]string `json:"metrics,omitempty"`
}
