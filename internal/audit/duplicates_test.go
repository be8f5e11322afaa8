package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsurispot/geoaudit/internal/model"
)

func TestCheckDuplicates_ExactMatch(t *testing.T) {
	records := []model.GeoRecord{
		rec("a", "35.658", "139.745", 35.658, 139.745),
		rec("b", "35.658", "139.745", 35.658, 139.745),
		rec("c", "34.000", "135.000", 34.0, 135.0),
	}

	issues := CheckDuplicates(records)
	require.Len(t, issues, 1)
	assert.Equal(t, model.KindDuplicateCoordinate, issues[0].Kind)
	require.Len(t, issues[0].Records, 2)
	assert.Equal(t, "a", issues[0].Records[0].ID)
	assert.Equal(t, "b", issues[0].Records[1].ID)
	assert.Equal(t, "35.658,139.745", issues[0].Metrics["coordinate"])
}

func TestCheckDuplicates_NearMissIsNotDuplicate(t *testing.T) {
	records := []model.GeoRecord{
		rec("a", "35.658", "139.745", 35.658, 139.745),
		rec("b", "35.6581", "139.745", 35.6581, 139.745),
	}
	assert.Empty(t, CheckDuplicates(records))
}

func TestCheckDuplicates_KeyIsSourceText(t *testing.T) {
	// Same numeric value written differently is not the same key; the
	// detector compares what the source says, not the parsed float.
	records := []model.GeoRecord{
		rec("a", "35.6580", "139.745", 35.658, 139.745),
		rec("b", "35.658", "139.745", 35.658, 139.745),
	}
	assert.Empty(t, CheckDuplicates(records))
}

func TestCheckDuplicates_ThreeWay(t *testing.T) {
	records := []model.GeoRecord{
		rec("a", "35.658", "139.745", 35.658, 139.745),
		rec("b", "35.658", "139.745", 35.658, 139.745),
		rec("c", "35.658", "139.745", 35.658, 139.745),
	}

	issues := CheckDuplicates(records)
	require.Len(t, issues, 1)
	assert.Len(t, issues[0].Records, 3)
}
