package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFile = `export const spots = [
  {
    id: "hokkaido-001",
    name: "小樽港",
    slug: "otaru-port",
    address: "北海道小樽市色内3丁目",
    latitude: 43.1907,
    longitude: 140.9946,
  },
  {
    id: "hokkaido-002",
    name: "石狩湾新港",
    slug: "ishikari-bay",
    latitude: 43.2170, longitude: 141.3030,
    address: "北海道石狩市新港中央",
  },
  {
    id: "hokkaido-003",
    name: "座標なし",
    slug: "no-coords",
    address: "北海道函館市",
  },
]
`

func TestExtractFile(t *testing.T) {
	records := ExtractFile("spots-hokkaido.ts", sampleFile)

	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "hokkaido-001", first.ID)
	assert.Equal(t, "小樽港", first.Name)
	assert.Equal(t, "otaru-port", first.Slug)
	assert.Equal(t, "北海道小樽市色内3丁目", first.Address)
	assert.Equal(t, 43.1907, first.Lat)
	assert.Equal(t, 140.9946, first.Lng)
	assert.Equal(t, "43.1907", first.LatRaw)
	assert.Equal(t, "140.9946", first.LngRaw)
	assert.Equal(t, "spots-hokkaido.ts", first.Partition)
	assert.Equal(t, "spots-hokkaido.ts:7", first.Locator)

	// Second record: longitude on the same line, address found forward.
	second := records[1]
	assert.Equal(t, "hokkaido-002", second.ID)
	assert.Equal(t, "北海道石狩市新港中央", second.Address)
	assert.Equal(t, "43.2170", second.LatRaw)
}

func TestExtractFile_LongitudeMissing(t *testing.T) {
	content := `  latitude: 35.658,
  name: "stray",
`
	records := ExtractFile("spots.ts", content)
	assert.Empty(t, records)
}

func TestExtractFile_UnresolvedFieldsEmitEmpty(t *testing.T) {
	content := `  latitude: 35.658,
  longitude: 139.745,
`
	records := ExtractFile("spots.ts", content)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Empty(t, rec.ID)
	assert.Empty(t, rec.Name)
	assert.Empty(t, rec.Address)
	assert.Equal(t, 35.658, rec.Lat)
}

func TestExtractFile_RawPreservesTrailingZeros(t *testing.T) {
	content := `  latitude: 35.4580,
  longitude: 139.70,
`
	records := ExtractFile("spots.ts", content)
	require.Len(t, records, 1)
	assert.Equal(t, "35.4580", records[0].LatRaw)
	assert.Equal(t, "139.70", records[0].LngRaw)
	assert.Equal(t, "35.4580,139.70", records[0].CoordKey())
}

func TestExtract_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "spots-b.ts"), []byte(sampleFile), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "spots-a.ts"), []byte(sampleFile), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("latitude: 1.0 longitude: 2.0"), 0o644))

	ex := New(dir, "spots", ".ts")
	records, err := ex.Extract()
	require.NoError(t, err)

	// Two matching files, two records each, in sorted file order.
	require.Len(t, records, 4)
	assert.Equal(t, "spots-a.ts", records[0].Partition)
	assert.Equal(t, "spots-b.ts", records[2].Partition)
}

func TestExtract_MissingDir(t *testing.T) {
	ex := New("/nonexistent/path", "spots", ".ts")
	_, err := ex.Extract()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read data dir")
}
