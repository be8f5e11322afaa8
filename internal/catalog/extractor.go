// Package catalog extracts coordinate records from the raw spot data files.
//
// The catalog is a set of TypeScript data files maintained by hand; rather
// than parse the language, the extractor scans line-by-line for coordinate
// pairs and recovers the surrounding name/id/slug/address on a best-effort
// basis, the same way an editor reading the file would.
package catalog

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/tsurispot/geoaudit/internal/model"
)

// Context windows for recovering fields near a coordinate pair.
const (
	backwardWindow = 20 // lines searched backward for name/id/slug
	addressWindow  = 5  // lines searched forward, then backward, for address
)

var (
	latRe     = regexp.MustCompile(`latitude:\s*([\d.]+)`)
	lngRe     = regexp.MustCompile(`longitude:\s*([\d.]+)`)
	nameRe    = regexp.MustCompile(`name:\s*"([^"]*)"`)
	idRe      = regexp.MustCompile(`id:\s*"([^"]*)"`)
	slugRe    = regexp.MustCompile(`slug:\s*"([^"]*)"`)
	addressRe = regexp.MustCompile(`address:\s*"([^"]*)"`)
)

// Extractor turns catalog data files into a flat list of GeoRecords.
type Extractor struct {
	dir    string
	prefix string
	ext    string
}

// New creates an Extractor over dir, selecting files by prefix and extension.
func New(dir, prefix, ext string) *Extractor {
	return &Extractor{dir: dir, prefix: prefix, ext: ext}
}

// Extract reads every matching file in sorted order and returns one record
// per latitude/longitude pair found. Entries missing either coordinate are
// silently skipped; records with unresolved name/address are still emitted
// with empty strings.
func (e *Extractor) Extract() ([]model.GeoRecord, error) {
	entries, err := os.ReadDir(e.dir)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: read data dir %s", e.dir)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, e.prefix) && strings.HasSuffix(name, e.ext) {
			files = append(files, name)
		}
	}
	sort.Strings(files)

	var records []model.GeoRecord
	for _, name := range files {
		content, err := os.ReadFile(filepath.Join(e.dir, name))
		if err != nil {
			return nil, eris.Wrapf(err, "catalog: read %s", name)
		}
		fileRecords := ExtractFile(name, string(content))
		records = append(records, fileRecords...)
		zap.L().Debug("catalog: extracted partition",
			zap.String("file", name),
			zap.Int("records", len(fileRecords)),
		)
	}

	zap.L().Info("catalog: extraction complete",
		zap.Int("files", len(files)),
		zap.Int("records", len(records)),
	)
	return records, nil
}

// ExtractFile scans one partition's content. Exported so tests and callers
// holding in-memory content can reuse the scan.
func ExtractFile(partition, content string) []model.GeoRecord {
	lines := strings.Split(content, "\n")
	var records []model.GeoRecord

	for i := 0; i < len(lines); i++ {
		latMatch := latRe.FindStringSubmatch(lines[i])
		if latMatch == nil {
			continue
		}

		// Longitude must be on the same line or the next one.
		lngRaw := ""
		if m := lngRe.FindStringSubmatch(lines[i]); m != nil {
			lngRaw = m[1]
		} else if i+1 < len(lines) {
			if m := lngRe.FindStringSubmatch(lines[i+1]); m != nil {
				lngRaw = m[1]
			}
		}
		if lngRaw == "" {
			continue
		}

		latRaw := latMatch[1]
		lat, latErr := strconv.ParseFloat(latRaw, 64)
		lng, lngErr := strconv.ParseFloat(lngRaw, 64)
		if latErr != nil || lngErr != nil {
			continue
		}

		rec := model.GeoRecord{
			Lat:       lat,
			Lng:       lng,
			LatRaw:    latRaw,
			LngRaw:    lngRaw,
			Partition: partition,
			Locator:   partition + ":" + strconv.Itoa(i+1),
		}

		// Nearest preceding name/id/slug within the backward window.
		for j := i; j >= max(0, i-backwardWindow); j-- {
			if rec.Name == "" {
				if m := nameRe.FindStringSubmatch(lines[j]); m != nil {
					rec.Name = m[1]
				}
			}
			if rec.ID == "" {
				if m := idRe.FindStringSubmatch(lines[j]); m != nil {
					rec.ID = m[1]
				}
			}
			if rec.Slug == "" {
				if m := slugRe.FindStringSubmatch(lines[j]); m != nil {
					rec.Slug = m[1]
				}
			}
		}

		// Address: forward first, then backward.
		for j := i; j <= min(len(lines)-1, i+addressWindow); j++ {
			if m := addressRe.FindStringSubmatch(lines[j]); m != nil {
				rec.Address = m[1]
				break
			}
		}
		if rec.Address == "" {
			for j := i - 1; j >= max(0, i-addressWindow); j-- {
				if m := addressRe.FindStringSubmatch(lines[j]); m != nil {
					rec.Address = m[1]
					break
				}
			}
		}

		records = append(records, rec)
	}

	return records
}
