// Package region holds the static per-prefecture bounding boxes and infers a
// prefecture from free-text addresses.
package region

import (
	_ "embed"
	"fmt"
	"sort"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"gopkg.in/yaml.v3"
)

//go:embed regions.yaml
var defaultRegionsYAML []byte

// Tolerance is the slack added to every prefecture box to absorb legitimate
// near-border placements. Edges of the expanded box are inclusive.
const Tolerance = 0.5

// Bounds is one immutable lat/lng box.
type Bounds struct {
	Key    string
	Label  string
	LatMin float64
	LatMax float64
	LngMin float64
	LngMax float64

	box *geom.Bounds
}

// Contains reports whether the point lies inside the box expanded by tol on
// every side. Edges are inclusive.
func (b *Bounds) Contains(lat, lng, tol float64) bool {
	if tol == 0 {
		return b.box.OverlapsPoint(geom.XY, geom.Coord{lng, lat})
	}
	expanded := geom.NewBounds(geom.XY).Set(b.LngMin-tol, b.LatMin-tol, b.LngMax+tol, b.LatMax+tol)
	return expanded.OverlapsPoint(geom.XY, geom.Coord{lng, lat})
}

// ExpectedRange describes the box for operator-facing diagnostics.
func (b *Bounds) ExpectedRange() (latRange, lngRange string) {
	return fmt.Sprintf("%g-%g", b.LatMin, b.LatMax), fmt.Sprintf("%g-%g", b.LngMin, b.LngMax)
}

// Table is the process-wide static bounds table: one whole-country box plus
// one box per prefecture. It is loaded once and never mutated; tests inject
// smaller fixtures through Parse.
type Table struct {
	country *Bounds
	regions map[string]*Bounds
	// labels holds prefecture labels sorted longest-first for prefix
	// inference against free-text addresses.
	labels []*Bounds
}

type boundsYAML struct {
	Key    string  `yaml:"key"`
	Label  string  `yaml:"label"`
	LatMin float64 `yaml:"lat_min"`
	LatMax float64 `yaml:"lat_max"`
	LngMin float64 `yaml:"lng_min"`
	LngMax float64 `yaml:"lng_max"`
}

type tableYAML struct {
	Country boundsYAML   `yaml:"country"`
	Regions []boundsYAML `yaml:"regions"`
}

// Default returns the table built from the embedded prefecture data.
func Default() *Table {
	t, err := Parse(defaultRegionsYAML)
	if err != nil {
		// The embedded table is validated by tests; a parse failure here is
		// a build defect, not a runtime condition.
		panic(err)
	}
	return t
}

// Parse builds a Table from YAML. The country box is mandatory.
func Parse(data []byte) (*Table, error) {
	var raw tableYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, eris.Wrap(err, "region: parse bounds table")
	}
	if raw.Country.LatMin == 0 && raw.Country.LatMax == 0 {
		return nil, eris.New("region: bounds table has no country box")
	}

	t := &Table{
		country: newBounds(raw.Country),
		regions: make(map[string]*Bounds, len(raw.Regions)),
	}
	for _, r := range raw.Regions {
		if r.Key == "" || r.Label == "" {
			return nil, eris.Errorf("region: bounds entry missing key or label: %+v", r)
		}
		b := newBounds(r)
		t.regions[r.Key] = b
		t.labels = append(t.labels, b)
	}

	// Longest label first so 神奈川県 wins over any shorter accidental match;
	// ties keep table order for determinism.
	sort.SliceStable(t.labels, func(i, j int) bool {
		return len(t.labels[i].Label) > len(t.labels[j].Label)
	})

	return t, nil
}

func newBounds(r boundsYAML) *Bounds {
	return &Bounds{
		Key:    r.Key,
		Label:  r.Label,
		LatMin: r.LatMin,
		LatMax: r.LatMax,
		LngMin: r.LngMin,
		LngMax: r.LngMax,
		box:    geom.NewBounds(geom.XY).Set(r.LngMin, r.LatMin, r.LngMax, r.LatMax),
	}
}

// InCountry reports whether the point lies inside the whole-country box.
// This check precedes every region-specific check.
func (t *Table) InCountry(lat, lng float64) bool {
	return t.country.Contains(lat, lng, 0)
}

// Country returns the whole-country box.
func (t *Table) Country() *Bounds {
	return t.country
}

// Lookup returns the bounds for a prefecture key.
func (t *Table) Lookup(key string) (*Bounds, bool) {
	b, ok := t.regions[key]
	return b, ok
}

// Len returns the number of prefecture entries.
func (t *Table) Len() int {
	return len(t.regions)
}
