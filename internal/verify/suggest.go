package verify

import (
	"context"
	"math"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/tsurispot/geoaudit/internal/model"
)

// Suggestion thresholds in kilometers.
const (
	suggestThresholdKM = 1.0 // a hit farther than this flags the record
	suggestEarlyStopKM = 0.3 // a hit this close ends the query fan-out
)

// verifiableNameRe matches spot names concrete enough to locate via forward
// geocoding: ports, breakwaters, beaches, river mouths and so on. Vague
// names ("〇〇周辺") cannot be cross-checked and are skipped.
var verifiableNameRe = regexp.MustCompile(
	`港|漁港|堤防|波止|岸壁|海岸|浜|磯|河口|ダム|湖|池|川|橋|マリーナ|サーフ|突堤|埠頭|桟橋|テトラ|防波堤|船着`)

// coreNameRe strips municipal qualifiers: 天草市本渡港 → 本渡港.
var coreNameRe = regexp.MustCompile(`^.*?[市町村区郡](.+)$`)

// portHintRe marks search results that look like port or shore features,
// preferred over generic address hits.
var portHintRe = regexp.MustCompile(`港|漁港|堤防|海岸|浜`)

// Suggestion reports a forward-geocode hit that disagrees with a record's
// stored coordinate. It is advisory output for editorial review; nothing is
// rewritten automatically.
type Suggestion struct {
	Record      model.RecordRef `json:"record"`
	FoundLat    float64         `json:"foundLat"`
	FoundLng    float64         `json:"foundLng"`
	DistanceKM  float64         `json:"distanceKm"`
	DisplayName string          `json:"displayName"`
	Query       string          `json:"query"`
}

// IsVerifiableName reports whether a spot name is concrete enough for the
// suggestion lane.
func IsVerifiableName(name string) bool {
	return verifiableNameRe.MatchString(name)
}

// SuggestCorrection forward-geocodes a record's name and compares the best
// hit against the stored coordinate. It returns nil when the name is not
// verifiable, nothing was found, or the best hit is within the distance
// threshold. Lookup errors skip the failing query rather than aborting: the
// lane is best-effort by design.
func (v *Verifier) SuggestCorrection(ctx context.Context, rec model.GeoRecord) *Suggestion {
	if !IsVerifiableName(rec.Name) {
		return nil
	}

	bestDistance := math.Inf(1)
	var bestPlaceLat, bestPlaceLng float64
	var bestDisplay, bestQuery string

	for _, query := range v.buildQueries(rec) {
		places, err := v.client.ForwardSearch(ctx, query, 3)
		if err != nil {
			zap.L().Debug("verify: forward search failed",
				zap.String("query", query),
				zap.Error(err),
			)
			continue
		}

		for _, p := range places {
			pLat, latErr := strconv.ParseFloat(p.Lat, 64)
			pLng, lngErr := strconv.ParseFloat(p.Lon, 64)
			if latErr != nil || lngErr != nil {
				continue
			}
			dist := HaversineKM(rec.Lat, rec.Lng, pLat, pLng)

			// Prefer port and shore features even when a generic address
			// hit is slightly closer.
			isPort := p.Type == "harbour" || p.Type == "marina" ||
				p.Category == "waterway" || p.Category == "natural" ||
				portHintRe.MatchString(p.DisplayName)

			if dist < bestDistance || (isPort && dist < bestDistance+2) {
				bestDistance = dist
				bestPlaceLat, bestPlaceLng = pLat, pLng
				bestDisplay = p.DisplayName
				bestQuery = query
			}
		}

		if bestDistance < suggestEarlyStopKM {
			break
		}
	}

	if math.IsInf(bestDistance, 1) || bestDistance <= suggestThresholdKM {
		return nil
	}

	return &Suggestion{
		Record:      rec.Ref(),
		FoundLat:    bestPlaceLat,
		FoundLng:    bestPlaceLng,
		DistanceKM:  bestDistance,
		DisplayName: bestDisplay,
		Query:       bestQuery,
	}
}

// buildQueries generates forward-search queries for a record, most specific
// first: prefecture + full name, bare name, prefecture + core name with
// municipal qualifiers stripped.
func (v *Verifier) buildQueries(rec model.GeoRecord) []string {
	var queries []string

	prefLabel := ""
	if pref, ok := v.table.Infer(rec.Address); ok {
		prefLabel = pref.Label
	}

	if prefLabel != "" {
		queries = append(queries, prefLabel+" "+rec.Name)
	}
	queries = append(queries, rec.Name)

	if prefLabel != "" {
		if m := coreNameRe.FindStringSubmatch(rec.Name); m != nil {
			core := strings.TrimSpace(m[1])
			if core != "" && core != rec.Name {
				queries = append(queries, prefLabel+" "+core)
			}
		}
	}

	return queries
}
