// Package verify implements the online location verifier: it classifies one
// coordinate at a time against a reverse-geocoding service, with graceful
// degradation when the service is inconclusive or unavailable.
package verify

import (
	"context"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tsurispot/geoaudit/internal/model"
	"github.com/tsurispot/geoaudit/internal/region"
	"github.com/tsurispot/geoaudit/pkg/nominatim"
)

// Warning copy shown to spot editors. These strings are product copy; the
// deployment is Japanese.
const (
	warnOutOfCountry  = "座標が日本国内ではありません"
	warnLookupFailed  = "この座標の場所情報を取得できませんでした"
	warnNotNearWater  = "この場所は水辺から離れている可能性があります。座標が正しいか確認してください。"
	warnRestricted    = "この場所は立入制限がある可能性があります。釣りが許可されているか確認してください。"
	detailOutOfScope  = "日本国内の座標を入力してください"
	detailCheckCoords = "座標を確認してください"
)

// waterSearchDelta is the half-width in degrees of the fallback water
// search box, roughly a 500 m radius.
const waterSearchDelta = 0.005

// Verifier classifies a single coordinate as near-water / inland /
// restricted using a geo-lookup collaborator. Its only shared state is the
// read-only region table and keyword dictionaries, so one Verifier serves
// concurrent calls.
type Verifier struct {
	client  nominatim.Client
	table   *region.Table
	dicts   Dictionaries
	timeout time.Duration
}

// VerifierOption configures a Verifier.
type VerifierOption func(*Verifier)

// WithDictionaries substitutes the keyword dictionaries.
func WithDictionaries(d Dictionaries) VerifierOption {
	return func(v *Verifier) {
		v.dicts = d
	}
}

// WithTimeout bounds each verification call, covering both the reverse
// lookup and the fallback water search.
func WithTimeout(d time.Duration) VerifierOption {
	return func(v *Verifier) {
		v.timeout = d
	}
}

// NewVerifier creates a Verifier using the given geo-lookup client and
// region table.
func NewVerifier(client nominatim.Client, table *region.Table, opts ...VerifierOption) *Verifier {
	v := &Verifier{
		client:  client,
		table:   table,
		dicts:   DefaultDictionaries(),
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify classifies one coordinate. It never returns an error: a failed
// lookup degrades to an invalid verdict with a human-readable warning, and
// an inconclusive water check degrades to a valid verdict with a caution.
// The verdict is produced fresh per call and is safe to discard.
//
// A coordinate outside the country box is rejected before any network call.
func (v *Verifier) Verify(ctx context.Context, lat, lng float64) model.Verdict {
	if !isFinite(lat) || !isFinite(lng) || !v.table.InCountry(lat, lng) {
		return model.Verdict{
			IsValid:  false,
			Warnings: []string{warnOutOfCountry},
			Details:  detailOutOfScope,
		}
	}

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	place, err := v.client.Reverse(ctx, lat, lng)
	if err != nil {
		zap.L().Warn("verify: reverse lookup failed",
			zap.Float64("lat", lat),
			zap.Float64("lng", lng),
			zap.Error(err),
		)
		return model.Verdict{
			IsValid:  false,
			Warnings: []string{warnLookupFailed},
			Details:  detailCheckCoords,
		}
	}

	corpus := buildCorpus(place)
	warnings := []string{}

	isNearWater := matchesAny(corpus, v.dicts.Water)
	if !isNearWater {
		// Many real fishing points reverse-geocode to a generic residential
		// or road label; look for mapped water in the immediate area before
		// concluding the spot is inland.
		isNearWater = v.nearbyWater(ctx, lat, lng)
	}
	if !isNearWater {
		warnings = append(warnings, warnNotNearWater)
	}

	if matchesAny(corpus, v.dicts.Restricted) {
		warnings = append(warnings, warnRestricted)
	}

	return model.Verdict{
		IsValid:     true,
		IsNearWater: isNearWater,
		PlaceName:   placeName(place),
		PlaceType:   place.Category + "/" + place.Type,
		Warnings:    warnings,
		Details:     place.DisplayName,
	}
}

// nearbyWater runs the fallback bounded search. A failed or empty search is
// treated as "no water found", never as a hard failure.
func (v *Verifier) nearbyWater(ctx context.Context, lat, lng float64) bool {
	places, err := v.client.BoundedSearch(ctx, "water", nominatim.Around(lat, lng, waterSearchDelta), 5)
	if err != nil {
		zap.L().Debug("verify: water fallback search failed",
			zap.Float64("lat", lat),
			zap.Float64("lng", lng),
			zap.Error(err),
		)
		return false
	}
	return len(places) > 0
}

// buildCorpus concatenates every textual field of the response into one
// lowercase search string.
func buildCorpus(place *nominatim.Place) string {
	parts := []string{place.DisplayName, place.Type, place.Category}
	for _, m := range []map[string]string{place.Address, place.ExtraTags, place.NameDetails} {
		for k, val := range m {
			parts = append(parts, k, val)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func matchesAny(corpus string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(corpus, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// placeName derives a human place name from the address sub-fields, most
// specific first, falling back to the head of the display name.
func placeName(place *nominatim.Place) string {
	for _, key := range []string{"amenity", "tourism", "leisure"} {
		if name := place.Address[key]; name != "" {
			return name
		}
	}
	if name := place.NameDetails["name"]; name != "" {
		return name
	}
	for _, key := range []string{"suburb", "city_district"} {
		if name := place.Address[key]; name != "" {
			return name
		}
	}
	if head, _, _ := strings.Cut(place.DisplayName, ","); head != "" {
		return head
	}
	return ""
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
