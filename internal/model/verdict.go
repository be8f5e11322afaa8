package model

// Verdict is the outcome of one online location verification. It is produced
// fresh per call and never cached or persisted.
//
// IsValid reflects structural validity only: the coordinate is inside the
// country and the reverse lookup succeeded. Water and restricted-area
// findings are advisory and surface as Warnings so a record is never
// silently discarded without human review.
type Verdict struct {
	IsValid     bool     `json:"isValid"`
	IsNearWater bool     `json:"isNearWater"`
	PlaceName   string   `json:"placeName"`
	PlaceType   string   `json:"placeType"`
	Warnings    []string `json:"warnings"`
	Details     string   `json:"details"`
}
