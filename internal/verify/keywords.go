package verify

// Dictionaries holds the keyword lists the verifier matches against the
// reverse-geocode text corpus. They are injected configuration, not
// module-level globals, so tests can substitute smaller fixtures.
type Dictionaries struct {
	// Water marks OSM tags and names that indicate a fishable waterside.
	Water []string
	// Restricted marks places where fishing is commonly prohibited. A match
	// produces a caution, never a rejection.
	Restricted []string
}

// DefaultDictionaries returns the bilingual production keyword lists.
func DefaultDictionaries() Dictionaries {
	return Dictionaries{
		Water: []string{
			"water", "harbour", "harbor", "port", "pier", "dock", "marina",
			"beach", "coastline", "coast", "bay", "cape", "peninsula",
			"river", "stream", "canal", "lake", "pond", "reservoir",
			"fishing", "fish", "breakwater", "jetty", "quay", "wharf",
			"sea", "ocean", "strait", "inlet",
			"港", "漁港", "堤防", "防波堤", "磯", "海岸", "浜", "川", "河",
			"湖", "池", "沼", "ダム", "釣り", "マリーナ",
		},
		Restricted: []string{
			"military", "airport", "airbase", "prison", "nuclear",
			"power_plant", "industrial", "factory",
			"自衛隊", "空港", "原発", "刑務所",
		},
	}
}
