package region

import (
	"strings"

	"golang.org/x/text/width"
)

// Infer extracts a prefecture key from a free-text address by matching the
// known administrative labels against the start of the address, longest
// label first. Full-width ASCII and spacing variants are folded before
// matching so entries pasted from different sources compare equally.
//
// An unmatched address is a valid outcome, not an error: free-text addresses
// are not always parseable, and the caller falls back to the whole-country
// check alone.
func (t *Table) Infer(address string) (*Bounds, bool) {
	addr := strings.TrimSpace(width.Fold.String(address))
	if addr == "" {
		return nil, false
	}
	for _, b := range t.labels {
		if strings.HasPrefix(addr, b.Label) {
			return b, true
		}
	}
	return nil, false
}
