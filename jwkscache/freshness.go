package jwkscache

import "time"

// ShouldFetch reports whether a new JWKS fetch is due for a realm.
//
// lastFetch is the time of the most recent successful persistence of the
// realm's key set, or nil when the realm was never fetched. A nil lastFetch
// always allows a fetch. Otherwise a fetch is allowed once minInterval has
// fully elapsed; exactly at the boundary the fetch is allowed.
func ShouldFetch(lastFetch *time.Time, minInterval time.Duration, now time.Time) bool {
	if lastFetch == nil {
		return true
	}
	return now.Sub(*lastFetch) >= minInterval
}
