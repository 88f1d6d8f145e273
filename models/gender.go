package models

import "strings"

// Gender is the normalized bucket used for scoped positions and team scoring.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
	Other  Gender = "other"
)

// NormalizeGender maps the raw registration value onto a bucket. Empty values
// and "prefer-not-to-say" go to Other; everything else is lowercased, so
// 'Male' and 'male' land in the same bucket.
func NormalizeGender(raw string) Gender {
	g := strings.ToLower(strings.TrimSpace(raw))
	switch g {
	case "", "prefer-not-to-say":
		return Other
	case "male":
		return Male
	case "female":
		return Female
	default:
		return Other
	}
}

// ScoredGenders are the buckets that get top-N listings and team standings.
var ScoredGenders = []Gender{Male, Female}
