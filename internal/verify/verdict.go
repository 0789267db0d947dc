package verify

import (
	"strings"

	"simsanalytics/internal/domain"
)

// BucketFor collapses a raw country label into the two-way taxonomy.
// Only an explicit Bangladesh label lands in BD; India, International,
// and anything unspecified all count as International.
func BucketFor(country string) domain.CountryBucket {
	switch strings.ToLower(strings.TrimSpace(country)) {
	case "bd", "bangladesh":
		return domain.BucketBangladesh
	default:
		return domain.BucketInternational
	}
}

// Partition splits sources into the BD and International buckets,
// preserving input order within each bucket.
func Partition(srcs []domain.Source) (bd, intl []domain.Source) {
	for _, s := range srcs {
		bucket := s.Bucket
		if bucket == "" {
			bucket = BucketFor(s.Country)
		}
		if bucket == domain.BucketBangladesh {
			bd = append(bd, s)
		} else {
			intl = append(intl, s)
		}
	}
	return bd, intl
}

// Decide applies the two-bucket threshold rule: verified needs at least
// one BD and one International source after filtering; every other
// composition is unverified. Pure function, stable under reordering.
// An unverified verdict is a legitimate terminal state, not an error.
func Decide(srcs []domain.Source) domain.Verdict {
	bd, intl := Partition(srcs)
	if len(bd) >= 1 && len(intl) >= 1 {
		return domain.VerdictVerified
	}
	return domain.VerdictUnverified
}
