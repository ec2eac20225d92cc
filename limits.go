package keyset

const (
	// MaxLimit caps page sizes requested through Request.Decode.
	MaxLimit = 100
	// DefaultLimit replaces a missing or non-positive requested page size.
	DefaultLimit = 10
)

// IsNormalizedLimitMax clamps limit into [1, maxLimit], substituting
// DefaultLimit for non-positive values. The flag reports whether limit was
// already valid.
func IsNormalizedLimitMax(limit int, maxLimit int) (int, bool) {
	if limit <= 0 {
		return min(DefaultLimit, maxLimit), false
	} else if limit > maxLimit {
		return maxLimit, false
	}

	return limit, true
}

// NormalizeLimitMax clamps limit into [1, maxLimit].
func NormalizeLimitMax(limit int, maxLimit int) int {
	ret, _ := IsNormalizedLimitMax(limit, maxLimit)
	return ret
}

func NormalizeLimit(limit int) int {
	return NormalizeLimitMax(limit, MaxLimit)
}
