package common

// ClampInt limits v to [lo, hi]. When hi < lo, hi wins.
func ClampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func AbsInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
