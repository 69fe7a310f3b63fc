package utils

// Min returns the minimum of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// RoundUpToMultiple rounds n up to the nearest multiple of granularity.
// A granularity of zero or less returns n unchanged.
func RoundUpToMultiple(n, granularity int) int {
	if granularity <= 0 || n <= 0 {
		return Max(n, 0)
	}
	remainder := n % granularity
	if remainder == 0 {
		return n
	}
	return n + granularity - remainder
}
