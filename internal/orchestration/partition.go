package orchestration

// Range is the half-open trial index range [Start, End).
type Range struct {
	Start, End uint64
}

// Len returns the number of trials in the range.
func (r Range) Len() uint64 {
	return r.End - r.Start
}

// Partition splits [0, n) into at most parts contiguous, disjoint, non-empty
// ranges whose sizes differ by at most one. It returns nil when n is 0.
func Partition(n uint64, parts int) []Range {
	if n == 0 {
		return nil
	}
	if parts < 1 {
		parts = 1
	}
	if uint64(parts) > n {
		parts = int(n)
	}

	size := n / uint64(parts)
	extra := n % uint64(parts)
	ranges := make([]Range, parts)
	var start uint64
	for i := range ranges {
		l := size
		if uint64(i) < extra {
			l++
		}
		ranges[i] = Range{Start: start, End: start + l}
		start += l
	}
	return ranges
}
