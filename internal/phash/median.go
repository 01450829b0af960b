package phash

// quickselect returns the k-th smallest element (0-indexed) of values,
// using Hoare's selection algorithm. Expected linear time; values is
// partitioned in place so callers should pass a scratch copy.
func quickselect(values []float64, k int) float64 {
	lo, hi := 0, len(values)-1
	for lo < hi {
		pivotIndex := partition(values, lo, hi)
		switch {
		case k == pivotIndex:
			return values[k]
		case k < pivotIndex:
			hi = pivotIndex - 1
		default:
			lo = pivotIndex + 1
		}
	}
	return values[lo]
}

func partition(values []float64, lo, hi int) int {
	pivot := values[hi]
	i := lo
	for j := lo; j < hi; j++ {
		if values[j] < pivot {
			values[i], values[j] = values[j], values[i]
			i++
		}
	}
	values[i], values[hi] = values[hi], values[i]
	return i
}

// medianOf63 returns the lower median (index 31) of a 63-element slice,
// matching nth_element(begin, begin+31, end) on an odd-length array.
func medianOf63(values [63]float64) float64 {
	scratch := values
	return quickselect(scratch[:], len(scratch)/2)
}
