package phash

import "math"

// dct2D applies a separable, orthonormal 2-D DCT-II to a square matrix.
// Applying the 1-D transform to every row and then every column is
// mathematically equivalent to the direct 2-D formula and avoids the O(n^4)
// cost of evaluating it pointwise, which is what the teacher's reference
// implementation does when it falls back off its native DCT call.
func dct2D(matrix [][]float64) [][]float64 {
	n := len(matrix)
	table := dctCoeffTable(n)

	rowed := make([][]float64, n)
	for y := 0; y < n; y++ {
		rowed[y] = dct1D(matrix[y], table)
	}

	out := make([][]float64, n)
	for y := 0; y < n; y++ {
		out[y] = make([]float64, n)
	}
	column := make([]float64, n)
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			column[y] = rowed[y][x]
		}
		transformed := dct1D(column, table)
		for y := 0; y < n; y++ {
			out[y][x] = transformed[y]
		}
	}
	return out
}

// dctCoeffTable precomputes cos(pi/N*(x+0.5)*u) for all (u, x) pairs.
func dctCoeffTable(n int) [][]float64 {
	table := make([][]float64, n)
	for u := 0; u < n; u++ {
		table[u] = make([]float64, n)
		for x := 0; x < n; x++ {
			table[u][x] = math.Cos(math.Pi / float64(n) * (float64(x) + 0.5) * float64(u))
		}
	}
	return table
}

// dct1D computes the orthonormal DCT-II of values using a precomputed
// cosine table indexed [u][x].
func dct1D(values []float64, table [][]float64) []float64 {
	n := len(values)
	out := make([]float64, n)
	norm0 := math.Sqrt(1.0 / float64(n))
	normU := math.Sqrt(2.0 / float64(n))
	for u := 0; u < n; u++ {
		var sum float64
		row := table[u]
		for x := 0; x < n; x++ {
			sum += values[x] * row[x]
		}
		scale := normU
		if u == 0 {
			scale = norm0
		}
		out[u] = sum * scale
	}
	return out
}
