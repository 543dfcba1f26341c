package geom

import "math"

// Solve3 solves the 3x3 linear system m·x = rhs by Gauss-Jordan
// elimination with partial pivoting. ok is false when the system is
// singular (no unique solution).
func Solve3(m [3][3]float64, rhs [3]float64) (x [3]float64, ok bool) {
	for i := range 3 {
		// Pick the row with the largest pivot in column i.
		pivot := i
		for j := i + 1; j < 3; j++ {
			if math.Abs(m[j][i]) > math.Abs(m[pivot][i]) {
				pivot = j
			}
		}
		if m[pivot][i] == 0 {
			return x, false
		}
		m[i], m[pivot] = m[pivot], m[i]
		rhs[i], rhs[pivot] = rhs[pivot], rhs[i]

		// Normalize the pivot row.
		c := m[i][i]
		for k := i; k < 3; k++ {
			m[i][k] /= c
		}
		rhs[i] /= c

		// Eliminate column i from the other rows.
		for j := range 3 {
			if j == i {
				continue
			}
			c := m[j][i]
			for k := i; k < 3; k++ {
				m[j][k] -= c * m[i][k]
			}
			rhs[j] -= c * rhs[i]
		}
	}
	return rhs, true
}
