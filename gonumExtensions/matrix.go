package gonumExtensions

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Zeros returns a (m by n) zero matrix. Since gonum can't allocate a matrix
// with a zero dimension an empty matrix is returned in that case.
func Zeros(m, n int) *mat.Dense {
	if m == 0 || n == 0 {
		return &mat.Dense{}
	}
	return mat.NewDense(m, n, nil)
}

// Eye returns a (m by n) band matrix with ones on the k-th diagonal. k > 0
// refers to a diagonal above the main diagonal and k < 0 to one below.
func Eye(m, n, k int) *mat.Dense {
	tmp := Zeros(m, n)
	FillDiagonal(tmp, 1., k)
	return tmp
}

// FillDiagonal sets every entry on the k-th diagonal of matrix to value.
//
// For k >= 0 the entries (i, i+k) are set and for k < 0 the entries (i-k, i).
// Entries falling outside the matrix are ignored.
func FillDiagonal(matrix *mat.Dense, value float64, k int) {
	if matrix.IsEmpty() {
		return
	}
	rows, cols := matrix.Dims()
	if k >= 0 {
		for col := k; col < cols && col-k < rows; col++ {
			matrix.Set(col-k, col, value)
		}
		return
	}
	for row := -k; row < rows && row+k < cols; row++ {
		matrix.Set(row, row+k, value)
	}
}

// Clone returns an independent copy of matrix. Empty matrices yield a new
// empty matrix.
func Clone(matrix *mat.Dense) *mat.Dense {
	if matrix.IsEmpty() {
		return &mat.Dense{}
	}
	return mat.DenseCopyOf(matrix)
}

// NANORINF checks if there are any NAN or INF in matrix
func NANORINF(matrix mat.Matrix) bool {
	m, n := matrix.Dims()
	for row := 0; row < m; row++ {
		for col := 0; col < n; col++ {
			if math.IsNaN(matrix.At(row, col)) || math.IsInf(matrix.At(row, col), 0) {
				return true
			}
		}
	}
	return false
}
