package numeric

import (
	"errors"
	"fmt"
)

// ErrShape indicates an operation on rows or columns outside the matrix.
var ErrShape = errors.New("numeric: shape mismatch")

// Matrix is a dense row-major matrix. The zero value is an empty 0×0 matrix.
type Matrix struct {
	rows, cols int
	data       []float64
}

// NewMatrix returns a zero-filled rows×cols matrix.
func NewMatrix(rows, cols int) *Matrix {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("numeric: negative dimensions %dx%d", rows, cols))
	}
	return &Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

// Stack builds an N×3 matrix whose row i is vs[i].
func Stack(vs []Vec3) *Matrix {
	m := NewMatrix(len(vs), 3)
	for i, v := range vs {
		copy(m.data[i*3:i*3+3], v[:])
	}
	return m
}

// Broadcast repeats a across cols columns, producing an N×cols matrix whose
// row i holds a[i] in every column. This is the transpose of broadcasting a
// to (cols, N).
func Broadcast(a Array, cols int) *Matrix {
	m := NewMatrix(len(a), cols)
	for i, v := range a {
		row := m.data[i*cols : (i+1)*cols]
		for j := range row {
			row[j] = v
		}
	}
	return m
}

func (m *Matrix) Rows() int { return m.rows }
func (m *Matrix) Cols() int { return m.cols }

func (m *Matrix) At(i, j int) float64 {
	return m.data[i*m.cols+j]
}

// Row returns row i as a Vec3. Only valid for 3-column matrices.
func (m *Matrix) Row(i int) (Vec3, error) {
	if m.cols != 3 || i < 0 || i >= m.rows {
		return Vec3{}, fmt.Errorf("%w: row %d of %dx%d", ErrShape, i, m.rows, m.cols)
	}
	var v Vec3
	copy(v[:], m.data[i*3:i*3+3])
	return v, nil
}

func (m *Matrix) SetRow(i int, v Vec3) error {
	if m.cols != 3 || i < 0 || i >= m.rows {
		return fmt.Errorf("%w: row %d of %dx%d", ErrShape, i, m.rows, m.cols)
	}
	copy(m.data[i*3:i*3+3], v[:])
	return nil
}

// Flat returns a copy of the backing data in row-major order.
func (m *Matrix) Flat() Array {
	return Array(m.data).Clone()
}

func (m *Matrix) Clone() *Matrix {
	return &Matrix{rows: m.rows, cols: m.cols, data: Array(m.data).Clone()}
}
