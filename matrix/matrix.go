// Package matrix provides a small fixed-size dense matrix used to hold
// pairwise similarity scores between two HPOSets. It intentionally does
// not resize: shapes are known up front from the two sets being
// compared, and a resizing API would invite silent reshuffling of rows
// that a caller has already indexed into.
package matrix

import "github.com/hpokit/gohpo/ontology/hpoerr"

// Matrix is a dense, row-major buffer of rows*cols float64 values.
type Matrix struct {
	rows, cols int
	data       []float64
}

// New allocates a rows x cols matrix, zero-initialized.
func New(rows, cols int) *Matrix {
	return &Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

func (m *Matrix) offset(row, col int) (int, error) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return 0, hpoerr.Index(row, col, m.rows, m.cols)
	}
	return row*m.cols + col, nil
}

// At returns the value at (row, col).
func (m *Matrix) At(row, col int) (float64, error) {
	off, err := m.offset(row, col)
	if err != nil {
		return 0, err
	}
	return m.data[off], nil
}

// Set writes value at (row, col).
func (m *Matrix) Set(row, col int, value float64) error {
	off, err := m.offset(row, col)
	if err != nil {
		return err
	}
	m.data[off] = value
	return nil
}

// Row returns a copy of row r.
func (m *Matrix) Row(r int) ([]float64, error) {
	if r < 0 || r >= m.rows {
		return nil, hpoerr.Index(r, 0, m.rows, m.cols)
	}
	out := make([]float64, m.cols)
	copy(out, m.data[r*m.cols:(r+1)*m.cols])
	return out, nil
}

// Col returns a copy of column c.
func (m *Matrix) Col(c int) ([]float64, error) {
	if c < 0 || c >= m.cols {
		return nil, hpoerr.Index(0, c, m.rows, m.cols)
	}
	out := make([]float64, m.rows)
	for r := 0; r < m.rows; r++ {
		out[r] = m.data[r*m.cols+c]
	}
	return out, nil
}

// RowMax returns the maximum value in row r, and its column index. It
// errors on a zero-width row, which has no maximum.
func (m *Matrix) RowMax(r int) (float64, int, error) {
	row, err := m.Row(r)
	if err != nil {
		return 0, 0, err
	}
	if len(row) == 0 {
		return 0, 0, hpoerr.Domain("cannot take RowMax of a zero-width matrix")
	}
	best, bestCol := row[0], 0
	for i, v := range row[1:] {
		if v > best {
			best, bestCol = v, i+1
		}
	}
	return best, bestCol, nil
}

// ColMax returns the maximum value in column c, and its row index.
func (m *Matrix) ColMax(c int) (float64, int, error) {
	col, err := m.Col(c)
	if err != nil {
		return 0, 0, err
	}
	if len(col) == 0 {
		return 0, 0, hpoerr.Domain("cannot take ColMax of a zero-width matrix")
	}
	best, bestRow := col[0], 0
	for i, v := range col[1:] {
		if v > best {
			best, bestRow = v, i+1
		}
	}
	return best, bestRow, nil
}

// Mean returns the arithmetic mean of every cell.
func (m *Matrix) Mean() float64 {
	if len(m.data) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range m.data {
		sum += v
	}
	return sum / float64(len(m.data))
}
