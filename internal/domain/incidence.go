package domain

import (
	"encoding/json"
	"slices"
)

// IncidenceMatrix is a rows×cols boolean matrix relating nodes (rows) to
// hyperedges (columns). Dimensions are tracked explicitly so a k×0 matrix
// keeps its k rows through a double transpose.
type IncidenceMatrix struct {
	rows  int
	cols  int
	cells []bool // row-major
}

// NewIncidenceMatrix creates an all-false rows×cols matrix
func NewIncidenceMatrix(rows, cols int) IncidenceMatrix {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return IncidenceMatrix{rows: rows, cols: cols, cells: make([]bool, rows*cols)}
}

// Incidence builds the node×hyperedge matrix: cell (i, j) is true iff
// nodes[i] is a head or tail member of edges[j]. Row order follows nodes and
// column order follows edges; neither axis is sorted or deduplicated.
func Incidence(nodes []string, edges []SimpleHyperEdge) IncidenceMatrix {
	m := NewIncidenceMatrix(len(nodes), len(edges))
	for i, node := range nodes {
		for j := range edges {
			if edges[j].Incident(node) {
				m.Set(i, j, true)
			}
		}
	}
	return m
}

// Rows returns the number of rows
func (m IncidenceMatrix) Rows() int { return m.rows }

// Cols returns the number of columns
func (m IncidenceMatrix) Cols() int { return m.cols }

// At returns cell (i, j). It panics if the index is out of range.
func (m IncidenceMatrix) At(i, j int) bool {
	m.check(i, j)
	return m.cells[i*m.cols+j]
}

// Set assigns cell (i, j). It panics if the index is out of range.
func (m IncidenceMatrix) Set(i, j int, v bool) {
	m.check(i, j)
	m.cells[i*m.cols+j] = v
}

func (m IncidenceMatrix) check(i, j int) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic("domain: incidence index out of range")
	}
}

// Row returns a copy of row i
func (m IncidenceMatrix) Row(i int) []bool {
	if i < 0 || i >= m.rows {
		panic("domain: incidence row out of range")
	}
	return slices.Clone(m.cells[i*m.cols : (i+1)*m.cols])
}

// Column returns a copy of column j
func (m IncidenceMatrix) Column(j int) []bool {
	if j < 0 || j >= m.cols {
		panic("domain: incidence column out of range")
	}
	col := make([]bool, m.rows)
	for i := range col {
		col[i] = m.cells[i*m.cols+j]
	}
	return col
}

// Transpose returns M' where M'[j][i] = M[i][j]
func (m IncidenceMatrix) Transpose() IncidenceMatrix {
	t := NewIncidenceMatrix(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			t.cells[j*t.cols+i] = m.cells[i*m.cols+j]
		}
	}
	return t
}

// Transpose is the function form of IncidenceMatrix.Transpose
func Transpose(m IncidenceMatrix) IncidenceMatrix {
	return m.Transpose()
}

// Equal reports whether both matrices have the same shape and cells
func (m IncidenceMatrix) Equal(other IncidenceMatrix) bool {
	return m.rows == other.rows && m.cols == other.cols && slices.Equal(m.cells, other.cells)
}

// Slices returns the matrix as a slice of rows
func (m IncidenceMatrix) Slices() [][]bool {
	out := make([][]bool, m.rows)
	for i := range out {
		out[i] = m.Row(i)
	}
	return out
}

type incidenceJSON struct {
	Rows   int      `json:"rows"`
	Cols   int      `json:"cols"`
	Matrix [][]bool `json:"matrix"`
}

// MarshalJSON encodes the matrix with explicit dimensions
func (m IncidenceMatrix) MarshalJSON() ([]byte, error) {
	return json.Marshal(incidenceJSON{Rows: m.rows, Cols: m.cols, Matrix: m.Slices()})
}
