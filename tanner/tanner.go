package tanner

import (
	"errors"
	"fmt"
	"strings"

	mat "github.com/nathanhack/sparsemat"
	"golang.org/x/exp/slices"
	mat2 "gonum.org/v1/gonum/mat"
)

var (
	// ErrOutOfRange is returned when a row index is outside 0..Height()-1.
	ErrOutOfRange = errors.New("tanner: row index out of range")
	// ErrInvalidEntry is returned for negative row or column indices.
	ErrInvalidEntry = errors.New("tanner: invalid entry")
	// ErrDuplicateEntry is returned when a column appears twice in the same row.
	ErrDuplicateEntry = errors.New("tanner: duplicate entry")
)

//Entry is an edge between a check node (the row holding it) and the variable node Index.
// Binary graphs always carry a Value of 1.
type Entry struct {
	Index int
	Value float64
}

//Graph is a Tanner graph stored row-major: check node -> connected variable nodes.
// Graphs are filled in by their constructors and only read afterwards.
type Graph struct {
	rows     [][]Entry
	minWidth int
}

//New creates an empty graph.
func New() *Graph {
	return &Graph{rows: make([][]Entry, 0)}
}

//FromRows creates a binary graph from a row -> columns listing. width is the
// declared number of variable nodes; columns never referenced still count toward Width().
func FromRows(rows [][]int, width int) *Graph {
	g := &Graph{
		rows:     make([][]Entry, len(rows)),
		minWidth: width,
	}
	for i, cols := range rows {
		g.rows[i] = make([]Entry, len(cols))
		for j, c := range cols {
			g.rows[i][j] = Entry{Index: c, Value: 1}
		}
	}
	return g
}

// addRow appends an empty row and returns its index
func (g *Graph) addRow() int {
	g.rows = append(g.rows, make([]Entry, 0))
	return len(g.rows) - 1
}

// appendEntry adds e to the end of row i, a column may only appear once per row
func (g *Graph) appendEntry(i int, e Entry) error {
	if i < 0 || i >= len(g.rows) {
		return fmt.Errorf("%w: %v (height %v)", ErrOutOfRange, i, len(g.rows))
	}
	if e.Index < 0 {
		return fmt.Errorf("%w: column %v", ErrInvalidEntry, e.Index)
	}
	if slices.IndexFunc(g.rows[i], func(x Entry) bool { return x.Index == e.Index }) >= 0 {
		return fmt.Errorf("%w: (%v,%v)", ErrDuplicateEntry, i, e.Index)
	}
	g.rows[i] = append(g.rows[i], e)
	return nil
}

//Row returns a copy of the entries of row i in insertion order.
func (g *Graph) Row(i int) ([]Entry, error) {
	row, err := g.row(i)
	if err != nil {
		return nil, err
	}
	return slices.Clone(row), nil
}

func (g *Graph) row(i int) ([]Entry, error) {
	if i < 0 || i >= len(g.rows) {
		return nil, fmt.Errorf("%w: %v (height %v)", ErrOutOfRange, i, len(g.rows))
	}
	return g.rows[i], nil
}

//Columns returns the variable node indices of row i.
func (g *Graph) Columns(i int) ([]int, error) {
	row, err := g.row(i)
	if err != nil {
		return nil, err
	}
	cols := make([]int, len(row))
	for j, e := range row {
		cols[j] = e.Index
	}
	return cols, nil
}

//Height is the number of check nodes.
func (g *Graph) Height() int {
	return len(g.rows)
}

//Width returns one more than the largest column index found in any row, or 0 when
// the graph has no entries. It is never smaller than the declared width of FromRows.
func (g *Graph) Width() int {
	w := g.inferredWidth()
	if w < g.minWidth {
		return g.minWidth
	}
	return w
}

func (g *Graph) inferredWidth() int {
	max := -1
	for _, row := range g.rows {
		for _, e := range row {
			if e.Index > max {
				max = e.Index
			}
		}
	}
	return max + 1
}

//Get returns the value stored at (r,c) or 0 when no entry exists.
func (g *Graph) Get(r, c int) (float64, error) {
	row, err := g.row(r)
	if err != nil {
		return 0, err
	}
	for _, e := range row {
		if e.Index == c {
			return e.Value, nil
		}
	}
	return 0, nil
}

//MaxIndex is the largest column index in row, or -1 for an empty row.
func (g *Graph) MaxIndex(row int) (int, error) {
	entries, err := g.row(row)
	if err != nil {
		return 0, err
	}
	max := -1
	for _, e := range entries {
		if e.Index > max {
			max = e.Index
		}
	}
	return max, nil
}

//ContainsIndex reports whether row has an entry for column index. AsMatrix uses it to
// skip the columns a row does not hold.
func (g *Graph) ContainsIndex(index, row int) (bool, error) {
	entries, err := g.row(row)
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if e.Index == index {
			return true, nil
		}
	}
	return false, nil
}

//AsMatrix densifies the graph. Each row is first built up to its own largest column,
// then every row is padded with zeros to Width() so the result is rectangular.
func (g *Graph) AsMatrix() [][]float64 {
	matrix := make([][]float64, len(g.rows))
	for i := range g.rows {
		max, _ := g.MaxIndex(i)
		row := make([]float64, max+1)
		for j := range row {
			if ok, _ := g.ContainsIndex(j, i); ok {
				row[j], _ = g.Get(i, j)
			}
		}
		matrix[i] = row
	}
	normalize(matrix, g.Width())
	return matrix
}

//normalize right pads every row with zeros up to the longest row (or width if larger)
func normalize(matrix [][]float64, width int) {
	for _, row := range matrix {
		if len(row) > width {
			width = len(row)
		}
	}
	for i, row := range matrix {
		if len(row) < width {
			matrix[i] = append(row, make([]float64, width-len(row))...)
		}
	}
}

//Dense returns the dense form as a gonum matrix. Empty graphs return nil since gonum
// does not allow zero sized matrices.
func (g *Graph) Dense() *mat2.Dense {
	rows, cols := g.Height(), g.Width()
	if rows == 0 || cols == 0 {
		return nil
	}
	data := make([]float64, 0, rows*cols)
	for _, row := range g.AsMatrix() {
		data = append(data, row...)
	}
	return mat2.NewDense(rows, cols, data)
}

//Pretty formats the dense matrix with gonum's bracketed layout, "" for an empty graph.
func (g *Graph) Pretty() string {
	d := g.Dense()
	if d == nil {
		return ""
	}
	return fmt.Sprintf("%v\n", mat2.Formatted(d, mat2.Squeeze()))
}

//H returns the sparse parity matrix of the graph. Any nonzero entry becomes a one.
func (g *Graph) H() mat.SparseMat {
	H := mat.CSRMat(g.Height(), g.Width())
	for i, row := range g.rows {
		for _, e := range row {
			if e.Value != 0 {
				H.Set(i, e.Index, 1)
			}
		}
	}
	return H
}

//Transpose swaps check and variable nodes, keeping entry values. The result has
// Width() rows even when trailing columns are empty.
func (g *Graph) Transpose() *Graph {
	t := &Graph{
		rows:     make([][]Entry, g.Width()),
		minWidth: g.Height(),
	}
	for i := range t.rows {
		t.rows[i] = make([]Entry, 0)
	}
	for i, row := range g.rows {
		for _, e := range row {
			t.rows[e.Index] = append(t.rows[e.Index], Entry{Index: i, Value: e.Value})
		}
	}
	return t
}

func (g *Graph) String() string {
	buf := strings.Builder{}
	for _, row := range g.AsMatrix() {
		for j, v := range row {
			if j > 0 {
				buf.WriteString(" ")
			}
			buf.WriteString(fmt.Sprintf("%v", v))
		}
		buf.WriteString("\n")
	}
	return buf.String()
}
