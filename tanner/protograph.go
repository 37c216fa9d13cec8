package tanner

import (
	"fmt"
)

//Triple is a single protograph cell.
type Triple struct {
	Row    int
	Column int
	Value  float64
}

//Protograph is a Tanner graph whose entries may carry values other than one.
// It is the seed pattern used when lifting larger structured codes.
type Protograph struct {
	Graph
}

//NewProtograph builds a protograph from triples. Rows are created up to the largest
// row index and entries are appended in input order. A (row, column) pair may only
// be given once; repeats return ErrDuplicateEntry rather than silently shadowing.
func NewProtograph(triples []Triple) (*Protograph, error) {
	numRows := 0
	for _, t := range triples {
		if t.Row < 0 || t.Column < 0 {
			return nil, fmt.Errorf("%w: (%v,%v)", ErrInvalidEntry, t.Row, t.Column)
		}
		if t.Row+1 > numRows {
			numRows = t.Row + 1
		}
	}

	p := &Protograph{Graph: Graph{rows: make([][]Entry, 0, numRows)}}
	for i := 0; i < numRows; i++ {
		p.addRow()
	}

	for _, t := range triples {
		if err := p.appendEntry(t.Row, Entry{Index: t.Column, Value: t.Value}); err != nil {
			return nil, err
		}
	}
	return p, nil
}

//Width is one more than the largest column index across all entries.
func (p *Protograph) Width() int {
	return p.inferredWidth()
}

//Triples lists every entry, row by row in insertion order.
func (p *Protograph) Triples() []Triple {
	result := make([]Triple, 0)
	for i, row := range p.rows {
		for _, e := range row {
			result = append(result, Triple{Row: i, Column: e.Index, Value: e.Value})
		}
	}
	return result
}
