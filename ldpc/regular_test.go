package ldpc

import (
	"context"
	"errors"
	"math/rand"
	"reflect"
	"strconv"
	"testing"
)

func newTestBuilder(seed int64) *Builder {
	return NewBuilder(rand.New(rand.NewSource(seed)), nil)
}

type fakePEG struct {
	rows  [][]int
	err   error
	calls int
	seed  int64
	args  []int
}

func (f *fakePEG) Run(ctx context.Context, n, m, c int, seed int64) ([][]int, error) {
	f.calls++
	f.seed = seed
	f.args = []int{n, m, c}
	return f.rows, f.err
}

func requireDistinctRows(t *testing.T, r *Regular) {
	for i := 0; i < r.Height(); i++ {
		cols, err := r.Columns(i)
		if err != nil {
			t.Fatalf("expected no error but found: %v", err)
		}
		seen := make(map[int]bool)
		for _, c := range cols {
			if seen[c] {
				t.Fatalf("row %v has column %v more than once: %v", i, c, cols)
			}
			if c < 0 || c >= r.N {
				t.Fatalf("row %v has column %v outside 0..%v", i, c, r.N-1)
			}
			seen[c] = true
		}
	}
}

func TestBuilder_RegularInvalidInput(t *testing.T) {
	tests := []struct {
		args     []int
		method   Method
		expected error
	}{
		{[]int{}, Gallager, ErrInvalidInput},
		{[]int{12, 6}, Gallager, ErrInvalidInput},
		{[]int{12, 6, 2, 4}, Gallager, ErrInvalidInput},
		{[]int{0, 6, 2}, PopulateRows, ErrInvalidInput},
		{[]int{12, 0, 2}, PopulateRows, ErrInvalidInput},
		{[]int{12, 6, -1}, PopulateColumns, ErrInvalidInput},
		{[]int{12, 6, 2}, Method("random"), ErrInvalidMethod},
		{[]int{12, 6, 2}, PEG, ErrNoPEG},
		{[]int{6, 3, 2}, Gallager, ErrUnconstructible},
		{[]int{10, 4, 3}, Gallager, ErrUnconstructible},
		{[]int{2, 6, 2}, Gallager, ErrUnconstructible},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			actual, err := newTestBuilder(1).Regular(context.Background(), test.args, test.method)
			if !errors.Is(err, test.expected) {
				t.Fatalf("expected %v but found %v", test.expected, err)
			}
			if actual != nil {
				t.Fatalf("expected no graph but found %v", actual)
			}
		})
	}
}

func TestParseMethod(t *testing.T) {
	for _, m := range Methods {
		actual, err := ParseMethod(string(m))
		if err != nil || actual != m {
			t.Fatalf("expected %v but found %v (%v)", m, actual, err)
		}
	}
	if _, err := ParseMethod("Gallager"); !errors.Is(err, ErrInvalidMethod) {
		t.Fatalf("expected ErrInvalidMethod but found %v", err)
	}
}

func TestBuilder_RegularGallager(t *testing.T) {
	tests := []struct {
		args       []int
		r          int
		rows, cols int
	}{
		{[]int{12, 6, 2}, 4, 6, 12},
		{[]int{20, 15, 3}, 4, 15, 20},
		{[]int{8, 4, 2}, 4, 4, 8},
		{[]int{9, 9, 3}, 3, 9, 9},
		{[]int{100, 50, 3}, 6, 48, 100}, // 100%6 != 0
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			b := newTestBuilder(int64(i))
			actual, err := b.Regular(context.Background(), test.args, Gallager)
			if test.args[0]%test.r != 0 {
				if !errors.Is(err, ErrUnconstructible) {
					t.Fatalf("expected ErrUnconstructible but found %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error but found: %v", err)
			}
			if actual.R != test.r {
				t.Fatalf("expected r == %v but found %v", test.r, actual.R)
			}
			if actual.Height() != test.rows || actual.Width() != test.cols {
				t.Fatalf("expected %vx%v but found %vx%v", test.rows, test.cols, actual.Height(), actual.Width())
			}
			if !actual.IsRegular(test.r, test.args[2]) {
				t.Fatalf("expected row weight %v and column weight %v but found %v and %v",
					test.r, test.args[2], actual.RowWeights(), actual.ColumnWeights())
			}
			requireDistinctRows(t, actual)
		})
	}
}

func TestBuilder_RegularGallagerMatrix(t *testing.T) {
	actual, err := newTestBuilder(7).Regular(context.Background(), []int{12, 6, 2}, Gallager)
	if err != nil {
		t.Fatalf("expected no error but found: %v", err)
	}

	matrix := actual.AsMatrix()
	if len(matrix) != 6 {
		t.Fatalf("expected 6 rows but found %v", len(matrix))
	}
	colSums := make([]float64, 12)
	for _, row := range matrix {
		if len(row) != 12 {
			t.Fatalf("expected 12 columns but found %v", len(row))
		}
		sum := 0.0
		for j, v := range row {
			sum += v
			colSums[j] += v
		}
		if sum != 4 {
			t.Fatalf("expected four ones per row but found %v", row)
		}
	}
	for j, s := range colSums {
		if s != 2 {
			t.Fatalf("expected two ones in column %v but found %v", j, s)
		}
	}
}

func TestBuilder_RegularReproducible(t *testing.T) {
	for _, m := range []Method{Gallager, PopulateRows, PopulateColumns} {
		a, err := newTestBuilder(99).Regular(context.Background(), []int{24, 12, 3}, m)
		if err != nil {
			t.Fatalf("expected no error but found: %v", err)
		}
		b, err := newTestBuilder(99).Regular(context.Background(), []int{24, 12, 3}, m)
		if err != nil {
			t.Fatalf("expected no error but found: %v", err)
		}
		if !reflect.DeepEqual(a.AsMatrix(), b.AsMatrix()) {
			t.Fatalf("expected %v constructions with the same seed to match", m)
		}
	}
}

func TestBuilder_RegularPopulate(t *testing.T) {
	tests := []struct {
		args []int
	}{
		{[]int{12, 6, 2}},
		{[]int{6, 3, 2}},
		{[]int{24, 12, 3}},
		{[]int{20, 15, 3}},
		{[]int{100, 50, 3}},
		{[]int{7, 7, 3}},
		{[]int{4, 4, 4}},
	}
	for i, test := range tests {
		for _, method := range []Method{PopulateRows, PopulateColumns} {
			t.Run(strconv.Itoa(i)+string(method), func(t *testing.T) {
				n, m, c := test.args[0], test.args[1], test.args[2]
				actual, err := newTestBuilder(int64(i)).Regular(context.Background(), test.args, method)
				if err != nil {
					t.Fatalf("expected no error but found: %v", err)
				}
				if actual.Entries() != n*c {
					t.Fatalf("expected %v entries but found %v", n*c, actual.Entries())
				}
				if actual.Height() != m || actual.Width() != n {
					t.Fatalf("expected %vx%v but found %vx%v", m, n, actual.Height(), actual.Width())
				}
				requireDistinctRows(t, actual)

				switch method {
				case PopulateRows:
					for j, w := range actual.RowWeights() {
						if w != actual.R {
							t.Fatalf("expected row %v weight %v but found %v", j, actual.R, w)
						}
					}
				case PopulateColumns:
					for j, w := range actual.ColumnWeights() {
						if w != c {
							t.Fatalf("expected column %v weight %v but found %v", j, c, w)
						}
					}
				}
			})
		}
	}
}

func TestBuilder_RegularIrregularParameters(t *testing.T) {
	// r = floor(10/4*3) = 7 so m*r = 28 while n*c = 30
	actual, err := newTestBuilder(3).Regular(context.Background(), []int{10, 4, 3}, PopulateRows)
	if err != nil {
		t.Fatalf("expected no error but found: %v", err)
	}
	if actual.R != 7 {
		t.Fatalf("expected r == 7 but found %v", actual.R)
	}
	if actual.Entries() != 28 {
		t.Fatalf("expected 28 entries but found %v", actual.Entries())
	}
	requireDistinctRows(t, actual)

	actual, err = newTestBuilder(3).Regular(context.Background(), []int{10, 4, 3}, PopulateColumns)
	if err != nil {
		t.Fatalf("expected no error but found: %v", err)
	}
	if actual.Entries() != 30 {
		t.Fatalf("expected 30 entries but found %v", actual.Entries())
	}
	requireDistinctRows(t, actual)
}

func TestBuilder_RegularPEG(t *testing.T) {
	peg := &fakePEG{rows: [][]int{{0, 1, 2, 3}, {2, 3, 4, 5}, {0, 1, 4, 5}}}
	b := NewBuilder(rand.New(rand.NewSource(5)), peg)

	actual, err := b.Regular(context.Background(), []int{6, 3, 2}, PEG)
	if err != nil {
		t.Fatalf("expected no error but found: %v", err)
	}
	if peg.calls != 1 {
		t.Fatalf("expected one PEG call but found %v", peg.calls)
	}
	if !reflect.DeepEqual(peg.args, []int{6, 3, 2}) {
		t.Fatalf("expected [6 3 2] but found %v", peg.args)
	}
	if peg.seed < 0 || peg.seed >= pegSeedRange {
		t.Fatalf("expected seed in [0,%v) but found %v", pegSeedRange, peg.seed)
	}
	if !actual.IsRegular(4, 2) {
		t.Fatalf("expected regular graph but found %v", actual.AsMatrix())
	}

	failing := &fakePEG{err: errors.New("tool exploded")}
	b.PEG = failing
	actual, err = b.Regular(context.Background(), []int{6, 3, 2}, PEG)
	if err == nil || actual != nil {
		t.Fatalf("expected error and no graph but found %v, %v", actual, err)
	}
}

func TestNewBuilder_NilRand(t *testing.T) {
	b := NewBuilder(nil, nil)
	if b.Rand == nil {
		t.Fatalf("expected a random source")
	}
	if _, err := b.Regular(context.Background(), []int{12, 6, 2}, Gallager); err != nil {
		t.Fatalf("expected no error but found: %v", err)
	}
}

func TestBuilder_RegularReadOnly(t *testing.T) {
	actual, err := newTestBuilder(3).Regular(context.Background(), []int{12, 6, 2}, Gallager)
	if err != nil {
		t.Fatalf("expected no error but found: %v", err)
	}
	before, _ := actual.Columns(1)

	row, err := actual.Row(1)
	if err != nil {
		t.Fatalf("expected no error but found: %v", err)
	}
	for j := range row {
		row[j].Index = row[0].Index
	}

	after, _ := actual.Columns(1)
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("expected %v but found %v", before, after)
	}
	if !actual.IsRegular(4, 2) {
		t.Fatalf("expected row weight 4 and column weight 2 but found %v and %v", actual.RowWeights(), actual.ColumnWeights())
	}
	requireDistinctRows(t, actual)
}
