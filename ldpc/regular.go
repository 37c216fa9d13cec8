package ldpc

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/nathanhack/ldpc/tanner"
	"github.com/sirupsen/logrus"
)

var (
	// ErrInvalidInput is returned for a malformed [n, m, c] parameter list.
	ErrInvalidInput = errors.New("ldpc: invalid input provided")
	// ErrInvalidMethod is returned for an unknown construction method.
	ErrInvalidMethod = errors.New("ldpc: invalid construction method")
	// ErrUnconstructible is returned when a construction cannot produce a regular code
	// for the given parameters.
	ErrUnconstructible = errors.New("ldpc: cannot generate perfectly regular matrix for the given arguments")
	// ErrNoPEG is returned when the peg method is requested without a PEG runner.
	ErrNoPEG = errors.New("ldpc: no PEG runner configured")
)

//Method selects how the parity matrix is constructed.
type Method string

const (
	PEG             Method = "peg"
	Gallager        Method = "gallager"
	PopulateRows    Method = "populate-rows"
	PopulateColumns Method = "populate-columns"
)

//Methods lists every supported construction method.
var Methods = []Method{PEG, Gallager, PopulateRows, PopulateColumns}

//ParseMethod converts a method tag into a Method.
func ParseMethod(tag string) (Method, error) {
	for _, m := range Methods {
		if string(m) == tag {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMethod, tag)
}

//PEGRunner builds a regular graph with an external progressive edge growth tool.
// It returns the row -> 0-based column listing for m checks and n variables with
// variable degree c.
type PEGRunner interface {
	Run(ctx context.Context, n, m, c int, seed int64) ([][]int, error)
}

//pegSeedRange bounds the seed handed to the PEG tool
const pegSeedRange = 10000000

//Builder constructs regular LDPC codes. All randomness is drawn from Rand so a
// seeded source gives reproducible codes.
type Builder struct {
	Rand *rand.Rand
	PEG  PEGRunner
}

//NewBuilder creates a Builder. A nil rng is replaced by a time seeded source.
func NewBuilder(rng *rand.Rand, peg PEGRunner) *Builder {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Builder{Rand: rng, PEG: peg}
}

//Regular is a regular LDPC parity check graph along with the parameters used to build it.
type Regular struct {
	*tanner.Graph
	N      int // codeword length (variable nodes)
	M      int // requested number of checks
	C      int // column weight
	R      int // inferred row weight
	Method Method
}

//Regular builds a regular code from args = [n, m, c]: codeword length, number of
// checks and column weight. The row weight is inferred as floor(n/m*c). When the
// parameters do not allow m*r == n*c a warning is logged and the construction makes
// its best effort.
func (b *Builder) Regular(ctx context.Context, args []int, method Method) (*Regular, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("%w: expected [n, m, c] but found %v", ErrInvalidInput, args)
	}
	n, m, c := args[0], args[1], args[2]
	if n <= 0 || m <= 0 || c <= 0 {
		return nil, fmt.Errorf("%w: n (%v), m (%v) and c (%v) must be positive", ErrInvalidInput, n, m, c)
	}

	r := int(float64(n) / float64(m) * float64(c))
	logrus.Infof("Regular code: inferred average ones per row as %v", r)
	if m*r != n*c {
		logrus.Warnf("Code parameters don't allow a perfectly regular code. " +
			"The row or column weights will be variable depending on the construction method.")
	}

	rows, err := b.parityCheckRows(ctx, n, m, r, c, method)
	if err != nil {
		return nil, err
	}

	return &Regular{
		Graph:  tanner.FromRows(rows, n),
		N:      n,
		M:      m,
		C:      c,
		R:      r,
		Method: method,
	}, nil
}

func (b *Builder) rng() *rand.Rand {
	if b.Rand == nil {
		b.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return b.Rand
}

func (b *Builder) parityCheckRows(ctx context.Context, n, m, r, c int, method Method) ([][]int, error) {
	switch method {
	case PEG:
		if b.PEG == nil {
			return nil, ErrNoPEG
		}
		seed := b.rng().Int63n(pegSeedRange)
		logrus.Debugf("Running PEG with seed %v", seed)
		return b.PEG.Run(ctx, n, m, c, seed)
	case Gallager:
		return gallager(b.rng(), n, r, c)
	case PopulateRows:
		return populateRows(b.rng(), n, m, r, c), nil
	case PopulateColumns:
		return populateColumns(b.rng(), n, m, c), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidMethod, method)
}
