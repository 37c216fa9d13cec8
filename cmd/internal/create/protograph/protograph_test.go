package protograph

import (
	"strings"
	"testing"

	"github.com/nathanhack/ldpc/tanner"
	"github.com/stretchr/testify/require"
)

func TestReadTriples(t *testing.T) {
	in := `
# row col value
0 0 1
0, 2, 3
1 1 2.5
`
	triples, err := ReadTriples(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, []tanner.Triple{
		{Row: 0, Column: 0, Value: 1},
		{Row: 0, Column: 2, Value: 3},
		{Row: 1, Column: 1, Value: 2.5},
	}, triples)
}

func TestReadTriples_Errors(t *testing.T) {
	tests := []string{
		"0 0\n",
		"a 0 1\n",
		"0 b 1\n",
		"0 0 c\n",
		"0 0 1 1\n",
	}
	for _, in := range tests {
		_, err := ReadTriples(strings.NewReader(in))
		require.Error(t, err, in)
	}
}
