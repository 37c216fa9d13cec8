package protograph

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/nathanhack/ldpc/cmd/internal/chart"
	"github.com/nathanhack/ldpc/tanner"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	Chart   string
	Pretty  bool
	Verbose bool
)

//ReadTriples parses one "row column value" triple per line. Blank lines and
// lines starting with # are skipped.
func ReadTriples(r io.Reader) ([]tanner.Triple, error) {
	triples := make([]tanner.Triple, 0)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(strings.ReplaceAll(text, ",", " "))
		if len(fields) != 3 {
			return nil, fmt.Errorf("line %v: expected row column value but found %q", line, text)
		}
		row, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %v: bad row %q", line, fields[0])
		}
		col, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("line %v: bad column %q", line, fields[1])
		}
		value, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("line %v: bad value %q", line, fields[2])
		}
		triples = append(triples, tanner.Triple{Row: row, Column: col, Value: value})
	}
	return triples, scanner.Err()
}

var ProtographRun = func(cmd *cobra.Command, args []string) {
	if Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}

	var in io.Reader = os.Stdin
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			fmt.Println(err)
			return
		}
		defer f.Close()
		in = f
	}

	triples, err := ReadTriples(in)
	if err != nil {
		fmt.Println("Unable to read triples: ", err)
		return
	}
	p, err := tanner.NewProtograph(triples)
	if err != nil {
		fmt.Println("Unable to create protograph: ", err)
		return
	}

	if Pretty {
		fmt.Print(p.Pretty())
	} else {
		fmt.Print(p.String())
	}
	logrus.Infof("protograph: %vx%v, %v entries, weights %v", p.Height(), p.Width(), p.Entries(), p.Weights())

	if Chart != "" {
		if err := chart.RenderFile(Chart, "protograph", &p.Graph); err != nil {
			fmt.Println("unable to write chart: ", err)
		}
	}
}
