// Package peg runs an external progressive edge growth (PEG) executable to build
// regular LDPC parity check graphs. The tool is driven through two files: a degree
// distribution file written here and a code file written by the tool.
package peg

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

var (
	// ErrSpawn means the PEG executable could not be started.
	ErrSpawn = errors.New("peg: unable to start executable")
	// ErrFailed means the PEG executable exited with a non-zero status.
	ErrFailed = errors.New("peg: executable failed")
	// ErrTimeout means the PEG executable did not finish within the timeout.
	ErrTimeout = errors.New("peg: timed out")
	// ErrFormat means the code file written by the executable is malformed.
	ErrFormat = errors.New("peg: malformed output")
)

//DefaultCommand is the executable name used when none is configured.
const DefaultCommand = "MainPEG"

//Runner invokes the PEG executable.
type Runner struct {
	Command []string      // executable followed by any leading arguments
	Dir     string        // where temporary files are created, "" for the current directory
	Timeout time.Duration // zero disables the timeout
}

//NewRunner creates a Runner from a shell style command line such as
// "/opt/peg/MainPEG" or "nice -n 10 MainPEG".
func NewRunner(command, dir string, timeout time.Duration) (*Runner, error) {
	if strings.TrimSpace(command) == "" {
		command = DefaultCommand
	}
	words, err := shellquote.Split(command)
	if err != nil {
		return nil, fmt.Errorf("unable to parse PEG command %q: %w", command, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("empty PEG command %q", command)
	}
	return &Runner{Command: words, Dir: dir, Timeout: timeout}, nil
}

//Run builds a graph with m check nodes, n variable nodes and variable degree c.
// The returned rows hold 0-based variable node indices. Temporary files are always removed.
func (r *Runner) Run(ctx context.Context, n, m, c int, seed int64) ([][]int, error) {
	dir := r.Dir
	if dir == "" {
		dir = "."
	}

	degFile, err := os.CreateTemp(dir, "peg-deg-*")
	if err != nil {
		return nil, fmt.Errorf("unable to create degree file: %w", err)
	}
	defer os.Remove(degFile.Name())

	err = WriteDegreeFile(degFile, c)
	if cerr := degFile.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("unable to write degree file: %w", err)
	}

	outFile, err := os.CreateTemp(dir, "peg-out-*")
	if err != nil {
		return nil, fmt.Errorf("unable to create output file: %w", err)
	}
	defer os.Remove(outFile.Name())
	if err := outFile.Close(); err != nil {
		return nil, fmt.Errorf("unable to create output file: %w", err)
	}

	err = r.invoke(ctx, n, m, degFile.Name(), outFile.Name(), seed)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(outFile.Name())
	if err != nil {
		return nil, fmt.Errorf("%w: unable to open output: %v", ErrFormat, err)
	}
	defer f.Close()

	return ParseCode(f, n, m)
}

func (r *Runner) invoke(ctx context.Context, n, m int, degFileName, outFileName string, seed int64) error {
	if len(r.Command) == 0 {
		return fmt.Errorf("%w: no command configured", ErrSpawn)
	}

	runCtx := ctx
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	args := append([]string{}, r.Command[1:]...)
	args = append(args,
		"-numM", strconv.Itoa(m),
		"-numN", strconv.Itoa(n),
		"-codeName", outFileName,
		"-degFileName", degFileName,
		"-q",
		"-seed", strconv.FormatInt(seed, 10),
	)
	cmd := exec.CommandContext(runCtx, r.Command[0], args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// children left holding the output pipes must not outlive the kill
	cmd.WaitDelay = time.Second

	logrus.Debugf("Running %v %v", r.Command[0], strings.Join(args, " "))
	start := time.Now()
	err := cmd.Run()
	logrus.Debugf("PEG finished in %v", time.Since(start))
	if err == nil {
		return nil
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		return fmt.Errorf("%w: after %v", ErrTimeout, r.Timeout)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("%w: exit code %v: %q", ErrFailed, exitErr.ExitCode(), firstNonEmptyLine(stderr.String(), stdout.String()))
	}
	return fmt.Errorf("%w: %v", ErrSpawn, err)
}

//WriteDegreeFile writes the degree distribution of a regular code: a single
// variable node degree c occurring with probability 1.
func WriteDegreeFile(w io.Writer, c int) error {
	_, err := fmt.Fprintf(w, "1\n%v\n1.0\n", c)
	return err
}

//ParseCode reads a PEG code file. The first two lines must be n and m, the third
// is ignored, and each of the next m lines lists distinct 1-based variable node indices
// padded with zeros.
func ParseCode(r io.Reader, n, m int) ([][]int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	header := make([]int, 0, 2)
	for len(header) < 2 {
		if !scanner.Scan() {
			return nil, fmt.Errorf("%w: missing header", ErrFormat)
		}
		v, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil {
			return nil, fmt.Errorf("%w: bad header line %q", ErrFormat, scanner.Text())
		}
		header = append(header, v)
	}
	if header[0] != n {
		return nil, fmt.Errorf("%w: expected n == %v but found %v", ErrFormat, n, header[0])
	}
	if header[1] != m {
		return nil, fmt.Errorf("%w: expected m == %v but found %v", ErrFormat, m, header[1])
	}

	// column count of the remaining lines
	if !scanner.Scan() {
		return nil, fmt.Errorf("%w: missing column count line", ErrFormat)
	}

	rows := make([][]int, 0, m)
	blank := 0
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			blank++
			continue
		}
		if blank > 0 {
			return nil, fmt.Errorf("%w: blank line inside check rows", ErrFormat)
		}

		row := make([]int, 0, len(fields))
		for _, field := range fields {
			v, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("%w: check %v: bad index %q", ErrFormat, len(rows), field)
			}
			// 0 is padding
			if v == 0 {
				continue
			}
			if v < 0 || v > n {
				return nil, fmt.Errorf("%w: check %v: index %v outside 1..%v", ErrFormat, len(rows), v, n)
			}
			if slices.Contains(row, v-1) {
				return nil, fmt.Errorf("%w: check %v: index %v repeated", ErrFormat, len(rows), v)
			}
			row = append(row, v-1)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	if len(rows) != m {
		return nil, fmt.Errorf("%w: expected %v check rows but found %v", ErrFormat, m, len(rows))
	}
	return rows, nil
}

func firstNonEmptyLine(outputs ...string) string {
	for _, output := range outputs {
		for _, line := range strings.Split(output, "\n") {
			if line != "" {
				return line
			}
		}
	}
	return ""
}
