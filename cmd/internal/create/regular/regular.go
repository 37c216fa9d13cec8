package regular

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/nathanhack/ldpc/cmd/internal/chart"
	"github.com/nathanhack/ldpc/internal/config"
	"github.com/nathanhack/ldpc/ldpc"
	"github.com/nathanhack/ldpc/ldpc/peg"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	Method     string
	Seed       int64
	Iter       uint
	Threads    uint
	ConfigFile string
	PEGCommand string
	PEGTimeout time.Duration
	Chart      string
	Pretty     bool
	Verbose    bool
)

//Params converts the N M C arguments.
func Params(args []string) ([]int, error) {
	params := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("argument %v (%q) is not an integer", i+1, a)
		}
		params[i] = v
	}
	return params, nil
}

func settings(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(ConfigFile)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = Seed
	}
	if flags.Changed("threads") {
		cfg.Threads = int(Threads)
	}
	if flags.Changed("peg") {
		cfg.PEG.Command = PEGCommand
	}
	if flags.Changed("peg-timeout") {
		cfg.PEG.Timeout = PEGTimeout
	}
	return cfg, nil
}

var RegularRun = func(cmd *cobra.Command, args []string) {
	if Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sig := <-sigs
		fmt.Println()
		fmt.Println(sig)
		cancel()
	}()

	params, err := Params(args)
	if err != nil {
		fmt.Println(err)
		return
	}
	method, err := ldpc.ParseMethod(Method)
	if err != nil {
		fmt.Println(err)
		return
	}
	cfg, err := settings(cmd)
	if err != nil {
		fmt.Println("Unable to load config: ", err)
		return
	}

	seed := cfg.Seed
	if seed == 0 {
		//we seed the randomizer so we get something different every time
		seed = time.Now().UnixNano()
	}
	logrus.Debugf("Seed: %v", seed)

	var runner ldpc.PEGRunner
	if method == ldpc.PEG {
		r, err := peg.NewRunner(cfg.PEG.Command, cfg.PEG.Dir, cfg.PEG.Timeout)
		if err != nil {
			fmt.Println(err)
			return
		}
		runner = r
	}

	b := ldpc.NewBuilder(rand.New(rand.NewSource(seed)), runner)
	code, girth, err := ldpc.Search(ctx, b, params, method, int(Iter), cfg.Threads, Verbose)
	if err != nil {
		fmt.Println("Unable to create LDPC: ", err)
		return
	}

	if Pretty {
		fmt.Print(code.Pretty())
	} else {
		fmt.Print(code.String())
	}
	logrus.Infof("%v: %vx%v, r=%v c=%v, girth %v, weights %v",
		code.Method, code.Height(), code.Width(), code.R, code.C, girth, code.Weights())

	if Chart != "" {
		err = chart.RenderFile(Chart, fmt.Sprintf("%v LDPC(%v,%v,%v)", method, params[0], params[1], params[2]), code.Graph)
		if err != nil {
			fmt.Println("unable to write chart: ", err)
		}
	}
}
