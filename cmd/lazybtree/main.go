// Package main replays a fixed insert/delete workload against a lazybtree.Tree,
// verifies the tree after every phase and prints the result.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"lazybtree"
	"lazybtree/logger"
	"lazybtree/treeprint"
)

var workload = []int{
	4, 7, 10, 9, 5, 3, 20, 33, 56, 79, 2, 84, 80, 76, 65, 101, 147, 120,
	95, 136, 124, 122, 121, 128, 134, 133, 145, 149, 150, 200, 168, 186,
	170, 34, 44, 46, 48, 171, 174, 176, 178, 111, 118, 119, 113, 114, 115,
	160, 250, 210, 202, 203, 405, 304, 399, 220, 207, 208, 209, 211, 212,
	231, 232, 233, 223,
}

type phase struct {
	name   string
	delete bool
	keys   []int
}

var phases = []phase{
	{name: "insert all", keys: workload},
	{name: "delete first 58", delete: true, keys: workload[:58]},
	{name: "insert first 25", keys: workload[:25]},
	{name: "delete first 60", delete: true, keys: workload[:60]},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns an exit code.
// This is separated from main() to facilitate testing.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lazybtree", flag.ContinueOnError)
	fs.SetOutput(stderr)
	order := fs.Int("order", lazybtree.MinOrder, "maximum keys per node")
	logKind := fs.String("log", "none", "structural event logger: zap, logrus or none")
	dump := fs.Bool("print", true, "print the final tree")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	log, err := newLogger(*logKind, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	tree := lazybtree.New[int, struct{}](*order, lazybtree.WithLogger(log))
	fmt.Fprintln(stdout, len(workload))

	for _, p := range phases {
		applied, skipped := 0, 0
		for _, k := range p.keys {
			var err error
			if p.delete {
				err = tree.Delete(k)
			} else {
				err = tree.Insert(k)
			}
			switch {
			case err == nil:
				applied++
			case errors.Is(err, lazybtree.ErrKeyNotFound), errors.Is(err, lazybtree.ErrKeyExists):
				skipped++
			default:
				fmt.Fprintf(stderr, "%s: %v\n", p.name, err)
				return 1
			}
		}

		if err := tree.Verify(); err != nil {
			fmt.Fprintf(stderr, "%s: %+v\n", p.name, err)
			return 1
		}
		fmt.Fprintf(stdout, "%s: applied=%d skipped=%d keys=%d height=%d\n",
			p.name, applied, skipped, tree.Len(), tree.Height())
	}

	if *dump {
		if err := treeprint.Fprint(stdout, tree); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}
	return 0
}

func newLogger(kind string, w io.Writer) (lazybtree.Logger, error) {
	switch kind {
	case "none":
		return lazybtree.DiscardLogger{}, nil
	case "zap":
		core := zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.AddSync(w),
			zapcore.InfoLevel,
		)
		return logger.NewZap(zap.New(core)), nil
	case "logrus":
		l := logrus.New()
		l.SetOutput(w)
		return logger.NewLogrus(l), nil
	default:
		return nil, errors.Newf("unknown logger %q: want zap, logrus or none", kind)
	}
}
