package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/ayusman/gesturemap/internal/dataset"
	"github.com/ayusman/gesturemap/internal/dtw"
	"github.com/ayusman/gesturemap/internal/gesture"
	"github.com/ayusman/gesturemap/internal/pathplot"
	"github.com/ayusman/gesturemap/internal/store"
)

const usage = "Usage: gesturemap [flags] input.csv"

// options holds the parsed command line.
type options struct {
	input         string
	trainFraction float64
	strategy      gesture.Strategy
	workers       int
	dbPath        string
	plotDir       string
	showPaths     bool
	debug         bool
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "gesturemap: %v\n", err)
		}
		os.Exit(1)
	}
}

// parseFlags reads options from args.
func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	var strategy string

	defaults := gesture.DefaultConfig()

	fs := flag.NewFlagSet("gesturemap", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, usage)
		fs.PrintDefaults()
	}
	fs.Float64Var(&opts.trainFraction, "train", 0.8, "fraction of records, taken from the head of the file, used for training")
	fs.StringVar(&strategy, "template", string(defaults.Strategy), "template strategy for repeated labels: last or aligned")
	fs.IntVar(&opts.workers, "workers", defaults.Workers, "number of test records classified concurrently")
	fs.StringVar(&opts.dbPath, "db", "", "SQLite file to record the run in (disabled when empty)")
	fs.StringVar(&opts.plotDir, "plot", "", "directory for PNG plots of each test alignment (disabled when empty)")
	fs.BoolVar(&opts.showPaths, "show-paths", false, "print the warp matrix and path of every correct guess")
	fs.BoolVar(&opts.debug, "debug", false, "enable development logging")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return opts, errors.New("invalid input: expected exactly one CSV file")
	}
	opts.input = fs.Arg(0)

	s, err := gesture.ParseStrategy(strategy)
	if err != nil {
		return opts, err
	}
	opts.strategy = s

	return opts, nil
}

// newLogger builds the zap logger selected by the debug flag.
func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// run loads the dataset, trains on its head, evaluates the rest and
// reports the accuracy on stdout.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	logger, err := newLogger(opts.debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	records, err := dataset.LoadFile(opts.input)
	if err != nil {
		return err
	}

	train, test, err := dataset.Split(records, opts.trainFraction)
	if err != nil {
		return err
	}
	logger.Info("loaded dataset",
		zap.String("input", opts.input),
		zap.Int("records", len(records)),
		zap.Int("train", len(train)),
		zap.Int("test", len(test)),
	)

	classifier := gesture.NewClassifier[dtw.Vec3](gesture.Config{
		Strategy: opts.strategy,
		Workers:  opts.workers,
		Logger:   logger,
	})
	if err := classifier.Train(train); err != nil {
		return err
	}

	report, err := classifier.Evaluate(ctx, test)
	if err != nil {
		return err
	}

	if opts.showPaths || opts.plotDir != "" {
		if err := showAlignments(classifier, test, report, opts, stdout); err != nil {
			return err
		}
	}

	if opts.dbPath != "" {
		runID, err := saveRun(opts, len(train), report)
		if err != nil {
			return err
		}
		logger.Info("stored run", zap.String("id", runID), zap.String("db", opts.dbPath))
	}

	fmt.Fprintf(stdout, "Accuracy: %v\n", report.Accuracy)
	return nil
}

// showAlignments re-aligns each test record with its predicted template to
// print correct guesses and plot every path.
func showAlignments(c *gesture.Classifier[dtw.Vec3], test []gesture.Record[dtw.Vec3], report *gesture.Report, opts options, stdout io.Writer) error {
	paths := make(map[string]dtw.Path)

	for i, p := range report.Predictions {
		template, ok := c.Template(p.Predicted)
		if !ok {
			continue
		}

		a, err := dtw.New(template, test[i].Sequence)
		if err != nil {
			return fmt.Errorf("align record %d: %w", p.RecordID, err)
		}

		if opts.showPaths && p.Correct() {
			if err := a.PrintPath(stdout); err != nil {
				return err
			}
		}
		if opts.plotDir != "" {
			paths[fmt.Sprintf("record-%d", p.RecordID)] = a.Path()
		}
	}

	if opts.plotDir != "" {
		return pathplot.SaveAll(opts.plotDir, paths)
	}
	return nil
}

// saveRun records the run and its predictions.
func saveRun(opts options, trainCount int, report *gesture.Report) (string, error) {
	st, err := store.New(opts.dbPath)
	if err != nil {
		return "", fmt.Errorf("failed to initialize store: %w", err)
	}
	defer st.Close()

	run := &store.Run{
		Input:         opts.input,
		TrainFraction: opts.trainFraction,
		Strategy:      string(opts.strategy),
		TrainCount:    trainCount,
		TestCount:     report.Total,
		Correct:       report.Correct,
		Accuracy:      report.Accuracy,
	}
	if err := st.Runs().Create(run); err != nil {
		return "", fmt.Errorf("failed to store run: %w", err)
	}

	predictions := make([]store.Prediction, len(report.Predictions))
	for i, p := range report.Predictions {
		predictions[i] = store.Prediction{
			RecordID:  p.RecordID,
			Gesture:   p.Gesture,
			Predicted: p.Predicted,
			Cost:      p.Cost,
		}
	}
	if err := st.Predictions().CreateBatch(run.ID, predictions); err != nil {
		return "", fmt.Errorf("failed to store predictions: %w", err)
	}

	return run.ID, nil
}
