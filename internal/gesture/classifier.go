// Package gesture classifies gesture recordings against per-label templates
// using the DTW alignment cost as the distance.
package gesture

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ayusman/gesturemap/internal/dtw"
)

var (
	// ErrNoTemplates is returned when classifying before any template was trained.
	ErrNoTemplates = errors.New("gesture: no templates trained")

	// ErrNoRecords is returned when evaluating an empty test set.
	ErrNoRecords = errors.New("gesture: no records to evaluate")

	// ErrNoFiniteCost is returned when no template aligns with a sequence
	// at a finite cost, for example because the sequence holds NaN samples.
	ErrNoFiniteCost = errors.New("gesture: no template aligns at a finite cost")
)

// Config holds configuration options for a Classifier.
type Config struct {
	// Strategy controls how repeated training labels update their template.
	Strategy Strategy

	// Workers bounds the number of records classified concurrently by
	// Evaluate. Values below 1 are treated as 1.
	Workers int

	// Logger receives training and evaluation progress. Nil disables logging.
	Logger *zap.Logger
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Strategy: StrategyLast,
		Workers:  1,
	}
}

// Classifier assigns a sequence the label of the template with the lowest
// DTW cost. Train must complete before Classify, Accuracy or Evaluate run;
// after training the templates are only read and the Classifier is safe
// for concurrent classification.
type Classifier[P dtw.Point[P]] struct {
	config    Config
	templates map[int][]P
	labels    []int
	logger    *zap.Logger
}

// NewClassifier creates an untrained Classifier.
func NewClassifier[P dtw.Point[P]](config Config) *Classifier[P] {
	if config.Strategy == "" {
		config.Strategy = StrategyLast
	}
	if config.Workers < 1 {
		config.Workers = 1
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Classifier[P]{
		config:    config,
		templates: make(map[int][]P),
		logger:    logger,
	}
}

// Train builds the templates from records, in order. With StrategyLast a
// label seen again simply replaces its template. A failing record leaves
// the Classifier exactly as it was before the call.
func (c *Classifier[P]) Train(records []Record[P]) error {
	// Work on a copy so a failure part way through commits nothing
	templates := maps.Clone(c.templates)

	for _, rec := range records {
		if len(rec.Sequence) == 0 {
			return fmt.Errorf("training record %d: %w", rec.ID, dtw.ErrEmptySequence)
		}

		template, err := mergeTemplate(c.config.Strategy, templates[rec.Gesture], rec.Sequence)
		if err != nil {
			return fmt.Errorf("training record %d: %w", rec.ID, err)
		}
		templates[rec.Gesture] = template
	}

	// Keep labels sorted so classification ties resolve to the lowest one
	labels := make([]int, 0, len(templates))
	for label := range templates {
		labels = append(labels, label)
	}
	slices.Sort(labels)

	c.templates = templates
	c.labels = labels

	c.logger.Info("trained templates",
		zap.Int("records", len(records)),
		zap.Int("templates", len(c.labels)),
		zap.String("strategy", string(c.config.Strategy)),
	)
	return nil
}

// Labels returns the trained labels in ascending order.
func (c *Classifier[P]) Labels() []int {
	return slices.Clone(c.labels)
}

// Template returns the template sequence of a label.
func (c *Classifier[P]) Template(label int) ([]P, bool) {
	t, ok := c.templates[label]
	return t, ok
}

// Classify returns the label whose template aligns with seq at the lowest
// total DTW cost, together with that cost. Equal costs resolve to the
// lowest label. Templates with a NaN or infinite cost never match; if no
// template has a finite cost ErrNoFiniteCost is returned.
func (c *Classifier[P]) Classify(seq []P) (label int, cost float64, err error) {
	if len(c.labels) == 0 {
		return 0, 0, ErrNoTemplates
	}
	if len(seq) == 0 {
		return 0, 0, dtw.ErrEmptySequence
	}

	found := false
	for _, l := range c.labels {
		total, _, err := dtw.Distance(c.templates[l], seq)
		if err != nil {
			return 0, 0, fmt.Errorf("template %d: %w", l, err)
		}

		// Skip costs that cannot be compared
		if math.IsNaN(total) || math.IsInf(total, 0) {
			continue
		}

		// Strictly lower only, labels are scanned in ascending order
		if !found || total < cost {
			cost = total
			label = l
			found = true
		}
	}

	if !found {
		return 0, 0, ErrNoFiniteCost
	}
	return label, cost, nil
}

// Accuracy returns the fraction of records classified with their true label.
func (c *Classifier[P]) Accuracy(records []Record[P]) (float64, error) {
	report, err := c.Evaluate(context.Background(), records)
	if err != nil {
		return 0, err
	}
	return report.Accuracy, nil
}

// Evaluate classifies every record and tallies the results. Records are
// spread over Config.Workers goroutines; predictions keep the input order,
// so the report is identical to a sequential run.
func (c *Classifier[P]) Evaluate(ctx context.Context, records []Record[P]) (*Report, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	if len(c.labels) == 0 {
		return nil, ErrNoTemplates
	}

	predictions := make([]Prediction, len(records))

	// Each worker writes only its own slot, keeping input order
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.config.Workers)
	for i, rec := range records {
		i, rec := i, rec
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			label, cost, err := c.Classify(rec.Sequence)
			if err != nil {
				return fmt.Errorf("test record %d: %w", rec.ID, err)
			}

			predictions[i] = Prediction{
				RecordID:  rec.ID,
				Gesture:   rec.Gesture,
				Predicted: label,
				Cost:      cost,
			}
			c.logger.Debug("classified record",
				zap.Int("record", rec.ID),
				zap.Int("gesture", rec.Gesture),
				zap.Int("predicted", label),
				zap.Float64("cost", cost),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := newReport(predictions)
	c.logger.Info("evaluated test set",
		zap.Int("correct", report.Correct),
		zap.Int("total", report.Total),
		zap.Float64("accuracy", report.Accuracy),
	)
	return report, nil
}
