// Package dataset loads labelled gesture recordings from CSV and splits
// them into training and test sets.
//
// Each row carries the columns id, user, gesture, x, y and z. The axis
// columns hold bracketed, comma-separated lists such as "[0.1, 0.2, 0.3]"
// and the i-th entries of x, y and z form the i-th sample of the recording.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/ayusman/gesturemap/internal/dtw"
	"github.com/ayusman/gesturemap/internal/gesture"
)

var (
	// ErrMalformedInput is returned for rows that cannot be turned into a record.
	ErrMalformedInput = errors.New("dataset: malformed input")

	// ErrInvalidFraction is returned when a split fraction is outside (0, 1).
	ErrInvalidFraction = errors.New("dataset: train fraction must be between 0 and 1 exclusive")
)

// columns lists the required header names.
var columns = []string{"id", "user", "gesture", "x", "y", "z"}

// LoadFile reads all records from the CSV file at path.
func LoadFile(path string) ([]gesture.Record[dtw.Vec3], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Load reads all records from r. The first row must be a header naming at
// least the id, user, gesture, x, y and z columns, in any order. The first
// malformed row aborts the load.
func Load(r io.Reader) ([]gesture.Record[dtw.Vec3], error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("missing header: %w", ErrMalformedInput)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range columns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("missing column %q: %w", name, ErrMalformedInput)
		}
	}

	var records []gesture.Record[dtw.Vec3]
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %v: %w", line, err, ErrMalformedInput)
		}

		rec, err := parseRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// parseRow converts one CSV row into a record.
func parseRow(row []string, index map[string]int) (gesture.Record[dtw.Vec3], error) {
	var rec gesture.Record[dtw.Vec3]

	ints := []struct {
		name string
		dst  *int
	}{
		{"id", &rec.ID},
		{"user", &rec.User},
		{"gesture", &rec.Gesture},
	}
	for _, f := range ints {
		v, err := strconv.Atoi(strings.TrimSpace(row[index[f.name]]))
		if err != nil {
			return rec, fmt.Errorf("column %s: %v: %w", f.name, err, ErrMalformedInput)
		}
		*f.dst = v
	}

	var axes [3][]float64
	for i, name := range columns[3:] {
		values, err := parseList(row[index[name]])
		if err != nil {
			return rec, fmt.Errorf("column %s: %w", name, err)
		}
		axes[i] = values
	}

	seq, err := zip3(axes[0], axes[1], axes[2])
	if err != nil {
		return rec, fmt.Errorf("record %d: %w", rec.ID, err)
	}
	rec.Sequence = seq

	return rec, nil
}

// parseList parses a bracketed list such as "[1.5, -2, 3e-1]".
func parseList(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("empty list: %w", ErrMalformedInput)
	}

	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float %q: %w", p, ErrMalformedInput)
		}
		// ParseFloat accepts NaN and Inf, neither has a usable distance
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("non-finite value %q: %w", p, ErrMalformedInput)
		}
		out = append(out, v)
	}
	return out, nil
}

// zip3 combines per-axis lists into a sequence of vectors.
func zip3(x, y, z []float64) ([]dtw.Vec3, error) {
	if len(x) != len(y) || len(x) != len(z) {
		return nil, fmt.Errorf("axis lengths differ (x=%d y=%d z=%d): %w", len(x), len(y), len(z), ErrMalformedInput)
	}

	seq := make([]dtw.Vec3, len(x))
	for i := range x {
		seq[i] = dtw.Vec3{X: x[i], Y: y[i], Z: z[i]}
	}
	return seq, nil
}

// Split returns the first int(len(records)*fraction) records as the
// training set and the remainder as the test set. Records are not shuffled.
func Split[T any](records []T, fraction float64) (train, test []T, err error) {
	if !(fraction > 0 && fraction < 1) {
		return nil, nil, fmt.Errorf("%v: %w", fraction, ErrInvalidFraction)
	}

	n := int(float64(len(records)) * fraction)
	return slices.Clone(records[:n]), slices.Clone(records[n:]), nil
}
