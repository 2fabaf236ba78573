package gesture

import (
	"fmt"

	"github.com/ayusman/gesturemap/internal/dtw"
)

// Strategy decides how a training record updates the template of its label.
type Strategy string

const (
	// StrategyLast keeps the most recently seen training sequence per label.
	StrategyLast Strategy = "last"
	// StrategyAligned folds each new sequence into the existing template by
	// replacing the template with their DTW aligned midpoint sequence.
	StrategyAligned Strategy = "aligned"
)

// ParseStrategy converts a flag value into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyLast, StrategyAligned:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("unknown template strategy %q", s)
	}
}

// mergeTemplate returns the template for a label after seeing seq.
func mergeTemplate[P dtw.Point[P]](strategy Strategy, existing, seq []P) ([]P, error) {
	// First example of a label becomes the template as is
	if strategy != StrategyAligned || existing == nil {
		return seq, nil
	}

	a, err := dtw.New(existing, seq)
	if err != nil {
		return nil, err
	}
	return a.TakeAligned(), nil
}
