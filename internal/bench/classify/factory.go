package classify

import (
	"errors"
	"fmt"
)

var ErrUnknownMetric = errors.New("unknown metric")

const defaultG = 0.05

// Distances lists the distance names understood by New.
var Distances = []string{"dtw", "ddtw", "wdtw", "wddtw", "euclidean"}

// New builds a 1-NN classifier for a distance name. Recognised arguments are
// "window" (band fraction, default unconstrained) and "g" (WDTW weight
// steepness, default 0.05).
func New(distance string, args map[string]any) (Classifier, error) {
	window, err := floatArg(args, "window", -1)
	if err != nil {
		return nil, err
	}
	g, err := floatArg(args, "g", defaultG)
	if err != nil {
		return nil, err
	}

	var d Distance
	switch distance {
	case "dtw":
		d = DTW{Window: window}
	case "ddtw":
		d = DTW{Window: window, Derivative: true}
	case "wdtw":
		d = DTW{Window: window, G: g}
	case "wddtw":
		d = DTW{Window: window, Derivative: true, G: g}
	case "euclidean":
		d = Euclidean{}
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownMetric, distance)
	}
	return NewKNN(d), nil
}

func floatArg(args map[string]any, key string, def float64) (float64, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return def, nil
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("argument %q: expected a number, got %T", key, v)
	}
}
