package result

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/ts-bench/pkg/jsonobj"
)

func (r *ScoreRecord) UnmarshalJSON(data []byte) error {
	*r = *NewScoreRecord()
	return jsonobj.Walk(data, func(key string, raw json.RawMessage) error {
		if key == KeyArguments {
			args := make(map[string]any)
			if err := json.Unmarshal(raw, &args); err != nil {
				return fmt.Errorf("decode arguments: %w", err)
			}
			r.Arguments = args
			return nil
		}
		v, err := decodeScore(key, raw)
		if err != nil {
			return err
		}
		r.Set(key, v)
		return nil
	})
}

// MarshalJSON writes arguments first, then the scores in insertion order.
// A nil Arguments map omits the arguments member.
func (r *ScoreRecord) MarshalJSON() ([]byte, error) {
	w := jsonobj.NewWriter()
	if r.Arguments != nil {
		if err := w.Value(KeyArguments, r.Arguments); err != nil {
			return nil, err
		}
	}
	for _, n := range r.names {
		if err := w.Value(n, r.values[n]); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}

func decodeScore(key string, raw json.RawMessage) (float64, error) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.Float64()
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil && key == ScoreMemoryFootprint {
		return ParseFootprint(s)
	}

	return 0, fmt.Errorf("score %q is not numeric: %s", key, string(raw))
}

var footprintDividers = map[string]float64{
	"MB": 1,
	"KB": 1.0 / 1024,
	"B":  1.0 / (1024 * 1024),
}

// ParseFootprint converts a "<value> <unit>" memory string into megabytes.
func ParseFootprint(s string) (float64, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 2 {
		return 0, fmt.Errorf("invalid memory footprint %q", s)
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid memory footprint %q: %w", s, err)
	}
	if len(fields) == 1 {
		return v, nil
	}
	factor, ok := footprintDividers[strings.ToUpper(fields[1])]
	if !ok {
		return 0, fmt.Errorf("unknown memory unit %q", fields[1])
	}
	return v * factor, nil
}

func (p *Properties) UnmarshalJSON(data []byte) error {
	*p = Properties{}
	return jsonobj.Walk(data, func(key string, raw json.RawMessage) error {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("decode property %q: %w", key, err)
		}
		p.Set(key, v)
		return nil
	})
}

func (p Properties) MarshalJSON() ([]byte, error) {
	w := jsonobj.NewWriter()
	for _, k := range p.keys {
		if err := w.Value(k, p.values[k]); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}

func (d *DatasetResult) UnmarshalJSON(data []byte) error {
	*d = *NewDatasetResult()
	return jsonobj.Walk(data, func(key string, raw json.RawMessage) error {
		if key == KeyProperties {
			return json.Unmarshal(raw, &d.Properties)
		}
		rec := NewScoreRecord()
		if err := json.Unmarshal(raw, rec); err != nil {
			return fmt.Errorf("metric %q: %w", key, err)
		}
		d.SetRecord(key, rec)
		return nil
	})
}

func (d *DatasetResult) MarshalJSON() ([]byte, error) {
	w := jsonobj.NewWriter()
	if len(d.Properties.keys) > 0 {
		if err := w.Value(KeyProperties, d.Properties); err != nil {
			return nil, err
		}
	}
	for _, m := range d.metrics {
		if err := w.Value(m, d.records[m]); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}

func (rs *ResultSet) UnmarshalJSON(data []byte) error {
	*rs = *New()
	return jsonobj.Walk(data, func(key string, raw json.RawMessage) error {
		d := NewDatasetResult()
		if err := json.Unmarshal(raw, d); err != nil {
			return fmt.Errorf("dataset %q: %w", key, err)
		}
		rs.Set(key, d)
		return nil
	})
}

func (rs *ResultSet) MarshalJSON() ([]byte, error) {
	w := jsonobj.NewWriter()
	for _, name := range rs.datasets {
		if err := w.Value(name, rs.byName[name]); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}
