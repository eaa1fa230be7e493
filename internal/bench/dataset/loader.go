package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DimensionSeparator separates the dimensions of a multivariate row.
const DimensionSeparator = ":"

// Loader resolves a dataset by name.
type Loader interface {
	Load(name string) (*Dataset, error)
}

// UCRLoader reads datasets laid out as <Dir>/<name>/<name>_TRAIN.tsv and
// <name>_TEST.tsv.
type UCRLoader struct {
	Dir string
}

func NewUCRLoader(dir string) *UCRLoader {
	return &UCRLoader{Dir: dir}
}

func (l *UCRLoader) Load(name string) (*Dataset, error) {
	return LoadUCR(l.Dir, name)
}

// LoadUCR reads the train and test split of a dataset and concatenates them.
func LoadUCR(dir, name string) (*Dataset, error) {
	ds := &Dataset{Name: name}
	for _, part := range []string{"TRAIN", "TEST"} {
		path := filepath.Join(dir, name, fmt.Sprintf("%s_%s.tsv", name, part))
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		series, labels, err := ReadTSV(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		ds.Series = append(ds.Series, series...)
		ds.Labels = append(ds.Labels, labels...)
	}
	if ds.Len() == 0 {
		return nil, fmt.Errorf("dataset %q is empty", name)
	}
	return ds, nil
}

// ReadTSV parses rows of "label<TAB>v1<TAB>v2...". Multivariate rows separate
// dimensions with a lone ":" field. Empty and "NaN" cells become NaN.
func ReadTSV(r io.Reader) ([]Series, []string, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	var series []Series
	var labels []string
	line := 0
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(record) < 2 {
			return nil, nil, fmt.Errorf("line %d: expected label and values, got %d fields", line, len(record))
		}

		s, err := parseRow(record[1:])
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", line, err)
		}
		labels = append(labels, strings.TrimSpace(record[0]))
		series = append(series, s)
	}
	return series, labels, nil
}

func parseRow(fields []string) (Series, error) {
	s := Series{nil}
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == DimensionSeparator {
			s = append(s, nil)
			continue
		}
		v := math.NaN()
		if f != "" && !strings.EqualFold(f, "nan") {
			parsed, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("parse value %q: %w", f, err)
			}
			v = parsed
		}
		last := len(s) - 1
		s[last] = append(s[last], v)
	}
	return s, nil
}
