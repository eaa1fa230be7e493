package result

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/DjordjeVuckovic/ts-bench/internal/apperr"
)

const jsonIndent = "      "

func LoadFromFile(path string) (*ResultSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read result file: %w", err)
	}
	rs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rs, nil
}

// Parse decodes a result file and checks that its schema is homogeneous.
func Parse(data []byte) (*ResultSet, error) {
	rs := New()
	if err := json.Unmarshal(data, rs); err != nil {
		return nil, apperr.NewValidationWrap("parse result JSON", err)
	}
	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return rs, nil
}

// LoadMerged loads several result files into one set; later files win on duplicate datasets.
func LoadMerged(paths ...string) (*ResultSet, error) {
	merged := New()
	for _, p := range paths {
		rs, err := LoadFromFile(p)
		if err != nil {
			return nil, err
		}
		merged.Merge(rs)
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

func Encode(rs *ResultSet) ([]byte, error) {
	compact, err := json.Marshal(rs)
	if err != nil {
		return nil, fmt.Errorf("marshal results: %w", err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", jsonIndent); err != nil {
		return nil, fmt.Errorf("indent results: %w", err)
	}
	return out.Bytes(), nil
}

func WriteFile(rs *ResultSet, path string) error {
	data, err := Encode(rs)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write result file: %w", err)
	}
	return nil
}
