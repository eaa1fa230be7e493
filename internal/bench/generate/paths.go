package generate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Paths are the output locations derived from a result file name.
type Paths struct {
	TexRoot         string
	TexDir          string
	CorrelationsDir string
	Archive         string
}

// PathsFor derives the output directories of a result file and creates
// them. Without an explicit root the file's directory is used with every
// "json" path segment replaced by "tex".
func PathsFor(jsonPath, outRoot string) (Paths, error) {
	stem := strings.TrimSuffix(filepath.Base(jsonPath), filepath.Ext(jsonPath))

	root := outRoot
	if root == "" {
		root = strings.ReplaceAll(filepath.Dir(jsonPath), "json", "tex")
	}

	archive := stem
	if r := []rune(stem); len(r) > 3 {
		archive = string(r[:3])
	}

	p := Paths{
		TexRoot:         root,
		TexDir:          filepath.Join(root, stem),
		CorrelationsDir: filepath.Join(root, "Correlations"),
		Archive:         archive,
	}
	for _, dir := range []string{p.TexDir, p.CorrelationsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return Paths{}, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return p, nil
}

// compact drops all spaces, as used in file names and labels.
func compact(s string) string {
	return strings.ReplaceAll(s, " ", "")
}
