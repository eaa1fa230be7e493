package report

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	timeLayout = "2006-01-02 15:04:05"
	eol        = `\\`
)

// TexFile collects the lines of a LaTeX fragment and writes them once on
// Close. The file starts with a comment naming the generator and the source
// files it was built from.
type TexFile struct {
	path    string
	kind    string
	sources []string
	Caption string
	Label   string

	body   []string
	closed bool
	now    func() time.Time
}

func newTexFile(path, kind string, sources []string) TexFile {
	return TexFile{
		path:    path,
		kind:    kind,
		sources: sources,
		now:     time.Now,
	}
}

func (f *TexFile) Path() string { return f.path }

func (f *TexFile) Closed() bool { return f.closed }

func (f *TexFile) add(lines ...string) {
	f.body = append(f.body, lines...)
}

func (f *TexFile) provenance() ([]string, error) {
	lines := []string{fmt.Sprintf("%% This file is created by the %s generator at %s.", f.kind, f.now().Format(timeLayout))}
	if len(f.sources) > 0 {
		lines = append(lines, "% It was generated from the following source file(s):")
	}
	for _, src := range f.sources {
		info, err := os.Stat(src)
		if err != nil {
			return nil, fmt.Errorf("stat source %s: %w", src, err)
		}
		lines = append(lines, fmt.Sprintf("%%\t\t%s written at %s", src, info.ModTime().Format(timeLayout)))
	}
	return append(lines, "", ""), nil
}

// render joins the provenance header with the compiled content.
func (f *TexFile) render(content []string) (string, error) {
	header, err := f.provenance()
	if err != nil {
		return "", err
	}
	return strings.Join(append(header, content...), "\n"), nil
}

// flush writes the file. Later calls do nothing.
func (f *TexFile) flush(content []string) error {
	if f.closed {
		return nil
	}
	text, err := f.render(content)
	if err != nil {
		return err
	}
	if err := os.WriteFile(f.path, []byte(text), 0644); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	f.closed = true
	return nil
}
