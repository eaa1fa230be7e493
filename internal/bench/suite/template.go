package suite

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Template is a named caption or file-name fragment with {{placeholders}}.
type Template struct {
	ID   string `yaml:"id"`
	Text string `yaml:"text"`
}

type TemplateParams map[string]any

var placeholderRegex = regexp.MustCompile(`\{\{(\w+)\}\}`)

func (t *Template) Render(params TemplateParams) (string, error) {
	return render(t.ID, t.Text, params)
}

func render(id, text string, params TemplateParams) (string, error) {
	out := placeholderRegex.ReplaceAllStringFunc(text, func(match string) string {
		key := match[2 : len(match)-2]
		if val, ok := params[key]; ok {
			return formatValue(val)
		}
		return match
	})

	missing := findPlaceholders(out)
	if len(missing) > 0 {
		return "", fmt.Errorf("template %q missing params: %v", id, missing)
	}
	return out, nil
}

func (t *Template) RequiredParams() []string {
	return findPlaceholders(t.Text)
}

func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("template has no id")
	}
	if t.Text == "" {
		return fmt.Errorf("template %q has no text", t.ID)
	}
	return nil
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case []string:
		return strings.Join(val, ", ")
	case []any:
		strs := make([]string, len(val))
		for i, item := range val {
			strs[i] = formatValue(item)
		}
		return strings.Join(strs, ", ")
	default:
		return fmt.Sprintf("%v", v)
	}
}

func findPlaceholders(s string) []string {
	matches := placeholderRegex.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var names []string
	for _, m := range matches {
		if len(m) > 1 && !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

type TemplateRegistry struct {
	templates map[string]*Template
}

func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]*Template),
	}
}

func (r *TemplateRegistry) Register(t *Template) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if _, exists := r.templates[t.ID]; exists {
		return fmt.Errorf("template %q already registered", t.ID)
	}
	r.templates[t.ID] = t
	return nil
}

func (r *TemplateRegistry) Get(id string) (*Template, bool) {
	t, ok := r.templates[id]
	return t, ok
}

func (r *TemplateRegistry) Render(id string, params TemplateParams) (string, error) {
	t, ok := r.Get(id)
	if !ok {
		return "", fmt.Errorf("template %q not found", id)
	}
	return t.Render(params)
}
