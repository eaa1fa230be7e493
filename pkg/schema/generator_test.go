package schema

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleChild struct {
	Distance string         `yaml:"distance" schema:"required"`
	Args     map[string]any `yaml:"args,omitempty"`
}

type sampleRoot struct {
	Kind     string                 `yaml:"kind" schema:"required,enum=table|csv"`
	Window   *float64               `yaml:"window" schema:"minimum=0,maximum=1"`
	Seed     uint64                 `yaml:"seed"`
	Names    []string               `yaml:"names" schema:"minItems=1"`
	Metrics  map[string]sampleChild `yaml:"metrics"`
	Internal string                 `yaml:"-"`
	hidden   int
}

func TestGenerateSchema(t *testing.T) {
	g := NewGenerator("yaml", "https://example.org/schemas/")

	s, err := g.GenerateSchema(reflect.TypeOf(sampleRoot{}))
	require.NoError(t, err)

	assert.Equal(t, schemaRef, s.Schema)
	assert.Equal(t, "sampleRoot", s.Title)
	assert.Equal(t, "https://example.org/schemas/sampleroot.json", s.ID)
	assert.Equal(t, []string{"kind"}, s.Required)
	assert.Len(t, s.Properties, 5)
	assert.NotContains(t, s.Properties, "Internal")

	assert.Equal(t, []any{"table", "csv"}, s.Properties["kind"].Enum)
	assert.Equal(t, "number", s.Properties["window"].Type)
	require.NotNil(t, s.Properties["window"].Maximum)
	assert.Equal(t, 1.0, *s.Properties["window"].Maximum)
	assert.Equal(t, "integer", s.Properties["seed"].Type)
	assert.Equal(t, 1, *s.Properties["names"].MinItems)

	metrics := s.Properties["metrics"]
	assert.Equal(t, "object", metrics.Type)
	require.NotNil(t, metrics.AdditionalProperties)
	assert.Equal(t, []string{"distance"}, metrics.AdditionalProperties.Required)
	assert.Empty(t, metrics.AdditionalProperties.Properties["args"].AdditionalProperties.Type)
}

func TestGenerateJSONSchema(t *testing.T) {
	g := NewGenerator("yaml", "")

	data, err := g.GenerateJSONSchema(&sampleRoot{})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "object", decoded["type"])
	assert.NotContains(t, decoded, "$id")

	_, err = g.GenerateJSONSchema(42)
	assert.Error(t, err)
}
