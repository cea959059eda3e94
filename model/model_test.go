package model

import (
	"testing"

	"github.com/reoring/modelgen/schema"
	"github.com/stretchr/testify/require"
)

func TestIsObjectModel(t *testing.T) {
	m := New("A", nil)
	require.False(t, m.IsObjectModel(), "no type set yet")

	m.Type = schema.NewTypeSet(schema.TypeObject)
	require.False(t, m.IsObjectModel(), "object type alone, no structure, is a simple model")

	m.Properties = map[string]*CommonModel{"x": New("x", nil)}
	require.True(t, m.IsObjectModel())
}

func TestIsObjectModel_AdditionalPropertiesAlone(t *testing.T) {
	m := New("A", nil)
	m.Type = schema.NewTypeSet(schema.TypeObject)
	m.AdditionalProperties = New("A_additionalProperty", nil)
	require.True(t, m.IsObjectModel())
}

func TestIsAny(t *testing.T) {
	m := New("A", nil)
	m.Type = schema.AllTags
	require.True(t, m.IsAny())

	m.Type = schema.NewTypeSet(schema.TypeString)
	require.False(t, m.IsAny())
}

func TestReference_CarriesOnlyID(t *testing.T) {
	r := Reference("A")
	require.True(t, r.IsReference)
	require.Equal(t, "A", r.ID)
	require.Empty(t, r.Properties)
}
