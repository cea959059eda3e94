package reflector

import (
	"testing"

	"github.com/reoring/modelgen/schema"
	"github.com/stretchr/testify/require"
)

func TestReflect_RootSeedVerbatim(t *testing.T) {
	s := &schema.Schema{Type: schema.NewTypeSet(schema.TypeObject)}
	Reflect(s, "root")
	require.Equal(t, "root", s.InferredName())
}

func TestReflect_NestedProperties(t *testing.T) {
	inner := &schema.Schema{Type: schema.NewTypeSet(schema.TypeObject)}
	outer := &schema.Schema{
		Type:       schema.NewTypeSet(schema.TypeObject),
		Properties: map[string]*schema.Node{"outer": schema.FromSchema(&schema.Schema{Properties: map[string]*schema.Node{"inner": schema.FromSchema(inner)}})},
	}
	Reflect(outer, "root")

	outerSchema, ok := outer.Properties["outer"].AsSchema()
	require.True(t, ok)
	require.Equal(t, "root_outer", outerSchema.InferredName())

	innerSchema, ok := outerSchema.Properties["inner"].AsSchema()
	require.True(t, ok)
	require.Equal(t, "root_outer_inner", innerSchema.InferredName())
}

func TestReflect_DefinitionsUnprefixed(t *testing.T) {
	node := &schema.Schema{Type: schema.NewTypeSet(schema.TypeObject)}
	root := &schema.Schema{Definitions: map[string]*schema.Node{"node": schema.FromSchema(node)}}
	Reflect(root, "root")
	require.Equal(t, "node", node.InferredName())
}

func TestReflect_BooleanSchemasSkipped(t *testing.T) {
	root := &schema.Schema{AdditionalProperties: schema.True()}
	require.NotPanics(t, func() { Reflect(root, "root") })
}

func TestReflect_SkipsAlreadyNamed(t *testing.T) {
	inner := &schema.Schema{}
	inner.SetInferredName("preset")
	root := &schema.Schema{Properties: map[string]*schema.Node{"a": schema.FromSchema(inner)}}
	Reflect(root, "root")
	require.Equal(t, "preset", inner.InferredName())
}

func TestReflect_AllOfAnyOfOneOfItemsPositions(t *testing.T) {
	root := &schema.Schema{
		AllOf: []*schema.Node{schema.FromSchema(&schema.Schema{})},
		AnyOf: []*schema.Node{schema.FromSchema(&schema.Schema{})},
		OneOf: []*schema.Node{schema.FromSchema(&schema.Schema{})},
		Items: &schema.Items{Tuple: []*schema.Node{schema.FromSchema(&schema.Schema{}), schema.FromSchema(&schema.Schema{})}},
	}
	Reflect(root, "root")

	allOf0, _ := root.AllOf[0].AsSchema()
	require.Equal(t, "root_allOf_0", allOf0.InferredName())
	anyOf0, _ := root.AnyOf[0].AsSchema()
	require.Equal(t, "root_anyOf_0", anyOf0.InferredName())
	oneOf0, _ := root.OneOf[0].AsSchema()
	require.Equal(t, "root_oneOf_0", oneOf0.InferredName())
	item0, _ := root.Items.Tuple[0].AsSchema()
	require.Equal(t, "root_items_0", item0.InferredName())
	item1, _ := root.Items.Tuple[1].AsSchema()
	require.Equal(t, "root_items_1", item1.InferredName())
}
