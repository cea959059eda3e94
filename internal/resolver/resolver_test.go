package resolver

import (
	"testing"

	"github.com/reoring/modelgen/schema"
	"github.com/stretchr/testify/require"
)

func TestResolve_SimpleDefinitionRef(t *testing.T) {
	root := &schema.Schema{
		Type: schema.NewTypeSet(schema.TypeObject),
		Properties: map[string]*schema.Node{
			"addr": schema.FromSchema(&schema.Schema{Ref: "#/definitions/address"}),
		},
		Definitions: map[string]*schema.Node{
			"address": schema.FromSchema(&schema.Schema{
				Type:       schema.NewTypeSet(schema.TypeObject),
				Properties: map[string]*schema.Node{"city": schema.FromSchema(&schema.Schema{Type: schema.NewTypeSet(schema.TypeString)})},
			}),
		},
	}
	err := Resolve(root)
	require.NoError(t, err)

	addr, ok := root.Properties["addr"].AsSchema()
	require.True(t, ok)
	require.Equal(t, "", addr.Ref)
	require.True(t, addr.Type.Has(schema.TypeObject))
	require.Contains(t, addr.Properties, "city")
	require.Empty(t, root.Definitions)
}

func TestResolve_CyclicReferenceBreaksWithSentinel(t *testing.T) {
	root := &schema.Schema{
		Type: schema.NewTypeSet(schema.TypeObject),
		Properties: map[string]*schema.Node{
			"root": schema.FromSchema(&schema.Schema{Ref: "#/definitions/node"}),
		},
		Definitions: map[string]*schema.Node{
			"node": schema.FromSchema(&schema.Schema{
				Type: schema.NewTypeSet(schema.TypeObject),
				Properties: map[string]*schema.Node{
					"child": schema.FromSchema(&schema.Schema{Ref: "#/definitions/node"}),
				},
			}),
		},
	}
	err := Resolve(root)
	require.NoError(t, err)

	node, ok := root.Properties["root"].AsSchema()
	require.True(t, ok)
	child, ok := node.Properties["child"].AsSchema()
	require.True(t, ok)
	require.Empty(t, child.Properties, "cyclic point substitutes an empty object schema")
	require.True(t, child.Type.Has(schema.TypeObject))
}

func TestResolve_UnresolvableRefFails(t *testing.T) {
	root := &schema.Schema{
		Properties: map[string]*schema.Node{
			"x": schema.FromSchema(&schema.Schema{Ref: "#/definitions/missing"}),
		},
	}
	err := Resolve(root)
	require.Error(t, err)
	var target *UnresolvedRefError
	require.ErrorAs(t, err, &target)
}

func TestResolve_NoRefsIsNoop(t *testing.T) {
	root := &schema.Schema{Type: schema.NewTypeSet(schema.TypeString)}
	require.NoError(t, Resolve(root))
}

func TestResolve_RootItselfIsARef(t *testing.T) {
	root := &schema.Schema{
		ID:  "Root",
		Ref: "#/definitions/node",
		Definitions: map[string]*schema.Node{
			"node": schema.FromSchema(&schema.Schema{
				Type:       schema.NewTypeSet(schema.TypeObject),
				Properties: map[string]*schema.Node{"child": schema.FromSchema(&schema.Schema{Ref: "#/definitions/node"})},
			}),
		},
	}
	root.SetInferredName("root")

	err := Resolve(root)
	require.NoError(t, err)
	require.Equal(t, "", root.Ref)
	require.Equal(t, "Root", root.ID, "root keeps its own identity, not the target's")
	require.Equal(t, "root", root.InferredName())
	require.True(t, root.Type.Has(schema.TypeObject))

	child, ok := root.Properties["child"].AsSchema()
	require.True(t, ok)
	require.Empty(t, child.Properties)
}

func TestResolve_ChainedRefsFullyInline(t *testing.T) {
	root := &schema.Schema{
		Properties: map[string]*schema.Node{
			"x": schema.FromSchema(&schema.Schema{Ref: "#/definitions/a"}),
		},
		Definitions: map[string]*schema.Node{
			"a": schema.FromSchema(&schema.Schema{Ref: "#/definitions/b"}),
			"b": schema.FromSchema(&schema.Schema{Type: schema.NewTypeSet(schema.TypeInteger)}),
		},
	}
	require.NoError(t, Resolve(root))

	x, ok := root.Properties["x"].AsSchema()
	require.True(t, ok)
	require.Equal(t, "", x.Ref)
	require.True(t, x.Type.Has(schema.TypeInteger))
}
