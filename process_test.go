package modelgen

import (
	"context"
	"testing"

	"github.com/reoring/modelgen/schema"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, doc string) *schema.Node {
	t.Helper()
	n, err := schema.Parse([]byte(doc))
	require.NoError(t, err)
	return n
}

// Scenario 1: simple object.
func TestProcess_SimpleObject(t *testing.T) {
	s := mustParse(t, `{
		"$id": "A",
		"type": "object",
		"properties": { "x": { "type": "string" } }
	}`)
	res, err := Process(context.Background(), s)
	require.NoError(t, err)

	a, ok := res.Models["A"]
	require.True(t, ok)
	require.True(t, a.IsObjectModel())
	require.True(t, a.Properties["x"].IsReference)
	require.Equal(t, "x", a.Properties["x"].ID)

	x, ok := res.Models["x"]
	require.True(t, ok)
	require.True(t, x.Type.Has(schema.TypeString))
}

// Scenario 2: enum collapse.
func TestProcess_EnumCollapse(t *testing.T) {
	s := mustParse(t, `{ "$id": "S", "type": "string", "enum": ["a", "b", "c"] }`)
	res, err := Process(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, res.Models, 1)
	m, ok := res.Models["S"]
	require.True(t, ok)
	require.Equal(t, []any{"a", "b", "c"}, m.Enum)
	require.True(t, m.Type.Has(schema.TypeString))
}

// Scenario 3: cyclic reference.
func TestProcess_CyclicReference(t *testing.T) {
	s := mustParse(t, `{
		"$id": "Root",
		"$ref": "#/definitions/node",
		"definitions": {
			"node": {
				"type": "object",
				"properties": { "child": { "$ref": "#/definitions/node" } }
			}
		}
	}`)
	res, err := Process(context.Background(), s)
	require.NoError(t, err)

	found := false
	for _, m := range res.Models {
		if m.Properties != nil {
			if child, ok := m.Properties["child"]; ok {
				childModel := res.Models[child.ID]
				require.NotNil(t, childModel)
				require.Empty(t, childModel.Properties, "the cyclic point resolves to an empty object model")
				found = true
			}
		}
	}
	require.True(t, found, "expected to find a model with a child property")
}

// Scenario 4: all-types union.
func TestProcess_AllTypesUnion(t *testing.T) {
	s := mustParse(t, `{
		"$id": "Any",
		"type": ["null","boolean","integer","number","string","array","object"]
	}`)
	res, err := Process(context.Background(), s)
	require.NoError(t, err)
	m, ok := res.Models["Any"]
	require.True(t, ok)
	require.True(t, m.IsAny())
}

func TestProcess_AllTypesUnionNotExtractedAsProperty(t *testing.T) {
	s := mustParse(t, `{
		"$id": "Parent",
		"type": "object",
		"properties": {
			"p": { "type": ["null","boolean","integer","number","string","array","object"] }
		}
	}`)
	res, err := Process(context.Background(), s)
	require.NoError(t, err)
	parent := res.Models["Parent"]
	require.False(t, parent.Properties["p"].IsReference)
	require.True(t, parent.Properties["p"].IsAny())
}

// Scenario 5: inferred naming.
func TestProcess_InferredNaming(t *testing.T) {
	s := mustParse(t, `{
		"properties": {
			"outer": {
				"properties": {
					"inner": { "type": "object" }
				}
			}
		}
	}`)
	res, err := Process(context.Background(), s, WithSeedName("root"))
	require.NoError(t, err)

	found := false
	ids := make([]string, 0, len(res.Models))
	for id := range res.Models {
		ids = append(ids, id)
		if id == "root_outer_inner" {
			found = true
		}
	}
	require.True(t, found, "expected an inferred id containing outer_inner, got %v", ids)
}

// Scenario 6: unsupported draft.
func TestProcess_UnsupportedDraft(t *testing.T) {
	input := map[string]any{"$schema": "http://json-schema.org/draft-99/schema#"}
	require.False(t, ShouldProcess(input))

	_, err := Process(context.Background(), input)
	require.Error(t, err)
	require.True(t, IsKind(err, KindUnsupportedSchemaDraft))
}

func TestShouldProcess_NoSchemaKeywordIsSupported(t *testing.T) {
	require.True(t, ShouldProcess(map[string]any{"type": "object"}))
}

// A bare boolean is itself a valid root schema (spec §3, §4.5 step 1): both
// true and false are candidates for Process. Only genuinely unrepresentable
// input types are rejected.
func TestShouldProcess_AcceptsBooleanRoot(t *testing.T) {
	require.True(t, ShouldProcess(true))
	require.True(t, ShouldProcess(false))
}

func TestShouldProcess_RejectsUnsupportedInputType(t *testing.T) {
	require.False(t, ShouldProcess("nope"))
	require.False(t, ShouldProcess(42))
	require.False(t, ShouldProcess(nil))
}

// Scenario: a bare boolean root schema processes to a single unconstrained
// (true) or unsatisfiable (false) model, with no $schema/reflection/
// resolution step in play.
func TestProcess_BooleanRoot(t *testing.T) {
	res, err := Process(context.Background(), true, WithSeedName("root"))
	require.NoError(t, err)
	m, ok := res.Models["root"]
	require.True(t, ok)
	require.False(t, m.Unsatisfiable)

	res, err = Process(context.Background(), false, WithSeedName("root"))
	require.NoError(t, err)
	m, ok = res.Models["root"]
	require.True(t, ok)
	require.True(t, m.Unsatisfiable)
}

func TestShouldProcess_AcceptsPreParsedSchema(t *testing.T) {
	require.True(t, ShouldProcess(mustParse(t, `{"type":"object"}`)))
	unsupported := mustParse(t, `{"$schema":"http://json-schema.org/draft-99/schema#","type":"object"}`)
	require.False(t, ShouldProcess(unsupported))
}

func TestProcess_WithSupportedDraftWidensRecognition(t *testing.T) {
	customDraft := "https://example.com/schemas/custom-draft#"
	input := map[string]any{"$schema": customDraft, "type": "string"}
	require.True(t, ShouldProcess(input, WithSupportedDraft(customDraft)))

	res, err := Process(context.Background(), input, WithSupportedDraft(customDraft))
	require.NoError(t, err)
	require.NotNil(t, res)
}

func TestProcess_MergeConflictIsNonFatalWarning(t *testing.T) {
	s := mustParse(t, `{
		"$id": "Combined",
		"type": "object",
		"allOf": [
			{ "$id": "Dup", "type": "object", "properties": { "a": { "type": "string" } } },
			{ "$id": "Dup", "type": "object", "properties": { "a": { "type": "integer" } } }
		]
	}`)
	res, err := Process(context.Background(), s)
	require.NoError(t, err)
	require.NotEmpty(t, res.Warnings, "conflicting models for the same property under one $id should warn, not fail")
	require.Contains(t, res.Models, "Dup")
	require.Contains(t, res.Models["Combined"].Extend, "Dup")
}

func TestProcess_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Process(ctx, mustParse(t, `{"type":"string"}`), WithSeedName("root"))
	require.ErrorIs(t, err, context.Canceled)
}
