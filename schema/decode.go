package schema

import (
	"fmt"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Parse decodes a draft-07 JSON Schema document from JSON bytes using
// goccy/go-json (grounded on goskema's source/gojson driver, which prefers
// the same decoder for its speed on large documents). The document's root
// may be a plain boolean or an object (spec §3): both are valid schema
// values, so Parse returns a *Node rather than forcing the root to be an
// object.
func Parse(data []byte) (*Node, error) {
	var raw any
	if err := gojson.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("schema: decode json: %w", err)
	}
	return nodeFromAny(raw)
}

// ParseYAML decodes a draft-07 JSON Schema document from YAML bytes, using
// yaml.v3 and normalizing map[string]interface{} keys the way
// kubeopenapi/yaml.go's ImportYAMLForCRDKind does for CRD schemas nested
// inside YAML manifests. As with Parse, the root may be a boolean or an
// object.
func ParseYAML(data []byte) (*Node, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("schema: decode yaml: %w", err)
	}
	norm := yamlNormalizeValue(raw)
	return nodeFromAny(norm)
}

// yamlNormalizeValue recursively rewrites map[string]interface{} produced by
// gopkg.in/yaml.v3 into map[string]any trees so the rest of the decoder can
// treat YAML and JSON input uniformly. yaml.v3 already keys maps by string
// (unlike yaml.v2's map[interface{}]interface{}), but nested slices and maps
// still need walking to normalize consistently.
func yamlNormalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = yamlNormalizeValue(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = yamlNormalizeValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = yamlNormalizeValue(val)
		}
		return out
	default:
		return v
	}
}

// FromValue converts an already-decoded JSON value (map[string]any, bool,
// or nil, as produced by encoding/json, goccy/go-json, or yaml.v3) into a
// Node. Callers building the "any" they hand to modelgen.Process from their
// own decoding pipeline use this instead of Parse/ParseYAML.
func FromValue(v any) (*Node, error) { return nodeFromAny(v) }

// nodeFromAny converts a decoded JSON/YAML value at a Node-typed position
// (boolean-or-object) into a *Node.
func nodeFromAny(v any) (*Node, error) {
	switch t := v.(type) {
	case bool:
		if t {
			return True(), nil
		}
		return False(), nil
	case map[string]any:
		s, err := schemaFromMap(t)
		if err != nil {
			return nil, err
		}
		return FromSchema(s), nil
	case nil:
		return True(), nil
	default:
		return nil, fmt.Errorf("schema: expected object or boolean, got %T", v)
	}
}

func schemaFromMap(m map[string]any) (*Schema, error) {
	s := &Schema{}
	known := map[string]struct{}{}
	mark := func(k string) { known[k] = struct{}{} }

	if v, ok := m["$id"]; ok {
		mark("$id")
		s.ID, _ = v.(string)
	}
	if v, ok := m["$ref"]; ok {
		mark("$ref")
		s.Ref, _ = v.(string)
	}
	if v, ok := m["type"]; ok {
		mark("type")
		ts, err := typeSetFromAny(v)
		if err != nil {
			return nil, err
		}
		s.Type = ts
	}
	if v, ok := m["title"]; ok {
		mark("title")
		s.Title, _ = v.(string)
	}
	if v, ok := m["description"]; ok {
		mark("description")
		s.Description, _ = v.(string)
	}
	if v, ok := m["default"]; ok {
		mark("default")
		s.Default = v
	}
	if v, ok := m["examples"]; ok {
		mark("examples")
		if arr, ok := v.([]any); ok {
			s.Examples = arr
		}
	}
	if v, ok := m["readOnly"]; ok {
		mark("readOnly")
		s.ReadOnly, _ = v.(bool)
	}
	if v, ok := m["writeOnly"]; ok {
		mark("writeOnly")
		s.WriteOnly, _ = v.(bool)
	}
	if v, ok := m["deprecated"]; ok {
		mark("deprecated")
		s.Deprecated, _ = v.(bool)
	}
	if v, ok := m["enum"]; ok {
		mark("enum")
		if arr, ok := v.([]any); ok {
			s.Enum = arr
		}
	}
	if v, hasConst := m["const"]; hasConst {
		mark("const")
		s.HasConst = true
		s.Const = v
	}
	if v, ok := m["minLength"]; ok {
		mark("minLength")
		s.MinLength = intPtr(v)
	}
	if v, ok := m["maxLength"]; ok {
		mark("maxLength")
		s.MaxLength = intPtr(v)
	}
	if v, ok := m["pattern"]; ok {
		mark("pattern")
		s.Pattern, _ = v.(string)
	}
	if v, ok := m["format"]; ok {
		mark("format")
		s.Format, _ = v.(string)
	}
	if v, ok := m["minimum"]; ok {
		mark("minimum")
		s.Minimum = floatPtr(v)
	}
	if v, ok := m["maximum"]; ok {
		mark("maximum")
		s.Maximum = floatPtr(v)
	}
	if v, ok := m["exclusiveMinimum"]; ok {
		mark("exclusiveMinimum")
		s.ExclusiveMinimum = floatPtr(v)
	}
	if v, ok := m["exclusiveMaximum"]; ok {
		mark("exclusiveMaximum")
		s.ExclusiveMaximum = floatPtr(v)
	}
	if v, ok := m["multipleOf"]; ok {
		mark("multipleOf")
		s.MultipleOf = floatPtr(v)
	}
	if v, ok := m["items"]; ok {
		mark("items")
		items, err := itemsFromAny(v)
		if err != nil {
			return nil, err
		}
		s.Items = items
	}
	if v, ok := m["additionalItems"]; ok {
		mark("additionalItems")
		n, err := nodeFromAny(v)
		if err != nil {
			return nil, err
		}
		s.AdditionalItems = n
	}
	if v, ok := m["minItems"]; ok {
		mark("minItems")
		s.MinItems = intPtr(v)
	}
	if v, ok := m["maxItems"]; ok {
		mark("maxItems")
		s.MaxItems = intPtr(v)
	}
	if v, ok := m["uniqueItems"]; ok {
		mark("uniqueItems")
		s.UniqueItems, _ = v.(bool)
	}
	if v, ok := m["contains"]; ok {
		mark("contains")
		n, err := nodeFromAny(v)
		if err != nil {
			return nil, err
		}
		s.Contains = n
	}
	if v, ok := m["properties"]; ok {
		mark("properties")
		props, err := nodeMapFromAny(v)
		if err != nil {
			return nil, err
		}
		s.Properties = props
	}
	if v, ok := m["patternProperties"]; ok {
		mark("patternProperties")
		pp, err := nodeMapFromAny(v)
		if err != nil {
			return nil, err
		}
		s.PatternProperties = pp
	}
	if v, ok := m["additionalProperties"]; ok {
		mark("additionalProperties")
		n, err := nodeFromAny(v)
		if err != nil {
			return nil, err
		}
		s.AdditionalProperties = n
	}
	if v, ok := m["required"]; ok {
		mark("required")
		s.Required = stringSliceFromAny(v)
	}
	if v, ok := m["minProperties"]; ok {
		mark("minProperties")
		s.MinProperties = intPtr(v)
	}
	if v, ok := m["maxProperties"]; ok {
		mark("maxProperties")
		s.MaxProperties = intPtr(v)
	}
	if v, ok := m["propertyNames"]; ok {
		mark("propertyNames")
		n, err := nodeFromAny(v)
		if err != nil {
			return nil, err
		}
		s.PropertyNames = n
	}
	if v, ok := m["dependencies"]; ok {
		mark("dependencies")
		deps, err := dependenciesFromAny(v)
		if err != nil {
			return nil, err
		}
		s.Dependencies = deps
	}
	if v, ok := m["allOf"]; ok {
		mark("allOf")
		nodes, err := nodeSliceFromAny(v)
		if err != nil {
			return nil, err
		}
		s.AllOf = nodes
	}
	if v, ok := m["anyOf"]; ok {
		mark("anyOf")
		nodes, err := nodeSliceFromAny(v)
		if err != nil {
			return nil, err
		}
		s.AnyOf = nodes
	}
	if v, ok := m["oneOf"]; ok {
		mark("oneOf")
		nodes, err := nodeSliceFromAny(v)
		if err != nil {
			return nil, err
		}
		s.OneOf = nodes
	}
	if v, ok := m["not"]; ok {
		mark("not")
		n, err := nodeFromAny(v)
		if err != nil {
			return nil, err
		}
		s.Not = n
	}
	if v, ok := m["definitions"]; ok {
		mark("definitions")
		defs, err := nodeMapFromAny(v)
		if err != nil {
			return nil, err
		}
		s.Definitions = defs
	}

	for k, v := range m {
		if _, ok := known[k]; ok {
			continue
		}
		if s.Extensions == nil {
			s.Extensions = map[string]any{}
		}
		s.Extensions[k] = v
	}
	return s, nil
}

func typeSetFromAny(v any) (TypeSet, error) {
	switch t := v.(type) {
	case string:
		return NewTypeSet(Tag(t)), nil
	case []any:
		tags := make([]Tag, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("schema: type array element must be a string, got %T", e)
			}
			tags = append(tags, Tag(s))
		}
		return NewTypeSet(tags...), nil
	default:
		return nil, fmt.Errorf("schema: type must be a string or array of strings, got %T", v)
	}
}

func itemsFromAny(v any) (*Items, error) {
	switch t := v.(type) {
	case []any:
		nodes, err := nodeSliceFromAny(t)
		if err != nil {
			return nil, err
		}
		return &Items{Tuple: nodes}, nil
	default:
		n, err := nodeFromAny(v)
		if err != nil {
			return nil, err
		}
		return &Items{Single: n}, nil
	}
}

func nodeSliceFromAny(v any) ([]*Node, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("schema: expected array, got %T", v)
	}
	out := make([]*Node, 0, len(arr))
	for _, e := range arr {
		n, err := nodeFromAny(e)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func nodeMapFromAny(v any) (map[string]*Node, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("schema: expected object, got %T", v)
	}
	out := make(map[string]*Node, len(m))
	for k, e := range m {
		n, err := nodeFromAny(e)
		if err != nil {
			return nil, err
		}
		out[k] = n
	}
	return out, nil
}

func dependenciesFromAny(v any) (map[string]*Dependency, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("schema: expected object, got %T", v)
	}
	out := make(map[string]*Dependency, len(m))
	for k, e := range m {
		switch t := e.(type) {
		case []any:
			out[k] = &Dependency{Properties: stringSliceFromAny(t)}
		default:
			n, err := nodeFromAny(e)
			if err != nil {
				return nil, err
			}
			out[k] = &Dependency{Schema: n}
		}
	}
	return out, nil
}

func stringSliceFromAny(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func intPtr(v any) *int {
	switch t := v.(type) {
	case float64:
		i := int(t)
		return &i
	case int:
		return &t
	default:
		return nil
	}
}

func floatPtr(v any) *float64 {
	switch t := v.(type) {
	case float64:
		return &t
	case int:
		f := float64(t)
		return &f
	default:
		return nil
	}
}
