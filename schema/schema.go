// Package schema is the canonical in-memory form of a JSON Schema draft-07
// node (spec §3, "Schema"). A schema value may be a plain boolean (true
// meaning "anything", false meaning "nothing") or an object carrying the
// keywords below; Node models that union.
package schema

// Node models a JSON Schema value at a position that may hold either a
// boolean schema or an object schema — properties[k], items, additionalProperties,
// patternProperties[p], and the members of allOf/anyOf/oneOf/not/dependencies
// are all Node-typed per spec §3.
type Node struct {
	Bool   *bool
	Object *Schema
}

// True returns the "anything matches" boolean schema.
func True() *Node { b := true; return &Node{Bool: &b} }

// False returns the "nothing matches" boolean schema.
func False() *Node { b := false; return &Node{Bool: &b} }

// FromSchema wraps an object schema as a Node.
func FromSchema(s *Schema) *Node {
	if s == nil {
		return nil
	}
	return &Node{Object: s}
}

// IsBoolean reports whether n holds a boolean schema.
func (n *Node) IsBoolean() bool { return n != nil && n.Bool != nil }

// IsTrue reports whether n is the boolean-true schema.
func (n *Node) IsTrue() bool { return n.IsBoolean() && *n.Bool }

// IsFalse reports whether n is the boolean-false schema.
func (n *Node) IsFalse() bool { return n.IsBoolean() && !*n.Bool }

// AsSchema returns the object schema and true, or (nil, false) when n holds
// a boolean or is nil.
func (n *Node) AsSchema() (*Schema, bool) {
	if n == nil || n.Object == nil {
		return nil, false
	}
	return n.Object, true
}

// Items models the "items" keyword: either a single schema applied to every
// element, or an ordered sequence giving tuple semantics (spec §4.3 "items").
type Items struct {
	Single *Node
	Tuple  []*Node
}

// IsTuple reports whether Items holds positional (tuple) schemas.
func (it *Items) IsTuple() bool { return it != nil && it.Tuple != nil }

// Dependency models one value of the "dependencies" keyword: either a
// sub-schema (schema dependency) or a list of co-required property names
// (property dependency).
type Dependency struct {
	Schema     *Node
	Properties []string
}

// Discriminator-free composition keywords aside, Schema mirrors draft-07
// (spec §3) plus the metadata fields a complete draft-07 document carries
// (SPEC_FULL §3.1), grounded on rivaas-dev-rivaas/openapi/model.Schema's
// equivalent IR for the OpenAPI 3.0/3.1 superset of the same keyword set.
type Schema struct {
	// Identity / reference.
	ID   string `json:"$id,omitempty"`
	Ref  string `json:"$ref,omitempty"`
	Type TypeSet

	// Metadata / annotations.
	Title       string
	Description string
	Default     any
	Examples    []any
	ReadOnly    bool
	WriteOnly   bool
	Deprecated  bool

	// Enumeration.
	Enum     []any
	HasConst bool
	Const    any

	// String constraints.
	MinLength *int
	MaxLength *int
	Pattern   string
	Format    string

	// Numeric constraints. Exclusive bounds are draft-07 numeric values, not
	// booleans (draft-04 semantics), per SPEC_FULL §3.1.
	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum *float64
	ExclusiveMaximum *float64
	MultipleOf       *float64

	// Array constraints.
	Items           *Items
	AdditionalItems *Node
	MinItems        *int
	MaxItems        *int
	UniqueItems     bool
	Contains        *Node

	// Object constraints.
	Properties           map[string]*Node
	PatternProperties    map[string]*Node
	AdditionalProperties *Node // nil means "absent"; interpreter defaults absent to true on object-typed schemas only.
	Required             []string
	MinProperties        *int
	MaxProperties        *int
	PropertyNames        *Node
	Dependencies         map[string]*Dependency

	// Composition.
	AllOf []*Node
	AnyOf []*Node
	OneOf []*Node
	Not   *Node

	Definitions map[string]*Node

	// Extensions collects keywords this struct does not model by name,
	// including x-modelgen-inferred-name (spec §6 "Extension attribute").
	// Unknown keywords are tolerated but never interpreted (spec §9).
	Extensions map[string]any
}

// InferredNameKey is the extension attribute the name reflector writes
// (spec §6).
const InferredNameKey = "x-modelgen-inferred-name"

// InferredName returns the reflector-assigned name, or "" if absent.
func (s *Schema) InferredName() string {
	if s == nil || s.Extensions == nil {
		return ""
	}
	if v, ok := s.Extensions[InferredNameKey].(string); ok {
		return v
	}
	return ""
}

// SetInferredName writes the reflector-assigned name, initializing
// Extensions if necessary. It never overwrites an existing value (spec §4.1
// "reflection skips positions where it is already present").
func (s *Schema) SetInferredName(name string) {
	if s.InferredName() != "" {
		return
	}
	if s.Extensions == nil {
		s.Extensions = map[string]any{}
	}
	s.Extensions[InferredNameKey] = name
}

// EffectiveID resolves the model identity source order from spec §4.3:
// $id, then title, then the inferred name.
func (s *Schema) EffectiveID() string {
	if s == nil {
		return ""
	}
	if s.ID != "" {
		return s.ID
	}
	if s.Title != "" {
		return s.Title
	}
	return s.InferredName()
}
