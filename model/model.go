// Package model defines CommonModel, the pipeline's normalized intermediate
// representation — one record per nameable schema node (spec §3). It is the
// output vocabulary of the interpreter and simplifier and the input
// vocabulary of any downstream renderer.
//
// Grounded on goskema/internal/ir.go's Schema/Primitive/Array/Object/OneOf
// node set: this package plays the same "flat IR the generator walks" role,
// generalized from goskema's fixed primitive/array/object/oneOf kinds to the
// full draft-07 keyword surface this pipeline interprets.
package model

import "github.com/reoring/modelgen/schema"

// Items mirrors schema.Items at the CommonModel level: either every element
// shares one CommonModel, or positions are typed individually (tuple
// semantics), per spec §4.3 "items".
type Items struct {
	Single *CommonModel
	Tuple  []*CommonModel
}

// IsTuple reports whether Items carries positional (tuple) models.
func (it *Items) IsTuple() bool { return it != nil && it.Tuple != nil }

// CommonModel is the normalized intermediate the interpreter produces and
// the simplifier deduplicates (spec §3 "CommonModel").
type CommonModel struct {
	ID   string
	Type schema.TypeSet
	Enum []any

	Properties           map[string]*CommonModel
	Items                *Items
	AdditionalProperties *CommonModel
	PatternProperties    map[string]*CommonModel
	Required             []string

	// Extend holds the $ids this model inherits from, derived from allOf
	// members that interpreted as object-typed models (spec §4.3 "allOf").
	Extend []string

	// OriginalSchema back-points to the source node for downstream decisions
	// a renderer might need that CommonModel does not itself carry.
	OriginalSchema *schema.Schema

	// IsReference marks a placeholder: when true, ID is the only meaningful
	// field, and it names an entry elsewhere in the same model map (spec
	// §4.4 rule 1, GLOSSARY "Reference model").
	IsReference bool

	// Unsatisfiable marks the result of interpreting the `false` boolean
	// schema: no value can ever satisfy this model (spec §4.3).
	Unsatisfiable bool
}

// New creates an empty CommonModel identified by id, back-pointing to src.
// The interpreter calls this on entering a schema (spec §4.3).
func New(id string, src *schema.Schema) *CommonModel {
	return &CommonModel{ID: id, OriginalSchema: src}
}

// Reference builds a placeholder CommonModel pointing at id (spec §4.4
// rule 1). Sub-model extraction in the simplifier replaces any nested model
// that carries a constraint (object-typed or not) with one of these.
func Reference(id string) *CommonModel {
	return &CommonModel{ID: id, IsReference: true}
}

// IsObjectModel reports whether m is an "object model" per spec §3's
// CommonModel invariant: type includes object and at least one of
// properties, extend, patternProperties, or additionalProperties is set.
func (m *CommonModel) IsObjectModel() bool {
	if m == nil || !m.Type.Has(schema.TypeObject) {
		return false
	}
	if len(m.Properties) > 0 || len(m.Extend) > 0 || len(m.PatternProperties) > 0 {
		return true
	}
	return m.AdditionalProperties != nil
}

// IsAny reports whether m's type set spans all seven JSON types (spec §4.4
// rule 3 / §8 scenario 4): such a model is never extracted as an object
// sub-model even when object is technically a member.
func (m *CommonModel) IsAny() bool { return m.Type.IsAny() }

// Warning is a non-fatal diagnostic the simplifier records without
// aborting the pipeline (spec §7 "MergeConflict"). The root package
// translates these into its own Issue vocabulary for Result.Warnings.
type Warning struct {
	Path    string
	Code    string
	Message string
	Params  map[string]any
}
