// Package interpreter implements the interpreter (spec §4.3): it walks a
// resolved, reflected schema tree and produces CommonModels, one per
// nameable position plus any auxiliary siblings that anyOf/oneOf members
// and object-typed allOf members contribute.
//
// Grounded on goskema/dsl/irconv.go's ToIRFromSchemaDynamic: a single entry
// point dispatching on the shape of the incoming schema value, with one
// handler per keyword called out as its own function (spec §9's
// "table of handlers" design note).
package interpreter

import (
	"fmt"
	"math"
	"reflect"

	"github.com/reoring/modelgen/model"
	"github.com/reoring/modelgen/schema"
)

// Interpret converts the schema value at n into a list of CommonModels: the
// first element is the primary model for n, any further elements are
// auxiliary siblings discovered along the way (oneOf/anyOf members and
// object-typed allOf members, spec §4.3). positionName is the name this node would carry if it has no
// $id/title of its own — for boolean schemas it is the only name available,
// since reflection never annotates a boolean value.
func Interpret(n *schema.Node, positionName string) []*model.CommonModel {
	if n == nil {
		return nil
	}
	if n.IsBoolean() {
		m := model.New(positionName, nil)
		m.Unsatisfiable = n.IsFalse()
		return []*model.CommonModel{m}
	}
	s, _ := n.AsSchema()
	return interpretSchema(s, positionName)
}

func interpretSchema(s *schema.Schema, positionName string) []*model.CommonModel {
	id := effectiveID(s, positionName)
	m := model.New(id, s)
	var siblings []*model.CommonModel

	hasExplicitType := len(s.Type) > 0
	if hasExplicitType {
		m.Type = s.Type
	} else if inferred := inferTypeFromValues(enumAndConstValues(s)); len(inferred) > 0 {
		m.Type = inferred
	}
	if len(s.Enum) > 0 {
		m.Enum = append(m.Enum, s.Enum...)
	}
	if s.HasConst {
		m.Enum = append(m.Enum, s.Const)
	}

	// Object type inference: properties/patternProperties imply "object" when
	// no explicit type was given (spec §4.3). Computed before
	// additionalProperties below so its own defaulting (also object-only, see
	// there) can see the inferred type, not just an explicit one.
	if !hasExplicitType && (len(s.Properties) > 0 || len(s.PatternProperties) > 0) {
		m.Type = m.Type.Union(schema.NewTypeSet(schema.TypeObject))
	}
	isObjectTyped := m.Type.Has(schema.TypeObject)

	if len(s.Properties) > 0 {
		m.Properties = make(map[string]*model.CommonModel, len(s.Properties))
		for k, child := range s.Properties {
			results := Interpret(child, join(id, k))
			if len(results) == 0 {
				continue
			}
			m.Properties[k] = results[0]
			siblings = append(siblings, results[1:]...)
		}
	}

	if s.Items != nil {
		if s.Items.IsTuple() {
			tuple := make([]*model.CommonModel, 0, len(s.Items.Tuple))
			for i, child := range s.Items.Tuple {
				results := Interpret(child, join(id, fmt.Sprintf("items_%d", i)))
				if len(results) == 0 {
					continue
				}
				tuple = append(tuple, results[0])
				siblings = append(siblings, results[1:]...)
			}
			m.Items = &model.Items{Tuple: tuple}
		} else if s.Items.Single != nil {
			results := Interpret(s.Items.Single, join(id, "items"))
			if len(results) > 0 {
				m.Items = &model.Items{Single: results[0]}
				siblings = append(siblings, results[1:]...)
			}
		}
	}

	// additionalProperties defaults to true (anything) when absent, but only
	// for an object-typed schema (spec §4.3): defaulting it on a non-object
	// node (e.g. a bare `{}` used as an items schema) would manufacture a
	// non-nil AdditionalProperties the simplifier could mistake for an
	// explicit, constraining one, extracting an "anything" position that
	// should have stayed inlined exactly like its `true` boolean-schema
	// equivalent (spec §8 scenario 4). An explicitly authored
	// additionalProperties is always honored regardless of type.
	switch {
	case s.AdditionalProperties != nil:
		if apResults := Interpret(s.AdditionalProperties, join(id, "additionalProperty")); len(apResults) > 0 {
			m.AdditionalProperties = apResults[0]
			siblings = append(siblings, apResults[1:]...)
		}
	case isObjectTyped:
		if apResults := Interpret(schema.True(), join(id, "additionalProperty")); len(apResults) > 0 {
			m.AdditionalProperties = apResults[0]
			siblings = append(siblings, apResults[1:]...)
		}
	}

	if len(s.PatternProperties) > 0 {
		m.PatternProperties = make(map[string]*model.CommonModel, len(s.PatternProperties))
		idx := 0
		for _, key := range sortedKeys(s.PatternProperties) {
			results := Interpret(s.PatternProperties[key], join(id, fmt.Sprintf("pattern_property_%d", idx)))
			idx++
			if len(results) == 0 {
				continue
			}
			m.PatternProperties[key] = results[0]
			siblings = append(siblings, results[1:]...)
		}
	}

	if len(s.Required) > 0 {
		m.Required = append([]string{}, s.Required...)
	}

	for i, member := range s.AllOf {
		results := Interpret(member, join(id, fmt.Sprintf("allOf_%d", i)))
		if len(results) == 0 {
			continue
		}
		head := results[0]
		siblings = append(siblings, results[1:]...)
		if head.IsObjectModel() {
			m.Extend = append(m.Extend, head.ID)
			// The base model itself must survive into the model map so the
			// $id recorded in Extend resolves to something (spec §4.3).
			siblings = append(siblings, head)
		} else {
			mergeConstraints(m, head)
		}
	}

	for i, member := range s.AnyOf {
		results := Interpret(member, join(id, fmt.Sprintf("anyOf_%d", i)))
		if len(results) == 0 {
			continue
		}
		head := results[0]
		m.Type = m.Type.Union(head.Type)
		siblings = append(siblings, head)
		siblings = append(siblings, results[1:]...)
	}
	for i, member := range s.OneOf {
		results := Interpret(member, join(id, fmt.Sprintf("oneOf_%d", i)))
		if len(results) == 0 {
			continue
		}
		head := results[0]
		m.Type = m.Type.Union(head.Type)
		siblings = append(siblings, head)
		siblings = append(siblings, results[1:]...)
	}

	// not: a best-effort approximation. Only enum subtraction is attempted;
	// general schema negation is out of scope (spec §9).
	if s.Not != nil {
		if notSchema, ok := s.Not.AsSchema(); ok && len(notSchema.Enum) > 0 && len(m.Enum) > 0 {
			m.Enum = subtract(m.Enum, notSchema.Enum)
		}
	}

	for k, dep := range s.Dependencies {
		if dep == nil || dep.Schema == nil {
			continue
		}
		results := Interpret(dep.Schema, join(id, k))
		if len(results) == 0 {
			continue
		}
		head := results[0]
		siblings = append(siblings, results[1:]...)
		mergeConstraints(m, head)
	}

	return append([]*model.CommonModel{m}, siblings...)
}

// effectiveID resolves $id || title || inferred-name || the caller-supplied
// positional name, per spec §4.3.
func effectiveID(s *schema.Schema, positionName string) string {
	if id := s.EffectiveID(); id != "" {
		return id
	}
	return positionName
}

// mergeConstraints folds src's type and enum into dst, used for allOf
// members that are not themselves object models and for schema
// dependencies (spec §4.3: "merge... into the parent (union of
// constraints)").
func mergeConstraints(dst, src *model.CommonModel) {
	dst.Type = dst.Type.Union(src.Type)
	dst.Enum = unionValues(dst.Enum, src.Enum)
	dst.Required = unionStrings(dst.Required, src.Required)
}

func join(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "_" + key
}

func sortedKeys(m map[string]*schema.Node) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

func enumAndConstValues(s *schema.Schema) []any {
	if s.HasConst {
		return []any{s.Const}
	}
	return s.Enum
}

// inferTypeFromValues maps JSON-decoded literal values to their schema type
// tags: nil->null, bool->boolean, []any->array, map[string]any->object,
// whole-valued float64->integer, other float64->number, string->string.
// goccy/go-json (like encoding/json) decodes all JSON numbers to float64,
// so unlike the source runtime's bigint/number split, integer vs number is
// inferred from whether the literal carries a fractional part.
func inferTypeFromValues(values []any) schema.TypeSet {
	var tags []schema.Tag
	for _, v := range values {
		switch t := v.(type) {
		case nil:
			tags = append(tags, schema.TypeNull)
		case bool:
			tags = append(tags, schema.TypeBoolean)
		case []any:
			tags = append(tags, schema.TypeArray)
		case map[string]any:
			tags = append(tags, schema.TypeObject)
		case string:
			tags = append(tags, schema.TypeString)
		case float64:
			if t == math.Trunc(t) {
				tags = append(tags, schema.TypeInteger)
			} else {
				tags = append(tags, schema.TypeNumber)
			}
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return schema.NewTypeSet(tags...)
}

// unionValues appends b's values not already present in a. Enum literals
// may be arbitrary JSON values, including unhashable slices/maps, so
// membership uses reflect.DeepEqual instead of a map key.
func unionValues(a, b []any) []any {
	if len(b) == 0 {
		return a
	}
	out := append([]any{}, a...)
	for _, v := range b {
		if !containsValue(out, v) {
			out = append(out, v)
		}
	}
	return out
}

func containsValue(list []any, v any) bool {
	for _, e := range list {
		if reflect.DeepEqual(e, v) {
			return true
		}
	}
	return false
}

func unionStrings(a, b []string) []string {
	if len(b) == 0 {
		return a
	}
	seen := make(map[string]bool, len(a))
	out := append([]string{}, a...)
	for _, v := range a {
		seen[v] = true
	}
	for _, v := range b {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func subtract(a, b []any) []any {
	out := make([]any, 0, len(a))
	for _, v := range a {
		if !containsValue(b, v) {
			out = append(out, v)
		}
	}
	return out
}
