// Package reflector implements the name reflector (spec §4.1): a single
// walk over the raw schema tree that assigns a stable
// x-modelgen-inferred-name to every subschema at a position that may become
// a model, before resolution or interpretation run.
//
// Grounded on goskema's ref_pathref.go path-building style and on
// dsl/irconv.go's position-aware recursive walk. Names are joined with this
// package's own "_" join; internal/jsonpointer is not used here.
package reflector

import (
	"fmt"

	"github.com/reoring/modelgen/schema"
)

// Reflect walks s in place, seeding s's own name with seed (spec §4.1's
// isRoot flag: the top-level name is taken verbatim, not prefixed).
func Reflect(s *schema.Schema, seed string) {
	if s == nil {
		return
	}
	reflectSchema(s, seed)
}

// reflectSchema assigns name to s (if not already present) and recurses
// into every nameable child position, joining path components with "_" per
// spec §4.1's naming table.
func reflectSchema(s *schema.Schema, name string) {
	if s == nil {
		return
	}
	s.SetInferredName(name)

	for k, n := range s.Properties {
		reflectNode(n, join(name, k))
	}
	for i, n := range s.AllOf {
		reflectNode(n, join(name, fmt.Sprintf("allOf_%d", i)))
	}
	for i, n := range s.AnyOf {
		reflectNode(n, join(name, fmt.Sprintf("anyOf_%d", i)))
	}
	for i, n := range s.OneOf {
		reflectNode(n, join(name, fmt.Sprintf("oneOf_%d", i)))
	}
	if s.Items != nil {
		if s.Items.IsTuple() {
			for i, n := range s.Items.Tuple {
				reflectNode(n, join(name, fmt.Sprintf("items_%d", i)))
			}
		} else {
			reflectNode(s.Items.Single, join(name, "items"))
		}
	}
	if s.AdditionalProperties != nil {
		reflectNode(s.AdditionalProperties, join(name, "additionalProperty"))
	}
	if len(s.PatternProperties) > 0 {
		// Sequential index, not the pattern itself (spec §4.1 table).
		idx := 0
		for _, n := range sortedPatternKeys(s.PatternProperties) {
			reflectNode(s.PatternProperties[n], join(name, fmt.Sprintf("pattern_property_%d", idx)))
			idx++
		}
	}
	for k, dep := range s.Dependencies {
		if dep != nil && dep.Schema != nil {
			reflectNode(dep.Schema, join(name, k))
		}
	}
	for k, n := range s.Definitions {
		// Definitions are reflected with the key alone, not prefixed by
		// parent, to match the calibration test (spec §4.1).
		reflectNode(n, k)
	}
	if s.Not != nil {
		reflectNode(s.Not, join(name, "not"))
	}
}

// reflectNode dispatches a Node-typed position: boolean schemas are skipped
// (spec §4.1), object schemas recurse.
func reflectNode(n *schema.Node, name string) {
	if n == nil || n.IsBoolean() {
		return
	}
	if s, ok := n.AsSchema(); ok {
		reflectSchema(s, name)
	}
}

func join(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "_" + key
}

// sortedPatternKeys returns m's keys in a stable order so repeated runs
// assign the same sequential pattern_property_N names.
func sortedPatternKeys(m map[string]*schema.Node) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	// Simple insertion sort keeps this package free of an extra import for
	// what is at most a handful of pattern keys per object.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
