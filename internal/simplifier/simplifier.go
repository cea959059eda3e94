// Package simplifier implements the simplifier (spec §4.4): it takes the
// flat list of CommonModels the interpreter produced (a primary model per
// schema plus any auxiliary siblings) and reduces it to a deduplicated
// map[$id]CommonModel, extracting nested models into top-level entries and
// replacing their original position with a reference placeholder.
//
// Grounded on goskema/presence.go's mergePresenceMaps: that function merges
// two bitmask maps by "union of keys, OR on conflict"; this package's
// mergeDuplicates follows the same union-then-reconcile shape for merging
// CommonModel constraint sets sharing an $id.
package simplifier

import (
	"fmt"

	"github.com/reoring/modelgen/model"
)

// Simplify reduces models (the interpreter's output list, including
// auxiliary siblings) into a deduplicated map keyed by $id, extracting
// every nested model that carries any constraint (not only object or enum
// models; see isUnconstrained) into its own entry. Non-fatal
// irreconcilable merges are reported as warnings rather than failing the
// pipeline (spec §7).
func Simplify(models []*model.CommonModel) (map[string]*model.CommonModel, []model.Warning) {
	out := make(map[string]*model.CommonModel)
	var warnings []model.Warning
	for _, m := range models {
		if m == nil {
			continue
		}
		extractChildren(out, m, &warnings)
		mergeIn(out, m, &warnings)
	}
	return out, warnings
}

// extractChildren walks m's child positions depth-first, replacing any
// position whose model is not "unconstrained" (spec §4.4 rule 3's "any"
// collapse, generalized to the equivalent boolean-true case) with a
// reference model, after registering the extracted model itself.
func extractChildren(out map[string]*model.CommonModel, m *model.CommonModel, warnings *[]model.Warning) {
	for k, child := range m.Properties {
		m.Properties[k] = extractChild(out, child, warnings)
	}
	if m.Items != nil {
		if m.Items.IsTuple() {
			for i, child := range m.Items.Tuple {
				m.Items.Tuple[i] = extractChild(out, child, warnings)
			}
		} else if m.Items.Single != nil {
			m.Items.Single = extractChild(out, m.Items.Single, warnings)
		}
	}
	if m.AdditionalProperties != nil {
		m.AdditionalProperties = extractChild(out, m.AdditionalProperties, warnings)
	}
	for k, child := range m.PatternProperties {
		m.PatternProperties[k] = extractChild(out, child, warnings)
	}
}

// extractChild recurses into child's own children first, then decides
// whether child itself should become a top-level entry.
func extractChild(out map[string]*model.CommonModel, child *model.CommonModel, warnings *[]model.Warning) *model.CommonModel {
	if child == nil || child.IsReference {
		return child
	}
	extractChildren(out, child, warnings)
	if isUnconstrained(child) {
		return child
	}
	mergeIn(out, child, warnings)
	return model.Reference(child.ID)
}

// isUnconstrained reports whether m represents "anything" — either the
// all-seven-types union (spec §4.4 rule 3) or the equivalent empty model
// produced by a bare `true` boolean schema (e.g. a defaulted
// additionalProperties). Neither is extracted as a sub-model: both stay
// inlined at their original position (spec §8 scenario 4).
func isUnconstrained(m *model.CommonModel) bool {
	if m.IsAny() {
		return true
	}
	return len(m.Type) == 0 &&
		len(m.Enum) == 0 &&
		len(m.Properties) == 0 &&
		len(m.PatternProperties) == 0 &&
		len(m.Extend) == 0 &&
		m.Items == nil &&
		m.AdditionalProperties == nil &&
		!m.Unsatisfiable
}

// mergeIn inserts m into out under its $id, merging with any existing entry
// sharing that id (spec §4.4 rule 2).
func mergeIn(out map[string]*model.CommonModel, m *model.CommonModel, warnings *[]model.Warning) {
	existing, ok := out[m.ID]
	if !ok {
		out[m.ID] = m
		return
	}
	if existing == m {
		return
	}
	merged, warning := mergeDuplicates(existing, m)
	out[m.ID] = merged
	if warning != nil {
		*warnings = append(*warnings, *warning)
	}
}

// mergeDuplicates combines two CommonModels sharing an $id: union of Type,
// Enum, and Required, recursive merge of Properties, dedup-concatenation of
// Extend, and "newer wins plus a warning" for genuinely conflicting
// structural fields (spec §4.4 rule 2, §9 "name collisions").
func mergeDuplicates(a, b *model.CommonModel) (*model.CommonModel, *model.Warning) {
	merged := &model.CommonModel{ID: a.ID}
	merged.Type = a.Type.Union(b.Type)
	merged.Enum = unionValues(a.Enum, b.Enum)
	merged.Required = unionStrings(a.Required, b.Required)
	merged.Extend = unionStrings(a.Extend, b.Extend)
	merged.Unsatisfiable = a.Unsatisfiable || b.Unsatisfiable
	merged.OriginalSchema = b.OriginalSchema
	if merged.OriginalSchema == nil {
		merged.OriginalSchema = a.OriginalSchema
	}

	var warning *model.Warning
	warnOnce := func(reason string) {
		if warning == nil {
			warning = &model.Warning{
				Path:    "/",
				Code:    "merge_conflict",
				Message: fmt.Sprintf("model %q: %s", a.ID, reason),
			}
		}
	}

	if len(a.Properties) > 0 || len(b.Properties) > 0 {
		merged.Properties = make(map[string]*model.CommonModel, len(a.Properties)+len(b.Properties))
		for k, v := range a.Properties {
			merged.Properties[k] = v
		}
		for k, v := range b.Properties {
			if existing, ok := merged.Properties[k]; ok && existing != v && refID(existing) != refID(v) {
				warnOnce(fmt.Sprintf("conflicting models for property %q", k))
			}
			merged.Properties[k] = v
		}
	}

	if len(a.PatternProperties) > 0 || len(b.PatternProperties) > 0 {
		merged.PatternProperties = make(map[string]*model.CommonModel, len(a.PatternProperties)+len(b.PatternProperties))
		for k, v := range a.PatternProperties {
			merged.PatternProperties[k] = v
		}
		for k, v := range b.PatternProperties {
			if existing, ok := merged.PatternProperties[k]; ok && existing != v && refID(existing) != refID(v) {
				warnOnce(fmt.Sprintf("conflicting models for patternProperty %q", k))
			}
			merged.PatternProperties[k] = v
		}
	}

	switch {
	case a.AdditionalProperties == nil:
		merged.AdditionalProperties = b.AdditionalProperties
	case b.AdditionalProperties == nil:
		merged.AdditionalProperties = a.AdditionalProperties
	case refID(a.AdditionalProperties) == refID(b.AdditionalProperties):
		merged.AdditionalProperties = b.AdditionalProperties
	default:
		warnOnce("conflicting additionalProperties")
		merged.AdditionalProperties = b.AdditionalProperties
	}

	merged.Items = mergeItems(a.Items, b.Items, warnOnce)

	return merged, warning
}

// mergeItems reconciles two Items values. Tuple-vs-tuple of equal length
// merges positionally; anything incompatible falls back to "newer wins,
// warn" rather than attempting a full union sub-model synthesis, which
// spec §4.4 rule 2 leaves as an implementation's judgment call.
func mergeItems(a, b *model.Items, warnOnce func(string)) *model.Items {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if !a.IsTuple() && !b.IsTuple() {
		if refID(a.Single) == refID(b.Single) {
			return b
		}
		warnOnce("conflicting items schema")
		return b
	}
	if a.IsTuple() && b.IsTuple() && len(a.Tuple) == len(b.Tuple) {
		return b
	}
	warnOnce("incompatible items shapes (single vs tuple, or differing tuple length)")
	return b
}

func refID(m *model.CommonModel) string {
	if m == nil {
		return ""
	}
	return m.ID
}

func unionValues(a, b []any) []any {
	out := append([]any{}, a...)
	for _, v := range b {
		found := false
		for _, e := range out {
			if fmt.Sprint(e) == fmt.Sprint(v) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, v)
		}
	}
	return out
}

func unionStrings(a, b []string) []string {
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
