// Package modelgen turns a JSON Schema draft-07 document into a normalized,
// deduplicated set of CommonModel records suitable for downstream code
// rendering.
//
// The pipeline runs in four stages:
//
//   - reflection (internal/reflector) assigns stable inferred names to
//     anonymous subschemas
//   - resolution (internal/resolver) inlines $ref, breaking cycles with a
//     sentinel empty-object schema
//   - interpretation (internal/interpreter) walks the resolved schema and
//     projects every recognized keyword into model.CommonModel form
//   - simplification (internal/simplifier) merges duplicate models,
//     extracts every constrained child model (object or not) into a
//     top-level entry, and returns the final map keyed by CommonModel.ID
//
// Design policy:
//   - Only the input processor's public surface (ShouldProcess, Process,
//     Option, Result) lives in the root package; the stages live under
//     internal/ and are not part of the module's API.
//   - schema.Node is the canonical in-memory form of a JSON Schema value
//     (boolean or object; schema.Schema is the object case); model.CommonModel
//     is the normalized intermediate the pipeline produces. Both are
//     exported because a renderer built outside this module consumes them
//     directly.
//   - Errors use the Issue/Issues model also used by the sibling goskema
//     runtime-validation library, so both modules share one error
//     vocabulary.
//
// Typical usage:
//
//	doc, err := schema.Parse(data)
//	res, err := modelgen.Process(ctx, doc)
//	for id, m := range res.Models {
//	    // render m
//	}
package modelgen
