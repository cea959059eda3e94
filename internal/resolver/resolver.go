// Package resolver implements the $ref resolver (spec §4.2): it replaces
// every $ref in a reflected schema tree with the referenced subtree,
// breaking cycles by substituting a sentinel empty object schema at the
// second encounter of any $ref target on the current resolution path.
//
// Grounded on goskema/kubeopenapi's CRD schema handling for the "walk a
// draft-07-shaped tree and dereference in place" style, and on
// internal/jsonpointer (adapted from goskema's ref_pathref.go) for pointer
// parsing.
package resolver

import (
	"fmt"
	"strconv"

	"github.com/reoring/modelgen/internal/jsonpointer"
	"github.com/reoring/modelgen/schema"
)

// UnresolvedRefError reports a $ref that could not be dereferenced within
// the document (spec §7 "UnresolvedReference"). The root package wraps this
// into its ProcessError vocabulary.
type UnresolvedRefError struct {
	Ref    string
	Reason string
}

func (e *UnresolvedRefError) Error() string {
	return fmt.Sprintf("resolver: cannot resolve %q: %s", e.Ref, e.Reason)
}

// Resolve walks root in place, inlining every $ref relative to root,
// including a $ref on root itself (e.g. a document whose root schema is
// nothing but `{"$ref": "#/definitions/x"}`). After Resolve returns
// successfully, no $ref field remains anywhere in the tree and
// root.Definitions is emptied (its members are inlined at their use sites;
// the container itself is kept, per spec §4.2).
func Resolve(root *schema.Schema) error {
	if root == nil {
		return nil
	}
	visiting := map[string]bool{}
	resolvedNode, err := resolveNode(schema.FromSchema(root), root, visiting)
	if err != nil {
		return err
	}
	resolved, ok := resolvedNode.AsSchema()
	if !ok {
		return fmt.Errorf("resolved root schema is a boolean, expected an object")
	}
	if resolved != root {
		// root's own $ref replaced its content wholesale; keep root's own
		// identity ($id, inferred name) rather than the target's. Copy
		// Extensions into a fresh map rather than reusing resolved's: that
		// map may be shared with other non-cyclic sites referencing the
		// same target, and must not be mutated out from under them.
		id := root.ID
		name := root.InferredName()
		*root = *resolved
		root.ID = id
		ext := make(map[string]any, len(resolved.Extensions)+1)
		for k, v := range resolved.Extensions {
			ext[k] = v
		}
		if name != "" {
			ext[schema.InferredNameKey] = name
		}
		root.Extensions = ext
	}
	root.Definitions = map[string]*schema.Node{}
	return nil
}

// resolveSchema resolves every ref-bearing position reachable from s,
// mutating s's fields in place.
func resolveSchema(s, root *schema.Schema, visiting map[string]bool) error {
	if s == nil {
		return nil
	}
	for k, n := range s.Properties {
		resolved, err := resolveNode(n, root, visiting)
		if err != nil {
			return err
		}
		s.Properties[k] = resolved
	}
	for k, n := range s.PatternProperties {
		resolved, err := resolveNode(n, root, visiting)
		if err != nil {
			return err
		}
		s.PatternProperties[k] = resolved
	}
	if s.AdditionalProperties != nil {
		resolved, err := resolveNode(s.AdditionalProperties, root, visiting)
		if err != nil {
			return err
		}
		s.AdditionalProperties = resolved
	}
	if s.PropertyNames != nil {
		resolved, err := resolveNode(s.PropertyNames, root, visiting)
		if err != nil {
			return err
		}
		s.PropertyNames = resolved
	}
	if s.Items != nil {
		if s.Items.IsTuple() {
			for i, n := range s.Items.Tuple {
				resolved, err := resolveNode(n, root, visiting)
				if err != nil {
					return err
				}
				s.Items.Tuple[i] = resolved
			}
		} else if s.Items.Single != nil {
			resolved, err := resolveNode(s.Items.Single, root, visiting)
			if err != nil {
				return err
			}
			s.Items.Single = resolved
		}
	}
	if s.AdditionalItems != nil {
		resolved, err := resolveNode(s.AdditionalItems, root, visiting)
		if err != nil {
			return err
		}
		s.AdditionalItems = resolved
	}
	if s.Contains != nil {
		resolved, err := resolveNode(s.Contains, root, visiting)
		if err != nil {
			return err
		}
		s.Contains = resolved
	}
	for i, n := range s.AllOf {
		resolved, err := resolveNode(n, root, visiting)
		if err != nil {
			return err
		}
		s.AllOf[i] = resolved
	}
	for i, n := range s.AnyOf {
		resolved, err := resolveNode(n, root, visiting)
		if err != nil {
			return err
		}
		s.AnyOf[i] = resolved
	}
	for i, n := range s.OneOf {
		resolved, err := resolveNode(n, root, visiting)
		if err != nil {
			return err
		}
		s.OneOf[i] = resolved
	}
	if s.Not != nil {
		resolved, err := resolveNode(s.Not, root, visiting)
		if err != nil {
			return err
		}
		s.Not = resolved
	}
	for k, dep := range s.Dependencies {
		if dep == nil || dep.Schema == nil {
			continue
		}
		resolved, err := resolveNode(dep.Schema, root, visiting)
		if err != nil {
			return err
		}
		s.Dependencies[k].Schema = resolved
	}
	// Definitions themselves are resolved (a definition may reference
	// another definition) even though the container is emptied afterward,
	// so any earlier-captured pointer to a definition's subtree is fully
	// dereferenced.
	for k, n := range s.Definitions {
		resolved, err := resolveNode(n, root, visiting)
		if err != nil {
			return err
		}
		s.Definitions[k] = resolved
	}
	return nil
}

// resolveNode resolves a single Node-typed position. Boolean schemas pass
// through unchanged.
func resolveNode(n *schema.Node, root *schema.Schema, visiting map[string]bool) (*schema.Node, error) {
	if n == nil || n.IsBoolean() {
		return n, nil
	}
	s, _ := n.AsSchema()
	if s.Ref == "" {
		if err := resolveSchema(s, root, visiting); err != nil {
			return nil, err
		}
		return n, nil
	}

	ref := s.Ref
	if visiting[ref] {
		return schema.FromSchema(sentinel()), nil
	}
	target, err := lookup(root, ref)
	if err != nil {
		return nil, &UnresolvedRefError{Ref: ref, Reason: err.Error()}
	}
	// Resolve target in place and share it: resolution is idempotent, so a
	// $ref reused at multiple non-cyclic sites resolving the same target
	// twice is harmless, and every site still gets its own CommonModel at
	// the interpreter stage regardless of shared schema.Schema identity.
	// Recursing through resolveNode (rather than resolveSchema directly)
	// also chases target's own $ref, if any, so a -> b -> c ref chains
	// fully inline.
	visiting[ref] = true
	resolved, err := resolveNode(schema.FromSchema(target), root, visiting)
	delete(visiting, ref)
	if err != nil {
		return nil, err
	}
	return resolved, nil
}

// sentinel is the "cyclic point" replacement (spec §4.2): a bare empty
// object schema.
func sentinel() *schema.Schema {
	return &schema.Schema{Type: schema.NewTypeSet(schema.TypeObject), Properties: map[string]*schema.Node{}}
}

// lookup dereferences a JSON Pointer $ref against root. Only in-document
// fragment references are supported (spec §4.2: "external $refs are not in
// scope").
func lookup(root *schema.Schema, ref string) (*schema.Schema, error) {
	tokens := jsonpointer.Parse(ref)
	cur := root
	for i := 0; i < len(tokens); {
		tok := tokens[i]
		var next *schema.Node
		switch tok {
		case "definitions":
			i++
			if i >= len(tokens) {
				return nil, fmt.Errorf("dangling definitions segment")
			}
			key := tokens[i]
			n, ok := cur.Definitions[key]
			if !ok {
				return nil, fmt.Errorf("no definitions/%s", key)
			}
			next = n
			i++
		case "properties":
			i++
			if i >= len(tokens) {
				return nil, fmt.Errorf("dangling properties segment")
			}
			key := tokens[i]
			n, ok := cur.Properties[key]
			if !ok {
				return nil, fmt.Errorf("no properties/%s", key)
			}
			next = n
			i++
		case "patternProperties":
			i++
			if i >= len(tokens) {
				return nil, fmt.Errorf("dangling patternProperties segment")
			}
			key := tokens[i]
			n, ok := cur.PatternProperties[key]
			if !ok {
				return nil, fmt.Errorf("no patternProperties/%s", key)
			}
			next = n
			i++
		case "items":
			i++
			if cur.Items == nil {
				return nil, fmt.Errorf("no items")
			}
			if cur.Items.IsTuple() {
				if i >= len(tokens) {
					return nil, fmt.Errorf("dangling items index")
				}
				idx, err := strconv.Atoi(tokens[i])
				if err != nil || idx < 0 || idx >= len(cur.Items.Tuple) {
					return nil, fmt.Errorf("bad items index %q", tokens[i])
				}
				next = cur.Items.Tuple[idx]
				i++
			} else {
				next = cur.Items.Single
			}
		case "additionalProperties":
			i++
			next = cur.AdditionalProperties
		case "allOf", "anyOf", "oneOf":
			list := cur.AllOf
			if tok == "anyOf" {
				list = cur.AnyOf
			} else if tok == "oneOf" {
				list = cur.OneOf
			}
			i++
			if i >= len(tokens) {
				return nil, fmt.Errorf("dangling %s index", tok)
			}
			idx, err := strconv.Atoi(tokens[i])
			if err != nil || idx < 0 || idx >= len(list) {
				return nil, fmt.Errorf("bad %s index %q", tok, tokens[i])
			}
			next = list[idx]
			i++
		case "not":
			i++
			next = cur.Not
		default:
			return nil, fmt.Errorf("unsupported pointer segment %q", tok)
		}
		if next == nil {
			return nil, fmt.Errorf("pointer segment %q resolved to nothing", tok)
		}
		if next.IsBoolean() {
			if i < len(tokens) {
				return nil, fmt.Errorf("pointer continues past a boolean schema")
			}
			return nil, fmt.Errorf("$ref target is a boolean schema, not an object schema")
		}
		s, _ := next.AsSchema()
		cur = s
	}
	return cur, nil
}
