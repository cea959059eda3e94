package modelgen

import (
	"context"
	"errors"
	"fmt"

	"github.com/reoring/modelgen/i18n"
	"github.com/reoring/modelgen/internal/interpreter"
	"github.com/reoring/modelgen/internal/reflector"
	"github.com/reoring/modelgen/internal/resolver"
	"github.com/reoring/modelgen/internal/simplifier"
	"github.com/reoring/modelgen/model"
	"github.com/reoring/modelgen/schema"
)

const defaultSeedName = "root"

// defaultSupportedDrafts recognizes the draft-07 meta-schema URI in both its
// http and https spellings, since real-world documents use either.
var defaultSupportedDrafts = map[string]bool{
	"http://json-schema.org/draft-07/schema#":  true,
	"https://json-schema.org/draft-07/schema#": true,
}

// Result is the pipeline's output (spec §6): the deduplicated model map,
// keyed by $id, plus the verbatim input and any non-fatal warnings
// collected along the way.
type Result struct {
	Models        map[string]*model.CommonModel
	OriginalInput any
	Warnings      Issues
}

type options struct {
	seedName        string
	translator      i18n.Translator
	supportedDrafts map[string]bool
	warningSink     func(Issue)
}

// Option configures a Process (or ShouldProcess) call.
type Option func(*options)

// WithSeedName overrides the root inferred-name seed (default "root",
// spec §4.1).
func WithSeedName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.seedName = name
		}
	}
}

// WithTranslator overrides the i18n.Translator used to render Issue
// messages, defaulting to the package-level translator from i18n.T.
func WithTranslator(tr i18n.Translator) Option {
	return func(o *options) { o.translator = tr }
}

// WithSupportedDraft extends the set of $schema URIs treated as draft-07
// compatible, so a caller can widen draft recognition without forking the
// pipeline (SPEC_FULL §6/§11).
func WithSupportedDraft(uri string) Option {
	return func(o *options) {
		if uri == "" {
			return
		}
		if o.supportedDrafts == nil {
			o.supportedDrafts = map[string]bool{}
		}
		o.supportedDrafts[uri] = true
	}
}

// WithWarningSink observes each non-fatal Issue as Process produces it, in
// addition to it being collected into Result.Warnings.
func WithWarningSink(sink func(Issue)) Option {
	return func(o *options) { o.warningSink = sink }
}

func newOptions(opts ...Option) *options {
	o := &options{seedName: defaultSeedName, supportedDrafts: cloneDraftSet(defaultSupportedDrafts)}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func cloneDraftSet(src map[string]bool) map[string]bool {
	out := make(map[string]bool, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// ShouldProcess reports whether input is a candidate for Process: a boolean,
// or an object (either a raw map[string]any or an already-parsed
// *schema.Schema/*schema.Node) whose $schema is absent or names a supported
// draft (spec §3, §4.5 step 1, §6). This mirrors Process's own coerceRoot +
// $schema check exactly, so a caller cannot get a different answer from
// ShouldProcess than Process would act on.
func ShouldProcess(input any, opts ...Option) bool {
	o := newOptions(opts...)
	rootNode, err := coerceRoot(input)
	if err != nil {
		return false
	}
	if rootNode.IsBoolean() {
		return true
	}
	root, _ := rootNode.AsSchema()
	return draftSupported(root, o.supportedDrafts)
}

func draftSupported(root *schema.Schema, supported map[string]bool) bool {
	v, ok := root.Extensions["$schema"]
	if !ok {
		return true
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	return supported[s]
}

// Process runs the full pipeline: reflect, resolve, interpret, simplify
// (spec §4.5).
func Process(ctx context.Context, input any, opts ...Option) (*Result, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	o := newOptions(opts...)
	tr := o.translator

	rootNode, err := coerceRoot(input)
	if err != nil {
		return nil, newTranslatedError(KindInvalidInput, "", err.Error(), err, tr)
	}

	// A bare boolean root (spec §3, §4.5 step 1) has no $schema to check and
	// nothing for the reflector/resolver to do; the interpreter alone
	// handles it (spec §4.3, "boolean schemas").
	if rootNode.IsBoolean() {
		models := interpreter.Interpret(rootNode, o.seedName)
		modelMap, warnings := simplifier.Simplify(models)
		issues := translateWarnings(warnings, tr)
		if o.warningSink != nil {
			for _, is := range issues {
				o.warningSink(is)
			}
		}
		return &Result{Models: modelMap, OriginalInput: input, Warnings: issues}, nil
	}

	root, _ := rootNode.AsSchema()

	if !draftSupported(root, o.supportedDrafts) {
		draft, _ := root.Extensions["$schema"].(string)
		return nil, newTranslatedError(KindUnsupportedSchemaDraft, "/$schema", draft, nil, tr)
	}

	reflector.Reflect(root, o.seedName)

	if err := resolver.Resolve(root); err != nil {
		var unresolved *resolver.UnresolvedRefError
		if errors.As(err, &unresolved) {
			return nil, newTranslatedError(KindUnresolvedReference, "", unresolved.Ref, err, tr)
		}
		return nil, newTranslatedError(KindInvalidInput, "", err.Error(), err, tr)
	}

	models := interpreter.Interpret(schema.FromSchema(root), o.seedName)
	modelMap, warnings := simplifier.Simplify(models)

	issues := translateWarnings(warnings, tr)
	if o.warningSink != nil {
		for _, is := range issues {
			o.warningSink(is)
		}
	}

	return &Result{Models: modelMap, OriginalInput: input, Warnings: issues}, nil
}

// coerceRoot normalizes Process's "any" input into the canonical
// *schema.Node the pipeline operates on. A pre-parsed *schema.Node or
// *schema.Schema passes through; a decoded JSON value (map[string]any,
// produced by schema.Parse/ParseYAML's callers via encoding/json or
// goccy/go-json) is converted; a bare bool is the root-is-a-boolean-schema
// case spec §3 and §4.5 step 1 both call out explicitly.
func coerceRoot(input any) (*schema.Node, error) {
	switch v := input.(type) {
	case *schema.Node:
		if v == nil {
			return nil, fmt.Errorf("input is nil")
		}
		return v, nil
	case *schema.Schema:
		return schema.FromSchema(v), nil
	case map[string]any:
		return schema.FromValue(v)
	case bool:
		if v {
			return schema.True(), nil
		}
		return schema.False(), nil
	case nil:
		return nil, fmt.Errorf("input is nil")
	default:
		return nil, fmt.Errorf("unsupported input type %T", input)
	}
}

func translateMessage(code string, tr i18n.Translator) string {
	if tr != nil {
		return tr.Message(code, nil)
	}
	return i18n.T(code, nil)
}

func newTranslatedError(kind ErrorKind, path, detail string, cause error, tr i18n.Translator) *ProcessError {
	msg := translateMessage(string(kind), tr)
	if detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, detail)
	}
	return newError(kind, path, msg, cause)
}

func translateWarnings(warnings []model.Warning, tr i18n.Translator) Issues {
	if len(warnings) == 0 {
		return nil
	}
	issues := make(Issues, 0, len(warnings))
	for _, w := range warnings {
		msg := translateMessage(w.Code, tr)
		issues = append(issues, Issue{
			Path:    orRoot(w.Path),
			Code:    w.Code,
			Message: fmt.Sprintf("%s: %s", msg, w.Message),
			Params:  w.Params,
		})
	}
	return issues
}
