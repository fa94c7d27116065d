package helpers

import (
	"context"
	"fmt"
	"sort"

	"github.com/aescanero/dago-node-pdfgen/internal/eval/cel"
)

// Branch selects which continuation a block helper asks the engine to render
type Branch int

const (
	// BranchNone means the helper produced text
	BranchNone Branch = iota

	// BranchBody renders the block body
	BranchBody

	// BranchInverse renders the {{else}} part of the block
	BranchInverse
)

// Result is the outcome of a single helper call
type Result struct {
	Text   string
	Safe   bool
	Branch Branch
}

// Invocation carries the arguments of a single helper call
type Invocation struct {
	Context interface{}
	Params  []interface{}
	Hash    map[string]interface{}

	// Lookup resolves a field on a value the way the engine resolves paths.
	// A map/struct lookup is used when nil.
	Lookup func(ctx interface{}, field string) interface{}
}

// Param returns the positional parameter at index i, or nil
func (inv *Invocation) Param(i int) interface{} {
	if i < 0 || i >= len(inv.Params) {
		return nil
	}
	return inv.Params[i]
}

// HashOr returns the named option, or def when it is not set
func (inv *Invocation) HashOr(name string, def interface{}) interface{} {
	if v, ok := inv.Hash[name]; ok && v != nil {
		return v
	}
	return def
}

func (inv *Invocation) lookup(ctx interface{}, field string) interface{} {
	if inv.Lookup != nil {
		return inv.Lookup(ctx, field)
	}
	return defaultLookup(ctx, field)
}

// HelperFunc is the engine-independent signature of every helper
type HelperFunc func(inv *Invocation) (Result, error)

// Evaluator evaluates boolean expressions over named variables
type Evaluator interface {
	Evaluate(ctx context.Context, expression string, vars map[string]interface{}) (interface{}, error)
}

// Assets holds the pre-loaded images and resources served by the image and resource helpers
type Assets struct {
	// Images maps a file name to a data URI
	Images map[string]string

	// Resources maps a file name to its raw content
	Resources map[string][]byte
}

// Option configures a Registry
type Option func(*Registry)

// WithEvaluator replaces the CEL evaluator used by gt and lt
func WithEvaluator(evaluator Evaluator) Option {
	return func(r *Registry) {
		r.evaluator = evaluator
	}
}

// Registry is the immutable set of named helpers
type Registry struct {
	helpers   map[string]HelperFunc
	images    map[string]string
	resources map[string][]byte
	evaluator Evaluator
}

// NewRegistry creates a registry with every built-in helper.
// The asset maps are copied so later changes by the caller are not observed.
func NewRegistry(assets Assets, opts ...Option) *Registry {
	r := &Registry{
		images:    make(map[string]string, len(assets.Images)),
		resources: make(map[string][]byte, len(assets.Resources)),
	}
	for k, v := range assets.Images {
		r.images[k] = v
	}
	for k, v := range assets.Resources {
		r.resources[k] = append([]byte(nil), v...)
	}

	for _, opt := range opts {
		opt(r)
	}
	if r.evaluator == nil {
		r.evaluator = cel.NewEvaluator(lhsVar, rhsVar)
	}

	r.helpers = map[string]HelperFunc{
		// dates
		"iso_to_nor_date":     r.isoToNorDate,
		"iso_to_nor_datetime": r.isoToNorDateTime,
		"iso_to_date":         r.isoToDate,
		"iso_to_long_date":    r.isoToLongDate,
		"duration":            r.duration,
		"json_to_period":      r.jsonToPeriod,

		// numbers
		"currency_no": r.currencyNo,
		"formatComma": r.formatComma,
		"inc":         r.inc,

		// text
		"capitalize":       r.capitalize,
		"capitalize_names": r.capitalizeNames,
		"breaklines":       r.breaklines,
		"insert_at":        r.insertAt,

		// predicates
		"eq":             r.eq,
		"not_eq":         r.notEq,
		"gt":             r.gt,
		"lt":             r.lt,
		"any":            r.anyTruthy,
		"is_defined":     r.isDefined,
		"contains_field": r.containsField,
		"contains_all":   r.containsAll,

		// lookups
		"image":    r.image,
		"resource": r.resource,
		"safe":     r.safe,
	}

	return r
}

// Names returns the registered helper names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.helpers))
	for name := range r.helpers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the helper registered under name
func (r *Registry) Get(name string) (HelperFunc, bool) {
	h, ok := r.helpers[name]
	return h, ok
}

// Invoke calls the helper registered under name
func (r *Registry) Invoke(name string, inv *Invocation) (Result, error) {
	h, ok := r.helpers[name]
	if !ok {
		return Result{}, fmt.Errorf("unknown helper: %s", name)
	}
	if inv == nil {
		inv = &Invocation{}
	}
	return h(inv)
}

func text(s string) Result {
	return Result{Text: s}
}

func safeText(s string) Result {
	return Result{Text: s, Safe: true}
}

func branch(cond bool) Result {
	if cond {
		return Result{Branch: BranchBody}
	}
	return Result{Branch: BranchInverse}
}
