package template

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/aymerick/raymond/ast"
	"github.com/aymerick/raymond/parser"
)

// ErrArityConflict is returned when a block helper is opened with different
// numbers of parameters in the same template
var ErrArityConflict = errors.New("block helper called with conflicting parameter counts")

// mainSource is the key of the template itself among its partials
const mainSource = ""

// callSite is one helper call found in a template or partial
type callSite struct {
	source string
	name   string
	arity  int
	block  bool
	pos    int
}

// binding ties a name registered on a raymond template to a helper and the
// exact number of parameters raymond will pass to it
type binding struct {
	alias string
	name  string
	arity int
}

type helperPlan struct {
	sources  map[string]string
	bindings []binding
}

// aliasName is the name a call site is renamed to when its helper is also called with another arity
func aliasName(name string, arity int) string {
	return name + "__" + strconv.Itoa(arity)
}

// planHelpers finds every call to a known helper in the template and its partials.
// raymond rejects a helper called with a parameter count that differs from its
// signature, so each helper gets one binding per arity; non-block call sites
// whose arity differs from the block arity are renamed to an alias.
func planHelpers(sources map[string]string, known func(string) bool) (*helperPlan, error) {
	keys := make([]string, 0, len(sources))
	for key := range sources {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var sites []callSite
	for _, key := range keys {
		program, err := parser.Parse(sources[key])
		if err != nil {
			if key == mainSource {
				return nil, fmt.Errorf("parse error: %w", err)
			}
			return nil, fmt.Errorf("partial %s: parse error: %w", key, err)
		}
		c := &callCollector{source: key, known: known}
		c.program(program)
		sites = append(sites, c.sites...)
	}

	byName := make(map[string][]callSite)
	var names []string
	for _, site := range sites {
		if _, ok := byName[site.name]; !ok {
			names = append(names, site.name)
		}
		byName[site.name] = append(byName[site.name], site)
	}
	sort.Strings(names)

	plan := &helperPlan{sources: make(map[string]string, len(sources))}
	for key, src := range sources {
		plan.sources[key] = src
	}

	rewrites := make(map[string][]callSite)
	for _, name := range names {
		calls := byName[name]

		blockArity := -1
		arities := make(map[int]bool)
		for _, call := range calls {
			arities[call.arity] = true
			if !call.block {
				continue
			}
			if blockArity >= 0 && blockArity != call.arity {
				return nil, fmt.Errorf("%w: %s used with %d and %d parameters", ErrArityConflict, name, blockArity, call.arity)
			}
			blockArity = call.arity
		}

		if len(arities) == 1 {
			plan.bindings = append(plan.bindings, binding{alias: name, name: name, arity: calls[0].arity})
			continue
		}

		if blockArity >= 0 {
			plan.bindings = append(plan.bindings, binding{alias: name, name: name, arity: blockArity})
		}
		aliased := make(map[int]bool)
		for _, call := range calls {
			if call.block || call.arity == blockArity {
				continue
			}
			rewrites[call.source] = append(rewrites[call.source], call)
			if !aliased[call.arity] {
				aliased[call.arity] = true
				plan.bindings = append(plan.bindings, binding{alias: aliasName(name, call.arity), name: name, arity: call.arity})
			}
		}
	}

	for key, calls := range rewrites {
		src, err := renameCalls(plan.sources[key], calls)
		if err != nil {
			return nil, err
		}
		plan.sources[key] = src
	}

	return plan, nil
}

// renameCalls replaces helper names at their recorded offsets, last one first
// so earlier offsets stay valid
func renameCalls(src string, calls []callSite) (string, error) {
	sort.Slice(calls, func(i, j int) bool { return calls[i].pos > calls[j].pos })
	for _, call := range calls {
		end := call.pos + len(call.name)
		if call.pos < 0 || end > len(src) || src[call.pos:end] != call.name {
			return "", fmt.Errorf("cannot locate helper %s at offset %d", call.name, call.pos)
		}
		src = src[:call.pos] + aliasName(call.name, call.arity) + src[end:]
	}
	return src, nil
}

// callCollector walks a parsed template collecting helper calls
type callCollector struct {
	source string
	known  func(string) bool
	sites  []callSite
}

func (c *callCollector) program(program *ast.Program) {
	if program == nil {
		return
	}
	for _, node := range program.Body {
		c.node(node)
	}
}

func (c *callCollector) node(node ast.Node) {
	switch n := node.(type) {
	case *ast.MustacheStatement:
		c.expression(n.Expression, false)
	case *ast.BlockStatement:
		c.expression(n.Expression, true)
		c.program(n.Program)
		c.program(n.Inverse)
	case *ast.PartialStatement:
		for _, param := range n.Params {
			c.node(param)
		}
		c.hash(n.Hash)
	case *ast.SubExpression:
		c.expression(n.Expression, false)
	}
}

func (c *callCollector) expression(expr *ast.Expression, block bool) {
	if expr == nil {
		return
	}

	if name := expr.HelperName(); name != "" && c.known(name) {
		site := callSite{source: c.source, name: name, arity: len(expr.Params), block: block, pos: -1}
		if path, ok := expr.Path.(*ast.PathExpression); ok {
			site.pos = path.Pos
		}
		c.sites = append(c.sites, site)
	}

	for _, param := range expr.Params {
		c.node(param)
	}
	c.hash(expr.Hash)
}

func (c *callCollector) hash(hash *ast.Hash) {
	if hash == nil {
		return
	}
	for _, pair := range hash.Pairs {
		c.node(pair.Val)
	}
}
