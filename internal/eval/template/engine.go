package template

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/aescanero/dago-node-pdfgen/internal/helpers"
	"github.com/aymerick/raymond"
)

var (
	anyType     = reflect.TypeOf((*interface{})(nil)).Elem()
	optionsType = reflect.TypeOf((*raymond.Options)(nil))
)

// Engine renders Handlebars templates with the document helpers
type Engine struct {
	registry *helpers.Registry
	partials map[string]string
	cache    map[string]*raymond.Template
	mu       sync.RWMutex
}

// NewEngine creates a new template engine backed by the given helper registry
func NewEngine(registry *helpers.Registry) *Engine {
	return &Engine{
		registry: registry,
		partials: make(map[string]string),
		cache:    make(map[string]*raymond.Template),
	}
}

// Render renders a template with the given data
func (e *Engine) Render(templateStr string, data interface{}) (string, error) {
	// Get or compile template
	tmpl, err := e.getTemplate(templateStr)
	if err != nil {
		return "", fmt.Errorf("failed to compile template: %w", err)
	}

	// Execute the template; helper errors surface here
	result, err := tmpl.Exec(data)
	if err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}

	return result, nil
}

// SetPartials replaces the partials available to every template and drops compiled templates
func (e *Engine) SetPartials(partials map[string]string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.partials = make(map[string]string, len(partials))
	for name, src := range partials {
		if name == mainSource {
			continue
		}
		e.partials[name] = src
	}
	e.cache = make(map[string]*raymond.Template)
}

// getTemplate gets a compiled template from cache or compiles it
func (e *Engine) getTemplate(templateStr string) (*raymond.Template, error) {
	// Check cache first (read lock)
	e.mu.RLock()
	if tmpl, ok := e.cache[templateStr]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	// Compile the template (write lock)
	e.mu.Lock()
	defer e.mu.Unlock()

	// Check again in case another goroutine compiled it
	if tmpl, ok := e.cache[templateStr]; ok {
		return tmpl, nil
	}

	tmpl, err := e.compile(templateStr)
	if err != nil {
		return nil, err
	}

	e.cache[templateStr] = tmpl

	return tmpl, nil
}

// compile parses the template and binds every helper it calls. Callers hold e.mu.
func (e *Engine) compile(templateStr string) (*raymond.Template, error) {
	sources := make(map[string]string, len(e.partials)+1)
	for name, src := range e.partials {
		sources[name] = src
	}
	sources[mainSource] = templateStr

	plan, err := planHelpers(sources, e.isHelper)
	if err != nil {
		return nil, err
	}

	tmpl, err := raymond.Parse(plan.sources[mainSource])
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	for name := range e.partials {
		tmpl.RegisterPartial(name, plan.sources[name])
	}

	bound := make(map[string]interface{}, len(plan.bindings))
	for _, b := range plan.bindings {
		bound[b.alias] = e.bind(b)
	}
	tmpl.RegisterHelpers(bound)

	return tmpl, nil
}

func (e *Engine) isHelper(name string) bool {
	_, ok := e.registry.Get(name)
	return ok
}

// bind builds a raymond helper taking exactly b.arity parameters plus options
func (e *Engine) bind(b binding) interface{} {
	helper, _ := e.registry.Get(b.name)

	in := make([]reflect.Type, b.arity+1)
	for i := 0; i < b.arity; i++ {
		in[i] = anyType
	}
	in[b.arity] = optionsType
	fnType := reflect.FuncOf(in, []reflect.Type{anyType}, false)

	return reflect.MakeFunc(fnType, func(args []reflect.Value) []reflect.Value {
		options := args[b.arity].Interface().(*raymond.Options)
		out := invoke(helper, options)
		return []reflect.Value{reflect.ValueOf(&out).Elem()}
	}).Interface()
}

// invoke runs a helper for raymond. The first raymond parameter is the helper
// context. Errors are raised as panics, which raymond returns from Exec.
func invoke(helper helpers.HelperFunc, options *raymond.Options) interface{} {
	inv := &helpers.Invocation{
		Hash:   options.Hash(),
		Lookup: options.Eval,
	}
	if params := options.Params(); len(params) > 0 {
		inv.Context = params[0]
		inv.Params = params[1:]
	}

	result, err := helper(inv)
	if err != nil {
		panic(err)
	}

	switch result.Branch {
	case helpers.BranchBody:
		return raymond.SafeString(options.Fn())
	case helpers.BranchInverse:
		return raymond.SafeString(options.Inverse())
	}
	if result.Safe {
		return raymond.SafeString(result.Text)
	}
	return result.Text
}

// ValidateTemplate validates a template and its helper calls without rendering it
func (e *Engine) ValidateTemplate(templateStr string) error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	_, err := e.compile(templateStr)
	return err
}
