package scenario

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// StepFunc implements one step template. args holds the regexp submatches in
// order.
type StepFunc func(ctx context.Context, sc *Context, args []string) error

// StepDef is a registered step template.
type StepDef struct {
	Name    string
	Pattern *regexp.Regexp
	Fn      StepFunc
}

// Registry maps step text to step functions. Patterns are tried in
// registration order and the step keyword is ignored when matching.
type Registry struct {
	defs []StepDef
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a step template. name labels the step in spans, metrics and
// logs. pattern is anchored at both ends when it is not already.
func (r *Registry) Register(name, pattern string, fn StepFunc) error {
	if !strings.HasPrefix(pattern, "^") {
		pattern = "^" + pattern
	}
	if !strings.HasSuffix(pattern, "$") {
		pattern += "$"
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("compile step %q: %w", name, err)
	}

	r.defs = append(r.defs, StepDef{Name: name, Pattern: re, Fn: fn})
	return nil
}

// MustRegister is Register for templates known at compile time.
func (r *Registry) MustRegister(name, pattern string, fn StepFunc) {
	if err := r.Register(name, pattern, fn); err != nil {
		panic(err)
	}
}

// Match returns the first template matching text.
func (r *Registry) Match(text string) (StepDef, []string, bool) {
	for _, def := range r.defs {
		if m := def.Pattern.FindStringSubmatch(text); m != nil {
			return def, m[1:], true
		}
	}
	return StepDef{}, nil, false
}

// Steps returns the registered templates in matching order.
func (r *Registry) Steps() []StepDef {
	return append([]StepDef(nil), r.defs...)
}
