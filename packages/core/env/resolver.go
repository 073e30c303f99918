package env

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/abdul-hamid-achik/neo/packages/builtin"
)

var variablePattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// WarnFunc receives a message for every placeholder that cannot be resolved.
type WarnFunc func(format string, args ...any)

type Resolver struct {
	variables map[string]string
	funcs     *builtin.Registry
	warnFunc  WarnFunc
}

type ResolverOption func(*Resolver)

// WithVariables adds named variables. Later calls override earlier ones.
func WithVariables(vars map[string]string) ResolverOption {
	return func(r *Resolver) {
		for k, v := range vars {
			r.variables[k] = v
		}
	}
}

func WithWarnFunc(fn WarnFunc) ResolverOption {
	return func(r *Resolver) {
		r.warnFunc = fn
	}
}

func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		variables: make(map[string]string),
		funcs:     builtin.NewRegistry(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) warn(format string, args ...any) {
	if r.warnFunc != nil {
		r.warnFunc(format, args...)
	}
}

// Resolve replaces every placeholder in input. Function calls are
// evaluated once per occurrence.
func (r *Resolver) Resolve(input string) string {
	if !strings.Contains(input, "{{") {
		return input
	}
	return variablePattern.ReplaceAllStringFunc(input, func(match string) string {
		expr := strings.TrimSpace(match[2 : len(match)-2])

		if name, ok := strings.CutPrefix(expr, "$"); ok {
			if val, set := os.LookupEnv(name); set {
				return val
			}
			r.warn("unresolved environment variable: $%s", name)
			return match
		}

		if strings.Contains(expr, "(") {
			if result, ok := r.funcs.Call(expr); ok {
				return fmt.Sprintf("%v", result)
			}
			r.warn("unresolved function call: %s", expr)
			return match
		}

		if val, ok := r.variables[expr]; ok {
			return val
		}
		r.warn("unresolved variable: %s", expr)
		return match
	})
}

// HasVariable reports whether name is a known variable.
func (r *Resolver) HasVariable(name string) bool {
	_, ok := r.variables[name]
	return ok
}
