package eval

import (
	"iter"
	"maps"
	"slices"
)

// Environment is a mutable name-to-value scope with an optional link to an
// outer scope. Lookups fail over from inner to outer; writes always land in
// the innermost scope, so an inner binding shadows rather than mutates an
// outer one. The chain only ever points toward ancestors and is shared
// freely between closures and call frames; there is no deletion, bindings
// live as long as the scope that holds them.
type Environment struct {
	store map[string]Object
	outer *Environment
}

// NewEnvironment creates a top-level scope with no parent.
func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Object)}
}

// NewEnclosedEnvironment creates a scope nested inside outer. It is used
// both for function call frames and for closure capture.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	return &Environment{store: make(map[string]Object), outer: outer}
}

// Get returns the first binding for name found walking from this scope
// outward through the parent chain.
func (e *Environment) Get(name string) (Object, bool) {
	obj, ok := e.store[name]
	if !ok && e.outer != nil {
		return e.outer.Get(name)
	}

	return obj, ok
}

// Set binds name to value in this scope only, never in a parent, and
// returns the value.
func (e *Environment) Set(name string, value Object) Object {
	e.store[name] = value

	return value
}

// All returns an iterator over every binding visible from this scope,
// innermost scope first and sorted by name within each scope. A name bound
// in an inner scope shadows the outer binding, which is not yielded.
func (e *Environment) All() iter.Seq2[string, Object] {
	return func(yield func(string, Object) bool) {
		seen := make(map[string]struct{})

		for env := e; env != nil; env = env.outer {
			for _, name := range slices.Sorted(maps.Keys(env.store)) {
				if _, ok := seen[name]; ok {
					continue
				}

				seen[name] = struct{}{}

				if !yield(name, env.store[name]) {
					return
				}
			}
		}
	}
}
