// Copyright 2026 The Mantaray Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package symctx implements the stack of lexical contexts the engine
// pushes and pops while walking a function body: Global, Function,
// Block, Conditional and Branch, each with its own merge semantics for
// the per-variable option lists accumulated during symbolic execution.
// Grounded directly on mantaray/symbolic_execution/contexts.py.
package symctx

import (
	"github.com/google/uuid"

	"github.com/PositiveTechnologies/mantaray/internal/errs"
	"github.com/PositiveTechnologies/mantaray/internal/sexpr"
	"github.com/PositiveTechnologies/mantaray/internal/setype"
)

// Kind identifies a context's concrete variant, used by the engine's
// leave assertions (every leave call expects a specific current kind).
type Kind int

const (
	KindGlobal Kind = iota
	KindFunction
	KindBlock
	KindConditional
	KindBranch
)

func (k Kind) String() string {
	switch k {
	case KindGlobal:
		return "global"
	case KindFunction:
		return "function"
	case KindBlock:
		return "block"
	case KindConditional:
		return "conditional"
	case KindBranch:
		return "branch"
	default:
		return "unknown"
	}
}

// Context is the shared surface every context kind implements. There is
// no inheritance in Go, so the per-kind overrides of AdjunctCondition
// and Leave are implemented by shadowing the default method promoted
// from base (see global.go, function.go, conditional.go).
type Context interface {
	ID() string
	Outer() Context
	Kind() Kind
	Condition() sexpr.Expr
	Refs() map[string]sexpr.Variable
	Options() map[sexpr.Variable][]*sexpr.Option
	Updated() map[sexpr.Variable]bool
	IsReachable() bool
	ReturnedVariable() sexpr.Variable

	CreateVariable(name string, t setype.Type) sexpr.Variable
	GetVariableRef(name string) (sexpr.Variable, error)
	UpdateVariable(v sexpr.Variable, value sexpr.Expr)
	Conditionalize(e sexpr.Expr) (sexpr.Expr, error)
	AdjunctCondition(c sexpr.Expr)
	Leave() Context
}

// ReturnProcessor is implemented by every non-global context kind; a
// return statement is always encountered inside one of these, never in
// Global (§4.7).
type ReturnProcessor interface {
	ProcessReturn(e sexpr.Expr)
}

// base implements the shared mechanics common to every context kind:
// deep-copy-on-entry from the outer context, variable creation/lookup,
// the update_variable algorithm (§4.6), conditionalization, and the
// default adjunct-condition/leave behaviour that Function, Conditional
// and Branch each shadow where their semantics differ.
type base struct {
	id               string
	outer            Context
	kind             Kind
	condition        sexpr.Expr
	refs             map[string]sexpr.Variable
	options          map[sexpr.Variable][]*sexpr.Option
	updated          map[sexpr.Variable]bool
	reachable        bool
	returnedVariable sexpr.Variable
	conditionalizer  *sexpr.Conditionalizer
}

// newBase deep-copies refs/options from outer and inherits its
// condition, reachability and returned-variable (zero Variable{} if
// outer has none, e.g. Global) — outer == nil constructs the Global
// root with the canonical defaults (§3).
func newBase(outer Context, kind Kind) *base {
	b := &base{id: uuid.NewString(), outer: outer, kind: kind}
	if outer == nil {
		b.condition = sexpr.True
		b.refs = map[string]sexpr.Variable{}
		b.options = map[sexpr.Variable][]*sexpr.Option{}
		b.reachable = true
	} else {
		b.condition = outer.Condition()
		b.refs = copyRefs(outer.Refs())
		b.options = deepCopyOptions(outer.Options())
		b.reachable = outer.IsReachable()
		b.returnedVariable = outer.ReturnedVariable()
	}
	b.updated = map[sexpr.Variable]bool{}
	b.conditionalizer = sexpr.NewConditionalizer(b.options)
	return b
}

func copyRefs(refs map[string]sexpr.Variable) map[string]sexpr.Variable {
	out := make(map[string]sexpr.Variable, len(refs))
	for k, v := range refs {
		out[k] = v
	}
	return out
}

// deepCopyOptions clones every Option (preserving its id) so that a
// child context mutating an inherited option's condition in place
// (AdjunctCondition) never affects the parent's view of it.
func deepCopyOptions(options map[sexpr.Variable][]*sexpr.Option) map[sexpr.Variable][]*sexpr.Option {
	out := make(map[sexpr.Variable][]*sexpr.Option, len(options))
	for v, opts := range options {
		cloned := make([]*sexpr.Option, len(opts))
		for i, o := range opts {
			cloned[i] = o.Clone()
		}
		out[v] = cloned
	}
	return out
}

func (b *base) ID() string                                 { return b.id }
func (b *base) Outer() Context                              { return b.outer }
func (b *base) Kind() Kind                                  { return b.kind }
func (b *base) Condition() sexpr.Expr                       { return b.condition }
func (b *base) Refs() map[string]sexpr.Variable             { return b.refs }
func (b *base) Options() map[sexpr.Variable][]*sexpr.Option { return b.options }
func (b *base) Updated() map[sexpr.Variable]bool            { return b.updated }
func (b *base) IsReachable() bool                           { return b.reachable }
func (b *base) ReturnedVariable() sexpr.Variable            { return b.returnedVariable }

// CreateVariable registers a fresh Variable under this context's id.
func (b *base) CreateVariable(name string, t setype.Type) sexpr.Variable {
	v := sexpr.NewVariable(b.id, name, t)
	b.refs[name] = v
	b.options[v] = nil
	return v
}

// GetVariableRef resolves name in this context's refs table. Lexical
// lookup beyond the current context already happened at construction
// time, since refs was deep-copied from every outer scope in turn.
func (b *base) GetVariableRef(name string) (sexpr.Variable, error) {
	v, ok := b.refs[name]
	if !ok {
		return sexpr.Variable{}, errs.Invariantf("can not find variable: `%s`", name)
	}
	return v, nil
}

// UpdateVariable implements §4.6: drop the option exactly matching the
// current path condition (it is about to be superseded), adjunct ¬P
// onto every surviving option, then append the new option under P.
func (b *base) UpdateVariable(v sexpr.Variable, value sexpr.Expr) {
	existing := b.options[v]
	notP := sexpr.SeNot(b.condition)
	kept := make([]*sexpr.Option, 0, len(existing)+1)
	for _, opt := range existing {
		if sexpr.Equal(opt.Condition, b.condition) {
			continue
		}
		opt.AdjunctCondition(notP)
		kept = append(kept, opt)
	}
	kept = append(kept, sexpr.NewOption(b.condition, value))
	b.options[v] = kept
	b.updated[v] = true
}

// Conditionalize runs the conditionalizer over this context's live
// option table (§4.3), used by the engine on every value read.
func (b *base) Conditionalize(e sexpr.Expr) (sexpr.Expr, error) {
	return b.conditionalizer.Conditionalize(e)
}

// AdjunctCondition is the default: conjoin c and propagate it to the
// outer context. Function shadows this to stop propagation at the
// callee boundary; Global shadows it to a no-op.
func (b *base) AdjunctCondition(c sexpr.Expr) {
	b.condition = sexpr.SeAnd(b.condition, c)
	if b.outer != nil {
		b.outer.AdjunctCondition(c)
	}
}

// Leave is the default local merge (§4.5): copy this context's option
// list back into the outer context for every outer-visible variable,
// propagate the updated set, and return the outer context. Conditional
// and Branch shadow this with their own merge/no-merge semantics.
func (b *base) Leave() Context {
	if b.outer == nil {
		panic(errs.Invariantf("context %s has no outer context to leave into", b.id))
	}
	outerOptions := b.outer.Options()
	outerUpdated := b.outer.Updated()
	for _, variable := range b.outer.Refs() {
		outerOptions[variable] = b.options[variable]
		if b.updated[variable] {
			outerUpdated[variable] = true
		}
	}
	return b.outer
}

// processReturn implements §4.7's process_return shared by every local
// context kind: self is the concrete wrapping context so that
// AdjunctCondition dispatches to its (possibly shadowed) override.
func processReturn(b *base, self Context, e sexpr.Expr) {
	notP := sexpr.SeNot(b.condition)
	b.UpdateVariable(b.returnedVariable, e)
	self.AdjunctCondition(notP)
	b.reachable = false
}
