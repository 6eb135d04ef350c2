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

// Package engine implements the stateful coordinator facade (§4.8): it
// owns the current context pointer and the deepness recursion/unrolling
// bound, and exposes the primitive operations a driver calls while
// walking a function body. Grounded directly on
// mantaray/symbolic_execution/engine.py.
package engine

import (
	"github.com/PositiveTechnologies/mantaray/internal/errs"
	"github.com/PositiveTechnologies/mantaray/internal/sexpr"
	"github.com/PositiveTechnologies/mantaray/internal/setype"
	"github.com/PositiveTechnologies/mantaray/internal/symctx"
)

// Descriptor and Param are re-exported so driver code need only import
// this package to describe a callable function.
type Descriptor = symctx.Descriptor
type Param = symctx.Param

// Engine is the single stateful object a driver interacts with.
type Engine struct {
	deepness  int
	current   symctx.Context
	remaining map[string]int
}

// New constructs an engine rooted at the Global context, with deepness
// as the bound on both function re-entry and loop unrolling (the driver
// desugars loops; the engine only ever sees the re-entry bound).
func New(deepness int) *Engine {
	return &Engine{
		deepness:  deepness,
		current:   symctx.NewGlobal(),
		remaining: map[string]int{},
	}
}

// CurrentContext exposes the engine's current context so the driver can
// consult IsReachable() before visiting sibling statements (§6).
func (e *Engine) CurrentContext() symctx.Context {
	return e.current
}

// Deepness exposes the configured recursion/unrolling bound so the
// driver can desugar a bounded for/while loop into this many unrolled
// iterations (§"Supplement dropped features").
func (e *Engine) Deepness() int {
	return e.deepness
}

// CreateVariable delegates to the current context.
func (e *Engine) CreateVariable(name string, t setype.Type) sexpr.Variable {
	return e.current.CreateVariable(name, t)
}

// GetVariableRef performs lexical lookup in the current context.
func (e *Engine) GetVariableRef(name string) (sexpr.Variable, error) {
	return e.current.GetVariableRef(name)
}

// CreateLiteral is a pure factory; it does not touch context state.
func (e *Engine) CreateLiteral(value interface{}, t setype.Type) (sexpr.Literal, error) {
	return sexpr.NewLiteral(value, t, false)
}

// Conditionalize runs the current context's conditionalizer over e.
func (e *Engine) Conditionalize(expr sexpr.Expr) (sexpr.Expr, error) {
	return e.current.Conditionalize(expr)
}

// ProcessAssignment conditionalizes rvalue, updates lvalue's option list
// under the current path condition, and returns the conditionalized
// value (§4.8).
func (e *Engine) ProcessAssignment(lvalue sexpr.Variable, rvalue sexpr.Expr) (sexpr.Expr, error) {
	conditionalized, err := e.current.Conditionalize(rvalue)
	if err != nil {
		return nil, err
	}
	e.current.UpdateVariable(lvalue, conditionalized)
	return conditionalized, nil
}

// ProcessReturn conditionalizes value and delegates to the current
// context's ProcessReturn; the current context must be a non-global
// local context (§4.7) — the engine only ever calls this from inside a
// function body, so a Global current context here is an engine/driver
// bug.
func (e *Engine) ProcessReturn(value sexpr.Expr) error {
	conditionalized, err := e.current.Conditionalize(value)
	if err != nil {
		return err
	}
	rp, ok := e.current.(symctx.ReturnProcessor)
	if !ok {
		return errs.Invariantf("return statement encountered outside a local context: %s", e.current.Kind())
	}
	rp.ProcessReturn(conditionalized)
	return nil
}

// ProcessBinaryOp conditionalizes its operands right-then-left (Open
// Question #3: order is left unspecified since it has no
// semantic effect; this mirrors interpreter.py's visit_BinaryOp, which
// evaluates the right operand first) and constructs the operator node
// without eager evaluation.
func (e *Engine) ProcessBinaryOp(a, b sexpr.Expr, op sexpr.BinOp) (sexpr.Expr, error) {
	rightCond, err := e.current.Conditionalize(b)
	if err != nil {
		return nil, err
	}
	leftCond, err := e.current.Conditionalize(a)
	if err != nil {
		return nil, err
	}
	return sexpr.NewBinary(leftCond, rightCond, op)
}

// ProcessUnaryOp conditionalizes its operand and constructs the
// operator node.
func (e *Engine) ProcessUnaryOp(a sexpr.Expr, op sexpr.UnaryOp) (sexpr.Expr, error) {
	conditionalized, err := e.current.Conditionalize(a)
	if err != nil {
		return nil, err
	}
	return sexpr.NewUnary(conditionalized, op)
}

// TryEnterFunction conditionalizes each argument under the caller's
// current context, then constructs and (if reachable and the deepness
// budget for this function name is not exhausted) pushes a Function
// context. A false return without error means the call site is dead
// code or the recursion bound was hit — the driver treats this as "no
// result" per §4.8's "recursion handling is permitted to be a no-op
// that returns none".
func (e *Engine) TryEnterFunction(descr Descriptor, arguments []sexpr.Expr) (bool, error) {
	if e.remainingFor(descr.Name) <= 0 {
		return false, nil
	}

	conditionalized := make([]sexpr.Expr, len(arguments))
	for i, arg := range arguments {
		c, err := e.current.Conditionalize(arg)
		if err != nil {
			return false, err
		}
		conditionalized[i] = c
	}

	fn := symctx.NewFunction(e.current, descr, conditionalized)
	if !e.tryEnterContext(fn) {
		return false, nil
	}
	e.remaining[descr.Name]--
	return true, nil
}

// LeaveFunction conditionalizes and returns the returned variable, pops
// the function context, and restores the deepness budget for this
// function name.
func (e *Engine) LeaveFunction() (sexpr.Expr, error) {
	fn, ok := e.current.(*symctx.Function)
	if !ok {
		return nil, errs.Invariantf("inconsistent context: expected function, got %s", e.current.Kind())
	}
	returned, err := e.current.Conditionalize(fn.ReturnedVariable())
	if err != nil {
		return nil, err
	}
	e.leaveCurrentContext(symctx.KindFunction)
	e.remaining[fn.Name()]++
	return returned, nil
}

// TryEnterBlock pushes a fresh block context nested in the current one,
// unless it is unreachable.
func (e *Engine) TryEnterBlock() bool {
	return e.tryEnterContext(symctx.NewBlock(e.current))
}

// LeaveBlock pops the current block context, asserting its kind.
func (e *Engine) LeaveBlock() error {
	return e.leaveCurrentContext(symctx.KindBlock)
}

// TryEnterConditional conditionalizes the guard and pushes a
// conditional-statement context (with its two branch children already
// constructed), unless it is unreachable.
func (e *Engine) TryEnterConditional(condition sexpr.Expr) (bool, error) {
	conditionalized, err := e.current.Conditionalize(condition)
	if err != nil {
		return false, err
	}
	return e.tryEnterContext(symctx.NewConditional(e.current, conditionalized)), nil
}

// LeaveConditional pops the current conditional context, triggering its
// 5-step merge (§4.5).
func (e *Engine) LeaveConditional() error {
	return e.leaveCurrentContext(symctx.KindConditional)
}

// TryEnterBranch pushes branch as current unless it is unreachable. The
// driver obtains branch from the current Conditional's IfTrue()/
// IfFalse() accessors.
func (e *Engine) TryEnterBranch(branch *symctx.Branch) bool {
	return e.tryEnterContext(branch)
}

// LeaveBranch pops the current branch context, returning control to its
// owning Conditional without merging (the Conditional performs the
// merge itself on its own Leave).
func (e *Engine) LeaveBranch() error {
	return e.leaveCurrentContext(symctx.KindBranch)
}

func (e *Engine) tryEnterContext(c symctx.Context) bool {
	if !c.IsReachable() {
		return false
	}
	e.current = c
	return true
}

// leaveCurrentContext is _leave_current_context(expected_kind): a
// mismatch is a fatal invariant violation, indicating a driver or engine
// bug rather than a malformed input program (§7).
func (e *Engine) leaveCurrentContext(expected symctx.Kind) error {
	if e.current.Kind() != expected {
		return errs.Invariantf("inconsistent context: expected %s, got %s", expected, e.current.Kind())
	}
	e.current = e.current.Leave()
	return nil
}

// remainingFor returns the re-entry budget left for name, initializing
// it to the engine's deepness on first reference.
func (e *Engine) remainingFor(name string) int {
	v, ok := e.remaining[name]
	if !ok {
		v = e.deepness
		e.remaining[name] = v
	}
	return v
}
