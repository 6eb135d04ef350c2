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

package symctx

import "github.com/PositiveTechnologies/mantaray/internal/sexpr"

// Branch is one arm of a Conditional: its own condition is the parent
// conditional's condition and-ed with its guard (the statement's
// condition for the true arm, its negation for the false arm). Leaving
// a Branch never merges — the owning Conditional performs the merge
// once, after both arms have executed (§4.5).
type Branch struct {
	*base
}

func newBranch(outer Context, guard sexpr.Expr) *Branch {
	br := &Branch{base: newBase(outer, KindBranch)}
	br.condition = sexpr.SeAnd(br.condition, guard)
	return br
}

// Leave returns straight to the owning Conditional without merging.
func (br *Branch) Leave() Context {
	return br.outer
}

// ProcessReturn assigns to the returned variable inherited from the
// enclosing function (§4.7).
func (br *Branch) ProcessReturn(e sexpr.Expr) {
	processReturn(br.base, br, e)
}

// Conditional is built for an `if` statement with an already-
// conditionalized guard. It owns two Branch children and performs the
// 5-step merge described in §4.5 when it is left.
type Conditional struct {
	*base
	ifTrue  *Branch
	ifFalse *Branch
}

// NewConditional constructs a conditional-statement context and its two
// branch children.
func NewConditional(outer Context, guard sexpr.Expr) *Conditional {
	cc := &Conditional{base: newBase(outer, KindConditional)}
	cc.ifTrue = newBranch(cc, guard)
	cc.ifFalse = newBranch(cc, sexpr.SeNot(guard))
	return cc
}

// IfTrue returns the true-branch context, entered by the engine before
// visiting the `if` body.
func (cc *Conditional) IfTrue() *Branch { return cc.ifTrue }

// IfFalse returns the false-branch context, entered by the engine
// before visiting the `else` body (or left unvisited if there is none).
func (cc *Conditional) IfFalse() *Branch { return cc.ifFalse }

// ProcessReturn assigns to the returned variable inherited from the
// enclosing function (§4.7) — reachable only if a return statement
// appears directly in the conditional's own scope rather than inside
// one of its branches, which does not occur in the supported subset but
// is implemented for interface completeness.
func (cc *Conditional) ProcessReturn(e sexpr.Expr) {
	processReturn(cc.base, cc, e)
}

// Leave implements §4.5's 5-step merge:
//  1. both = variables updated in *both* branches.
//  2. For each v in both, strip every option inherited from this
//     conditional's own pre-branch list (matched by Option id, not
//     structural equality — mirrors `list.remove(option)` removing the
//     identical object in contexts.py) out of each branch's list, then
//     clear this conditional's own list for v.
//  3. For every variable visible here, append the true branch's options
//     for v followed by the false branch's.
//  4. Mark every variable updated in either branch as updated here.
//  5. Perform the default local merge into the outer context.
func (cc *Conditional) Leave() Context {
	uT := cc.ifTrue.updated
	uF := cc.ifFalse.updated

	both := map[sexpr.Variable]bool{}
	for v := range uT {
		if uF[v] {
			both[v] = true
		}
	}

	for v := range both {
		inherited := cc.options[v]
		cc.ifTrue.options[v] = removeByID(cc.ifTrue.options[v], inherited)
		cc.ifFalse.options[v] = removeByID(cc.ifFalse.options[v], inherited)
		cc.options[v] = nil
	}

	union := map[sexpr.Variable]bool{}
	for v := range uT {
		union[v] = true
	}
	for v := range uF {
		union[v] = true
	}

	for _, v := range cc.refs {
		merged := append([]*sexpr.Option{}, cc.options[v]...)
		merged = append(merged, cc.ifTrue.options[v]...)
		merged = append(merged, cc.ifFalse.options[v]...)
		cc.options[v] = merged
		if union[v] {
			cc.updated[v] = true
		}
	}

	return cc.base.Leave()
}

// removeByID returns opts with every option whose id matches one in
// remove stripped out; equality is by Option.ID, not structural value
// equality, since two structurally identical options created at
// different points are distinct entries in the option list.
func removeByID(opts []*sexpr.Option, remove []*sexpr.Option) []*sexpr.Option {
	if len(remove) == 0 {
		return opts
	}
	ids := make(map[string]bool, len(remove))
	for _, o := range remove {
		ids[o.ID] = true
	}
	out := opts[:0:0]
	for _, o := range opts {
		if !ids[o.ID] {
			out = append(out, o)
		}
	}
	return out
}
