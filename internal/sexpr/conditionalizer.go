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

package sexpr

// Conditionalizer replaces each free Variable occurrence in an
// expression with a Conditional built from that variable's current
// option list, iff the variable has at least one option recorded.
// Grounded directly on mantaray/symbolic_execution/conditionalizer.py.
type Conditionalizer struct {
	// Options is the context's variable -> option-list table. It is read
	// but never mutated by the conditionalizer.
	Options map[Variable][]*Option
}

// NewConditionalizer builds a Conditionalizer over the given options
// table (normally a context's live table; the conditionalizer never
// mutates it, only deep-copies from it).
func NewConditionalizer(options map[Variable][]*Option) *Conditionalizer {
	return &Conditionalizer{Options: options}
}

// Conditionalize is applied on every value read by the engine, so that
// subsequent expression construction carries the full history of
// conditional writes. Options are deep-copied (cloned, preserving their
// id) so that later mutation of the context's option table cannot alter
// an expression already built from it.
func (c *Conditionalizer) Conditionalize(e Expr) (Expr, error) {
	switch x := e.(type) {
	case Variable:
		opts, ok := c.Options[x]
		if !ok || len(opts) == 0 {
			return x, nil
		}
		cloned := make([]*Option, len(opts))
		for i, o := range opts {
			cloned[i] = o.Clone()
		}
		return NewConditional(x.SEType, cloned), nil
	default:
		return Rebuild(e, c.Conditionalize)
	}
}
