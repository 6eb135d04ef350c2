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

// Global is the singleton root context: true condition, empty refs and
// options, always reachable, never left.
type Global struct {
	*base
}

// NewGlobal constructs the root context.
func NewGlobal() *Global {
	return &Global{base: newBase(nil, KindGlobal)}
}

// AdjunctCondition is a no-op on Global — there is no outer context to
// propagate to and Global's own condition is always true.
func (g *Global) AdjunctCondition(sexpr.Expr) {}

// Leave panics: the engine's _leave_current_context-equivalent asserts
// an expected kind before ever calling Leave, and Global is never the
// expected kind for any leave_* operation.
func (g *Global) Leave() Context {
	panic("symctx: global context can not be left")
}
