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

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/PositiveTechnologies/mantaray/internal/sexpr"
	"github.com/PositiveTechnologies/mantaray/internal/setype"
)

// Param is one ordered (name, type) entry of a function's parameter
// list, as supplied by the driver's call-site descriptor (§6).
type Param struct {
	Name string
	Type setype.Type
}

// Descriptor carries what the engine needs to enter a function call:
// its name (for the synthesized returned-variable name), return type,
// and ordered parameter list. The driver owns the richer FunctionDescriptor
// (body node, callees); this is the slice of it the context layer needs.
type Descriptor struct {
	Name       string
	ReturnType setype.Type
	Parameters []Param
}

// Function is entered on a call. It creates a fresh returned variable,
// declares each parameter, and records each argument as the parameter's
// initial option under the caller's current path condition (§4.5).
type Function struct {
	*base
	name string
}

// NewFunction constructs a function context. arguments must already be
// conditionalized by the caller (engine.TryEnterFunction); it zips them
// against descr.Parameters, truncating to the shorter of the two exactly
// as Python's zip() does.
func NewFunction(outer Context, descr Descriptor, arguments []sexpr.Expr) *Function {
	b := newBase(outer, KindFunction)
	f := &Function{base: b, name: descr.Name}

	f.returnedVariable = f.CreateVariable(fmt.Sprintf("__%s_ret_%s", descr.Name, uuid.NewString()), descr.ReturnType)

	params := make([]sexpr.Variable, len(descr.Parameters))
	for i, p := range descr.Parameters {
		params[i] = f.CreateVariable(p.Name, p.Type)
	}

	n := len(params)
	if len(arguments) < n {
		n = len(arguments)
	}
	for i := 0; i < n; i++ {
		f.UpdateVariable(params[i], arguments[i])
	}

	return f
}

// AdjunctCondition shadows the default: path constraints accumulated
// inside the callee must never leak into the caller's condition (§4.5).
func (f *Function) AdjunctCondition(c sexpr.Expr) {
	f.condition = sexpr.SeAnd(f.condition, c)
}

// ProcessReturn assigns to the returned variable and suppresses further
// statements in the same block (§4.7).
func (f *Function) ProcessReturn(e sexpr.Expr) {
	processReturn(f.base, f, e)
}

// Name returns the called function's name, used by the engine's
// deepness bookkeeping to key the per-function re-entry counter.
func (f *Function) Name() string { return f.name }
