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

// RebuildFn is applied to each child expression during a structural
// rebuild; Rebuild calls it once per child and reconstructs a node of
// the same kind from the results.
type RebuildFn func(Expr) (Expr, error)

// Rebuild is the default traversal action over the SE tree: visit each
// child with fn, then reconstruct. mantaray/symbolic_execution/visitor.py
// expresses this as a base class with one overridable method per node
// kind (SEVisitor.visit_*); Go has no class hierarchy to hang that on,
// so every pass in this module instead performs its own closed type
// switch over Expr. The conditionalizer calls Rebuild for the cases it
// does not change itself; the optionalizer and the SE/SMT converters
// handle every case in their own switch and do not call Rebuild.
//
// A concrete node kind with no case here is an unsupported variant:
// Rebuild itself only ever sees the five kinds in the Expr sum type, so
// reaching the default case means a new Expr implementation was added
// without updating this switch; Rebuild panics rather than returning a
// NotImplemented error.
func Rebuild(e Expr, fn RebuildFn) (Expr, error) {
	switch x := e.(type) {
	case Variable:
		return x, nil
	case Literal:
		return x, nil
	case Unary:
		arg, err := fn(x.Arg)
		if err != nil {
			return nil, err
		}
		return NewUnary(arg, x.Op)
	case Binary:
		arg1, err := fn(x.Arg1)
		if err != nil {
			return nil, err
		}
		arg2, err := fn(x.Arg2)
		if err != nil {
			return nil, err
		}
		return NewBinary(arg1, arg2, x.Op)
	case Conditional:
		options := make([]*Option, len(x.Options))
		for i, o := range x.Options {
			val, err := fn(o.Value)
			if err != nil {
				return nil, err
			}
			options[i] = &Option{ID: o.ID, Condition: o.Condition, Value: val}
		}
		return Conditional{SEType: x.SEType, Options: options}, nil
	default:
		panic("sexpr: Rebuild saw an Expr outside the closed sum type")
	}
}
