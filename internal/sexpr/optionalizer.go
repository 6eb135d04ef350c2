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

// Yield is called once per enumerated (condition, concrete-value) option
// during a raw Optionalize walk. Returning false stops the walk early
// (a pull-style early-out), keeping the Cartesian product over Binary
// nodes lazy instead of materializing the whole combinatorial blow-up
// up front, per the design notes on coroutine-style generators (§9).
type Yield func(*Option) bool

// Optionalize flattens e into its raw sequence of (path-condition,
// concrete-value) options, per the enumeration rules of §4.4. It does
// not simplify or filter anything by satisfiability — that is the job
// of the SMT-backed wrapper in internal/smt, which is the only point an
// SMT solver is consulted (mirrors optionalizer.py's bare
// Optionalizer class versus its module-level optionalize() wrapper).
func Optionalize(e Expr, yield Yield) bool {
	switch x := e.(type) {
	case Literal:
		return yield(NewOption(True, x))
	case Variable:
		return yield(NewOption(True, x))
	case Unary:
		return Optionalize(x.Arg, func(argOpt *Option) bool {
			val := mustUnary(argOpt.Value, x.Op)
			return yield(NewOption(argOpt.Condition, val))
		})
	case Binary:
		cont := true
		Optionalize(x.Arg1, func(o1 *Option) bool {
			if !cont {
				return false
			}
			Optionalize(x.Arg2, func(o2 *Option) bool {
				cond := SeAnd(o1.Condition, o2.Condition)
				val := mustBinary(o1.Value, o2.Value, x.Op)
				if !yield(NewOption(cond, val)) {
					cont = false
					return false
				}
				return true
			})
			return cont
		})
		return cont
	case Conditional:
		cont := true
		for _, opt := range x.Options {
			if !cont {
				break
			}
			Optionalize(opt.Value, func(valOpt *Option) bool {
				cond := SeAnd(opt.Condition, valOpt.Condition)
				if !yield(NewOption(cond, valOpt.Value)) {
					cont = false
					return false
				}
				return true
			})
		}
		return cont
	default:
		panic("sexpr: Optionalize saw an Expr outside the closed sum type")
	}
}

// OptionalizeAll collects the full (unfiltered) option sequence. Prefer
// the lazy Optionalize(e, yield) form when only a subset of options is
// ever needed (e.g. an early feasibility check); OptionalizeAll exists
// for the common case of wanting every option and is what internal/smt's
// Optionalize wrapper uses before filtering.
func OptionalizeAll(e Expr) []*Option {
	var out []*Option
	Optionalize(e, func(o *Option) bool {
		out = append(out, o)
		return true
	})
	return out
}

func mustUnary(arg Expr, op UnaryOp) Expr {
	e, err := NewUnary(arg, op)
	if err != nil {
		panic(err)
	}
	return e
}

func mustBinary(arg1, arg2 Expr, op BinOp) Expr {
	e, err := NewBinary(arg1, arg2, op)
	if err != nil {
		panic(err)
	}
	return e
}
