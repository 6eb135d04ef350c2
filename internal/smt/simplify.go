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

package smt

// Simplify recursively constant-folds t and applies the boolean
// identities (x && true = x, x || false = x, !!x = x, ...) a solver's
// simplify tactic would. Children are simplified first (post-order), so
// a fold that becomes available only after a child collapsed to a
// constant is still caught.
func Simplify(t Term) Term {
	switch x := t.(type) {
	case Sym, ConstBool, ConstInt, ConstReal:
		return x
	case App:
		args := make([]Term, len(x.Args))
		for i, a := range x.Args {
			args[i] = Simplify(a)
		}
		return simplifyApp(App{Op: x.Op, Args: args, S: x.S})
	default:
		return t
	}
}

func simplifyApp(a App) Term {
	switch a.Op {
	case OpNot:
		arg := a.Args[0]
		if b, ok := arg.(ConstBool); ok {
			return ConstBool(!bool(b))
		}
		if inner, ok := arg.(App); ok && inner.Op == OpNot {
			return inner.Args[0]
		}
		return a
	case OpAnd:
		l, r := a.Args[0], a.Args[1]
		if b, ok := l.(ConstBool); ok {
			if !bool(b) {
				return ConstBool(false)
			}
			return r
		}
		if b, ok := r.(ConstBool); ok {
			if !bool(b) {
				return ConstBool(false)
			}
			return l
		}
		return a
	case OpOr:
		l, r := a.Args[0], a.Args[1]
		if b, ok := l.(ConstBool); ok {
			if bool(b) {
				return ConstBool(true)
			}
			return r
		}
		if b, ok := r.(ConstBool); ok {
			if bool(b) {
				return ConstBool(true)
			}
			return l
		}
		return a
	case OpEq, OpNe, OpGt, OpGe, OpLt, OpLe:
		return simplifyCompare(a)
	case OpAdd, OpSub, OpMul, OpDiv:
		return simplifyArith(a)
	default:
		return a
	}
}

func asNumber(t Term) (float64, bool) {
	switch x := t.(type) {
	case ConstInt:
		return float64(x), true
	case ConstReal:
		return float64(x), true
	default:
		return 0, false
	}
}

func simplifyCompare(a App) Term {
	l, lok := asNumber(a.Args[0])
	r, rok := asNumber(a.Args[1])
	if lok && rok {
		return ConstBool(evalCompare(a.Op, l, r))
	}
	if lb, ok := a.Args[0].(ConstBool); ok {
		if rb, ok := a.Args[1].(ConstBool); ok {
			switch a.Op {
			case OpEq:
				return ConstBool(bool(lb) == bool(rb))
			case OpNe:
				return ConstBool(bool(lb) != bool(rb))
			}
		}
	}
	return a
}

func evalCompare(op Op, l, r float64) bool {
	switch op {
	case OpEq:
		return l == r
	case OpNe:
		return l != r
	case OpGt:
		return l > r
	case OpGe:
		return l >= r
	case OpLt:
		return l < r
	case OpLe:
		return l <= r
	default:
		return false
	}
}

func simplifyArith(a App) Term {
	li, liok := a.Args[0].(ConstInt)
	ri, riok := a.Args[1].(ConstInt)
	if liok && riok {
		if a.Op == OpDiv && ri == 0 {
			return a
		}
		return ConstInt(evalArithInt(a.Op, int64(li), int64(ri)))
	}
	lf, lfok := asNumber(a.Args[0])
	rf, rfok := asNumber(a.Args[1])
	if lfok && rfok {
		if a.Op == OpDiv && rf == 0 {
			return a
		}
		return ConstReal(evalArithFloat(a.Op, lf, rf))
	}
	return a
}

func evalArithInt(op Op, l, r int64) int64 {
	switch op {
	case OpAdd:
		return l + r
	case OpSub:
		return l - r
	case OpMul:
		return l * r
	case OpDiv:
		return l / r
	default:
		return 0
	}
}

func evalArithFloat(op Op, l, r float64) float64 {
	switch op {
	case OpAdd:
		return l + r
	case OpSub:
		return l - r
	case OpMul:
		return l * r
	case OpDiv:
		return l / r
	default:
		return 0
	}
}
