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

const epsilon = 1e-9

// CheckSat decides whether t is satisfiable. It simplifies, rewrites to
// negation-normal form, expands to disjunctive normal form, and accepts
// if any one conjunctive clause is satisfiable by a simple boolean +
// single-variable-linear-interval decision procedure. Atoms it cannot
// interpret (nonlinear terms, comparisons between two variables) are
// treated as possibly true — this under-approximates infeasibility
// detection but never falsely reports a feasible path as infeasible,
// which is the safe direction for the optionalizer's pruning use (§4.4:
// pruning is a best-effort optimization, not a soundness requirement the
// §6 demands be complete).
func CheckSat(t Term) bool {
	simplified := Simplify(t)
	if b, ok := simplified.(ConstBool); ok {
		return bool(b)
	}
	for _, clause := range toDNF(nnf(simplified, false)) {
		if clauseSat(clause) {
			return true
		}
	}
	return false
}

// Literal is a polarity-tagged atom produced by toDNF.
type Literal struct {
	Negated bool
	Atom    Term
}

func nnf(t Term, neg bool) Term {
	switch x := t.(type) {
	case ConstBool:
		v := bool(x)
		if neg {
			v = !v
		}
		return ConstBool(v)
	case Sym:
		if neg {
			return App{Op: OpNot, Args: []Term{x}, S: BoolSort}
		}
		return x
	case App:
		switch x.Op {
		case OpNot:
			return nnf(x.Args[0], !neg)
		case OpAnd:
			if !neg {
				return and(nnf(x.Args[0], false), nnf(x.Args[1], false))
			}
			return or(nnf(x.Args[0], true), nnf(x.Args[1], true))
		case OpOr:
			if !neg {
				return or(nnf(x.Args[0], false), nnf(x.Args[1], false))
			}
			return and(nnf(x.Args[0], true), nnf(x.Args[1], true))
		case OpEq, OpNe, OpGt, OpGe, OpLt, OpLe:
			if !neg {
				return x
			}
			return negateCompare(x)
		default:
			if neg {
				return App{Op: OpNot, Args: []Term{x}, S: BoolSort}
			}
			return x
		}
	default:
		return t
	}
}

func negateCompare(a App) App {
	mirror := map[Op]Op{OpEq: OpNe, OpNe: OpEq, OpGt: OpLe, OpLe: OpGt, OpGe: OpLt, OpLt: OpGe}
	return App{Op: mirror[a.Op], Args: a.Args, S: a.S}
}

func toDNF(t Term) [][]Literal {
	switch x := t.(type) {
	case ConstBool:
		if bool(x) {
			return [][]Literal{{}}
		}
		return [][]Literal{}
	case App:
		switch x.Op {
		case OpAnd:
			left := toDNF(x.Args[0])
			right := toDNF(x.Args[1])
			var out [][]Literal
			for _, lc := range left {
				for _, rc := range right {
					combo := make([]Literal, 0, len(lc)+len(rc))
					combo = append(combo, lc...)
					combo = append(combo, rc...)
					out = append(out, combo)
				}
			}
			return out
		case OpOr:
			return append(toDNF(x.Args[0]), toDNF(x.Args[1])...)
		case OpNot:
			return [][]Literal{{{Negated: true, Atom: x.Args[0]}}}
		default:
			return [][]Literal{{{Negated: false, Atom: x}}}
		}
	default:
		return [][]Literal{{{Negated: false, Atom: t}}}
	}
}

type varBound struct {
	hasLo, hasHi bool
	lo, hi       float64
	excluded     []float64
	isInt        bool
}

func (b *varBound) tightenLo(v float64) {
	if !b.hasLo || v > b.lo {
		b.lo, b.hasLo = v, true
	}
}

func (b *varBound) tightenHi(v float64) {
	if !b.hasHi || v < b.hi {
		b.hi, b.hasHi = v, true
	}
}

func (b *varBound) empty() bool {
	if b.hasLo && b.hasHi && b.lo > b.hi+epsilon {
		return true
	}
	if b.hasLo && b.hasHi && sameValue(b.lo, b.hi) {
		for _, e := range b.excluded {
			if sameValue(e, b.lo) {
				return true
			}
		}
	}
	return false
}

func sameValue(a, b float64) bool {
	d := a - b
	return d > -epsilon && d < epsilon
}

// clauseSat checks a single DNF conjunction for satisfiability: boolean
// symbols must not be forced both true and false, single-variable
// linear (in)equalities must yield a non-empty bound, and any pair of
// literals over the exact same unrecognized atom must not disagree (nor
// may one comparison appear beside its negation over the same operands,
// the form nnf gives a negated comparison).
func clauseSat(clause []Literal) bool {
	boolVal := map[string]bool{}
	bounds := map[string]*varBound{}
	var general []Literal

	for _, lit := range clause {
		switch atom := lit.Atom.(type) {
		case ConstBool:
			effective := bool(atom) != lit.Negated
			if !effective {
				return false
			}
		case Sym:
			want := !lit.Negated
			if prev, ok := boolVal[atom.Name]; ok {
				if prev != want {
					return false
				}
			} else {
				boolVal[atom.Name] = want
			}
		case App:
			if name, isInt, op, constVal, ok := asVarConstCompare(atom); ok {
				op = effectiveOp(op, lit.Negated)
				b, ok2 := bounds[name]
				if !ok2 {
					b = &varBound{isInt: isInt}
					bounds[name] = b
				}
				applyBound(b, op, constVal)
				if b.empty() {
					return false
				}
			} else {
				general = append(general, lit)
			}
		default:
			general = append(general, lit)
		}
	}

	for i := range general {
		for j := i + 1; j < len(general); j++ {
			if termEqual(general[i].Atom, general[j].Atom) && general[i].Negated != general[j].Negated {
				return false
			}
			ai, aok := general[i].Atom.(App)
			aj, bok := general[j].Atom.(App)
			if aok && bok && isCompareOp(ai.Op) && general[i].Negated == general[j].Negated &&
				negateCompare(ai).Op == aj.Op && termEqual(App{Op: aj.Op, Args: ai.Args}, aj) {
				return false
			}
		}
	}
	return true
}

// effectiveOp folds a literal's negation into the comparison operator so
// applyBound only ever sees a positive comparison.
func effectiveOp(op Op, negated bool) Op {
	if !negated {
		return op
	}
	return negateCompare(App{Op: op}).Op
}

func applyBound(b *varBound, op Op, c float64) {
	switch op {
	case OpEq:
		b.tightenLo(c)
		b.tightenHi(c)
	case OpNe:
		b.excluded = append(b.excluded, c)
	case OpGt:
		if b.isInt {
			b.tightenLo(c + 1)
		} else {
			b.tightenLo(c + epsilon)
		}
	case OpGe:
		b.tightenLo(c)
	case OpLt:
		if b.isInt {
			b.tightenHi(c - 1)
		} else {
			b.tightenHi(c - epsilon)
		}
	case OpLe:
		b.tightenHi(c)
	}
}

// asVarConstCompare recognizes a comparison between a Sym and a constant
// in either operand order, returning the operator oriented as
// var OP const.
func asVarConstCompare(a App) (name string, isInt bool, op Op, constVal float64, ok bool) {
	if len(a.Args) != 2 {
		return "", false, "", 0, false
	}
	if !isCompareOp(a.Op) {
		return "", false, "", 0, false
	}
	if s, ok1 := a.Args[0].(Sym); ok1 {
		if c, ok2 := asNumber(a.Args[1]); ok2 {
			return s.Name, s.S == IntSort, a.Op, c, true
		}
	}
	if s, ok1 := a.Args[1].(Sym); ok1 {
		if c, ok2 := asNumber(a.Args[0]); ok2 {
			mirror := map[Op]Op{OpEq: OpEq, OpNe: OpNe, OpGt: OpLt, OpLt: OpGt, OpGe: OpLe, OpLe: OpGe}
			return s.Name, s.S == IntSort, mirror[a.Op], c, true
		}
	}
	return "", false, "", 0, false
}

func isCompareOp(op Op) bool {
	switch op {
	case OpEq, OpNe, OpGt, OpGe, OpLt, OpLe:
		return true
	default:
		return false
	}
}

func termEqual(a, b Term) bool {
	switch x := a.(type) {
	case Sym:
		y, ok := b.(Sym)
		return ok && x == y
	case ConstBool:
		y, ok := b.(ConstBool)
		return ok && x == y
	case ConstInt:
		y, ok := b.(ConstInt)
		return ok && x == y
	case ConstReal:
		y, ok := b.(ConstReal)
		return ok && x == y
	case App:
		y, ok := b.(App)
		if !ok || x.Op != y.Op || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !termEqual(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
