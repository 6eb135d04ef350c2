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

import (
	"github.com/PositiveTechnologies/mantaray/internal/errs"
	"github.com/PositiveTechnologies/mantaray/internal/sexpr"
	"github.com/PositiveTechnologies/mantaray/internal/setype"
)

// sortOf maps an SEType onto the sort it is represented by in the term
// language, per §6's SMT term schema: Int -> Int sort, Bool -> Bool
// sort, Float -> Real sort. Every other SEType is unsupported.
func sortOf(t setype.Type) (Sort, error) {
	switch t {
	case setype.Bool:
		return BoolSort, nil
	case setype.Int:
		return IntSort, nil
	case setype.Float:
		return RealSort, nil
	default:
		return 0, errs.NotImplementedf("SEType %s has no SMT sort", t)
	}
}

// Symbols maps a solver symbol name back to the sexpr.Variable it came
// from, so SMTToSE can rehydrate the original Variable object rather
// than fabricate a fresh one.
type Symbols map[string]sexpr.Variable

// SEToSMT converts a symbolic expression into a term, returning the
// symbol table needed to convert back. It fails (NotImplemented) on any
// Conditional node — the caller must optionalize first, per §3's
// invariant that Conditional is produced only by conditionalization and
// §6's "Conditional nodes are rejected by the SE->SMT converter".
func SEToSMT(e sexpr.Expr) (Term, Symbols, error) {
	c := &seToSMT{symbols: Symbols{}}
	t, err := c.convert(e)
	if err != nil {
		return nil, nil, err
	}
	return t, c.symbols, nil
}

type seToSMT struct {
	symbols Symbols
}

func (c *seToSMT) convert(e sexpr.Expr) (Term, error) {
	switch x := e.(type) {
	case sexpr.Variable:
		sort, err := sortOf(x.SEType)
		if err != nil {
			return nil, err
		}
		c.symbols[x.Name] = x
		return Sym{Name: x.Name, S: sort}, nil
	case sexpr.Literal:
		return c.convertLiteral(x)
	case sexpr.Conditional:
		return nil, errs.NotImplementedf("Conditional can not be converted to an SMT term; optionalize first")
	case sexpr.Unary:
		arg, err := c.convert(x.Arg)
		if err != nil {
			return nil, err
		}
		switch x.Op {
		case sexpr.Not:
			return not(arg), nil
		default:
			return nil, errs.NotImplementedf("unary operator %s has no SMT mapping", x.Op)
		}
	case sexpr.Binary:
		arg1, err := c.convert(x.Arg1)
		if err != nil {
			return nil, err
		}
		arg2, err := c.convert(x.Arg2)
		if err != nil {
			return nil, err
		}
		return c.convertBinary(arg1, arg2, x.Op)
	default:
		return nil, errs.NotImplementedf("%T has no SMT conversion", e)
	}
}

func (c *seToSMT) convertLiteral(l sexpr.Literal) (Term, error) {
	switch l.SEType {
	case setype.Bool:
		return ConstBool(l.Value.(bool)), nil
	case setype.Int:
		return ConstInt(l.Value.(int64)), nil
	case setype.Float:
		return ConstReal(l.Value.(float64)), nil
	default:
		return nil, errs.NotImplementedf("literal type %s has no SMT mapping", l.SEType)
	}
}

func (c *seToSMT) convertBinary(a, b Term, op sexpr.BinOp) (Term, error) {
	switch op {
	case sexpr.And:
		return and(a, b), nil
	case sexpr.Or:
		return or(a, b), nil
	case sexpr.Eq:
		return cmp(OpEq, a, b), nil
	case sexpr.Ne:
		return cmp(OpNe, a, b), nil
	case sexpr.Gt:
		return cmp(OpGt, a, b), nil
	case sexpr.Ge:
		return cmp(OpGe, a, b), nil
	case sexpr.Lt:
		return cmp(OpLt, a, b), nil
	case sexpr.Le:
		return cmp(OpLe, a, b), nil
	case sexpr.Add:
		return arith(OpAdd, a, b, a.Sort()), nil
	case sexpr.Sub:
		return arith(OpSub, a, b, a.Sort()), nil
	case sexpr.Mul:
		return arith(OpMul, a, b, a.Sort()), nil
	case sexpr.Div:
		return arith(OpDiv, a, b, a.Sort()), nil
	default:
		return nil, errs.NotImplementedf("binary operator %s has no SMT mapping", op)
	}
}

// SMTToSE converts a term back into a symbolic expression, rehydrating
// Sym nodes into their original sexpr.Variable via symbols.
func SMTToSE(t Term, symbols Symbols) (sexpr.Expr, error) {
	switch x := t.(type) {
	case Sym:
		v, ok := symbols[x.Name]
		if !ok {
			return nil, errs.Invariantf("symbol %s not found in symbol table", x.Name)
		}
		return v, nil
	case ConstBool:
		return sexpr.MustLiteral(bool(x), setype.Bool), nil
	case ConstInt:
		return sexpr.MustLiteral(int64(x), setype.Int), nil
	case ConstReal:
		return sexpr.MustLiteral(float64(x), setype.Float), nil
	case App:
		return appToSE(x, symbols)
	default:
		return nil, errs.NotImplementedf("%T has no SE conversion", t)
	}
}

func appToSE(a App, symbols Symbols) (sexpr.Expr, error) {
	args := make([]sexpr.Expr, len(a.Args))
	for i, arg := range a.Args {
		e, err := SMTToSE(arg, symbols)
		if err != nil {
			return nil, err
		}
		args[i] = e
	}

	if a.Op == OpNot {
		return sexpr.NewUnary(args[0], sexpr.Not)
	}

	binOpBySign := map[Op]sexpr.BinOp{
		OpAnd: sexpr.And, OpOr: sexpr.Or, OpAdd: sexpr.Add, OpSub: sexpr.Sub,
		OpMul: sexpr.Mul, OpDiv: sexpr.Div, OpEq: sexpr.Eq, OpNe: sexpr.Ne,
		OpGt: sexpr.Gt, OpGe: sexpr.Ge, OpLt: sexpr.Lt, OpLe: sexpr.Le,
	}
	op, ok := binOpBySign[a.Op]
	if !ok {
		return nil, errs.NotImplementedf("SMT operator %s has no SE mapping", a.Op)
	}
	return sexpr.NewBinary(args[0], args[1], op)
}
