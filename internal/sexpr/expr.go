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

// Package sexpr implements the symbolic expression algebra: a closed sum
// type {Variable, Literal, Unary, Binary, Conditional} with structural
// equality, cheap structural hashing, and the visitor-based
// conditionalizer/optionalizer transforms described by the engine's
// contract.
package sexpr

import (
	"fmt"
	"hash/fnv"
	"io"
	"reflect"
	"strconv"

	"github.com/google/uuid"

	"github.com/PositiveTechnologies/mantaray/internal/errs"
	"github.com/PositiveTechnologies/mantaray/internal/setype"
)

// Expr is the sealed interface implemented by every symbolic expression
// node. Constructors never simplify; Rebuild (visitor.go) supplies the
// generic child-by-child traversal the conditionalizer uses.
type Expr interface {
	// Type returns the SEType this expression evaluates to.
	Type() setype.Type
	// String renders the expression's textual form (§4.1).
	String() string
	sealed()
}

// Variable is a symbolic read of a declared value. ContextID is the id of
// the context that created it: two variables sharing a Name from sibling
// scopes are never equal, since Variable is compared structurally on all
// three fields and is itself a comparable struct (usable directly as a
// map key in a context's option table).
type Variable struct {
	ContextID string
	Name      string
	SEType    setype.Type
}

func (Variable) sealed()                {}
func (v Variable) Type() setype.Type    { return v.SEType }
func (v Variable) String() string       { return v.Name }

// NewVariable constructs a Variable. contextID identifies the declaring
// context; callers (internal/symctx) are responsible for registering it
// in that context's refs/options tables.
func NewVariable(contextID, name string, t setype.Type) Variable {
	return Variable{ContextID: contextID, Name: name, SEType: t}
}

// Literal is a constant value coerced to its declared type at
// construction time.
type Literal struct {
	Value    interface{}
	SEType   setype.Type
	Implicit bool
}

func (Literal) sealed()             {}
func (l Literal) Type() setype.Type { return l.SEType }

func (l Literal) String() string {
	switch l.SEType {
	case setype.Void:
		return "void"
	case setype.Char:
		return fmt.Sprintf("'%c'", l.Value)
	case setype.CharArray:
		return fmt.Sprintf("%q", l.Value)
	case setype.Bool, setype.Int, setype.Float:
		return fmt.Sprintf("%v", l.Value)
	case setype.IntArray, setype.BoolArray, setype.FloatArray:
		return fmt.Sprintf("%v", l.Value)
	default:
		return fmt.Sprintf("%v", l.Value)
	}
}

// NewLiteral coerces value to t's Go representation, mirroring the
// mantaray/symbolic_execution/expressions.py's ctors_map (str/float/int/bool constructors
// keyed by SEType); an SEType outside that map is a NotImplemented
// error, same as the original raising MantarayNotImplemented(se_type).
func NewLiteral(value interface{}, t setype.Type, implicit bool) (Literal, error) {
	coerced, err := coerce(value, t)
	if err != nil {
		return Literal{}, err
	}
	return Literal{Value: coerced, SEType: t, Implicit: implicit}, nil
}

// MustLiteral is NewLiteral without the error return, for use with
// values already known to be well-typed (tests, SE/SMT round-tripping).
func MustLiteral(value interface{}, t setype.Type) Literal {
	l, err := NewLiteral(value, t, false)
	if err != nil {
		panic(err)
	}
	return l
}

func coerce(value interface{}, t setype.Type) (interface{}, error) {
	switch t {
	case setype.Bool:
		switch v := value.(type) {
		case bool:
			return v, nil
		case string:
			b, err := strconv.ParseBool(v)
			if err != nil {
				return nil, errs.Invariantf("literal %q is not a valid bool: %v", v, err)
			}
			return b, nil
		}
	case setype.Int:
		switch v := value.(type) {
		case int64:
			return v, nil
		case int:
			return int64(v), nil
		case string:
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return nil, errs.Invariantf("literal %q is not a valid int: %v", v, err)
			}
			return n, nil
		}
	case setype.Float:
		switch v := value.(type) {
		case float64:
			return v, nil
		case string:
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, errs.Invariantf("literal %q is not a valid float: %v", v, err)
			}
			return f, nil
		}
	case setype.Char:
		switch v := value.(type) {
		case byte:
			return v, nil
		case rune:
			return byte(v), nil
		case string:
			if len(v) != 1 {
				return nil, errs.Invariantf("literal %q is not a single char", v)
			}
			return v[0], nil
		}
	case setype.IntArray, setype.BoolArray, setype.CharArray, setype.FloatArray:
		if v, ok := value.([]interface{}); ok {
			return v, nil
		}
		return []interface{}{}, nil
	default:
		return nil, errs.NotImplementedf("literal type %s", t)
	}
	return nil, errs.NotImplementedf("coercing %T to %s", value, t)
}

// Unary is a unary operator application.
type Unary struct {
	Arg Expr
	Op  UnaryOp
}

func (Unary) sealed()             {}
func (u Unary) Type() setype.Type { return u.Arg.Type() }
func (u Unary) String() string    { return fmt.Sprintf("(%s%s)", u.Op, u.Arg) }

// NewUnary constructs a Unary expression.
func NewUnary(arg Expr, op UnaryOp) (Unary, error) {
	return Unary{Arg: arg, Op: op}, nil
}

// Binary is a binary operator application. Every Binary requires its two
// operands to share an SEType; a mismatch is a fatal Invariant error,
// raised eagerly at construction so that no ill-typed Binary can ever
// exist. A comparison evaluates to Bool; every other operator evaluates
// to its operands' SEType.
type Binary struct {
	Arg1, Arg2 Expr
	Op         BinOp
}

func (Binary) sealed() {}
func (b Binary) Type() setype.Type {
	switch b.Op {
	case Eq, Ne, Gt, Ge, Lt, Le:
		return setype.Bool
	}
	return b.Arg1.Type()
}
func (b Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Arg1, b.Op, b.Arg2)
}

// NewBinary constructs a Binary expression, checking that both operands
// share an SEType.
func NewBinary(arg1, arg2 Expr, op BinOp) (Binary, error) {
	if arg1.Type() != arg2.Type() {
		return Binary{}, errs.Invariantf("incompatible types: %s and %s", arg1.Type(), arg2.Type())
	}
	return Binary{Arg1: arg1, Arg2: arg2, Op: op}, nil
}

// BinOpFromArgs left-folds a variadic binary application: given
// [a,b,c] it returns ((a op b) op c); given one element it returns that
// element; zero elements is a programmer error (the caller is expected
// never to produce an empty argument list — mirrors
// BinaryOperator.create_from_args, which is likewise undefined on an
// empty sequence).
func BinOpFromArgs(op BinOp, args ...Expr) (Expr, error) {
	if len(args) == 0 {
		return nil, errs.Invariantf("BinOpFromArgs: no arguments for %s", op)
	}
	acc := args[0]
	for _, arg := range args[1:] {
		next, err := NewBinary(acc, arg, op)
		if err != nil {
			return nil, err
		}
		acc = next
	}
	return acc, nil
}

// Option is a (path condition, value) pair with its own fresh identity,
// so that two options with identical condition and value remain
// distinguishable inside a mutable option list.
type Option struct {
	ID        string
	Condition Expr
	Value     Expr
}

// NewOption creates an Option with a fresh id.
func NewOption(condition, value Expr) *Option {
	return &Option{ID: uuid.NewString(), Condition: condition, Value: value}
}

// Clone returns a new *Option with the same id, condition and value
// pointer — the id is preserved (not regenerated) so that a deep copy
// of an option list remains equal, by id, to its source, matching
// Python's copy.deepcopy semantics on Option (attributes are copied
// verbatim, including the uuid string already stored in self.id).
func (o *Option) Clone() *Option {
	return &Option{ID: o.ID, Condition: o.Condition, Value: o.Value}
}

// AdjunctCondition replaces Condition with Condition && c.
func (o *Option) AdjunctCondition(c Expr) {
	and, err := NewBinary(o.Condition, c, And)
	if err != nil {
		// Condition is always Bool-typed by construction; a mismatch here
		// is an engine bug, not a recoverable input error.
		panic(err)
	}
	o.Condition = and
}

func (o *Option) String() string {
	return fmt.Sprintf("%s -> %s", o.Condition, o.Value)
}

// Conditional inlines a variable's current set of options at a read
// site. It is produced only by conditionalization (internal/symctx); SMT
// conversion rejects it outright (§3 invariant).
type Conditional struct {
	SEType  setype.Type
	Options []*Option
}

func (Conditional) sealed()             {}
func (c Conditional) Type() setype.Type { return c.SEType }
func (c Conditional) String() string {
	s := "{"
	for i, o := range c.Options {
		if i > 0 {
			s += ", "
		}
		s += o.String()
	}
	return s + "}"
}

// NewConditional constructs a Conditional over a copy of options; the
// slice header is copied (not the underlying Option values) so later
// appends to the caller's slice do not alias this Conditional's view,
// matching tuple(options) in the original.
func NewConditional(t setype.Type, options []*Option) Conditional {
	cp := make([]*Option, len(options))
	copy(cp, options)
	return Conditional{SEType: t, Options: cp}
}

// True and False are the canonical boolean literals used throughout the
// engine (SE_TRUE / SE_FALSE in the original).
var (
	True  = MustLiteral(true, setype.Bool)
	False = MustLiteral(false, setype.Bool)
)

// SeAnd, SeOr and SeNot are the smart constructors for building path
// conditions (se_and / se_or / se_not in the original); they never fail
// because Bool && Bool / Bool || Bool / !Bool are always well-typed.
func SeAnd(a, b Expr) Expr {
	e, err := NewBinary(a, b, And)
	if err != nil {
		panic(err)
	}
	return e
}

func SeOr(a, b Expr) Expr {
	e, err := NewBinary(a, b, Or)
	if err != nil {
		panic(err)
	}
	return e
}

func SeNot(a Expr) Expr {
	e, err := NewUnary(a, Not)
	if err != nil {
		panic(err)
	}
	return e
}

// literalValuesEqual compares two coerced literal values. Array-typed
// literals carry a []interface{} (coerce's array arm), which == would
// panic on; reflect.DeepEqual handles both that case and the ordinary
// comparable scalar values uniformly.
func literalValuesEqual(a, b interface{}) bool {
	return reflect.DeepEqual(a, b)
}

// Equal implements the expression algebra's structural equality, per the
// equality-components table in §3: Variable compares (contextID, name,
// type); Literal compares (value, type); Unary and Binary compare only
// their operand(s), not their operator sign (a quirk inherited verbatim
// from the original equality_components, where BinaryOperator and
// UnaryOperator never included bop_type/op_type in their tuple);
// Conditional compares (type, options) where an Option compares by id.
func Equal(a, b Expr) bool {
	switch x := a.(type) {
	case Variable:
		y, ok := b.(Variable)
		return ok && x == y
	case Literal:
		y, ok := b.(Literal)
		return ok && x.SEType == y.SEType && literalValuesEqual(x.Value, y.Value)
	case Unary:
		y, ok := b.(Unary)
		return ok && Equal(x.Arg, y.Arg)
	case Binary:
		y, ok := b.(Binary)
		return ok && Equal(x.Arg1, y.Arg1) && Equal(x.Arg2, y.Arg2)
	case Conditional:
		y, ok := b.(Conditional)
		if !ok || x.SEType != y.SEType || len(x.Options) != len(y.Options) {
			return false
		}
		for i := range x.Options {
			if x.Options[i].ID != y.Options[i].ID {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Hash is a cheap structural hash consistent with Equal: equal
// expressions always hash equal. It is not collision-free and exists
// only to speed up equality-keyed lookups (e.g. de-duplicating SE/SMT
// symbol tables), never as a substitute for Equal.
func Hash(e Expr) uint64 {
	h := fnv.New64a()
	hashInto(h, e)
	return h.Sum64()
}

func hashInto(h io.Writer, e Expr) {
	write := func(s string) { h.Write([]byte(s)) }
	switch x := e.(type) {
	case Variable:
		write("var:")
		write(x.ContextID)
		write(":")
		write(x.Name)
		write(":")
		write(string(x.SEType))
	case Literal:
		write("lit:")
		write(string(x.SEType))
		write(":")
		write(fmt.Sprintf("%v", x.Value))
	case Unary:
		write("unary:")
		hashInto(h, x.Arg)
	case Binary:
		write("binary:")
		hashInto(h, x.Arg1)
		write(":")
		hashInto(h, x.Arg2)
	case Conditional:
		write("cond:")
		write(string(x.SEType))
		for _, o := range x.Options {
			write(":")
			write(o.ID)
		}
	default:
		write("unknown")
	}
}
