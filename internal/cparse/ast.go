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

package cparse

// Unit is a parsed translation unit: an ordered list of function
// definitions. The supported subset has no global variables and no
// preprocessor directives, so a translation unit is exactly this.
type Unit struct {
	Functions []*FuncDef
}

// Param is one (name, type spelling) entry of a function's parameter
// list. TypeName is the raw C spelling ("int", "bool[]", ...), resolved
// to an setype.Type by the driver via setype.FromCDeclString.
type Param struct {
	Name     string
	TypeName string
}

// FuncDef is one function definition: a typed return, a name, an
// ordered parameter list and a body.
type FuncDef struct {
	ReturnTypeName string
	Name           string
	Params         []Param
	Body           *BlockStmt
}

// Stmt is the sealed interface implemented by every statement node.
type Stmt interface {
	stmt()
}

// BlockStmt is a brace-delimited sequence of statements, pushing its own
// block context when interpreted.
type BlockStmt struct {
	Stmts []Stmt
}

func (*BlockStmt) stmt() {}

// DeclStmt declares a local variable, with an optional initializer; a
// nil Init means the declared type's default value is used (§3).
type DeclStmt struct {
	TypeName string
	Name     string
	Init     Expr
}

func (*DeclStmt) stmt() {}

// AssignStmt assigns the result of Value to the already-declared
// variable Name.
type AssignStmt struct {
	Name  string
	Value Expr
}

func (*AssignStmt) stmt() {}

// IfStmt is a conditional with an optional else branch; Else is nil for
// a bare if.
type IfStmt struct {
	Cond Expr
	Then *BlockStmt
	Else *BlockStmt
}

func (*IfStmt) stmt() {}

// ReturnStmt returns the result of Value; Value is nil for a bare
// `return;` in a void function.
type ReturnStmt struct {
	Value Expr
}

func (*ReturnStmt) stmt() {}

// ExprStmt evaluates Expr for its side effects alone. The parser accepts
// any expression here; a bare function call is the form with an effect.
type ExprStmt struct {
	Expr Expr
}

func (*ExprStmt) stmt() {}

// LoopStmt is the bounded for/while form (§"Supplement dropped
// features"): desugared by the driver into Unrolled copies of Body,
// each guarded by Cond, followed by an unconditional cutoff once the
// unrolling bound is exhausted. Init and Post are nil for a while loop.
type LoopStmt struct {
	Init *DeclStmt
	Cond Expr
	Post *AssignStmt
	Body *BlockStmt
}

func (*LoopStmt) stmt() {}

// Expr is the sealed interface implemented by every expression node.
type Expr interface {
	expr()
}

// Ident is a bare identifier reference: a variable read, or the callee
// name in a CallExpr.
type Ident struct {
	Name string
}

func (*Ident) expr() {}

// IntLit, FloatLit, BoolLit and CharLit are literal constants as
// spelled in source.
type IntLit struct{ Value int64 }
type FloatLit struct{ Value float64 }
type BoolLit struct{ Value bool }
type CharLit struct{ Value byte }

func (*IntLit) expr()   {}
func (*FloatLit) expr() {}
func (*BoolLit) expr()  {}
func (*CharLit) expr()  {}

// UnaryExpr applies Op ("!") to Arg.
type UnaryExpr struct {
	Op  string
	Arg Expr
}

func (*UnaryExpr) expr() {}

// BinaryExpr applies Op to Left and Right, in source order; the driver
// chooses the evaluation order it conditionalizes them in (§6).
type BinaryExpr struct {
	Op    string
	Left  Expr
	Right Expr
}

func (*BinaryExpr) expr() {}

// CallExpr is a function call naming Callee with an ordered argument
// list.
type CallExpr struct {
	Callee string
	Args   []Expr
}

func (*CallExpr) expr() {}
