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

package driver

import (
	"fmt"

	"github.com/golang/glog"
	"github.com/hashicorp/go-multierror"

	"github.com/PositiveTechnologies/mantaray/internal/cparse"
	"github.com/PositiveTechnologies/mantaray/internal/engine"
	"github.com/PositiveTechnologies/mantaray/internal/errs"
	"github.com/PositiveTechnologies/mantaray/internal/sexpr"
	"github.com/PositiveTechnologies/mantaray/internal/setype"
	"github.com/PositiveTechnologies/mantaray/internal/smt"
	"github.com/PositiveTechnologies/mantaray/internal/symctx"
)

var binOps = map[string]sexpr.BinOp{
	"&&": sexpr.And, "||": sexpr.Or,
	"+": sexpr.Add, "-": sexpr.Sub, "*": sexpr.Mul, "/": sexpr.Div,
	"==": sexpr.Eq, "!=": sexpr.Ne,
	">": sexpr.Gt, ">=": sexpr.Ge, "<": sexpr.Lt, "<=": sexpr.Le,
}

// Driver walks a translation unit's entry points, calling engine
// primitives in the order mandated by §6 and turning unsupported AST
// nodes into collected warnings instead of aborting the whole run.
type Driver struct {
	eng       *engine.Engine
	functions map[string]*FunctionDescriptor
	warnings  *multierror.Error
}

// New constructs a Driver bounding recursion and loop unrolling at
// deepness.
func New(deepness int, functions map[string]*FunctionDescriptor) *Driver {
	return &Driver{eng: engine.New(deepness), functions: functions}
}

// RunEntryPoint constructs the synthetic zero-argument call for name
// (§6) and interprets its body, logging each returned option the way
// ast_interpretation/interpreter.py's visit_FuncCall does inline.
func (d *Driver) RunEntryPoint(name string) error {
	descr, ok := d.functions[name]
	if !ok {
		return errs.Invariantf("unknown entry point %s", name)
	}

	glog.Infof("entering entry point %s", name)
	entered, err := d.eng.TryEnterFunction(descr.Descriptor, nil)
	if err != nil {
		return err
	}
	if !entered {
		glog.Infof("entry point %s unreachable or recursion-bound exhausted", name)
		return nil
	}

	if err := d.visitBlock(descr.Body); err != nil {
		return err
	}

	returned, err := d.eng.LeaveFunction()
	if err != nil {
		return err
	}

	opts, err := smt.Optionalize(returned)
	if err != nil {
		return err
	}
	optsStr := ""
	for _, o := range opts {
		optsStr += fmt.Sprintf("%s; ", o)
	}
	glog.Infof("entry point %s returned options: %s", name, optsStr)
	return nil
}

// Warnings returns every UnsupportedAST warning collected across the
// run so far, or nil if none were recorded.
func (d *Driver) Warnings() error {
	return d.warnings.ErrorOrNil()
}

func (d *Driver) warn(format string, args ...interface{}) {
	w := errs.UnsupportedASTf(format, args...)
	glog.Warningf("unsupported AST node: %v", w)
	d.warnings = multierror.Append(d.warnings, w)
}

// visitBlock enters a fresh block context and interprets each statement
// in turn, guarding every sibling visit by the current context's
// reachability exactly as interpreter.py's visit_Compound does.
func (d *Driver) visitBlock(b *cparse.BlockStmt) error {
	if !d.eng.TryEnterBlock() {
		return nil
	}
	for _, s := range b.Stmts {
		if !d.eng.CurrentContext().IsReachable() {
			break
		}
		if err := d.visitStmt(s); err != nil {
			return err
		}
	}
	return d.eng.LeaveBlock()
}

func (d *Driver) visitStmt(s cparse.Stmt) error {
	switch st := s.(type) {
	case *cparse.DeclStmt:
		return d.visitDecl(st)
	case *cparse.AssignStmt:
		return d.visitAssign(st)
	case *cparse.IfStmt:
		return d.visitIf(st)
	case *cparse.ReturnStmt:
		return d.visitReturn(st)
	case *cparse.ExprStmt:
		_, err := d.visitExpr(st.Expr)
		return err
	case *cparse.LoopStmt:
		return d.visitLoop(st)
	case *cparse.BlockStmt:
		return d.visitBlock(st)
	default:
		d.warn("statement node %T", s)
		return nil
	}
}

func (d *Driver) visitDecl(st *cparse.DeclStmt) error {
	t, err := setype.FromCDeclString(st.TypeName)
	if err != nil {
		return err
	}
	v := d.eng.CreateVariable(st.Name, t)
	if st.Init == nil {
		lit, err := d.eng.CreateLiteral(t.DefaultValue(), t)
		if err != nil {
			return err
		}
		_, err = d.eng.ProcessAssignment(v, lit)
		return err
	}
	value, err := d.visitExpr(st.Init)
	if err != nil {
		return err
	}
	_, err = d.eng.ProcessAssignment(v, value)
	return err
}

func (d *Driver) visitAssign(st *cparse.AssignStmt) error {
	v, err := d.eng.GetVariableRef(st.Name)
	if err != nil {
		return err
	}
	value, err := d.visitExpr(st.Value)
	if err != nil {
		return err
	}
	_, err = d.eng.ProcessAssignment(v, value)
	return err
}

func (d *Driver) visitIf(st *cparse.IfStmt) error {
	cond, err := d.visitExpr(st.Cond)
	if err != nil {
		return err
	}
	entered, err := d.eng.TryEnterConditional(cond)
	if err != nil {
		return err
	}
	if !entered {
		return nil
	}
	conditional := d.eng.CurrentContext().(*symctx.Conditional)

	if d.eng.TryEnterBranch(conditional.IfTrue()) {
		if err := d.visitBlock(st.Then); err != nil {
			return err
		}
		if err := d.eng.LeaveBranch(); err != nil {
			return err
		}
	}
	if st.Else != nil && d.eng.TryEnterBranch(conditional.IfFalse()) {
		if err := d.visitBlock(st.Else); err != nil {
			return err
		}
		if err := d.eng.LeaveBranch(); err != nil {
			return err
		}
	}
	return d.eng.LeaveConditional()
}

func (d *Driver) visitReturn(st *cparse.ReturnStmt) error {
	if st.Value == nil {
		return d.eng.ProcessReturn(sexpr.True)
	}
	value, err := d.visitExpr(st.Value)
	if err != nil {
		return err
	}
	return d.eng.ProcessReturn(value)
}

// visitLoop desugars the bounded for/while form by unrolling its body
// against a fresh conditional each iteration, up to the engine's
// deepness bound; the remaining (unbounded) iterations are an
// unconditional cutoff, per §"Supplement dropped features".
func (d *Driver) visitLoop(st *cparse.LoopStmt) error {
	if st.Init != nil {
		if err := d.visitDecl(st.Init); err != nil {
			return err
		}
	}

	for i := 0; i < d.eng.Deepness(); i++ {
		if !d.eng.CurrentContext().IsReachable() {
			break
		}
		cond, err := d.visitExpr(st.Cond)
		if err != nil {
			return err
		}
		entered, err := d.eng.TryEnterConditional(cond)
		if err != nil {
			return err
		}
		if !entered {
			break
		}
		conditional := d.eng.CurrentContext().(*symctx.Conditional)

		if d.eng.TryEnterBranch(conditional.IfTrue()) {
			if err := d.visitBlock(st.Body); err != nil {
				return err
			}
			if st.Post != nil {
				if err := d.visitAssign(st.Post); err != nil {
					return err
				}
			}
			if err := d.eng.LeaveBranch(); err != nil {
				return err
			}
		}
		if err := d.eng.LeaveConditional(); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) visitExpr(e cparse.Expr) (sexpr.Expr, error) {
	switch x := e.(type) {
	case *cparse.Ident:
		return d.eng.GetVariableRef(x.Name)
	case *cparse.IntLit:
		return d.eng.CreateLiteral(x.Value, setype.Int)
	case *cparse.FloatLit:
		return d.eng.CreateLiteral(x.Value, setype.Float)
	case *cparse.BoolLit:
		return d.eng.CreateLiteral(x.Value, setype.Bool)
	case *cparse.CharLit:
		return d.eng.CreateLiteral(x.Value, setype.Char)
	case *cparse.UnaryExpr:
		arg, err := d.visitExpr(x.Arg)
		if err != nil {
			return nil, err
		}
		return d.eng.ProcessUnaryOp(arg, sexpr.Not)
	case *cparse.BinaryExpr:
		op, ok := binOps[x.Op]
		if !ok {
			d.warn("binary operator %q", x.Op)
			return sexpr.True, nil
		}
		left, err := d.visitExpr(x.Left)
		if err != nil {
			return nil, err
		}
		right, err := d.visitExpr(x.Right)
		if err != nil {
			return nil, err
		}
		return d.eng.ProcessBinaryOp(left, right, op)
	case *cparse.CallExpr:
		return d.visitCall(x)
	default:
		d.warn("expression node %T", e)
		return sexpr.True, nil
	}
}

// visitCall enters callee, interprets its body, and returns its
// conditionalized result. An unknown callee silently returns no value
// (§6: visit_FuncCall no-ops on a callee absent from the functions map);
// this models the ignored result as the canonical True literal, since
// nothing in the supported grammar can reference an undefined callee's
// result other than discarding it.
func (d *Driver) visitCall(c *cparse.CallExpr) (sexpr.Expr, error) {
	descr, ok := d.functions[c.Callee]
	if !ok {
		glog.Infof("call to unknown function %s ignored", c.Callee)
		return sexpr.True, nil
	}

	args := make([]sexpr.Expr, len(c.Args))
	for i, a := range c.Args {
		v, err := d.visitExpr(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	entered, err := d.eng.TryEnterFunction(descr.Descriptor, args)
	if err != nil {
		return nil, err
	}
	if !entered {
		glog.Infof("call to %s unreachable or recursion-bound exhausted", c.Callee)
		return sexpr.True, nil
	}
	if err := d.visitBlock(descr.Body); err != nil {
		return nil, err
	}
	return d.eng.LeaveFunction()
}
