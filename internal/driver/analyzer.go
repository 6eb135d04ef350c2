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

// Package driver walks a cparse.Unit and drives an internal/engine
// Engine through it, following the order mandated by §6. It is the Go
// counterpart of mantaray/ast_interpretation/{interpreter,
// call_analyzer}.py and mantaray/core.py's entry-point collection.
package driver

import (
	"github.com/PositiveTechnologies/mantaray/internal/cparse"
	"github.com/PositiveTechnologies/mantaray/internal/engine"
	"github.com/PositiveTechnologies/mantaray/internal/errs"
	"github.com/PositiveTechnologies/mantaray/internal/setype"
)

// FunctionDescriptor records everything the driver needs about one
// function definition before it walks any body: its engine-facing
// Descriptor, its parsed body, and the set of functions it calls
// (populated by AnalyzeUnit). Mirrors call_analyzer.py's
// FunctionDescriptor.
type FunctionDescriptor struct {
	engine.Descriptor
	Body    *cparse.BlockStmt
	Callees map[string]bool
}

// AnalyzeUnit resolves every function's parameter/return types and
// records its callee set, matching CallAnalyzer.run. A name the unit
// never defines is recorded in Callees like any other; it is resolved
// (or not) at interpretation time, exactly as visit_FuncCall silently
// no-ops on an unknown callee (§6).
func AnalyzeUnit(unit *cparse.Unit) (map[string]*FunctionDescriptor, error) {
	functions := make(map[string]*FunctionDescriptor, len(unit.Functions))

	for _, fn := range unit.Functions {
		retType, err := setype.FromCDeclString(fn.ReturnTypeName)
		if err != nil {
			return nil, errs.UnsupportedASTf("function %s: %v", fn.Name, err)
		}
		params := make([]engine.Param, len(fn.Params))
		for i, p := range fn.Params {
			pt, err := setype.FromCDeclString(p.TypeName)
			if err != nil {
				return nil, errs.UnsupportedASTf("function %s parameter %s: %v", fn.Name, p.Name, err)
			}
			params[i] = engine.Param{Name: p.Name, Type: pt}
		}
		if _, dup := functions[fn.Name]; dup {
			return nil, errs.Invariantf("function %s redefined", fn.Name)
		}
		functions[fn.Name] = &FunctionDescriptor{
			Descriptor: engine.Descriptor{Name: fn.Name, ReturnType: retType, Parameters: params},
			Body:       fn.Body,
			Callees:    map[string]bool{},
		}
	}

	for _, fn := range unit.Functions {
		descr := functions[fn.Name]
		collectCallees(fn.Body, descr.Callees)
	}

	return functions, nil
}

func collectCallees(b *cparse.BlockStmt, callees map[string]bool) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		collectCalleesStmt(s, callees)
	}
}

func collectCalleesStmt(s cparse.Stmt, callees map[string]bool) {
	switch st := s.(type) {
	case *cparse.DeclStmt:
		collectCalleesExpr(st.Init, callees)
	case *cparse.AssignStmt:
		collectCalleesExpr(st.Value, callees)
	case *cparse.ExprStmt:
		collectCalleesExpr(st.Expr, callees)
	case *cparse.ReturnStmt:
		collectCalleesExpr(st.Value, callees)
	case *cparse.IfStmt:
		collectCalleesExpr(st.Cond, callees)
		collectCallees(st.Then, callees)
		collectCallees(st.Else, callees)
	case *cparse.LoopStmt:
		collectCalleesExpr(st.Cond, callees)
		if st.Post != nil {
			collectCalleesExpr(st.Post.Value, callees)
		}
		collectCallees(st.Body, callees)
	case *cparse.BlockStmt:
		collectCallees(st, callees)
	}
}

func collectCalleesExpr(e cparse.Expr, callees map[string]bool) {
	switch x := e.(type) {
	case nil:
		return
	case *cparse.CallExpr:
		callees[x.Callee] = true
		for _, a := range x.Args {
			collectCalleesExpr(a, callees)
		}
	case *cparse.UnaryExpr:
		collectCalleesExpr(x.Arg, callees)
	case *cparse.BinaryExpr:
		collectCalleesExpr(x.Left, callees)
		collectCalleesExpr(x.Right, callees)
	}
}

// CollectEntryPoints returns every function name never listed in
// another function's Callees set (§6: "a function is an entry point iff
// no function in the translation unit lists it in its callees set").
// The result is sorted by the unit's declaration order for deterministic
// CLI output.
func CollectEntryPoints(order []string, functions map[string]*FunctionDescriptor) []string {
	called := map[string]bool{}
	for _, fn := range functions {
		for callee := range fn.Callees {
			called[callee] = true
		}
	}
	var entries []string
	for _, name := range order {
		if !called[name] {
			entries = append(entries, name)
		}
	}
	return entries
}
