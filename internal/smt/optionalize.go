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
)

// Simplify and CheckSat operating directly on a symbolic expression: SE
// is translated to a term, the solver operation is applied, and the
// result is translated back. Grounded on mantaray/solving/solver.py's
// se_simplify and is_sat, which sandwich exactly this round trip around
// z3.simplify / z3.Solver().check().
func SimplifySE(e sexpr.Expr) (sexpr.Expr, error) {
	term, symbols, err := SEToSMT(e)
	if err != nil {
		return nil, err
	}
	return SMTToSE(Simplify(term), symbols)
}

// IsSatSE reports whether e is satisfiable.
func IsSatSE(e sexpr.Expr) (bool, error) {
	term, _, err := SEToSMT(e)
	if err != nil {
		return false, err
	}
	return CheckSat(term), nil
}

// Optionalize is the SMT-filtered wrapper around sexpr.OptionalizeAll:
// it is the *only* point an SMT solver is consulted (§4.4), simplifying
// every enumerated option's condition and value and yielding the option
// only if its simplified condition is satisfiable — the mechanism that
// prunes infeasible paths from the final reported result. Mirrors
// mantaray/symbolic_execution/optionalizer.py's module-level
// optionalize() function, which wraps the bare Optionalizer class the
// same way.
func Optionalize(e sexpr.Expr) ([]*sexpr.Option, error) {
	var out []*sexpr.Option
	for _, raw := range sexpr.OptionalizeAll(e) {
		// A condition may itself read conditionalized variables; it is
		// flattened into the disjunction of its own (condition && value)
		// options so that it carries no Conditional node into SEToSMT.
		var condition sexpr.Expr = sexpr.False
		for i, co := range sexpr.OptionalizeAll(raw.Condition) {
			alt := sexpr.SeAnd(co.Condition, co.Value)
			if i == 0 {
				condition = alt
			} else {
				condition = sexpr.SeOr(condition, alt)
			}
		}
		simplifiedCondition, err := SimplifySE(condition)
		if err != nil {
			return nil, err
		}
		simplifiedValue := simplifyBestEffort(raw.Value)
		sat, err := IsSatSE(simplifiedCondition)
		if err != nil {
			return nil, err
		}
		if sat {
			out = append(out, sexpr.NewOption(simplifiedCondition, simplifiedValue))
		}
	}
	return out, nil
}

// simplifyBestEffort simplifies a value expression when its type has an
// SMT sort; values of a type the bridge does not model (Char, arrays —
// §6 lists only Int/Bool/Float) are returned unsimplified rather than
// aborting the whole optionalization, since §4.4 only requires
// simplifying the *condition* for the sat-filtering decision to be
// meaningful — value simplification is a best-effort readability pass.
func simplifyBestEffort(e sexpr.Expr) sexpr.Expr {
	simplified, err := SimplifySE(e)
	if err != nil {
		if errs.Is(err, errs.NotImplemented) {
			return e
		}
		return e
	}
	return simplified
}
