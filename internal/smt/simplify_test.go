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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimplifyConstantFolding(t *testing.T) {
	cases := []struct {
		name string
		in   Term
		want Term
	}{
		{"not-true", not(ConstBool(true)), ConstBool(false)},
		{"double-negation", not(not(Sym{Name: "g", S: BoolSort})), Sym{Name: "g", S: BoolSort}},
		{"and-false-short-circuits", and(ConstBool(false), Sym{Name: "g", S: BoolSort}), ConstBool(false)},
		{"and-true-drops", and(ConstBool(true), Sym{Name: "g", S: BoolSort}), Sym{Name: "g", S: BoolSort}},
		{"or-true-short-circuits", or(ConstBool(true), Sym{Name: "g", S: BoolSort}), ConstBool(true)},
		{"or-false-drops", or(ConstBool(false), Sym{Name: "g", S: BoolSort}), Sym{Name: "g", S: BoolSort}},
		{"int-add", arith(OpAdd, ConstInt(2), ConstInt(3), IntSort), ConstInt(5)},
		{"int-compare", cmp(OpLt, ConstInt(2), ConstInt(3)), ConstBool(true)},
		{"div-by-zero-not-folded", arith(OpDiv, ConstInt(1), ConstInt(0), IntSort), arith(OpDiv, ConstInt(1), ConstInt(0), IntSort)},
		{"bool-eq", cmp(OpEq, ConstBool(true), ConstBool(false)), ConstBool(false)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Simplify(c.in))
		})
	}
}

func TestSimplifyIsPostOrder(t *testing.T) {
	// !(!(true && true)) fully collapses to true.
	inner := and(ConstBool(true), ConstBool(true))
	t1 := not(not(inner))
	assert.Equal(t, ConstBool(true), Simplify(t1))
}
