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

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PositiveTechnologies/mantaray/internal/setype"
)

func TestOptionalizePurityOnPlainExpr(t *testing.T) {
	// §8 property 5: an SE with no Conditional yields exactly one option
	// (true, e). The raw optionalizer does not simplify, so the condition
	// is the conjunction true && true of the operands' conditions.
	x := NewVariable("ctx", "x", setype.Int)
	one := MustLiteral(int64(1), setype.Int)
	expr := mustBinary(x, one, Add)

	opts := OptionalizeAll(expr)
	assert.Len(t, opts, 1)
	assert.True(t, Equal(SeAnd(True, True), opts[0].Condition))
	assert.True(t, Equal(expr, opts[0].Value))
}

func TestOptionalizeConditionalEnumeratesEachBranch(t *testing.T) {
	g := NewVariable("ctx", "g", setype.Bool)
	one := MustLiteral(int64(1), setype.Int)
	two := MustLiteral(int64(2), setype.Int)

	cond := NewConditional(setype.Int, []*Option{
		NewOption(g, one),
		NewOption(SeNot(g), two),
	})

	opts := OptionalizeAll(cond)
	assert.Len(t, opts, 2)
	assert.True(t, Equal(SeAnd(g, True), opts[0].Condition))
	assert.True(t, Equal(one, opts[0].Value))
	assert.True(t, Equal(SeAnd(SeNot(g), True), opts[1].Condition))
	assert.True(t, Equal(two, opts[1].Value))
}

func TestOptionalizeBinaryIsCartesianProduct(t *testing.T) {
	g := NewVariable("ctx", "g", setype.Bool)
	one := MustLiteral(int64(1), setype.Int)
	two := MustLiteral(int64(2), setype.Int)
	three := MustLiteral(int64(3), setype.Int)

	left := NewConditional(setype.Int, []*Option{
		NewOption(g, one),
		NewOption(SeNot(g), two),
	})
	expr := mustBinary(left, three, Add)

	opts := OptionalizeAll(expr)
	assert.Len(t, opts, 2)
}

func TestOptionalizeEarlyStop(t *testing.T) {
	g := NewVariable("ctx", "g", setype.Bool)
	one := MustLiteral(int64(1), setype.Int)
	two := MustLiteral(int64(2), setype.Int)
	cond := NewConditional(setype.Int, []*Option{
		NewOption(g, one),
		NewOption(SeNot(g), two),
	})

	count := 0
	Optionalize(cond, func(o *Option) bool {
		count++
		return false
	})
	assert.Equal(t, 1, count)
}
