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
	"github.com/stretchr/testify/require"

	"github.com/PositiveTechnologies/mantaray/internal/setype"
)

func TestVariableIdentity(t *testing.T) {
	v1 := NewVariable("ctx-1", "x", setype.Int)
	v2 := NewVariable("ctx-2", "x", setype.Int)
	assert.False(t, Equal(v1, v2), "variables from distinct contexts must never be equal even sharing a name")

	v3 := NewVariable("ctx-1", "x", setype.Int)
	assert.True(t, Equal(v1, v3))
}

func TestLiteralCoercion(t *testing.T) {
	l, err := NewLiteral("42", setype.Int, false)
	require.NoError(t, err)
	assert.Equal(t, int64(42), l.Value)

	_, err = NewLiteral("abc", setype.Int, false)
	assert.Error(t, err)

	_, err = NewLiteral(1, setype.Void, false)
	assert.Error(t, err)
}

func TestLiteralString(t *testing.T) {
	assert.Equal(t, "5", MustLiteral(int64(5), setype.Int).String())
	assert.Equal(t, "'a'", MustLiteral(byte('a'), setype.Char).String())
	assert.Equal(t, "void", Literal{SEType: setype.Void}.String())
}

func TestBinaryRequiresMatchingTypes(t *testing.T) {
	x := NewVariable("c", "x", setype.Int)
	y := NewVariable("c", "y", setype.Bool)
	_, err := NewBinary(x, y, Add)
	assert.Error(t, err)

	z := NewVariable("c", "z", setype.Int)
	b, err := NewBinary(x, z, Add)
	require.NoError(t, err)
	assert.Equal(t, setype.Int, b.Type())
}

func TestBinOpFromArgs(t *testing.T) {
	a := MustLiteral(int64(1), setype.Int)
	b := MustLiteral(int64(2), setype.Int)
	c := MustLiteral(int64(3), setype.Int)

	single, err := BinOpFromArgs(Add, a)
	require.NoError(t, err)
	assert.True(t, Equal(a, single))

	folded, err := BinOpFromArgs(Add, a, b, c)
	require.NoError(t, err)
	bin, ok := folded.(Binary)
	require.True(t, ok)
	inner, ok := bin.Arg1.(Binary)
	require.True(t, ok)
	assert.True(t, Equal(a, inner.Arg1))
	assert.True(t, Equal(b, inner.Arg2))
	assert.True(t, Equal(c, bin.Arg2))
}

func TestEqualityIgnoresOperatorSign(t *testing.T) {
	// Per §3's equality-components table, Binary/Unary equality is over
	// the operand(s) only, not the operator — this is intentional, not
	// an oversight: the original equality_components tuples omit
	// bop_type/op_type entirely.
	x := MustLiteral(int64(1), setype.Int)
	y := MustLiteral(int64(2), setype.Int)
	add := mustBinary(x, y, Add)
	sub := mustBinary(x, y, Sub)
	assert.True(t, Equal(add, sub))
}

func TestOptionCloneKeepsID(t *testing.T) {
	o := NewOption(True, MustLiteral(int64(1), setype.Int))
	clone := o.Clone()
	assert.Equal(t, o.ID, clone.ID)
	assert.NotSame(t, o, clone)
}

func TestConditionalEquality(t *testing.T) {
	o1 := NewOption(True, MustLiteral(int64(1), setype.Int))
	o2 := NewOption(False, MustLiteral(int64(2), setype.Int))

	c1 := NewConditional(setype.Int, []*Option{o1, o2})
	c2 := NewConditional(setype.Int, []*Option{o1, o2})
	assert.True(t, Equal(c1, c2))

	o3 := NewOption(True, MustLiteral(int64(1), setype.Int))
	c3 := NewConditional(setype.Int, []*Option{o3, o2})
	assert.False(t, Equal(c1, c3), "distinct option identities must not compare equal even with identical condition/value")
}

func TestHashConsistentWithEqual(t *testing.T) {
	x := NewVariable("c", "x", setype.Int)
	y := NewVariable("c", "x", setype.Int)
	assert.True(t, Equal(x, y))
	assert.Equal(t, Hash(x), Hash(y))
}
