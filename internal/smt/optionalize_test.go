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
	"github.com/stretchr/testify/require"

	"github.com/PositiveTechnologies/mantaray/internal/sexpr"
	"github.com/PositiveTechnologies/mantaray/internal/setype"
)

func TestSimplifySEFoldsArithmetic(t *testing.T) {
	three := sexpr.MustLiteral(int64(3), setype.Int)
	four := sexpr.MustLiteral(int64(4), setype.Int)
	sum, err := sexpr.NewBinary(three, four, sexpr.Add)
	require.NoError(t, err)

	got, err := SimplifySE(sum)
	require.NoError(t, err)
	assert.True(t, sexpr.Equal(got, sexpr.MustLiteral(int64(7), setype.Int)))
}

func TestIsSatSE(t *testing.T) {
	g := sexpr.NewVariable("ctx", "g", setype.Bool)
	conflict, err := sexpr.NewBinary(g, sexpr.SeNot(g), sexpr.And)
	require.NoError(t, err)

	sat, err := IsSatSE(conflict)
	require.NoError(t, err)
	assert.False(t, sat)

	sat, err = IsSatSE(sexpr.True)
	require.NoError(t, err)
	assert.True(t, sat)
}

// TestOptionalizePrunesInfeasibleBranches exercises the SMT-filtered
// wrapper end to end: a Conditional whose guard is a contradiction must
// not surface its option at all, per §4.4.
func TestOptionalizePrunesInfeasibleBranches(t *testing.T) {
	g := sexpr.NewVariable("ctx", "g", setype.Bool)
	contradiction, err := sexpr.NewBinary(g, sexpr.SeNot(g), sexpr.And)
	require.NoError(t, err)

	reachable := sexpr.NewOption(sexpr.True, sexpr.MustLiteral(int64(1), setype.Int))
	unreachable := sexpr.NewOption(contradiction, sexpr.MustLiteral(int64(2), setype.Int))
	cond := sexpr.NewConditional(setype.Int, []*sexpr.Option{reachable, unreachable})

	opts, err := Optionalize(cond)
	require.NoError(t, err)
	require.Len(t, opts, 1)
	assert.True(t, sexpr.Equal(opts[0].Value, sexpr.MustLiteral(int64(1), setype.Int)))
}

// TestOptionalizeBestEffortValueFallback exercises simplifyBestEffort:
// a Char-typed value has no SMT sort, so it must be carried through
// unsimplified rather than aborting the whole pass.
func TestOptionalizeBestEffortValueFallback(t *testing.T) {
	charVal := sexpr.MustLiteral(byte('a'), setype.Char)
	opt := sexpr.NewOption(sexpr.True, charVal)
	cond := sexpr.NewConditional(setype.Char, []*sexpr.Option{opt})

	opts, err := Optionalize(cond)
	require.NoError(t, err)
	require.Len(t, opts, 1)
	assert.True(t, sexpr.Equal(opts[0].Value, charVal))
}
