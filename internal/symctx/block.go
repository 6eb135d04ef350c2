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

package symctx

import "github.com/PositiveTechnologies/mantaray/internal/sexpr"

// Block is a plain lexical scope (a `{ ... }` statement block): it uses
// every default from base (propagating AdjunctCondition, merging on
// Leave) with no specialization of its own, matching
// StatementBlockContext in the original, which adds nothing beyond its
// superclass.
type Block struct {
	*base
}

// NewBlock constructs a block context nested in outer.
func NewBlock(outer Context) *Block {
	return &Block{base: newBase(outer, KindBlock)}
}

// ProcessReturn assigns to the returned variable inherited from the
// enclosing function and marks this block unreachable beyond this point
// (§4.7).
func (s *Block) ProcessReturn(e sexpr.Expr) {
	processReturn(s.base, s, e)
}
