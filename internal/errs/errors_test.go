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

package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessageFormatsKindAndMessage(t *testing.T) {
	err := NotImplementedf("array indexing")
	assert.Equal(t, "not-implemented: array indexing", err.Error())
}

func TestErrorMessageIncludesWrappedCause(t *testing.T) {
	cause := errors.New("boom")
	err := &Error{Kind: Invariant, Msg: "context stack empty", Err: cause}
	assert.Contains(t, err.Error(), "boom")
	assert.ErrorIs(t, err, cause)
}

func TestIsMatchesKind(t *testing.T) {
	err := UnsupportedASTf("pointer declaration")
	assert.True(t, Is(err, UnsupportedAST))
	assert.False(t, Is(err, Invariant))
}

func TestIsFalseForPlainError(t *testing.T) {
	assert.False(t, Is(errors.New("plain"), NotImplemented))
}

func TestKindStringCoversAllKinds(t *testing.T) {
	assert.Equal(t, "not-implemented", NotImplemented.String())
	assert.Equal(t, "invariant-violation", Invariant.String())
	assert.Equal(t, "unsupported-ast", UnsupportedAST.String())
}
