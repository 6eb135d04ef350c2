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

// Package setype defines the closed lattice of value types a symbolic
// expression can carry.
package setype

import "fmt"

// Type is one of a closed enumeration of primitive and array types.
// Types are compared by identity (Go's built-in comparison on the
// underlying string is sufficient, since the set of values is closed to
// the constants declared below).
type Type string

const (
	Void      Type = "void"
	Int       Type = "int"
	Bool      Type = "bool"
	Char      Type = "char"
	Float     Type = "float"
	IntArray  Type = "int[]"
	BoolArray Type = "bool[]"
	CharArray Type = "char[]"
	FloatArray Type = "float[]"
)

var all = map[Type]bool{
	Void: true, Int: true, Bool: true, Char: true, Float: true,
	IntArray: true, BoolArray: true, CharArray: true, FloatArray: true,
}

// FromName resolves a type by its canonical spelling, mirroring
// SEType.get_from_name in mantaray/symbolic_execution/type.py.
func FromName(name string) (Type, error) {
	t := Type(name)
	if !all[t] {
		return "", fmt.Errorf("setype: unknown type %q", name)
	}
	return t, nil
}

// FromCDeclString maps a parsed C declaration spelling (as produced by
// internal/cparse) onto an SEType. Array declarations are spelled with a
// trailing "[]", matching the textual convention used by FromName.
func FromCDeclString(spelling string) (Type, error) {
	return FromName(spelling)
}

// IsArray reports whether t is one of the array types.
func (t Type) IsArray() bool {
	switch t {
	case IntArray, BoolArray, CharArray, FloatArray:
		return true
	default:
		return false
	}
}

// Elem returns the scalar element type of an array type. It panics if t
// is not an array type; callers are expected to guard with IsArray.
func (t Type) Elem() Type {
	switch t {
	case IntArray:
		return Int
	case BoolArray:
		return Bool
	case CharArray:
		return Char
	case FloatArray:
		return Float
	default:
		panic(fmt.Sprintf("setype: %s is not an array type", t))
	}
}

// DefaultValue returns the zero value used for implicit initialization of
// a declared variable of type t. Array defaults are always an empty
// slice; Void has no default and returns nil.
func (t Type) DefaultValue() interface{} {
	switch t {
	case Int:
		return int64(0)
	case Bool:
		return false
	case Char:
		return byte(0)
	case Float:
		return float64(0)
	case IntArray, BoolArray, CharArray, FloatArray:
		return []interface{}{}
	default:
		return nil
	}
}

func (t Type) String() string {
	return string(t)
}
