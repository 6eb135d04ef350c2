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

import "github.com/PositiveTechnologies/mantaray/internal/errs"

// UnaryOp enumerates the supported unary operator signs. NOT is the only
// member; the type exists so that Unary carries a typed, closed sign
// rather than a bare string.
type UnaryOp string

const (
	Not UnaryOp = "!"
)

func (op UnaryOp) String() string { return string(op) }

// UnaryOpFromSign resolves a lexical operator sign to its UnaryOp.
func UnaryOpFromSign(sign string) (UnaryOp, error) {
	if sign == string(Not) {
		return Not, nil
	}
	return "", errs.Invariantf("unknown unary operator sign: %q", sign)
}

// BinOp enumerates the supported binary operator signs.
type BinOp string

const (
	And BinOp = "&&"
	Or  BinOp = "||"
	Add BinOp = "+"
	Sub BinOp = "-"
	Mul BinOp = "*"
	Div BinOp = "/"
	Eq  BinOp = "=="
	Ne  BinOp = "!="
	Gt  BinOp = ">"
	Ge  BinOp = ">="
	Lt  BinOp = "<"
	Le  BinOp = "<="
)

func (op BinOp) String() string { return string(op) }

var binOpsBySign = map[string]BinOp{
	string(And): And, string(Or): Or, string(Add): Add, string(Sub): Sub,
	string(Mul): Mul, string(Div): Div, string(Eq): Eq, string(Ne): Ne,
	string(Gt): Gt, string(Ge): Ge, string(Lt): Lt, string(Le): Le,
}

// BinOpFromSign resolves a lexical operator sign to its BinOp.
func BinOpFromSign(sign string) (BinOp, error) {
	op, ok := binOpsBySign[sign]
	if !ok {
		return "", errs.Invariantf("unknown binary operator sign: %q", sign)
	}
	return op, nil
}
