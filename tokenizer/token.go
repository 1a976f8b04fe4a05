//  Copyright (c) 2023 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tokenizer turns C/C++ source text into a doubly-linked token
// list with matched-bracket links, per-token classification flags and a
// small pattern-match query language. The analyses in package uninit
// navigate this list exclusively through links and neighborhood patterns;
// they never re-lex or count brackets themselves.
package tokenizer

import "strings"

// Kind classifies a token into the coarse categories the pattern matcher
// cares about. Finer distinctions (standard type, all-uppercase name,
// increment/decrement) are carried as separate predicates.
type Kind uint8

const (
	// KindName is an identifier or keyword.
	KindName Kind = iota
	// KindNumber is an integer or floating literal.
	KindNumber
	// KindString is a string or character literal, quotes included.
	KindString
	// KindOther is punctuation and operators.
	KindOther
)

// Token is one element of the token list. Tokens are created by Tokenize
// and are read-only to the analyses; only the variable id is stamped in
// later, by the symbol table builder.
type Token struct {
	str   string
	kind  Kind
	varID int

	next *Token
	prev *Token
	// link joins the two tokens of a (), [] or {} pair in both
	// directions. It is nil for unbalanced input; consumers must treat a
	// nil link as a reason to stop, not to panic.
	link *Token

	file   string
	line   int
	column int

	standardType bool
}

// Str returns the token text.
func (t *Token) Str() string { return t.str }

// Next returns the following token, or nil at the end of the list.
func (t *Token) Next() *Token {
	if t == nil {
		return nil
	}
	return t.next
}

// Prev returns the preceding token, or nil at the start of the list.
func (t *Token) Prev() *Token {
	if t == nil {
		return nil
	}
	return t.prev
}

// At returns the token n positions away (negative n walks backwards). It
// returns nil when the list ends before n steps.
func (t *Token) At(n int) *Token {
	tok := t
	for ; tok != nil && n > 0; n-- {
		tok = tok.next
	}
	for ; tok != nil && n < 0; n++ {
		tok = tok.prev
	}
	return tok
}

// StrAt returns the text of the token n positions away, or "" when the
// list ends first.
func (t *Token) StrAt(n int) string {
	tok := t.At(n)
	if tok == nil {
		return ""
	}
	return tok.str
}

// Link returns the matching bracket for a (, ), [, ], { or } token, or
// nil for everything else (and for unbalanced brackets).
func (t *Token) Link() *Token {
	if t == nil {
		return nil
	}
	return t.link
}

// LinkAt returns the link of the token n positions away.
func (t *Token) LinkAt(n int) *Token {
	tok := t.At(n)
	if tok == nil {
		return nil
	}
	return tok.link
}

// VarID returns the variable id stamped onto this token by the symbol
// table builder, or 0 when the token is not a variable occurrence.
func (t *Token) VarID() int {
	if t == nil {
		return 0
	}
	return t.varID
}

// SetVarID stamps a variable id onto the token. Reserved for the symbol
// table builder.
func (t *Token) SetVarID(id int) { t.varID = id }

// File returns the name of the source file this token came from.
func (t *Token) File() string { return t.file }

// Line returns the 1-based source line.
func (t *Token) Line() int { return t.line }

// Column returns the 1-based source column.
func (t *Token) Column() int { return t.column }

// IsName reports whether the token is an identifier or keyword.
func (t *Token) IsName() bool { return t != nil && t.kind == KindName }

// IsNumber reports whether the token is a numeric literal.
func (t *Token) IsNumber() bool { return t != nil && t.kind == KindNumber }

// IsString reports whether the token is a string literal.
func (t *Token) IsString() bool { return t != nil && t.kind == KindString && strings.HasPrefix(t.str, "\"") }

// IsStandardType reports whether the token names a builtin type
// (char, int, double, size_t, ...).
func (t *Token) IsStandardType() bool { return t != nil && t.standardType }

// IsUpperCaseName reports whether the token is a name consisting solely
// of uppercase letters, digits and underscores - the usual shape of an
// unexpanded macro.
func (t *Token) IsUpperCaseName() bool {
	if t == nil || t.kind != KindName {
		return false
	}
	for _, r := range t.str {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') && r != '_' {
			return false
		}
	}
	return t.str != ""
}

// IsIncDec reports whether the token is ++ or --.
func (t *Token) IsIncDec() bool { return t != nil && (t.str == "++" || t.str == "--") }

// IsConstOp reports whether the token is a value-producing operator:
// arithmetic, shift, comparison, logical or bitwise. Assignment operators
// and ++/-- are deliberately excluded; %op% in patterns matches exactly
// this set.
func (t *Token) IsConstOp() bool {
	if t == nil || t.kind != KindOther {
		return false
	}
	switch t.str {
	case "+", "-", "*", "/", "%", "<<", ">>",
		"==", "!=", "<", ">", "<=", ">=",
		"&&", "||", "!", "&", "|", "^", "~":
		return true
	}
	return false
}

// IsAssignmentOp reports whether the token is = or a compound assignment.
func (t *Token) IsAssignmentOp() bool {
	if t == nil || t.kind != KindOther {
		return false
	}
	switch t.str {
	case "=", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<=", ">>=":
		return true
	}
	return false
}

// StrLength returns the length of the contents of a string literal
// token, escape sequences counted as one character. It returns 0 for
// non-string tokens.
func (t *Token) StrLength() int {
	if t == nil || !t.IsString() {
		return 0
	}
	s := t.str
	if len(s) < 2 {
		return 0
	}
	s = s[1 : len(s)-1]
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		n++
	}
	return n
}
