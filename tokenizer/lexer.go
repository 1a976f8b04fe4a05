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

package tokenizer

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/Pooja0509/cppcheck/config"
)

// standardTypes are the builtin type names; tokens with these texts get
// the standard-type flag. unsigned/signed count so that declarations like
// "unsigned x;" pass the standard-type test on their own.
var standardTypes = map[string]bool{
	"bool": true, "char": true, "short": true, "int": true, "long": true,
	"float": true, "double": true, "unsigned": true, "signed": true,
	"void": true, "size_t": true, "ssize_t": true, "ptrdiff_t": true,
	"wchar_t": true,
}

// multiCharOps is checked longest-first when lexing operator runs.
var multiCharOps = []string{
	"<<=", ">>=", "...",
	"::", "->", "==", "!=", "<=", ">=", "&&", "||", "++", "--",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<", ">>",
}

// Suppression records an inline "cppcheck-suppress <id>" comment. It
// mutes diagnostics with the given id on the source line following the
// comment.
type Suppression struct {
	ID   string
	Line int
}

// List is the result of tokenizing one source file.
type List struct {
	front        *Token
	file         string
	isC          bool
	suppressions []Suppression
}

// Front returns the first token, or nil for an empty file.
func (l *List) Front() *Token { return l.front }

// File returns the name of the tokenized file.
func (l *List) File() string { return l.file }

// IsC reports whether the file was lexed as C rather than C++, decided
// by file extension.
func (l *List) IsC() bool { return l.isC }

// Suppressions returns the inline suppression comments found while
// lexing, in source order.
func (l *List) Suppressions() []Suppression { return l.suppressions }

// Tokenize lexes source into a token list, links matching brackets,
// rewrites -> into . and wraps unbraced if/else/for/while/do bodies in
// braces so that downstream analyses only ever see braced blocks.
// Preprocessor lines are skipped; the input is expected to be
// preprocessed already (or simple enough not to care).
func Tokenize(source, filename string) *List {
	lx := &lexer{src: source, file: filename, line: 1, column: 1}
	lx.run()

	l := &List{
		file:         filename,
		isC:          strings.EqualFold(filepath.Ext(filename), ".c"),
		suppressions: lx.suppressions,
	}
	if len(lx.tokens) == 0 {
		return l
	}
	for i, tok := range lx.tokens {
		if i > 0 {
			tok.prev = lx.tokens[i-1]
			lx.tokens[i-1].next = tok
		}
	}
	l.front = lx.tokens[0]
	l.front = insertBraces(l.front)
	linkBrackets(l.front)
	return l
}

type lexer struct {
	src    string
	file   string
	pos    int
	line   int
	column int

	tokens       []*Token
	suppressions []Suppression
}

func (lx *lexer) run() {
	for lx.pos < len(lx.src) {
		lx.skipBlank()
		if lx.pos >= len(lx.src) {
			break
		}
		ch := lx.src[lx.pos]
		switch {
		case ch == '"' || ch == '\'':
			lx.lexString(ch)
		case ch == '#':
			lx.skipLine()
		case isIdentStart(ch):
			lx.lexName()
		case ch >= '0' && ch <= '9':
			lx.lexNumber()
		default:
			lx.lexOperator()
		}
	}
}

func (lx *lexer) skipBlank() {
	for lx.pos < len(lx.src) {
		switch {
		case lx.src[lx.pos] == ' ' || lx.src[lx.pos] == '\t' || lx.src[lx.pos] == '\r' || lx.src[lx.pos] == '\n':
			lx.advance()
		case strings.HasPrefix(lx.src[lx.pos:], "//"):
			start := lx.pos
			line := lx.line
			for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' {
				lx.advance()
			}
			lx.noteSuppression(lx.src[start:lx.pos], line)
		case strings.HasPrefix(lx.src[lx.pos:], "/*"):
			start := lx.pos
			line := lx.line
			lx.advance()
			lx.advance()
			for lx.pos < len(lx.src) && !strings.HasPrefix(lx.src[lx.pos:], "*/") {
				lx.advance()
			}
			if lx.pos < len(lx.src) {
				lx.advance()
				lx.advance()
			}
			lx.noteSuppression(lx.src[start:lx.pos], line)
		default:
			return
		}
	}
}

// noteSuppression records a "cppcheck-suppress <id>" comment; the
// suppression applies to the line after the comment's first line.
func (lx *lexer) noteSuppression(comment string, line int) {
	fields := strings.Fields(strings.Trim(comment, "/* "))
	for i, f := range fields {
		if f == config.SuppressCommentPrefix && i+1 < len(fields) {
			lx.suppressions = append(lx.suppressions, Suppression{ID: fields[i+1], Line: line + 1})
		}
	}
}

func (lx *lexer) skipLine() {
	for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' {
		if lx.src[lx.pos] == '\\' && lx.pos+1 < len(lx.src) && lx.src[lx.pos+1] == '\n' {
			lx.advance()
		}
		lx.advance()
	}
}

func (lx *lexer) lexString(quote byte) {
	start := lx.pos
	line, col := lx.line, lx.column
	lx.advance()
	for lx.pos < len(lx.src) {
		ch := lx.src[lx.pos]
		if ch == '\\' {
			lx.advance()
			lx.advance()
			continue
		}
		lx.advance()
		if ch == quote || ch == '\n' {
			break
		}
	}
	lx.emit(lx.src[start:lx.pos], KindString, line, col)
}

func (lx *lexer) lexName() {
	start := lx.pos
	line, col := lx.line, lx.column
	for lx.pos < len(lx.src) && isIdentPart(lx.src[lx.pos]) {
		lx.advance()
	}
	lx.emit(lx.src[start:lx.pos], KindName, line, col)
}

func (lx *lexer) lexNumber() {
	start := lx.pos
	line, col := lx.line, lx.column
	for lx.pos < len(lx.src) {
		ch := lx.src[lx.pos]
		if ch >= '0' && ch <= '9' || ch == '.' || ch == 'x' || ch == 'X' ||
			ch >= 'a' && ch <= 'f' || ch >= 'A' && ch <= 'F' ||
			ch == 'u' || ch == 'U' || ch == 'l' || ch == 'L' {
			lx.advance()
			continue
		}
		break
	}
	lx.emit(lx.src[start:lx.pos], KindNumber, line, col)
}

func (lx *lexer) lexOperator() {
	line, col := lx.line, lx.column
	for _, op := range multiCharOps {
		if strings.HasPrefix(lx.src[lx.pos:], op) {
			for range op {
				lx.advance()
			}
			// -> and . are interchangeable for the patterns used here.
			if op == "->" {
				op = "."
			}
			lx.emit(op, KindOther, line, col)
			return
		}
	}
	op := lx.src[lx.pos : lx.pos+1]
	lx.advance()
	lx.emit(op, KindOther, line, col)
}

func (lx *lexer) emit(str string, kind Kind, line, col int) {
	lx.tokens = append(lx.tokens, &Token{
		str:          str,
		kind:         kind,
		file:         lx.file,
		line:         line,
		column:       col,
		standardType: kind == KindName && standardTypes[str],
	})
}

func (lx *lexer) advance() {
	if lx.pos >= len(lx.src) {
		return
	}
	if lx.src[lx.pos] == '\n' {
		lx.line++
		lx.column = 1
	} else {
		lx.column++
	}
	lx.pos++
}

func isIdentStart(ch byte) bool {
	return ch == '_' || unicode.IsLetter(rune(ch))
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || ch >= '0' && ch <= '9'
}

// linkBrackets joins every (, [ and { with its matching closer. Stray
// closers and unclosed openers are left with nil links.
func linkBrackets(front *Token) {
	var stack []*Token
	for tok := front; tok != nil; tok = tok.next {
		switch tok.str {
		case "(", "[", "{":
			stack = append(stack, tok)
		case ")", "]", "}":
			if len(stack) == 0 {
				continue
			}
			open := stack[len(stack)-1]
			if matchingCloser(open.str) != tok.str {
				continue
			}
			stack = stack[:len(stack)-1]
			open.link = tok
			tok.link = open
		}
	}
}

func matchingCloser(open string) string {
	switch open {
	case "(":
		return ")"
	case "[":
		return "]"
	default:
		return "}"
	}
}
