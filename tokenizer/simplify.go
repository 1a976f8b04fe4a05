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

// insertBraces wraps the unbraced body of every if/else/for/while/do in
// { }. The analyses recognize control flow by brace shapes ("} else {",
// ") {"), so the token list must only ever contain braced blocks. Runs
// before bracket linking; paren matching here is by depth counting.
func insertBraces(front *Token) *Token {
	for tok := front; tok != nil; tok = tok.next {
		switch tok.str {
		case "if", "for", "while":
			if tok.StrAt(1) != "(" {
				continue
			}
			close := matchParen(tok.next)
			if close == nil {
				continue
			}
			// "while (...) ;" terminating a do-loop has no body.
			if tok.str == "while" && close.StrAt(1) == ";" && isDoWhileEnd(tok) {
				continue
			}
			braceBody(close)
		case "else", "do":
			braceBody(tok)
		}
	}
	return front
}

// braceBody wraps the statement following tok in braces unless it
// already is a braced block.
func braceBody(tok *Token) {
	body := tok.next
	if body == nil || body.str == "{" {
		return
	}
	end := statementEnd(body)
	if end == nil {
		return
	}
	open := &Token{str: "{", kind: KindOther, file: tok.file, line: tok.line, column: tok.column}
	closing := &Token{str: "}", kind: KindOther, file: end.file, line: end.line, column: end.column}
	insertAfter(tok, open)
	insertAfter(end, closing)
}

// statementEnd returns the last token of the statement starting at tok:
// the terminating semicolon for simple statements, the closing brace for
// blocks, and the full extent for control statements (including any else
// branch and a do-loop's trailing "while (...);").
func statementEnd(tok *Token) *Token {
	if tok == nil {
		return nil
	}
	switch tok.str {
	case "{":
		return matchBrace(tok)
	case "if", "for", "while", "switch":
		close := matchParen(tok.next)
		if close == nil {
			return nil
		}
		end := statementEnd(close.next)
		if end == nil {
			return nil
		}
		if tok.str == "if" && end.StrAt(1) == "else" {
			return statementEnd(end.At(2))
		}
		return end
	case "do":
		end := statementEnd(tok.next)
		if end == nil {
			return nil
		}
		// do <stmt> while ( ... ) ;
		if end.StrAt(1) == "while" && end.StrAt(2) == "(" {
			close := matchParen(end.At(2))
			if close != nil && close.StrAt(1) == ";" {
				return close.next
			}
		}
		return end
	default:
		depth := 0
		for t := tok; t != nil; t = t.next {
			switch t.str {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				depth--
			case ";":
				if depth == 0 {
					return t
				}
			}
		}
		return nil
	}
}

// isDoWhileEnd reports whether the while at tok terminates a do-loop,
// i.e. the preceding token is the } of a brace pair opened right after a
// "do". Brace links do not exist yet, so this only needs to handle the
// already-braced shape "do { ... } while".
func isDoWhileEnd(tok *Token) bool {
	return tok.prev != nil && (tok.prev.str == "}" || tok.prev.str == ";")
}

func matchParen(open *Token) *Token {
	if open == nil || open.str != "(" {
		return nil
	}
	depth := 0
	for t := open; t != nil; t = t.next {
		switch t.str {
		case "(":
			depth++
		case ")":
			depth--
			if depth == 0 {
				return t
			}
		}
	}
	return nil
}

func matchBrace(open *Token) *Token {
	depth := 0
	for t := open; t != nil; t = t.next {
		switch t.str {
		case "{":
			depth++
		case "}":
			depth--
			if depth == 0 {
				return t
			}
		}
	}
	return nil
}

func insertAfter(tok, newTok *Token) {
	newTok.prev = tok
	newTok.next = tok.next
	if tok.next != nil {
		tok.next.prev = newTok
	}
	tok.next = newTok
}
