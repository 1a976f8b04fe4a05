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

import "strings"

// Match reports whether the token sequence starting at tok matches the
// given pattern. A pattern is a space-separated list of elements, each of
// which must match one token (or zero tokens for optional elements):
//
//   - a literal string matches a token with exactly that text;
//   - "a|b|c" matches any of the alternatives; a trailing empty
//     alternative ("&|") makes the whole element optional;
//   - "%var%" and "%type%" match any name token;
//   - "%num%" matches a numeric literal, "%str%" a string literal;
//   - "%op%" matches a value-producing operator (see Token.IsConstOp);
//   - "%varid%" matches a name token whose variable id equals the varid
//     argument;
//   - "!!x" matches any token whose text is not x;
//   - "[abc]" matches a single-character token that is one of the
//     bracketed characters.
//
// Match(nil, ...) is false. A pattern longer than the remaining token
// list does not match.
func Match(tok *Token, pattern string, varid ...int) bool {
	id := 0
	if len(varid) > 0 {
		id = varid[0]
	}
	for _, elem := range strings.Fields(pattern) {
		if tok == nil {
			return false
		}
		ok, consume := matchElement(tok, elem, id)
		if !ok {
			return false
		}
		if consume {
			tok = tok.next
		}
	}
	return true
}

// FindMatch scans forward from start (exclusive of end) and returns the
// first token at which the pattern matches, or nil. A nil end scans to
// the end of the list.
func FindMatch(start, end *Token, pattern string, varid ...int) *Token {
	for tok := start; tok != nil && tok != end; tok = tok.next {
		if Match(tok, pattern, varid...) {
			return tok
		}
	}
	return nil
}

// matchElement matches one pattern element against one token. The second
// result is false when an optional element matched by being absent, in
// which case the token must be retried against the next element.
func matchElement(tok *Token, elem string, varid int) (ok, consume bool) {
	// Character class: [abc] matches a single-character token.
	if len(elem) > 2 && elem[0] == '[' && elem[len(elem)-1] == ']' {
		return len(tok.str) == 1 && strings.ContainsRune(elem[1:len(elem)-1], rune(tok.str[0])), true
	}

	// Negation: !!x matches anything but x.
	if strings.HasPrefix(elem, "!!") {
		return tok.str != elem[2:], true
	}

	optional := false
	for _, alt := range splitAlternatives(elem) {
		if alt == "" {
			optional = true
			continue
		}
		if matchSingle(tok, alt, varid) {
			return true, true
		}
	}
	if optional {
		return true, false
	}
	return false, true
}

// splitAlternatives splits an element on "|", keeping multi-character
// operator alternatives like "<<|>>" and "++|--" intact as separate
// entries. "||" never appears as an alternative separator in the patterns
// this module uses, so a plain split is sufficient.
func splitAlternatives(elem string) []string {
	return strings.Split(elem, "|")
}

func matchSingle(tok *Token, alt string, varid int) bool {
	switch alt {
	case "%var%", "%type%":
		return tok.kind == KindName
	case "%num%":
		return tok.kind == KindNumber
	case "%str%":
		return tok.IsString()
	case "%op%":
		return tok.IsConstOp()
	case "%varid%":
		return tok.kind == KindName && varid != 0 && tok.varID == varid
	default:
		return tok.str == alt
	}
}
