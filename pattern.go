package glob

import (
	"strconv"
	"strings"
)

// Pattern is a compiled Unix shell style pattern, extended with capture
// groups.
//
//   - `?` matches any single character.
//
//   - `*` matches any (possibly empty) sequence of characters.
//
//   - `**` matches the current directory and arbitrary subdirectories.
//     This sequence must form a single path component, so `a**` and `**b`
//     are invalid. A sequence of more than two consecutive `*` characters
//     is also invalid.
//
//   - `[...]` matches any character inside the brackets. Character
//     sequences can also specify ranges, so `[0-9]` matches any character
//     between 0 and 9 inclusive. An unclosed bracket is invalid.
//
//   - `[!...]` is the negation of `[...]`: it matches any character not in
//     the brackets.
//
//   - `(...)` wraps any sub-pattern in a capture group whose matched span
//     is reported through Captures.
//
//   - The metacharacters `?`, `*`, `[`, `]` can be matched literally by
//     bracketing them (e.g. `[?]`). A `]` immediately after `[` or `[!` is
//     part of the set rather than its end, so `]` can be matched by `[]]`.
//     A `-` is literal when placed at the start or end of a set.
//
// A Pattern is immutable after compilation and safe for concurrent use.
type Pattern struct {
	original    string
	tokens      []patternToken
	isRecursive bool
}

// Compile parses a pattern string into a Pattern. An invalid pattern
// yields a *PatternError describing the position of the problem.
func Compile(pattern string) (*Pattern, error) {
	return compile(pattern, false)
}

// MustCompile is like Compile but panics if the pattern cannot be parsed.
// It simplifies safe initialization of global variables holding patterns.
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic("glob: Compile(" + strconv.Quote(pattern) + "): " + err.Error())
	}
	return p
}

// openGroup tracks an unclosed capture group during compilation: its
// assigned index and the position of its opening parenthesis.
type openGroup struct {
	index int
	pos   int
}

// compile runs the single-pass tokenizer. With skipGroups set, parentheses
// are consumed without emitting capture tokens; the traversal engine uses
// this to compile per-component sub-patterns, which therefore never contain
// unterminated captures.
func compile(pattern string, skipGroups bool) (*Pattern, error) {
	chars := []rune(pattern)

	var tokens []patternToken
	var openGroups []openGroup
	isRecursive := false
	lastCapture := 0
	i := 0

	for i < len(chars) {
		switch c := chars[i]; c {
		case '?':
			tokens = append(tokens, patternToken{kind: tokenAnyChar})
			i++

		case '*':
			old := i
			for i < len(chars) && chars[i] == '*' {
				i++
			}
			count := i - old

			if count > 2 {
				return nil, &PatternError{Pos: old + 2, Msg: errWildcards}
			}
			if count == 1 {
				tokens = append(tokens, patternToken{kind: tokenAnySequence})
				continue
			}

			// Collapse consecutive recursive wildcards to a single token.
			if !(len(tokens) > 1 && tokens[len(tokens)-1].kind == tokenAnyRecursive) {
				isRecursive = true
				tokens = append(tokens, patternToken{kind: tokenAnyRecursive})
			}

			// `**` may only form an entire path component: a/**/b is
			// valid, a**/b and a/**b are not. Capture parens adjacent to
			// the wildcard are transparent for this check.
			if !endsWithSeparator(chars[:i-count]) {
				return nil, &PatternError{Pos: old - 1, Msg: errRecursiveWildcards}
			}
			for i < len(chars) && (chars[i] == '(' || chars[i] == ')') {
				if !skipGroups {
					if chars[i] == '(' {
						openGroups = append(openGroups, openGroup{index: lastCapture, pos: i})
						tokens = append(tokens, patternToken{kind: tokenStartCapture, group: lastCapture, trimsSep: true})
						lastCapture++
					} else {
						if len(openGroups) == 0 {
							return nil, &PatternError{Pos: i, Msg: errUnmatchedClose}
						}
						g := openGroups[len(openGroups)-1]
						openGroups = openGroups[:len(openGroups)-1]
						tokens = append(tokens, patternToken{kind: tokenEndCapture, group: g.index, trimsSep: true})
					}
				}
				i++
			}
			switch {
			case i < len(chars) && isSeparator(chars[i]):
				i++
			case i == len(chars):
				// `**` ends the pattern.
			default:
				return nil, &PatternError{Pos: i, Msg: errRecursiveWildcards}
			}

		case '[':
			if i+4 <= len(chars) && chars[i+1] == '!' {
				if j := indexRune(chars[i+3:], ']'); j >= 0 {
					specs := parseCharSpecifiers(chars[i+2 : i+3+j])
					tokens = append(tokens, patternToken{kind: tokenAnyExcept, specs: specs})
					i += j + 4
					continue
				}
			} else if i+3 <= len(chars) && chars[i+1] != '!' {
				if j := indexRune(chars[i+2:], ']'); j >= 0 {
					specs := parseCharSpecifiers(chars[i+1 : i+2+j])
					tokens = append(tokens, patternToken{kind: tokenAnyWithin, specs: specs})
					i += j + 3
					continue
				}
			}
			return nil, &PatternError{Pos: i, Msg: errInvalidRange}

		case '(':
			if !skipGroups {
				openGroups = append(openGroups, openGroup{index: lastCapture, pos: i})
				tokens = append(tokens, patternToken{kind: tokenStartCapture, group: lastCapture})
				lastCapture++
			}
			i++

		case ')':
			if !skipGroups {
				if len(openGroups) == 0 {
					return nil, &PatternError{Pos: i, Msg: errUnmatchedClose}
				}
				g := openGroups[len(openGroups)-1]
				openGroups = openGroups[:len(openGroups)-1]
				tokens = append(tokens, patternToken{kind: tokenEndCapture, group: g.index})
			}
			i++

		default:
			tokens = append(tokens, patternToken{kind: tokenLiteral, ch: c})
			i++
		}
	}

	if len(openGroups) > 0 {
		return nil, &PatternError{Pos: openGroups[0].pos, Msg: errUnmatchedOpen}
	}

	return &Pattern{
		original:    pattern,
		tokens:      tokens,
		isRecursive: isRecursive,
	}, nil
}

// endsWithSeparator reports whether the character sequence ends with a
// path separator, looking through any capture parentheses. An empty
// sequence counts as a boundary, so `**` may start a pattern.
func endsWithSeparator(s []rune) bool {
	for i := len(s) - 1; i >= 0; i-- {
		switch {
		case s[i] == '(' || s[i] == ')':
			continue
		case isSeparator(s[i]):
			return true
		default:
			return false
		}
	}
	return true
}

// indexRune returns the index of the first occurrence of r in s, or -1.
func indexRune(s []rune, r rune) int {
	for i, c := range s {
		if c == r {
			return i
		}
	}
	return -1
}

// Escape returns a pattern that matches the given string literally, and
// nothing else, by bracketing each of the metacharacters `?`, `*`, `[`,
// and `]`. A `!` needs no escaping because it is only special inside
// brackets.
func Escape(s string) string {
	var escaped strings.Builder
	for _, c := range s {
		switch c {
		case '?', '*', '[', ']':
			escaped.WriteByte('[')
			escaped.WriteRune(c)
			escaped.WriteByte(']')
		default:
			escaped.WriteRune(c)
		}
	}
	return escaped.String()
}

// String returns the original pattern text.
func (p *Pattern) String() string {
	return p.original
}

// IsRecursive reports whether the pattern contains a recursive `**`
// wildcard.
func (p *Pattern) IsRecursive() bool {
	return p.isRecursive
}

// Equal reports structural equality: same source text, same token program,
// same recursive flag.
func (p *Pattern) Equal(o *Pattern) bool {
	if p.original != o.original || p.isRecursive != o.isRecursive || len(p.tokens) != len(o.tokens) {
		return false
	}
	for i := range p.tokens {
		if !p.tokens[i].equal(&o.tokens[i]) {
			return false
		}
	}
	return true
}

// literal returns the pattern text when the token program is purely
// literal characters. The traversal engine uses this to resolve a path
// component with a metadata probe instead of a directory read.
func (p *Pattern) literal() (string, bool) {
	var s strings.Builder
	for i := range p.tokens {
		if p.tokens[i].kind != tokenLiteral {
			return "", false
		}
		s.WriteRune(p.tokens[i].ch)
	}
	return s.String(), true
}
