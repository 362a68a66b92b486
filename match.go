package glob

import (
	"path/filepath"
	"runtime"
)

// matchState carries the per-match context shared by every branch of the
// backtracking recursion: the decoded input, the options, and (in
// capturing mode) the group offset buffer. Cursor positions travel as
// plain values through the recursion instead.
type matchState struct {
	input string
	runes []rune
	// offsets[i] is the byte offset of runes[i] in input; the final
	// element is len(input). Captures record these offsets, which keeps
	// every recorded boundary a valid UTF-8 boundary by construction.
	offsets []int
	opts    MatchOptions

	capturing bool
	caps      [][2]int
}

func newMatchState(s string, opts MatchOptions, capturing bool) *matchState {
	st := &matchState{
		input:     s,
		runes:     make([]rune, 0, len(s)),
		offsets:   make([]int, 0, len(s)+1),
		opts:      opts,
		capturing: capturing,
	}
	for i, r := range s {
		st.runes = append(st.runes, r)
		st.offsets = append(st.offsets, i)
	}
	st.offsets = append(st.offsets, len(s))
	return st
}

// Matches reports whether the string matches the pattern under the
// default match options.
func (p *Pattern) Matches(s string) bool {
	return p.MatchesWith(s, DefaultMatchOptions())
}

// MatchesWith reports whether the string matches the pattern under the
// given match options.
func (p *Pattern) MatchesWith(s string, opts MatchOptions) bool {
	st := newMatchState(s, opts, false)
	return p.matchFrom(st, true, 0, 0) == matchOK
}

// Captures matches the string under the default match options and, on
// success, returns an Entry carrying the matched capture groups.
func (p *Pattern) Captures(s string) (*Entry, bool) {
	return p.CapturesWith(s, DefaultMatchOptions())
}

// CapturesWith matches the string under the given match options and, on
// success, returns an Entry carrying the matched capture groups. Group 0
// spans the whole string; parenthesized groups are numbered from 1 in
// order of their opening parenthesis.
func (p *Pattern) CapturesWith(s string, opts MatchOptions) (*Entry, bool) {
	st := newMatchState(s, opts, true)
	if p.matchFrom(st, true, 0, 0) != matchOK {
		return nil, false
	}
	groups := make([][2]int, 0, len(st.caps)+1)
	groups = append(groups, [2]int{0, len(s)})
	groups = append(groups, st.caps...)
	return &Entry{path: s, groups: groups}, true
}

// matchFrom executes the token program starting at token ti against the
// input starting at rune si. followsSep tracks whether the cursor sits
// just after a path separator (or at the start of the input), which gates
// the leading-dot rules. Wildcards try the empty match first and then
// consume one character at a time, so ambiguous captures resolve to the
// leftmost-shortest span.
func (p *Pattern) matchFrom(st *matchState, followsSep bool, si, ti int) matchResult {
	for ; ti < len(p.tokens); ti++ {
		tok := &p.tokens[ti]
		switch tok.kind {
		case tokenAnySequence, tokenAnyRecursive:
			// Empty match first.
			if r := p.matchFrom(st, followsSep, si, ti+1); r != subPatternMismatch {
				return r
			}

			for si < len(st.runes) {
				c := st.runes[si]
				if followsSep && st.opts.RequireLiteralLeadingDot && c == '.' {
					return subPatternMismatch
				}
				si++
				followsSep = isSeparator(c)
				if tok.kind == tokenAnyRecursive && !followsSep {
					continue
				}
				if tok.kind == tokenAnySequence && st.opts.RequireLiteralSeparator && followsSep {
					return subPatternMismatch
				}
				if r := p.matchFrom(st, followsSep, si, ti+1); r != subPatternMismatch {
					return r
				}
			}
			// Input exhausted without a match below this choice point;
			// fall through to the remaining tokens so a char-consuming
			// token can report the exhaustion.

		case tokenStartCapture:
			if st.capturing {
				off := st.offsets[si]
				if tok.trimsSep && off > 0 && st.input[off-1] == '/' {
					off--
				}
				for len(st.caps) < tok.group+1 {
					st.caps = append(st.caps, [2]int{})
				}
				st.caps[tok.group] = [2]int{off, off}
			}

		case tokenEndCapture:
			if st.capturing {
				off := st.offsets[si]
				if tok.trimsSep && off > 0 && st.input[off-1] == '/' {
					off--
				}
				// A recursive wildcard that matched nothing must not pull
				// the close boundary before the open one (a/**/b vs a/b).
				if off < st.caps[tok.group][0] {
					off = st.caps[tok.group][0]
				}
				st.caps[tok.group][1] = off
			}

		default:
			if si >= len(st.runes) {
				return inputExhausted
			}
			c := st.runes[si]
			si++
			isSep := isSeparator(c)

			if tok.kind != tokenLiteral &&
				((st.opts.RequireLiteralSeparator && isSep) ||
					(followsSep && st.opts.RequireLiteralLeadingDot && c == '.')) {
				return subPatternMismatch
			}

			var ok bool
			switch tok.kind {
			case tokenAnyChar:
				ok = true
			case tokenAnyWithin:
				ok = inCharSpecifiers(tok.specs, c, st.opts)
			case tokenAnyExcept:
				ok = !inCharSpecifiers(tok.specs, c, st.opts)
			case tokenLiteral:
				ok = charsEq(c, tok.ch, st.opts.CaseSensitive)
			}
			if !ok {
				return subPatternMismatch
			}
			followsSep = isSep
		}
	}

	if si == len(st.runes) {
		return matchOK
	}
	return subPatternMismatch
}

// inCharSpecifiers reports whether c falls inside the bracket class.
func inCharSpecifiers(specs []charSpecifier, c rune, opts MatchOptions) bool {
	for _, spec := range specs {
		if !spec.isRange {
			if charsEq(c, spec.start, opts.CaseSensitive) {
				return true
			}
			continue
		}

		start, end := spec.start, spec.end
		if !opts.CaseSensitive && isASCII(c) && isASCII(start) && isASCII(end) {
			lo, hi := asciiLower(start), asciiLower(end)
			// Fold only when both endpoints are letters; mixed ranges such
			// as [A-9] keep their exact endpoints.
			if lo != asciiUpper(lo) && hi != asciiUpper(hi) {
				if lc := asciiLower(c); lc >= lo && lc <= hi {
					return true
				}
			}
		}
		if c >= start && c <= end {
			return true
		}
	}
	return false
}

// charsEq reports whether two characters are equal, honoring
// case-insensitive ASCII folding and treating all separators as equal on
// Windows.
func charsEq(a, b rune, caseSensitive bool) bool {
	if runtime.GOOS == "windows" && isSeparator(a) && isSeparator(b) {
		return true
	}
	if !caseSensitive && isASCII(a) && isASCII(b) {
		return asciiLower(a) == asciiLower(b)
	}
	return a == b
}

// isSeparator reports whether the character separates path components.
func isSeparator(r rune) bool {
	return r == '/' || (filepath.Separator != '/' && r == filepath.Separator)
}

func isASCII(r rune) bool {
	return r < 0x80
}

func asciiLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

func asciiUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
