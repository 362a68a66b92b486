package glob

// tokenKind discriminates the variants of a compiled pattern token.
type tokenKind uint8

const (
	// tokenLiteral matches exactly one character, case folding aside.
	tokenLiteral tokenKind = iota
	// tokenAnyChar matches any single character (`?`).
	tokenAnyChar
	// tokenAnySequence matches any run of characters within one path
	// component (`*`).
	tokenAnySequence
	// tokenAnyRecursive matches zero or more whole path components (`**`).
	tokenAnyRecursive
	// tokenAnyWithin matches one character inside a bracket class (`[...]`).
	tokenAnyWithin
	// tokenAnyExcept matches one character outside a bracket class (`[!...]`).
	tokenAnyExcept
	// tokenStartCapture opens a capture group and records the current offset.
	tokenStartCapture
	// tokenEndCapture closes a capture group and records the current offset.
	tokenEndCapture
)

// patternToken is one instruction of a compiled pattern. The kind selects
// which payload fields are meaningful: ch for literals, specs for bracket
// classes, group and trimsSep for capture boundaries.
type patternToken struct {
	kind  tokenKind
	ch    rune
	specs []charSpecifier

	// group is the zero-based capture index for capture tokens.
	group int
	// trimsSep marks a capture boundary emitted around a recursive wildcard.
	// Such boundaries back off over the trailing separator the `**` absorbed.
	trimsSep bool
}

// equal reports structural equality of two tokens.
func (t *patternToken) equal(o *patternToken) bool {
	if t.kind != o.kind || t.ch != o.ch || t.group != o.group || t.trimsSep != o.trimsSep {
		return false
	}
	if len(t.specs) != len(o.specs) {
		return false
	}
	for i := range t.specs {
		if t.specs[i] != o.specs[i] {
			return false
		}
	}
	return true
}

// charSpecifier is one element of a bracket class: either a single
// character or an inclusive character range. An inverted range such as
// `[2-1]` matches nothing; endpoints are taken as written, never swapped.
type charSpecifier struct {
	start, end rune
	isRange    bool
}

// parseCharSpecifiers parses the interior of a bracket class. A
// char-dash-char triple becomes a range; everything else, including a
// dash at the start or end of the class, is a single character.
func parseCharSpecifiers(s []rune) []charSpecifier {
	var cs []charSpecifier
	i := 0
	for i < len(s) {
		if i+3 <= len(s) && s[i+1] == '-' {
			cs = append(cs, charSpecifier{start: s[i], end: s[i+2], isRange: true})
			i += 3
		} else {
			cs = append(cs, charSpecifier{start: s[i], end: s[i], isRange: false})
			i++
		}
	}
	return cs
}

// matchResult is the three-valued outcome of running a token program
// against input.
type matchResult uint8

const (
	// matchOK means every token matched and the input was fully consumed.
	matchOK matchResult = iota
	// subPatternMismatch means this branch failed; an enclosing wildcard
	// choice point may still succeed by consuming more input.
	subPatternMismatch
	// inputExhausted means the input ran out mid-pattern. Longer
	// consumptions at enclosing choice points cannot help, so the failure
	// propagates without further retries.
	inputExhausted
)
