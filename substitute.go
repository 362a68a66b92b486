package glob

import "strings"

// Substitute renders a string from the pattern by replacing each capture
// group with the corresponding value: the first value fills group 1, the
// second group 2, and so on. Literal characters are copied verbatim and
// the tokens inside a substituted group are skipped.
//
// A wildcard or bracket class outside of any capture group fails with
// ErrUnexpectedWildcard; a group with no corresponding value fails with
// *MissingGroupError. The result is not validated against the pattern:
// substitution is a templating operation, so a value that the group's
// sub-pattern would never match is still emitted as given.
func (p *Pattern) Substitute(groups ...string) (string, error) {
	var result strings.Builder
	result.Grow(len(p.original))

	for ti := 0; ti < len(p.tokens); ti++ {
		tok := &p.tokens[ti]
		switch tok.kind {
		case tokenLiteral:
			result.WriteRune(tok.ch)

		case tokenAnyChar, tokenAnySequence, tokenAnyRecursive, tokenAnyWithin, tokenAnyExcept:
			return "", ErrUnexpectedWildcard

		case tokenStartCapture:
			if tok.group >= len(groups) {
				return "", &MissingGroupError{Group: tok.group + 1}
			}
			result.WriteString(groups[tok.group])
			for ti++; ti < len(p.tokens); ti++ {
				if p.tokens[ti].kind == tokenEndCapture && p.tokens[ti].group == tok.group {
					break
				}
			}

		case tokenEndCapture:
			// Every EndCapture is consumed by the skip above; the compiler
			// rejects unbalanced parentheses.
			panic("glob: unbalanced capture tokens")
		}
	}
	return result.String(), nil
}
