package glob

// MatchOptions configures how a Pattern is matched against candidate
// strings.
type MatchOptions struct {
	// CaseSensitive selects case-sensitive matching. When false, ASCII
	// characters are compared after folding; non-ASCII characters are
	// always compared exactly.
	CaseSensitive bool

	// RequireLiteralSeparator requires path separators to be matched by a
	// literal separator in the pattern rather than by `*`, `?`, or a
	// bracket class.
	RequireLiteralSeparator bool

	// RequireLiteralLeadingDot requires a leading `.` in a path component
	// to be matched by a literal `.` in the pattern. This mirrors the Unix
	// convention that wildcards do not select hidden files.
	RequireLiteralLeadingDot bool
}

// DefaultMatchOptions returns the options used by Pattern.Matches and
// Pattern.Captures: case-sensitive, with no separator or leading-dot
// restrictions.
func DefaultMatchOptions() MatchOptions {
	return MatchOptions{
		CaseSensitive:            true,
		RequireLiteralSeparator:  false,
		RequireLiteralLeadingDot: false,
	}
}
