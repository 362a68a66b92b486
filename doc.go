// Package glob matches file paths against Unix shell style patterns,
// extended with capture groups for extracting the parts of a path that the
// wildcards matched.
//
// A pattern is compiled once into a Pattern and then matched against any
// number of paths, or used to drive a lazy filesystem traversal via Glob.
// Parenthesized groups mark the regions of interest:
//
//	pattern := glob.MustCompile("/media/(*)/(*).jpg")
//	entry, ok := pattern.Captures("/media/pets/cat.jpg")
//	// entry.Group(1) == "pets", entry.Group(2) == "cat"
//
// Substitute runs the mapping in reverse, rebuilding a path from group
// values:
//
//	out, err := pattern.Substitute("home", "dog")
//	// out == "/media/home/dog.jpg"
//
// # Pattern Syntax
//
//	?         matches any single character except a path separator
//	*         matches any sequence of characters except path separators
//	**        matches any sequence of path components; must form a whole
//	          component itself (a/**/b, not a**/b)
//	[ab] [a-z]  matches one character from the set or range
//	[!ab]     matches one character not in the set
//	(...)     captures the region matched by the enclosed sub-pattern
//
// Metacharacters can be matched literally by wrapping them in brackets:
// [[] matches a literal bracket, [*] a literal star. Escape quotes a whole
// string this way. Capture parentheses do not nest.
//
// # Filesystem Traversal
//
// Glob walks the filesystem lazily, descending only into directories that
// can still lead to a match, and yields matching paths in alphabetical
// order:
//
//	entries, err := glob.Glob("images/(**)/(*).png")
//	if err != nil {
//	    return err
//	}
//	for {
//	    entry, err := entries.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    ...
//	}
//
// Unreadable directories do not abort the traversal: Next reports each one
// as a *GlobError and continues. By default the traversal reads the host
// filesystem; WithFilesystem swaps in any FileSystem implementation, and
// NewMemoryFS provides a go-billy in-memory one for tests.
//
// # Thread Safety
//
// A Pattern is immutable after compilation and safe for concurrent use by
// multiple goroutines. An Entries is a single consumer's iteration state
// and is not.
package glob
