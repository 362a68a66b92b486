package glob

import (
	"errors"
	"fmt"
	"io/fs"

	platformerrors "github.com/jmgilman/go/errors"
)

// Static compiler diagnostics. Each PatternError carries one of these
// together with the position it was detected at.
const (
	errWildcards          = "wildcards are either regular `*` or recursive `**`"
	errRecursiveWildcards = "recursive wildcards must form a single path component"
	errInvalidRange       = "invalid range pattern"
	errUnmatchedOpen      = "unmatched opening parenthesis"
	errUnmatchedClose     = "unmatched closing parenthesis"
)

// PatternError reports a syntax error found while compiling a pattern.
type PatternError struct {
	// Pos is the character index in the pattern where the error occurred.
	Pos int

	// Msg describes the error.
	Msg string
}

// Error implements the error interface.
func (e *PatternError) Error() string {
	return fmt.Sprintf("pattern syntax error near position %d: %s", e.Pos, e.Msg)
}

// GlobError reports a path that could not be read during traversal. It is
// surfaced inline as one iteration result and does not stop the
// enumeration: the entries already discovered in sibling branches are
// still produced by subsequent calls to Next.
type GlobError struct {
	// Path is the directory the error corresponds to.
	Path string

	// Err is the underlying failure, classified with a platform error
	// code where the cause is recognized. The original error remains
	// reachable through errors.Is and errors.As.
	Err error
}

// Error implements the error interface.
func (e *GlobError) Error() string {
	return fmt.Sprintf("attempting to read %q resulted in an error: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for errors.Is and errors.As
// compatibility.
func (e *GlobError) Unwrap() error {
	return e.Err
}

// ErrUnexpectedWildcard is returned by Pattern.Substitute when the pattern
// contains a wildcard or bracket class outside of any capture group.
// Substitution cannot invent a value for a variable part that no group
// covers.
var ErrUnexpectedWildcard = errors.New("unexpected wildcard outside of capture group")

// MissingGroupError is returned by Pattern.Substitute when the pattern
// references a capture group that no value was supplied for.
type MissingGroupError struct {
	// Group is the 1-based capture group number.
	Group int
}

// Error implements the error interface.
func (e *MissingGroupError) Error() string {
	return fmt.Sprintf("substitution error: missing value for group %d", e.Group)
}

// classifyReadError wraps a directory read failure with a platform error
// code. It preserves the original error chain, so callers can still test
// for fs.ErrPermission and friends with errors.Is. Unrecognized errors are
// passed through unchanged to preserve their original information.
func classifyReadError(err error) error {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return platformerrors.Wrap(err, platformerrors.CodeForbidden, "directory is not readable")
	case errors.Is(err, fs.ErrNotExist):
		return platformerrors.Wrap(err, platformerrors.CodeNotFound, "directory vanished during traversal")
	default:
		return err
	}
}
