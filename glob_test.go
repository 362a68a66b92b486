package glob

import (
	"errors"
	"io"
	"io/fs"
	"testing"

	platformerrors "github.com/jmgilman/go/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memFixture builds an in-memory filesystem containing the given files,
// creating parent directories as needed. Paths ending in a slash become
// empty directories.
func memFixture(t *testing.T, paths ...string) *BillyFS {
	t.Helper()
	fsys := NewMemoryFS()
	bfs := fsys.Unwrap()
	for _, path := range paths {
		if path[len(path)-1] == '/' {
			require.NoError(t, bfs.MkdirAll(path[:len(path)-1], 0o755))
			continue
		}
		f, err := bfs.Create(path)
		require.NoError(t, err)
		require.NoError(t, f.Close())
	}
	return fsys
}

// drain collects all successful entries and all traversal errors.
func drain(t *testing.T, entries *Entries) ([]*Entry, []error) {
	t.Helper()
	var matched []*Entry
	var failed []error
	for {
		entry, err := entries.Next()
		if err == io.EOF {
			return matched, failed
		}
		if err != nil {
			failed = append(failed, err)
			continue
		}
		matched = append(matched, entry)
	}
}

func drainPaths(t *testing.T, entries *Entries) []string {
	t.Helper()
	matched, failed := drain(t, entries)
	require.Empty(t, failed)
	paths := make([]string, len(matched))
	for i, entry := range matched {
		paths[i] = entry.Path()
	}
	return paths
}

func TestGlob_AlphabeticalOrder(t *testing.T) {
	fsys := memFixture(t, "b.txt", "a.txt", "c.txt", "ignored.log")

	entries, err := Glob("*.txt", WithFilesystem(fsys))
	require.NoError(t, err)

	assert.Equal(t, []string{"a.txt", "b.txt", "c.txt"}, drainPaths(t, entries))
}

func TestGlob_CompileErrors(t *testing.T) {
	_, err := Glob("a/**b")
	require.Error(t, err)
	var perr *PatternError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 4, perr.Pos)

	_, err = Glob("abc[def")
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 3, perr.Pos)
}

func TestGlob_CaptureGroups(t *testing.T) {
	fsys := memFixture(t,
		"images/pets/cat.jpg",
		"images/pets/dog.jpg",
		"images/wild/fox.jpg",
		"images/wild/notes.txt",
	)

	entries, err := Glob("images/(*)/(*).jpg", WithFilesystem(fsys))
	require.NoError(t, err)

	matched, failed := drain(t, entries)
	require.Empty(t, failed)
	require.Len(t, matched, 3)

	type row struct{ path, dir, stem string }
	var got []row
	for _, entry := range matched {
		dir, ok := entry.Group(1)
		require.True(t, ok)
		stem, ok := entry.Group(2)
		require.True(t, ok)
		got = append(got, row{entry.Path(), dir, stem})
	}
	assert.Equal(t, []row{
		{"images/pets/cat.jpg", "pets", "cat"},
		{"images/pets/dog.jpg", "pets", "dog"},
		{"images/wild/fox.jpg", "wild", "fox"},
	}, got)
}

func TestGlob_RecursiveWildcard(t *testing.T) {
	fsys := memFixture(t,
		"src/needle.txt",
		"src/a/needle.txt",
		"src/a/b/needle.txt",
		"src/a/other.txt",
	)

	entries, err := Glob("src/**/needle.txt", WithFilesystem(fsys))
	require.NoError(t, err)

	// Depth-first, alphabetical at each level.
	assert.Equal(t, []string{
		"src/a/b/needle.txt",
		"src/a/needle.txt",
		"src/needle.txt",
	}, drainPaths(t, entries))
}

func TestGlob_RecursiveCapture(t *testing.T) {
	fsys := memFixture(t,
		"src/needle.txt",
		"src/a/b/needle.txt",
	)

	entries, err := Glob("src/(**)/needle.txt", WithFilesystem(fsys))
	require.NoError(t, err)

	matched, failed := drain(t, entries)
	require.Empty(t, failed)
	require.Len(t, matched, 2)

	group, ok := matched[0].Group(1)
	require.True(t, ok)
	assert.Equal(t, "a/b", group)

	// Zero intermediate components capture as the empty string.
	group, ok = matched[1].Group(1)
	require.True(t, ok)
	assert.Equal(t, "", group)
}

func TestGlob_TrailingRecursiveMatchesDirectoriesOnly(t *testing.T) {
	fsys := memFixture(t,
		"src/a/x.txt",
		"src/b.txt",
	)

	entries, err := Glob("src/**", WithFilesystem(fsys))
	require.NoError(t, err)

	// A trailing ** component matches the directories it descends into,
	// not plain files.
	assert.Equal(t, []string{"src/a"}, drainPaths(t, entries))
}

func TestGlob_TrailingSeparatorRequiresDirectory(t *testing.T) {
	fsys := memFixture(t,
		"things/dir/inner.txt",
		"things/file.txt",
	)

	entries, err := Glob("things/*/", WithFilesystem(fsys))
	require.NoError(t, err)
	assert.Equal(t, []string{"things/dir"}, drainPaths(t, entries))

	entries, err = Glob("things/*", WithFilesystem(fsys))
	require.NoError(t, err)
	assert.Equal(t, []string{"things/dir", "things/file.txt"}, drainPaths(t, entries))
}

func TestGlob_CurrentDirPrefix(t *testing.T) {
	fsys := memFixture(t, "a.txt")

	entries, err := Glob("./a.txt", WithFilesystem(fsys))
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, drainPaths(t, entries))
}

func TestGlob_LiteralFastPath(t *testing.T) {
	fsys := memFixture(t, "exact/path/file.txt")

	entries, err := Glob("exact/path/file.txt", WithFilesystem(fsys))
	require.NoError(t, err)
	assert.Equal(t, []string{"exact/path/file.txt"}, drainPaths(t, entries))

	entries, err = Glob("exact/path/missing.txt", WithFilesystem(fsys))
	require.NoError(t, err)
	assert.Empty(t, drainPaths(t, entries))
}

func TestGlob_HiddenFiles(t *testing.T) {
	fsys := memFixture(t, ".hidden", "visible.txt")

	// By default a leading dot is not special.
	entries, err := Glob("*", WithFilesystem(fsys))
	require.NoError(t, err)
	assert.Equal(t, []string{".hidden", "visible.txt"}, drainPaths(t, entries))

	opts := MatchOptions{CaseSensitive: true, RequireLiteralLeadingDot: true}
	entries, err = Glob("*", WithFilesystem(fsys), WithMatchOptions(opts))
	require.NoError(t, err)
	assert.Equal(t, []string{"visible.txt"}, drainPaths(t, entries))
}

func TestGlob_DotPatternMatchesSpecialEntries(t *testing.T) {
	fsys := memFixture(t, ".hidden", "visible.txt")

	// Like the shell, a pattern spelling out the leading dot also matches
	// the . and .. directory entries, which never appear in listings.
	entries, err := Glob(".*", WithFilesystem(fsys))
	require.NoError(t, err)
	assert.Equal(t, []string{"./..", "./.", ".hidden"}, drainPaths(t, entries))
}

func TestGlob_CaseInsensitiveTraversal(t *testing.T) {
	fsys := memFixture(t, "Readme.MD", "main.go")

	opts := MatchOptions{CaseSensitive: false}
	entries, err := Glob("readme.*", WithFilesystem(fsys), WithMatchOptions(opts))
	require.NoError(t, err)
	assert.Equal(t, []string{"Readme.MD"}, drainPaths(t, entries))

	// A pattern with no metacharacters probes the path directly instead of
	// listing the directory, so it stays case-sensitive on a
	// case-sensitive filesystem.
	entries, err = Glob("readme.md", WithFilesystem(fsys), WithMatchOptions(opts))
	require.NoError(t, err)
	assert.Empty(t, drainPaths(t, entries))
}

// lockedFS simulates a tree whose directories exist but cannot be listed.
type lockedFS struct{}

func (lockedFS) IsDir(string) bool  { return true }
func (lockedFS) Exists(string) bool { return true }

func (lockedFS) ReadDir(path string) ([]string, error) {
	return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrPermission}
}

func TestGlob_UnreadableDirectory(t *testing.T) {
	entries, err := Glob("locked/*", WithFilesystem(lockedFS{}))
	require.NoError(t, err)

	_, err = entries.Next()
	require.Error(t, err)

	var gerr *GlobError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "locked", gerr.Path)

	// The original cause stays reachable, and the failure is classified.
	assert.True(t, errors.Is(err, fs.ErrPermission))
	assert.Equal(t, platformerrors.CodeForbidden, platformerrors.GetCode(err))

	// A traversal error does not end the iteration.
	_, err = entries.Next()
	assert.Equal(t, io.EOF, err)
}

// partialFS fails to list one subdirectory but serves the rest from an
// in-memory tree.
type partialFS struct {
	inner  *BillyFS
	broken string
}

func (p partialFS) IsDir(path string) bool  { return p.inner.IsDir(path) }
func (p partialFS) Exists(path string) bool { return p.inner.Exists(path) }

func (p partialFS) ReadDir(path string) ([]string, error) {
	if path == p.broken {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrPermission}
	}
	return p.inner.ReadDir(path)
}

func TestGlob_ContinuesPastUnreadableBranch(t *testing.T) {
	inner := memFixture(t,
		"top/bad/secret.txt",
		"top/good/found.txt",
	)
	fsys := partialFS{inner: inner, broken: "top/bad"}

	entries, err := Glob("top/*/*.txt", WithFilesystem(fsys))
	require.NoError(t, err)

	matched, failed := drain(t, entries)
	require.Len(t, failed, 1)

	var gerr *GlobError
	require.ErrorAs(t, failed[0], &gerr)
	assert.Equal(t, "top/bad", gerr.Path)

	require.Len(t, matched, 1)
	assert.Equal(t, "top/good/found.txt", matched[0].Path())
}

func TestGlob_SkipsInvalidUTF8Names(t *testing.T) {
	fsys := memFixture(t, "ok.txt", "\xff\xfe.txt")

	entries, err := Glob("*.txt", WithFilesystem(fsys))
	require.NoError(t, err)
	assert.Equal(t, []string{"ok.txt"}, drainPaths(t, entries))
}

func TestGlob_EmptyPattern(t *testing.T) {
	fsys := memFixture(t, "a.txt")

	entries, err := Glob("", WithFilesystem(fsys))
	require.NoError(t, err)

	_, err = entries.Next()
	assert.Equal(t, io.EOF, err)
}
