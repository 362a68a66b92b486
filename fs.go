package glob

import (
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
)

// FileSystem is the narrow view of a filesystem the traversal engine
// needs. All calls are blocking and happen only inside Entries.Next, never
// eagerly.
type FileSystem interface {
	// IsDir reports whether the path names an existing directory.
	// Non-existence is false, never an error.
	IsDir(path string) bool

	// Exists reports whether the path names an existing file or directory.
	Exists(path string) bool

	// ReadDir returns the names of the children of the directory, in any
	// order.
	ReadDir(path string) ([]string, error)
}

// localFS is the default FileSystem, backed directly by package os so that
// absolute and working-directory-relative scopes behave exactly like the
// host paths they name.
type localFS struct{}

func (localFS) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (localFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (localFS) ReadDir(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.Name()
	}
	return names, nil
}

// BillyFS adapts a go-billy filesystem to the FileSystem interface. It
// lets a traversal run inside in-memory or chrooted trees, and keeps the
// underlying billy.Filesystem reachable for callers that share it with
// go-git or other billy consumers.
type BillyFS struct {
	bfs billy.Filesystem
}

// NewBillyFS wraps an existing billy.Filesystem.
func NewBillyFS(bfs billy.Filesystem) *BillyFS {
	return &BillyFS{bfs: bfs}
}

// NewMemoryFS creates an empty in-memory filesystem. It is the natural
// fixture for hermetic traversal tests.
func NewMemoryFS() *BillyFS {
	return &BillyFS{bfs: memfs.New()}
}

// NewRootedFS creates a local filesystem chrooted at dir. Paths handed to
// the traversal are then relative to dir and cannot escape it.
func NewRootedFS(dir string) *BillyFS {
	return &BillyFS{bfs: osfs.New(dir)}
}

// Unwrap returns the underlying billy.Filesystem.
func (b *BillyFS) Unwrap() billy.Filesystem {
	return b.bfs
}

// IsDir reports whether the path names an existing directory.
func (b *BillyFS) IsDir(path string) bool {
	info, err := b.bfs.Stat(path)
	return err == nil && info.IsDir()
}

// Exists reports whether the path names an existing file or directory.
func (b *BillyFS) Exists(path string) bool {
	_, err := b.bfs.Stat(path)
	return err == nil
}

// ReadDir returns the names of the children of the directory.
func (b *BillyFS) ReadDir(path string) ([]string, error) {
	infos, err := b.bfs.ReadDir(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name()
	}
	return names, nil
}

// Compile-time interface checks.
var (
	_ FileSystem = localFS{}
	_ FileSystem = (*BillyFS)(nil)
)
