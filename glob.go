package glob

import (
	"io"
	"sort"
	"strings"
	"unicode/utf8"
)

// Option configures a traversal started by Glob.
type Option func(*config)

type config struct {
	options MatchOptions
	fsys    FileSystem
}

// WithMatchOptions sets the match options used for every comparison during
// the traversal and for the final capture extraction.
func WithMatchOptions(opts MatchOptions) Option {
	return func(c *config) {
		c.options = opts
	}
}

// WithFilesystem sets the filesystem the traversal reads from. The default
// is the host filesystem; NewMemoryFS and NewRootedFS provide billy-backed
// alternatives.
func WithFilesystem(fsys FileSystem) Option {
	return func(c *config) {
		c.fsys = fsys
	}
}

// sentinelIndex marks a todo item whose path was already fully verified by
// fillTodo (a literal component resolved with a metadata probe), so Next
// returns it without re-matching. Only the trailing directory requirement
// is still checked.
const sentinelIndex = -1

// todoItem is one unit of pending traversal work: a candidate path and the
// component it must be matched against next, or a propagated directory
// read error.
type todoItem struct {
	path string
	idx  int
	err  *GlobError
}

// Entries lazily enumerates the filesystem paths matching a pattern. Each
// successful item carries the capture groups extracted from the matched
// path. Obtain one from Glob and drain it with Next; a fresh traversal
// requires a fresh Entries.
//
// An Entries is single-threaded state and must not be shared between
// goroutines without external synchronization.
type Entries struct {
	wholePattern *Pattern
	dirPatterns  []*Pattern
	requireDir   bool
	options      MatchOptions
	fsys         FileSystem

	todo    []todoItem
	scope   string
	started bool
}

// Glob starts a lazy traversal producing all paths that match the pattern,
// which may be absolute or relative to the current working directory.
// Entries are yielded in alphabetical path order.
//
// Compilation problems surface immediately as *PatternError. Directories
// that cannot be read during the traversal do not stop it: each failure is
// reported by Next as a *GlobError item, and iteration continues with the
// remaining branches.
//
//	entries, err := glob.Glob("/media/pictures/(*).jpg")
//	if err != nil {
//	    return err
//	}
//	for {
//	    entry, err := entries.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        continue // unreadable directory
//	    }
//	    stem, _ := entry.Group(1)
//	    fmt.Println(entry.Path(), stem)
//	}
func Glob(pattern string, opts ...Option) (*Entries, error) {
	cfg := config{
		options: DefaultMatchOptions(),
		fsys:    localFS{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	// A trailing separator means the result must be a directory, but the
	// real path of a directory has no trailing slash, so it is stripped
	// before compilation.
	txt := pattern
	requireDir := false
	if r, n := utf8.DecodeLastRuneInString(txt); n > 0 && isSeparator(r) {
		requireDir = true
		txt = txt[:len(txt)-n]
	}
	// Similarly `./x` matches at the current directory, where the real
	// path is just `x`.
	if strings.HasPrefix(txt, ".") {
		if r, n := utf8.DecodeRuneInString(txt[1:]); n > 0 && isSeparator(r) {
			txt = txt[1+n:]
		}
	}

	whole, err := Compile(txt)
	if err != nil {
		return nil, err
	}

	// Split a root prefix off as the traversal scope; the remaining
	// components are compiled individually, captures suppressed, for the
	// per-level decisions during the walk.
	rootLen := 0
	for rootLen < len(pattern) {
		r, n := utf8.DecodeRuneInString(pattern[rootLen:])
		if !isSeparator(r) {
			break
		}
		rootLen += n
	}
	scope := "."
	if rootLen > 0 {
		scope = pattern[:rootLen]
	}

	var dirPatterns []*Pattern
	for _, component := range splitComponents(pattern[rootLen:]) {
		compiled, err := compile(component, true)
		if err != nil {
			return nil, err
		}
		dirPatterns = append(dirPatterns, compiled)
	}
	if rootLen == len(pattern) {
		// A pattern that is nothing but a root still needs one terminal
		// component so the traversal can resolve and stop.
		dirPatterns = append(dirPatterns, &Pattern{})
	}

	return &Entries{
		wholePattern: whole,
		dirPatterns:  dirPatterns,
		requireDir:   requireDir,
		options:      cfg.options,
		fsys:         cfg.fsys,
		scope:        scope,
	}, nil
}

// splitComponents splits a pattern remainder on path separators, keeping
// interior empty segments and dropping a trailing one.
func splitComponents(s string) []string {
	var components []string
	start := 0
	for i, r := range s {
		if isSeparator(r) {
			components = append(components, s[start:i])
			start = i + utf8.RuneLen(r)
		}
	}
	if start < len(s) {
		components = append(components, s[start:])
	}
	return components
}

// joinPath joins a parent path and a child name without cleaning the
// result: literal `.` and `..` components must survive as written.
func joinPath(dir, name string) string {
	if strings.HasSuffix(dir, "/") {
		return dir + name
	}
	return dir + "/" + name
}

// baseName returns the final path component.
func baseName(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if isSeparator(rune(path[i])) {
			return path[i+1:]
		}
	}
	return path
}

// Next returns the next match or traversal error, and io.EOF once the
// enumeration is exhausted. A returned *GlobError is non-fatal: it
// describes one unreadable directory, and further calls continue with the
// rest of the tree.
func (es *Entries) Next() (*Entry, error) {
	// The todo stack is seeded on the first pull rather than in Glob so
	// that a failure to read the scope is reported as an iteration item;
	// Glob itself only fails on pattern compilation.
	if !es.started {
		es.started = true
		if len(es.dirPatterns) > 0 {
			es.fillTodo(0, es.scope)
		}
	}

	for {
		if len(es.dirPatterns) == 0 || len(es.todo) == 0 {
			return nil, io.EOF
		}

		item := es.todo[len(es.todo)-1]
		es.todo = es.todo[:len(es.todo)-1]
		if item.err != nil {
			return nil, item.err
		}
		path, idx := item.path, item.idx

		// Pre-verified by fillTodo, possibly a `.` or `..` path that the
		// per-component match below could not handle; only the trailing
		// directory requirement remains.
		if idx == sentinelIndex {
			if es.requireDir && !es.fsys.IsDir(path) {
				continue
			}
			return newEntry(path), nil
		}

		if es.dirPatterns[idx].isRecursive {
			next := idx
			// Merge consecutive recursive wildcard components.
			for next+1 < len(es.dirPatterns) && es.dirPatterns[next+1].isRecursive {
				next++
			}

			if es.fsys.IsDir(path) {
				// Continue matching the children at the component after
				// the merged run, at any depth.
				es.fillTodo(next, path)

				if next == len(es.dirPatterns)-1 {
					// The pattern ends in `**`, so the directory itself
					// is a match.
					return newEntry(path), nil
				}
				idx = next + 1
			} else if next != len(es.dirPatterns)-1 {
				idx = next + 1
			} else {
				// Not a directory and `**` is the last component: no
				// match down this branch.
				continue
			}
		}

		name := baseName(path)
		if !utf8.ValidString(name) {
			// The matcher works on text; names it cannot represent are
			// skipped, not errored.
			continue
		}
		if es.dirPatterns[idx].MatchesWith(name, es.options) {
			if idx == len(es.dirPatterns)-1 {
				// A pattern cannot match both a directory and its
				// children, so there is nothing to descend into.
				if !es.requireDir || es.fsys.IsDir(path) {
					entry, ok := es.wholePattern.CapturesWith(path, es.options)
					if !ok {
						panic("glob: component patterns inconsistent with whole pattern")
					}
					return entry, nil
				}
			} else {
				es.fillTodo(idx+1, path)
			}
		}
	}
}

// fillTodo pushes the candidates under path that component idx must
// examine next. Literal components are resolved with a single metadata
// probe instead of a directory read; everything else lists the directory
// and pushes the children in reverse name order, so that the LIFO stack
// pops them alphabetically.
func (es *Entries) fillTodo(idx int, path string) {
	pattern := es.dirPatterns[idx]
	curdir := path == "."

	add := func(nextPath string) {
		if idx+1 == len(es.dirPatterns) {
			// Already known good; don't make Next match it again. In
			// particular `.` and `..` would never survive the name match.
			es.todo = append(es.todo, todoItem{path: nextPath, idx: sentinelIndex})
		} else {
			es.fillTodo(idx+1, nextPath)
		}
	}

	if lit, ok := pattern.literal(); ok {
		// No metacharacters, so the one possible child is checked
		// directly instead of reading the whole directory.
		special := lit == "." || lit == ".."
		nextPath := lit
		if !curdir {
			nextPath = joinPath(path, lit)
		}
		// The empty path never names anything, regardless of what a
		// lenient filesystem implementation makes of it.
		if nextPath == "" {
			return
		}
		if (special && es.fsys.IsDir(path)) || (!special && es.fsys.Exists(nextPath)) {
			add(nextPath)
		}
		return
	}

	if !es.fsys.IsDir(path) {
		return
	}

	names, err := es.fsys.ReadDir(path)
	if err != nil {
		es.todo = append(es.todo, todoItem{err: &GlobError{
			Path: path,
			Err:  classifyReadError(err),
		}})
		return
	}

	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	for _, name := range names {
		child := name
		if !curdir {
			child = joinPath(path, name)
		}
		es.todo = append(es.todo, todoItem{path: child, idx: idx})
	}

	// `.` and `..` never appear in directory listings; they are matched
	// only when the component pattern spells out the leading dot,
	// independent of the RequireLiteralLeadingDot option.
	if len(pattern.tokens) > 0 && pattern.tokens[0].kind == tokenLiteral && pattern.tokens[0].ch == '.' {
		for _, special := range []string{".", ".."} {
			if pattern.MatchesWith(special, es.options) {
				add(joinPath(path, special))
			}
		}
	}
}
