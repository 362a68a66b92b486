package glob

// Entry is one match result: the matched path together with the byte
// offset pairs of every capture group. Offsets always land on UTF-8
// boundaries because the matcher records them at rune boundaries it
// visited.
type Entry struct {
	path   string
	groups [][2]int
}

// newEntry builds an Entry with no parenthesized captures, only the
// implicit whole-path group 0. The traversal engine uses it for paths it
// verified without a capturing re-match.
func newEntry(path string) *Entry {
	return &Entry{path: path, groups: [][2]int{{0, len(path)}}}
}

// Path returns the matched path.
func (e *Entry) Path() string {
	return e.path
}

// Group returns the text of capture group n. Group 0 is the whole path;
// parenthesized groups are numbered from 1 in order of their opening
// parenthesis. The second result is false when the entry has no group n.
func (e *Entry) Group(n int) (string, bool) {
	if n < 0 || n >= len(e.groups) {
		return "", false
	}
	g := e.groups[n]
	return e.path[g[0]:g[1]], true
}

// GroupRange returns the byte offsets [start, end) of capture group n
// within Path. The third result is false when the entry has no group n.
func (e *Entry) GroupRange(n int) (start, end int, ok bool) {
	if n < 0 || n >= len(e.groups) {
		return 0, 0, false
	}
	return e.groups[n][0], e.groups[n][1], true
}

// NumGroups returns the number of groups carried by the entry, including
// the implicit whole-path group 0.
func (e *Entry) NumGroups() int {
	return len(e.groups)
}

// String returns the matched path.
func (e *Entry) String() string {
	return e.path
}
