package blocksig

import (
	"strconv"
	"strings"
)

// pathRef builds JSON Pointer paths in a chain-safe way. Each call returns a
// new value, so siblings derived from the same parent never alias.
type pathRef struct {
	parts []string
}

func rootPath() pathRef { return pathRef{} }

func (p pathRef) field(name string) pathRef {
	if name == "" {
		return p
	}
	// escape '~' -> '~0', '/' -> '~1' per RFC6901
	esc := strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
	return pathRef{parts: append(append([]string{}, p.parts...), esc)}
}

func (p pathRef) index(i int) pathRef {
	return pathRef{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

func (p pathRef) pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

func (p pathRef) issue(code, detail string) Issue { return newIssue(p.pointer(), code, detail) }
