// Package scene provides the hierarchical scene document that meshes,
// skeletons and animations are read from and written to.
package scene

import (
	"fmt"
	"strings"
)

// Path addresses a prim, e.g. "/World/SkelRoot/Skeleton".
type Path string

// Root is the pseudo-root every prim descends from.
const Root Path = "/"

// ParsePath validates s as an absolute prim path.
func ParsePath(s string) (Path, error) {
	if s == string(Root) {
		return Root, nil
	}
	if !strings.HasPrefix(s, "/") || strings.HasSuffix(s, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, s)
	}
	for _, name := range strings.Split(s[1:], "/") {
		if !validName(name) {
			return "", fmt.Errorf("%w: %q", ErrInvalidPath, s)
		}
	}
	return Path(s), nil
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, "/ \t\n")
}

// AppendChild returns the path of the child called name.
func (p Path) AppendChild(name string) Path {
	if p == Root {
		return Path("/" + name)
	}
	return Path(string(p) + "/" + name)
}

// Parent returns the enclosing path. The parent of Root is Root.
func (p Path) Parent() Path {
	i := strings.LastIndexByte(string(p), '/')
	if i <= 0 {
		return Root
	}
	return p[:i]
}

// Name returns the last element of the path.
func (p Path) Name() string {
	if p == Root {
		return ""
	}
	return string(p[strings.LastIndexByte(string(p), '/')+1:])
}

func (p Path) String() string {
	return string(p)
}
