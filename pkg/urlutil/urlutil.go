package urlutil

import "strings"

// JoinOrigin builds the absolute URL for a route pathname.
// It joins origin and pathname with a single "/" and collapses any run of
// slashes that the join produces, so that "/" and "" both map to origin + "/"
// and "/foo", "foo" and "//foo" all map to origin + "/foo".
//
// The result is the cache key for the page. Every component that reads or
// writes the page cache must build keys through this function.
//
// Only the path part is normalized; the "//" after the scheme is preserved.
func JoinOrigin(origin string, pathname string) string {
	base := stripTrailingSlash(origin)
	return base + "/" + collapseSlashes(strings.TrimLeft(pathname, "/"))
}

// collapseSlashes replaces every run of "/" with a single "/".
func collapseSlashes(path string) string {
	if !strings.Contains(path, "//") {
		return path
	}
	var b strings.Builder
	b.Grow(len(path))
	prevSlash := false
	for i := 0; i < len(path); i++ {
		c := path[i]
		if c == '/' {
			if prevSlash {
				continue
			}
			prevSlash = true
		} else {
			prevSlash = false
		}
		b.WriteByte(c)
	}
	return b.String()
}

// stripTrailingSlash removes trailing slashes from a string.
func stripTrailingSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
