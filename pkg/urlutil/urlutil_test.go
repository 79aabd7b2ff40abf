package urlutil

import (
	"testing"
)

func TestJoinOrigin(t *testing.T) {
	tests := []struct {
		name     string
		origin   string
		pathname string
		expected string
	}{
		{
			name:     "absolute pathname",
			origin:   "http://foo.com",
			pathname: "/foo",
			expected: "http://foo.com/foo",
		},
		{
			name:     "relative pathname",
			origin:   "http://foo.com",
			pathname: "foo",
			expected: "http://foo.com/foo",
		},
		{
			name:     "root pathname",
			origin:   "http://foo.com",
			pathname: "/",
			expected: "http://foo.com/",
		},
		{
			name:     "empty pathname",
			origin:   "http://foo.com",
			pathname: "",
			expected: "http://foo.com/",
		},
		{
			name:     "origin with trailing slash",
			origin:   "http://foo.com/",
			pathname: "/foo",
			expected: "http://foo.com/foo",
		},
		{
			name:     "duplicate slashes inside pathname",
			origin:   "https://docs.example.com",
			pathname: "//guide//intro/",
			expected: "https://docs.example.com/guide/intro/",
		},
		{
			name:     "scheme separator preserved",
			origin:   "https://docs.example.com:8443",
			pathname: "/a/b",
			expected: "https://docs.example.com:8443/a/b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := JoinOrigin(tt.origin, tt.pathname)
			if result != tt.expected {
				t.Errorf("JoinOrigin(%q, %q) = %q, want %q", tt.origin, tt.pathname, result, tt.expected)
			}
		})
	}
}

func TestJoinOrigin_EquivalentSpellingsShareKey(t *testing.T) {
	spellings := []string{"/foo", "foo", "//foo", "///foo"}
	want := JoinOrigin("http://foo.com", spellings[0])
	for _, s := range spellings[1:] {
		if got := JoinOrigin("http://foo.com", s); got != want {
			t.Errorf("JoinOrigin for %q = %q, want %q", s, got, want)
		}
	}
}
