package arp

import "strings"

// uriRef is a URI reference split into its RFC 3986 components.
type uriRef struct {
	scheme       string
	authority    string
	path         string
	query        string
	fragment     string
	hasScheme    bool
	hasAuthority bool
	hasQuery     bool
	hasFragment  bool
}

func splitURI(s string) uriRef {
	var u uriRef
	if i := strings.IndexByte(s, '#'); i >= 0 {
		u.fragment = s[i+1:]
		u.hasFragment = true
		s = s[:i]
	}
	if i := strings.IndexByte(s, '?'); i >= 0 {
		u.query = s[i+1:]
		u.hasQuery = true
		s = s[:i]
	}
	if scheme, rest, ok := cutScheme(s); ok {
		u.scheme = scheme
		u.hasScheme = true
		s = rest
	}
	if strings.HasPrefix(s, "//") {
		s = s[2:]
		u.hasAuthority = true
		if i := strings.IndexByte(s, '/'); i >= 0 {
			u.authority = s[:i]
			s = s[i:]
		} else {
			u.authority = s
			s = ""
		}
	}
	u.path = s
	return u
}

// cutScheme splits a leading "scheme:" off s.
func cutScheme(s string) (scheme, rest string, ok bool) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		case i > 0 && c == ':':
			return s[:i], s[i+1:], true
		default:
			return "", s, false
		}
	}
	return "", s, false
}

func (u uriRef) String() string {
	var b strings.Builder
	if u.hasScheme {
		b.WriteString(u.scheme)
		b.WriteByte(':')
	}
	if u.hasAuthority {
		b.WriteString("//")
		b.WriteString(u.authority)
	}
	b.WriteString(u.path)
	if u.hasQuery {
		b.WriteByte('?')
		b.WriteString(u.query)
	}
	if u.hasFragment {
		b.WriteByte('#')
		b.WriteString(u.fragment)
	}
	return b.String()
}

// hasURIScheme reports whether s is an absolute URI reference.
func hasURIScheme(s string) bool {
	_, _, ok := cutScheme(s)
	return ok
}

// stripFragment removes the fragment of s, if any.
func stripFragment(s string) string {
	if i := strings.IndexByte(s, '#'); i >= 0 {
		return s[:i]
	}
	return s
}

// resolveURI resolves ref against base following RFC 3986 section 5.2.
// It works on strings only, so characters outside the URI repertoire are
// kept as written. A base without scheme is resolved syntactically.
func resolveURI(base, ref string) string {
	r := splitURI(ref)
	if r.hasScheme {
		r.path = removeDotSegments(r.path)
		return r.String()
	}
	b := splitURI(base)
	var t uriRef
	t.scheme, t.hasScheme = b.scheme, b.hasScheme
	switch {
	case r.hasAuthority:
		t.authority, t.hasAuthority = r.authority, true
		t.path = removeDotSegments(r.path)
		t.query, t.hasQuery = r.query, r.hasQuery
	case r.path == "":
		t.authority, t.hasAuthority = b.authority, b.hasAuthority
		t.path = b.path
		if r.hasQuery {
			t.query, t.hasQuery = r.query, true
		} else {
			t.query, t.hasQuery = b.query, b.hasQuery
		}
	default:
		t.authority, t.hasAuthority = b.authority, b.hasAuthority
		if strings.HasPrefix(r.path, "/") {
			t.path = removeDotSegments(r.path)
		} else {
			t.path = removeDotSegments(mergePaths(b, r.path))
		}
		t.query, t.hasQuery = r.query, r.hasQuery
	}
	t.fragment, t.hasFragment = r.fragment, r.hasFragment
	return t.String()
}

func mergePaths(base uriRef, ref string) string {
	if base.hasAuthority && base.path == "" {
		return "/" + ref
	}
	if i := strings.LastIndexByte(base.path, '/'); i >= 0 {
		return base.path[:i+1] + ref
	}
	return ref
}

// removeDotSegments implements RFC 3986 section 5.2.4.
func removeDotSegments(path string) string {
	if !strings.Contains(path, ".") {
		return path
	}
	in := path
	out := make([]string, 0, strings.Count(path, "/")+1)
	for in != "" {
		switch {
		case strings.HasPrefix(in, "../"):
			in = in[3:]
		case strings.HasPrefix(in, "./"):
			in = in[2:]
		case strings.HasPrefix(in, "/./"):
			in = in[2:]
		case in == "/.":
			in = "/"
		case strings.HasPrefix(in, "/../"):
			in = in[3:]
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		case in == "/..":
			in = "/"
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		case in == "." || in == "..":
			in = ""
		default:
			start := 0
			if in[0] == '/' {
				start = 1
			}
			end := strings.IndexByte(in[start:], '/')
			if end < 0 {
				end = len(in)
			} else {
				end += start
			}
			out = append(out, in[:end])
			in = in[end:]
		}
	}
	return strings.Join(out, "")
}
