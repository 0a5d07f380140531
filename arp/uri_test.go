package arp

import "testing"

func TestResolveURI(t *testing.T) {
	const base = "http://a/b/c/d;p?q"
	tests := []struct {
		ref  string
		want string
	}{
		{"g", "http://a/b/c/g"},
		{"./g", "http://a/b/c/g"},
		{"g/", "http://a/b/c/g/"},
		{"/g", "http://a/g"},
		{"//g", "http://g"},
		{"?y", "http://a/b/c/d;p?y"},
		{"g?y", "http://a/b/c/g?y"},
		{"#s", "http://a/b/c/d;p?q#s"},
		{"", "http://a/b/c/d;p?q"},
		{"../g", "http://a/b/g"},
		{"../../g", "http://a/g"},
		{"../../../g", "http://a/g"},
		{"g;x=1/../y", "http://a/b/c/y"},
		{"http://x/./y", "http://x/y"},
	}
	for _, tt := range tests {
		if got := resolveURI(base, tt.ref); got != tt.want {
			t.Errorf("resolveURI(%q): got %q, want %q", tt.ref, got, tt.want)
		}
	}
}

func TestResolveURIKeepsNonASCII(t *testing.T) {
	got := resolveURI("http://example.org/dir/", "caf\u00e9")
	if got != "http://example.org/dir/caf\u00e9" {
		t.Fatalf("got %q", got)
	}
}

func TestHasURIScheme(t *testing.T) {
	tests := map[string]bool{
		"http://example.org/": true,
		"mailto:a@b":          true,
		"urn:x":               true,
		"x":                   false,
		"1http:x":             false,
		"#frag":               false,
		"/a:b":                false,
	}
	for in, want := range tests {
		if got := hasURIScheme(in); got != want {
			t.Errorf("hasURIScheme(%q): got %v, want %v", in, got, want)
		}
	}
}

func TestValidateURIRef(t *testing.T) {
	valid := []string{
		"http://example.org/a",
		"#frag",
		"",
		"http://example.org/%20",
		"http://example.org/caf\u00e9",
	}
	for _, s := range valid {
		if err := validateURIRef(s); err != nil {
			t.Errorf("validateURIRef(%q): unexpected error %v", s, err)
		}
	}
	invalid := []string{
		"http://example.org/a b",
		"http://example.org/%zz",
		"a#b#c",
		"http://example.org/<x>",
		"http://example.org/\u0007",
	}
	for _, s := range invalid {
		if err := validateURIRef(s); err == nil {
			t.Errorf("validateURIRef(%q): expected error", s)
		}
	}
}

func TestClassifyBase(t *testing.T) {
	tests := []struct {
		base string
		kind baseKind
		want string
	}{
		{"", baseEmpty, ""},
		{"doc/a", baseRelative, "doc/a"},
		{"http://exa mple/", baseMalformed, "http://exa mple/"},
		{"http://example.org/doc#top", baseAbsolute, "http://example.org/doc"},
	}
	for _, tt := range tests {
		got := classifyBase(tt.base)
		if got.kind != tt.kind || got.base != tt.want {
			t.Errorf("classifyBase(%q): got %+v", tt.base, got)
		}
	}
}
