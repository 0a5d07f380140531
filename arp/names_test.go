package arp

import "testing"

func TestIsNCName(t *testing.T) {
	tests := map[string]bool{
		"a":        true,
		"_x":       true,
		"a-b.c":    true,
		"\u00e9":   true,
		"a\u00b7b": true,
		"":         false,
		"1a":       false,
		"-a":       false,
		"a:b":      false,
		"a b":      false,
	}
	for in, want := range tests {
		if got := isNCName(in); got != want {
			t.Errorf("isNCName(%q): got %v, want %v", in, got, want)
		}
	}
}

func TestIsQNameLike(t *testing.T) {
	tests := map[string]bool{
		"ex:b":   true,
		"ex:":    false,
		":b":     false,
		"b":      false,
		"a:b:c":  false,
		"ex:1b":  false,
		"x_1:y2": true,
	}
	for in, want := range tests {
		if got := isQNameLike(in); got != want {
			t.Errorf("isQNameLike(%q): got %v, want %v", in, got, want)
		}
	}
}

func TestIsMemberName(t *testing.T) {
	tests := map[string]bool{
		"_1":   true,
		"_10":  true,
		"_0":   false,
		"_01":  false,
		"_":    false,
		"_1a":  false,
		"li":   false,
		"x_12": false,
	}
	for in, want := range tests {
		if got := isMemberName(in); got != want {
			t.Errorf("isMemberName(%q): got %v, want %v", in, got, want)
		}
	}
}

func TestClassifyLang(t *testing.T) {
	tests := []struct {
		tag  string
		want langStatus
	}{
		{"", langOK},
		{"en", langOK},
		{"en-GB", langOK},
		{"123456789", langMalformed},
		{"en--GB", langMalformed},
		{"iw", langDeprecated},
	}
	for _, tt := range tests {
		if got, detail := classifyLang(tt.tag); got != tt.want {
			t.Errorf("classifyLang(%q): got %d (%s), want %d", tt.tag, got, detail, tt.want)
		}
	}
}

func TestCharacterModelChecks(t *testing.T) {
	if !checkNFC("caf\u00e9") {
		t.Error("precomposed text must be NFC")
	}
	if checkNFC("cafe\u0301") {
		t.Error("decomposed text must not be NFC")
	}
	if !startsWithComposingChar("\u0301x") {
		t.Error("combining acute must be reported as composing")
	}
	if startsWithComposingChar("x\u0301") || startsWithComposingChar("") {
		t.Error("only a leading composing character counts")
	}
}

func TestCheckStringReportsConditions(t *testing.T) {
	rec := parseDoc(t, rdfDoc(`<rdf:Description rdf:about="http://example.org/s"><ex:p>cafe&#x301;</ex:p></rdf:Description>`), OptBase(testBase))
	want := []string{"warning WARN_STRING_NOT_NORMAL_FORM_C"}
	if got := rec.diagnostics(); len(got) != 1 || got[0] != want[0] {
		t.Fatalf("got %v, want %v", got, want)
	}
}
