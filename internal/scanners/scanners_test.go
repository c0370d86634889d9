package scanners

import "testing"

func TestDelimiter(t *testing.T) {
	delim, width, tail := Delimiter([]byte("### heading"), 6, '#')
	if delim != '#' || width != 3 || string(tail) != " heading" {
		t.Fatalf("got %q %d %q", delim, width, tail)
	}
	if delim, _, _ := Delimiter([]byte("####### too many"), 6, '#'); delim != 0 {
		t.Fatalf("expected no match past maxWidth, got %q", delim)
	}
}

func TestOrdinal(t *testing.T) {
	delim, width, tail := Ordinal([]byte("12. item"))
	if delim != '.' || width != 3 || string(tail) != " item" {
		t.Fatalf("got %q %d %q", delim, width, tail)
	}
}

func TestFenceStartEnd(t *testing.T) {
	delim, width, info, ok := FenceStart([]byte("```go\n"))
	if !ok || delim != '`' || width != 3 || string(info) != "go" {
		t.Fatalf("got %q %d %q %v", delim, width, info, ok)
	}
	if !FenceEnd([]byte("```\n"), '`', 3) {
		t.Fatal("expected close to match")
	}
	if FenceEnd([]byte("``\n"), '`', 3) {
		t.Fatal("short fence should not close")
	}
}

func TestRuler(t *testing.T) {
	rule, width, _ := Ruler([]byte("- - -"), '-', '_', '*')
	if rule != '-' || width != 5 {
		t.Fatalf("got %q %d", rule, width)
	}
	if rule, _, _ := Ruler([]byte("--"), '-'); rule != 0 {
		t.Fatal("two dashes should not be a ruler")
	}
}

func TestQuoteMarker(t *testing.T) {
	delim, width, cont := QuoteMarker([]byte("> quoted"))
	if delim != '>' || width != 2 || string(cont) != "quoted" {
		t.Fatalf("got %q %d %q", delim, width, cont)
	}
}

func TestListMarker(t *testing.T) {
	delim, width, cont := ListMarker([]byte("- item"))
	if delim != '-' || width != 2 || string(cont) != "item" {
		t.Fatalf("got %q %d %q", delim, width, cont)
	}
	delim, width, cont = ListMarker([]byte("1. item"))
	if delim != '.' || width != 3 || string(cont) != "item" {
		t.Fatalf("got %q %d %q", delim, width, cont)
	}
}

func TestHTMLBlock(t *testing.T) {
	if !HTMLBlock([]byte("<div>\n")) {
		t.Fatal("expected <div> to open an HTML block")
	}
	if HTMLBlock([]byte("<span>inline</span>\n")) {
		t.Fatal("span is not a block tag")
	}
	if !HTMLBlock([]byte("<!-- comment -->\n")) {
		t.Fatal("expected comment to open an HTML block")
	}
}

func TestHTMLLine(t *testing.T) {
	if !HTMLLine([]byte("<br/>\n")) {
		t.Fatal("expected self-closed tag to match")
	}
	if !HTMLLine([]byte("</div>\n")) {
		t.Fatal("expected closing tag to match")
	}
	if HTMLLine([]byte("not a tag\n")) {
		t.Fatal("plain text should not match")
	}
}

func TestURL(t *testing.T) {
	if n := URL([]byte("https://example.com/path more text")); n != len("https://example.com/path") {
		t.Fatalf("got %d", n)
	}
	if n := URL([]byte("not a url")); n != 0 {
		t.Fatalf("expected 0, got %d", n)
	}
}

func TestMetaKey(t *testing.T) {
	if n := MetaKey([]byte("Title: My Document\n")); n != len("Title") {
		t.Fatalf("got %d", n)
	}
	if n := MetaKey([]byte(": missing key\n")); n != 0 {
		t.Fatalf("expected 0, got %d", n)
	}
	if n := MetaKey([]byte("not metadata at all\n")); n != 0 {
		t.Fatalf("expected 0, got %d", n)
	}
}

func TestRefLink(t *testing.T) {
	n := RefLink([]byte("[id]: http://example.com \"title\"\nnext"))
	if n != len("[id]: http://example.com \"title\"\n") {
		t.Fatalf("got %d", n)
	}
}

func TestRefCitationAndFoot(t *testing.T) {
	if n := RefCitation([]byte("[#doe99]: citation text\n")); n == 0 {
		t.Fatal("expected citation match")
	}
	if n := RefFoot([]byte("[^1]: footnote text\n")); n == 0 {
		t.Fatal("expected footnote match")
	}
	if n := RefFoot([]byte("[1]: not a footnote\n")); n != 0 {
		t.Fatalf("expected no match, got %d", n)
	}
}
