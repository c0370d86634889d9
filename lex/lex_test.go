package lex_test

import (
	"testing"

	"github.com/mdcore/mdcore/lex"
	"github.com/mdcore/mdcore/token"
)

func TestTokenizeCoverage(t *testing.T) {
	buf := []byte("# Hello\n\nfoo_bar_baz\n")
	tr := token.NewTree(buf)
	root := lex.Tokenize(tr, buf)

	var covered int
	var walk func(id token.ID)
	walk = func(id token.ID) {
		tr.Siblings(id, func(cid token.ID, tok token.Token) bool {
			if tok.Child != 0 {
				walk(tok.Child)
			} else {
				covered += tok.Len
			}
			return true
		})
	}
	walk(tr.Get(root).Child)

	if covered != len(buf) {
		t.Fatalf("coverage invariant violated: covered %d of %d bytes", covered, len(buf))
	}
}

func TestTokenizeNoTrailingNewline(t *testing.T) {
	buf := []byte("abc")
	tr := token.NewTree(buf)
	root := lex.Tokenize(tr, buf)
	lines := tr.Count(tr.Get(root).Child)
	if lines != 1 {
		t.Fatalf("expected 1 line, got %d", lines)
	}
}

func TestTokenizeEmptyBuffer(t *testing.T) {
	tr := token.NewTree(nil)
	root := lex.Tokenize(tr, nil)
	if tr.Get(root).Child == 0 {
		t.Fatal("expected a single empty line for an empty document")
	}
}

func TestTokenizeHashRun(t *testing.T) {
	buf := []byte("### three\n")
	tr := token.NewTree(buf)
	root := lex.Tokenize(tr, buf)
	first := tr.Get(tr.Get(root).Child).Child
	tok := tr.Get(first)
	if tok.Type != token.Hash(3) {
		t.Fatalf("expected Hash(3), got %v", tok.Type)
	}
}
