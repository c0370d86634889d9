package classify_test

import (
	"testing"

	"github.com/mdcore/mdcore/classify"
	"github.com/mdcore/mdcore/lex"
	"github.com/mdcore/mdcore/token"
)

func classifyAll(buf []byte, cfg classify.Config) (*token.Tree, token.ID) {
	tr := token.NewTree(buf)
	root := lex.Tokenize(tr, buf)
	allowMeta := true
	tr.Siblings(tr.Get(root).Child, func(id token.ID, _ token.Token) bool {
		allowMeta = classify.Line(tr, id, cfg, allowMeta)
		return true
	})
	return tr, root
}

func lineTypes(tr *token.Tree, root token.ID) []token.Type {
	var types []token.Type
	tr.Siblings(tr.Get(root).Child, func(id token.ID, t token.Token) bool {
		types = append(types, t.Type)
		return true
	})
	return types
}

func TestClassifyATXHeading(t *testing.T) {
	tr, root := classifyAll([]byte("## Title\n"), classify.Config{})
	types := lineTypes(tr, root)
	if len(types) != 1 || types[0] != token.LineATX2 {
		t.Fatalf("got %v", types)
	}
	marker := tr.Get(tr.Get(tr.Get(root).Child).Child)
	if marker.Type != token.MarkerH2 || marker.Len != 2 {
		t.Fatalf("got marker %v", marker)
	}
}

func TestClassifyEmpty(t *testing.T) {
	tr, root := classifyAll([]byte("\n"), classify.Config{})
	types := lineTypes(tr, root)
	if len(types) != 1 || types[0] != token.LineEmpty {
		t.Fatalf("got %v", types)
	}
}

func TestClassifyBlockquote(t *testing.T) {
	tr, root := classifyAll([]byte("> quoted\n"), classify.Config{})
	types := lineTypes(tr, root)
	if types[0] != token.LineBlockquote {
		t.Fatalf("got %v", types)
	}
	marker := tr.Get(tr.Get(tr.Get(root).Child).Child)
	if marker.Type != token.MarkerBlockquote {
		t.Fatalf("got %v", marker.Type)
	}
}

func TestClassifyHR(t *testing.T) {
	tr, root := classifyAll([]byte("---\n"), classify.Config{})
	if types := lineTypes(tr, root); types[0] != token.LineHR {
		t.Fatalf("got %v", types)
	}
}

func TestClassifyBulletedList(t *testing.T) {
	tr, root := classifyAll([]byte("- item\n"), classify.Config{})
	if types := lineTypes(tr, root); types[0] != token.LineListBulleted {
		t.Fatalf("got %v", types)
	}
}

func TestClassifyMetadata(t *testing.T) {
	tr, root := classifyAll([]byte("Title: My Doc\nBody.\n"), classify.Config{})
	types := lineTypes(tr, root)
	if types[0] != token.LineMeta {
		t.Fatalf("got %v", types)
	}
}

func TestClassifyTablePostCheck(t *testing.T) {
	tr, root := classifyAll([]byte("a|b\n"), classify.Config{})
	if types := lineTypes(tr, root); types[0] != token.LineTable {
		t.Fatalf("got %v", types)
	}
}

func TestClassifyCompatibilityDisablesMeta(t *testing.T) {
	tr, root := classifyAll([]byte("Title: My Doc\n"), classify.Config{Compatibility: true})
	if types := lineTypes(tr, root); types[0] != token.LinePlain {
		t.Fatalf("got %v", types)
	}
}
