package mdcore_test

import (
	"strings"
	"testing"

	"github.com/mdcore/mdcore"
	"github.com/mdcore/mdcore/token"
)

// outline renders a terse "Type[Type Type[...]]" sketch of the block tree,
// skipping line/inline tokens, matching blockgrammar_test's helper of the
// same name.
func outline(tr *token.Tree, id token.ID) string {
	t := tr.Get(id)
	var kids []string
	tr.Siblings(t.Child, func(cid token.ID, c token.Token) bool {
		if c.Type >= token.BlockPara && c.Type <= token.RowTable {
			kids = append(kids, outline(tr, cid))
		}
		return true
	})
	if len(kids) == 0 {
		return t.Type.String()
	}
	return t.Type.String() + "[" + strings.Join(kids, " ") + "]"
}

// leafText concatenates the source bytes of every leaf token reachable from
// id, in order — used for the "round-trip of plain text" property (spec §8
// invariant 5).
func leafText(tr *token.Tree, id token.ID) string {
	var sb strings.Builder
	var walk func(token.ID)
	walk = func(id token.ID) {
		tr.Siblings(id, func(cid token.ID, t token.Token) bool {
			if t.Child != 0 {
				walk(t.Child)
			} else {
				sb.Write(tr.Bytes(cid))
			}
			return true
		})
	}
	walk(id)
	return sb.String()
}

// --- scenario 1: ATX heading ---

func TestScenarioATXHeading(t *testing.T) {
	e := mdcore.New([]byte("# Hello\n"), 0)
	root := e.Parse()
	tr := e.Tree()

	if got, want := outline(tr, root), "DocStartToken[BlockH1]"; got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
	h1 := tr.Get(root).Child
	marker := tr.Get(h1).Child
	if tr.Get(marker).Type != token.MarkerH1 {
		t.Fatalf("expected first child to be MarkerH1, got %v", tr.Get(marker).Type)
	}
	if got, want := tr.Text(marker), "#"; got != want {
		t.Fatalf("marker text = %q, want %q", got, want)
	}
}

// --- scenario 2: blockquote, markers stripped, recursively reparsed ---

func TestScenarioBlockquoteStripsMarkers(t *testing.T) {
	e := mdcore.New([]byte("> a\n> b\n"), 0)
	root := e.Parse()
	tr := e.Tree()

	if got, want := outline(tr, root), "DocStartToken[BlockBlockquote[BlockPara]]"; got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
	bq := tr.Get(root).Child
	para := tr.Get(bq).Child
	if got, want := leafText(tr, para), "a\nb\n"; got != want {
		t.Fatalf("blockquote body = %q, want %q (markers must be stripped)", got, want)
	}
}

// --- scenario 3: tight bulleted list ---

func TestScenarioTightList(t *testing.T) {
	e := mdcore.New([]byte("- one\n- two\n\n"), 0)
	root := e.Parse()
	tr := e.Tree()

	want := "DocStartToken[BlockListBulleted[BlockListItemTight BlockListItemTight]]"
	if got := outline(tr, root); got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

// --- scenario 4: loose bulleted list ---

func TestScenarioLooseList(t *testing.T) {
	e := mdcore.New([]byte("- one\n\n- two\n"), 0)
	root := e.Parse()
	tr := e.Tree()

	want := "DocStartToken[BlockListBulletedLoose[BlockListItem[BlockPara] BlockListItem[BlockPara]]]"
	if got := outline(tr, root); got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

// --- scenario 5: strong across a paragraph, mates linked ---

func TestScenarioStrongMatesLinked(t *testing.T) {
	e := mdcore.New([]byte("**a** b"), 0)
	root := e.Parse()
	tr := e.Tree()

	para := tr.Get(root).Child
	start := tr.Get(para).Child
	if tr.Get(start).Type != token.StrongStart {
		t.Fatalf("expected StrongStart, got %v", tr.Get(start).Type)
	}
	st := tr.Get(start)
	stop := st.Mate
	if stop == 0 || tr.Get(stop).Type != token.StrongStop {
		t.Fatalf("expected linked StrongStop, got %v", tr.Get(stop).Type)
	}
	if tr.Get(stop).Mate != start {
		t.Fatalf("pairing symmetry violated: stop.Mate != start")
	}
}

// --- scenario 6: intraword underscores never pair ---

func TestScenarioIntrawordUnderscoreNoEmphasis(t *testing.T) {
	eng := mdcore.New([]byte("foo_bar_baz"), 0)
	root := eng.Parse()
	tr := eng.Tree()

	if got, want := leafText(tr, root), "foo_bar_baz"; got != want {
		t.Fatalf("leaf text = %q, want %q", got, want)
	}
	tr.Siblings(tr.Get(tr.Get(root).Child).Child, func(id token.ID, tok token.Token) bool {
		if tok.Type == token.PairUL || tok.Type == token.EmphStart || tok.Type == token.StrongStart {
			t.Fatalf("unexpected emphasis token %v in intraword underscore run", tok.Type)
		}
		return true
	})
}

// --- scenario 7: document metadata extraction ---

func TestScenarioMetadataExtraction(t *testing.T) {
	e := mdcore.New([]byte("Title: My Doc\nAuthor: Me\n\nBody.\n"), 0)
	root := e.Parse()
	tr := e.Tree()

	meta := e.Metadata()
	if len(meta) != 2 {
		t.Fatalf("expected 2 metadata entries, got %d: %+v", len(meta), meta)
	}
	if meta[0].Key != "Title" || meta[0].Value != "My Doc" {
		t.Fatalf("entry 0 = %+v", meta[0])
	}
	if meta[1].Key != "Author" || meta[1].Value != "Me" {
		t.Fatalf("entry 1 = %+v", meta[1])
	}

	want := "DocStartToken[BlockMeta BlockPara]"
	if got := outline(tr, root); got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

// --- scenario 8: thematic break ---

func TestScenarioHR(t *testing.T) {
	e := mdcore.New([]byte("---\n"), 0)
	root := e.Parse()
	tr := e.Tree()
	if got, want := outline(tr, root), "DocStartToken[BlockHR]"; got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

// --- scenario 9: inline code span ---

func TestScenarioBacktickPairing(t *testing.T) {
	e := mdcore.New([]byte("see `code` here\n"), 0)
	root := e.Parse()
	tr := e.Tree()

	para := tr.Get(root).Child
	var open token.ID
	tr.Siblings(tr.Get(para).Child, func(id token.ID, tok token.Token) bool {
		if tok.Type == token.PairBacktick && open == 0 {
			open = id
		}
		return true
	})
	if open == 0 {
		t.Fatal("expected a PairBacktick token")
	}
	t0 := tr.Get(open)
	if t0.Child == 0 {
		t.Fatal("expected the backtick pair to own its content as a child")
	}
	if got, want := tr.Text(t0.Child), "code"; got != want {
		t.Fatalf("backtick content = %q, want %q", got, want)
	}
}

// --- scenario 10: standalone superscript ---

func TestScenarioStandaloneSuperscript(t *testing.T) {
	e := mdcore.New([]byte("x^2"), mdcore.ExtSmart)
	root := e.Parse()
	tr := e.Tree()

	para := tr.Get(root).Child
	var sup token.ID
	tr.Siblings(tr.Get(para).Child, func(id token.ID, tok token.Token) bool {
		if tok.Type == token.Superscript {
			sup = id
		}
		return true
	})
	if sup == 0 {
		t.Fatal("expected a standalone Superscript token")
	}
	st := tr.Get(sup)
	if st.Mate != 0 {
		t.Fatal("standalone superscript must not be paired")
	}
	if got, want := tr.Text(sup), "^2"; got != want {
		t.Fatalf("superscript span = %q, want %q (must absorb the following digit)", got, want)
	}
}

// --- scenario 11: critic-markup addition, round-trip under ExtCritic ---

func TestScenarioCriticAddRoundTrip(t *testing.T) {
	e := mdcore.New([]byte("see {++added++} here\n"), mdcore.ExtCritic)
	root := e.Parse()
	tr := e.Tree()

	para := tr.Get(root).Child
	var open token.ID
	tr.Siblings(tr.Get(para).Child, func(id token.ID, tok token.Token) bool {
		if tok.Type == token.PairCriticAdd && open == 0 {
			open = id
		}
		return true
	})
	if open == 0 {
		t.Fatal("expected a PairCriticAdd token")
	}
	t0 := tr.Get(open)
	if t0.Mate == 0 || tr.Get(t0.Mate).Type != token.PairCriticAdd {
		t.Fatalf("expected linked PairCriticAdd mate, got %v", tr.Get(t0.Mate).Type)
	}
	if tr.Get(t0.Mate).Mate != open {
		t.Fatalf("pairing symmetry violated: mate.Mate != open")
	}
	if t0.Child == 0 {
		t.Fatal("expected the critic-add pair to own its content as a child")
	}
	if got, want := leafText(tr, t0.Child), "added"; got != want {
		t.Fatalf("critic-add content = %q, want %q", got, want)
	}
}

// --- scenario 12: strong-before-emphasis, "***x***" ---

func TestScenarioStrongBeforeEmphasis(t *testing.T) {
	e := mdcore.New([]byte("***x***"), 0)
	root := e.Parse()
	tr := e.Tree()

	para := tr.Get(root).Child
	start := tr.Get(para).Child
	if tr.Get(start).Type != token.StrongStart {
		t.Fatalf("expected StrongStart, got %v", tr.Get(start).Type)
	}
	strongStart := tr.Get(start)
	strongStop := strongStart.Mate
	if strongStop == 0 || tr.Get(strongStop).Type != token.StrongStop {
		t.Fatalf("expected linked StrongStop, got %v", tr.Get(strongStop).Type)
	}
	if tr.Get(strongStop).Mate != start {
		t.Fatalf("pairing symmetry violated: StrongStop.Mate != StrongStart")
	}

	emphStart := strongStart.Next
	et := tr.Get(emphStart)
	if et.Type != token.EmphStart {
		t.Fatalf("expected EmphStart nested inside StrongStart, got %v", et.Type)
	}
	emphStop := et.Mate
	if emphStop == 0 || tr.Get(emphStop).Type != token.EmphStop {
		t.Fatalf("expected linked EmphStop, got %v", tr.Get(emphStop).Type)
	}
	if tr.Get(emphStop).Mate != emphStart {
		t.Fatalf("pairing symmetry violated: EmphStop.Mate != EmphStart")
	}
	if tr.Get(emphStop).Next != strongStop {
		t.Fatalf("expected EmphStop immediately before StrongStop")
	}

	if got, want := leafText(tr, para), "***x***"; got != want {
		t.Fatalf("leaf text = %q, want %q", got, want)
	}
}

// --- invariant 6: extension monotonicity ---

func TestExtensionMonotonicityUnderCompatibility(t *testing.T) {
	src := "Title: x\n\n*a* $1$ ^2^ {++add++}\n"
	e := mdcore.New([]byte(src), mdcore.ExtCompatibility)
	root := e.Parse()
	tr := e.Tree()

	nonCompat := map[token.Type]bool{
		token.PairMath:         true,
		token.PairSuperscript:  true,
		token.BlockMeta:        true,
		token.PairCriticAdd:    true,
		token.PairCriticDel:    true,
		token.PairCriticCom:    true,
		token.PairCriticSubAdd: true,
		token.PairCriticSubDel: true,
		token.PairCriticHi:     true,
		token.QuoteRightAlt:    true,
		token.Apostrophe:       true,
	}

	var walk func(token.ID)
	walk = func(id token.ID) {
		tr.Siblings(id, func(cid token.ID, tok token.Token) bool {
			if nonCompat[tok.Type] {
				t.Fatalf("found non-compat type %v under EXT_COMPATIBILITY", tok.Type)
			}
			if tok.Child != 0 {
				walk(tok.Child)
			}
			return true
		})
	}
	walk(root)
}

// --- invariant 1/2: coverage and non-overlap of leaf tokens ---

func TestLeafCoverageAndNonOverlap(t *testing.T) {
	src := "# Title\n\n> quoted *text* here\n\n- item one\n- item two\n\n```\ncode\n```\n"
	e := mdcore.New([]byte(src), 0)
	root := e.Parse()
	tr := e.Tree()

	type span struct{ start, end int }
	var spans []span
	var walk func(token.ID)
	walk = func(id token.ID) {
		tr.Siblings(id, func(cid token.ID, tok token.Token) bool {
			if tok.Child != 0 {
				walk(tok.Child)
			} else if tok.Len > 0 {
				spans = append(spans, span{tok.Start, tok.End()})
			}
			return true
		})
	}
	walk(root)

	covered := 0
	for i, s := range spans {
		covered += s.end - s.start
		for j, other := range spans {
			if i == j {
				continue
			}
			if s.start < other.end && other.start < s.end {
				t.Fatalf("overlapping leaf spans %v and %v", s, other)
			}
		}
	}
	if covered != len(src) {
		t.Fatalf("coverage invariant violated: covered %d of %d bytes", covered, len(src))
	}
}
