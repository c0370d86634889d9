package fixup_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdcore/mdcore/blockgrammar"
	"github.com/mdcore/mdcore/classify"
	"github.com/mdcore/mdcore/fixup"
	"github.com/mdcore/mdcore/lex"
	"github.com/mdcore/mdcore/token"
)

// leafText concatenates the source bytes of every leaf token reachable from
// id, in order — a block token's own span (Len 0 for most blocks, the line's
// span for headings, rules and definitions) is not its content, so
// reconstructing a block's text means walking to its leaves.
func leafText(tr *token.Tree, id token.ID) string {
	var out []byte
	var walk func(token.ID)
	walk = func(id token.ID) {
		tr.Siblings(id, func(cid token.ID, t token.Token) bool {
			if t.Child != 0 {
				walk(t.Child)
			} else {
				out = append(out, tr.Bytes(cid)...)
			}
			return true
		})
	}
	walk(id)
	return string(out)
}

// parse drives buf through tokenize+classify+block-grammar, returning the
// DOC_START_TOKEN root, matching blockgrammar_test's helper of the same
// shape.
func parse(buf []byte) (*token.Tree, token.ID) {
	tr := token.NewTree(buf)
	lineRoot := lex.Tokenize(tr, buf)

	drv := blockgrammar.New(tr)
	allowMeta := true
	tr.Siblings(tr.Get(lineRoot).Child, func(id token.ID, _ token.Token) bool {
		allowMeta = classify.Line(tr, id, classify.Config{}, allowMeta)
		drv.Feed(id)
		return true
	})
	return tr, drv.Finish()
}

func TestAbsorbFlattensParagraphLines(t *testing.T) {
	tr, root := parse([]byte("foo\nbar\n"))
	para := tr.Get(root).Child
	require.Equal(t, token.BlockPara, tr.Get(para).Type)

	fixup.Absorb(tr, root, false)

	var types []token.Type
	tr.Siblings(tr.Get(para).Child, func(id token.ID, tok token.Token) bool {
		types = append(types, tok.Type)
		return true
	})
	for _, typ := range types {
		assert.NotEqual(t, token.LinePlain, typ, "line wrappers must not survive absorption")
	}
	assert.Equal(t, "foo\nbar\n", leafText(tr, para))
}

func TestAbsorbDemotesMetaUnderCompatibility(t *testing.T) {
	tr, root := parse([]byte("Title: x\n\nbody\n"))
	meta := tr.Get(root).Child
	require.Equal(t, token.BlockMeta, tr.Get(meta).Type)

	fixup.Absorb(tr, root, true)

	assert.Equal(t, token.BlockPara, tr.Get(meta).Type, "BLOCK_META must demote under EXT_COMPATIBILITY/EXT_NO_METADATA")
}

func TestPromoteStrongFromLenTwoRun(t *testing.T) {
	buf := []byte("**a**")
	tr := token.NewTree(buf)
	block := tr.New(token.BlockPara, 0, 0)
	open := tr.New(token.Star, 0, 2)
	mid := tr.New(token.TextPlain, 2, 1)
	close := tr.New(token.Star, 3, 2)
	tr.AppendChild(block, open)
	tr.AppendChild(block, mid)
	tr.AppendChild(block, close)

	o := tr.Get(open)
	o.Type, o.Mate = token.PairStar, close
	tr.Set(open, o)
	c := tr.Get(close)
	c.Type, c.Mate = token.PairStar, open
	tr.Set(close, c)

	fixup.Promote(tr, block)

	assert.Equal(t, token.StrongStart, tr.Get(open).Type)
	assert.Equal(t, token.StrongStop, tr.Get(close).Type)
}

func TestPromoteEmphFromLenOneRun(t *testing.T) {
	buf := []byte("*a*")
	tr := token.NewTree(buf)
	block := tr.New(token.BlockPara, 0, 0)
	open := tr.New(token.Star, 0, 1)
	mid := tr.New(token.TextPlain, 1, 1)
	close := tr.New(token.Star, 2, 1)
	tr.AppendChild(block, open)
	tr.AppendChild(block, mid)
	tr.AppendChild(block, close)

	o := tr.Get(open)
	o.Type, o.Mate = token.PairStar, close
	tr.Set(open, o)
	c := tr.Get(close)
	c.Type, c.Mate = token.PairStar, open
	tr.Set(close, c)

	fixup.Promote(tr, block)

	assert.Equal(t, token.EmphStart, tr.Get(open).Type)
	assert.Equal(t, token.EmphStop, tr.Get(close).Type)
}

func TestStateProcessExtractsMetadataAcrossWrappedValue(t *testing.T) {
	tr, root := parse([]byte("Title: My\n    Doc\nAuthor: Me\n\nBody.\n"))

	var s fixup.State
	s.Process(tr, root)

	require.Len(t, s.Metadata, 2)
	assert.Equal(t, "Title", s.Metadata[0].Key)
	assert.Equal(t, "My\nDoc", s.Metadata[0].Value)
	assert.Equal(t, "Author", s.Metadata[1].Key)
	assert.Equal(t, "Me", s.Metadata[1].Value)
}

func TestStateProcessMarksLooseListFromBlankSeparatedItems(t *testing.T) {
	tr, root := parse([]byte("- one\n\n- two\n"))

	var s fixup.State
	s.Process(tr, root)

	list := tr.Get(root).Child
	assert.Equal(t, token.BlockListBulletedLoose, tr.Get(list).Type)
	tr.Siblings(tr.Get(list).Child, func(id token.ID, item token.Token) bool {
		assert.Equal(t, token.BlockListItem, item.Type)
		return true
	})
}

func TestStateProcessMarksTightListFromAdjacentItems(t *testing.T) {
	tr, root := parse([]byte("- one\n- two\n\n"))

	var s fixup.State
	s.Process(tr, root)

	list := tr.Get(root).Child
	assert.Equal(t, token.BlockListBulleted, tr.Get(list).Type)
	tr.Siblings(tr.Get(list).Child, func(id token.ID, item token.Token) bool {
		assert.Equal(t, token.BlockListItemTight, item.Type)
		return true
	})
}

func TestStateProcessDedentsBlockquoteBody(t *testing.T) {
	tr, root := parse([]byte("> one\n> two\n"))

	var s fixup.State
	s.Process(tr, root)

	bq := tr.Get(root).Child
	para := tr.Get(bq).Child
	require.Equal(t, token.BlockPara, tr.Get(para).Type)
	assert.Equal(t, "one\ntwo\n", leafText(tr, para), "blockquote marker and its following space must be stripped")
}
