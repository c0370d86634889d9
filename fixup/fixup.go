package fixup

import (
	"strings"

	"github.com/mdcore/mdcore/ambidextrous"
	"github.com/mdcore/mdcore/blockgrammar"
	"github.com/mdcore/mdcore/classify"
	"github.com/mdcore/mdcore/internal/scanners"
	"github.com/mdcore/mdcore/pairing"
	"github.com/mdcore/mdcore/token"
)

// Config carries the engine's extension flags relevant to fixups and the
// components (classify/ambidextrous/pairing) fixups re-drive during
// recursive reparse.
type Config struct {
	Compatibility bool
	NoMetadata    bool
	Notes         bool
	Critic        bool
	Smart         bool
}

func (c Config) classify() classify.Config {
	return classify.Config{Compatibility: c.Compatibility, NoMetadata: true, Notes: c.Notes}
}

func (c Config) ambidextrous() ambidextrous.Config {
	return ambidextrous.Config{Smart: c.Smart, Compatibility: c.Compatibility, NoMetadata: c.NoMetadata}
}

func (c Config) pairing() pairing.Config {
	return pairing.Config{Critic: c.Critic, Compatibility: c.Compatibility}
}

// MetaEntry is one extracted "Key: value" pair (spec §4.8 "Metadata
// extraction"). Value may span multiple source lines, joined by "\n".
type MetaEntry struct {
	Key, Value string
}

// State accumulates the metadata stack across one document's worth of
// post-pairing fixups. A fresh State belongs to one parse, matching spec
// §3's "Engine-level state (one per parse)".
type State struct {
	Cfg      Config
	Metadata []MetaEntry
}

// Pipeline runs the per-block portion of spec §4.8 over container's direct
// children in the order the spec lists them for a newly produced (or
// top-level) set of blocks: HTML reclassification, line-token absorption,
// ambidextrous assignment, the three pairing passes, then emphasis/strong
// promotion. It does not recurse into nested containers — call Process for
// that.
func (s *State) Pipeline(tr *token.Tree, container token.ID) {
	tr.Siblings(tr.Get(container).Child, func(id token.ID, _ token.Token) bool {
		reclassifyHTML(tr, id)
		return true
	})
	demoteMeta := s.Cfg.Compatibility || s.Cfg.NoMetadata
	tr.Siblings(tr.Get(container).Child, func(id token.ID, _ token.Token) bool {
		Absorb(tr, id, demoteMeta)
		return true
	})
	ambidextrous.Assign(tr, container, s.Cfg.ambidextrous())
	pairing.Passes(tr, container, s.Cfg.pairing())
	Promote(tr, container)
}

// Process is the full post-pairing walk: it runs Pipeline over block's
// children, then recurses — reparsing blockquote/list-item bodies in place
// (spec §4.8 "recursive reparse", which per spec §2 re-triggers E–H on
// their contents), detecting list looseness, and extracting metadata.
func (s *State) Process(tr *token.Tree, block token.ID) {
	switch tr.Get(block).Type {
	case token.DocStartToken:
		s.Pipeline(tr, block)
		s.recurseChildren(tr, block)

	case token.BlockBlockquote:
		reparseContainer(tr, block, dedentBlockquote, s.Cfg.classify())
		s.Pipeline(tr, block)
		s.recurseChildren(tr, block)

	case token.BlockListItem, token.BlockListItemTight:
		reparseContainer(tr, block, dedentListItem, s.Cfg.classify())
		s.Pipeline(tr, block)
		s.recurseChildren(tr, block)

	case token.BlockListBulleted, token.BlockListBulletedLoose,
		token.BlockListEnumerated, token.BlockListEnumeratedLoose:
		s.recurseChildren(tr, block)
		detectLooseness(tr, block)

	case token.BlockMeta:
		s.extractMetadata(tr, block)
	}
}

func (s *State) recurseChildren(tr *token.Tree, block token.ID) {
	tr.Siblings(tr.Get(block).Child, func(id token.ID, _ token.Token) bool {
		s.Process(tr, id)
		return true
	})
}

// reclassifyHTML implements spec §4.8's paragraph→HTML reclassification:
// a BLOCK_PARA whose first (still line-wrapped) child is LINE_PLAIN and
// begins with '<' is retyped to BLOCK_HTML when the HTML scanners agree.
// Must run before Absorb, since it inspects the line wrapper's type.
func reclassifyHTML(tr *token.Tree, block token.ID) {
	if tr.Get(block).Type != token.BlockPara {
		return
	}
	first := tr.Get(block).Child
	if first == 0 || tr.Get(first).Type != token.LinePlain {
		return
	}
	firstChild := tr.Get(first).Child
	if firstChild == 0 || tr.Get(firstChild).Type != token.AngleLeft {
		return
	}
	raw := tr.Bytes(first)
	if scanners.HTMLBlock(raw) || scanners.HTMLLine(raw) {
		tr.SetType(block, token.BlockHTML)
	}
}

// detectLooseness implements spec §4.8's list-looseness rule: a list is
// loose iff any item's first child is a BLOCK_PARA; loose lists upgrade to
// the _LOOSE variant, otherwise every item downgrades to _TIGHT.
func detectLooseness(tr *token.Tree, list token.ID) {
	loose := false
	tr.Siblings(tr.Get(list).Child, func(id token.ID, item token.Token) bool {
		if c := item.Child; c != 0 && tr.Get(c).Type == token.BlockPara {
			loose = true
			return false
		}
		return true
	})

	if loose {
		switch tr.Get(list).Type {
		case token.BlockListBulleted:
			tr.SetType(list, token.BlockListBulletedLoose)
		case token.BlockListEnumerated:
			tr.SetType(list, token.BlockListEnumeratedLoose)
		}
		return
	}
	tr.Siblings(tr.Get(list).Child, func(id token.ID, item token.Token) bool {
		if item.Type == token.BlockListItem {
			tr.SetType(id, token.BlockListItemTight)
		}
		return true
	})
}

// reparseContainer implements the dedent/reclassify/redrive half of spec
// §4.8's recursive reparse: it detaches container's raw LINE_* children,
// applies dedent to each, reclassifies them, feeds them through a fresh
// block-grammar driver, and re-attaches the result as container's new
// children.
func reparseContainer(tr *token.Tree, container token.ID, dedent func(*token.Tree, token.ID, bool), cfg classify.Config) {
	lines, _ := tr.ExtractChildren(container)
	if lines == 0 {
		return
	}
	var ids []token.ID
	tr.Siblings(lines, func(id token.ID, _ token.Token) bool {
		ids = append(ids, id)
		return true
	})

	drv := blockgrammar.New(tr)
	allowMeta := false // neither blockquotes nor list items carry metadata
	for i, id := range ids {
		dedent(tr, id, i == 0)
		allowMeta = classify.Line(tr, id, cfg, allowMeta)
		drv.Feed(id)
	}
	sub := drv.Finish()

	first, last := tr.ExtractChildren(sub)
	if first != 0 {
		tr.AppendChain(container, first, last)
	}
}

// dedentListItem implements spec §4.8's list-item dedent: strip the
// leading marker child from the first line; drop one leading
// INDENT_SPACE/INDENT_TAB from every other line.
func dedentListItem(tr *token.Tree, line token.ID, first bool) {
	if first {
		if c := tr.Get(line).Child; c != 0 {
			switch tr.Get(c).Type {
			case token.MarkerListBullet, token.MarkerListEnumerator:
				tr.Remove(line, c, c)
			}
		}
		return
	}
	stripOneIndent(tr, line)
}

// dedentBlockquote implements spec §4.8's blockquote dedent: strip
// MARKER_BLOCKQUOTE/NON_INDENT_SPACE from the line's head, then strip
// leading whitespace from the following TEXT_PLAIN (deleting it if it
// becomes empty).
func dedentBlockquote(tr *token.Tree, line token.ID, _ bool) {
	c := tr.Get(line).Child
	if c != 0 {
		switch tr.Get(c).Type {
		case token.MarkerBlockquote, token.NonIndentSpace:
			tr.Remove(line, c, c)
			c = tr.Get(line).Child
		}
	}
	if c == 0 {
		return
	}
	t := tr.Get(c)
	if t.Type != token.TextPlain || t.Len == 0 || tr.Buf()[t.Start] != ' ' {
		return
	}
	if t.Len == 1 {
		tr.Remove(line, c, c)
		return
	}
	t.Start++
	t.Len--
	tr.Set(c, t)
}

func stripOneIndent(tr *token.Tree, line token.ID) {
	c := tr.Get(line).Child
	if c == 0 {
		return
	}
	switch tr.Get(c).Type {
	case token.IndentSpace, token.IndentTab:
		tr.Remove(line, c, c)
	}
}

// extractMetadata implements spec §4.8's metadata extraction: each
// LINE_META starts a new (key, value) entry; subsequent
// LINE_INDENTED_*/LINE_PLAIN children append to the current value.
func (s *State) extractMetadata(tr *token.Tree, block token.ID) {
	var key, value string
	haveEntry := false
	flush := func() {
		if haveEntry {
			s.Metadata = append(s.Metadata, MetaEntry{Key: key, Value: value})
		}
		key, value, haveEntry = "", "", false
	}

	tr.Siblings(tr.Get(block).Child, func(id token.ID, line token.Token) bool {
		raw := scanners.TrimNewline(tr.Bytes(id))
		switch line.Type {
		case token.LineMeta:
			flush()
			klen := scanners.MetaKey(raw)
			key = strings.TrimSpace(string(raw[:klen]))
			value = strings.TrimSpace(string(raw[klen+1:]))
			haveEntry = true
		case token.LineIndentedTab, token.LineIndentedSpace, token.LinePlain:
			if haveEntry {
				value += "\n" + strings.TrimSpace(string(raw))
			}
		}
		return true
	})
	flush()
}
