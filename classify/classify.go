// Package classify implements the line classifier: for each line token
// produced by lex.Tokenize, decide its LINE_* type and perform the
// in-place rewrites (marker retyping, trailing-run elision) that the block
// grammar and later fixups depend on.
package classify

import (
	"github.com/mdcore/mdcore/internal/scanners"
	"github.com/mdcore/mdcore/token"
)

// Config carries the subset of engine extension flags that affect
// classification.
type Config struct {
	Compatibility bool
	NoMetadata    bool
	Notes         bool
}

// Line classifies line in place, honoring and returning the engine's
// allow_meta flag (spec §3, §9 "Global allow metadata flag"): it starts
// true and becomes permanently false at the first empty or non-metadata
// line. An indented line, which may continue a metadata value, leaves it
// unchanged.
func Line(tr *token.Tree, line token.ID, cfg Config, allowMeta bool) bool {
	metaOK := allowMeta
	allowMeta = false
	first := tr.Get(line).Child
	if first == 0 {
		tr.SetType(line, token.LineEmpty)
		return allowMeta
	}

	// Peek past one leading NON_INDENT_SPACE or single-space TEXT_PLAIN for
	// the purpose of dispatch only; it is not removed from the tree.
	dispatch := first
	if t := tr.Get(first); isLeadingSpaceSkip(tr, first, t) {
		if t.Next != 0 {
			dispatch = t.Next
		}
	}
	dt := tr.Get(dispatch)

	switch dt.Type {
	case token.IndentTab, token.IndentSpace:
		if restIsBlank(tr, dt.Next) {
			tr.SetType(line, token.LineEmpty)
			return false
		}
		if dt.Type == token.IndentTab {
			tr.SetType(line, token.LineIndentedTab)
		} else {
			tr.SetType(line, token.LineIndentedSpace)
		}
		return metaOK

	case token.AngleLeft:
		if scanners.HTMLBlock(tr.Buf()[dt.Start:]) {
			tr.SetType(line, token.LineHTML)
		} else {
			tr.SetType(line, token.LinePlain)
		}
		return allowMeta

	case token.AngleRight:
		tr.SetType(dispatch, token.MarkerBlockquote)
		tr.SetType(line, token.LineBlockquote)
		return allowMeta

	case token.Backtick:
		if cfg.Compatibility {
			tr.SetType(line, token.LinePlain)
			return allowMeta
		}
		raw := tr.Buf()[dt.Start:tr.Get(line).End()]
		if scanners.FenceEnd(raw, '`', dt.Len) {
			tr.SetType(line, token.LineFenceBacktick)
		} else if _, w, _, ok := scanners.FenceStart(raw); ok && w == dt.Len {
			tr.SetType(line, token.LineFenceBacktickStart)
		} else {
			tr.SetType(line, token.LinePlain)
		}
		return allowMeta

	case token.Hash1, token.Hash2, token.Hash3, token.Hash4, token.Hash5, token.Hash6:
		level := token.HashLevel(dt.Type)
		retyped := dt
		retyped.Type = token.ATXMarker(level)
		retyped.Len = level
		tr.Set(dispatch, retyped)
		tr.SetType(line, token.ATXHeadingLine(level))
		elideTrailingHashRun(tr, line, level)
		return allowMeta

	case token.TextNumberPossList:
		if next := tr.Get(dispatch).Next; next != 0 {
			nt := tr.Get(next)
			if nt.Type == token.TextPlain && nt.Len > 0 && tr.Buf()[nt.Start] == '.' {
				if afterIsSpaceOrTab(tr, nt.Next) {
					tr.SetType(dispatch, token.MarkerListEnumerator)
					tr.SetType(next, token.TextEmpty)
					stripMarkerGap(tr, line, next)
					tr.SetType(line, token.LineListEnumerated)
					return allowMeta
				}
			}
		}
		tr.SetType(line, token.LinePlain)
		return checkTable(tr, line, allowMeta)

	case token.DashN, token.DashM, token.Star, token.UL:
		if lineHR(tr, dispatch) {
			tr.SetType(line, token.LineHR)
			return allowMeta
		}
		if dt.Type != token.UL && dt.Len == 1 {
			if res, ok := classifyBulleted(tr, line, dispatch); ok {
				return res
			}
		}
		tr.SetType(line, token.LinePlain)
		return checkTable(tr, line, allowMeta)

	case token.Plus:
		if res, ok := classifyBulleted(tr, line, dispatch); ok {
			return res
		}
		tr.SetType(line, token.LinePlain)
		return checkTable(tr, line, allowMeta)

	case token.TextNL, token.TextLinebreak:
		tr.SetType(line, token.LineEmpty)
		return false

	case token.BracketLeft:
		raw := tr.Buf()[dt.Start:]
		var n int
		if cfg.Compatibility {
			n = scanners.RefLinkNoAttributes(raw)
		} else {
			n = scanners.RefLink(raw)
		}
		if n > 0 {
			tr.SetType(line, token.LineDefLink)
		} else {
			tr.SetType(line, token.LinePlain)
		}
		return checkTable(tr, line, allowMeta)

	case token.BracketCitationLeft:
		if cfg.Notes && scanners.RefCitation(tr.Buf()[dt.Start:]) > 0 {
			tr.SetType(line, token.LineDefCitation)
		} else {
			tr.SetType(line, token.LinePlain)
		}
		return checkTable(tr, line, allowMeta)

	case token.BracketFootnoteLeft:
		if cfg.Notes && scanners.RefFoot(tr.Buf()[dt.Start:]) > 0 {
			tr.SetType(line, token.LineDefFootnote)
		} else {
			tr.SetType(line, token.LinePlain)
		}
		return checkTable(tr, line, allowMeta)

	case token.TextPlain:
		if metaOK && !cfg.Compatibility && !cfg.NoMetadata {
			raw := tr.Buf()[dt.Start:]
			if scanners.URL(raw) == 0 && scanners.MetaLine(raw) {
				tr.SetType(line, token.LineMeta)
				return true
			}
		}
		tr.SetType(line, token.LinePlain)
		return checkTable(tr, line, false)

	default:
		tr.SetType(line, token.LinePlain)
		return checkTable(tr, line, allowMeta)
	}
}

func isLeadingSpaceSkip(tr *token.Tree, id token.ID, t token.Token) bool {
	if t.Type == token.NonIndentSpace && t.Len == 1 {
		return true
	}
	if t.Type == token.TextPlain && t.Len == 1 && tr.Buf()[t.Start] == ' ' {
		return true
	}
	return false
}

func restIsBlank(tr *token.Tree, id token.ID) bool {
	blank := true
	tr.Siblings(id, func(cid token.ID, tok token.Token) bool {
		switch tok.Type {
		case token.NonIndentSpace, token.IndentSpace, token.IndentTab, token.TextNL, token.TextLinebreak:
		default:
			blank = false
		}
		return blank
	})
	return blank
}

func afterIsSpaceOrTab(tr *token.Tree, id token.ID) bool {
	if id == 0 {
		return true
	}
	t := tr.Get(id)
	return t.Type == token.NonIndentSpace || t.Type == token.IndentSpace || t.Type == token.IndentTab
}

// elideTrailingHashRun retypes a trailing hash run of the same level
// (optionally followed by trailing space and the line's newline) to
// TEXT_EMPTY, per spec §4.2 step 6.
func elideTrailingHashRun(tr *token.Tree, line token.ID, level int) {
	last := tr.Last(line)
	id := last
	// skip a trailing newline
	if t := tr.Get(id); t.Type == token.TextNL || t.Type == token.TextLinebreak {
		id = t.Prev
	}
	// skip trailing non-indent space run
	if t := tr.Get(id); t.Type == token.NonIndentSpace {
		id = t.Prev
	}
	if id == 0 {
		return
	}
	if t := tr.Get(id); t.Type == token.Hash(level) {
		tr.SetType(id, token.TextEmpty)
	}
}

// stripMarkerGap removes the whitespace run between a list marker and its
// content, per spec §4.2 steps 7/9: either a following TEXT_PLAIN single
// space is trimmed, or a run of indent/non-indent-space siblings is pruned.
func stripMarkerGap(tr *token.Tree, line token.ID, after token.ID) {
	next := tr.Get(after).Next
	if next == 0 {
		return
	}
	nt := tr.Get(next)
	switch nt.Type {
	case token.NonIndentSpace, token.IndentSpace, token.IndentTab:
		tr.Remove(line, next, next)
	case token.TextPlain:
		if nt.Len > 0 && nt.Start < len(tr.Buf()) && tr.Buf()[nt.Start] == ' ' {
			if nt.Len == 1 {
				tr.Remove(line, next, next)
			} else {
				shrunk := nt
				shrunk.Start++
				shrunk.Len--
				tr.Set(next, shrunk)
			}
		}
	}
}

// lineHR implements spec §4.2 step 8: accumulate a weight across the run of
// the same delimiter byte, neutral spaces, and single-space TEXT_PLAINs,
// terminating at the newline; LINE_HR if the weighted occurrence count
// exceeds 2.
func lineHR(tr *token.Tree, first token.ID) bool {
	delim := tr.Get(first).Type
	count := 0
	ok := true
	tr.Siblings(first, func(id token.ID, t token.Token) bool {
		switch {
		case t.Type == delim:
			count += t.Len
		case t.Type == token.NonIndentSpace:
		case t.Type == token.TextPlain && t.Len == 1 && tr.Buf()[t.Start] == ' ':
		case t.Type == token.TextNL || t.Type == token.TextLinebreak:
			return false
		default:
			ok = false
			return false
		}
		return true
	})
	return ok && count > 2
}

// classifyBulleted implements spec §4.2 step 9: a PLUS, or a STAR/DASH that
// fell through the HR check, opens a bulleted list item if followed by
// space/tab.
func classifyBulleted(tr *token.Tree, line token.ID, marker token.ID) (bool, bool) {
	mt := tr.Get(marker)
	if !afterIsSpaceOrTab(tr, mt.Next) {
		return false, false
	}
	tr.SetType(marker, token.MarkerListBullet)
	stripMarkerGap(tr, line, marker)
	tr.SetType(line, token.LineListBulleted)
	return false, true
}

// checkTable implements the post-check: a line left as LINE_PLAIN that
// contains a PIPE among its inline children is retyped to LINE_TABLE.
func checkTable(tr *token.Tree, line token.ID, allowMeta bool) bool {
	if tr.Get(line).Type != token.LinePlain {
		return allowMeta
	}
	hasPipe := false
	tr.Siblings(tr.Get(line).Child, func(id token.ID, t token.Token) bool {
		if t.Type == token.Pipe {
			hasPipe = true
			return false
		}
		return true
	})
	if hasPipe {
		tr.SetType(line, token.LineTable)
	}
	return allowMeta
}
