// Package ambidextrous implements the ambidextrous-token assignment pass
// (spec §4.4): it walks a block's lines, deciding CanOpen/CanClose for every
// atom whose type is context-dependent (STAR, UL, BACKTICK, quotes, dashes,
// math delimiters, sub/superscript, critic substitution), and in a few
// cases retypes the atom outright (apostrophe demotion, dash demotion,
// standalone superscript/subscript, critic-sub splitting).
//
// It mirrors mmd_assign_ambidextrous_tokens_in_block's recursive descent:
// the walk recurses into container blocks (blockquote, lists, list items)
// without touching their contents directly, and processes the flattened
// run of inline atoms for leaf blocks (headings, paragraphs, tables, and
// metadata blocks demoted to paragraphs under restrictive extensions).
package ambidextrous

import "github.com/mdcore/mdcore/token"

// Config carries the subset of engine extension flags that affect
// ambidextrous assignment.
type Config struct {
	Smart         bool
	Compatibility bool
	NoMetadata    bool
}

// Assign annotates every ambidextrous atom reachable from block. It
// assumes fixup.Absorb has already run: leaf blocks' children are a flat
// run of inline atoms (or, for tables, ROW_TABLE children each holding
// their own flat run) rather than LINE_* wrappers.
func Assign(tr *token.Tree, block token.ID, cfg Config) {
	switch tr.Get(block).Type {
	case token.DocStartToken,
		token.BlockBlockquote,
		token.BlockListBulleted, token.BlockListBulletedLoose,
		token.BlockListEnumerated, token.BlockListEnumeratedLoose,
		token.BlockListItem, token.BlockListItemTight:
		tr.Siblings(tr.Get(block).Child, func(id token.ID, _ token.Token) bool {
			Assign(tr, id, cfg)
			return true
		})

	case token.BlockTable:
		tr.Siblings(tr.Get(block).Child, func(id token.ID, _ token.Token) bool {
			assignRun(tr, id, cfg)
			return true
		})

	case token.BlockMeta:
		// Absorb already demotes BLOCK_META to BLOCK_PARA under
		// EXT_COMPATIBILITY/EXT_NO_METADATA before Assign ever runs, so a
		// block still typed BLOCK_META here keeps its LINE_META children and
		// carries no flat inline run to assign.

	case token.BlockH1, token.BlockH2, token.BlockH3, token.BlockH4, token.BlockH5, token.BlockH6,
		token.BlockPara, token.RowTable:
		assignRun(tr, block, cfg)
	}
}

// run is one atom of a block's flat inline-child chain: its parent (needed
// to splice in new siblings) plus its own ID.
type run struct {
	parent token.ID
	id     token.ID
}

func assignRun(tr *token.Tree, parent token.ID, cfg Config) {
	var atoms []run
	tr.Siblings(tr.Get(parent).Child, func(id token.ID, _ token.Token) bool {
		atoms = append(atoms, run{parent: parent, id: id})
		return true
	})

	buf := tr.Buf()
	for i := range atoms {
		assignOne(tr, buf, atoms, i, cfg)
	}
}

func assignOne(tr *token.Tree, buf []byte, atoms []run, i int, cfg Config) {
	t := tr.Get(atoms[i].id)
	switch t.Type {
	case token.Star:
		assignStarUL(tr, buf, atoms, i, &t, false)
	case token.UL:
		assignStarUL(tr, buf, atoms, i, &t, true)
	case token.Backtick:
		if t.Len == 2 {
			if b, ok := prevByte(buf, t.Start); !ok || isWS(b) || isPunct(b) {
				t.CanClose = false
			}
		}
	case token.QuoteSingle:
		if cfg.Smart {
			assignQuoteSingle(tr, buf, &t)
		}
	case token.QuoteDouble:
		if cfg.Smart {
			assignQuoteFlanking(buf, &t)
		}
	case token.DashN:
		if cfg.Smart {
			before, hb := prevByte(buf, t.Start)
			after, ha := nextByte(buf, t.End())
			if !(hb && isDigit(before) && ha && isDigit(after)) {
				t.Type = token.TextPlain
			}
		}
	case token.MathDollarSingle, token.MathDollarDouble:
		if !cfg.Compatibility {
			assignMath(buf, &t)
		}
	case token.Superscript, token.Subscript:
		if !cfg.Compatibility {
			assignSubSup(tr, buf, atoms, i, &t)
		}
	case token.CriticSubDiv:
		splitCriticSubDiv(tr, atoms[i].parent, atoms[i].id, t)
		return // the split tokens replace t; nothing further to set on it
	default:
		return
	}
	tr.Set(atoms[i].id, t)
}

// --- byte classification (ASCII-only, per spec §9 "Unicode") ---

func isWS(b byte) bool   { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }
func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' }
func isAlnum(b byte) bool { return isAlpha(b) || isDigit(b) }
func isPunct(b byte) bool {
	switch {
	case b >= '!' && b <= '/':
		return true
	case b >= ':' && b <= '@':
		return true
	case b >= '[' && b <= '`':
		return true
	case b >= '{' && b <= '~':
		return true
	}
	return false
}

func prevByte(buf []byte, start int) (byte, bool) {
	if start <= 0 {
		return 0, false
	}
	return buf[start-1], true
}

func nextByte(buf []byte, end int) (byte, bool) {
	if end >= len(buf) {
		return 0, false
	}
	return buf[end], true
}

// skipBack walks start leftward over contiguous '*'/'_' bytes, returning the
// offset just past the run (i.e. the position whose preceding byte should be
// inspected for flanking purposes).
func skipBack(buf []byte, start int) int {
	for start > 0 && (buf[start-1] == '*' || buf[start-1] == '_') {
		start--
	}
	return start
}

// skipForward walks end rightward over contiguous '*'/'_' bytes.
func skipForward(buf []byte, end int) int {
	for end < len(buf) && (buf[end] == '*' || buf[end] == '_') {
		end++
	}
	return end
}

// assignStarUL implements the STAR/UL flanking rule of spec §4.4: cannot
// close if preceded by whitespace/line-end (after skipping a neighbor run
// of */_), cannot open if followed by whitespace/line-end (same skip). If
// both survive, the intraword-emphasis rule (CommonMark-style left/right
// flanking, restricted for underscores) disambiguates.
func assignStarUL(tr *token.Tree, buf []byte, atoms []run, i int, t *token.Token, underscore bool) {
	beforePos := skipBack(buf, t.Start)
	afterPos := skipForward(buf, t.End())
	before, hasBefore := prevByte(buf, beforePos)
	after, hasAfter := nextByte(buf, afterPos)

	precededByWS := !hasBefore || isWS(before)
	followedByWS := !hasAfter || isWS(after)
	precededByPunct := hasBefore && isPunct(before)
	followedByPunct := hasAfter && isPunct(after)

	if precededByWS {
		t.CanClose = false
	}
	if followedByWS {
		t.CanOpen = false
	}

	if underscore {
		if hasBefore && isAlnum(before) {
			t.CanOpen = false
		}
		if hasAfter && isAlnum(after) {
			t.CanClose = false
		}
		return
	}

	if t.CanOpen && t.CanClose {
		leftFlanking := !followedByWS && (!followedByPunct || precededByWS || precededByPunct)
		rightFlanking := !precededByWS && (!precededByPunct || followedByWS || followedByPunct)
		t.CanOpen = leftFlanking
		t.CanClose = rightFlanking
	}
}

// assignQuoteFlanking implements the shared QUOTE_SINGLE/QUOTE_DOUBLE rule:
// cannot close if preceded by whitespace/line-end (or at start), cannot
// open if followed by whitespace/line-end.
func assignQuoteFlanking(buf []byte, t *token.Token) {
	before, hasBefore := prevByte(buf, t.Start)
	after, hasAfter := nextByte(buf, t.End())
	if !hasBefore || isWS(before) {
		t.CanClose = false
	}
	if !hasAfter || isWS(after) {
		t.CanOpen = false
	}
}

// assignQuoteSingle implements spec §4.4's QUOTE_SINGLE special cases
// (apostrophe demotion for word-medial and post-punct-before-alnum
// contractions) before falling through to the shared quote-flanking rule.
func assignQuoteSingle(tr *token.Tree, buf []byte, t *token.Token) {
	before, hasBefore := prevByte(buf, t.Start)
	after, hasAfter := nextByte(buf, t.End())

	nonWSPunctBefore := hasBefore && !isWS(before) && !isPunct(before)
	nonWSPunctAfter := hasAfter && !isWS(after) && !isPunct(after)
	if nonWSPunctBefore && nonWSPunctAfter {
		t.Type = token.Apostrophe
		return
	}
	if hasBefore && isPunct(before) && hasAfter && isAlnum(after) {
		t.Type = token.Apostrophe
		return
	}
	assignQuoteFlanking(buf, t)
}

// assignMath implements spec §4.4's MATH_DOLLAR_* rule (non-compat).
func assignMath(buf []byte, t *token.Token) {
	before, hasBefore := prevByte(buf, t.Start)
	after, hasAfter := nextByte(buf, t.End())
	if !hasBefore || isWS(before) {
		t.CanClose = false
	}
	if hasBefore && !isWS(before) && !isPunct(before) {
		t.CanOpen = false
	}
	if !hasAfter || isWS(after) {
		t.CanOpen = false
	}
	if hasAfter && !isWS(after) && !isPunct(after) {
		t.CanClose = false
	}
}

// assignSubSup implements spec §4.4's SUPERSCRIPT/SUBSCRIPT rule: ordinary
// flanking, then a standalone-absorption fallback (the "x^2" case) when no
// contiguous matching delimiter exists to pair with.
func assignSubSup(tr *token.Tree, buf []byte, atoms []run, i int, t *token.Token) {
	before, hasBefore := prevByte(buf, t.Start)
	after, hasAfter := nextByte(buf, t.End())

	if hasBefore && (isWS(before) || isPunct(before)) {
		t.CanOpen = false
	}
	if !hasBefore || isWS(before) {
		t.CanClose = false
	}
	if hasAfter && (isWS(after) || isPunct(after)) {
		t.CanOpen = false
	}

	if t.CanOpen && !hasMatchOpen(buf, t.Type, t.End()) {
		t.CanOpen = false
		absorbForward(tr, atoms, i, t)
	}
	if t.CanClose && !hasMatchClose(buf, t.Type, t.Start) {
		t.CanClose = false
	}
}

// hasMatchOpen reports whether the same delimiter byte reappears before the
// next whitespace, scanning forward from pos — a contiguous closer for an
// opening sub/superscript.
func hasMatchOpen(buf []byte, typ token.Type, pos int) bool {
	delim := delimByte(typ)
	for pos < len(buf) {
		b := buf[pos]
		if isWS(b) {
			return false
		}
		if b == delim {
			return true
		}
		pos++
	}
	return false
}

// hasMatchClose is hasMatchOpen's mirror, scanning backward from pos.
func hasMatchClose(buf []byte, typ token.Type, pos int) bool {
	delim := delimByte(typ)
	for pos > 0 {
		b := buf[pos-1]
		if isWS(b) {
			return false
		}
		if b == delim {
			return true
		}
		pos--
	}
	return false
}

func delimByte(typ token.Type) byte {
	if typ == token.Subscript {
		return '~'
	}
	return '^'
}

// absorbForward extends t to cover the run of non-whitespace/non-punct
// bytes immediately following it, shrinking (or emptying) the next sibling
// token that supplied those bytes, matching spec §9's resolution of the
// standalone-superscript open question: only absorb when the immediate
// next sibling is a TEXT_PLAIN/TEXT_NUMBER_POSS_LIST token whose prefix
// covers exactly the absorbed run, else do nothing (no overlap is ever
// introduced into the tree).
func absorbForward(tr *token.Tree, atoms []run, i int, t *token.Token) {
	if i+1 >= len(atoms) {
		return
	}
	next := atoms[i+1].id
	nt := tr.Get(next)
	if nt.Type != token.TextPlain && nt.Type != token.TextNumberPossList {
		return
	}
	buf := tr.Buf()
	n := 0
	for n < nt.Len && !isWS(buf[nt.Start+n]) && !isPunct(buf[nt.Start+n]) {
		n++
	}
	if n == 0 {
		return
	}
	t.Len += n
	if n == nt.Len {
		nt.Type = token.TextEmpty
		nt.Start = nt.End()
		nt.Len = 0
	} else {
		nt.Start += n
		nt.Len -= n
	}
	tr.Set(next, nt)
}

// splitCriticSubDiv implements spec §4.4's CRITIC_SUB_DIV split: the two-
// byte "~>" divider inside a {~~old~>new~~} substitution becomes two
// length-1 siblings so Pass 1 can pair each half independently.
func splitCriticSubDiv(tr *token.Tree, line, id token.ID, t token.Token) {
	a := t
	a.Type = token.CriticSubDivA
	a.Len = 1
	tr.Set(id, a)

	b := tr.New(token.CriticSubDivB, t.Start+1, t.Len-1)
	tr.InsertAfter(line, id, b)
}
