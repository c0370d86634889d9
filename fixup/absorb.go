// Package fixup implements the post-pairing fixups of spec §4.8: emphasis
// is handled separately (see Promote, spec §4.7); this package covers
// paragraph→HTML reclassification, list looseness, recursive reparse of
// blockquote/list-item bodies, line-token absorption, and metadata
// extraction.
//
// Adaptation note (see DESIGN.md "line-token absorption ordering"): spec
// §4.8 lists line-token absorption as a post-pairing step, modeled on a
// C token tree where pairing can walk straight through line-boundary
// pointers. mdcore's arena tree instead needs leaf blocks' inline atoms
// linked as one real sibling chain before pairing.Run can use them (Run
// reparents content via the tree's actual Next/Prev links). Absorb is
// therefore invoked once right after the block grammar finishes — and
// again after every recursive reparse — rather than only at the very end;
// the resulting tree shape is identical to the reference's, since
// absorption never changes inline token order or type, only which node
// owns them as children.
package fixup

import "github.com/mdcore/mdcore/token"

// Absorb walks the block tree rooted at id, converting every leaf block's
// LINE_* children into direct inline (or, for tables, ROW_TABLE) children,
// recursing through containers (blockquote, lists, list items) without
// touching their still-raw line children — those are absorbed only after
// Reparse unwraps them.
//
// demoteMeta is true under EXT_COMPATIBILITY/EXT_NO_METADATA, matching
// ambidextrous.Assign's BLOCK_META-to-BLOCK_PARA demotion: Absorb performs
// the same retype here, before flattening, so the demoted block's children
// are already a flat inline run by the time Assign/pairing see it (Assign
// itself no longer needs to flatten on demotion).
func Absorb(tr *token.Tree, id token.ID, demoteMeta bool) {
	t := tr.Get(id)
	switch t.Type {
	case token.DocStartToken,
		token.BlockBlockquote,
		token.BlockListBulleted, token.BlockListBulletedLoose,
		token.BlockListEnumerated, token.BlockListEnumeratedLoose,
		token.BlockListItem, token.BlockListItemTight:
		tr.Siblings(t.Child, func(cid token.ID, _ token.Token) bool {
			Absorb(tr, cid, demoteMeta)
			return true
		})

	case token.BlockPara,
		token.BlockH1, token.BlockH2, token.BlockH3, token.BlockH4, token.BlockH5, token.BlockH6:
		absorbFlat(tr, id, true)

	case token.BlockCodeIndented:
		tr.Siblings(t.Child, func(lineID token.ID, _ token.Token) bool {
			stripOneIndent(tr, lineID)
			return true
		})
		absorbFlat(tr, id, false)
		shedTrailingBlankLines(tr, id)

	case token.BlockCodeFenced, token.BlockHTML:
		absorbFlat(tr, id, false)

	case token.BlockTable:
		absorbTable(tr, id)

	case token.BlockMeta:
		if demoteMeta {
			tr.SetType(id, token.BlockPara)
			absorbFlat(tr, id, true)
		}
		// otherwise keep LINE_META children intact: metadata extraction (see
		// extractMetadata) and any downstream writer need the per-line
		// boundaries.

	// BlockDefLink/Citation/Footnote keep their LINE_* children for the same
	// reason as an un-demoted BlockMeta above.
	default:
	}
}

// absorbFlat replaces id's LINE_* children with the concatenation of their
// inline children, stripping every leading indent token from each line when
// strip is true (non-code blocks). With strip false nothing is removed here:
// Absorb drops the one indent level of an indented code block's lines before
// calling it, and fenced code and HTML keep their lines' content as is.
func absorbFlat(tr *token.Tree, block token.ID, strip bool) {
	lines, _ := tr.ExtractChildren(block)
	tr.Siblings(lines, func(lineID token.ID, _ token.Token) bool {
		if strip {
			stripLeadingIndent(tr, lineID)
		}
		first, last := tr.ExtractChildren(lineID)
		if first != 0 {
			tr.AppendChain(block, first, last)
		}
		return true
	})
}

// stripLeadingIndent removes a line's leading NON_INDENT_SPACE, then all
// leading INDENT_SPACE/INDENT_TAB tokens (spec §4.8 "all leading indents
// for non-code blocks").
func stripLeadingIndent(tr *token.Tree, line token.ID) {
	for {
		child := tr.Get(line).Child
		if child == 0 {
			return
		}
		switch tr.Get(child).Type {
		case token.NonIndentSpace, token.IndentSpace, token.IndentTab:
			tr.Remove(line, child, child)
		default:
			return
		}
	}
}

// shedTrailingBlankLines drops LINE_EMPTY children from the end of an
// indented code block (spec §4.8 "indented code blocks also shed trailing
// LINE_EMPTY children"). Absorption has already flattened the block's
// children to inline atoms, so a "blank line" here is a (possibly absent)
// run trailing back to the most recent TEXT_NL/TEXT_LINEBREAK.
func shedTrailingBlankLines(tr *token.Tree, block token.ID) {
	for {
		last := tr.Last(block)
		if last == 0 {
			return
		}
		t := tr.Get(last)
		if t.Type != token.TextNL && t.Type != token.TextLinebreak {
			return
		}
		prev := t.Prev
		if prev != 0 {
			pt := tr.Get(prev)
			if pt.Type != token.TextNL && pt.Type != token.TextLinebreak {
				return
			}
		}
		tr.RemoveLastChild(block)
	}
}

// absorbTable retypes each LINE_TABLE child to ROW_TABLE, keeping it (with
// its own inline children intact) as a direct child of the table block
// rather than flattening it away (spec §4.8: "LINE_TABLE is retyped to
// ROW_TABLE and kept as a child, not absorbed").
func absorbTable(tr *token.Tree, block token.ID) {
	tr.Siblings(tr.Get(block).Child, func(rowID token.ID, row token.Token) bool {
		if row.Type == token.LineTable {
			tr.SetType(rowID, token.RowTable)
		}
		return true
	})
}
