// Package blockgrammar implements the block grammar driver: it consumes the
// chain of classified line tokens and emits a block tree rooted at a
// DOC_START_TOKEN, in the shape of scandown.BlockStack.Scan's hand-written
// state machine, generalized from a bufio.SplitFunc over raw bytes to a
// push/pop stack of open block.Token frames fed one classified line at a
// time.
//
// Containers (blockquote, list, list item) do not recursively parse their
// contents here: per the block grammar's contract they simply collect their
// member line tokens, unchanged, as direct children. Recursive reparsing of
// that content happens later (see the fixup package), mirroring
// recursive_parse_list_item/recursive_parse_blockquote.
package blockgrammar

import (
	"github.com/mdcore/mdcore/internal/scanners"
	"github.com/mdcore/mdcore/token"
)

type frame struct {
	id    token.ID
	typ   token.Type
	delim byte
	width int // fence width, for BlockCodeFenced
}

// Driver drives one token tree's worth of block structure. It is not safe
// for concurrent use, matching scandown.BlockStack.
type Driver struct {
	tr    *token.Tree
	stack []frame
}

// New starts a Driver whose output will be attached under a single
// DOC_START_TOKEN root.
func New(tr *token.Tree) *Driver {
	root := tr.New(token.DocStartToken, 0, 0)
	return &Driver{tr: tr, stack: []frame{{id: root, typ: token.DocStartToken}}}
}

// Feed consumes one classified line token, updating the open block stack.
func (d *Driver) Feed(line token.ID) {
	raw := d.tr.Bytes(line)
	lt := d.tr.Get(line).Type

	for {
		top := d.top()
		switch top.typ {
		case token.BlockCodeFenced:
			d.tr.AppendChild(top.id, line)
			if scanners.FenceEnd(raw, top.delim, top.width) {
				d.pop()
			}
			return

		case token.BlockCodeIndented:
			if isIndentedContinuation(lt) {
				d.tr.AppendChild(top.id, line)
				return
			}
			d.pop()
			continue

		case token.BlockMeta:
			if isMetaContinuation(lt) {
				d.tr.AppendChild(top.id, line)
				return
			}
			d.pop()
			continue

		case token.BlockTable:
			if lt == token.LineTable {
				d.tr.AppendChild(top.id, line)
				return
			}
			d.pop()
			continue

		case token.BlockHTML:
			if lt == token.LineHTML {
				d.tr.AppendChild(top.id, line)
				return
			}
			d.pop()
			continue

		case token.BlockPara:
			if lt == token.LinePlain {
				d.tr.AppendChild(top.id, line)
				return
			}
			d.pop()
			continue

		case token.BlockBlockquote:
			if lt == token.LineBlockquote {
				d.tr.AppendChild(top.id, line)
				return
			}
			d.pop()
			continue

		case token.BlockListItem:
			if isItemContinuation(lt) {
				d.tr.AppendChild(top.id, line)
				return
			}
			if fam, delim, ok := listFamily(d.tr, lt, raw); ok {
				if list := d.parent(); list.typ == fam && list.delim == delim {
					d.pop() // close this item; the list stays open
					d.openItem(line)
					return
				}
			}
			d.pop() // close item
			if d.top().typ == token.BlockListBulleted || d.top().typ == token.BlockListEnumerated {
				d.pop() // close list too: incompatible line or different delim
			}
			continue
		}

		// top is Document, or a just-closed frame: open whatever this line
		// starts.
		d.open(line, lt, raw)
		return
	}
}

// Finish closes every remaining open frame (outermost last) and returns the
// DOC_START_TOKEN root.
func (d *Driver) Finish() token.ID {
	for len(d.stack) > 1 {
		d.pop()
	}
	return d.stack[0].id
}

func (d *Driver) top() frame    { return d.stack[len(d.stack)-1] }
func (d *Driver) parent() frame { return d.stack[len(d.stack)-2] }

func (d *Driver) push(f frame) { d.stack = append(d.stack, f) }

func (d *Driver) pop() {
	f := d.stack[len(d.stack)-1]
	d.stack = d.stack[:len(d.stack)-1]
	d.tr.AppendChild(d.top().id, f.id)
}

func (d *Driver) open(line token.ID, lt token.Type, raw []byte) {
	switch lt {
	case token.LineATX1, token.LineATX2, token.LineATX3, token.LineATX4, token.LineATX5, token.LineATX6:
		level := int(lt-token.LineATX1) + 1
		id := d.tr.New(token.HeadingBlock(level), d.tr.Get(line).Start, d.tr.Get(line).Len)
		d.tr.AppendChild(id, line)
		d.tr.AppendChild(d.top().id, id)

	case token.LineHR:
		id := d.tr.New(token.BlockHR, d.tr.Get(line).Start, d.tr.Get(line).Len)
		d.tr.AppendChild(id, line)
		d.tr.AppendChild(d.top().id, id)

	case token.LineFenceBacktickStart, token.LineFenceBacktick:
		delim, width, _, _ := scanners.FenceStart(skipOneLeadingSpace(raw))
		id := d.tr.New(token.BlockCodeFenced, d.tr.Get(line).Start, 0)
		d.tr.AppendChild(id, line)
		d.push(frame{id: id, typ: token.BlockCodeFenced, delim: delim, width: width})

	case token.LineIndentedSpace, token.LineIndentedTab:
		id := d.tr.New(token.BlockCodeIndented, d.tr.Get(line).Start, 0)
		d.tr.AppendChild(id, line)
		d.push(frame{id: id, typ: token.BlockCodeIndented})

	case token.LineMeta:
		id := d.tr.New(token.BlockMeta, d.tr.Get(line).Start, 0)
		d.tr.AppendChild(id, line)
		d.push(frame{id: id, typ: token.BlockMeta})

	case token.LineTable:
		id := d.tr.New(token.BlockTable, d.tr.Get(line).Start, 0)
		d.tr.AppendChild(id, line)
		d.push(frame{id: id, typ: token.BlockTable})

	case token.LineHTML:
		id := d.tr.New(token.BlockHTML, d.tr.Get(line).Start, 0)
		d.tr.AppendChild(id, line)
		d.push(frame{id: id, typ: token.BlockHTML})

	case token.LineDefLink:
		id := d.tr.New(token.BlockDefLink, d.tr.Get(line).Start, d.tr.Get(line).Len)
		d.tr.AppendChild(id, line)
		d.tr.AppendChild(d.top().id, id)

	case token.LineDefCitation:
		id := d.tr.New(token.BlockDefCitation, d.tr.Get(line).Start, d.tr.Get(line).Len)
		d.tr.AppendChild(id, line)
		d.tr.AppendChild(d.top().id, id)

	case token.LineDefFootnote:
		id := d.tr.New(token.BlockDefFootnote, d.tr.Get(line).Start, d.tr.Get(line).Len)
		d.tr.AppendChild(id, line)
		d.tr.AppendChild(d.top().id, id)

	case token.LineBlockquote:
		id := d.tr.New(token.BlockBlockquote, d.tr.Get(line).Start, 0)
		d.tr.AppendChild(id, line)
		d.push(frame{id: id, typ: token.BlockBlockquote})

	case token.LineListBulleted, token.LineListEnumerated:
		fam, delim, _ := listFamily(d.tr, lt, raw)
		listID := d.tr.New(fam, d.tr.Get(line).Start, 0)
		d.tr.AppendChild(d.top().id, listID)
		d.push(frame{id: listID, typ: fam, delim: delim})
		d.openItem(line)

	case token.LineEmpty:
		// a run of blank lines between blocks; not itself materialized

	case token.LinePlain:
		id := d.tr.New(token.BlockPara, d.tr.Get(line).Start, 0)
		d.tr.AppendChild(id, line)
		d.push(frame{id: id, typ: token.BlockPara})

	default:
		// any other terminal not otherwise recognized opens a paragraph
		// (which following LINE_PLAIN lines join) rather than being dropped.
		id := d.tr.New(token.BlockPara, d.tr.Get(line).Start, 0)
		d.tr.AppendChild(id, line)
		d.push(frame{id: id, typ: token.BlockPara})
	}
}

func (d *Driver) openItem(line token.ID) {
	id := d.tr.New(token.BlockListItem, d.tr.Get(line).Start, 0)
	d.tr.AppendChild(d.top().id, id)
	d.push(frame{id: id, typ: token.BlockListItem})
	d.tr.AppendChild(id, line)
}

func isIndentedContinuation(lt token.Type) bool {
	return lt == token.LineIndentedSpace || lt == token.LineIndentedTab || lt == token.LineEmpty
}

func isMetaContinuation(lt token.Type) bool {
	return lt == token.LineMeta || lt == token.LineIndentedSpace || lt == token.LineIndentedTab || lt == token.LinePlain
}

func isItemContinuation(lt token.Type) bool {
	switch lt {
	case token.LinePlain, token.LineIndentedSpace, token.LineIndentedTab, token.LineEmpty, token.LineTable:
		return true
	}
	return false
}

func listFamily(tr *token.Tree, lt token.Type, raw []byte) (family token.Type, delim byte, ok bool) {
	switch lt {
	case token.LineListBulleted:
		delim, _, _ = scanners.ListMarker(skipOneLeadingSpace(raw))
		return token.BlockListBulleted, delim, true
	case token.LineListEnumerated:
		delim, _, _ = scanners.ListMarker(skipOneLeadingSpace(raw))
		return token.BlockListEnumerated, delim, true
	}
	return 0, 0, false
}

// skipOneLeadingSpace mirrors classify.Line's dispatch peek: the classifier
// looks past exactly one leading space before deciding a line's type, so
// marker rescans here on raw bytes must skip the same single byte to agree
// with it.
func skipOneLeadingSpace(raw []byte) []byte {
	if len(raw) > 0 && raw[0] == ' ' {
		return raw[1:]
	}
	return raw
}
