// Package token defines the typed span tree that the parsing core builds:
// a flat arena of Tokens addressed by ID, linked into trees via Next/Prev/
// Child/Tail/Mate fields rather than pointers.
//
// An ID of 0 means "no token" everywhere (the zero Token is never a valid
// handle); real tokens start at ID 1. This lets the zero value of a Token
// and of an ID both mean "absent" without a separate validity flag, the way
// scanio's arena tokens use a nil *ByteArena to mean the same thing.
package token

import "fmt"

// ID addresses a Token within a Tree. The zero ID means "no token".
type ID int

// Tree is an arena of Tokens backed by a single immutable source buffer.
// It owns every Token ever allocated against it; there is no free list,
// since a parse is a one-shot construction consumed then discarded with the
// Tree itself (see DESIGN.md's `token/` component entry).
type Tree struct {
	buf  []byte
	toks []Token
}

// Token is a half-open byte range [Start, Start+Len) in the Tree's source
// buffer, typed, linked into a sibling chain (Next/Prev), with a first-child
// link (Child) and a matched-delimiter link (Mate).
//
// Tail is only meaningful on the first child of some parent: it caches that
// parent's last child, enabling O(1) append. Reading Tail on any other
// sibling is undefined by convention (never written, never consulted).
//
// CanOpen and CanClose are only meaningful for ambidextrous Types (STAR, UL,
// quotes, backtick runs, math/sub/sup delimiters); other types never
// consult them. Both default to true on allocation.
type Token struct {
	Type  Type
	Start int
	Len   int

	Next, Prev, Child, Tail, Mate ID

	CanOpen  bool
	CanClose bool
}

// End returns the byte offset just past the token's range.
func (t Token) End() int { return t.Start + t.Len }

// NewTree creates an empty arena over buf. buf is never copied or mutated;
// the Tree borrows it for its entire lifetime (§5 "read-only throughout the
// parse").
func NewTree(buf []byte) *Tree {
	return &Tree{buf: buf}
}

// Buf returns the shared source buffer the tree's tokens index into.
func (tr *Tree) Buf() []byte { return tr.buf }

// New allocates a fresh, unlinked token of the given type and range, and
// returns its ID.
func (tr *Tree) New(typ Type, start, length int) ID {
	tr.toks = append(tr.toks, Token{
		Type: typ, Start: start, Len: length,
		CanOpen: true, CanClose: true,
	})
	return ID(len(tr.toks))
}

// Get returns a copy of the token referenced by id. Get(0) returns the zero
// Token.
func (tr *Tree) Get(id ID) Token {
	if id == 0 {
		return Token{}
	}
	return tr.toks[id-1]
}

// Set overwrites the token referenced by id. Set(0, ...) is a no-op.
func (tr *Tree) Set(id ID, t Token) {
	if id == 0 {
		return
	}
	tr.toks[id-1] = t
}

// Bytes returns the slice of the source buffer covered by id. It aliases the
// tree's buffer and must not be retained past any mutation of id's range.
func (tr *Tree) Bytes(id ID) []byte {
	t := tr.Get(id)
	return tr.buf[t.Start:t.End()]
}

// Text copies the bytes covered by id into a new string.
func (tr *Tree) Text(id ID) string { return string(tr.Bytes(id)) }

// SetType mutates just the Type field of id in place, matching the
// reference's habit of rewriting a token's type rather than replacing the
// token (line classification, ambidextrous retyping, pair promotion all work
// this way).
func (tr *Tree) SetType(id ID, typ Type) {
	t := tr.Get(id)
	t.Type = typ
	tr.Set(id, t)
}

// Format implements fmt.Formatter, printing "Type@start+len" under %v and
// additionally the link fields under %+v. Mirrors scandown.Block.Format.
func (t Token) Format(f fmt.State, c rune) {
	if c != 'v' {
		fmt.Fprintf(f, "%%!%c(token.Token)", c)
		return
	}
	fmt.Fprintf(f, "%v@%d+%d", t.Type, t.Start, t.Len)
	if f.Flag('+') {
		fmt.Fprintf(f, " next=%d prev=%d child=%d tail=%d mate=%d open=%v close=%v",
			t.Next, t.Prev, t.Child, t.Tail, t.Mate, t.CanOpen, t.CanClose)
	}
}
