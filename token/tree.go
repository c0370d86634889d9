package token

// AppendChild links child as the new last child of parent, updating the
// Tail cache held on parent's first child. child must not already be linked
// into any chain (its Next/Prev are overwritten).
func (tr *Tree) AppendChild(parent, child ID) {
	tr.AppendChain(parent, child, child)
}

// AppendChain links the pre-built sibling run [first..last] (last reachable
// from first by following Next) as the new tail of parent's children.
// Use this instead of repeated AppendChild when re-attaching a chain whose
// internal Next/Prev links are already correct, e.g. a line's absorbed
// inline children, or a pairing's reparented content run.
func (tr *Tree) AppendChain(parent, first, last ID) {
	if first == 0 {
		return
	}
	p := tr.Get(parent)
	fc := tr.Get(first)
	fc.Prev = 0
	if p.Child == 0 {
		p.Child = first
		tr.Set(parent, p)
		tr.Set(first, fc)
		tr.setTail(first, last)
		tr.clearNext(last)
		return
	}

	firstChild := tr.Get(p.Child)
	oldTail := firstChild.Tail
	ot := tr.Get(oldTail)
	ot.Next = first
	fc.Prev = oldTail
	tr.Set(oldTail, ot)
	tr.Set(first, fc)
	tr.setTail(p.Child, last)
	tr.clearNext(last)
}

// clearNext ends a chain at id, dropping any Next link left over from the
// chain id was linked into before.
func (tr *Tree) clearNext(id ID) {
	t := tr.Get(id)
	t.Next = 0
	tr.Set(id, t)
}

// setTail updates the Tail cache stored on firstChild to point at last.
func (tr *Tree) setTail(firstChild, last ID) {
	fc := tr.Get(firstChild)
	fc.Tail = last
	tr.Set(firstChild, fc)
}

// Last returns parent's last child in O(1), via the Tail cache on its first
// child. Returns 0 if parent has no children.
func (tr *Tree) Last(parent ID) ID {
	p := tr.Get(parent)
	if p.Child == 0 {
		return 0
	}
	return tr.Get(p.Child).Tail
}

// RemoveFirstChild unlinks and returns parent's first child, leaving the
// second child (if any) as the new first, with the Tail cache carried
// forward.
func (tr *Tree) RemoveFirstChild(parent ID) ID {
	p := tr.Get(parent)
	first := p.Child
	if first == 0 {
		return 0
	}
	fc := tr.Get(first)
	last := fc.Tail

	if fc.Next == 0 {
		p.Child = 0
	} else {
		p.Child = fc.Next
		nc := tr.Get(fc.Next)
		nc.Prev = 0
		tr.Set(fc.Next, nc)
		tr.setTail(fc.Next, last)
	}
	tr.Set(parent, p)

	fc.Next, fc.Prev, fc.Tail = 0, 0, 0
	tr.Set(first, fc)
	return first
}

// RemoveLastChild unlinks and returns parent's last child.
func (tr *Tree) RemoveLastChild(parent ID) ID {
	p := tr.Get(parent)
	if p.Child == 0 {
		return 0
	}
	firstChild := tr.Get(p.Child)
	last := firstChild.Tail
	lastTok := tr.Get(last)

	if lastTok.Prev == 0 {
		p.Child = 0
		tr.Set(parent, p)
	} else {
		prev := lastTok.Prev
		prevTok := tr.Get(prev)
		prevTok.Next = 0
		tr.Set(prev, prevTok)
		tr.setTail(p.Child, prev)
	}

	lastTok.Next, lastTok.Prev, lastTok.Tail = 0, 0, 0
	tr.Set(last, lastTok)
	return last
}

// Remove unlinks the contiguous run [first..last] (inclusive, last reachable
// from first via Next) from parent's children, repairing Child/Tail and the
// boundary Next/Prev links. first and last may be equal. Neither end needs
// to be parent's current first or last child.
func (tr *Tree) Remove(parent, first, last ID) {
	p := tr.Get(parent)
	ft := tr.Get(first)
	lt := tr.Get(last)
	before, after := ft.Prev, lt.Next

	firstChild := p.Child
	wasFirst := first == firstChild
	wasLast := firstChild != 0 && last == tr.Get(firstChild).Tail

	if before != 0 {
		bt := tr.Get(before)
		bt.Next = after
		tr.Set(before, bt)
	}
	if after != 0 {
		at := tr.Get(after)
		at.Prev = before
		tr.Set(after, at)
	}

	switch {
	case wasFirst && wasLast:
		p.Child = 0
		tr.Set(parent, p)
	case wasFirst:
		p.Child = after
		tr.Set(parent, p)
		tr.setTail(after, tr.Get(firstChild).Tail)
	case wasLast:
		tr.setTail(p.Child, before)
	}

	ft.Prev = 0
	lt.Next = 0
	tr.Set(first, ft)
	tr.Set(last, lt)
}

// InsertAfter splices the single token newID into parent's children
// immediately following after, updating the Tail cache if after was
// parent's last child. newID must not already be linked into any chain.
func (tr *Tree) InsertAfter(parent, after, newID ID) {
	at := tr.Get(after)
	nt := tr.Get(newID)
	nt.Prev = after
	nt.Next = at.Next

	if at.Next != 0 {
		following := tr.Get(at.Next)
		following.Prev = newID
		tr.Set(at.Next, following)
	} else {
		tr.setTail(tr.Get(parent).Child, newID)
	}

	at.Next = newID
	tr.Set(after, at)
	tr.Set(newID, nt)
}

// ExtractChildren detaches and returns the full child chain of parent
// (first and last ID, 0 if none), clearing parent.Child. The returned chain
// is ready to be handed to AppendChain elsewhere.
func (tr *Tree) ExtractChildren(parent ID) (first, last ID) {
	p := tr.Get(parent)
	first = p.Child
	if first == 0 {
		return 0, 0
	}
	last = tr.Get(first).Tail
	p.Child = 0
	tr.Set(parent, p)
	return first, last
}

// Siblings calls fn for each token in the chain starting at first, following
// Next, until exhausted or fn returns false.
func (tr *Tree) Siblings(first ID, fn func(id ID, t Token) bool) {
	for id := first; id != 0; {
		t := tr.Get(id)
		if !fn(id, t) {
			return
		}
		id = t.Next
	}
}

// Count returns the number of siblings from first to the end of its chain.
func (tr *Tree) Count(first ID) int {
	n := 0
	tr.Siblings(first, func(ID, Token) bool { n++; return true })
	return n
}
