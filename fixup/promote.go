package fixup

import "github.com/mdcore/mdcore/token"

// Promote implements emphasis→strong promotion (spec §4.7).
//
// Adaptation note (see DESIGN.md "Emphasis/strong promotion decided by
// token Len"): the reference
// tokenizes one STAR/UL token per delimiter character and promotes two
// contiguous single-char pairs into a STRONG pair. mdcore's tokenizer
// instead does maximal-munch on a run of '*'/'_' (§4.1's "deterministic
// maximal-munch scanner"), so a "**" run is already a single Len==2 token
// by the time it is paired. Promote therefore decides STRONG vs EMPH from
// the matched token's own Len, which is equivalent in outcome (a run of
// two delimiters pairs to STRONG, a run of one pairs to EMPH) without
// needing to merge adjacent sibling tokens. A run of three or more
// ("***x***") splits: the outer two characters of each delimiter become
// the STRONG pair, and the leftover character(s) are spliced in as a
// nested EMPH_START/EMPH_STOP pair immediately inside it, matching spec
// §8 invariant 7 ("strong-before-emphasis": both mates present,
// content order preserved).
func Promote(tr *token.Tree, parent token.ID) {
	tr.Siblings(tr.Get(parent).Child, func(id token.ID, t token.Token) bool {
		if t.Type == token.PairStar || t.Type == token.PairUL {
			promotePair(tr, parent, id, t)
			t = tr.Get(id)
		}
		Promote(tr, id)
		return true
	})
}

func promotePair(tr *token.Tree, parent, id token.ID, t token.Token) {
	mate := t.Mate
	if mate == 0 {
		return
	}
	ct := tr.Get(mate)

	if t.Len >= 2 {
		promoteToStrong(tr, parent, id, t, mate, ct)
		return
	}

	t.Type = token.EmphStart
	ct.Type = token.EmphStop
	tr.Set(id, t)
	tr.Set(mate, ct)
}

// promoteToStrong retypes a delimiter pair to a STRONG_START/STRONG_STOP
// pair of canonical length 2: the opener keeps its first two characters,
// the closer keeps its last two (Start shifts right by the leftover
// length). A run longer than two leaves `extra` delimiter bytes on each
// side; those become a new nested EMPH_START/EMPH_STOP pair, spliced in as
// siblings immediately inside the STRONG markers, so "***x***" yields
// STRONG_START EMPH_START x EMPH_STOP STRONG_STOP.
func promoteToStrong(tr *token.Tree, parent, id token.ID, t token.Token, mate token.ID, ct token.Token) {
	extra := t.Len - 2
	closeStart := ct.Start

	t.Type = token.StrongStart
	t.Len = 2
	tr.Set(id, t)

	ct.Type = token.StrongStop
	ct.Start = closeStart + extra
	ct.Len = 2
	tr.Set(mate, ct)

	if extra <= 0 {
		return
	}

	beforeMate := ct.Prev

	emphStart := tr.New(token.EmphStart, t.Start+2, extra)
	emphStop := tr.New(token.EmphStop, closeStart, extra)
	es, eo := tr.Get(emphStart), tr.Get(emphStop)
	es.Mate, eo.Mate = emphStop, emphStart
	tr.Set(emphStart, es)
	tr.Set(emphStop, eo)

	tr.InsertAfter(parent, id, emphStart)
	tr.InsertAfter(parent, beforeMate, emphStop)
}
