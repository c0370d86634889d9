// Package pairing implements the token-pair engine (spec §4.5): a
// table-driven matcher that walks a sequence of siblings with a single
// reusable candidate stack, matching open/close delimiter pairs according
// to a small per-pass rule table.
package pairing

import "github.com/mdcore/mdcore/token"

// Flag is one of the per-rule matching behaviors a Rule may combine.
type Flag int

const (
	// AllowEmpty permits a pair whose opener and closer are adjacent
	// siblings (no content between them). Without it, such a candidate
	// pair is rejected and the opener stays on the stack.
	AllowEmpty Flag = 1 << iota
	// PruneMatch reparents the content between a matched pair to become
	// the opener's children (structural pairing). Without it the pair is
	// flat: opener and closer remain siblings flanking their content.
	PruneMatch
	// MatchLength requires the opener and closer to have equal Len.
	MatchLength
)

// Rule is one (open_type, close_type, pair_type, flags) entry in an
// Engine's table.
type Rule struct {
	Open, Close token.Type
	Pair        token.Type
	Flags       Flag
}

// Engine is a table of pairing Rules plus the reusable candidate stack
// used to evaluate them against one sibling sequence at a time.
type Engine struct {
	rules []Rule
	stack []token.ID
}

// New builds an Engine from the given rule table.
func New(rules ...Rule) *Engine {
	return &Engine{rules: rules}
}

// Reset discards any leftover candidates from a previous Run, matching the
// "shared, reset-between-passes candidate stack" of spec §4.6. Callers
// invoke Reset before each new parent's sibling chain.
func (e *Engine) Reset() { e.stack = e.stack[:0] }

// Run executes one pairing pass over the sibling chain starting at first,
// all direct children of parent (spec §4.5's three-step algorithm). It
// mutates Mate/Type on matched tokens and, for PruneMatch rules, reparents
// the content run strictly between opener and closer as the opener's
// children.
func (e *Engine) Run(tr *token.Tree, parent, first token.ID) {
	id := first
	for id != 0 {
		t := tr.Get(id)
		next := t.Next

		if e.tryClose(tr, parent, id, t) {
			id = next
			continue
		}
		if e.isOpenType(t.Type) && canOpen(t) {
			e.stack = append(e.stack, id)
		}
		id = next
	}
}

// tryClose attempts to close id against the nearest same-typed candidate on
// the stack, for the first rule (in table order) whose Close type matches
// id's type. Step 1 of spec §4.5.
func (e *Engine) tryClose(tr *token.Tree, parent, id token.ID, t token.Token) bool {
	if !canClose(t) {
		return false
	}
	for _, r := range e.rules {
		if r.Close != t.Type {
			continue
		}
		for i := len(e.stack) - 1; i >= 0; i-- {
			openID := e.stack[i]
			ot := tr.Get(openID)
			if ot.Type != r.Open {
				continue
			}
			if r.Flags&MatchLength != 0 && ot.Len != t.Len {
				break // opener found but disqualified; it returns to the stack
			}
			if r.Flags&AllowEmpty == 0 && ot.Next == id {
				break // zero-distance pair rejected; opener returns to the stack
			}
			e.stack = e.stack[:i] // pop opener, discarding intervening candidates
			e.complete(tr, parent, openID, id, r)
			return true
		}
	}
	return false
}

// complete links openID and id as mates, retypes both to the rule's pair
// type, and, for PruneMatch, reparents the content between them.
func (e *Engine) complete(tr *token.Tree, parent, openID, closeID token.ID, r Rule) {
	ot := tr.Get(openID)
	ct := tr.Get(closeID)
	ot.Mate = closeID
	ct.Mate = openID
	ot.Type = r.Pair
	ct.Type = r.Pair
	tr.Set(openID, ot)
	tr.Set(closeID, ct)

	if r.Flags&PruneMatch != 0 {
		first := ot.Next
		if first != closeID {
			last := tr.Get(closeID).Prev
			tr.Remove(parent, first, last)
			tr.AppendChain(openID, first, last)
		}
	}
}

func (e *Engine) isOpenType(typ token.Type) bool {
	for _, r := range e.rules {
		if r.Open == typ {
			return true
		}
	}
	return false
}

// canOpen/canClose gate ambidextrous tokens by their assigned flags; types
// the ambidextrous pass never visits keep the default of true that
// token.Tree.New gives every new token (spec §3: "both default true").
func canOpen(t token.Token) bool  { return t.CanOpen }
func canClose(t token.Token) bool { return t.CanClose }
