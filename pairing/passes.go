package pairing

import "github.com/mdcore/mdcore/token"

// Config carries the subset of engine extension flags that affect which
// passes run.
type Config struct {
	Critic        bool
	Compatibility bool
}

// Critic is Pass 1 (spec §4.6): critic-markup add/del/comment/substitute/
// highlight delimiters. All rules are AllowEmpty|PruneMatch — critic spans
// may be empty and their content becomes the pair's children so Pass 2 can
// recognize brackets nested inside a substitution or highlight.
func Critic() *Engine {
	const f = AllowEmpty | PruneMatch
	return New(
		Rule{token.CriticAddOpen, token.CriticAddClose, token.PairCriticAdd, f},
		Rule{token.CriticDelOpen, token.CriticDelClose, token.PairCriticDel, f},
		Rule{token.CriticComOpen, token.CriticComClose, token.PairCriticCom, f},
		Rule{token.CriticHiOpen, token.CriticHiClose, token.PairCriticHi, f},
		Rule{token.CriticSubOpen, token.CriticSubDivA, token.PairCriticSubDel, f},
		Rule{token.CriticSubDivB, token.CriticSubClose, token.PairCriticSubAdd, f},
	)
}

// Brackets is Pass 2 (spec §4.6): bracket/paren/angle/brace/backtick/math
// pairing. Bracket variants all close on the plain BRACKET_RIGHT; parens,
// angles, double-braces and backticks require matching run length and
// disallow empty pairs; the four math variants (non-compat) allow empty
// content. Math rules are omitted under compat: the tokenizer still emits
// MATH_DOLLAR_*/MATH_PAREN_*/MATH_BRACKET_* atoms unconditionally (lexing is
// context-free), and ambidextrous.Assign leaves their CanOpen/CanClose at
// the token-default true under EXT_COMPATIBILITY rather than narrowing them
// — so the pass itself must be the one to keep them out of PAIR_MATH,
// matching spec §8 invariant 6.
func Brackets(compat bool) *Engine {
	const bracket = PruneMatch
	const strict = MatchLength | PruneMatch
	const math = AllowEmpty | PruneMatch
	rules := []Rule{
		{token.BracketLeft, token.BracketRight, token.PairBracket, bracket},
		{token.BracketCitationLeft, token.BracketRight, token.PairBracketCitation, bracket},
		{token.BracketFootnoteLeft, token.BracketRight, token.PairBracketFootnote, bracket},
		{token.BracketImageLeft, token.BracketRight, token.PairBracketImage, bracket},
		{token.BracketVariableLeft, token.BracketRight, token.PairBracketVariable, bracket},
		{token.ParenLeft, token.ParenRight, token.PairParen, strict},
		{token.AngleLeft, token.AngleRight, token.PairAngle, strict},
		{token.BraceDoubleLeft, token.BraceDoubleRight, token.PairBraces, strict},
		{token.Backtick, token.Backtick, token.PairBacktick, strict},
	}
	if !compat {
		rules = append(rules,
			Rule{token.MathParenOpen, token.MathParenClose, token.PairMath, math},
			Rule{token.MathBracketOpen, token.MathBracketClose, token.PairMath, math},
			Rule{token.MathDollarSingle, token.MathDollarSingle, token.PairMath, math},
			Rule{token.MathDollarDouble, token.MathDollarDouble, token.PairMath, math},
		)
	}
	return New(rules...)
}

// Emphasis is Pass 3 (spec §4.6): STAR/UL emphasis (flat, no empty pairs —
// Promote then decides emphasis vs strong), the backtick/smart-quote
// "``...''" syntax, straight smart quotes, and (non-compat) sub/superscript
// self-pairing.
func Emphasis(compat bool) *Engine {
	rules := []Rule{
		{token.Star, token.Star, token.PairStar, 0},
		{token.UL, token.UL, token.PairUL, 0},
		{token.Backtick, token.QuoteRightAlt, token.PairQuoteAlt, AllowEmpty | MatchLength},
		{token.QuoteSingle, token.QuoteSingle, token.PairQuoteSingle, 0},
		{token.QuoteDouble, token.QuoteDouble, token.PairQuoteDouble, 0},
	}
	if !compat {
		rules = append(rules,
			Rule{token.Superscript, token.Superscript, token.PairSuperscript, 0},
			Rule{token.Subscript, token.Subscript, token.PairSuperscript, 0},
		)
	}
	return New(rules...)
}

// Passes runs the three ordered pairing passes (spec §4.6) over block,
// recursing into containers (blockquote, lists, list items) and table rows
// the same way ambidextrous.Assign does; Critic is omitted entirely when
// cfg.Critic is false, matching the extension gate rather than running an
// engine with no rules.
func Passes(tr *token.Tree, block token.ID, cfg Config) {
	var engines []*Engine
	if cfg.Critic {
		engines = append(engines, Critic())
	}
	engines = append(engines, Brackets(cfg.Compatibility), Emphasis(cfg.Compatibility))
	runOn(tr, block, engines)
}

func runOn(tr *token.Tree, block token.ID, engines []*Engine) {
	switch tr.Get(block).Type {
	case token.DocStartToken,
		token.BlockBlockquote,
		token.BlockListBulleted, token.BlockListBulletedLoose,
		token.BlockListEnumerated, token.BlockListEnumeratedLoose,
		token.BlockListItem, token.BlockListItemTight,
		token.BlockTable:
		tr.Siblings(tr.Get(block).Child, func(id token.ID, _ token.Token) bool {
			runOn(tr, id, engines)
			return true
		})

	case token.BlockH1, token.BlockH2, token.BlockH3, token.BlockH4, token.BlockH5, token.BlockH6,
		token.BlockPara, token.RowTable:
		for _, e := range engines {
			e.Reset()
			e.Run(tr, block, tr.Get(block).Child)
		}
	}
}
