package token

import (
	"fmt"
	"io"
	"strconv"
)

// Type is the closed enumeration a Token's Type is drawn from. It partitions
// into four bands — inline atoms (produced by the tokenizer), line types
// (assigned by the classifier), block types (emitted by the block grammar),
// and pair/marker types (produced by ambidextrous assignment and pairing) —
// but all four bands share one namespace, because a Token's Type is mutated
// in place as it moves through the pipeline (an inline HASH atom becomes a
// MARKER_H1, a line token's LINE_PLAIN becomes LINE_TABLE, a paired STAR
// becomes EMPH_START or STRONG_START).
type Type int

// NoType is the zero value; it must never appear on a token reachable from
// the engine root once tokenization has completed.
const NoType Type = 0

const (
	_ Type = iota // reserve 0 for NoType

	// --- inline atom types (tokenizer, §3 band 1) ---
	NonIndentSpace
	IndentSpace
	IndentTab
	TextNL
	TextLinebreak
	BracketLeft
	BracketRight
	BracketCitationLeft
	BracketFootnoteLeft
	BracketImageLeft
	BracketVariableLeft
	ParenLeft
	ParenRight
	AngleLeft
	AngleRight
	BraceDoubleLeft
	BraceDoubleRight
	MathParenOpen
	MathParenClose
	MathBracketOpen
	MathBracketClose
	MathDollarSingle
	MathDollarDouble
	Backtick
	Star
	UL
	Superscript
	Subscript
	QuoteSingle
	QuoteDouble
	QuoteRightAlt
	Apostrophe
	DashN
	DashM
	Plus
	Hash1
	Hash2
	Hash3
	Hash4
	Hash5
	Hash6
	Pipe
	TextPlain
	TextNumberPossList
	CriticAddOpen
	CriticAddClose
	CriticDelOpen
	CriticDelClose
	CriticComOpen
	CriticComClose
	CriticSubOpen
	CriticSubDiv
	CriticSubDivA
	CriticSubDivB
	CriticSubClose
	CriticHiOpen
	CriticHiClose

	// --- line types (classifier, §3 band 2) ---
	LineEmpty
	LinePlain
	LineIndentedTab
	LineIndentedSpace
	LineATX1
	LineATX2
	LineATX3
	LineATX4
	LineATX5
	LineATX6
	LineBlockquote
	LineHR
	LineHTML
	LineFenceBacktick
	LineFenceBacktickStart
	LineListBulleted
	LineListEnumerated
	LineDefLink
	LineDefCitation
	LineDefFootnote
	LineMeta
	LineTable
	LineContinuation

	// --- block types (block grammar, §3 band 3) ---
	BlockPara
	BlockHR
	BlockH1
	BlockH2
	BlockH3
	BlockH4
	BlockH5
	BlockH6
	BlockBlockquote
	BlockCodeIndented
	BlockCodeFenced
	BlockListBulleted
	BlockListBulletedLoose
	BlockListEnumerated
	BlockListEnumeratedLoose
	BlockListItem
	BlockListItemTight
	BlockHTML
	BlockDefLink
	BlockDefCitation
	BlockDefFootnote
	BlockMeta
	BlockTable
	BlockEmpty
	DocStartToken
	RowTable

	// --- pair & post-pairing marker types (§3 band 4) ---
	PairStar
	PairUL
	PairBracket
	PairBracketCitation
	PairBracketFootnote
	PairBracketImage
	PairBracketVariable
	PairParen
	PairAngle
	PairBraces
	PairBacktick
	PairMath
	PairQuoteSingle
	PairQuoteDouble
	PairQuoteAlt
	PairCriticAdd
	PairCriticDel
	PairCriticCom
	PairCriticSubDel
	PairCriticSubAdd
	PairCriticHi
	PairSuperscript

	StrongStart
	StrongStop
	EmphStart
	EmphStop

	MarkerBlockquote
	MarkerH1
	MarkerH2
	MarkerH3
	MarkerH4
	MarkerH5
	MarkerH6
	MarkerListBullet
	MarkerListEnumerator

	TextEmpty
)

// ATXLevel maps an ATX heading line type to its 1..6 level. Panics if typ is
// not a LineATX* type.
func ATXLevel(typ Type) int {
	if typ < LineATX1 || typ > LineATX6 {
		panic("token: ATXLevel of non-ATX type")
	}
	return int(typ-LineATX1) + 1
}

// ATXHeadingLine returns the LineATX<n> type for a 1..6 heading level.
func ATXHeadingLine(level int) Type { return LineATX1 + Type(level-1) }

// ATXMarker returns the MarkerH<n> type for a 1..6 heading level.
func ATXMarker(level int) Type { return MarkerH1 + Type(level-1) }

// HeadingBlock returns the BlockH<n> type for a 1..6 heading level.
func HeadingBlock(level int) Type { return BlockH1 + Type(level-1) }

// Hash returns the HASH<n> inline type for a 1..6 run length.
func Hash(n int) Type { return Hash1 + Type(n-1) }

// HashLevel is the inverse of Hash: the run length of a HASH<n> type.
func HashLevel(typ Type) int { return int(typ-Hash1) + 1 }

var typeNames = map[Type]string{
	NonIndentSpace:      "NonIndentSpace",
	IndentSpace:         "IndentSpace",
	IndentTab:           "IndentTab",
	TextNL:              "TextNL",
	TextLinebreak:       "TextLinebreak",
	BracketLeft:         "BracketLeft",
	BracketRight:        "BracketRight",
	BracketCitationLeft: "BracketCitationLeft",
	BracketFootnoteLeft: "BracketFootnoteLeft",
	BracketImageLeft:    "BracketImageLeft",
	BracketVariableLeft: "BracketVariableLeft",
	ParenLeft:           "ParenLeft",
	ParenRight:          "ParenRight",
	AngleLeft:           "AngleLeft",
	AngleRight:          "AngleRight",
	BraceDoubleLeft:     "BraceDoubleLeft",
	BraceDoubleRight:    "BraceDoubleRight",
	MathParenOpen:       "MathParenOpen",
	MathParenClose:      "MathParenClose",
	MathBracketOpen:     "MathBracketOpen",
	MathBracketClose:    "MathBracketClose",
	MathDollarSingle:    "MathDollarSingle",
	MathDollarDouble:    "MathDollarDouble",
	Backtick:            "Backtick",
	Star:                "Star",
	UL:                  "UL",
	Superscript:         "Superscript",
	Subscript:           "Subscript",
	QuoteSingle:         "QuoteSingle",
	QuoteDouble:         "QuoteDouble",
	QuoteRightAlt:       "QuoteRightAlt",
	Apostrophe:          "Apostrophe",
	DashN:               "DashN",
	DashM:               "DashM",
	Plus:                "Plus",
	Hash1:               "Hash1",
	Hash2:               "Hash2",
	Hash3:               "Hash3",
	Hash4:               "Hash4",
	Hash5:               "Hash5",
	Hash6:               "Hash6",
	Pipe:                "Pipe",
	TextPlain:           "TextPlain",
	TextNumberPossList:  "TextNumberPossList",
	CriticAddOpen:       "CriticAddOpen",
	CriticAddClose:      "CriticAddClose",
	CriticDelOpen:       "CriticDelOpen",
	CriticDelClose:      "CriticDelClose",
	CriticComOpen:       "CriticComOpen",
	CriticComClose:      "CriticComClose",
	CriticSubOpen:       "CriticSubOpen",
	CriticSubDiv:        "CriticSubDiv",
	CriticSubDivA:       "CriticSubDivA",
	CriticSubDivB:       "CriticSubDivB",
	CriticSubClose:      "CriticSubClose",
	CriticHiOpen:        "CriticHiOpen",
	CriticHiClose:       "CriticHiClose",

	LineEmpty:              "LineEmpty",
	LinePlain:               "LinePlain",
	LineIndentedTab:         "LineIndentedTab",
	LineIndentedSpace:       "LineIndentedSpace",
	LineATX1:                "LineATX1",
	LineATX2:                "LineATX2",
	LineATX3:                "LineATX3",
	LineATX4:                "LineATX4",
	LineATX5:                "LineATX5",
	LineATX6:                "LineATX6",
	LineBlockquote:          "LineBlockquote",
	LineHR:                  "LineHR",
	LineHTML:                "LineHTML",
	LineFenceBacktick:       "LineFenceBacktick",
	LineFenceBacktickStart:  "LineFenceBacktickStart",
	LineListBulleted:        "LineListBulleted",
	LineListEnumerated:      "LineListEnumerated",
	LineDefLink:             "LineDefLink",
	LineDefCitation:         "LineDefCitation",
	LineDefFootnote:         "LineDefFootnote",
	LineMeta:                "LineMeta",
	LineTable:               "LineTable",
	LineContinuation:        "LineContinuation",

	BlockPara:                "BlockPara",
	BlockHR:                  "BlockHR",
	BlockH1:                  "BlockH1",
	BlockH2:                  "BlockH2",
	BlockH3:                  "BlockH3",
	BlockH4:                  "BlockH4",
	BlockH5:                  "BlockH5",
	BlockH6:                  "BlockH6",
	BlockBlockquote:          "BlockBlockquote",
	BlockCodeIndented:        "BlockCodeIndented",
	BlockCodeFenced:          "BlockCodeFenced",
	BlockListBulleted:        "BlockListBulleted",
	BlockListBulletedLoose:   "BlockListBulletedLoose",
	BlockListEnumerated:      "BlockListEnumerated",
	BlockListEnumeratedLoose: "BlockListEnumeratedLoose",
	BlockListItem:            "BlockListItem",
	BlockListItemTight:       "BlockListItemTight",
	BlockHTML:                "BlockHTML",
	BlockDefLink:             "BlockDefLink",
	BlockDefCitation:         "BlockDefCitation",
	BlockDefFootnote:         "BlockDefFootnote",
	BlockMeta:                "BlockMeta",
	BlockTable:               "BlockTable",
	BlockEmpty:               "BlockEmpty",
	DocStartToken:            "DocStartToken",
	RowTable:                 "RowTable",

	PairStar:             "PairStar",
	PairUL:               "PairUL",
	PairBracket:          "PairBracket",
	PairBracketCitation:  "PairBracketCitation",
	PairBracketFootnote:  "PairBracketFootnote",
	PairBracketImage:     "PairBracketImage",
	PairBracketVariable:  "PairBracketVariable",
	PairParen:            "PairParen",
	PairAngle:            "PairAngle",
	PairBraces:           "PairBraces",
	PairBacktick:         "PairBacktick",
	PairMath:             "PairMath",
	PairQuoteSingle:      "PairQuoteSingle",
	PairQuoteDouble:      "PairQuoteDouble",
	PairQuoteAlt:         "PairQuoteAlt",
	PairCriticAdd:        "PairCriticAdd",
	PairCriticDel:        "PairCriticDel",
	PairCriticCom:        "PairCriticCom",
	PairCriticSubDel:     "PairCriticSubDel",
	PairCriticSubAdd:     "PairCriticSubAdd",
	PairCriticHi:         "PairCriticHi",
	PairSuperscript:      "PairSuperscript",

	StrongStart: "StrongStart",
	StrongStop:  "StrongStop",
	EmphStart:   "EmphStart",
	EmphStop:    "EmphStop",

	MarkerBlockquote:     "MarkerBlockquote",
	MarkerH1:             "MarkerH1",
	MarkerH2:             "MarkerH2",
	MarkerH3:             "MarkerH3",
	MarkerH4:             "MarkerH4",
	MarkerH5:             "MarkerH5",
	MarkerH6:             "MarkerH6",
	MarkerListBullet:     "MarkerListBullet",
	MarkerListEnumerator: "MarkerListEnumerator",

	TextEmpty: "TextEmpty",
}

// String renders the type's symbolic name, or "Type(n)" for an unknown or
// NoType value.
func (t Type) String() string {
	if t == NoType {
		return "NoType"
	}
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Type(" + strconv.Itoa(int(t)) + ")"
}

// Format implements fmt.Formatter so that %v prints the same as String.
func (t Type) Format(f fmt.State, verb rune) {
	if verb != 'v' {
		fmt.Fprintf(f, "%%!%c(token.Type)", verb)
		return
	}
	io.WriteString(f, t.String())
}
