// Package lex implements the maximal-munch tokenizer: byte buffer in, a flat
// chain of line tokens out, each holding the inline atoms that cover its
// bytes. It mirrors the shape of scandown's bufio.SplitFunc loop (advance
// through the buffer, emit a token, repeat) but dispatches per-byte instead
// of per-line, and never consumes input itself — Tokenize drives a single
// pass building a token.Tree.
package lex

import (
	"github.com/mdcore/mdcore/token"
)

// Tokenize scans buf and returns the root token of a tree whose children are
// line tokens (type token.NoType, retyped later by classify.Line), each
// line's children being the inline atoms that cover its bytes in order, shut
// by a TextNL/TextLinebreak except possibly the final line.
func Tokenize(tr *token.Tree, buf []byte) token.ID {
	root := tr.New(token.NoType, 0, 0)
	line := tr.New(token.NoType, 0, 0)

	pos := 0
	lineStart := 0
	for pos < len(buf) {
		typ, n := scanOne(buf, pos, pos == lineStart)
		if n == 0 {
			// scanOne always makes progress via its TextPlain fallback; this
			// branch exists only to avoid an infinite loop on a scanner bug.
			n = 1
			typ = token.TextPlain
		}
		child := tr.New(typ, pos, n)
		tr.AppendChild(line, child)
		pos += n

		switch typ {
		case token.TextNL, token.TextLinebreak:
			lt := tr.Get(line)
			lt.Len = pos - lt.Start
			tr.Set(line, lt)
			tr.AppendChild(root, line)
			line = tr.New(token.NoType, pos, 0)
			lineStart = pos
		}
	}

	// final, possibly newline-less line, or the sole empty line of an empty
	// buffer
	if tr.Get(line).Child != 0 || tr.Get(root).Child == 0 {
		lt := tr.Get(line)
		lt.Len = pos - lt.Start
		tr.Set(line, lt)
		tr.AppendChild(root, line)
	}

	return root
}

// scanOne classifies the longest match starting at pos, returning its type
// and length. atLineStart indicates pos is the first byte of its line,
// which governs the NON_INDENT_SPACE/INDENT_SPACE/INDENT_TAB distinction.
func scanOne(buf []byte, pos int, atLineStart bool) (token.Type, int) {
	b := buf[pos]

	switch b {
	case '\n':
		return token.TextNL, 1
	case '\r':
		if pos+1 < len(buf) && buf[pos+1] == '\n' {
			return token.TextNL, 2
		}
		return token.TextNL, 1
	}

	if atLineStart {
		if b == '\t' {
			return token.IndentTab, 1
		}
		if b == ' ' {
			n := runLength(buf, pos, ' ')
			if n >= 4 {
				return token.IndentSpace, 4
			}
			return token.NonIndentSpace, n
		}
	}

	// trailing-whitespace-then-newline linebreak: 2+ spaces immediately
	// before a line ending is a hard break, not plain indentation.
	if b == ' ' {
		n := runLength(buf, pos, ' ')
		if n >= 2 && pos+n < len(buf) && (buf[pos+n] == '\n' || buf[pos+n] == '\r') {
			eol := pos + n
			elen := 1
			if buf[eol] == '\r' && eol+1 < len(buf) && buf[eol+1] == '\n' {
				elen = 2
			}
			return token.TextLinebreak, n + elen
		}
		return token.NonIndentSpace, n
	}
	if b == '\t' {
		return token.NonIndentSpace, 1
	}

	switch b {
	case '[':
		switch {
		case has(buf, pos, "[#"):
			return token.BracketCitationLeft, 2
		case has(buf, pos, "[^"):
			return token.BracketFootnoteLeft, 2
		case has(buf, pos, "[%"):
			return token.BracketVariableLeft, 2
		}
		return token.BracketLeft, 1
	case ']':
		return token.BracketRight, 1
	case '(':
		return token.ParenLeft, 1
	case ')':
		return token.ParenRight, 1
	case '<':
		// the critic-comment closer "<<}" must be recognized here, at its
		// leading byte — by the time a scan reaches the '}' it is too late,
		// since '<' has already been consumed as its own atom.
		if has(buf, pos, "<<}") {
			return token.CriticComClose, 3
		}
		return token.AngleLeft, 1
	case '>':
		return token.AngleRight, 1
	case '{':
		if has(buf, pos, "{++") {
			return token.CriticAddOpen, 3
		}
		if has(buf, pos, "{--") {
			return token.CriticDelOpen, 3
		}
		if has(buf, pos, "{>>") {
			return token.CriticComOpen, 3
		}
		if has(buf, pos, "{~~") {
			return token.CriticSubOpen, 3
		}
		if has(buf, pos, "{==") {
			return token.CriticHiOpen, 3
		}
		if has(buf, pos, "{{") {
			return token.BraceDoubleLeft, 2
		}
	case '}':
		if has(buf, pos, "}}") {
			return token.BraceDoubleRight, 2
		}
	case '~':
		// the critic-substitution closer "~~}" and its "~>" divider are both
		// recognized at their leading '~'; any other '~' is a subscript.
		if has(buf, pos, "~~}") {
			return token.CriticSubClose, 3
		}
		if has(buf, pos, "~>") {
			return token.CriticSubDiv, 2
		}
		return token.Subscript, 1
	case '`':
		return token.Backtick, runLength(buf, pos, '`')
	case '*':
		return token.Star, runLength(buf, pos, '*')
	case '_':
		return token.UL, runLength(buf, pos, '_')
	case '^':
		return token.Superscript, 1
	case '\'':
		return token.QuoteSingle, 1
	case '"':
		return token.QuoteDouble, 1
	case '-':
		if has(buf, pos, "--}") {
			return token.CriticDelClose, 3
		}
		n := runLength(buf, pos, '-')
		if n >= 2 {
			return token.DashM, n
		}
		return token.DashN, 1
	case '+':
		if has(buf, pos, "++}") {
			return token.CriticAddClose, 3
		}
		return token.Plus, 1
	case '#':
		n := runLength(buf, pos, '#')
		if n > 6 {
			n = 6
		}
		return token.Hash(n), n
	case '|':
		return token.Pipe, 1
	case '$':
		if has(buf, pos, "$$") {
			return token.MathDollarDouble, 2
		}
		return token.MathDollarSingle, 1
	case '=':
		if has(buf, pos, "==}") {
			return token.CriticHiClose, 3
		}
	case '\\':
		if pos+1 < len(buf) {
			switch buf[pos+1] {
			case '(':
				return token.MathParenOpen, 2
			case ')':
				return token.MathParenClose, 2
			case '[':
				return token.MathBracketOpen, 2
			case ']':
				return token.MathBracketClose, 2
			}
		}
	}

	if b >= '0' && b <= '9' {
		n := 0
		for pos+n < len(buf) && buf[pos+n] >= '0' && buf[pos+n] <= '9' {
			n++
		}
		return token.TextNumberPossList, n
	}

	return token.TextPlain, plainRun(buf, pos)
}

// plainRun returns the length of a maximal run of bytes that scanOne would
// otherwise classify as individual TEXT_PLAIN bytes, i.e. everything up to
// the next byte that scanOne would give a more specific type.
func plainRun(buf []byte, pos int) int {
	n := 1
	for pos+n < len(buf) {
		switch c := buf[pos+n]; c {
		case '\n', '\r', ' ', '\t',
			'[', ']', '(', ')', '<', '>', '{', '}', '~', '`', '*', '_', '^',
			'\'', '"', '-', '+', '#', '|', '$', '\\', '=':
			return n
		default:
			if c >= '0' && c <= '9' {
				return n
			}
			n++
		}
	}
	return n
}

func runLength(buf []byte, pos int, c byte) int {
	n := 0
	for pos+n < len(buf) && buf[pos+n] == c {
		n++
	}
	return n
}

func has(buf []byte, pos int, s string) bool {
	if pos+len(s) > len(buf) {
		return false
	}
	return string(buf[pos:pos+len(s)]) == s
}
