// Package scanners holds the byte-level line scanners shared by the
// classifier and block grammar driver: small functions that look at the
// start of a line (or line run) and report whether/how far a construct
// matches, in the maximal-munch style of scandown's delimiter/fence/ruler
// helpers.
package scanners

import "bytes"

// Delimiter matches a run of 1..maxWidth of the given marker bytes at the
// start of line, followed by a space, tab, or end of line. It reports the
// matched byte, the run width, and the remaining tail after the run (NOT
// after any trailing space).
func Delimiter(line []byte, maxWidth int, marks ...byte) (delim byte, width int, tail []byte) {
	if len(line) == 0 || !IsByte(line[0], marks...) {
		return 0, 0, nil
	}
	delim = line[0]
	width = 1
	tail = line[1:]
	for {
		if len(tail) == 0 {
			return delim, width, tail
		}
		switch tail[0] {
		case delim:
			if width++; width > maxWidth {
				return 0, 0, nil
			}
			tail = tail[1:]
		case ' ', '\t':
			return delim, width, tail
		default:
			return 0, 0, nil
		}
	}
}

// Ordinal matches a decimal list ordinal ("1.", "12)") of 1..9 digits at the
// start of line.
func Ordinal(line []byte) (delim byte, width int, tail []byte) {
	tail = line
	for len(tail) > 0 {
		switch c := tail[0]; {
		case c >= '0' && c <= '9':
			width++
			tail = tail[1:]
			continue
		case c == '.' || c == ')':
			delim = c
			tail = tail[1:]
		}
		break
	}
	if delim == 0 || width < 1 || width > 9 {
		return 0, 0, nil
	}
	width++
	return delim, width, tail
}

// Fence matches a run of at least min of the given fence bytes at the start
// of line (code fences: backtick or tilde).
func Fence(line []byte, min int, marks ...byte) (fence byte, width int, tail []byte) {
	if len(line) == 0 || !IsByte(line[0], marks...) {
		return 0, 0, nil
	}
	fence = line[0]
	width = 1
	for ; width < len(line); width++ {
		if line[width] != fence {
			break
		}
	}
	if width < min {
		return 0, 0, nil
	}
	return fence, width, line[width:]
}

// Ruler matches a horizontal-rule line: 3 or more of the same rule byte,
// interspersed with arbitrary amounts of space/tab, and nothing else.
func Ruler(line []byte, marks ...byte) (rule byte, width int, tail []byte) {
	if len(line) == 0 || !IsByte(line[0], marks...) {
		return 0, 0, nil
	}
	rule = line[0]
	count := 1
	width = 1
	for ; width < len(line); width++ {
		switch line[width] {
		case rule:
			count++
		case ' ', '\t':
		default:
			return 0, 0, nil
		}
	}
	if count < 3 {
		return 0, 0, nil
	}
	return rule, width, line[width:]
}

// QuoteMarker matches a blockquote marker ('>' optionally followed by one
// space) at the start of line.
func QuoteMarker(line []byte) (delim byte, width int, cont []byte) {
	if delim, width, tail := Delimiter(line, 3, '>'); delim != 0 {
		if in, cont := TrimIndent(tail, 1, 1); in > 0 || len(cont) == 0 {
			return delim, width + in, cont
		}
	}
	return 0, 0, nil
}

// ListMarker matches a bulleted ('-', '*', '+') or enumerated ("1.", "1)")
// list item marker at the start of line.
func ListMarker(line []byte) (delim byte, width int, cont []byte) {
	delim, width, tail := Delimiter(line, 1, '-', '*', '+')
	if delim == 0 {
		delim, width, tail = Ordinal(line)
	}
	if delim != 0 {
		if in, cont := TrimIndent(tail, 1, 1); in > 0 || len(cont) == 0 {
			return delim, width + in, cont
		}
	}
	return 0, 0, nil
}

// IsByte reports whether b is one of any.
func IsByte(b byte, any ...byte) bool {
	for _, ab := range any {
		if b == ab {
			return true
		}
	}
	return false
}

// TrimNewline strips any trailing \r, \n, or \r\n from line.
func TrimNewline(line []byte) []byte {
	i := len(line) - 1
	for i >= 0 {
		switch line[i] {
		case '\r', '\n':
			i--
		default:
			return line[:i+1]
		}
	}
	return line[:0]
}

// TrimIndent consumes up to limit columns of leading space/tab indent
// (counting a tab as advancing to the next 4-column stop, starting from
// column prior), returning the columns consumed and the remaining tail.
func TrimIndent(line []byte, prior, limit int) (n int, tail []byte) {
	for tail = line; n < limit && len(tail) > 0; tail = tail[1:] {
		if c := tail[0]; c == ' ' {
			n++
		} else if c == '\t' {
			if m := n + 4 - prior; m > limit {
				return n, tail
			} else if m == limit {
				return m, tail
			} else {
				n = m
			}
			prior = 0
		} else {
			break
		}
	}
	return n, tail
}

// FenceStart matches the opening line of a fenced code block: 3 or more
// backticks or tildes, optionally followed by an info string (language
// tag). It reports the fence byte, its width, and the info string with
// surrounding space trimmed.
func FenceStart(line []byte) (delim byte, width int, info []byte, ok bool) {
	delim, width, tail := Fence(line, 3, '`', '~')
	if delim == 0 {
		return 0, 0, nil, false
	}
	tail = TrimNewline(tail)
	info = bytes.TrimSpace(tail)
	if delim == '`' && bytes.IndexByte(info, '`') >= 0 {
		// a backtick fence's info string must not itself contain a backtick,
		// else it would be ambiguous with inline code spans
		return 0, 0, nil, false
	}
	return delim, width, info, true
}

// FenceEnd reports whether line closes a fence opened with delim/openWidth:
// up to 3 leading spaces, then a run of at least openWidth delim bytes, then
// only trailing whitespace.
func FenceEnd(line []byte, delim byte, openWidth int) bool {
	_, tail := TrimIndent(line, 0, 3)
	closeDelim, _, tail := Fence(tail, openWidth, delim)
	if closeDelim == 0 {
		return false
	}
	return len(bytes.TrimSpace(TrimNewline(tail))) == 0
}

// htmlBlockTags are the block-level tag names that, appearing at the very
// start of a line as an opening or closing tag, begin an HTML block (rather
// than inline HTML needing paired-tag balancing).
var htmlBlockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "base": true,
	"basefont": true, "blockquote": true, "body": true, "caption": true,
	"center": true, "col": true, "colgroup": true, "dd": true, "details": true,
	"dialog": true, "dir": true, "div": true, "dl": true, "dt": true,
	"fieldset": true, "figcaption": true, "figure": true, "footer": true,
	"form": true, "frame": true, "frameset": true, "h1": true, "h2": true,
	"h3": true, "h4": true, "h5": true, "h6": true, "head": true,
	"header": true, "hr": true, "html": true, "iframe": true, "legend": true,
	"li": true, "link": true, "main": true, "menu": true, "menuitem": true,
	"nav": true, "noframes": true, "ol": true, "optgroup": true,
	"option": true, "p": true, "param": true, "section": true, "source": true,
	"summary": true, "table": true, "tbody": true, "td": true,
	"tfoot": true, "th": true, "thead": true, "title": true, "tr": true,
	"track": true, "ul": true,
}

// HTMLBlock reports whether line opens an HTML block: a line beginning
// (after up to 3 spaces of indent) with '<' followed by a recognized
// block-level tag name, an HTML comment start "<!--", or a processing
// instruction "<?".
func HTMLBlock(line []byte) bool {
	_, tail := TrimIndent(line, 0, 3)
	if len(tail) == 0 || tail[0] != '<' {
		return false
	}
	rest := tail[1:]
	if bytes.HasPrefix(rest, []byte("!--")) || (len(rest) > 0 && rest[0] == '?') {
		return true
	}
	name := tagName(rest)
	return name != "" && htmlBlockTags[name]
}

// HTMLLine reports whether line, taken alone, is a complete inline HTML
// construct: an opening or closing tag, a comment, or a processing
// instruction spanning exactly this line.
func HTMLLine(line []byte) bool {
	tail := bytes.TrimSpace(TrimNewline(line))
	if len(tail) < 3 || tail[0] != '<' || tail[len(tail)-1] != '>' {
		return false
	}
	inner := tail[1 : len(tail)-1]
	if bytes.HasPrefix(inner, []byte("!--")) || inner[0] == '?' {
		return true
	}
	if len(inner) > 0 && inner[0] == '/' {
		inner = inner[1:]
	}
	inner = bytes.TrimSuffix(inner, []byte("/"))
	name := tagName(inner)
	return name != ""
}

func tagName(b []byte) string {
	i := 0
	for i < len(b) && (isAlpha(b[i]) || (i > 0 && isAlphaNum(b[i]))) {
		i++
	}
	if i == 0 {
		return ""
	}
	name := b[:i]
	lower := make([]byte, len(name))
	for j, c := range name {
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		lower[j] = byte(c)
	}
	return string(lower)
}

func isAlpha(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isAlphaNum(c byte) bool {
	return isAlpha(c) || c >= '0' && c <= '9' || c == '-'
}

// URL reports the byte length of a bare "http://" or "https://" autolink
// starting at the beginning of line, scanning until whitespace or '>' or
// end of line. Returns 0 if line does not start with a recognized scheme.
func URL(line []byte) int {
	var scheme string
	switch {
	case bytes.HasPrefix(line, []byte("http://")):
		scheme = "http://"
	case bytes.HasPrefix(line, []byte("https://")):
		scheme = "https://"
	case bytes.HasPrefix(line, []byte("ftp://")):
		scheme = "ftp://"
	default:
		return 0
	}
	n := len(scheme)
	for n < len(line) {
		c := line[n]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '>' || c == '"' {
			break
		}
		n++
	}
	return n
}

// MetaLine reports whether line matches a metadata "Key: value" pair: a
// key accepted by MetaKey, then ':', then the value to end of line.
func MetaLine(line []byte) bool {
	return MetaKey(line) > 0
}

// MetaKey returns the byte length of the key portion of a "Key: value"
// metadata line (up to but excluding the ':'), or 0 if line does not open
// with a valid metadata key. A valid key is non-empty and contains only
// letters, digits, spaces, tabs, and hyphens; its first byte is not checked
// further, so leading space is kept in the key for the caller to trim.
func MetaKey(line []byte) int {
	i := 0
	for i < len(line) {
		c := line[i]
		if c == ':' {
			if i == 0 {
				return 0
			}
			return i
		}
		if !(isAlpha(c) || c >= '0' && c <= '9' || c == ' ' || c == '-' || c == '\t') {
			return 0
		}
		i++
	}
	return 0
}

// RefLink matches a reference link definition such as
// `[id]: url "title"  {attr=val ...}`: it checks the bracketed label, the
// ':' and a non-empty URL, and accepts the rest of the line (title and any
// attributes block) without checking it. Returns the byte length of the
// match up to and including the newline, or 0.
func RefLink(line []byte) int {
	n := refLinkCore(line)
	if n == 0 {
		return 0
	}
	return n
}

// RefLinkNoAttributes matches a reference link definition
// `[id]: url "title"` with the same checks as RefLink; a trailing
// attribute block is not rejected.
func RefLinkNoAttributes(line []byte) int {
	return refLinkCore(line)
}

func refLinkCore(line []byte) int {
	if len(line) == 0 || line[0] != '[' {
		return 0
	}
	close := bytes.IndexByte(line, ']')
	if close < 0 || close+1 >= len(line) || line[close+1] != ':' {
		return 0
	}
	rest := line[close+2:]
	rest = bytes.TrimLeft(rest, " \t")
	urlLen := 0
	for urlLen < len(rest) && rest[urlLen] != ' ' && rest[urlLen] != '\t' &&
		rest[urlLen] != '\n' && rest[urlLen] != '\r' {
		urlLen++
	}
	if urlLen == 0 {
		return 0
	}
	eol := bytes.IndexByte(line, '\n')
	if eol < 0 {
		return len(line)
	}
	return eol + 1
}

// RefCitation matches a citation definition `[#id]: citation text`.
func RefCitation(line []byte) int {
	return refMarkedDefinition(line, '#')
}

// RefFoot matches a footnote definition `[^id]: footnote text`.
func RefFoot(line []byte) int {
	return refMarkedDefinition(line, '^')
}

func refMarkedDefinition(line []byte, mark byte) int {
	if len(line) < 2 || line[0] != '[' || line[1] != mark {
		return 0
	}
	close := bytes.IndexByte(line, ']')
	if close < 0 || close+1 >= len(line) || line[close+1] != ':' {
		return 0
	}
	eol := bytes.IndexByte(line, '\n')
	if eol < 0 {
		return len(line)
	}
	return eol + 1
}
