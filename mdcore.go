// Package mdcore parses MultiMarkdown-family text into a token tree: a
// tokenizer (lex), a line classifier (classify), a block-grammar driver
// (blockgrammar), an ambidextrous delimiter pass (ambidextrous), a
// three-pass pairing engine (pairing), and a set of post-pairing fixups
// (fixup) — wired together by the Engine type below.
package mdcore

import (
	"fmt"
	"io"

	"github.com/mdcore/mdcore/blockgrammar"
	"github.com/mdcore/mdcore/classify"
	"github.com/mdcore/mdcore/fixup"
	"github.com/mdcore/mdcore/i18n"
	"github.com/mdcore/mdcore/lex"
	"github.com/mdcore/mdcore/token"
)

// Extension is a bitset of optional parsing behaviors, mirroring
// mmd_engine_create's flags argument.
type Extension uint32

const (
	// ExtCompatibility turns off the MultiMarkdown-only syntax: metadata
	// (BLOCK_META is demoted to an ordinary paragraph), math, sub/superscript
	// and fenced code, and it overrides ExtCritic, ExtNotes and ExtSmart.
	ExtCompatibility Extension = 1 << iota
	// ExtNoMetadata disables document-metadata recognition, the same way
	// ExtCompatibility does, without turning off any other syntax.
	ExtNoMetadata
	// ExtCritic enables CriticMarkup add/del/comment/substitute/highlight
	// delimiters (pairing Pass 1).
	ExtCritic
	// ExtNotes enables footnote/citation line classification.
	ExtNotes
	// ExtSmart enables smart-quote and smart-dash ambidextrous assignment.
	ExtSmart
)

// Has reports whether all bits in want are set in e.
func (e Extension) Has(want Extension) bool { return e&want == want }

// Engine holds one document's parse state: its token arena, extension
// flags, active language, and the metadata extracted during fixups. An
// Engine is built fresh per document, matching mmd_engine_create/
// mmd_engine_free's one-engine-per-document lifetime; there is no
// concurrency support across documents (spec §5 Non-goals).
type Engine struct {
	buf  []byte
	ext  Extension
	lang i18n.Language

	tr    *token.Tree
	root  token.ID
	state fixup.State
}

// New creates an Engine over buf with the given extensions. The buffer is
// not copied; callers must not mutate it for the Engine's lifetime.
func New(buf []byte, extensions Extension) *Engine {
	e := &Engine{
		buf:  buf,
		ext:  extensions,
		lang: i18n.English,
	}
	compat := extensions.Has(ExtCompatibility)
	e.state.Cfg = fixup.Config{
		Compatibility: compat,
		NoMetadata:    extensions.Has(ExtNoMetadata),
		Notes:         extensions.Has(ExtNotes) && !compat,
		Critic:        extensions.Has(ExtCritic) && !compat,
		Smart:         extensions.Has(ExtSmart) && !compat,
	}
	return e
}

// NewFromString is a convenience wrapper over New for string input.
func NewFromString(s string, extensions Extension) *Engine {
	return New([]byte(s), extensions)
}

// SetLanguage changes the language used by any i18n.Lookup the engine or a
// downstream consumer performs for this document, mirroring
// mmd_engine_set_language.
func (e *Engine) SetLanguage(lang i18n.Language) { e.lang = lang }

// Language returns the engine's current language tag.
func (e *Engine) Language() i18n.Language { return e.lang }

// QuoteLanguage returns the smart-quote rendering language derived from the
// engine's current language tag (spec §3/§6: "de -> GERMAN, others ->
// ENGLISH"). Rendering itself belongs to a writer, out of scope here; this
// just exposes the derived tag a writer would consult.
func (e *Engine) QuoteLanguage() i18n.QuoteLanguage { return i18n.DeriveQuoteLanguage(e.lang) }

// Parse runs the full pipeline — tokenize, classify, drive the block
// grammar, assign ambidextrous flags, pair delimiters, promote emphasis to
// strong, and run the post-pairing fixups (including recursive reparse of
// container bodies and metadata extraction) — and returns the id of the
// resulting DOC_START_TOKEN root. Each call builds a fresh tree, but
// Metadata keeps the entries of earlier calls and appends the new ones.
func (e *Engine) Parse() token.ID {
	e.root = e.parseRange(e.buf)
	return e.root
}

// ParseSubstring behaves like Parse but only parses
// buf[start:start+length], for callers that already know a document's
// relevant byte range (spec §6). Token offsets in the resulting tree are
// relative to the substring, not the original buffer.
func (e *Engine) ParseSubstring(start, length int) token.ID {
	end := start + length
	if end > len(e.buf) {
		end = len(e.buf)
	}
	if start < 0 {
		start = 0
	}
	e.root = e.parseRange(e.buf[start:end])
	return e.root
}

func (e *Engine) parseRange(buf []byte) token.ID {
	e.tr = token.NewTree(buf)

	lines := lex.Tokenize(e.tr, buf)

	ccfg := classify.Config{
		Compatibility: e.ext.Has(ExtCompatibility),
		NoMetadata:    e.ext.Has(ExtNoMetadata),
		Notes:         e.state.Cfg.Notes,
	}
	drv := blockgrammar.New(e.tr)
	allowMeta := true
	e.tr.Siblings(e.tr.Get(lines).Child, func(id token.ID, _ token.Token) bool {
		allowMeta = classify.Line(e.tr, id, ccfg, allowMeta)
		drv.Feed(id)
		return true
	})
	root := drv.Finish()

	e.state.Process(e.tr, root)
	return root
}

// Root returns the id of the DOC_START_TOKEN root produced by the last
// Parse/ParseSubstring call, or 0 if neither has run yet.
func (e *Engine) Root() token.ID { return e.root }

// Tree exposes the underlying token arena for callers that want to walk
// the parse tree directly (spec §6's external interface).
func (e *Engine) Tree() *token.Tree { return e.tr }

// Metadata returns the document-metadata entries extracted from any
// BLOCK_META block encountered during fixups, in source order.
func (e *Engine) Metadata() []fixup.MetaEntry { return e.state.Metadata }

// MetadataString renders the metadata stack as "key: value" lines, mirroring
// mmd.c's metadata_stack_describe debug dump.
func (e *Engine) MetadataString() string { return metadataString(e.state.Metadata) }

// Format implements fmt.Formatter: %v prints a one-line summary, %+v walks
// the full token tree rooted at Root, matching scandown.BlockStack.Format's
// terse/verbose split.
func (e *Engine) Format(f fmt.State, verb rune) {
	if f.Flag('+') {
		fmt.Fprintf(f, "Engine ext=%08b lang=%v root=%v", e.ext, e.lang, e.root)
		formatSubtree(f, e.tr, e.root, 1)
		return
	}
	fmt.Fprintf(f, "Engine ext=%08b root=%v", e.ext, e.root)
}

func formatSubtree(w io.Writer, tr *token.Tree, id token.ID, depth int) {
	tr.Siblings(tr.Get(id).Child, func(cid token.ID, t token.Token) bool {
		io.WriteString(w, "\n")
		for i := 0; i < depth; i++ {
			io.WriteString(w, "  ")
		}
		fmt.Fprintf(w, "<%+v id=%v>", t, cid)
		formatSubtree(w, tr, cid, depth+1)
		return true
	})
}

// metadataString renders entries as "key: value" lines; it backs
// MetadataString (spec's supplemented "metadata stack description" feature).
func metadataString(entries []fixup.MetaEntry) string {
	s := ""
	for _, me := range entries {
		s += me.Key + ": " + me.Value + "\n"
	}
	return s
}
