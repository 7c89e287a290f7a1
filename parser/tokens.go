package parser

import (
	"bytes"
	"io"
	"slices"
	"strings"

	"github.com/npillmayer/htree/arena"
	"golang.org/x/net/html"
)

// The tokenizer pass records where every token of the input lives. The tree
// builder later consumes these records to attach spans to the nodes of the
// parse tree.

type tagToken struct {
	name   string
	raw    arena.Span
	attrs  []attrToken
	end    arena.Span // raw end tag, empty if missing
	closed bool
}

type textToken struct {
	data  string
	raw   arena.Span
	cdata bool
}

type commentToken struct {
	data string
	raw  arena.Span
}

// sourceIndex is the result of the tokenizer pass.
type sourceIndex struct {
	starts   map[string][]*tagToken // start tags per lower-case tag name, in source order
	texts    []textToken
	comments []commentToken
	doctype  arena.Span
	errors   []Error
	textUsed []bool
	commUsed []bool
}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "keygen": true, "link": true,
	"meta": true, "param": true, "source": true, "track": true, "wbr": true,
}

// End tags of formatting elements are resolved by the adoption agency, which
// keeps the elements opened inside them open.
var formattingElements = map[string]bool{
	"a": true, "b": true, "big": true, "code": true, "em": true, "font": true,
	"i": true, "nobr": true, "s": true, "small": true, "strike": true,
	"strong": true, "tt": true, "u": true,
}

// The parser ignores these end tags and keeps adding content to the element.
func ignoresEndTag(name string) bool {
	return name == "html" || name == "head" || name == "body"
}

func isForeignRoot(name string) bool {
	return name == "svg" || name == "math"
}

// scan tokenizes src and builds a sourceIndex.
func scan(src []byte, lines *lineIndex) *sourceIndex {
	idx := &sourceIndex{starts: make(map[string][]*tagToken)}
	z := html.NewTokenizer(bytes.NewReader(src))
	var open []*tagToken // elements waiting for their end tag
	foreign := 0         // nesting depth of <svg> and <math>
	offset := 0
	for {
		z.AllowCDATA(foreign > 0)
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); err != io.EOF {
				idx.errors = append(idx.errors, Error{
					Kind: TokenizerError,
					Pos:  lines.position(offset),
					Msg:  err.Error(),
				})
			}
			break
		}
		// Raw has to be measured before Token(), which unescapes in place.
		span := arena.Span{Start: offset, End: offset + len(z.Raw())}
		offset = span.End
		tok := z.Token()
		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			t := &tagToken{name: tok.Data, raw: span}
			t.attrs = scanAttributes(src, span)
			idx.checkDuplicates(src, t, lines)
			idx.starts[t.name] = append(idx.starts[t.name], t)
			if tt == html.StartTagToken && !voidElements[t.name] {
				open = append(open, t)
				if isForeignRoot(t.name) {
					foreign++
				}
			}
		case html.EndTagToken:
			i := len(open) - 1
			for ; i >= 0; i-- {
				if open[i].name == tok.Data {
					break
				}
			}
			if i < 0 {
				idx.errors = append(idx.errors, Error{
					Kind:     StrayEndTag,
					Pos:      lines.position(span.Start),
					Original: span.Slice(src),
				})
				continue
			}
			open[i].end = span
			open[i].closed = true
			if formattingElements[tok.Data] {
				open = slices.Delete(open, i, i+1)
				continue
			}
			for _, t := range open[i:] {
				if isForeignRoot(t.name) && foreign > 0 {
					foreign--
				}
			}
			open = open[:i]
		case html.TextToken:
			idx.texts = append(idx.texts, textToken{
				data:  tok.Data,
				raw:   span,
				cdata: bytes.HasPrefix(src[span.Start:span.End], []byte("<![CDATA[")),
			})
		case html.CommentToken:
			idx.comments = append(idx.comments, commentToken{data: tok.Data, raw: span})
		case html.DoctypeToken:
			idx.doctype = span
		}
	}
	idx.textUsed = make([]bool, len(idx.texts))
	idx.commUsed = make([]bool, len(idx.comments))
	tracer().Debugf("tokenizer pass: %d tag names, %d text runs, %d comments, %d errors",
		len(idx.starts), len(idx.texts), len(idx.comments), len(idx.errors))
	return idx
}

func (idx *sourceIndex) checkDuplicates(src []byte, t *tagToken, lines *lineIndex) {
	if len(t.attrs) < 2 {
		return
	}
	seen := make(map[string]bool, len(t.attrs))
	for _, a := range t.attrs {
		if seen[a.key] {
			idx.errors = append(idx.errors, Error{
				Kind:     DuplicateAttribute,
				Pos:      lines.position(a.name.Start),
				Original: a.whole.Slice(src),
				Msg:      "duplicate attribute " + a.key + " in <" + t.name + ">",
			})
			continue
		}
		seen[a.key] = true
	}
}

// takeStartTag hands out the first unused start tag for element h which
// starts within (lo, hi) and carries all of h's attributes. Elements implied
// or cloned by the tree builder find none.
func (idx *sourceIndex) takeStartTag(h *html.Node, lo, hi int) *tagToken {
	key := strings.ToLower(h.Data)
	q := idx.starts[key]
	for i, t := range q {
		if t.raw.Start >= hi {
			break
		}
		if t.raw.Start <= lo || !attrsMatch(t, h.Attr) {
			continue
		}
		idx.starts[key] = slices.Delete(q, i, i+1)
		return t
	}
	return nil
}

// attrsMatch is true if every attribute of t is present in attrs. attrs may
// hold more, as the tree builder merges the attributes of repeated <html>
// and <body> tags.
func attrsMatch(t *tagToken, attrs []html.Attribute) bool {
	for _, ta := range t.attrs {
		found := slices.ContainsFunc(attrs, func(a html.Attribute) bool {
			return strings.EqualFold(qualifiedName(a), ta.key)
		})
		if !found {
			return false
		}
	}
	return true
}

func qualifiedName(a html.Attribute) string {
	if a.Namespace != "" {
		return a.Namespace + ":" + a.Key
	}
	return a.Key
}

// Limit for searching around the cursor when pairing text and comment nodes
// with tokens. Tokens skipped over belong to nodes the tree builder dropped,
// e.g. whitespace before <head>.
const lookahead = 32

// window returns the token ranges to search: forward from the cursor first,
// then backwards for tokens left behind by nodes the tree builder moved ahead
// of their source position, e.g. by foster parenting.
func window(cursor, n int) [2][2]int {
	return [2][2]int{
		{cursor, min(n, cursor+lookahead)},
		{max(0, cursor-lookahead), min(n, cursor)},
	}
}

// takeText finds the run of unused text tokens making up a text node of the
// tree. The run may consist of several tokens, as the tree builder merges
// adjacent character data. cursor is advanced past runs found ahead of it.
func (idx *sourceIndex) takeText(data string, cursor *int) (span arena.Span, cdata bool, ok bool) {
	if data == "" {
		return
	}
	for _, r := range window(*cursor, len(idx.texts)) {
		for i := r[0]; i < r[1]; i++ {
			t := idx.texts[i]
			if idx.textUsed[i] || !textStartsRun(data, t.data) {
				continue
			}
			n := len(t.data)
			j := i
			for n < len(data) && j+1 < len(idx.texts) && !idx.textUsed[j+1] &&
				idx.texts[j+1].raw.Start == idx.texts[j].raw.End {
				j++
				n += len(idx.texts[j].data)
			}
			for k := i; k <= j; k++ {
				idx.textUsed[k] = true
			}
			if i >= *cursor {
				*cursor = j + 1
			}
			return arena.Span{Start: t.raw.Start, End: idx.texts[j].raw.End}, t.cdata, true
		}
	}
	return
}

func textStartsRun(node, token string) bool {
	if token == "" {
		return false
	}
	if strings.HasPrefix(node, token) || strings.HasPrefix(token, node) {
		return true
	}
	// leading newline dropped after <pre>, <listing> and <textarea>
	return token[0] == '\n' && len(token) > 1 && strings.HasPrefix(node, token[1:])
}

// takeComment finds the unused comment token for a comment node of the tree.
func (idx *sourceIndex) takeComment(data string, cursor *int) (arena.Span, bool) {
	for _, r := range window(*cursor, len(idx.comments)) {
		for i := r[0]; i < r[1]; i++ {
			if idx.commUsed[i] || idx.comments[i].data != data {
				continue
			}
			idx.commUsed[i] = true
			if i >= *cursor {
				*cursor = i + 1
			}
			return idx.comments[i].raw, true
		}
	}
	return arena.Span{}, false
}
