package parser

import (
	"bytes"
	"strings"

	"github.com/npillmayer/htree/arena"
)

type attrToken struct {
	key   string     // lower-case attribute name as written, e.g. "xlink:href"
	name  arena.Span // attribute name
	value arena.Span // attribute value including quotes, empty if absent
	whole arena.Span // name through end of value
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t' || c == '\f'
}

// scanAttributes locates the attributes of the raw start tag src[tag.Start:tag.End].
// It follows the attribute states of the HTML tokenizer closely enough to
// find the same attributes, in the same order.
func scanAttributes(src []byte, tag arena.Span) []attrToken {
	end := tag.End
	i := tag.Start + 1 // skip '<'
	for i < end && !isSpace(src[i]) && src[i] != '/' && src[i] != '>' {
		i++
	}
	var attrs []attrToken
	for i < end {
		for i < end && (isSpace(src[i]) || src[i] == '/') {
			i++
		}
		if i >= end || src[i] == '>' {
			break
		}
		a := attrToken{name: arena.Span{Start: i}}
		for i < end {
			c := src[i]
			if isSpace(c) || c == '/' || c == '>' || (c == '=' && i > a.name.Start) {
				break
			}
			i++
		}
		a.name.End = i
		a.key = string(bytes.ToLower(src[a.name.Start:a.name.End]))
		a.whole = a.name
		j := i
		for j < end && isSpace(src[j]) {
			j++
		}
		if j < end && src[j] == '=' {
			j++
			for j < end && isSpace(src[j]) {
				j++
			}
			a.value.Start = j
			if j < end && (src[j] == '"' || src[j] == '\'') {
				q := src[j]
				j++
				for j < end && src[j] != q {
					j++
				}
				if j < end {
					j++ // closing quote
				}
			} else {
				for j < end && !isSpace(src[j]) && src[j] != '>' {
					j++
				}
			}
			a.value.End = j
			a.whole.End = j
			i = j
		} else {
			a.value = arena.Span{Start: a.name.End, End: a.name.End}
		}
		attrs = append(attrs, a)
	}
	return attrs
}

// findAttr returns the attribute token with the given name, which may carry a
// namespace prefix, and marks it as used.
func findAttr(attrs []attrToken, used []bool, name string) (attrToken, bool) {
	for i, a := range attrs {
		if !used[i] && strings.EqualFold(a.key, name) {
			used[i] = true
			return a, true
		}
	}
	return attrToken{}, false
}
