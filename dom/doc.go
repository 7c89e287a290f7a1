/*
Package dom provides a W3C-style view of an htree parse.

Overview

Package htree hands out typed handles (Document, Element, Text, …), which is
the natural thing to do in Go. Clients written against the W3C DOM
vocabulary, e.g. tools ported from a browser environment, expect a single
node type with NodeName, NodeValue, ChildNodes and friends instead. W3CNode
adapts an htree.Node to interface w3cdom.Node.

Every W3CNode holds an htree handle, so it keeps the parse alive for as long
as it is reachable. Nothing needs to be released explicitly.

Styles

CSS is read, never applied: Style returns the declarations of an element's
style attribute, and StyleSheets collects the <style> elements of a
document. Both are parsed with github.com/aymerick/douceur. MatchingRules
selects the rules of a set of style sheets whose selectors match an element.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'htree.dom'.
func tracer() tracing.Trace {
	return tracing.Select("htree.dom")
}
